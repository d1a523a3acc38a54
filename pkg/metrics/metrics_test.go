package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordBookingOutcome(t *testing.T) {
	m := NewWithRegisterer(prometheus.NewRegistry(), "petcare-booking")

	m.RecordBookingOutcome("created")
	m.RecordBookingOutcome("conflict")
	m.RecordBookingOutcome("conflict")

	assert.Equal(t, float64(1), testutil.ToFloat64(m.BookingOutcomes.WithLabelValues("created")))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.BookingOutcomes.WithLabelValues("conflict")))
}

func TestRecordBookingOutcome_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() { m.RecordBookingOutcome("created") })
}
