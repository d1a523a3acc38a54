package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PetCare-BookingService/internal/domain"
)

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "invalid input", err: fmt.Errorf("%w: bad date", domain.ErrInvalidInput), want: http.StatusBadRequest},
		{name: "ownership", err: domain.ErrOwnership, want: http.StatusForbidden},
		{name: "not found", err: fmt.Errorf("%w: booking", domain.ErrNotFound), want: http.StatusNotFound},
		{name: "conflict", err: domain.ErrConflict, want: http.StatusConflict},
		{
			name: "transition",
			err:  &domain.InvalidTransitionError{From: domain.StatusCompleted, To: domain.StatusPending},
			want: http.StatusConflict,
		},
		{name: "repository", err: domain.ErrRepository, want: http.StatusInternalServerError},
		{name: "unknown", err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusFromError(tt.err))
		})
	}
}

func TestRespondDomainError_HidesRawText(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondDomainError(rec, fmt.Errorf("%w: pq: relation bookings does not exist", domain.ErrRepository))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var body ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, msgInternalError, body.Error)
	assert.NotContains(t, rec.Body.String(), "pq:")
}

func TestPathID(t *testing.T) {
	tests := []struct {
		raw     string
		want    int64
		wantErr bool
	}{
		{raw: "42", want: 42},
		{raw: "0", wantErr: true},
		{raw: "-1", wantErr: true},
		{raw: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			req := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"bookingId": tt.raw})
			got, err := PathID(req, "bookingId")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
