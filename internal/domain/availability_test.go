package domain

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverlaps_HalfOpen(t *testing.T) {
	// 09:00-10:00 и 10:00-10:30 соприкасаются, но не пересекаются
	assert.False(t, Overlaps(540, 600, 600, 630))
	assert.False(t, Overlaps(600, 630, 540, 600))
	// 09:59-10:01 пересекает 09:00-10:00
	assert.True(t, Overlaps(599, 601, 540, 600))
	assert.True(t, Overlaps(540, 600, 550, 560))
}

func TestAvailabilityWindow_Validate(t *testing.T) {
	valid := AvailabilityWindow{
		ProviderID:          1,
		DayOfWeek:           1,
		StartTime:           "09:00",
		EndTime:             "12:00",
		IsAvailable:         true,
		SlotDurationMinutes: 30,
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(w *AvailabilityWindow)
	}{
		{name: "day of week", mutate: func(w *AvailabilityWindow) { w.DayOfWeek = 7 }},
		{name: "start after end", mutate: func(w *AvailabilityWindow) { w.StartTime = "12:00"; w.EndTime = "09:00" }},
		{name: "empty window", mutate: func(w *AvailabilityWindow) { w.EndTime = "09:00" }},
		{name: "bad time", mutate: func(w *AvailabilityWindow) { w.StartTime = "9am" }},
		{name: "slot too short", mutate: func(w *AvailabilityWindow) { w.SlotDurationMinutes = 1 }},
		{name: "negative buffer", mutate: func(w *AvailabilityWindow) { w.BufferMinutes = -5 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := valid
			tt.mutate(&w)
			assert.ErrorIs(t, w.Validate(), ErrInvalidInput)
		})
	}
}

func TestBlockedInterval_MinutesOn(t *testing.T) {
	date := time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)

	inside := BlockedInterval{
		ProviderID: 1,
		BlockStart: time.Date(2025, 10, 13, 10, 0, 0, 0, time.UTC),
		BlockEnd:   time.Date(2025, 10, 13, 11, 30, 0, 0, time.UTC),
	}
	start, end, ok := inside.MinutesOn(date, time.UTC)
	require.True(t, ok)
	assert.Equal(t, 600, start)
	assert.Equal(t, 690, end)

	overnight := BlockedInterval{
		ProviderID: 1,
		BlockStart: time.Date(2025, 10, 12, 22, 0, 0, 0, time.UTC),
		BlockEnd:   time.Date(2025, 10, 13, 9, 0, 0, 0, time.UTC),
	}
	start, end, ok = overnight.MinutesOn(date, time.UTC)
	require.True(t, ok)
	assert.Equal(t, 0, start)
	assert.Equal(t, 540, end)

	otherDay := BlockedInterval{
		ProviderID: 1,
		BlockStart: time.Date(2025, 10, 14, 10, 0, 0, 0, time.UTC),
		BlockEnd:   time.Date(2025, 10, 14, 11, 0, 0, 0, time.UTC),
	}
	_, _, ok = otherDay.MinutesOn(date, time.UTC)
	assert.False(t, ok)
}

func TestBlockedInterval_MinutesOn_DaylightSavingDay(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	// 30.03.2025 часы переводятся с 02:00 на 03:00, сутки длятся 23 часа
	date := time.Date(2025, 3, 30, 0, 0, 0, 0, berlin)
	morning := BlockedInterval{
		ProviderID: 1,
		BlockStart: time.Date(2025, 3, 30, 10, 0, 0, 0, berlin),
		BlockEnd:   time.Date(2025, 3, 30, 11, 0, 0, 0, berlin),
	}
	start, end, ok := morning.MinutesOn(date, berlin)
	require.True(t, ok)
	assert.Equal(t, 600, start)
	assert.Equal(t, 660, end)

	untilMidnight := BlockedInterval{
		ProviderID: 1,
		BlockStart: time.Date(2025, 3, 30, 22, 0, 0, 0, berlin),
		BlockEnd:   time.Date(2025, 3, 31, 1, 0, 0, 0, berlin),
	}
	start, end, ok = untilMidnight.MinutesOn(date, berlin)
	require.True(t, ok)
	assert.Equal(t, 22*60, start)
	assert.Equal(t, 24*60, end)
}

func TestBlockedInterval_MinutesOn_PartialMinute(t *testing.T) {
	date := time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)
	b := BlockedInterval{
		ProviderID: 1,
		BlockStart: time.Date(2025, 10, 13, 10, 0, 0, 0, time.UTC),
		BlockEnd:   time.Date(2025, 10, 13, 10, 30, 15, 0, time.UTC),
	}
	_, end, ok := b.MinutesOn(date, time.UTC)
	require.True(t, ok)
	assert.Equal(t, 631, end)
}

func TestBlockedInterval_Validate(t *testing.T) {
	at := time.Date(2025, 10, 13, 10, 0, 0, 0, time.UTC)
	b := BlockedInterval{ProviderID: 1, BlockStart: at, BlockEnd: at}
	assert.ErrorIs(t, b.Validate(), ErrInvalidInput)

	b.BlockEnd = at.Add(time.Hour)
	assert.NoError(t, b.Validate())
}
