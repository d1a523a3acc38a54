package slots

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PetCare-BookingService/internal/domain"
	"github.com/m04kA/PetCare-BookingService/internal/infra/storage/memory"
	"github.com/m04kA/PetCare-BookingService/pkg/logger"
	"github.com/m04kA/PetCare-BookingService/pkg/types"
)

var monday = time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)

const providerID = int64(10)

func setup(t *testing.T, windows ...domain.AvailabilityWindow) (*Service, *memory.Store) {
	t.Helper()

	store := memory.NewStore()
	store.AddProvider(domain.Provider{ID: providerID, UserID: 100, Name: "Groomer", IsActive: true})

	ctx := context.Background()
	for _, w := range windows {
		w.ProviderID = providerID
		_, err := store.Availability().CreateWindow(ctx, &w)
		require.NoError(t, err)
	}

	svc := NewService(store.Availability(), store.Bookings(), store.Providers(), time.UTC, logger.NewNop())
	return svc, store
}

func window(day int, start, end string, slot, buffer int) domain.AvailabilityWindow {
	return domain.AvailabilityWindow{
		DayOfWeek:           day,
		StartTime:           types.TimeString(start),
		EndTime:             types.TimeString(end),
		IsAvailable:         true,
		SlotDurationMinutes: slot,
		BufferMinutes:       buffer,
	}
}

func starts(slots []domain.Slot) []string {
	result := make([]string, len(slots))
	for i, s := range slots {
		result[i] = s.StartTime.String() + "-" + s.EndTime.String()
	}
	return result
}

func TestGenerateCandidateSlots_MondayMorning(t *testing.T) {
	svc, _ := setup(t, window(1, "09:00", "12:00", 30, 0))

	slots, err := svc.GenerateCandidateSlots(context.Background(), providerID, monday, 30)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"09:00-09:30", "09:30-10:00", "10:00-10:30",
		"10:30-11:00", "11:00-11:30", "11:30-12:00",
	}, starts(slots))
}

func TestGenerateCandidateSlots_Buffer(t *testing.T) {
	svc, _ := setup(t, window(1, "09:00", "11:00", 30, 15))

	slots, err := svc.GenerateCandidateSlots(context.Background(), providerID, monday, 30)
	require.NoError(t, err)
	// шаг 45 минут, 10:30-11:00 ещё помещается
	assert.Equal(t, []string{"09:00-09:30", "09:45-10:15", "10:30-11:00"}, starts(slots))
}

func TestGenerateCandidateSlots_ServiceLongerThanStep(t *testing.T) {
	svc, _ := setup(t, window(1, "09:00", "10:30", 30, 0))

	slots, err := svc.GenerateCandidateSlots(context.Background(), providerID, monday, 60)
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00-10:00", "09:30-10:30"}, starts(slots))
}

func TestGenerateCandidateSlots_DurationExceedsWindow(t *testing.T) {
	svc, _ := setup(t, window(1, "09:00", "09:30", 30, 0))

	slots, err := svc.GenerateCandidateSlots(context.Background(), providerID, monday, 60)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGenerateCandidateSlots_SplitShiftsOrdered(t *testing.T) {
	svc, _ := setup(t,
		window(1, "14:00", "15:00", 30, 0),
		window(1, "09:00", "10:00", 30, 0),
		window(2, "09:00", "10:00", 30, 0),
	)

	slots, err := svc.GenerateCandidateSlots(context.Background(), providerID, monday, 30)
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00-09:30", "09:30-10:00", "14:00-14:30", "14:30-15:00"}, starts(slots))
}

func TestGenerateCandidateSlots_NoHoursThatDay(t *testing.T) {
	svc, _ := setup(t, window(2, "09:00", "12:00", 30, 0))

	slots, err := svc.GenerateCandidateSlots(context.Background(), providerID, monday, 30)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGenerateCandidateSlots_WholeDayBlock(t *testing.T) {
	svc, store := setup(t, window(1, "09:00", "12:00", 30, 0))

	_, err := store.Availability().CreateBlockedDate(context.Background(), &domain.BlockedDate{ProviderID: providerID, BlockedDate: monday})
	require.NoError(t, err)

	slots, err := svc.GenerateCandidateSlots(context.Background(), providerID, monday, 30)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGenerateCandidateSlots_InvalidInput(t *testing.T) {
	svc, _ := setup(t, window(1, "09:00", "12:00", 30, 0))
	ctx := context.Background()

	_, err := svc.GenerateCandidateSlots(ctx, 999, monday, 30)
	assert.ErrorIs(t, err, ErrUnknownProvider)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.GenerateCandidateSlots(ctx, providerID, time.Time{}, 30)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.GenerateCandidateSlots(ctx, providerID, monday, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestFilterAvailable(t *testing.T) {
	svc, store := setup(t, window(1, "09:00", "12:00", 30, 0))
	ctx := context.Background()

	_, err := store.Bookings().Create(ctx, &domain.Booking{
		ProviderID: providerID, BookingDate: monday, StartTime: "10:00", EndTime: "10:30", Status: domain.StatusPending,
	})
	require.NoError(t, err)
	_, err = store.Bookings().Create(ctx, &domain.Booking{
		ProviderID: providerID, BookingDate: monday, StartTime: "09:00", EndTime: "09:30", Status: domain.StatusCancelled,
	})
	require.NoError(t, err)
	_, err = store.Availability().CreateBlockedInterval(ctx, &domain.BlockedInterval{
		ProviderID: providerID,
		BlockStart: monday.Add(11*time.Hour + 15*time.Minute),
		BlockEnd:   monday.Add(11*time.Hour + 45*time.Minute),
	})
	require.NoError(t, err)

	candidates, err := svc.GenerateCandidateSlots(ctx, providerID, monday, 30)
	require.NoError(t, err)

	marked, err := svc.FilterAvailable(ctx, providerID, monday, candidates)
	require.NoError(t, err)
	require.Len(t, marked, 6)

	availability := make(map[string]bool)
	for _, s := range marked {
		availability[s.StartTime.String()] = s.IsAvailable
	}
	assert.Equal(t, map[string]bool{
		"09:00": true,
		"09:30": true,
		"10:00": false,
		"10:30": true,
		"11:00": false,
		"11:30": false,
	}, availability)
}

func TestHasConflict_HalfOpenBoundary(t *testing.T) {
	svc, store := setup(t)
	ctx := context.Background()

	booked, err := store.Bookings().Create(ctx, &domain.Booking{
		ProviderID: providerID, BookingDate: monday, StartTime: "09:00", EndTime: "10:00", Status: domain.StatusConfirmed,
	})
	require.NoError(t, err)

	conflict, err := svc.HasConflict(ctx, providerID, monday, "10:00", "10:30")
	require.NoError(t, err)
	assert.False(t, conflict)

	conflict, err = svc.HasConflict(ctx, providerID, monday, "09:59", "10:01")
	require.NoError(t, err)
	assert.True(t, conflict)

	conflict, err = svc.HasConflictExcept(ctx, providerID, monday, "09:30", "10:30", booked.ID)
	require.NoError(t, err)
	assert.False(t, conflict)

	_, err = svc.HasConflict(ctx, providerID, monday, "10:30", "10:00")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestHasConflict_WholeDayBlock(t *testing.T) {
	svc, store := setup(t)
	ctx := context.Background()

	_, err := store.Availability().CreateBlockedDate(ctx, &domain.BlockedDate{ProviderID: providerID, BlockedDate: monday})
	require.NoError(t, err)

	conflict, err := svc.HasConflict(ctx, providerID, monday, "18:00", "19:00")
	require.NoError(t, err)
	assert.True(t, conflict)
}

type failingBookings struct{}

func (failingBookings) List(context.Context, domain.BookingsFilter) ([]*domain.Booking, error) {
	return nil, errors.New("connection refused")
}

func TestHasConflict_PropagatesRepositoryError(t *testing.T) {
	store := memory.NewStore()
	svc := NewService(store.Availability(), failingBookings{}, store.Providers(), time.UTC, logger.NewNop())

	_, err := svc.HasConflict(context.Background(), providerID, monday, "10:00", "10:30")
	assert.ErrorIs(t, err, domain.ErrRepository)
}

type conflictingBookings struct{}

func (conflictingBookings) List(context.Context, domain.BookingsFilter) ([]*domain.Booking, error) {
	return nil, fmt.Errorf("%w: could not serialize access", domain.ErrConflict)
}

func TestHasConflict_ConcurrentWriteStaysConflict(t *testing.T) {
	store := memory.NewStore()
	svc := NewService(store.Availability(), conflictingBookings{}, store.Providers(), time.UTC, logger.NewNop())

	_, err := svc.HasConflict(context.Background(), providerID, monday, "10:00", "10:30")
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.NotErrorIs(t, err, domain.ErrRepository)
}

func TestGenerate_Deterministic(t *testing.T) {
	windows := []*domain.AvailabilityWindow{
		{StartTime: "09:00", EndTime: "11:00", IsAvailable: true, SlotDurationMinutes: 30},
		{StartTime: "09:00", EndTime: "10:00", IsAvailable: true, SlotDurationMinutes: 20},
	}

	first := generate(windows, 30)
	second := generate(windows, 30)
	assert.Equal(t, first, second)
	assert.Equal(t, types.TimeString("09:00"), first[0].StartTime)
	assert.Equal(t, types.TimeString("09:00"), first[1].StartTime)
}
