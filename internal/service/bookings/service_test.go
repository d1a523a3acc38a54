package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PetCare-BookingService/internal/domain"
	"github.com/m04kA/PetCare-BookingService/internal/infra/storage/memory"
	"github.com/m04kA/PetCare-BookingService/internal/service/access"
	"github.com/m04kA/PetCare-BookingService/internal/service/bookings/models"
	"github.com/m04kA/PetCare-BookingService/pkg/logger"
	"github.com/m04kA/PetCare-BookingService/pkg/ptr"
	"github.com/m04kA/PetCare-BookingService/pkg/types"
)

var (
	monday = time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)

	customer      = domain.Actor{UserID: 1, Role: domain.RoleUser}
	otherCustomer = domain.Actor{UserID: 2, Role: domain.RoleUser}
	provider      = domain.Actor{UserID: 100, Role: domain.RoleProvider}
	otherProvider = domain.Actor{UserID: 101, Role: domain.RoleProvider}
	admin         = domain.Actor{UserID: 500, Role: domain.RoleAdmin}
)

func setup(t *testing.T) (*Service, *memory.Store) {
	t.Helper()

	store := memory.NewStore()
	store.AddProvider(domain.Provider{ID: 10, UserID: 100, IsActive: true})
	store.AddProvider(domain.Provider{ID: 11, UserID: 101, IsActive: true})

	svc := NewService(store.Bookings(), access.NewChecker(store.Providers()), logger.NewNop())
	return svc, store
}

func book(t *testing.T, store *memory.Store, userID, providerID int64, date time.Time, start, end types.TimeString, status domain.BookingStatus) *domain.Booking {
	t.Helper()

	b, err := store.Bookings().Create(context.Background(), &domain.Booking{
		UserID:      userID,
		PetID:       30,
		ProviderID:  providerID,
		BookingDate: date,
		StartTime:   start,
		EndTime:     end,
		BookingMode: domain.BookingModeInPerson,
		Status:      status,
	})
	require.NoError(t, err)
	return b
}

func TestGetByID_Access(t *testing.T) {
	svc, store := setup(t)
	b := book(t, store, 1, 10, monday, "10:00", "10:30", domain.StatusPending)
	ctx := context.Background()

	for _, actor := range []domain.Actor{customer, provider, admin} {
		resp, err := svc.GetByID(ctx, actor, b.ID)
		require.NoError(t, err, actor.Role)
		assert.Equal(t, b.ID, resp.ID)
		assert.Equal(t, "2025-10-13", resp.BookingDate)
		assert.Equal(t, 30, resp.DurationMinutes)
	}

	for _, actor := range []domain.Actor{otherCustomer, otherProvider} {
		_, err := svc.GetByID(ctx, actor, b.ID)
		assert.ErrorIs(t, err, ErrAccessDenied, actor.Role)
	}

	_, err := svc.GetByID(ctx, admin, 9999)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetUserBookings_IncludesHistory(t *testing.T) {
	svc, store := setup(t)
	book(t, store, 1, 10, monday, "10:00", "10:30", domain.StatusPending)
	book(t, store, 1, 10, monday, "11:00", "11:30", domain.StatusCancelled)
	book(t, store, 2, 10, monday, "12:00", "12:30", domain.StatusPending)

	resp, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{Actor: customer, UserID: 1})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 2)

	resp, err = svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		Actor:  customer,
		UserID: 1,
		Status: ptr.Ptr("cancelled"),
	})
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, "cancelled", resp.Bookings[0].Status)
}

func TestGetUserBookings_Rejections(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	_, err := svc.GetUserBookings(ctx, &models.GetUserBookingsRequest{Actor: otherCustomer, UserID: 1})
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.GetUserBookings(ctx, &models.GetUserBookingsRequest{Actor: customer, UserID: 1, Status: ptr.Ptr("archived")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	resp, err := svc.GetUserBookings(ctx, &models.GetUserBookingsRequest{Actor: admin, UserID: 1})
	require.NoError(t, err)
	assert.NotNil(t, resp.Bookings)
	assert.Empty(t, resp.Bookings)
}

func TestGetProviderBookings_Filter(t *testing.T) {
	svc, store := setup(t)
	tuesday := monday.AddDate(0, 0, 1)
	book(t, store, 1, 10, monday, "10:00", "10:30", domain.StatusConfirmed)
	book(t, store, 2, 10, monday, "11:00", "11:30", domain.StatusCancelled)
	book(t, store, 1, 10, tuesday, "10:00", "10:30", domain.StatusPending)
	book(t, store, 1, 11, monday, "10:00", "10:30", domain.StatusPending)
	ctx := context.Background()

	resp, err := svc.GetProviderBookings(ctx, &models.GetProviderBookingsRequest{Actor: provider, ProviderID: 10})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 2)

	resp, err = svc.GetProviderBookings(ctx, &models.GetProviderBookingsRequest{
		Actor:           provider,
		ProviderID:      10,
		StartDate:       &monday,
		EndDate:         &monday,
		IncludeInactive: true,
	})
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 2)
	assert.Equal(t, "10:00", resp.Bookings[0].StartTime)
	assert.Equal(t, "11:00", resp.Bookings[1].StartTime)

	resp, err = svc.GetProviderBookings(ctx, &models.GetProviderBookingsRequest{
		Actor:      admin,
		ProviderID: 10,
		Status:     ptr.Ptr("pending"),
	})
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, "2025-10-14", resp.Bookings[0].BookingDate)
}

func TestGetProviderBookings_Rejections(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()
	tuesday := monday.AddDate(0, 0, 1)

	_, err := svc.GetProviderBookings(ctx, &models.GetProviderBookingsRequest{Actor: otherProvider, ProviderID: 10})
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.GetProviderBookings(ctx, &models.GetProviderBookingsRequest{Actor: customer, ProviderID: 10})
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.GetProviderBookings(ctx, &models.GetProviderBookingsRequest{
		Actor:      admin,
		ProviderID: 10,
		StartDate:  &tuesday,
		EndDate:    &monday,
	})
	assert.ErrorIs(t, err, models.ErrInvalidPeriod)
}
