package reassign_provider

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PetCare-BookingService/internal/domain"
	"github.com/m04kA/PetCare-BookingService/internal/infra/storage/memory"
	"github.com/m04kA/PetCare-BookingService/internal/service/slots"
	"github.com/m04kA/PetCare-BookingService/pkg/logger"
	"github.com/m04kA/PetCare-BookingService/pkg/ptr"
	"github.com/m04kA/PetCare-BookingService/pkg/types"
)

var (
	monday = time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)
	admin  = domain.Actor{UserID: 500, Role: domain.RoleAdmin}
)

const (
	fromProvider = int64(10)
	toProvider   = int64(11)
	otherService = int64(21)
)

func setup(t *testing.T) (*UseCase, *memory.Store) {
	t.Helper()

	store := memory.NewStore()
	store.AddProvider(domain.Provider{ID: fromProvider, UserID: 100, IsActive: true})
	store.AddProvider(domain.Provider{ID: toProvider, UserID: 101, IsActive: true})
	store.AddProvider(domain.Provider{ID: 12, UserID: 102, IsActive: false})
	store.AddService(domain.ProviderService{ID: 20, ProviderID: fromProvider, DurationMinutes: 30, IsActive: true})
	store.AddService(domain.ProviderService{ID: otherService, ProviderID: toProvider, DurationMinutes: 30, IsActive: true})

	log := logger.NewNop()
	slotService := slots.NewService(store.Availability(), store.Bookings(), store.Providers(), time.UTC, log)

	return NewUseCase(store.Bookings(), store.Providers(), slotService, store.TxManager(), log), store
}

func book(t *testing.T, store *memory.Store, providerID int64, start, end types.TimeString, status domain.BookingStatus) *domain.Booking {
	t.Helper()

	b, err := store.Bookings().Create(context.Background(), &domain.Booking{
		UserID:            1,
		PetID:             30,
		ProviderID:        providerID,
		ProviderServiceID: 20,
		BookingDate:       monday,
		StartTime:         start,
		EndTime:           end,
		Status:            status,
	})
	require.NoError(t, err)
	return b
}

func TestExecute_MovesBookingAndResetsStatus(t *testing.T) {
	uc, store := setup(t)
	original := book(t, store, fromProvider, "10:00", "10:30", domain.StatusConfirmed)

	moved, err := uc.Execute(context.Background(), &Request{
		Actor:                admin,
		BookingID:            original.ID,
		NewProviderID:        toProvider,
		NewProviderServiceID: ptr.Ptr(otherService),
	})
	require.NoError(t, err)

	assert.Equal(t, toProvider, moved.ProviderID)
	assert.Equal(t, otherService, moved.ProviderServiceID)
	assert.Equal(t, domain.StatusPending, moved.Status)
	assert.Equal(t, original.StartTime, moved.StartTime)
	assert.Equal(t, original.EndTime, moved.EndTime)
	assert.Nil(t, moved.CancellationBy)

	// Старый провайдер освободился
	left, err := store.Bookings().List(context.Background(), domain.BookingsFilter{ProviderID: ptr.Ptr(fromProvider)})
	require.NoError(t, err)
	assert.Empty(t, left)
}

func TestExecute_ServiceOfOldProviderRequiresNewService(t *testing.T) {
	uc, store := setup(t)
	original := book(t, store, fromProvider, "10:00", "10:30", domain.StatusPending)

	_, err := uc.Execute(context.Background(), &Request{Actor: admin, BookingID: original.ID, NewProviderID: toProvider})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrServiceRequired)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	unchanged, err := store.Bookings().GetByID(context.Background(), original.ID)
	require.NoError(t, err)
	assert.Equal(t, fromProvider, unchanged.ProviderID)
	assert.Equal(t, int64(20), unchanged.ProviderServiceID)
}

func TestExecute_KeepsServiceOwnedByNewProvider(t *testing.T) {
	uc, store := setup(t)
	original := book(t, store, fromProvider, "10:00", "10:30", domain.StatusConfirmed)

	moved, err := uc.Execute(context.Background(), &Request{Actor: admin, BookingID: original.ID, NewProviderID: fromProvider})
	require.NoError(t, err)
	assert.Equal(t, int64(20), moved.ProviderServiceID)

	_, err = store.Providers().GetService(context.Background(), moved.ProviderID, moved.ProviderServiceID)
	assert.NoError(t, err)
}

func TestExecute_ConflictAtNewProvider(t *testing.T) {
	uc, store := setup(t)
	original := book(t, store, fromProvider, "10:00", "10:30", domain.StatusPending)
	book(t, store, toProvider, "10:15", "10:45", domain.StatusConfirmed)

	_, err := uc.Execute(context.Background(), &Request{Actor: admin, BookingID: original.ID, NewProviderID: toProvider, NewProviderServiceID: ptr.Ptr(otherService)})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.ErrorIs(t, err, domain.ErrConflict)

	unchanged, err := store.Bookings().GetByID(context.Background(), original.ID)
	require.NoError(t, err)
	assert.Equal(t, fromProvider, unchanged.ProviderID)
}

func TestExecute_CancelledBookingAtNewProviderDoesNotBlock(t *testing.T) {
	uc, store := setup(t)
	original := book(t, store, fromProvider, "10:00", "10:30", domain.StatusPending)
	book(t, store, toProvider, "10:00", "10:30", domain.StatusCancelled)

	_, err := uc.Execute(context.Background(), &Request{Actor: admin, BookingID: original.ID, NewProviderID: toProvider, NewProviderServiceID: ptr.Ptr(otherService)})
	require.NoError(t, err)
}

func TestExecute_BlockedDayAtNewProvider(t *testing.T) {
	uc, store := setup(t)
	original := book(t, store, fromProvider, "10:00", "10:30", domain.StatusPending)
	_, err := store.Availability().CreateBlockedDate(context.Background(), &domain.BlockedDate{
		ProviderID:  toProvider,
		BlockedDate: monday,
	})
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), &Request{Actor: admin, BookingID: original.ID, NewProviderID: toProvider, NewProviderServiceID: ptr.Ptr(otherService)})
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_Rejections(t *testing.T) {
	uc, store := setup(t)
	active := book(t, store, fromProvider, "10:00", "10:30", domain.StatusPending)
	completed := book(t, store, fromProvider, "11:00", "11:30", domain.StatusCompleted)

	tests := []struct {
		name    string
		req     *Request
		wantErr error
	}{
		{
			name:    "provider is not admin",
			req:     &Request{Actor: domain.Actor{UserID: 100, Role: domain.RoleProvider}, BookingID: active.ID, NewProviderID: toProvider},
			wantErr: ErrAdminOnly,
		},
		{
			name:    "missing provider id",
			req:     &Request{Actor: admin, BookingID: active.ID},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "booking not found",
			req:     &Request{Actor: admin, BookingID: 9999, NewProviderID: toProvider},
			wantErr: ErrBookingNotFound,
		},
		{
			name:    "provider not found",
			req:     &Request{Actor: admin, BookingID: active.ID, NewProviderID: 9999},
			wantErr: ErrProviderNotFound,
		},
		{
			name:    "provider inactive",
			req:     &Request{Actor: admin, BookingID: active.ID, NewProviderID: 12},
			wantErr: ErrProviderInactive,
		},
		{
			name:    "service of another provider",
			req:     &Request{Actor: admin, BookingID: active.ID, NewProviderID: toProvider, NewProviderServiceID: ptr.Ptr(int64(20))},
			wantErr: ErrServiceNotFound,
		},
		{
			name:    "terminal booking",
			req:     &Request{Actor: admin, BookingID: completed.ID, NewProviderID: toProvider},
			wantErr: domain.ErrInvalidTransition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
