package reassign_provider

import (
	"context"
	"time"

	"github.com/m04kA/PetCare-BookingService/internal/domain"
	"github.com/m04kA/PetCare-BookingService/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	Update(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// ProviderRepository интерфейс репозитория провайдеров и их услуг
type ProviderRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Provider, error)
	GetService(ctx context.Context, providerID, serviceID int64) (*domain.ProviderService, error)
}

// ConflictChecker проверка пересечений в расписании провайдера
type ConflictChecker interface {
	HasConflictExcept(ctx context.Context, providerID int64, date time.Time, start, end types.TimeString, excludeBookingID int64) (bool, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
