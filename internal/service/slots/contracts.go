package slots

import (
	"context"
	"time"

	"github.com/m04kA/PetCare-BookingService/internal/domain"
)

// AvailabilityRepository доступ к расписанию и блокировкам провайдера
type AvailabilityRepository interface {
	// ListWindows возвращает окна на день недели, отсортированные по startTime, затем по id
	ListWindows(ctx context.Context, providerID int64, dayOfWeek int) ([]*domain.AvailabilityWindow, error)
	HasBlockedDate(ctx context.Context, providerID int64, date time.Time) (bool, error)
	// ListBlockedIntervals возвращает блокировки, пересекающие [from, to)
	ListBlockedIntervals(ctx context.Context, providerID int64, from, to time.Time) ([]*domain.BlockedInterval, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

// ProviderRepository интерфейс репозитория провайдеров
type ProviderRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Provider, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
