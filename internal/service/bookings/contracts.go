package bookings

import (
	"context"

	"github.com/m04kA/PetCare-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

// AccessChecker проверка прав вызывающего
type AccessChecker interface {
	CanAccessBooking(ctx context.Context, actor domain.Actor, booking *domain.Booking) error
	CanManageProvider(ctx context.Context, actor domain.Actor, providerID int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
