package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/PetCare-BookingService/internal/domain"
	"github.com/m04kA/PetCare-BookingService/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// ProviderRepository интерфейс репозитория провайдеров и их услуг
type ProviderRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Provider, error)
	GetService(ctx context.Context, providerID, serviceID int64) (*domain.ProviderService, error)
}

// PetRepository интерфейс репозитория питомцев
type PetRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Pet, error)
}

// SlotService генератор слотов и проверка конфликтов
type SlotService interface {
	GenerateCandidateSlots(ctx context.Context, providerID int64, date time.Time, durationMinutes int) ([]domain.Slot, error)
	HasConflict(ctx context.Context, providerID int64, date time.Time, start, end types.TimeString) (bool, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics счётчик исходов бронирования
type Metrics interface {
	RecordBookingOutcome(outcome string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
