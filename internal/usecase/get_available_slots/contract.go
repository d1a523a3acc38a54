package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/PetCare-BookingService/internal/domain"
)

// SlotService генератор слотов и проверка конфликтов
type SlotService interface {
	GenerateCandidateSlots(ctx context.Context, providerID int64, date time.Time, durationMinutes int) ([]domain.Slot, error)
	FilterAvailable(ctx context.Context, providerID int64, date time.Time, slots []domain.Slot) ([]domain.Slot, error)
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
