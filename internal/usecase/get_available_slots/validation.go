package get_available_slots

import (
	"fmt"
	"time"

	"github.com/m04kA/PetCare-BookingService/internal/domain"
	"github.com/m04kA/PetCare-BookingService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ProviderID <= 0 {
		return fmt.Errorf("%w: providerID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.ServiceDurationMinutes < domain.MinServiceDurationMinutes ||
		req.ServiceDurationMinutes > domain.MaxServiceDurationMinutes {
		return fmt.Errorf("%w: duration must be in range %d-%d minutes",
			ErrInvalidInput, domain.MinServiceDurationMinutes, domain.MaxServiceDurationMinutes)
	}

	if req.IncludeUnavailable && !req.Actor.IsAdmin() {
		return ErrFullViewForbidden
	}

	return nil
}

// dedupe убирает одинаковые соседние слоты (пересекающиеся окна дают дубликаты)
func dedupe(slots []domain.Slot) []domain.Slot {
	result := make([]domain.Slot, 0, len(slots))
	for _, s := range slots {
		if n := len(result); n > 0 && result[n-1].StartTime.Equal(s.StartTime) && result[n-1].EndTime.Equal(s.EndTime) {
			continue
		}
		result = append(result, s)
	}
	return result
}

// notBefore отбрасывает слоты, начинающиеся раньше now + minNoticeMinutes.
// Для прошедшей даты возвращает пустой список, для будущей - слоты без изменений.
func notBefore(slots []domain.Slot, date, now time.Time, minNoticeMinutes int) []domain.Slot {
	if isDateInPast(date, now) {
		return []domain.Slot{}
	}
	if !isSameDay(date, now) {
		return slots
	}

	threshold := types.NewTimeString(now).Minutes() + minNoticeMinutes

	result := make([]domain.Slot, 0, len(slots))
	for _, s := range slots {
		if s.StartTime.Minutes() >= threshold {
			result = append(result, s)
		}
	}
	return result
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return dateOnly.Before(nowOnly)
}
