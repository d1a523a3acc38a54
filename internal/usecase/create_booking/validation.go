package create_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/PetCare-BookingService/internal/domain"
	"github.com/m04kA/PetCare-BookingService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.PetID <= 0 {
		return fmt.Errorf("%w: petID must be positive", ErrInvalidInput)
	}

	if req.ProviderID <= 0 {
		return fmt.Errorf("%w: providerID must be positive", ErrInvalidInput)
	}

	if req.ProviderServiceID <= 0 {
		return fmt.Errorf("%w: providerServiceID must be positive", ErrInvalidInput)
	}

	if req.BookingDate.IsZero() {
		return fmt.Errorf("%w: bookingDate is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if req.ServiceDurationMinutes != 0 &&
		(req.ServiceDurationMinutes < domain.MinServiceDurationMinutes || req.ServiceDurationMinutes > domain.MaxServiceDurationMinutes) {
		return fmt.Errorf("%w: serviceDurationMinutes must be in range %d-%d",
			ErrInvalidInput, domain.MinServiceDurationMinutes, domain.MaxServiceDurationMinutes)
	}

	if _, err := domain.ParseBookingMode(string(req.BookingMode)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if req.ProviderNotes != nil && len(*req.ProviderNotes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	if !req.Actor.IsAdmin() && req.Actor.UserID != req.UserID {
		return ErrForbidden
	}

	return nil
}

// endTime вычисляет конец бронирования; бронирование не может переходить через полночь
func endTime(start types.TimeString, durationMinutes int) (types.TimeString, error) {
	end, err := start.AddMinutes(durationMinutes)
	if err != nil {
		return "", fmt.Errorf("%w: booking must end within the same day: %v", ErrInvalidInput, err)
	}
	return end, nil
}

// validateDate проверяет, что дата не в прошлом
func validateDate(bookingDate, now time.Time) error {
	if isDateInPast(bookingDate, now) {
		return ErrInvalidDate
	}
	return nil
}

// validateBookingTime проверяет, что бронирование на сегодня не нарушает минимальный запас
func validateBookingTime(bookingDate time.Time, startTime types.TimeString, now time.Time, minNoticeMinutes int) error {
	// Если дата бронирования не сегодня, проверка не нужна
	if !isSameDay(bookingDate, now) {
		return nil
	}

	minAllowed := types.NewTimeString(now).Minutes() + minNoticeMinutes
	if startTime.Minutes() < minAllowed {
		return fmt.Errorf("%w: must book at least %d minutes in advance", ErrTooLateToBook, minNoticeMinutes)
	}

	return nil
}

// matchesSlot проверяет, что [start, end) совпадает с одним из слотов расписания
func matchesSlot(slots []domain.Slot, start, end types.TimeString) bool {
	for _, s := range slots {
		if s.StartTime.Equal(start) && s.EndTime.Equal(end) {
			return true
		}
	}
	return false
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
