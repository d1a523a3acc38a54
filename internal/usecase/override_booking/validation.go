package override_booking

import (
	"fmt"

	"github.com/m04kA/PetCare-BookingService/internal/domain"
)

// validateRequest валидирует запрос до обращения к хранилищу
func validateRequest(req *Request) error {
	if !req.Actor.IsAdmin() {
		return ErrAdminOnly
	}

	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	p := req.Patch
	if p.IsEmpty() {
		return ErrEmptyPatch
	}

	if p.BookingDate != nil && p.BookingDate.IsZero() {
		return fmt.Errorf("%w: bookingDate must not be empty", ErrInvalidInput)
	}

	if p.StartTime != nil {
		if err := p.StartTime.Validate(); err != nil {
			return fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
		}
	}

	if p.EndTime != nil {
		if err := p.EndTime.Validate(); err != nil {
			return fmt.Errorf("%w: invalid endTime: %v", ErrInvalidInput, err)
		}
	}

	if p.Status != nil && !p.Status.IsValid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *p.Status)
	}

	if p.BookingMode != nil {
		if _, err := domain.ParseBookingMode(string(*p.BookingMode)); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}

	if p.CancellationReason != nil {
		if p.Status == nil || *p.Status != domain.StatusCancelled {
			return fmt.Errorf("%w: cancellationReason requires status %q", ErrInvalidInput, domain.StatusCancelled)
		}
		if len(*p.CancellationReason) > domain.MaxCancellationReasonLength {
			return fmt.Errorf("%w: cancellationReason must be at most %d characters",
				ErrInvalidInput, domain.MaxCancellationReasonLength)
		}
	}

	if p.ProviderNotes != nil && len(*p.ProviderNotes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: providerNotes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateMerged проверяет окно бронирования после наложения патча
func validateMerged(b *domain.Booking) error {
	start, end := b.StartTime.Minutes(), b.EndTime.Minutes()
	if start < 0 || end < 0 {
		return fmt.Errorf("%w: invalid time window %s-%s", ErrInvalidInput, b.StartTime, b.EndTime)
	}
	if start >= end {
		return fmt.Errorf("%w: startTime must be before endTime", ErrInvalidInput)
	}
	return nil
}
