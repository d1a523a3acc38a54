package override_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/PetCare-BookingService/internal/domain"
	overrideBooking "github.com/m04kA/PetCare-BookingService/internal/usecase/override_booking"
	"github.com/m04kA/PetCare-BookingService/pkg/types"
)

// OverrideRequest HTTP request model; отсутствующие поля не меняются
type OverrideRequest struct {
	BookingDate        *string `json:"bookingDate,omitempty"`
	StartTime          *string `json:"startTime,omitempty"`
	EndTime            *string `json:"endTime,omitempty"`
	Status             *string `json:"status,omitempty"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
	ProviderNotes      *string `json:"providerNotes,omitempty"`
	BookingMode        *string `json:"bookingMode,omitempty"`
}

// ToPatch разбирает строки запроса в патч use case
func (r *OverrideRequest) ToPatch() (overrideBooking.BookingPatch, error) {
	var patch overrideBooking.BookingPatch

	if r.BookingDate != nil {
		date, err := time.Parse(domain.DateFormat, *r.BookingDate)
		if err != nil {
			return patch, fmt.Errorf("bookingDate: %w", err)
		}
		patch.BookingDate = &date
	}

	if r.StartTime != nil {
		start, err := types.NewTimeStringFromString(*r.StartTime)
		if err != nil {
			return patch, fmt.Errorf("startTime: %w", err)
		}
		patch.StartTime = &start
	}

	if r.EndTime != nil {
		end, err := types.NewTimeStringFromString(*r.EndTime)
		if err != nil {
			return patch, fmt.Errorf("endTime: %w", err)
		}
		patch.EndTime = &end
	}

	if r.Status != nil {
		status, err := domain.ParseBookingStatus(*r.Status)
		if err != nil {
			return patch, err
		}
		patch.Status = &status
	}

	if r.BookingMode != nil {
		mode, err := domain.ParseBookingMode(*r.BookingMode)
		if err != nil {
			return patch, err
		}
		patch.BookingMode = &mode
	}

	patch.CancellationReason = r.CancellationReason
	patch.ProviderNotes = r.ProviderNotes

	return patch, nil
}
