package create_booking

import (
	"time"

	"github.com/m04kA/PetCare-BookingService/internal/domain"
	createBooking "github.com/m04kA/PetCare-BookingService/internal/usecase/create_booking"
	"github.com/m04kA/PetCare-BookingService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	UserID                 int64   `json:"userId"` // 0 - текущий пользователь; другой ID может передать только admin
	PetID                  int64   `json:"petId"`
	ProviderID             int64   `json:"providerId"`
	ProviderServiceID      int64   `json:"providerServiceId"`
	BookingDate            string  `json:"bookingDate"` // "2025-10-15"
	StartTime              string  `json:"startTime"`   // "10:00"
	ServiceDurationMinutes int     `json:"serviceDurationMinutes,omitempty"`
	BookingMode            string  `json:"bookingMode,omitempty"`
	ProviderNotes          *string `json:"providerNotes,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(actor domain.Actor) (*createBooking.Request, error) {
	bookingDate, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, errInvalidDate
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, errInvalidTime
	}

	mode := domain.BookingModeInPerson
	if r.BookingMode != "" {
		mode = domain.BookingMode(r.BookingMode)
	}

	userID := r.UserID
	if userID == 0 {
		userID = actor.UserID
	}

	return &createBooking.Request{
		Actor:                  actor,
		UserID:                 userID,
		PetID:                  r.PetID,
		ProviderID:             r.ProviderID,
		ProviderServiceID:      r.ProviderServiceID,
		BookingDate:            bookingDate,
		StartTime:              startTime,
		ServiceDurationMinutes: r.ServiceDurationMinutes,
		BookingMode:            mode,
		ProviderNotes:          r.ProviderNotes,
	}, nil
}
