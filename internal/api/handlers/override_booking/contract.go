package override_booking

import (
	"context"

	"github.com/m04kA/PetCare-BookingService/internal/domain"
	overrideBooking "github.com/m04kA/PetCare-BookingService/internal/usecase/override_booking"
)

type OverrideBookingUseCase interface {
	Execute(ctx context.Context, req *overrideBooking.Request) (*domain.Booking, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
