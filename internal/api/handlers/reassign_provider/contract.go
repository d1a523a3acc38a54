package reassign_provider

import (
	"context"

	"github.com/m04kA/PetCare-BookingService/internal/domain"
	reassignProvider "github.com/m04kA/PetCare-BookingService/internal/usecase/reassign_provider"
)

type ReassignProviderUseCase interface {
	Execute(ctx context.Context, req *reassignProvider.Request) (*domain.Booking, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
