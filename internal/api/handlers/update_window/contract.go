package update_window

import (
	"context"

	"github.com/m04kA/PetCare-BookingService/internal/service/availability/models"
)

type AvailabilityService interface {
	UpdateWindow(ctx context.Context, req *models.UpdateWindowRequest) (*models.WindowResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
