package list_windows

import (
	"context"

	"github.com/m04kA/PetCare-BookingService/internal/service/availability/models"
)

type AvailabilityService interface {
	ListWindows(ctx context.Context, providerID int64) (*models.WindowListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
