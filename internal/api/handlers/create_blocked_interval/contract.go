package create_blocked_interval

import (
	"context"

	"github.com/m04kA/PetCare-BookingService/internal/service/availability/models"
)

type AvailabilityService interface {
	CreateBlockedInterval(ctx context.Context, req *models.CreateBlockedIntervalRequest) (*models.BlockedIntervalResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
