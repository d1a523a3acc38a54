package delete_availability

import (
	"context"

	"github.com/m04kA/PetCare-BookingService/internal/domain"
)

type AvailabilityService interface {
	DeleteWindow(ctx context.Context, actor domain.Actor, providerID, windowID int64) error
	DeleteBlockedDate(ctx context.Context, actor domain.Actor, providerID, blockID int64) error
	DeleteBlockedInterval(ctx context.Context, actor domain.Actor, providerID, blockID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
