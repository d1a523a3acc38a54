package availability

import (
	"context"

	"github.com/m04kA/PetCare-BookingService/internal/domain"
)

// AvailabilityRepository интерфейс репозитория расписания и блокировок
type AvailabilityRepository interface {
	ListAllWindows(ctx context.Context, providerID int64) ([]*domain.AvailabilityWindow, error)
	GetWindow(ctx context.Context, id int64) (*domain.AvailabilityWindow, error)
	CreateWindow(ctx context.Context, window *domain.AvailabilityWindow) (*domain.AvailabilityWindow, error)
	UpdateWindow(ctx context.Context, window *domain.AvailabilityWindow) (*domain.AvailabilityWindow, error)
	DeleteWindow(ctx context.Context, providerID, id int64) error

	CreateBlockedDate(ctx context.Context, block *domain.BlockedDate) (*domain.BlockedDate, error)
	DeleteBlockedDate(ctx context.Context, providerID, id int64) error

	CreateBlockedInterval(ctx context.Context, block *domain.BlockedInterval) (*domain.BlockedInterval, error)
	DeleteBlockedInterval(ctx context.Context, providerID, id int64) error
}

// ProviderRepository интерфейс репозитория провайдеров
type ProviderRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Provider, error)
}

// AccessChecker проверка прав на управление провайдером
type AccessChecker interface {
	CanManageProvider(ctx context.Context, actor domain.Actor, providerID int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
