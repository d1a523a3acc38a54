package access

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/PetCare-BookingService/internal/domain"
)

var (
	// ErrForbidden возвращается, когда у вызывающего нет прав на ресурс
	ErrForbidden = fmt.Errorf("%w: access denied", domain.ErrOwnership)

	// ErrInternal возвращается при ошибке хранилища во время проверки прав
	ErrInternal = fmt.Errorf("%w: access: internal error", domain.ErrRepository)
)

// ProviderRepository поиск провайдера по учётной записи
type ProviderRepository interface {
	GetByUserID(ctx context.Context, userID int64) (*domain.Provider, error)
}

// Checker проверяет роль и принадлежность ресурса вызывающему.
// Роль приходит из внешнего auth, здесь она не перепроверяется.
type Checker struct {
	providerRepo ProviderRepository
}

// NewChecker создает новый экземпляр Checker
func NewChecker(providerRepo ProviderRepository) *Checker {
	return &Checker{providerRepo: providerRepo}
}

// CanManageProvider разрешает admin и самого провайдера
func (c *Checker) CanManageProvider(ctx context.Context, actor domain.Actor, providerID int64) error {
	switch actor.Role {
	case domain.RoleAdmin:
		return nil
	case domain.RoleProvider:
		own, err := c.ownsProvider(ctx, actor, providerID)
		if err != nil {
			return err
		}
		if own {
			return nil
		}
	}
	return ErrForbidden
}

// CanAccessBooking разрешает admin, клиента бронирования и провайдера бронирования
func (c *Checker) CanAccessBooking(ctx context.Context, actor domain.Actor, booking *domain.Booking) error {
	switch actor.Role {
	case domain.RoleAdmin:
		return nil
	case domain.RoleUser:
		if booking.UserID == actor.UserID {
			return nil
		}
	case domain.RoleProvider:
		own, err := c.ownsProvider(ctx, actor, booking.ProviderID)
		if err != nil {
			return err
		}
		if own {
			return nil
		}
	}
	return ErrForbidden
}

func (c *Checker) ownsProvider(ctx context.Context, actor domain.Actor, providerID int64) (bool, error) {
	provider, err := c.providerRepo.GetByUserID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("%w: get provider by user=%d: %v", ErrInternal, actor.UserID, err)
	}
	return provider.ID == providerID, nil
}
