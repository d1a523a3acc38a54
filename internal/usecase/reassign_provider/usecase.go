package reassign_provider

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/PetCare-BookingService/internal/domain"
)

// UseCase переназначение бронирования другому провайдеру (admin)
type UseCase struct {
	bookingRepo  BookingRepository
	providerRepo ProviderRepository
	conflicts    ConflictChecker
	txManager    TransactionManager
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	providerRepo ProviderRepository,
	conflicts ConflictChecker,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		providerRepo: providerRepo,
		conflicts:    conflicts,
		txManager:    txManager,
		logger:       logger,
	}
}

// Execute переносит бронирование к новому провайдеру на то же время.
// Расписание нового провайдера проверяется на конфликт до записи, статус сбрасывается в pending.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.Booking, error) {
	uc.logger.Info("ReassignProvider: actor=%d(%s), booking=%d, newProvider=%d",
		req.Actor.UserID, req.Actor.Role, req.BookingID, req.NewProviderID)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ReassignProvider: validation failed: %v", err)
		return nil, err
	}

	var result *domain.Booking

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				uc.logger.Warn("ReassignProvider: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			if errors.Is(err, domain.ErrConflict) {
				uc.logger.Warn("ReassignProvider: concurrent write on booking id=%d: %v", req.BookingID, err)
				return ErrSlotNotAvailable
			}
			uc.logger.Error("ReassignProvider: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		// Терминальное бронирование нельзя вернуть в pending даже администратору
		if err := domain.CheckTransition(domain.RoleAdmin, booking.Status, domain.StatusPending); err != nil {
			uc.logger.Warn("ReassignProvider: booking id=%d: %v", booking.ID, err)
			return err
		}

		provider, err := uc.providerRepo.GetByID(txCtx, req.NewProviderID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				uc.logger.Warn("ReassignProvider: provider id=%d not found", req.NewProviderID)
				return ErrProviderNotFound
			}
			uc.logger.Error("ReassignProvider: failed to get provider id=%d: %v", req.NewProviderID, err)
			return fmt.Errorf("%w: failed to get provider: %v", ErrInternal, err)
		}
		if !provider.IsActive {
			uc.logger.Warn("ReassignProvider: provider id=%d is inactive", provider.ID)
			return ErrProviderInactive
		}

		// Без новой услуги текущая остаётся, только если она есть у нового провайдера
		serviceID := booking.ProviderServiceID
		if req.NewProviderServiceID != nil {
			serviceID = *req.NewProviderServiceID
		}
		service, err := uc.providerRepo.GetService(txCtx, provider.ID, serviceID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				uc.logger.Warn("ReassignProvider: service id=%d not found for provider=%d", serviceID, provider.ID)
				if req.NewProviderServiceID == nil {
					return ErrServiceRequired
				}
				return ErrServiceNotFound
			}
			uc.logger.Error("ReassignProvider: failed to get service id=%d: %v", serviceID, err)
			return fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
		}
		serviceID = service.ID

		conflict, err := uc.conflicts.HasConflictExcept(txCtx, provider.ID, booking.BookingDate,
			booking.StartTime, booking.EndTime, booking.ID)
		if err != nil {
			uc.logger.Error("ReassignProvider: failed to check conflicts: %v", err)
			return err
		}
		if conflict {
			uc.logger.Warn("ReassignProvider: provider=%d is busy at %s %s-%s", provider.ID,
				booking.BookingDate.Format(domain.DateFormat), booking.StartTime, booking.EndTime)
			return ErrSlotNotAvailable
		}

		booking.ProviderID = provider.ID
		booking.ProviderServiceID = serviceID
		booking.ApplyStatus(domain.StatusPending, req.Actor.CancelledBy(), nil)

		updated, err := uc.bookingRepo.Update(txCtx, booking)
		if err != nil {
			if errors.Is(err, domain.ErrConflict) {
				uc.logger.Warn("ReassignProvider: storage rejected overlapping booking: %v", err)
				return ErrSlotNotAvailable
			}
			uc.logger.Error("ReassignProvider: failed to update booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to update booking: %v", ErrInternal, err)
		}

		result = updated
		return nil
	})

	if err != nil {
		if errors.Is(err, domain.ErrConflict) && !errors.Is(err, ErrSlotNotAvailable) {
			uc.logger.Warn("ReassignProvider: transaction conflict: %v", err)
			return nil, ErrSlotNotAvailable
		}
		if !domain.IsKnown(err) {
			uc.logger.Error("ReassignProvider: transaction failed: %v", err)
			return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
		}
		return nil, err
	}

	uc.logger.Info("ReassignProvider: booking id=%d moved to provider=%d", result.ID, result.ProviderID)
	return result, nil
}
