package change_status

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/PetCare-BookingService/internal/domain"
)

// UseCase смена статуса бронирования по таблице переходов
type UseCase struct {
	bookingRepo BookingRepository
	access      AccessChecker
	txManager   TransactionManager
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, access AccessChecker, txManager TransactionManager, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		access:      access,
		txManager:   txManager,
		logger:      logger,
	}
}

// Execute применяет переход статуса.
// Клиент может только отменить своё бронирование, провайдер управляет своими,
// admin переводит нетерминальное бронирование в любой статус.
// При отмене записывается сторона и причина, при остальных переходах они очищаются.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.Booking, error) {
	uc.logger.Info("ChangeStatus: actor=%d(%s), booking=%d, status=%s",
		req.Actor.UserID, req.Actor.Role, req.BookingID, req.Status)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ChangeStatus: validation failed: %v", err)
		return nil, err
	}

	var result *domain.Booking

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				uc.logger.Warn("ChangeStatus: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("ChangeStatus: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		if err := uc.access.CanAccessBooking(txCtx, req.Actor, booking); err != nil {
			uc.logger.Warn("ChangeStatus: actor=%d has no access to booking id=%d: %v", req.Actor.UserID, booking.ID, err)
			return err
		}

		if err := domain.CheckTransition(req.Actor.Role, booking.Status, req.Status); err != nil {
			uc.logger.Warn("ChangeStatus: booking id=%d: %v", booking.ID, err)
			return err
		}

		booking.ApplyStatus(req.Status, req.Actor.CancelledBy(), req.CancellationReason)

		updated, err := uc.bookingRepo.Update(txCtx, booking)
		if err != nil {
			uc.logger.Error("ChangeStatus: failed to update booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to update booking: %v", ErrInternal, err)
		}

		result = updated
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("ChangeStatus: booking id=%d is now %s", result.ID, result.Status)
	return result, nil
}
