package override_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/PetCare-BookingService/internal/domain"
)

// UseCase ручная правка бронирования администратором
type UseCase struct {
	bookingRepo BookingRepository
	conflicts   ConflictChecker
	txManager   TransactionManager
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	conflicts ConflictChecker,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		conflicts:   conflicts,
		txManager:   txManager,
		logger:      logger,
	}
}

// Execute применяет патч. Сетка слотов и сроки записи не проверяются,
// но новое окно, если оно изменилось, проходит ту же проверку конфликтов.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.Booking, error) {
	uc.logger.Info("OverrideBooking: actor=%d(%s), booking=%d", req.Actor.UserID, req.Actor.Role, req.BookingID)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("OverrideBooking: validation failed: %v", err)
		return nil, err
	}

	var result *domain.Booking

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		current, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				uc.logger.Warn("OverrideBooking: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			if errors.Is(err, domain.ErrConflict) {
				uc.logger.Warn("OverrideBooking: concurrent write on booking id=%d: %v", req.BookingID, err)
				return ErrSlotNotAvailable
			}
			uc.logger.Error("OverrideBooking: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		merged := req.Patch.ApplyTo(*current)
		if err := validateMerged(&merged); err != nil {
			uc.logger.Warn("OverrideBooking: merged booking is invalid: %v", err)
			return err
		}

		if s := req.Patch.Status; s != nil && *s != current.Status {
			if err := domain.CheckTransition(req.Actor.Role, current.Status, *s); err != nil {
				uc.logger.Warn("OverrideBooking: booking id=%d: %v", current.ID, err)
				return err
			}
			merged.ApplyStatus(*s, req.Actor.CancelledBy(), req.Patch.CancellationReason)
		}

		// Проверяем только активное бронирование: отменённое время не занимает
		if req.Patch.ChangesTime() && merged.IsActive() {
			conflict, err := uc.conflicts.HasConflictExcept(txCtx, merged.ProviderID, merged.BookingDate,
				merged.StartTime, merged.EndTime, merged.ID)
			if err != nil {
				uc.logger.Error("OverrideBooking: failed to check conflicts: %v", err)
				return err
			}
			if conflict {
				uc.logger.Warn("OverrideBooking: provider=%d is busy at %s %s-%s", merged.ProviderID,
					merged.BookingDate.Format(domain.DateFormat), merged.StartTime, merged.EndTime)
				return ErrSlotNotAvailable
			}
		}

		updated, err := uc.bookingRepo.Update(txCtx, &merged)
		if err != nil {
			if errors.Is(err, domain.ErrConflict) {
				uc.logger.Warn("OverrideBooking: storage rejected overlapping booking: %v", err)
				return ErrSlotNotAvailable
			}
			uc.logger.Error("OverrideBooking: failed to update booking id=%d: %v", merged.ID, err)
			return fmt.Errorf("%w: failed to update booking: %v", ErrInternal, err)
		}

		result = updated
		return nil
	})

	if err != nil {
		if errors.Is(err, domain.ErrConflict) && !errors.Is(err, ErrSlotNotAvailable) {
			uc.logger.Warn("OverrideBooking: transaction conflict: %v", err)
			return nil, ErrSlotNotAvailable
		}
		if !domain.IsKnown(err) {
			uc.logger.Error("OverrideBooking: transaction failed: %v", err)
			return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
		}
		return nil, err
	}

	uc.logger.Info("OverrideBooking: booking id=%d updated", result.ID)
	return result, nil
}
