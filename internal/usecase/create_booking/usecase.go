package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/PetCare-BookingService/internal/domain"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo      BookingRepository
	providerRepo     ProviderRepository
	petRepo          PetRepository
	slotService      SlotService
	txManager        TransactionManager
	metrics          Metrics
	minNoticeMinutes int
	location         *time.Location
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	providerRepo ProviderRepository,
	petRepo PetRepository,
	slotService SlotService,
	txManager TransactionManager,
	metrics Metrics,
	minNoticeMinutes int,
	location *time.Location,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.UTC
	}
	if metrics == nil {
		metrics = nopMetrics{}
	}
	return &UseCase{
		bookingRepo:      bookingRepo,
		providerRepo:     providerRepo,
		petRepo:          petRepo,
		slotService:      slotService,
		txManager:        txManager,
		metrics:          metrics,
		minNoticeMinutes: minNoticeMinutes,
		location:         location,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка конфликта и вставка выполняются в одной сериализуемой транзакции,
// второе из одновременных пересекающихся бронирований получает ErrSlotNotAvailable.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.Booking, error) {
	uc.logger.Info("CreateBooking: actor=%d(%s), user=%d, pet=%d, provider=%d, service=%d, date=%s, time=%s",
		req.Actor.UserID, req.Actor.Role, req.UserID, req.PetID, req.ProviderID, req.ProviderServiceID,
		req.BookingDate.Format(domain.DateFormat), req.StartTime)

	booking, err := uc.execute(ctx, req)
	switch {
	case err == nil:
		uc.metrics.RecordBookingOutcome(outcomeCreated)
	case errors.Is(err, domain.ErrConflict):
		uc.metrics.RecordBookingOutcome(outcomeConflict)
	default:
		uc.metrics.RecordBookingOutcome(outcomeRejected)
	}
	return booking, err
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*domain.Booking, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Питомец должен принадлежать клиенту
	pet, err := uc.petRepo.GetByID(ctx, req.PetID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			uc.logger.Warn("CreateBooking: pet id=%d not found", req.PetID)
			return nil, ErrPetNotFound
		}
		uc.logger.Error("CreateBooking: failed to get pet id=%d: %v", req.PetID, err)
		return nil, fmt.Errorf("%w: failed to get pet: %v", ErrInternal, err)
	}
	if pet.OwnerID != req.UserID {
		uc.logger.Warn("CreateBooking: pet id=%d is owned by user=%d, not user=%d", pet.ID, pet.OwnerID, req.UserID)
		return nil, ErrPetNotOwned
	}

	// 3. Провайдер и услуга
	provider, err := uc.providerRepo.GetByID(ctx, req.ProviderID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			uc.logger.Warn("CreateBooking: provider id=%d not found", req.ProviderID)
			return nil, ErrProviderNotFound
		}
		uc.logger.Error("CreateBooking: failed to get provider id=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: failed to get provider: %v", ErrInternal, err)
	}
	if !provider.IsActive {
		uc.logger.Warn("CreateBooking: provider id=%d is inactive", provider.ID)
		return nil, ErrProviderInactive
	}

	service, err := uc.providerRepo.GetService(ctx, req.ProviderID, req.ProviderServiceID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found for provider=%d", req.ProviderServiceID, req.ProviderID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", req.ProviderServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.IsActive {
		uc.logger.Warn("CreateBooking: service id=%d is inactive", service.ID)
		return nil, ErrServiceInactive
	}

	// 4. Конец бронирования
	duration := req.ServiceDurationMinutes
	if duration == 0 {
		duration = service.DurationMinutes
	}
	end, err := endTime(req.StartTime, duration)
	if err != nil {
		uc.logger.Warn("CreateBooking: %v", err)
		return nil, err
	}

	// 5. Ограничения по времени для клиентов и провайдеров
	if !req.Actor.IsAdmin() {
		now := uc.timeProvider.Now().In(uc.location)
		if err := validateDate(req.BookingDate, now); err != nil {
			uc.logger.Warn("CreateBooking: date validation failed: %v", err)
			return nil, err
		}
		if err := validateBookingTime(req.BookingDate, req.StartTime, now, uc.minNoticeMinutes); err != nil {
			uc.logger.Warn("CreateBooking: booking time validation failed: %v", err)
			return nil, err
		}
	}

	var result *domain.Booking

	// 6. Проверка конфликта и вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Не-admin бронирует только слот из расписания
		if !req.Actor.IsAdmin() {
			candidates, err := uc.slotService.GenerateCandidateSlots(txCtx, req.ProviderID, req.BookingDate, duration)
			if err != nil {
				uc.logger.Error("CreateBooking: failed to generate slots: %v", err)
				return err
			}
			if !matchesSlot(candidates, req.StartTime, end) {
				uc.logger.Warn("CreateBooking: %s-%s is not a slot of provider=%d on %s",
					req.StartTime, end, req.ProviderID, req.BookingDate.Format(domain.DateFormat))
				return ErrInvalidTimeSlot
			}
		}

		// 6.2. Активные бронирования этой даты читаются с блокировкой
		conflict, err := uc.slotService.HasConflict(txCtx, req.ProviderID, req.BookingDate, req.StartTime, end)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to check conflicts: %v", err)
			return err
		}
		if conflict {
			uc.logger.Warn("CreateBooking: slot %s-%s of provider=%d on %s is taken",
				req.StartTime, end, req.ProviderID, req.BookingDate.Format(domain.DateFormat))
			return ErrSlotNotAvailable
		}

		// 6.3. Создаем бронирование
		created, err := uc.bookingRepo.Create(txCtx, &domain.Booking{
			UserID:            req.UserID,
			PetID:             req.PetID,
			ProviderID:        req.ProviderID,
			ProviderServiceID: req.ProviderServiceID,
			BookingDate:       domain.DateOnly(req.BookingDate),
			StartTime:         req.StartTime,
			EndTime:           end,
			BookingMode:       req.BookingMode,
			Status:            domain.StatusPending,
			PriceAtBooking:    service.Price,
			ProviderNotes:     req.ProviderNotes,
		})
		if err != nil {
			if errors.Is(err, domain.ErrConflict) {
				uc.logger.Warn("CreateBooking: storage rejected overlapping booking: %v", err)
				return ErrSlotNotAvailable
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		// Ошибка сериализации на COMMIT приходит уже после fn
		if errors.Is(err, domain.ErrConflict) && !errors.Is(err, ErrSlotNotAvailable) {
			uc.logger.Warn("CreateBooking: transaction conflict: %v", err)
			return nil, ErrSlotNotAvailable
		}
		if !domain.IsKnown(err) {
			uc.logger.Error("CreateBooking: transaction failed: %v", err)
			return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
		}
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)
	return result, nil
}

type nopMetrics struct{}

func (nopMetrics) RecordBookingOutcome(string) {}
