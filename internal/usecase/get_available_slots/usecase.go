package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/PetCare-BookingService/internal/domain"
)

// UseCase use case для получения слотов провайдера на дату
type UseCase struct {
	slotService      SlotService
	minNoticeMinutes int
	location         *time.Location
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case.
// minNoticeMinutes - минимальный запас до начала слота для бронирования на сегодня.
func NewUseCase(slotService SlotService, minNoticeMinutes int, location *time.Location, logger Logger) *UseCase {
	if location == nil {
		location = time.UTC
	}
	return &UseCase{
		slotService:      slotService,
		minNoticeMinutes: minNoticeMinutes,
		location:         location,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case получения слотов.
// Клиенту возвращаются только доступные слоты; администратор может запросить полную размеченную выдачу.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: actor=%d(%s), provider=%d, date=%s, duration=%d, full=%t",
		req.Actor.UserID, req.Actor.Role, req.ProviderID, req.Date.Format(domain.DateFormat),
		req.ServiceDurationMinutes, req.IncludeUnavailable)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Кандидаты по расписанию
	candidates, err := uc.slotService.GenerateCandidateSlots(ctx, req.ProviderID, req.Date, req.ServiceDurationMinutes)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: failed to generate slots for provider=%d: %v", req.ProviderID, err)
		return nil, err
	}

	// 3. Разметка по бронированиям и блокировкам
	marked, err := uc.slotService.FilterAvailable(ctx, req.ProviderID, req.Date, dedupe(candidates))
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to filter slots for provider=%d: %v", req.ProviderID, err)
		return nil, err
	}

	// 4. Клиентская выдача: только свободные и не в прошлом
	if !req.IncludeUnavailable {
		now := uc.timeProvider.Now().In(uc.location)
		marked = onlyAvailable(marked)
		if !req.Actor.IsAdmin() {
			marked = notBefore(marked, req.Date, now, uc.minNoticeMinutes)
		}
	}

	slots := make([]Slot, len(marked))
	for i, s := range marked {
		slots[i] = Slot{StartTime: s.StartTime, EndTime: s.EndTime, IsAvailable: s.IsAvailable}
	}

	uc.logger.Info("GetAvailableSlots: provider=%d, date=%s, returned %d of %d candidate slots",
		req.ProviderID, req.Date.Format(domain.DateFormat), len(slots), len(candidates))

	return &Response{
		ProviderID:             req.ProviderID,
		Date:                   req.Date,
		ServiceDurationMinutes: req.ServiceDurationMinutes,
		Slots:                  slots,
	}, nil
}

func onlyAvailable(slots []domain.Slot) []domain.Slot {
	result := make([]domain.Slot, 0, len(slots))
	for _, s := range slots {
		if s.IsAvailable {
			result = append(result, s)
		}
	}
	return result
}
