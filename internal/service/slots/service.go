package slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/PetCare-BookingService/internal/domain"
	"github.com/m04kA/PetCare-BookingService/pkg/ptr"
	"github.com/m04kA/PetCare-BookingService/pkg/types"
)

// Service генератор слотов и проверка конфликтов для провайдера на дату.
// Все обращения к хранилищу идут через ctx, поэтому внутри транзакции
// бронирования читаются с блокировкой.
type Service struct {
	availabilityRepo AvailabilityRepository
	bookingRepo      BookingRepository
	providerRepo     ProviderRepository
	location         *time.Location
	logger           Logger
}

// NewService создает новый экземпляр сервиса слотов.
// location задаёт часовой пояс, в котором блокировки обрезаются по календарной дате.
func NewService(
	availabilityRepo AvailabilityRepository,
	bookingRepo BookingRepository,
	providerRepo ProviderRepository,
	location *time.Location,
	logger Logger,
) *Service {
	if location == nil {
		location = time.UTC
	}
	return &Service{
		availabilityRepo: availabilityRepo,
		bookingRepo:      bookingRepo,
		providerRepo:     providerRepo,
		location:         location,
		logger:           logger,
	}
}

// GenerateCandidateSlots возвращает кандидатов на дату без учёта бронирований.
// Пустой результат означает, что у провайдера нет часов в этот день или день заблокирован.
func (s *Service) GenerateCandidateSlots(ctx context.Context, providerID int64, date time.Time, durationMinutes int) ([]domain.Slot, error) {
	if err := validateQuery(providerID, date); err != nil {
		return nil, err
	}
	if durationMinutes < domain.MinServiceDurationMinutes || durationMinutes > domain.MaxServiceDurationMinutes {
		return nil, fmt.Errorf("%w: serviceDurationMinutes must be in range %d-%d, got %d",
			ErrInvalidInput, domain.MinServiceDurationMinutes, domain.MaxServiceDurationMinutes, durationMinutes)
	}

	if err := s.ensureProvider(ctx, providerID); err != nil {
		return nil, err
	}

	day := domain.DateOnly(date)
	windows, err := s.availabilityRepo.ListWindows(ctx, providerID, int(day.Weekday()))
	if err != nil {
		s.logger.Error("GenerateCandidateSlots: failed to list windows for provider=%d: %v", providerID, err)
		return nil, fmt.Errorf("%w: GenerateCandidateSlots - list windows: %v", ErrRepository, err)
	}
	if len(windows) == 0 {
		return []domain.Slot{}, nil
	}

	blocked, err := s.availabilityRepo.HasBlockedDate(ctx, providerID, day)
	if err != nil {
		s.logger.Error("GenerateCandidateSlots: failed to check blocked date for provider=%d: %v", providerID, err)
		return nil, fmt.Errorf("%w: GenerateCandidateSlots - blocked date: %v", ErrRepository, err)
	}
	if blocked {
		s.logger.Info("GenerateCandidateSlots: provider=%d is blocked on %s", providerID, day.Format(domain.DateFormat))
		return []domain.Slot{}, nil
	}

	return generate(windows, durationMinutes), nil
}

// FilterAvailable помечает каждый слот isAvailable по активным бронированиям и блокировкам даты
func (s *Service) FilterAvailable(ctx context.Context, providerID int64, date time.Time, slots []domain.Slot) ([]domain.Slot, error) {
	if err := validateQuery(providerID, date); err != nil {
		return nil, err
	}

	busy, err := s.busyIntervals(ctx, providerID, domain.DateOnly(date), 0)
	if err != nil {
		return nil, err
	}

	return markAvailable(slots, busy), nil
}

// HasConflict проверяет пересечение [start, end) с активными бронированиями и блокировками
func (s *Service) HasConflict(ctx context.Context, providerID int64, date time.Time, start, end types.TimeString) (bool, error) {
	return s.HasConflictExcept(ctx, providerID, date, start, end, 0)
}

// HasConflictExcept то же, что HasConflict, но игнорирует бронирование excludeBookingID
// (перенос существующего бронирования не должен конфликтовать сам с собой)
func (s *Service) HasConflictExcept(
	ctx context.Context,
	providerID int64,
	date time.Time,
	start, end types.TimeString,
	excludeBookingID int64,
) (bool, error) {
	if err := validateQuery(providerID, date); err != nil {
		return false, err
	}

	candidate := interval{start: start.Minutes(), end: end.Minutes()}
	if candidate.start < 0 || candidate.end < 0 || candidate.start >= candidate.end {
		return false, fmt.Errorf("%w: interval %s-%s is invalid", ErrInvalidInput, start, end)
	}

	busy, err := s.busyIntervals(ctx, providerID, domain.DateOnly(date), excludeBookingID)
	if err != nil {
		return false, err
	}

	return conflicts(candidate, busy), nil
}

// busyIntervals собирает занятые интервалы даты: активные бронирования,
// блокировки части дня (обрезанные по дате) и блокировку всего дня
func (s *Service) busyIntervals(ctx context.Context, providerID int64, day time.Time, excludeBookingID int64) ([]interval, error) {
	bookings, err := s.bookingRepo.List(ctx, domain.BookingsFilter{
		ProviderID: ptr.Ptr(providerID),
		StartDate:  &day,
		EndDate:    &day,
	})
	if err != nil {
		// Конкурентная запись в ту же дату - это конфликт, а не отказ хранилища
		if errors.Is(err, domain.ErrConflict) {
			s.logger.Warn("busyIntervals: concurrent write for provider=%d: %v", providerID, err)
			return nil, fmt.Errorf("busyIntervals - list bookings: %w", err)
		}
		s.logger.Error("busyIntervals: failed to get bookings for provider=%d: %v", providerID, err)
		return nil, fmt.Errorf("%w: busyIntervals - list bookings: %v", ErrRepository, err)
	}

	busy := make([]interval, 0, len(bookings))
	for _, b := range bookings {
		if !b.IsActive() || b.ID == excludeBookingID {
			continue
		}
		busy = append(busy, interval{start: b.StartTime.Minutes(), end: b.EndTime.Minutes()})
	}

	blockedDay, err := s.availabilityRepo.HasBlockedDate(ctx, providerID, day)
	if err != nil {
		s.logger.Error("busyIntervals: failed to check blocked date for provider=%d: %v", providerID, err)
		return nil, fmt.Errorf("%w: busyIntervals - blocked date: %v", ErrRepository, err)
	}
	if blockedDay {
		busy = append(busy, interval{start: 0, end: types.MinutesPerDay})
	}

	y, m, d := day.Date()
	from := time.Date(y, m, d, 0, 0, 0, 0, s.location)
	blocks, err := s.availabilityRepo.ListBlockedIntervals(ctx, providerID, from, from.AddDate(0, 0, 1))
	if err != nil {
		s.logger.Error("busyIntervals: failed to list blocked intervals for provider=%d: %v", providerID, err)
		return nil, fmt.Errorf("%w: busyIntervals - list blocked intervals: %v", ErrRepository, err)
	}
	for _, block := range blocks {
		if start, end, ok := block.MinutesOn(day, s.location); ok {
			busy = append(busy, interval{start: start, end: end})
		}
	}

	return busy, nil
}

func (s *Service) ensureProvider(ctx context.Context, providerID int64) error {
	if _, err := s.providerRepo.GetByID(ctx, providerID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn("GenerateCandidateSlots: provider id=%d not found", providerID)
			return fmt.Errorf("%w: id=%d", ErrUnknownProvider, providerID)
		}
		s.logger.Error("GenerateCandidateSlots: failed to get provider id=%d: %v", providerID, err)
		return fmt.Errorf("%w: ensureProvider - get provider: %v", ErrRepository, err)
	}
	return nil
}

func validateQuery(providerID int64, date time.Time) error {
	if providerID <= 0 {
		return fmt.Errorf("%w: providerID must be positive", ErrInvalidInput)
	}
	if date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	return nil
}
