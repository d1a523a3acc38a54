package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/PetCare-BookingService/internal/domain"
	"github.com/m04kA/PetCare-BookingService/internal/service/availability/models"
)

// Service сервис управления расписанием провайдера и блокировками
type Service struct {
	availabilityRepo AvailabilityRepository
	providerRepo     ProviderRepository
	access           AccessChecker
	logger           Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(
	availabilityRepo AvailabilityRepository,
	providerRepo ProviderRepository,
	access AccessChecker,
	logger Logger,
) *Service {
	return &Service{
		availabilityRepo: availabilityRepo,
		providerRepo:     providerRepo,
		access:           access,
		logger:           logger,
	}
}

// ListWindows возвращает все окна провайдера, включая выключенные.
// Публичный метод - доступен всем.
func (s *Service) ListWindows(ctx context.Context, providerID int64) (*models.WindowListResponse, error) {
	s.logger.Info("ListWindows: fetching windows for provider=%d", providerID)

	if err := s.ensureProvider(ctx, providerID); err != nil {
		return nil, err
	}

	windows, err := s.availabilityRepo.ListAllWindows(ctx, providerID)
	if err != nil {
		s.logger.Error("ListWindows: repository error for provider=%d: %v", providerID, err)
		return nil, fmt.Errorf("%w: ListWindows - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListWindows: successfully fetched %d windows for provider=%d", len(windows), providerID)
	return models.FromDomainWindowList(windows), nil
}

// CreateWindow создает окно расписания.
// Доступно самому провайдеру и администратору.
func (s *Service) CreateWindow(ctx context.Context, req *models.CreateWindowRequest) (*models.WindowResponse, error) {
	s.logger.Info("CreateWindow: creating window for provider=%d, day=%d, %s-%s by actor=%d",
		req.ProviderID, req.DayOfWeek, req.StartTime, req.EndTime, req.Actor.UserID)

	// 1. Валидируем входные данные
	window := req.ToDomainWindow()
	if err := window.Validate(); err != nil {
		s.logger.Warn("CreateWindow: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем права доступа
	if err := s.authorize(ctx, req.Actor, req.ProviderID); err != nil {
		return nil, err
	}

	// 3. Создаем окно
	created, err := s.availabilityRepo.CreateWindow(ctx, window)
	if err != nil {
		s.logger.Error("CreateWindow: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateWindow - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateWindow: successfully created window id=%d", created.ID)
	return models.FromDomainWindow(created), nil
}

// UpdateWindow частично обновляет окно расписания.
// Патч накладывается на копию, результат валидируется целиком.
func (s *Service) UpdateWindow(ctx context.Context, req *models.UpdateWindowRequest) (*models.WindowResponse, error) {
	s.logger.Info("UpdateWindow: updating window id=%d of provider=%d by actor=%d",
		req.WindowID, req.ProviderID, req.Actor.UserID)

	if req.Patch.IsEmpty() {
		return nil, fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}

	// 1. Проверяем права доступа
	if err := s.authorize(ctx, req.Actor, req.ProviderID); err != nil {
		return nil, err
	}

	// 2. Получаем существующее окно
	window, err := s.availabilityRepo.GetWindow(ctx, req.WindowID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn("UpdateWindow: window id=%d not found", req.WindowID)
			return nil, ErrWindowNotFound
		}
		s.logger.Error("UpdateWindow: repository error for window id=%d: %v", req.WindowID, err)
		return nil, fmt.Errorf("%w: UpdateWindow - repository error: %v", ErrInternal, err)
	}
	if window.ProviderID != req.ProviderID {
		s.logger.Warn("UpdateWindow: window id=%d belongs to provider=%d, not %d",
			req.WindowID, window.ProviderID, req.ProviderID)
		return nil, ErrWindowNotFound
	}

	// 3. Применяем патч и валидируем результат
	merged := *window
	req.Patch.ApplyTo(&merged)
	if err := merged.Validate(); err != nil {
		s.logger.Warn("UpdateWindow: validation failed for window id=%d: %v", req.WindowID, err)
		return nil, err
	}

	// 4. Сохраняем
	updated, err := s.availabilityRepo.UpdateWindow(ctx, &merged)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn("UpdateWindow: window id=%d not found during update", req.WindowID)
			return nil, ErrWindowNotFound
		}
		s.logger.Error("UpdateWindow: repository error for window id=%d: %v", req.WindowID, err)
		return nil, fmt.Errorf("%w: UpdateWindow - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateWindow: successfully updated window id=%d", updated.ID)
	return models.FromDomainWindow(updated), nil
}

// DeleteWindow удаляет окно расписания; созданные бронирования остаются
func (s *Service) DeleteWindow(ctx context.Context, actor domain.Actor, providerID, windowID int64) error {
	s.logger.Info("DeleteWindow: deleting window id=%d of provider=%d by actor=%d", windowID, providerID, actor.UserID)

	if err := s.authorize(ctx, actor, providerID); err != nil {
		return err
	}

	if err := s.availabilityRepo.DeleteWindow(ctx, providerID, windowID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn("DeleteWindow: window id=%d not found", windowID)
			return ErrWindowNotFound
		}
		s.logger.Error("DeleteWindow: repository error for window id=%d: %v", windowID, err)
		return fmt.Errorf("%w: DeleteWindow - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteWindow: successfully deleted window id=%d", windowID)
	return nil
}

// CreateBlockedDate блокирует весь день
func (s *Service) CreateBlockedDate(ctx context.Context, req *models.CreateBlockedDateRequest) (*models.BlockedDateResponse, error) {
	s.logger.Info("CreateBlockedDate: blocking %s for provider=%d by actor=%d",
		req.BlockedDate.Format(domain.DateFormat), req.ProviderID, req.Actor.UserID)

	if req.BlockedDate.IsZero() {
		return nil, fmt.Errorf("%w: blockedDate is required", ErrInvalidInput)
	}
	if req.Reason != nil && len(*req.Reason) > domain.MaxBlockReasonLength {
		return nil, fmt.Errorf("%w: reason must be at most %d characters", ErrInvalidInput, domain.MaxBlockReasonLength)
	}

	if err := s.authorize(ctx, req.Actor, req.ProviderID); err != nil {
		return nil, err
	}

	created, err := s.availabilityRepo.CreateBlockedDate(ctx, &domain.BlockedDate{
		ProviderID:  req.ProviderID,
		BlockedDate: domain.DateOnly(req.BlockedDate),
		Reason:      req.Reason,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			s.logger.Warn("CreateBlockedDate: %s is already blocked for provider=%d",
				req.BlockedDate.Format(domain.DateFormat), req.ProviderID)
			return nil, ErrDateAlreadyBlocked
		}
		s.logger.Error("CreateBlockedDate: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateBlockedDate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateBlockedDate: successfully created block id=%d", created.ID)
	return models.FromDomainBlockedDate(created), nil
}

// DeleteBlockedDate снимает блокировку дня
func (s *Service) DeleteBlockedDate(ctx context.Context, actor domain.Actor, providerID, blockID int64) error {
	s.logger.Info("DeleteBlockedDate: deleting block id=%d of provider=%d by actor=%d", blockID, providerID, actor.UserID)

	if err := s.authorize(ctx, actor, providerID); err != nil {
		return err
	}

	if err := s.availabilityRepo.DeleteBlockedDate(ctx, providerID, blockID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn("DeleteBlockedDate: block id=%d not found", blockID)
			return ErrBlockNotFound
		}
		s.logger.Error("DeleteBlockedDate: repository error for block id=%d: %v", blockID, err)
		return fmt.Errorf("%w: DeleteBlockedDate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteBlockedDate: successfully deleted block id=%d", blockID)
	return nil
}

// CreateBlockedInterval блокирует часть дня (может переходить через полночь)
func (s *Service) CreateBlockedInterval(ctx context.Context, req *models.CreateBlockedIntervalRequest) (*models.BlockedIntervalResponse, error) {
	s.logger.Info("CreateBlockedInterval: blocking %s - %s for provider=%d by actor=%d",
		req.BlockStart.Format(time.RFC3339), req.BlockEnd.Format(time.RFC3339), req.ProviderID, req.Actor.UserID)

	block := &domain.BlockedInterval{
		ProviderID: req.ProviderID,
		BlockStart: req.BlockStart,
		BlockEnd:   req.BlockEnd,
		Note:       req.Note,
	}
	if err := block.Validate(); err != nil {
		s.logger.Warn("CreateBlockedInterval: validation failed: %v", err)
		return nil, err
	}
	if req.Note != nil && len(*req.Note) > domain.MaxBlockReasonLength {
		return nil, fmt.Errorf("%w: note must be at most %d characters", ErrInvalidInput, domain.MaxBlockReasonLength)
	}

	if err := s.authorize(ctx, req.Actor, req.ProviderID); err != nil {
		return nil, err
	}

	created, err := s.availabilityRepo.CreateBlockedInterval(ctx, block)
	if err != nil {
		s.logger.Error("CreateBlockedInterval: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateBlockedInterval - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateBlockedInterval: successfully created block id=%d", created.ID)
	return models.FromDomainBlockedInterval(created), nil
}

// DeleteBlockedInterval снимает блокировку части дня
func (s *Service) DeleteBlockedInterval(ctx context.Context, actor domain.Actor, providerID, blockID int64) error {
	s.logger.Info("DeleteBlockedInterval: deleting block id=%d of provider=%d by actor=%d", blockID, providerID, actor.UserID)

	if err := s.authorize(ctx, actor, providerID); err != nil {
		return err
	}

	if err := s.availabilityRepo.DeleteBlockedInterval(ctx, providerID, blockID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn("DeleteBlockedInterval: block id=%d not found", blockID)
			return ErrBlockNotFound
		}
		s.logger.Error("DeleteBlockedInterval: repository error for block id=%d: %v", blockID, err)
		return fmt.Errorf("%w: DeleteBlockedInterval - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteBlockedInterval: successfully deleted block id=%d", blockID)
	return nil
}

// Вспомогательные методы

// authorize проверяет существование провайдера и права вызывающего на него
func (s *Service) authorize(ctx context.Context, actor domain.Actor, providerID int64) error {
	if err := s.ensureProvider(ctx, providerID); err != nil {
		return err
	}

	if err := s.access.CanManageProvider(ctx, actor, providerID); err != nil {
		if errors.Is(err, domain.ErrRepository) {
			s.logger.Error("authorize: access check failed for provider=%d: %v", providerID, err)
			return err
		}
		s.logger.Warn("authorize: actor=%d(%s) cannot manage provider=%d", actor.UserID, actor.Role, providerID)
		return ErrAccessDenied
	}

	return nil
}

func (s *Service) ensureProvider(ctx context.Context, providerID int64) error {
	if providerID <= 0 {
		return fmt.Errorf("%w: providerID must be positive", ErrInvalidInput)
	}

	if _, err := s.providerRepo.GetByID(ctx, providerID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn("ensureProvider: provider id=%d not found", providerID)
			return ErrProviderNotFound
		}
		s.logger.Error("ensureProvider: failed to get provider id=%d: %v", providerID, err)
		return fmt.Errorf("%w: failed to get provider: %v", ErrInternal, err)
	}

	return nil
}
