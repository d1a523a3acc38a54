package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/PetCare-BookingService/internal/domain"
	"github.com/m04kA/PetCare-BookingService/internal/service/bookings/models"
	"github.com/m04kA/PetCare-BookingService/pkg/ptr"
)

// Service сервис чтения бронирований
type Service struct {
	bookingRepo BookingRepository
	access      AccessChecker
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	access AccessChecker,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		access:      access,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID.
// Видят его клиент, провайдер бронирования и администратор.
func (s *Service) GetByID(ctx context.Context, actor domain.Actor, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for actor=%d(%s)", id, actor.UserID, actor.Role)

	if id <= 0 {
		return nil, fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if err := s.access.CanAccessBooking(ctx, actor, booking); err != nil {
		s.logger.Warn("GetByID: access denied for actor=%d to booking id=%d", actor.UserID, id)
		return nil, accessError(err)
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает историю бронирований пользователя, включая завершённые и отменённые.
// Опционально фильтрует по статусу.
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d, status=%s", req.UserID, ptr.Deref(req.Status, "any"))

	if req.UserID <= 0 {
		return nil, fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	// Историю видит только сам пользователь или администратор
	if !req.Actor.IsAdmin() && req.Actor.UserID != req.UserID {
		s.logger.Warn("GetUserBookings: actor=%d cannot read bookings of user=%d", req.Actor.UserID, req.UserID)
		return nil, ErrAccessDenied
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetUserBookings: invalid status=%s for user=%d", ptr.Deref(req.Status, "any"), req.UserID)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for user=%d", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// GetProviderBookings получает бронирования провайдера с фильтрацией
// по периоду, статусу и включению неактивных бронирований.
// Доступно самому провайдеру и администратору.
//
// Примеры использования:
// - Все активные бронирования: GetProviderBookings(ctx, &GetProviderBookingsRequest{ProviderID: 10})
// - Бронирования на дату: StartDate и EndDate указывают на одну дату
// - Только подтвержденные: Status = "confirmed"
// - Включая отменённые: IncludeInactive = true
func (s *Service) GetProviderBookings(ctx context.Context, req *models.GetProviderBookingsRequest) (*models.BookingListResponse, error) {
	logMsg := fmt.Sprintf("GetProviderBookings: fetching bookings for provider=%d, actor=%d", req.ProviderID, req.Actor.UserID)
	if req.StartDate != nil && req.EndDate != nil {
		logMsg += fmt.Sprintf(", period=%s to %s", req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.IncludeInactive {
		logMsg += ", includeInactive=true"
	}
	s.logger.Info(logMsg)

	if req.ProviderID <= 0 {
		return nil, fmt.Errorf("%w: providerID must be positive", ErrInvalidInput)
	}

	if err := s.access.CanManageProvider(ctx, req.Actor, req.ProviderID); err != nil {
		s.logger.Warn("GetProviderBookings: actor=%d cannot read bookings of provider=%d", req.Actor.UserID, req.ProviderID)
		return nil, accessError(err)
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetProviderBookings: invalid filter for provider=%d: %v", req.ProviderID, err)
		return nil, err
	}

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("GetProviderBookings: repository error for provider=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: GetProviderBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetProviderBookings: successfully fetched %d bookings for provider=%d", len(bookings), req.ProviderID)
	return models.FromDomainBookingList(bookings), nil
}

// accessError сохраняет ошибку хранилища, остальное сводит к ErrAccessDenied
func accessError(err error) error {
	if errors.Is(err, domain.ErrRepository) {
		return err
	}
	return ErrAccessDenied
}
