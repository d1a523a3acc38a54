package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/PetCare-BookingService/internal/api/handlers"
	"github.com/m04kA/PetCare-BookingService/internal/api/middleware"
	"github.com/m04kA/PetCare-BookingService/internal/service/bookings/models"
	createBooking "github.com/m04kA/PetCare-BookingService/internal/usecase/create_booking"
)

const (
	msgInvalidDate        = "некорректный формат даты бронирования, ожидается YYYY-MM-DD"
	msgInvalidTime        = "некорректный формат времени начала, ожидается HH:MM"
	msgSlotNotAvailable   = "выбранный временной слот недоступен"
	msgProviderNotFound   = "провайдер не найден"
	msgServiceNotFound    = "услуга не найдена"
	msgPetNotFound        = "питомец не найден"
	msgPetNotOwned        = "питомец принадлежит другому пользователю"
	msgForbidden          = "нельзя создать бронирование за другого пользователя"
	msgProviderInactive   = "провайдер не принимает бронирования"
	msgServiceInactive    = "услуга недоступна"
	msgInvalidBookingDate = "дата бронирования в прошлом"
	msgInvalidTimeSlot    = "время вне расписания провайдера"
	msgTooLateToBook      = "слишком поздно для бронирования этого слота"
)

var (
	errInvalidDate = errors.New("invalid booking date")
	errInvalidTime = errors.New("invalid start time")
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, handlers.MsgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(actor)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		if errors.Is(err, errInvalidTime) {
			handlers.RespondBadRequest(w, msgInvalidTime)
		} else {
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	booking, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: user_id=%d, provider_id=%d", useCaseReq.UserID, req.ProviderID)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrProviderNotFound):
			h.logger.Warn("POST /bookings - Provider not found: provider_id=%d", req.ProviderID)
			handlers.RespondNotFound(w, msgProviderNotFound)

		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("POST /bookings - Service not found: provider_id=%d, service_id=%d", req.ProviderID, req.ProviderServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrPetNotFound):
			h.logger.Warn("POST /bookings - Pet not found: pet_id=%d", req.PetID)
			handlers.RespondNotFound(w, msgPetNotFound)

		case errors.Is(err, createBooking.ErrPetNotOwned):
			h.logger.Warn("POST /bookings - Pet not owned: user_id=%d, pet_id=%d", useCaseReq.UserID, req.PetID)
			handlers.RespondForbidden(w, msgPetNotOwned)

		case errors.Is(err, createBooking.ErrForbidden):
			h.logger.Warn("POST /bookings - Booking on behalf of another user: actor=%d, user_id=%d", actor.UserID, req.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, createBooking.ErrProviderInactive):
			h.logger.Warn("POST /bookings - Provider inactive: provider_id=%d", req.ProviderID)
			handlers.RespondBadRequest(w, msgProviderInactive)

		case errors.Is(err, createBooking.ErrServiceInactive):
			h.logger.Warn("POST /bookings - Service inactive: service_id=%d", req.ProviderServiceID)
			handlers.RespondBadRequest(w, msgServiceInactive)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Booking date in the past: user_id=%d, date=%s", useCaseReq.UserID, req.BookingDate)
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, createBooking.ErrInvalidTimeSlot):
			h.logger.Warn("POST /bookings - Time outside availability: provider_id=%d, date=%s, start=%s",
				req.ProviderID, req.BookingDate, req.StartTime)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, createBooking.ErrTooLateToBook):
			h.logger.Warn("POST /bookings - Too late to book: provider_id=%d, date=%s, start=%s",
				req.ProviderID, req.BookingDate, req.StartTime)
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondDomainError(w, err)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, provider_id=%d, error=%v",
				useCaseReq.UserID, req.ProviderID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, user_id=%d, provider_id=%d",
		booking.ID, booking.UserID, booking.ProviderID)
	handlers.RespondJSON(w, http.StatusCreated, models.FromDomainBooking(booking))
}
