package override_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/PetCare-BookingService/internal/api/handlers"
	"github.com/m04kA/PetCare-BookingService/internal/api/middleware"
	"github.com/m04kA/PetCare-BookingService/internal/domain"
	"github.com/m04kA/PetCare-BookingService/internal/service/bookings/models"
	overrideBooking "github.com/m04kA/PetCare-BookingService/internal/usecase/override_booking"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgInvalidPatch     = "некорректные поля для изменения"
	msgEmptyPatch       = "нет полей для изменения"
	msgAdminOnly        = "изменение доступно только администратору"
	msgNotFound         = "бронирование не найдено"
	msgSlotNotAvailable = "новое время недоступно"
	msgCannotChange     = "бронирование не может перейти в этот статус"
)

type Handler struct {
	useCase OverrideBookingUseCase
	logger  Logger
}

func NewHandler(useCase OverrideBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathID(r, "bookingId")
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id} - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, handlers.MsgMissingUserID)
		return
	}

	var req OverrideRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidRequestBody)
		return
	}

	patch, err := req.ToPatch()
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id} - Invalid patch: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPatch)
		return
	}

	booking, err := h.useCase.Execute(r.Context(), &overrideBooking.Request{
		Actor:     actor,
		BookingID: bookingID,
		Patch:     patch,
	})
	if err != nil {
		switch {
		case errors.Is(err, overrideBooking.ErrAdminOnly):
			h.logger.Warn("PATCH /bookings/{id} - Not admin: user_id=%d", actor.UserID)
			handlers.RespondForbidden(w, msgAdminOnly)

		case errors.Is(err, overrideBooking.ErrEmptyPatch):
			h.logger.Warn("PATCH /bookings/{id} - Empty patch: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgEmptyPatch)

		case errors.Is(err, overrideBooking.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id} - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, overrideBooking.ErrSlotNotAvailable):
			h.logger.Warn("PATCH /bookings/{id} - Time not available: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, domain.ErrInvalidTransition):
			h.logger.Warn("PATCH /bookings/{id} - Invalid transition: booking_id=%d, %v", bookingID, err)
			handlers.RespondConflict(w, msgCannotChange)

		case errors.Is(err, overrideBooking.ErrInvalidInput):
			h.logger.Warn("PATCH /bookings/{id} - Invalid input: %v", err)
			handlers.RespondDomainError(w, err)

		default:
			h.logger.Error("PATCH /bookings/{id} - Failed to override booking: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id} - Booking overridden: booking_id=%d, admin=%d", bookingID, actor.UserID)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainBooking(booking))
}
