package change_status

import (
	"errors"
	"net/http"

	"github.com/m04kA/PetCare-BookingService/internal/api/handlers"
	"github.com/m04kA/PetCare-BookingService/internal/api/middleware"
	"github.com/m04kA/PetCare-BookingService/internal/domain"
	"github.com/m04kA/PetCare-BookingService/internal/service/bookings/models"
	changeStatus "github.com/m04kA/PetCare-BookingService/internal/usecase/change_status"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgInvalidStatus    = "некорректный статус бронирования"
	msgNotFound         = "бронирование не найдено"
	msgForbidden        = "недостаточно прав для смены статуса"
	msgCannotChange     = "бронирование не может перейти в этот статус"
)

type Handler struct {
	useCase ChangeStatusUseCase
	logger  Logger
}

func NewHandler(useCase ChangeStatusUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathID(r, "bookingId")
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/status - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("PATCH /bookings/{id}/status - Missing user ID")
		handlers.RespondUnauthorized(w, handlers.MsgMissingUserID)
		return
	}

	var req ChangeStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(actor, bookingID)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/status - Invalid status: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStatus)
		return
	}

	booking, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, changeStatus.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/status - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, domain.ErrOwnership):
			h.logger.Warn("PATCH /bookings/{id}/status - Access denied: booking_id=%d, user_id=%d, role=%s",
				bookingID, actor.UserID, actor.Role)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, domain.ErrInvalidTransition):
			h.logger.Warn("PATCH /bookings/{id}/status - Invalid transition: booking_id=%d, %v", bookingID, err)
			handlers.RespondConflict(w, msgCannotChange)

		case errors.Is(err, domain.ErrInvalidInput):
			h.logger.Warn("PATCH /bookings/{id}/status - Invalid input: booking_id=%d, %v", bookingID, err)
			handlers.RespondDomainError(w, err)

		default:
			h.logger.Error("PATCH /bookings/{id}/status - Failed to change status: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/status - Status changed successfully: booking_id=%d, status=%s, user_id=%d",
		bookingID, booking.Status, actor.UserID)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainBooking(booking))
}
