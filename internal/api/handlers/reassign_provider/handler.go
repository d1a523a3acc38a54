package reassign_provider

import (
	"errors"
	"net/http"

	"github.com/m04kA/PetCare-BookingService/internal/api/handlers"
	"github.com/m04kA/PetCare-BookingService/internal/api/middleware"
	"github.com/m04kA/PetCare-BookingService/internal/domain"
	"github.com/m04kA/PetCare-BookingService/internal/service/bookings/models"
	reassignProvider "github.com/m04kA/PetCare-BookingService/internal/usecase/reassign_provider"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgAdminOnly        = "переназначение доступно только администратору"
	msgBookingNotFound  = "бронирование не найдено"
	msgProviderNotFound = "провайдер не найден"
	msgServiceNotFound  = "услуга не найдена"
	msgProviderInactive = "провайдер не принимает бронирования"
	msgSlotNotAvailable = "время занято у нового провайдера"
	msgCannotReassign   = "бронирование в конечном статусе нельзя переназначить"
	msgServiceRequired  = "услуга бронирования не оказывается новым провайдером, укажите providerServiceId"
)

type Handler struct {
	useCase ReassignProviderUseCase
	logger  Logger
}

func NewHandler(useCase ReassignProviderUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/reassign
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathID(r, "bookingId")
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/reassign - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, handlers.MsgMissingUserID)
		return
	}

	var req ReassignRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/reassign - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidRequestBody)
		return
	}

	booking, err := h.useCase.Execute(r.Context(), &reassignProvider.Request{
		Actor:                actor,
		BookingID:            bookingID,
		NewProviderID:        req.ProviderID,
		NewProviderServiceID: req.ProviderServiceID,
	})
	if err != nil {
		switch {
		case errors.Is(err, reassignProvider.ErrAdminOnly):
			h.logger.Warn("POST /bookings/{id}/reassign - Not admin: user_id=%d", actor.UserID)
			handlers.RespondForbidden(w, msgAdminOnly)

		case errors.Is(err, reassignProvider.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/reassign - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, reassignProvider.ErrProviderNotFound):
			h.logger.Warn("POST /bookings/{id}/reassign - Provider not found: provider_id=%d", req.ProviderID)
			handlers.RespondNotFound(w, msgProviderNotFound)

		case errors.Is(err, reassignProvider.ErrServiceNotFound):
			h.logger.Warn("POST /bookings/{id}/reassign - Service not found: provider_id=%d", req.ProviderID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, reassignProvider.ErrProviderInactive):
			h.logger.Warn("POST /bookings/{id}/reassign - Provider inactive: provider_id=%d", req.ProviderID)
			handlers.RespondBadRequest(w, msgProviderInactive)

		case errors.Is(err, reassignProvider.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings/{id}/reassign - Time taken: booking_id=%d, provider_id=%d", bookingID, req.ProviderID)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, reassignProvider.ErrServiceRequired):
			h.logger.Warn("POST /bookings/{id}/reassign - Service required: booking_id=%d, provider_id=%d", bookingID, req.ProviderID)
			handlers.RespondBadRequest(w, msgServiceRequired)

		case errors.Is(err, reassignProvider.ErrInvalidInput):
			h.logger.Warn("POST /bookings/{id}/reassign - Invalid input: %v", err)
			handlers.RespondDomainError(w, err)

		case errors.Is(err, domain.ErrInvalidTransition):
			h.logger.Warn("POST /bookings/{id}/reassign - Rejected: booking_id=%d, %v", bookingID, err)
			handlers.RespondConflict(w, msgCannotReassign)

		default:
			h.logger.Error("POST /bookings/{id}/reassign - Failed to reassign: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/reassign - Booking reassigned: booking_id=%d, provider_id=%d",
		bookingID, booking.ProviderID)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainBooking(booking))
}
