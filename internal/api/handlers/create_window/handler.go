package create_window

import (
	"errors"
	"net/http"

	"github.com/m04kA/PetCare-BookingService/internal/api/handlers"
	"github.com/m04kA/PetCare-BookingService/internal/api/middleware"
	"github.com/m04kA/PetCare-BookingService/internal/domain"
	"github.com/m04kA/PetCare-BookingService/internal/service/availability"
	"github.com/m04kA/PetCare-BookingService/internal/service/availability/models"
)

const (
	msgInvalidProviderID = "некорректный ID провайдера"
	msgInvalidWindow     = "некорректные параметры окна расписания"
	msgProviderNotFound  = "провайдер не найден"
	msgForbidden         = "доступ запрещен"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/providers/{providerId}/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	providerID, err := handlers.PathID(r, "providerId")
	if err != nil {
		h.logger.Warn("POST /providers/{id}/availability - Invalid provider ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, handlers.MsgMissingUserID)
		return
	}

	var req models.CreateWindowRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /providers/{id}/availability - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidRequestBody)
		return
	}
	req.Actor = actor
	req.ProviderID = providerID

	window, err := h.service.CreateWindow(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			h.logger.Warn("POST /providers/{id}/availability - Invalid window: %v", err)
			handlers.RespondBadRequest(w, msgInvalidWindow)

		case errors.Is(err, availability.ErrProviderNotFound):
			h.logger.Warn("POST /providers/{id}/availability - Provider not found: provider_id=%d", providerID)
			handlers.RespondNotFound(w, msgProviderNotFound)

		case errors.Is(err, availability.ErrAccessDenied):
			h.logger.Warn("POST /providers/{id}/availability - Access denied: provider_id=%d, user_id=%d",
				providerID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("POST /providers/{id}/availability - Failed to create window: provider_id=%d, error=%v",
				providerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /providers/{id}/availability - Window created: provider_id=%d, window_id=%d",
		providerID, window.ID)
	handlers.RespondJSON(w, http.StatusCreated, window)
}
