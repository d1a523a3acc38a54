package update_window

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
	msgInvalidWindowID   = "некорректный ID окна расписания"
	msgInvalidWindow     = "некорректные параметры окна расписания"
	msgWindowNotFound    = "окно расписания не найдено"
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

// Handle PATCH /api/v1/providers/{providerId}/availability/{windowId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	providerID, err := handlers.PathID(r, "providerId")
	if err != nil {
		h.logger.Warn("PATCH /providers/{id}/availability/{windowId} - Invalid provider ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	windowID, err := handlers.PathID(r, "windowId")
	if err != nil {
		h.logger.Warn("PATCH /providers/{id}/availability/{windowId} - Invalid window ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidWindowID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, handlers.MsgMissingUserID)
		return
	}

	var patch models.WindowPatch
	if err := handlers.DecodeJSON(r, &patch); err != nil {
		h.logger.Warn("PATCH /providers/{id}/availability/{windowId} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidRequestBody)
		return
	}

	window, err := h.service.UpdateWindow(r.Context(), &models.UpdateWindowRequest{
		Actor:      actor,
		ProviderID: providerID,
		WindowID:   windowID,
		Patch:      patch,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			h.logger.Warn("PATCH /providers/{id}/availability/{windowId} - Invalid window: %v", err)
			handlers.RespondBadRequest(w, msgInvalidWindow)

		case errors.Is(err, availability.ErrWindowNotFound):
			h.logger.Warn("PATCH /providers/{id}/availability/{windowId} - Window not found: window_id=%d", windowID)
			handlers.RespondNotFound(w, msgWindowNotFound)

		case errors.Is(err, availability.ErrProviderNotFound):
			h.logger.Warn("PATCH /providers/{id}/availability/{windowId} - Provider not found: provider_id=%d", providerID)
			handlers.RespondNotFound(w, msgProviderNotFound)

		case errors.Is(err, availability.ErrAccessDenied):
			h.logger.Warn("PATCH /providers/{id}/availability/{windowId} - Access denied: provider_id=%d, user_id=%d",
				providerID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("PATCH /providers/{id}/availability/{windowId} - Failed to update window: window_id=%d, error=%v",
				windowID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /providers/{id}/availability/{windowId} - Window updated: provider_id=%d, window_id=%d",
		providerID, windowID)
	handlers.RespondJSON(w, http.StatusOK, window)
}
