package list_windows

import (
	"errors"
	"net/http"

	"github.com/m04kA/PetCare-BookingService/internal/api/handlers"
	"github.com/m04kA/PetCare-BookingService/internal/service/availability"
)

const (
	msgInvalidProviderID = "некорректный ID провайдера"
	msgProviderNotFound  = "провайдер не найден"
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

// Handle GET /api/v1/providers/{providerId}/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	providerID, err := handlers.PathID(r, "providerId")
	if err != nil {
		h.logger.Warn("GET /providers/{id}/availability - Invalid provider ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	result, err := h.service.ListWindows(r.Context(), providerID)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrProviderNotFound):
			h.logger.Warn("GET /providers/{id}/availability - Provider not found: provider_id=%d", providerID)
			handlers.RespondNotFound(w, msgProviderNotFound)

		default:
			h.logger.Error("GET /providers/{id}/availability - Failed to list windows: provider_id=%d, error=%v",
				providerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /providers/{id}/availability - Windows retrieved successfully: provider_id=%d, count=%d",
		providerID, len(result.Windows))
	handlers.RespondJSON(w, http.StatusOK, result.Windows)
}
