package create_blocked_interval

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
	msgInvalidBlock      = "некорректный интервал блокировки"
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

// Handle POST /api/v1/providers/{providerId}/blocked-intervals
// blockStart/blockEnd в RFC 3339
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	providerID, err := handlers.PathID(r, "providerId")
	if err != nil {
		h.logger.Warn("POST /providers/{id}/blocked-intervals - Invalid provider ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, handlers.MsgMissingUserID)
		return
	}

	var req models.CreateBlockedIntervalRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /providers/{id}/blocked-intervals - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidRequestBody)
		return
	}
	req.Actor = actor
	req.ProviderID = providerID

	block, err := h.service.CreateBlockedInterval(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			h.logger.Warn("POST /providers/{id}/blocked-intervals - Invalid block: %v", err)
			handlers.RespondBadRequest(w, msgInvalidBlock)

		case errors.Is(err, availability.ErrProviderNotFound):
			h.logger.Warn("POST /providers/{id}/blocked-intervals - Provider not found: provider_id=%d", providerID)
			handlers.RespondNotFound(w, msgProviderNotFound)

		case errors.Is(err, availability.ErrAccessDenied):
			h.logger.Warn("POST /providers/{id}/blocked-intervals - Access denied: provider_id=%d, user_id=%d",
				providerID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("POST /providers/{id}/blocked-intervals - Failed to create block: provider_id=%d, error=%v",
				providerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /providers/{id}/blocked-intervals - Interval blocked: provider_id=%d, block_id=%d",
		providerID, block.ID)
	handlers.RespondJSON(w, http.StatusCreated, block)
}
