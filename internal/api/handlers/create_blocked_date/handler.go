package create_blocked_date

import (
	"errors"
	"net/http"

	"github.com/m04kA/PetCare-BookingService/internal/api/handlers"
	"github.com/m04kA/PetCare-BookingService/internal/api/middleware"
	"github.com/m04kA/PetCare-BookingService/internal/domain"
	"github.com/m04kA/PetCare-BookingService/internal/service/availability"
)

const (
	msgInvalidProviderID = "некорректный ID провайдера"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidBlock      = "некорректные параметры блокировки"
	msgAlreadyBlocked    = "дата уже заблокирована"
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

// Handle POST /api/v1/providers/{providerId}/blocked-dates
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	providerID, err := handlers.PathID(r, "providerId")
	if err != nil {
		h.logger.Warn("POST /providers/{id}/blocked-dates - Invalid provider ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, handlers.MsgMissingUserID)
		return
	}

	var req CreateBlockedDateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /providers/{id}/blocked-dates - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest(actor, providerID)
	if err != nil {
		h.logger.Warn("POST /providers/{id}/blocked-dates - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	block, err := h.service.CreateBlockedDate(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrDateAlreadyBlocked):
			h.logger.Warn("POST /providers/{id}/blocked-dates - Already blocked: provider_id=%d, date=%s",
				providerID, req.BlockedDate)
			handlers.RespondConflict(w, msgAlreadyBlocked)

		case errors.Is(err, domain.ErrInvalidInput):
			h.logger.Warn("POST /providers/{id}/blocked-dates - Invalid block: %v", err)
			handlers.RespondBadRequest(w, msgInvalidBlock)

		case errors.Is(err, availability.ErrProviderNotFound):
			h.logger.Warn("POST /providers/{id}/blocked-dates - Provider not found: provider_id=%d", providerID)
			handlers.RespondNotFound(w, msgProviderNotFound)

		case errors.Is(err, availability.ErrAccessDenied):
			h.logger.Warn("POST /providers/{id}/blocked-dates - Access denied: provider_id=%d, user_id=%d",
				providerID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("POST /providers/{id}/blocked-dates - Failed to block date: provider_id=%d, error=%v",
				providerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /providers/{id}/blocked-dates - Date blocked: provider_id=%d, block_id=%d, date=%s",
		providerID, block.ID, block.BlockedDate)
	handlers.RespondJSON(w, http.StatusCreated, block)
}
