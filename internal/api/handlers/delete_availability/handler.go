package delete_availability

import (
	"context"
	"errors"
	"net/http"

	"github.com/m04kA/PetCare-BookingService/internal/api/handlers"
	"github.com/m04kA/PetCare-BookingService/internal/api/middleware"
	"github.com/m04kA/PetCare-BookingService/internal/domain"
	"github.com/m04kA/PetCare-BookingService/internal/service/availability"
)

const (
	msgInvalidProviderID = "некорректный ID провайдера"
	msgInvalidID         = "некорректный ID"
	msgProviderNotFound  = "провайдер не найден"
	msgNotFound          = "запись не найдена"
	msgForbidden         = "доступ запрещен"
)

type deleteFunc func(ctx context.Context, actor domain.Actor, providerID, id int64) error

// Handler удаляет окно расписания или блокировку провайдера.
// Бронирования при этом не затрагиваются.
type Handler struct {
	route   string
	idParam string
	remove  deleteFunc
	logger  Logger
}

// NewWindowHandler DELETE /api/v1/providers/{providerId}/availability/{windowId}
func NewWindowHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		route:   "DELETE /providers/{id}/availability/{windowId}",
		idParam: "windowId",
		remove:  service.DeleteWindow,
		logger:  logger,
	}
}

// NewBlockedDateHandler DELETE /api/v1/providers/{providerId}/blocked-dates/{blockId}
func NewBlockedDateHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		route:   "DELETE /providers/{id}/blocked-dates/{blockId}",
		idParam: "blockId",
		remove:  service.DeleteBlockedDate,
		logger:  logger,
	}
}

// NewBlockedIntervalHandler DELETE /api/v1/providers/{providerId}/blocked-intervals/{blockId}
func NewBlockedIntervalHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		route:   "DELETE /providers/{id}/blocked-intervals/{blockId}",
		idParam: "blockId",
		remove:  service.DeleteBlockedInterval,
		logger:  logger,
	}
}

func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	providerID, err := handlers.PathID(r, "providerId")
	if err != nil {
		h.logger.Warn("%s - Invalid provider ID: %v", h.route, err)
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	id, err := handlers.PathID(r, h.idParam)
	if err != nil {
		h.logger.Warn("%s - Invalid ID: %v", h.route, err)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, handlers.MsgMissingUserID)
		return
	}

	if err := h.remove(r.Context(), actor, providerID, id); err != nil {
		switch {
		case errors.Is(err, availability.ErrProviderNotFound):
			h.logger.Warn("%s - Provider not found: provider_id=%d", h.route, providerID)
			handlers.RespondNotFound(w, msgProviderNotFound)

		case errors.Is(err, domain.ErrNotFound):
			h.logger.Warn("%s - Not found: provider_id=%d, id=%d", h.route, providerID, id)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, availability.ErrAccessDenied):
			h.logger.Warn("%s - Access denied: provider_id=%d, user_id=%d", h.route, providerID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("%s - Failed to delete: provider_id=%d, id=%d, error=%v", h.route, providerID, id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("%s - Deleted: provider_id=%d, id=%d", h.route, providerID, id)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
