package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/PetCare-BookingService/internal/api/handlers"
	"github.com/m04kA/PetCare-BookingService/internal/api/middleware"
	"github.com/m04kA/PetCare-BookingService/internal/domain"
	slotsService "github.com/m04kA/PetCare-BookingService/internal/service/slots"
	getAvailableSlots "github.com/m04kA/PetCare-BookingService/internal/usecase/get_available_slots"
)

const (
	msgInvalidProviderID = "некорректный ID провайдера"
	msgMissingDate       = "дата обязательна"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidDuration   = "некорректная длительность услуги"
	msgProviderNotFound  = "провайдер не найден"
	msgFullViewForbidden = "полная выдача слотов доступна только администратору"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/providers/{providerId}/available-slots
// Query params: date (required, YYYY-MM-DD), duration (required, минуты), view=all (только admin)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	providerID, err := handlers.PathID(r, "providerId")
	if err != nil {
		h.logger.Warn("GET /providers/{id}/available-slots - Invalid provider ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	query := r.URL.Query()

	dateStr := query.Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /providers/{id}/available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	duration, err := strconv.Atoi(query.Get("duration"))
	if err != nil {
		h.logger.Warn("GET /providers/{id}/available-slots - Invalid duration: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDuration)
		return
	}

	// Анонимный запрос считается клиентским
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		actor = domain.Actor{Role: domain.RoleUser}
	}

	useCaseReq, err := ToUseCaseRequest(actor, providerID, dateStr, duration, query.Get("view"))
	if err != nil {
		h.logger.Warn("GET /providers/{id}/available-slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrFullViewForbidden):
			h.logger.Warn("GET /providers/{id}/available-slots - Full view forbidden: user_id=%d", actor.UserID)
			handlers.RespondForbidden(w, msgFullViewForbidden)

		// Неизвестный провайдер для генератора слотов - ошибка входных данных (400)
		case errors.Is(err, slotsService.ErrUnknownProvider):
			h.logger.Warn("GET /providers/{id}/available-slots - Unknown provider: provider_id=%d", providerID)
			handlers.RespondBadRequest(w, msgProviderNotFound)

		case errors.Is(err, domain.ErrInvalidInput):
			h.logger.Warn("GET /providers/{id}/available-slots - Invalid input: provider_id=%d, error=%v", providerID, err)
			handlers.RespondDomainError(w, err)

		default:
			h.logger.Error("GET /providers/{id}/available-slots - Failed to get slots: provider_id=%d, error=%v",
				providerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /providers/{id}/available-slots - Slots retrieved successfully: provider_id=%d, date=%s, slots_count=%d",
		providerID, dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
