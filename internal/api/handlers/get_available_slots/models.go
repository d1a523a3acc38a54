package get_available_slots

import (
	"time"

	"github.com/m04kA/PetCare-BookingService/internal/domain"
	getAvailableSlots "github.com/m04kA/PetCare-BookingService/internal/usecase/get_available_slots"
)

const viewAll = "all"

// SlotResponse HTTP response model
type SlotResponse struct {
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	IsAvailable bool   `json:"isAvailable"`
}

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	ProviderID             int64          `json:"providerId"`
	Date                   string         `json:"date"`
	ServiceDurationMinutes int            `json:"serviceDurationMinutes"`
	Slots                  []SlotResponse `json:"slots"`
}

// ToUseCaseRequest формирует запрос use case из параметров URL
func ToUseCaseRequest(actor domain.Actor, providerID int64, dateStr string, duration int, view string) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		Actor:                  actor,
		ProviderID:             providerID,
		Date:                   date,
		ServiceDurationMinutes: duration,
		IncludeUnavailable:     view == viewAll,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]SlotResponse, len(resp.Slots))
	for i, s := range resp.Slots {
		slots[i] = SlotResponse{
			StartTime:   s.StartTime.String(),
			EndTime:     s.EndTime.String(),
			IsAvailable: s.IsAvailable,
		}
	}

	return &AvailableSlotsResponse{
		ProviderID:             resp.ProviderID,
		Date:                   resp.Date.Format(domain.DateFormat),
		ServiceDurationMinutes: resp.ServiceDurationMinutes,
		Slots:                  slots,
	}
}
