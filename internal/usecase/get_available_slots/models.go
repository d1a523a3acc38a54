package get_available_slots

import (
	"time"

	"github.com/m04kA/PetCare-BookingService/internal/domain"
	"github.com/m04kA/PetCare-BookingService/pkg/types"
)

// Request модель запроса на получение слотов
type Request struct {
	Actor                  domain.Actor // Кто запрашивает
	ProviderID             int64        // ID провайдера
	Date                   time.Time    // Дата (без времени)
	ServiceDurationMinutes int          // Длительность услуги
	IncludeUnavailable     bool         // Полная размеченная выдача (только admin)
}

// Slot модель временного слота
type Slot struct {
	StartTime   types.TimeString
	EndTime     types.TimeString
	IsAvailable bool
}

// Response модель ответа со списком слотов
type Response struct {
	ProviderID             int64
	Date                   time.Time
	ServiceDurationMinutes int
	Slots                  []Slot
}
