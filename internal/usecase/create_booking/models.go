package create_booking

import (
	"time"

	"github.com/m04kA/PetCare-BookingService/internal/domain"
	"github.com/m04kA/PetCare-BookingService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	Actor                  domain.Actor       // Кто создаёт бронирование
	UserID                 int64              // Клиент; для не-admin совпадает с Actor.UserID
	PetID                  int64              // ID питомца
	ProviderID             int64              // ID провайдера
	ProviderServiceID      int64              // ID услуги провайдера
	BookingDate            time.Time          // Дата бронирования (без времени)
	StartTime              types.TimeString   // Время начала (например, "10:00")
	ServiceDurationMinutes int                // 0 - длительность услуги
	BookingMode            domain.BookingMode // Формат оказания услуги
	ProviderNotes          *string            // Заметки (опционально)
}
