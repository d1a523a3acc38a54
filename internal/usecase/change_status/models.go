package change_status

import "github.com/m04kA/PetCare-BookingService/internal/domain"

// Request модель запроса на смену статуса
type Request struct {
	Actor              domain.Actor
	BookingID          int64
	Status             domain.BookingStatus
	CancellationReason *string // Учитывается только при отмене
}
