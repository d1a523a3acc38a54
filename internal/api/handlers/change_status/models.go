package change_status

import (
	"github.com/m04kA/PetCare-BookingService/internal/domain"
	changeStatus "github.com/m04kA/PetCare-BookingService/internal/usecase/change_status"
)

// ChangeStatusRequest HTTP request model
type ChangeStatusRequest struct {
	Status             string  `json:"status"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ChangeStatusRequest) ToUseCaseRequest(actor domain.Actor, bookingID int64) (*changeStatus.Request, error) {
	status, err := domain.ParseBookingStatus(r.Status)
	if err != nil {
		return nil, err
	}

	return &changeStatus.Request{
		Actor:              actor,
		BookingID:          bookingID,
		Status:             status,
		CancellationReason: r.CancellationReason,
	}, nil
}
