package create_blocked_date

import (
	"time"

	"github.com/m04kA/PetCare-BookingService/internal/domain"
	"github.com/m04kA/PetCare-BookingService/internal/service/availability/models"
)

// CreateBlockedDateRequest HTTP request model
type CreateBlockedDateRequest struct {
	BlockedDate string  `json:"blockedDate"` // "2025-10-15"
	Reason      *string `json:"reason,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateBlockedDateRequest) ToServiceRequest(actor domain.Actor, providerID int64) (*models.CreateBlockedDateRequest, error) {
	date, err := time.Parse(domain.DateFormat, r.BlockedDate)
	if err != nil {
		return nil, err
	}

	return &models.CreateBlockedDateRequest{
		Actor:       actor,
		ProviderID:  providerID,
		BlockedDate: date,
		Reason:      r.Reason,
	}, nil
}
