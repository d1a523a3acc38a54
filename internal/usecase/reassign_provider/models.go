package reassign_provider

import "github.com/m04kA/PetCare-BookingService/internal/domain"

// Request модель запроса на переназначение провайдера
type Request struct {
	Actor                domain.Actor
	BookingID            int64
	NewProviderID        int64
	NewProviderServiceID *int64 // nil - услуга не меняется
}
