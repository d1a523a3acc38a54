package change_status

import (
	"fmt"

	"github.com/m04kA/PetCare-BookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	if !req.Status.IsValid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, req.Status)
	}

	if req.CancellationReason != nil && len(*req.CancellationReason) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: cancellationReason must be at most %d characters",
			ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	return nil
}
