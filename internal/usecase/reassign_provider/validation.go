package reassign_provider

import "fmt"

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if !req.Actor.IsAdmin() {
		return ErrAdminOnly
	}

	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	if req.NewProviderID <= 0 {
		return fmt.Errorf("%w: newProviderID must be positive", ErrInvalidInput)
	}

	if req.NewProviderServiceID != nil && *req.NewProviderServiceID <= 0 {
		return fmt.Errorf("%w: newProviderServiceID must be positive", ErrInvalidInput)
	}

	return nil
}
