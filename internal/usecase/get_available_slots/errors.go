package get_available_slots

import (
	"fmt"

	"github.com/m04kA/PetCare-BookingService/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: get_available_slots", domain.ErrInvalidInput)

	// ErrFullViewForbidden полная размеченная выдача доступна только администратору
	ErrFullViewForbidden = fmt.Errorf("%w: get_available_slots: full slot view is admin only", domain.ErrOwnership)
)
