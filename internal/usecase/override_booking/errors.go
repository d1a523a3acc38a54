package override_booking

import (
	"fmt"

	"github.com/m04kA/PetCare-BookingService/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных полях патча
	ErrInvalidInput = fmt.Errorf("%w: override_booking", domain.ErrInvalidInput)

	// ErrEmptyPatch возвращается, когда в патче нет ни одного поля
	ErrEmptyPatch = fmt.Errorf("%w: override_booking: nothing to update", domain.ErrInvalidInput)

	// ErrAdminOnly ручная правка доступна только администратору
	ErrAdminOnly = fmt.Errorf("%w: override_booking: admin only", domain.ErrOwnership)

	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = fmt.Errorf("%w: override_booking: booking not found", domain.ErrNotFound)

	// ErrSlotNotAvailable новое время пересекается с другим бронированием или блокировкой
	ErrSlotNotAvailable = fmt.Errorf("%w: override_booking: time is not available", domain.ErrConflict)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = fmt.Errorf("%w: override_booking: internal error", domain.ErrRepository)
)
