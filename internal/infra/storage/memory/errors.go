package memory

import (
	"fmt"

	"github.com/m04kA/PetCare-BookingService/internal/domain"
)

var (
	// ErrNotFound возвращается, когда запись не найдена
	ErrNotFound = fmt.Errorf("%w: memory: record not found", domain.ErrNotFound)

	// ErrOverlap возвращается при попытке сохранить пересекающееся активное бронирование
	ErrOverlap = fmt.Errorf("%w: memory: overlapping active booking", domain.ErrConflict)

	// ErrDuplicate возвращается при нарушении уникальности
	ErrDuplicate = fmt.Errorf("%w: memory: duplicate record", domain.ErrInvalidInput)
)
