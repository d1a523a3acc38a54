package slots

import (
	"fmt"

	"github.com/m04kA/PetCare-BookingService/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректной дате, длительности или интервале
	ErrInvalidInput = fmt.Errorf("%w: slots", domain.ErrInvalidInput)

	// ErrUnknownProvider провайдер не существует; для генератора это ошибка входных данных
	ErrUnknownProvider = fmt.Errorf("%w: slots: unknown provider", domain.ErrInvalidInput)

	// ErrRepository ошибка хранилища, пробрасывается вызывающему
	ErrRepository = fmt.Errorf("%w: slots", domain.ErrRepository)
)
