package availability

import (
	"fmt"

	"github.com/m04kA/PetCare-BookingService/internal/domain"
)

var (
	// ErrWindowNotFound возвращается, когда окно расписания не найдено
	ErrWindowNotFound = fmt.Errorf("%w: availability window not found", domain.ErrNotFound)

	// ErrBlockNotFound возвращается, когда блокировка не найдена
	ErrBlockNotFound = fmt.Errorf("%w: block not found", domain.ErrNotFound)

	// ErrProviderNotFound возвращается, когда провайдер не найден
	ErrProviderNotFound = fmt.Errorf("%w: provider not found", domain.ErrNotFound)

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = fmt.Errorf("%w: availability: access denied", domain.ErrOwnership)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: availability", domain.ErrInvalidInput)

	// ErrDateAlreadyBlocked возвращается при повторной блокировке того же дня
	ErrDateAlreadyBlocked = fmt.Errorf("%w: date is already blocked", domain.ErrInvalidInput)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = fmt.Errorf("%w: availability: internal error", domain.ErrRepository)
)
