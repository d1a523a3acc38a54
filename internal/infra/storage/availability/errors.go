package availability

import (
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/m04kA/PetCare-BookingService/internal/domain"
)

const pgUniqueViolation = "23505"

var (
	// ErrWindowNotFound возвращается, когда окно расписания не найдено
	ErrWindowNotFound = fmt.Errorf("%w: availability.repository: window not found", domain.ErrNotFound)

	// ErrBlockNotFound возвращается, когда блокировка не найдена
	ErrBlockNotFound = fmt.Errorf("%w: availability.repository: block not found", domain.ErrNotFound)

	// ErrDuplicateBlockedDate возвращается при повторной блокировке того же дня
	ErrDuplicateBlockedDate = fmt.Errorf("%w: availability.repository: date already blocked", domain.ErrInvalidInput)

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("availability.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("availability.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("availability.repository: failed to scan row")
)

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation
}
