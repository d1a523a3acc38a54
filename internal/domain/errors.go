package domain

import (
	"errors"
	"fmt"
)

// Таксономия ошибок движка бронирования.
// Ошибки конкретных use case оборачивают одну из них через %w,
// HTTP-слой сопоставляет их со статус-кодами через errors.Is.
var (
	// ErrInvalidInput некорректная дата/время/длительность/идентификатор
	ErrInvalidInput = errors.New("invalid input")

	// ErrOwnership несоответствие владельца или недостаточно прав
	ErrOwnership = errors.New("ownership mismatch")

	// ErrConflict пересечение с активным бронированием или блокировкой
	ErrConflict = errors.New("booking conflict")

	// ErrInvalidTransition недопустимая смена статуса
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrNotFound сущность не найдена
	ErrNotFound = errors.New("not found")

	// ErrRepository ошибка хранилища; текст исходной ошибки не отдаётся клиенту
	ErrRepository = errors.New("repository failure")
)

// InvalidTransitionError содержит текущий и запрошенный статус
type InvalidTransitionError struct {
	From BookingStatus
	To   BookingStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.From, e.To)
}

// Is позволяет errors.Is(err, ErrInvalidTransition)
func (e *InvalidTransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}

// IsKnown возвращает true, если err относится к одной из ошибок таксономии
func IsKnown(err error) bool {
	return errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrOwnership) ||
		errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrInvalidTransition) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrRepository)
}
