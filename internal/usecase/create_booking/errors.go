package create_booking

import (
	"fmt"

	"github.com/m04kA/PetCare-BookingService/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: create_booking", domain.ErrInvalidInput)

	// ErrInvalidDate возвращается при бронировании на прошедшую дату
	ErrInvalidDate = fmt.Errorf("%w: create_booking: booking date is in the past", domain.ErrInvalidInput)

	// ErrTooLateToBook возвращается, когда до начала слота осталось меньше минимального запаса
	ErrTooLateToBook = fmt.Errorf("%w: create_booking: too late to book this slot", domain.ErrInvalidInput)

	// ErrInvalidTimeSlot возвращается, когда время не совпадает ни с одним слотом расписания
	ErrInvalidTimeSlot = fmt.Errorf("%w: create_booking: time is outside provider availability", domain.ErrInvalidInput)

	// ErrProviderInactive возвращается, когда провайдер не принимает бронирования
	ErrProviderInactive = fmt.Errorf("%w: create_booking: provider is inactive", domain.ErrInvalidInput)

	// ErrServiceInactive возвращается, когда услуга снята с продажи
	ErrServiceInactive = fmt.Errorf("%w: create_booking: service is inactive", domain.ErrInvalidInput)

	// ErrPetNotOwned возвращается, когда питомец принадлежит другому пользователю
	ErrPetNotOwned = fmt.Errorf("%w: create_booking: pet is not owned by user", domain.ErrOwnership)

	// ErrForbidden возвращается, когда пользователь бронирует от чужого имени
	ErrForbidden = fmt.Errorf("%w: create_booking: cannot book on behalf of another user", domain.ErrOwnership)

	// ErrSlotNotAvailable возвращается, когда слот уже занят
	ErrSlotNotAvailable = fmt.Errorf("%w: create_booking: slot is no longer available", domain.ErrConflict)

	// ErrPetNotFound возвращается, когда питомец не найден
	ErrPetNotFound = fmt.Errorf("%w: create_booking: pet not found", domain.ErrNotFound)

	// ErrProviderNotFound возвращается, когда провайдер не найден
	ErrProviderNotFound = fmt.Errorf("%w: create_booking: provider not found", domain.ErrNotFound)

	// ErrServiceNotFound возвращается, когда услуга не найдена у провайдера
	ErrServiceNotFound = fmt.Errorf("%w: create_booking: service not found", domain.ErrNotFound)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = fmt.Errorf("%w: create_booking: internal error", domain.ErrRepository)
)

// Исходы для метрики booking_attempts_total
const (
	outcomeCreated  = "created"
	outcomeConflict = "conflict"
	outcomeRejected = "rejected"
)
