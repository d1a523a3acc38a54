package reassign_provider

import (
	"fmt"

	"github.com/m04kA/PetCare-BookingService/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: reassign_provider", domain.ErrInvalidInput)

	// ErrAdminOnly переназначение доступно только администратору
	ErrAdminOnly = fmt.Errorf("%w: reassign_provider: admin only", domain.ErrOwnership)

	// ErrProviderInactive возвращается, когда новый провайдер не принимает бронирования
	ErrProviderInactive = fmt.Errorf("%w: reassign_provider: provider is inactive", domain.ErrInvalidInput)

	// ErrServiceRequired возвращается, когда услуга бронирования не принадлежит новому провайдеру
	ErrServiceRequired = fmt.Errorf("%w: reassign_provider: newProviderServiceId is required", domain.ErrInvalidInput)

	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = fmt.Errorf("%w: reassign_provider: booking not found", domain.ErrNotFound)

	// ErrProviderNotFound возвращается, когда новый провайдер не найден
	ErrProviderNotFound = fmt.Errorf("%w: reassign_provider: provider not found", domain.ErrNotFound)

	// ErrServiceNotFound возвращается, когда услуга не найдена у нового провайдера
	ErrServiceNotFound = fmt.Errorf("%w: reassign_provider: service not found", domain.ErrNotFound)

	// ErrSlotNotAvailable возвращается, когда у нового провайдера время уже занято
	ErrSlotNotAvailable = fmt.Errorf("%w: reassign_provider: time is taken at the new provider", domain.ErrConflict)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = fmt.Errorf("%w: reassign_provider: internal error", domain.ErrRepository)
)
