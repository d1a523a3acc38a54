package provider

import (
	"errors"
	"fmt"

	"github.com/m04kA/PetCare-BookingService/internal/domain"
)

var (
	// ErrProviderNotFound возвращается, когда провайдер не найден
	ErrProviderNotFound = fmt.Errorf("%w: provider.repository: provider not found", domain.ErrNotFound)

	// ErrServiceNotFound возвращается, когда услуга не найдена или принадлежит другому провайдеру
	ErrServiceNotFound = fmt.Errorf("%w: provider.repository: service not found", domain.ErrNotFound)

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("provider.repository: failed to build query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("provider.repository: failed to scan row")
)
