package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/PetCare-BookingService/internal/domain"
	"github.com/m04kA/PetCare-BookingService/pkg/ptr"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = fmt.Errorf("%w: invalid booking status", domain.ErrInvalidInput)

	// ErrInvalidPeriod возвращается, когда начало периода позже конца
	ErrInvalidPeriod = fmt.Errorf("%w: startDate is after endDate", domain.ErrInvalidInput)
)

// Request модели

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	Actor  domain.Actor `json:"-"`
	UserID int64        `json:"userId"`
	Status *string      `json:"status,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр; история включает неактивные бронирования
func (r *GetUserBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		UserID:          ptr.Ptr(r.UserID),
		IncludeInactive: true,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// GetProviderBookingsRequest запрос на получение бронирований провайдера
type GetProviderBookingsRequest struct {
	Actor           domain.Actor `json:"-"`
	ProviderID      int64        `json:"providerId"`
	StartDate       *time.Time   `json:"startDate,omitempty"`       // Начало периода (опционально)
	EndDate         *time.Time   `json:"endDate,omitempty"`         // Конец периода (опционально)
	Status          *string      `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeInactive bool         `json:"includeInactive,omitempty"` // Включить неактивные бронирования
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetProviderBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		ProviderID:      ptr.Ptr(r.ProviderID),
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}

	if r.StartDate != nil && r.EndDate != nil && r.StartDate.After(*r.EndDate) {
		return filter, ErrInvalidPeriod
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID                int64   `json:"id"`
	UserID            int64   `json:"userId"`
	PetID             int64   `json:"petId"`
	ProviderID        int64   `json:"providerId"`
	ProviderServiceID int64   `json:"providerServiceId"`
	BookingDate       string  `json:"bookingDate"` // "2025-10-15"
	StartTime         string  `json:"startTime"`   // "10:00"
	EndTime           string  `json:"endTime"`     // "10:30"
	DurationMinutes   int     `json:"durationMinutes"`
	BookingMode       string  `json:"bookingMode"`
	Status            string  `json:"status"`
	PriceAtBooking    float64 `json:"priceAtBooking"`
	ProviderNotes     *string `json:"providerNotes,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancellationBy     *string `json:"cancellationBy,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                 b.ID,
		UserID:             b.UserID,
		PetID:              b.PetID,
		ProviderID:         b.ProviderID,
		ProviderServiceID:  b.ProviderServiceID,
		BookingDate:        b.BookingDate.Format(domain.DateFormat),
		StartTime:          b.StartTime.String(),
		EndTime:            b.EndTime.String(),
		DurationMinutes:    b.DurationMinutes(),
		BookingMode:        string(b.BookingMode),
		Status:             string(b.Status),
		PriceAtBooking:     b.PriceAtBooking,
		ProviderNotes:      b.ProviderNotes,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	if b.CancellationBy != nil {
		resp.CancellationBy = ptr.Ptr(string(*b.CancellationBy))
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s, err := domain.ParseBookingStatus(status)
	if err != nil {
		return "", errors.Join(ErrInvalidStatus, err)
	}
	return s, nil
}
