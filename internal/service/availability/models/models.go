package models

import (
	"time"

	"github.com/m04kA/PetCare-BookingService/internal/domain"
	"github.com/m04kA/PetCare-BookingService/pkg/types"
)

// Request модели

// CreateWindowRequest запрос на создание окна расписания
type CreateWindowRequest struct {
	Actor               domain.Actor     `json:"-"`
	ProviderID          int64            `json:"-"`
	DayOfWeek           int              `json:"dayOfWeek"` // 0 = воскресенье
	StartTime           types.TimeString `json:"startTime"`
	EndTime             types.TimeString `json:"endTime"`
	IsAvailable         *bool            `json:"isAvailable,omitempty"` // nil = true
	SlotDurationMinutes int              `json:"slotDurationMinutes"`
	BufferMinutes       int              `json:"bufferMinutes"`
}

// ToDomainWindow конвертирует CreateWindowRequest в domain модель
func (r *CreateWindowRequest) ToDomainWindow() *domain.AvailabilityWindow {
	isAvailable := true
	if r.IsAvailable != nil {
		isAvailable = *r.IsAvailable
	}

	return &domain.AvailabilityWindow{
		ProviderID:          r.ProviderID,
		DayOfWeek:           r.DayOfWeek,
		StartTime:           r.StartTime,
		EndTime:             r.EndTime,
		IsAvailable:         isAvailable,
		SlotDurationMinutes: r.SlotDurationMinutes,
		BufferMinutes:       r.BufferMinutes,
	}
}

// WindowPatch частичное обновление окна расписания.
// Все поля опциональны - обновляются только переданные значения.
type WindowPatch struct {
	DayOfWeek           *int              `json:"dayOfWeek,omitempty"`
	StartTime           *types.TimeString `json:"startTime,omitempty"`
	EndTime             *types.TimeString `json:"endTime,omitempty"`
	IsAvailable         *bool             `json:"isAvailable,omitempty"`
	SlotDurationMinutes *int              `json:"slotDurationMinutes,omitempty"`
	BufferMinutes       *int              `json:"bufferMinutes,omitempty"`
}

// IsEmpty возвращает true, если патч ничего не меняет
func (p *WindowPatch) IsEmpty() bool {
	return p.DayOfWeek == nil && p.StartTime == nil && p.EndTime == nil &&
		p.IsAvailable == nil && p.SlotDurationMinutes == nil && p.BufferMinutes == nil
}

// ApplyTo применяет патч к окну; обновляются только непустые (not nil) поля
func (p *WindowPatch) ApplyTo(w *domain.AvailabilityWindow) {
	if p.DayOfWeek != nil {
		w.DayOfWeek = *p.DayOfWeek
	}
	if p.StartTime != nil {
		w.StartTime = *p.StartTime
	}
	if p.EndTime != nil {
		w.EndTime = *p.EndTime
	}
	if p.IsAvailable != nil {
		w.IsAvailable = *p.IsAvailable
	}
	if p.SlotDurationMinutes != nil {
		w.SlotDurationMinutes = *p.SlotDurationMinutes
	}
	if p.BufferMinutes != nil {
		w.BufferMinutes = *p.BufferMinutes
	}
}

// UpdateWindowRequest запрос на обновление окна расписания
type UpdateWindowRequest struct {
	Actor      domain.Actor
	ProviderID int64
	WindowID   int64
	Patch      WindowPatch
}

// CreateBlockedDateRequest запрос на блокировку всего дня
type CreateBlockedDateRequest struct {
	Actor       domain.Actor `json:"-"`
	ProviderID  int64        `json:"-"`
	BlockedDate time.Time    `json:"-"`
	Reason      *string      `json:"reason,omitempty"`
}

// CreateBlockedIntervalRequest запрос на блокировку части дня
type CreateBlockedIntervalRequest struct {
	Actor      domain.Actor `json:"-"`
	ProviderID int64        `json:"-"`
	BlockStart time.Time    `json:"blockStart"`
	BlockEnd   time.Time    `json:"blockEnd"`
	Note       *string      `json:"note,omitempty"`
}

// Response модели

// WindowResponse ответ с данными окна расписания
type WindowResponse struct {
	ID                  int64     `json:"id"`
	ProviderID          int64     `json:"providerId"`
	DayOfWeek           int       `json:"dayOfWeek"`
	StartTime           string    `json:"startTime"`
	EndTime             string    `json:"endTime"`
	IsAvailable         bool      `json:"isAvailable"`
	SlotDurationMinutes int       `json:"slotDurationMinutes"`
	BufferMinutes       int       `json:"bufferMinutes"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

// WindowListResponse ответ со списком окон
type WindowListResponse struct {
	Windows []WindowResponse `json:"windows"`
}

// BlockedDateResponse ответ с данными блокировки дня
type BlockedDateResponse struct {
	ID          int64     `json:"id"`
	ProviderID  int64     `json:"providerId"`
	BlockedDate string    `json:"blockedDate"`
	Reason      *string   `json:"reason,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// BlockedIntervalResponse ответ с данными блокировки части дня
type BlockedIntervalResponse struct {
	ID         int64     `json:"id"`
	ProviderID int64     `json:"providerId"`
	BlockStart time.Time `json:"blockStart"`
	BlockEnd   time.Time `json:"blockEnd"`
	Note       *string   `json:"note,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Методы конвертации

// FromDomainWindow конвертирует domain модель в DTO
func FromDomainWindow(w *domain.AvailabilityWindow) *WindowResponse {
	if w == nil {
		return nil
	}

	return &WindowResponse{
		ID:                  w.ID,
		ProviderID:          w.ProviderID,
		DayOfWeek:           w.DayOfWeek,
		StartTime:           w.StartTime.String(),
		EndTime:             w.EndTime.String(),
		IsAvailable:         w.IsAvailable,
		SlotDurationMinutes: w.SlotDurationMinutes,
		BufferMinutes:       w.BufferMinutes,
		CreatedAt:           w.CreatedAt,
		UpdatedAt:           w.UpdatedAt,
	}
}

// FromDomainWindowList конвертирует список domain моделей в DTO
func FromDomainWindowList(windows []*domain.AvailabilityWindow) *WindowListResponse {
	resp := &WindowListResponse{
		Windows: make([]WindowResponse, 0, len(windows)),
	}

	for _, w := range windows {
		if windowResp := FromDomainWindow(w); windowResp != nil {
			resp.Windows = append(resp.Windows, *windowResp)
		}
	}

	return resp
}

// FromDomainBlockedDate конвертирует domain модель в DTO
func FromDomainBlockedDate(b *domain.BlockedDate) *BlockedDateResponse {
	if b == nil {
		return nil
	}

	return &BlockedDateResponse{
		ID:          b.ID,
		ProviderID:  b.ProviderID,
		BlockedDate: b.BlockedDate.Format(domain.DateFormat),
		Reason:      b.Reason,
		CreatedAt:   b.CreatedAt,
	}
}

// FromDomainBlockedInterval конвертирует domain модель в DTO
func FromDomainBlockedInterval(b *domain.BlockedInterval) *BlockedIntervalResponse {
	if b == nil {
		return nil
	}

	return &BlockedIntervalResponse{
		ID:         b.ID,
		ProviderID: b.ProviderID,
		BlockStart: b.BlockStart,
		BlockEnd:   b.BlockEnd,
		Note:       b.Note,
		CreatedAt:  b.CreatedAt,
	}
}
