package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/PetCare-BookingService/pkg/types"
)

// AvailabilityWindow еженедельное окно работы провайдера.
// На один день недели допускается несколько окон (разделённые смены).
type AvailabilityWindow struct {
	ID                  int64
	ProviderID          int64
	DayOfWeek           int // 0 = воскресенье, как time.Weekday
	StartTime           types.TimeString
	EndTime             types.TimeString
	IsAvailable         bool
	SlotDurationMinutes int
	BufferMinutes       int
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Validate проверяет инварианты окна
func (w *AvailabilityWindow) Validate() error {
	if w.ProviderID <= 0 {
		return fmt.Errorf("%w: providerID must be positive", ErrInvalidInput)
	}
	if w.DayOfWeek < 0 || w.DayOfWeek > 6 {
		return fmt.Errorf("%w: dayOfWeek must be in range 0-6, got %d", ErrInvalidInput, w.DayOfWeek)
	}
	if err := w.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}
	if err := w.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid endTime: %v", ErrInvalidInput, err)
	}
	if !w.StartTime.IsBefore(w.EndTime) {
		return fmt.Errorf("%w: startTime %s must be before endTime %s", ErrInvalidInput, w.StartTime, w.EndTime)
	}
	if w.SlotDurationMinutes < MinSlotDurationMinutes || w.SlotDurationMinutes > MaxSlotDurationMinutes {
		return fmt.Errorf("%w: slotDurationMinutes must be in range %d-%d, got %d",
			ErrInvalidInput, MinSlotDurationMinutes, MaxSlotDurationMinutes, w.SlotDurationMinutes)
	}
	if w.BufferMinutes < MinBufferMinutes || w.BufferMinutes > MaxBufferMinutes {
		return fmt.Errorf("%w: bufferMinutes must be in range %d-%d, got %d",
			ErrInvalidInput, MinBufferMinutes, MaxBufferMinutes, w.BufferMinutes)
	}
	return nil
}

// BlockedDate блокировка провайдера на весь день (отпуск, выходной)
type BlockedDate struct {
	ID          int64
	ProviderID  int64
	BlockedDate time.Time
	Reason      *string
	CreatedAt   time.Time
}

// BlockedInterval блокировка части дня; может пересекать границу суток
type BlockedInterval struct {
	ID         int64
	ProviderID int64
	BlockStart time.Time
	BlockEnd   time.Time
	Note       *string
	CreatedAt  time.Time
}

// Validate проверяет, что конец блокировки позже начала
func (b *BlockedInterval) Validate() error {
	if b.ProviderID <= 0 {
		return fmt.Errorf("%w: providerID must be positive", ErrInvalidInput)
	}
	if b.BlockStart.IsZero() || b.BlockEnd.IsZero() {
		return fmt.Errorf("%w: blockStart and blockEnd are required", ErrInvalidInput)
	}
	if !b.BlockEnd.After(b.BlockStart) {
		return fmt.Errorf("%w: blockEnd must be after blockStart", ErrInvalidInput)
	}
	return nil
}

// MinutesOn обрезает блокировку по календарной дате date в часовом поясе loc
// и возвращает полуоткрытый интервал в минутах от начала суток.
// ok = false, если блокировка не задевает эту дату.
func (b *BlockedInterval) MinutesOn(date time.Time, loc *time.Location) (start, end int, ok bool) {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := date.Date()
	dayStart := time.Date(y, m, d, 0, 0, 0, 0, loc)
	dayEnd := dayStart.AddDate(0, 0, 1)

	from := b.BlockStart.In(loc)
	to := b.BlockEnd.In(loc)
	if !from.Before(dayEnd) || !to.After(dayStart) {
		return 0, 0, false
	}
	if from.Before(dayStart) {
		from = dayStart
	}
	if to.After(dayEnd) {
		to = dayEnd
	}

	// Минуты считаются по часам местного времени, а не по прошедшему времени:
	// в день перехода на летнее время сутки короче или длиннее 24 часов
	start = clockMinutes(from)
	if to.Equal(dayEnd) {
		end = types.MinutesPerDay
	} else {
		end = clockMinutes(to)
		// неполная минута в конце блокировки занимает минуту целиком
		if to.Second() > 0 || to.Nanosecond() > 0 {
			end++
		}
	}
	if end > types.MinutesPerDay {
		end = types.MinutesPerDay
	}
	return start, end, start < end
}

func clockMinutes(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}
