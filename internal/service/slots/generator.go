package slots

import (
	"slices"

	"github.com/m04kA/PetCare-BookingService/internal/domain"
	"github.com/m04kA/PetCare-BookingService/pkg/types"
)

// interval полуоткрытый интервал [start, end) в минутах от начала суток
type interval struct {
	start int
	end   int
}

// generate строит слоты [t, t+duration) по каждому окну с шагом slotDuration+buffer,
// пока t+duration не выходит за конец окна.
// Результат отсортирован по началу; при равенстве сохраняется порядок окон.
func generate(windows []*domain.AvailabilityWindow, durationMinutes int) []domain.Slot {
	result := make([]domain.Slot, 0)

	for _, w := range windows {
		if !w.IsAvailable {
			continue
		}

		start, end := w.StartTime.Minutes(), w.EndTime.Minutes()
		step := w.SlotDurationMinutes + w.BufferMinutes
		if start < 0 || end < 0 || step <= 0 {
			continue
		}

		for t := start; t+durationMinutes <= end; t += step {
			result = append(result, newSlot(t, t+durationMinutes))
		}
	}

	slices.SortStableFunc(result, func(a, b domain.Slot) int {
		return a.StartTime.Minutes() - b.StartTime.Minutes()
	})

	return result
}

// markAvailable помечает слот недоступным, если он пересекает хотя бы один занятый интервал
func markAvailable(slots []domain.Slot, busy []interval) []domain.Slot {
	result := make([]domain.Slot, len(slots))

	for i, slot := range slots {
		slot.IsAvailable = true
		for _, b := range busy {
			if slot.Overlaps(b.start, b.end) {
				slot.IsAvailable = false
				break
			}
		}
		result[i] = slot
	}

	return result
}

// conflicts проверяет одиночный интервал против занятых
func conflicts(candidate interval, busy []interval) bool {
	for _, b := range busy {
		if domain.Overlaps(candidate.start, candidate.end, b.start, b.end) {
			return true
		}
	}
	return false
}

func newSlot(start, end int) domain.Slot {
	// границы уже проверены по окну, которое лежит в пределах суток
	from, _ := types.TimeStringFromMinutes(start)
	to, _ := types.TimeStringFromMinutes(end)
	return domain.Slot{StartTime: from, EndTime: to}
}
