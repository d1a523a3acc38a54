package domain

import "github.com/m04kA/PetCare-BookingService/pkg/types"

// Slot производный (не сохраняемый) интервал-кандидат для бронирования
type Slot struct {
	StartTime   types.TimeString
	EndTime     types.TimeString
	IsAvailable bool
}

// Overlaps проверяет пересечение слота с интервалом в минутах
func (s Slot) Overlaps(startMinutes, endMinutes int) bool {
	return Overlaps(s.StartTime.Minutes(), s.EndTime.Minutes(), startMinutes, endMinutes)
}
