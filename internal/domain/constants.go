package domain

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Business validation constants
const (
	MinSlotDurationMinutes      = 5
	MaxSlotDurationMinutes      = 480 // 8 hours
	MinBufferMinutes            = 0
	MaxBufferMinutes            = 240
	MinServiceDurationMinutes   = 5
	MaxServiceDurationMinutes   = 720 // 12 hours
	MaxNotesLength              = 1000
	MaxCancellationReasonLength = 500
	MaxBlockReasonLength        = 255
)

// ActiveStatuses статусы, которые занимают время провайдера
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}

// InactiveStatuses статусы, которые не блокируют новые слоты
var InactiveStatuses = []BookingStatus{
	StatusCompleted,
	StatusCancelled,
	StatusNoShow,
}
