package domain

import "fmt"

// allowedTransitions таблица допустимых переходов и ролей, которым они разрешены.
// Администратор может перевести бронирование из любого нетерминального статуса в любой.
var allowedTransitions = map[BookingStatus]map[BookingStatus][]Role{
	StatusPending: {
		StatusConfirmed: {RoleProvider, RoleAdmin},
		StatusCancelled: {RoleUser, RoleProvider, RoleAdmin},
	},
	StatusConfirmed: {
		StatusCompleted: {RoleProvider, RoleAdmin},
		StatusCancelled: {RoleUser, RoleProvider, RoleAdmin},
		StatusNoShow:    {RoleProvider, RoleAdmin},
	},
	StatusCompleted: {},
	StatusCancelled: {},
	StatusNoShow:    {},
}

// IsValid returns true if the status is a recognized booking status
func (s BookingStatus) IsValid() bool {
	_, ok := allowedTransitions[s]
	return ok
}

// IsActive returns true for pending and confirmed
func (s BookingStatus) IsActive() bool {
	return s == StatusPending || s == StatusConfirmed
}

// IsTerminal returns true if no further transitions are possible
func (s BookingStatus) IsTerminal() bool {
	return len(allowedTransitions[s]) == 0
}

func (s BookingStatus) String() string {
	return string(s)
}

// ParseBookingStatus converts a string to a BookingStatus
func ParseBookingStatus(s string) (BookingStatus, error) {
	status := BookingStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("%w: invalid booking status %q", ErrInvalidInput, s)
	}
	return status, nil
}

// CheckTransition проверяет переход from -> to для роли.
// Возвращает *InvalidTransitionError, если переход не разрешён.
func CheckTransition(role Role, from, to BookingStatus) error {
	if !to.IsValid() {
		return fmt.Errorf("%w: invalid booking status %q", ErrInvalidInput, to)
	}

	if role == RoleAdmin && !from.IsTerminal() {
		return nil
	}

	roles, ok := allowedTransitions[from][to]
	if !ok {
		return &InvalidTransitionError{From: from, To: to}
	}
	for _, r := range roles {
		if r == role {
			return nil
		}
	}
	return &InvalidTransitionError{From: from, To: to}
}
