package domain

import "fmt"

// Role роль пользователя, которую передаёт внешний провайдер аутентификации
type Role string

const (
	RoleUser     Role = "user"
	RoleProvider Role = "provider"
	RoleAdmin    Role = "admin"
)

// Actor аутентифицированный вызывающий: { userId, role }
type Actor struct {
	UserID int64
	Role   Role
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// CancelledBy возвращает сторону отмены для роли
func (a Actor) CancelledBy() CancelledBy {
	switch a.Role {
	case RoleAdmin:
		return CancelledByAdmin
	case RoleProvider:
		return CancelledByProvider
	default:
		return CancelledByUser
	}
}

// ParseRole проверяет строковое значение роли
func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RoleUser, RoleProvider, RoleAdmin:
		return r, nil
	default:
		return "", fmt.Errorf("%w: unknown role %q", ErrInvalidInput, s)
	}
}
