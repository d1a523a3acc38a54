package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/PetCare-BookingService/internal/api/handlers"
	"github.com/m04kA/PetCare-BookingService/internal/domain"
)

const (
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"

	msgInvalidUserID = "некорректный ID пользователя"
	msgInvalidRole   = "некорректная роль пользователя"
)

type actorKey struct{}

// Auth требует X-User-ID; роль берётся из X-User-Role, по умолчанию user.
// Аутентификацию выполняет gateway, сюда приходят уже проверенные заголовки.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(HeaderUserID) == "" {
			handlers.RespondUnauthorized(w, handlers.MsgMissingUserID)
			return
		}

		actor, msg, ok := actorFromHeaders(r)
		if !ok {
			handlers.RespondUnauthorized(w, msg)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
	})
}

// OptionalAuth кладёт actor в контекст, если заголовки переданы; для публичных маршрутов
func OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(HeaderUserID) == "" {
			next.ServeHTTP(w, r)
			return
		}

		actor, msg, ok := actorFromHeaders(r)
		if !ok {
			handlers.RespondUnauthorized(w, msg)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
	})
}

func actorFromHeaders(r *http.Request) (domain.Actor, string, bool) {
	userID, err := strconv.ParseInt(r.Header.Get(HeaderUserID), 10, 64)
	if err != nil || userID <= 0 {
		return domain.Actor{}, msgInvalidUserID, false
	}

	role := domain.RoleUser
	if raw := r.Header.Get(HeaderUserRole); raw != "" {
		role, err = domain.ParseRole(raw)
		if err != nil {
			return domain.Actor{}, msgInvalidRole, false
		}
	}

	return domain.Actor{UserID: userID, Role: role}, "", true
}

// WithActor кладёт actor в контекст
func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// GetActor достаёт actor из контекста
func GetActor(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorKey{}).(domain.Actor)
	return actor, ok
}
