package middleware

import (
	"net"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/PetCare-BookingService/internal/api/handlers"
	"github.com/m04kA/PetCare-BookingService/pkg/ratelimit"
)

const msgTooManyRequests = "слишком много запросов, попробуйте позже"

type Logger interface {
	Warn(format string, v ...interface{})
}

// RateLimit ограничивает запросы по пользователю, анонимные - по адресу.
// Недоступность хранилища лимитов не блокирует запросы.
func RateLimit(limiter ratelimit.Limiter, logger Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := rateLimitKey(r)

			allowed, err := limiter.Allow(r.Context(), key)
			if err != nil {
				logger.Warn("RateLimit - limiter unavailable: key=%s, error=%v", key, err)
				next.ServeHTTP(w, r)
				return
			}

			if !allowed {
				logger.Warn("RateLimit - limit exceeded: key=%s, path=%s", key, r.URL.Path)
				handlers.RespondError(w, http.StatusTooManyRequests, msgTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func rateLimitKey(r *http.Request) string {
	if actor, ok := GetActor(r.Context()); ok {
		return "user:" + strconv.FormatInt(actor.UserID, 10)
	}
	if id := r.Header.Get(HeaderUserID); id != "" {
		return "user:" + id
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return "ip:" + host
}
