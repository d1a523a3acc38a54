package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/PetCare-BookingService/internal/domain"
)

const (
	msgInternalError      = "внутренняя ошибка сервера"
	msgInvalidInput       = "некорректные входные данные"
	msgForbidden          = "доступ запрещен"
	msgNotFound           = "ресурс не найден"
	msgConflict           = "время уже занято"
	msgInvalidTransition  = "недопустимая смена статуса"
	MsgInvalidRequestBody = "некорректное тело запроса"
	MsgMissingUserID      = "отсутствует ID пользователя"
)

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Error string `json:"error"`
}

// DecodeJSON декодирует тело запроса; неизвестные поля считаются ошибкой
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return errors.New("empty request body")
	}
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}

// RespondJSON пишет ответ в JSON; data == nil даёт пустое тело
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	if data == nil {
		w.WriteHeader(status)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, ErrorResponse{Error: message})
}

func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, message)
}

func RespondForbidden(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusForbidden, message)
}

func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

func RespondConflict(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusConflict, message)
}

func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, msgInternalError)
}

// StatusFromError сопоставляет ошибку таксономии со статус-кодом
func StatusFromError(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrOwnership):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// RespondDomainError отвечает общим сообщением по таксономии.
// Текст исходной ошибки клиенту не отдаётся.
func RespondDomainError(w http.ResponseWriter, err error) {
	status := StatusFromError(err)

	switch {
	case status == http.StatusInternalServerError:
		RespondInternalError(w)
	case errors.Is(err, domain.ErrInvalidTransition):
		RespondError(w, status, msgInvalidTransition)
	case errors.Is(err, domain.ErrConflict):
		RespondError(w, status, msgConflict)
	case errors.Is(err, domain.ErrInvalidInput):
		RespondError(w, status, msgInvalidInput)
	case errors.Is(err, domain.ErrOwnership):
		RespondError(w, status, msgForbidden)
	default:
		RespondError(w, status, msgNotFound)
	}
}

// PathID извлекает положительный int64 из переменной маршрута
func PathID(r *http.Request, name string) (int64, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	if id <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %d", name, id)
	}
	return id, nil
}
