package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
)

// maxBodyBytes ограничение размера тела запроса
const maxBodyBytes = 1 << 20

var production atomic.Bool

// SetProduction включает режим, в котором детали внутренних ошибок не отдаются клиенту
func SetProduction(enabled bool) {
	production.Store(enabled)
}

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"` // Детали, только вне production
}

// NotFoundResponse тело ответа для неизвестного маршрута
type NotFoundResponse struct {
	Error  string `json:"error"`
	Path   string `json:"path"`
	Method string `json:"method"`
}

// RespondJSON отправляет JSON ответ
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(data)
}

// RespondError отправляет ошибку в формате {"error": message}
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, ErrorResponse{Error: message})
}

// RespondBadRequest отправляет 400
func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

// RespondUnauthorized отправляет 401
func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, message)
}

// RespondNotFound отправляет 404
func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

// RespondTooManyRequests отправляет 429
func RespondTooManyRequests(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusTooManyRequests, message)
}

// RespondInternalError отправляет 500
// Текст ошибки err попадает в ответ только вне production
func RespondInternalError(w http.ResponseWriter, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil && !production.Load() {
		resp.Message = err.Error()
	}
	RespondJSON(w, http.StatusInternalServerError, resp)
}

// RouteNotFound обработчик для неизвестных маршрутов
func RouteNotFound(w http.ResponseWriter, r *http.Request) {
	RespondJSON(w, http.StatusNotFound, NotFoundResponse{
		Error:  "Endpoint not found",
		Path:   r.URL.RequestURI(),
		Method: r.Method,
	})
}

// DecodeJSON читает тело запроса в v
// Пустое тело, лишние данные после объекта и слишком большое тело считаются ошибкой
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return errors.New("request body is empty")
	}

	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is empty")
		}
		return fmt.Errorf("decode request body: %w", err)
	}
	if dec.More() {
		return errors.New("request body must contain a single JSON object")
	}
	return nil
}
