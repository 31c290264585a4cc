package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/m04kA/FWL-BookingService/internal/api/handlers"
)

// HeaderAdminToken заголовок с токеном администратора
const HeaderAdminToken = "X-Admin-Token"

const msgUnauthorized = "Unauthorized"

// AdminAuth пропускает запрос только с верным токеном администратора
// Пустой token отключает проверку
func AdminAuth(token string, log Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if token == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get(HeaderAdminToken)
			if subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
				log.Warn("%s %s - admin token rejected, request_id=%s", r.Method, r.URL.Path, GetRequestID(r.Context()))
				handlers.RespondUnauthorized(w, msgUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
