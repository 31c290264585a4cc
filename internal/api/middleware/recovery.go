package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/m04kA/FWL-BookingService/internal/api/handlers"
)

const msgSomethingWentWrong = "Something went wrong!"

// Recovery перехватывает панику обработчика и отвечает 500
func Recovery(log Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					log.Error("%s %s - panic recovered: %v, request_id=%s\n%s",
						r.Method, r.URL.Path, rec, GetRequestID(r.Context()), debug.Stack())
					handlers.RespondInternalError(w, msgSomethingWentWrong, fmt.Errorf("%v", rec))
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
