package middleware

import (
	"net/http"
	"time"
)

// Logging пишет строку лога на каждый запрос
func Logging(log Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := wrapResponseWriter(w)

			next.ServeHTTP(rw, r)

			log.Info("%s %s - status=%d, duration=%s, request_id=%s",
				r.Method, r.URL.Path, rw.statusCode, time.Since(start), GetRequestID(r.Context()))
		})
	}
}
