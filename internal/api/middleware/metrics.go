package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
)

// unmatchedRoute метка для запросов, не попавших ни в один маршрут
const unmatchedRoute = "unmatched"

// Metrics фиксирует длительность и статус запросов
// В метку route попадает шаблон маршрута, а не путь, чтобы не раздувать кардинальность
func Metrics(m HTTPMetrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := wrapResponseWriter(w)

			next.ServeHTTP(rw, r)

			m.ObserveHTTP(r.Method, routeTemplate(r), strconv.Itoa(rw.statusCode), time.Since(start))
		})
	}
}

func routeTemplate(r *http.Request) string {
	route := mux.CurrentRoute(r)
	if route == nil {
		return unmatchedRoute
	}
	tmpl, err := route.GetPathTemplate()
	if err != nil {
		return unmatchedRoute
	}
	return tmpl
}
