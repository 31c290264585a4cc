package router

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/FWL-BookingService/internal/api/handlers"
	"github.com/m04kA/FWL-BookingService/internal/api/middleware"
)

// Handlers обработчики маршрутов API
type Handlers struct {
	Health             http.HandlerFunc
	GetAvailability    http.HandlerFunc
	GetAvailabilityDay http.HandlerFunc
	CreateAppointment  http.HandlerFunc
	ListAppointments   http.HandlerFunc
	GetAppointment     http.HandlerFunc
	UpdateStatus       http.HandlerFunc
	DeleteAppointment  http.HandlerFunc
	SendTestEmail      http.HandlerFunc
}

// Config настройки маршрутизации
type Config struct {
	// AdminToken токен для административных маршрутов, пустой отключает проверку
	AdminToken string

	// MetricsPath и MetricsHandler публикуют метрики, nil отключает эндпоинт
	MetricsPath    string
	MetricsHandler http.Handler

	// HTTPMetrics nil отключает HTTP метрики
	HTTPMetrics middleware.HTTPMetrics

	// RateLimiter ограничивает создание записей, nil отключает ограничение
	RateLimiter *middleware.RateLimiter
}

// New собирает HTTP обработчик API
func New(h Handlers, cfg Config, log middleware.Logger) http.Handler {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(handlers.RouteNotFound)

	if cfg.HTTPMetrics != nil {
		r.Use(middleware.Metrics(cfg.HTTPMetrics))
	}

	if cfg.MetricsHandler != nil {
		r.Handle(cfg.MetricsPath, cfg.MetricsHandler).Methods(http.MethodGet)
	}

	r.HandleFunc("/api/health", h.Health).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	// Свободные слоты на дату
	api.HandleFunc("/availability", h.GetAvailability).Methods(http.MethodGet)
	api.HandleFunc("/appointments/availability", h.GetAvailability).Methods(http.MethodGet)

	// Создание записи
	var create http.Handler = h.CreateAppointment
	if cfg.RateLimiter != nil {
		create = cfg.RateLimiter.Middleware(create)
	}
	api.Handle("/appointments", create).Methods(http.MethodPost)

	// ============================================================
	// ADMIN ROUTES (X-Admin-Token)
	// ============================================================

	admin := api.PathPrefix("").Subrouter()
	admin.Use(middleware.AdminAuth(cfg.AdminToken, log))

	admin.HandleFunc("/availability/{date}", h.GetAvailabilityDay).Methods(http.MethodGet)
	admin.HandleFunc("/appointments", h.ListAppointments).Methods(http.MethodGet)
	admin.HandleFunc("/appointments/test-email", h.SendTestEmail).Methods(http.MethodPost)
	admin.HandleFunc("/appointments/{id:[0-9]+}", h.GetAppointment).Methods(http.MethodGet)
	admin.HandleFunc("/appointments/{id:[0-9]+}/status", h.UpdateStatus).Methods(http.MethodPatch)
	admin.HandleFunc("/appointments/{id:[0-9]+}", h.DeleteAppointment).Methods(http.MethodDelete)

	var handler http.Handler = r
	handler = middleware.Logging(log)(handler)
	handler = middleware.Recovery(log)(handler)
	handler = middleware.RequestID(handler)
	return handler
}
