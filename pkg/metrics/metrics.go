package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Исходы бронирования для BookingsTotal
const (
	BookingCreated         = "created"
	BookingSlotUnavailable = "slot_unavailable"
	BookingInvalid         = "invalid"
	BookingFailed          = "failed"
)

// Metrics набор метрик сервиса на собственном registry
// Все методы безопасны для nil-получателя: метрики можно выключить в конфиге
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueriesTotal     *prometheus.CounterVec
	DBQueryDuration    *prometheus.HistogramVec
	DBOpenConnections  *prometheus.GaugeVec
	DBInUseConnections *prometheus.GaugeVec
	DBIdleConnections  *prometheus.GaugeVec
	DBWaitCount        *prometheus.GaugeVec

	BookingsTotal      *prometheus.CounterVec
	NotificationsTotal *prometheus.CounterVec
}

// New создает и регистрирует метрики
func New(serviceName string) *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	factory := promauto.With(registry)
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		registry: registry,

		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "Duration of HTTP requests",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),

		DBQueriesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_queries_total",
			Help:        "Total number of database queries",
			ConstLabels: constLabels,
		}, []string{"operation", "status"}),
		DBQueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Duration of database queries",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),
		DBOpenConnections: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of established connections",
			ConstLabels: constLabels,
		}, nil),
		DBInUseConnections: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of connections currently in use",
			ConstLabels: constLabels,
		}, nil),
		DBIdleConnections: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle connections",
			ConstLabels: constLabels,
		}, nil),
		DBWaitCount: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: constLabels,
		}, nil),

		BookingsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "bookings_total",
			Help:        "Appointment booking attempts by outcome",
			ConstLabels: constLabels,
		}, []string{"outcome"}),
		NotificationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "notifications_total",
			Help:        "Notification emails by kind and status",
			ConstLabels: constLabels,
		}, []string{"kind", "status"}),
	}
}

// Handler отдает метрики в формате Prometheus
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry возвращает registry (для тестов)
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveHTTP фиксирует HTTP запрос
func (m *Metrics) ObserveHTTP(method, route, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// ObserveDB фиксирует запрос к БД
func (m *Metrics) ObserveDB(operation string, err error, d time.Duration) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.DBQueriesTotal.WithLabelValues(operation, status).Inc()
	m.DBQueryDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// ObserveBooking фиксирует исход попытки бронирования
func (m *Metrics) ObserveBooking(outcome string) {
	if m == nil {
		return
	}
	m.BookingsTotal.WithLabelValues(outcome).Inc()
}

// ObserveNotification фиксирует отправку письма
func (m *Metrics) ObserveNotification(kind string, err error) {
	if m == nil {
		return
	}
	status := "sent"
	if err != nil {
		status = "failed"
	}
	m.NotificationsTotal.WithLabelValues(kind, status).Inc()
}
