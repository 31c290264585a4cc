package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Observe(t *testing.T) {
	m := New("booking")

	m.ObserveBooking(BookingCreated)
	m.ObserveBooking(BookingCreated)
	m.ObserveBooking(BookingSlotUnavailable)
	m.ObserveNotification("confirmation", nil)
	m.ObserveNotification("confirmation", errors.New("smtp down"))
	m.ObserveDB("select", nil, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.BookingsTotal.WithLabelValues(BookingCreated)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BookingsTotal.WithLabelValues(BookingSlotUnavailable)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.NotificationsTotal.WithLabelValues("confirmation", "failed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DBQueriesTotal.WithLabelValues("select", "ok")))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveBooking(BookingCreated)
		m.ObserveHTTP("GET", "/", "200", time.Second)
		m.ObserveDB("exec", nil, time.Second)
		m.ObserveNotification("operator", nil)
	})
}

func TestMetrics_SeparateRegistries(t *testing.T) {
	// Два экземпляра не конфликтуют при регистрации
	a := New("a")
	b := New("b")
	a.ObserveHTTP("GET", "/api/v1/availability", "200", time.Millisecond)

	rec := httptest.NewRecorder()
	b.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), `route="/api/v1/availability"`)
}
