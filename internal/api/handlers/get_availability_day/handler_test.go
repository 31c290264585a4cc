package get_availability_day

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/FWL-BookingService/internal/domain"
	"github.com/m04kA/FWL-BookingService/internal/infra/storage/memory"
	"github.com/m04kA/FWL-BookingService/internal/service/availability"
	"github.com/m04kA/FWL-BookingService/internal/service/availability/models"
	"github.com/m04kA/FWL-BookingService/pkg/logger"
)

func newRouter(t *testing.T) *mux.Router {
	t.Helper()
	store := memory.NewStore()
	require.NoError(t, store.Availability().CreateDay(context.Background(), &domain.Availability{
		Date:          time.Date(2026, time.October, 19, 0, 0, 0, 0, time.Local),
		BusinessHours: domain.BusinessHours{Open: "09:00:00", Close: "17:00:00"},
		Slots: []domain.Slot{
			{StartTime: "09:00:00", EndTime: "10:00:00", MaxCapacity: 1, Blocked: true},
			{StartTime: "13:00:00", EndTime: "14:00:00", MaxCapacity: 1, BookedCount: 1},
		},
	}))

	h := NewHandler(availability.NewService(store.Availability(), logger.Nop()), logger.Nop())
	r := mux.NewRouter()
	r.HandleFunc("/availability/{date}", h.Handle).Methods(http.MethodGet)
	return r
}

func TestHandle_ReturnsFullDay(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter(t).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/availability/2026-10-19", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var day models.DayResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &day))
	assert.Equal(t, "2026-10-19", day.Date)
	assert.Equal(t, "17:00:00", day.BusinessHours.Close)
	require.Len(t, day.Slots, 2)
	assert.True(t, day.Slots[0].Blocked)
	assert.Equal(t, 1, day.Slots[1].BookedCount)
	assert.False(t, day.Slots[1].Available)
}

func TestHandle_Errors(t *testing.T) {
	r := newRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/availability/2026-10-18", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"No availability for selected date"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/availability/monday", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
