package get_appointment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/FWL-BookingService/internal/domain"
	"github.com/m04kA/FWL-BookingService/internal/infra/storage/memory"
	"github.com/m04kA/FWL-BookingService/internal/service/appointments"
	"github.com/m04kA/FWL-BookingService/internal/service/appointments/models"
	"github.com/m04kA/FWL-BookingService/pkg/logger"
)

func newRouter(t *testing.T) (*mux.Router, int64) {
	t.Helper()
	store := memory.NewStore()
	created, err := store.Appointments().Create(context.Background(), &domain.Appointment{
		Name:            "Jane Doe",
		Email:           "jane@example.com",
		Phone:           "555-0100",
		Service:         domain.ServiceBusinessAdvisory,
		AppointmentType: domain.TypeInPerson,
		Date:            time.Date(2026, time.October, 19, 0, 0, 0, 0, time.Local),
		TimeSlot:        domain.TimeSlot{StartTime: "09:00:00", EndTime: "10:00:00"},
		Status:          domain.StatusScheduled,
	})
	require.NoError(t, err)

	svc := appointments.NewService(store.Appointments(), store.Availability(), store.TxManager(), false, logger.Nop())
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/appointments/{id}", NewHandler(svc, logger.Nop()).Handle).Methods(http.MethodGet)
	return r, created.ID
}

func TestHandle(t *testing.T) {
	r, id := newRouter(t)

	t.Run("found", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/appointments/"+strconv.FormatInt(id, 10), nil))
		require.Equal(t, http.StatusOK, rec.Code)

		var resp models.AppointmentResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, id, resp.ID)
		assert.Equal(t, "Business Advisory", resp.Service)
		assert.Equal(t, "09:00 - 10:00", resp.FormattedTime)
	})

	t.Run("not found", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/appointments/9999", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"error":"Appointment not found"}`, rec.Body.String())
	})

	t.Run("invalid id", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/appointments/abc", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"error":"Invalid appointment ID"}`, rec.Body.String())
	})
}
