package update_appointment_status

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/FWL-BookingService/internal/domain"
	"github.com/m04kA/FWL-BookingService/internal/infra/storage/memory"
	"github.com/m04kA/FWL-BookingService/internal/service/appointments"
	"github.com/m04kA/FWL-BookingService/pkg/logger"
)

var (
	monday = time.Date(2026, time.October, 19, 0, 0, 0, 0, time.Local)
	slot   = domain.TimeSlot{StartTime: "13:00:00", EndTime: "14:00:00"}
)

type fixture struct {
	store  *memory.Store
	router *mux.Router
	id     int64
}

func newFixture(t *testing.T, releaseOnCancel bool) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.Availability().CreateDay(ctx, &domain.Availability{
		Date:  monday,
		Slots: []domain.Slot{{StartTime: slot.StartTime, EndTime: slot.EndTime, MaxCapacity: 1}},
	}))
	_, err := store.Availability().ReserveSlot(ctx, monday, slot)
	require.NoError(t, err)
	created, err := store.Appointments().Create(ctx, &domain.Appointment{
		Name:            "Jane Doe",
		Email:           "jane@example.com",
		Phone:           "555-0100",
		Service:         domain.ServiceTaxConsultation,
		AppointmentType: domain.TypeVirtual,
		Date:            monday,
		TimeSlot:        slot,
		Status:          domain.StatusScheduled,
	})
	require.NoError(t, err)

	svc := appointments.NewService(store.Appointments(), store.Availability(), store.TxManager(), releaseOnCancel, logger.Nop())
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/appointments/{id}/status", NewHandler(svc, logger.Nop()).Handle).Methods(http.MethodPatch)

	return &fixture{store: store, router: r, id: created.ID}
}

func (f *fixture) patch(id int64, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	url := "/api/v1/appointments/" + strconv.FormatInt(id, 10) + "/status"
	f.router.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, url, strings.NewReader(body)))
	return rec
}

func (f *fixture) bookedCount(t *testing.T) int {
	t.Helper()
	day, err := f.store.Availability().GetDay(context.Background(), monday)
	require.NoError(t, err)
	return day.Slots[0].BookedCount
}

func TestHandle_Complete(t *testing.T) {
	f := newFixture(t, false)

	rec := f.patch(f.id, `{"status":"completed"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp UpdateStatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Appointment)
	assert.Equal(t, "completed", resp.Appointment.Status)
	assert.Equal(t, 1, f.bookedCount(t))
}

func TestHandle_CancelReleasesSlotWhenEnabled(t *testing.T) {
	f := newFixture(t, true)

	rec := f.patch(f.id, `{"status":"cancelled"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, f.bookedCount(t))
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name     string
		prepare  func(f *fixture)
		id       func(f *fixture) int64
		body     string
		wantCode int
		wantBody string
	}{
		{
			name:     "unknown status",
			body:     `{"status":"archived"}`,
			wantCode: http.StatusBadRequest,
			wantBody: `{"error":"Invalid status value"}`,
		},
		{
			name:     "malformed body",
			body:     `status=completed`,
			wantCode: http.StatusBadRequest,
			wantBody: `{"error":"Invalid request body"}`,
		},
		{
			name: "terminal status",
			prepare: func(f *fixture) {
				f.patch(f.id, `{"status":"cancelled"}`)
			},
			body:     `{"status":"completed"}`,
			wantCode: http.StatusBadRequest,
			wantBody: `{"error":"Status transition is not allowed"}`,
		},
		{
			name:     "not found",
			id:       func(*fixture) int64 { return 9999 },
			body:     `{"status":"completed"}`,
			wantCode: http.StatusNotFound,
			wantBody: `{"error":"Appointment not found"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, false)
			if tt.prepare != nil {
				tt.prepare(f)
			}
			id := f.id
			if tt.id != nil {
				id = tt.id(f)
			}

			rec := f.patch(id, tt.body)
			assert.Equal(t, tt.wantCode, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}
