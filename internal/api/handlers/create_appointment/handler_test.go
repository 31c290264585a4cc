package create_appointment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/FWL-BookingService/internal/domain"
	"github.com/m04kA/FWL-BookingService/internal/infra/storage/memory"
	createAppointment "github.com/m04kA/FWL-BookingService/internal/usecase/create_appointment"
	"github.com/m04kA/FWL-BookingService/pkg/logger"
)

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type nopNotifier struct{}

func (nopNotifier) NotifyBooked(domain.Appointment) {}

func newHandler(t *testing.T) *Handler {
	t.Helper()
	store := memory.NewStore()
	require.NoError(t, store.Availability().CreateDay(context.Background(), &domain.Availability{
		Date:  time.Date(2026, time.October, 19, 0, 0, 0, 0, time.Local),
		Slots: []domain.Slot{{StartTime: "13:00:00", EndTime: "14:00:00", MaxCapacity: 1}},
	}))

	uc := createAppointment.NewUseCase(
		store.Availability(), store.Appointments(), store.TxManager(), nopNotifier{}, nil, logger.Nop(),
	).WithTimeProvider(fixedTime{time.Date(2026, time.October, 16, 12, 0, 0, 0, time.Local)})

	return NewHandler(uc, logger.Nop())
}

const validBody = `{
	"name": "Jane Doe",
	"email": "jane@example.com",
	"phone": "555-0100",
	"service": "Financial Planning",
	"appointmentType": "in-person",
	"date": "2026-10-19",
	"timeSlot": {"startTime": "13:00:00", "endTime": "14:00:00"}
}`

func post(h *Handler, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/appointments", strings.NewReader(body)))
	return rec
}

func TestHandle_BookThenSlotTaken(t *testing.T) {
	h := newHandler(t)

	rec := post(h, validBody)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp CreateAppointmentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "Appointment booked successfully", resp.Message)
	require.NotNil(t, resp.Appointment)
	assert.NotZero(t, resp.Appointment.ID)
	assert.Equal(t, "scheduled", resp.Appointment.Status)
	assert.Equal(t, "2026-10-19", resp.Appointment.Date)
	assert.Equal(t, "13:00:00", resp.Appointment.TimeSlot.StartTime)
	assert.Equal(t, "Monday, October 19, 2026", resp.Appointment.FormattedDate)

	rec = post(h, validBody)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Selected time slot is no longer available"}`, rec.Body.String())
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantBody string
	}{
		{
			name:     "malformed json",
			body:     `{"name":`,
			wantBody: `{"error":"Invalid request body"}`,
		},
		{
			name:     "missing fields",
			body:     `{"name":"Jane"}`,
			wantBody: `{"error":"All fields are required"}`,
		},
		{
			name:     "invalid email",
			body:     strings.Replace(validBody, "jane@example.com", "jane.example.com", 1),
			wantBody: `{"error":"Please provide a valid email address"}`,
		},
		{
			name:     "no availability",
			body:     strings.Replace(validBody, "2026-10-19", "2026-10-24", 1),
			wantBody: `{"error":"No availability for selected date"}`,
		},
		{
			name:     "unknown slot",
			body:     strings.Replace(validBody, `"endTime": "14:00:00"`, `"endTime": "15:00:00"`, 1),
			wantBody: `{"error":"Selected time slot is no longer available"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(newHandler(t), tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}
