package create_appointment

import (
	"time"

	"github.com/m04kA/FWL-BookingService/internal/domain"
)

// TimeSlot границы слота в запросе ("HH:MM:SS")
type TimeSlot struct {
	StartTime string
	EndTime   string
}

// Request модель запроса на создание записи
// Поля приходят как есть от клиента, нормализация и валидация выполняются в usecase
type Request struct {
	Name            string
	Email           string
	Phone           string
	Service         string
	AppointmentType string
	Date            string    // "2026-10-19" или RFC 3339
	TimeSlot        *TimeSlot // nil, если клиент не передал слот
	Notes           string
}

// Response модель ответа с созданной записью
type Response struct {
	ID              int64
	Name            string
	Email           string
	Phone           string
	Service         domain.OfferedService
	AppointmentType domain.AppointmentType
	Date            time.Time
	TimeSlot        domain.TimeSlot
	Status          domain.AppointmentStatus
	Notes           string
	FormattedDate   string // "Monday, October 19, 2026"
	FormattedTime   string // "13:00 - 14:00"
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func newResponse(a *domain.Appointment) *Response {
	return &Response{
		ID:              a.ID,
		Name:            a.Name,
		Email:           a.Email,
		Phone:           a.Phone,
		Service:         a.Service,
		AppointmentType: a.AppointmentType,
		Date:            a.Date,
		TimeSlot:        a.TimeSlot,
		Status:          a.Status,
		Notes:           a.Notes,
		FormattedDate:   a.FormattedDate(),
		FormattedTime:   a.FormattedTime(),
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}
