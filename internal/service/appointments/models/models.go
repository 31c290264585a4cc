package models

import (
	"errors"
	"time"

	"github.com/m04kA/FWL-BookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid appointment status")
)

// Request модели

// ListRequest запрос списка записей
type ListRequest struct {
	Page   int     // Номер страницы, начиная с 1
	Limit  int     // Размер страницы
	Status *string // Фильтр по статусу (опционально)
	Date   *string // Фильтр по дню (опционально), "2026-10-19"
}

// UpdateStatusRequest запрос на смену статуса
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// Response модели

// TimeSlotResponse границы слота
type TimeSlotResponse struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID              int64            `json:"id"`
	Name            string           `json:"name"`
	Email           string           `json:"email"`
	Phone           string           `json:"phone"`
	Service         string           `json:"service"`
	AppointmentType string           `json:"appointmentType"`
	Date            string           `json:"date"` // "2026-10-19"
	TimeSlot        TimeSlotResponse `json:"timeSlot"`
	Status          string           `json:"status"`
	Notes           string           `json:"notes,omitempty"`

	FormattedDate string `json:"formattedDate"` // "Monday, October 19, 2026"
	FormattedTime string `json:"formattedTime"` // "13:00 - 14:00"

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ListResponse страница списка записей
type ListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	TotalPages   int                   `json:"totalPages"`
	CurrentPage  int                   `json:"currentPage"`
	Total        int                   `json:"total"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	return &AppointmentResponse{
		ID:              a.ID,
		Name:            a.Name,
		Email:           a.Email,
		Phone:           a.Phone,
		Service:         string(a.Service),
		AppointmentType: string(a.AppointmentType),
		Date:            domain.FormatDate(a.Date),
		TimeSlot: TimeSlotResponse{
			StartTime: a.TimeSlot.StartTime.String(),
			EndTime:   a.TimeSlot.EndTime.String(),
		},
		Status:        string(a.Status),
		Notes:         a.Notes,
		FormattedDate: a.FormattedDate(),
		FormattedTime: a.FormattedTime(),
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(appts []*domain.Appointment) []AppointmentResponse {
	result := make([]AppointmentResponse, 0, len(appts))
	for _, a := range appts {
		if resp := FromDomainAppointment(a); resp != nil {
			result = append(result, *resp)
		}
	}
	return result
}

// ToDomainStatus конвертирует строку в domain.AppointmentStatus с валидацией
func ToDomainStatus(status string) (domain.AppointmentStatus, error) {
	s := domain.AppointmentStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}
