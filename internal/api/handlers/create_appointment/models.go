package create_appointment

import (
	"github.com/m04kA/FWL-BookingService/internal/domain"
	"github.com/m04kA/FWL-BookingService/internal/service/appointments/models"
	createAppointment "github.com/m04kA/FWL-BookingService/internal/usecase/create_appointment"
)

// TimeSlotRequest выбранный слот
type TimeSlotRequest struct {
	StartTime string `json:"startTime"` // "13:00:00"
	EndTime   string `json:"endTime"`   // "14:00:00"
}

// CreateAppointmentRequest HTTP запрос на создание записи
type CreateAppointmentRequest struct {
	Name            string           `json:"name"`
	Email           string           `json:"email"`
	Phone           string           `json:"phone"`
	Service         string           `json:"service"`
	AppointmentType string           `json:"appointmentType"`
	Date            string           `json:"date"` // "2026-10-19" или ISO 8601
	TimeSlot        *TimeSlotRequest `json:"timeSlot"`
	Notes           string           `json:"notes,omitempty"`
}

// CreateAppointmentResponse HTTP ответ с созданной записью
type CreateAppointmentResponse struct {
	Success     bool                        `json:"success"`
	Message     string                      `json:"message"`
	Appointment *models.AppointmentResponse `json:"appointment"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest() *createAppointment.Request {
	req := &createAppointment.Request{
		Name:            r.Name,
		Email:           r.Email,
		Phone:           r.Phone,
		Service:         r.Service,
		AppointmentType: r.AppointmentType,
		Date:            r.Date,
		Notes:           r.Notes,
	}
	if r.TimeSlot != nil {
		req.TimeSlot = &createAppointment.TimeSlot{
			StartTime: r.TimeSlot.StartTime,
			EndTime:   r.TimeSlot.EndTime,
		}
	}
	return req
}

// FromUseCaseResponse конвертирует ответ use case в HTTP ответ
func FromUseCaseResponse(resp *createAppointment.Response) *CreateAppointmentResponse {
	return &CreateAppointmentResponse{
		Success: true,
		Message: msgBooked,
		Appointment: &models.AppointmentResponse{
			ID:              resp.ID,
			Name:            resp.Name,
			Email:           resp.Email,
			Phone:           resp.Phone,
			Service:         string(resp.Service),
			AppointmentType: string(resp.AppointmentType),
			Date:            domain.FormatDate(resp.Date),
			TimeSlot: models.TimeSlotResponse{
				StartTime: resp.TimeSlot.StartTime.String(),
				EndTime:   resp.TimeSlot.EndTime.String(),
			},
			Status:        string(resp.Status),
			Notes:         resp.Notes,
			FormattedDate: resp.FormattedDate,
			FormattedTime: resp.FormattedTime,
			CreatedAt:     resp.CreatedAt,
			UpdatedAt:     resp.UpdatedAt,
		},
	}
}
