package update_appointment_status

import "github.com/m04kA/FWL-BookingService/internal/service/appointments/models"

// UpdateStatusResponse HTTP ответ с обновленной записью
type UpdateStatusResponse struct {
	Success     bool                        `json:"success"`
	Appointment *models.AppointmentResponse `json:"appointment"`
}
