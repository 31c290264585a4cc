package delete_appointment

// DeleteAppointmentResponse HTTP ответ об удалении записи
type DeleteAppointmentResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
