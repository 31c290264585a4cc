package list_appointments

import (
	"context"

	"github.com/m04kA/FWL-BookingService/internal/service/appointments/models"
)

type AppointmentService interface {
	List(ctx context.Context, req *models.ListRequest) (*models.ListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
