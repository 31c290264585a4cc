package get_availability_day

import (
	"context"

	"github.com/m04kA/FWL-BookingService/internal/service/availability/models"
)

type AvailabilityService interface {
	GetDay(ctx context.Context, date string) (*models.DayResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
