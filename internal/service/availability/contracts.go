package availability

import (
	"context"
	"time"

	"github.com/m04kA/FWL-BookingService/internal/domain"
)

// AvailabilityRepository интерфейс хранилища доступности
type AvailabilityRepository interface {
	GetDay(ctx context.Context, date time.Time) (*domain.Availability, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
