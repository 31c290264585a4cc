package get_availability

import (
	"context"
	"time"

	"github.com/m04kA/FWL-BookingService/internal/domain"
)

// AvailabilityRepository интерфейс хранилища доступности
type AvailabilityRepository interface {
	// ListBookableSlots возвращает свободные слоты дня по возрастанию времени начала
	ListBookableSlots(ctx context.Context, date time.Time) ([]domain.Slot, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
