package appointments

import (
	"context"
	"time"

	"github.com/m04kA/FWL-BookingService/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	List(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
	Count(ctx context.Context, filter domain.AppointmentsFilter) (int, error)
	UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus, slotReleased bool) error
	Delete(ctx context.Context, id int64) error
}

// AvailabilityRepository интерфейс хранилища доступности
type AvailabilityRepository interface {
	ReleaseSlot(ctx context.Context, date time.Time, ts domain.TimeSlot) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
