package notification

import (
	"context"

	"github.com/m04kA/FWL-BookingService/internal/domain"
)

// Mailer интерфейс отправителя писем
type Mailer interface {
	SendConfirmation(ctx context.Context, appt domain.Appointment) error
	SendOperatorNotification(ctx context.Context, appt domain.Appointment) error
}

// Metrics счетчик отправленных уведомлений
type Metrics interface {
	ObserveNotification(kind string, err error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
