package create_appointment

import (
	"context"
	"time"

	"github.com/m04kA/FWL-BookingService/internal/domain"
)

// AvailabilityRepository интерфейс хранилища доступности
type AvailabilityRepository interface {
	GetDay(ctx context.Context, date time.Time) (*domain.Availability, error)
	ReserveSlot(ctx context.Context, date time.Time, ts domain.TimeSlot) (*domain.Slot, error)
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier отправляет уведомления о новой записи
// Вызов не блокирует: доставка выполняется в фоне, ошибки не возвращаются
type Notifier interface {
	NotifyBooked(appt domain.Appointment)
}

// BookingMetrics счетчик исходов бронирования
type BookingMetrics interface {
	ObserveBooking(outcome string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
