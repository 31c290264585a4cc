package initialize_availability

import (
	"context"

	"github.com/m04kA/FWL-BookingService/internal/domain"
)

// AvailabilityRepository интерфейс хранилища доступности
type AvailabilityRepository interface {
	// DeleteAll удаляет все записи доступности, возвращает число удаленных дней
	DeleteAll(ctx context.Context) (int64, error)
	// CreateDay сохраняет запись дня вместе со слотами
	CreateDay(ctx context.Context, day *domain.Availability) error
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
