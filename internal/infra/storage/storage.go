package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/m04kA/FWL-BookingService/internal/config"
	"github.com/m04kA/FWL-BookingService/internal/domain"
	appointmentRepo "github.com/m04kA/FWL-BookingService/internal/infra/storage/appointment"
	availabilityRepo "github.com/m04kA/FWL-BookingService/internal/infra/storage/availability"
	"github.com/m04kA/FWL-BookingService/internal/infra/storage/memory"
	"github.com/m04kA/FWL-BookingService/pkg/dbmetrics"
	"github.com/m04kA/FWL-BookingService/pkg/metrics"
	"github.com/m04kA/FWL-BookingService/pkg/txmanager"
)

// ErrUnknownDriver возвращается для неизвестного storage.driver
var ErrUnknownDriver = errors.New("storage: unknown driver")

// AvailabilityRepository хранилище дней доступности
type AvailabilityRepository interface {
	GetDay(ctx context.Context, date time.Time) (*domain.Availability, error)
	ListBookableSlots(ctx context.Context, date time.Time) ([]domain.Slot, error)
	ReserveSlot(ctx context.Context, date time.Time, ts domain.TimeSlot) (*domain.Slot, error)
	ReleaseSlot(ctx context.Context, date time.Time, ts domain.TimeSlot) error
	CreateDay(ctx context.Context, day *domain.Availability) error
	DeleteAll(ctx context.Context) (int64, error)
}

// AppointmentRepository хранилище записей
type AppointmentRepository interface {
	Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	List(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
	Count(ctx context.Context, filter domain.AppointmentsFilter) (int, error)
	UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus, slotReleased bool) error
	Delete(ctx context.Context, id int64) error
}

// TransactionManager выполняет функции в транзакции
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Storage репозитории выбранного драйвера
type Storage struct {
	Driver       string
	Availability AvailabilityRepository
	Appointments AppointmentRepository
	TxManager    TransactionManager

	close func() error
}

// Open открывает хранилище по storage.driver
// Для postgres запросы идут через dbmetrics, m может быть nil
func Open(ctx context.Context, cfg *config.Config, m *metrics.Metrics, log Logger) (*Storage, error) {
	switch cfg.Storage.Driver {
	case config.StorageDriverMemory:
		store := memory.NewStore()
		log.Warn("Storage: using in-memory storage, data is lost on restart")
		return &Storage{
			Driver:       config.StorageDriverMemory,
			Availability: store.Availability(),
			Appointments: store.Appointments(),
			TxManager:    store.TxManager(),
			close:        func() error { return nil },
		}, nil

	case config.StorageDriverPostgres:
		return openPostgres(ctx, cfg.Database, m, log)

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Storage.Driver)
	}
}

func openPostgres(ctx context.Context, cfg config.DatabaseConfig, m *metrics.Metrics, log Logger) (*Storage, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("storage: open postgres: %w", err)
	}

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("storage: ping postgres: %w", err)
	}
	log.Info("Storage: connected to database (host=%s, port=%d, db=%s)", cfg.Host, cfg.Port, cfg.DBName)

	stopStats := make(chan struct{})
	wrapped := dbmetrics.WrapWithDefault(db, m, stopStats)

	return &Storage{
		Driver:       config.StorageDriverPostgres,
		Availability: availabilityRepo.NewRepository(wrapped),
		Appointments: appointmentRepo.NewRepository(wrapped),
		TxManager:    txmanager.NewTransactionManager(wrapped),
		close: func() error {
			close(stopStats)
			return wrapped.Close()
		},
	}, nil
}

// Close освобождает соединения
func (s *Storage) Close() error {
	return s.close()
}
