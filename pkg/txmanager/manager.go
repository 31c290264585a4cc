package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/m04kA/FWL-BookingService/pkg/dbmetrics"
)

const (
	// DefaultMaxRetries количество повторов при конфликте сериализации
	DefaultMaxRetries = 3

	// serializationFailureCode SQLSTATE конфликта сериализации
	serializationFailureCode = "40001"
)

// TxBeginner источник транзакций (*dbmetrics.DB)
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error)
}

// TransactionManager выполняет функции внутри транзакции, передавая её через контекст
type TransactionManager struct {
	db         TxBeginner
	maxRetries int
	backoff    time.Duration
}

// Option настройка менеджера
type Option func(*TransactionManager)

// WithMaxRetries задает количество повторов для serializable транзакций
func WithMaxRetries(n int) Option {
	return func(m *TransactionManager) {
		if n >= 0 {
			m.maxRetries = n
		}
	}
}

// WithBackoff задает базовую паузу между повторами
func WithBackoff(d time.Duration) Option {
	return func(m *TransactionManager) {
		m.backoff = d
	}
}

// NewTransactionManager создает менеджер транзакций
func NewTransactionManager(db TxBeginner, opts ...Option) *TransactionManager {
	m := &TransactionManager{
		db:         db,
		maxRetries: DefaultMaxRetries,
		backoff:    10 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Do выполняет fn в транзакции READ COMMITTED
func (m *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted}, fn)
}

// DoReadOnly выполняет fn в транзакции только для чтения
func (m *TransactionManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}, fn)
}

// DoSerializable выполняет fn в транзакции SERIALIZABLE
// При конфликте сериализации транзакция повторяется целиком, fn должна быть идемпотентной до коммита
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	opts := &sql.TxOptions{Isolation: sql.LevelSerializable}

	var err error
	for attempt := 0; attempt <= m.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(m.backoff * time.Duration(attempt)):
			}
		}

		err = m.run(ctx, opts, fn)
		if !IsSerializationFailure(err) {
			return err
		}
	}

	return fmt.Errorf("%w: after %d attempts: %v", ErrSerializationFailure, m.maxRetries+1, err)
}

func (m *TransactionManager) run(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) (err error) {
	// Вложенный вызов работает в уже открытой транзакции
	if dbmetrics.IsInTransaction(ctx) {
		return fn(ctx)
	}

	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginTx, err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(dbmetrics.WithTx(ctx, tx)); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitTx, err)
	}

	return nil
}

// IsSerializationFailure проверяет, что ошибка вызвана конфликтом сериализации Postgres
func IsSerializationFailure(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == serializationFailureCode
	}
	return false
}
