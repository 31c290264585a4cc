package dbmetrics

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/m04kA/FWL-BookingService/pkg/metrics"
)

// DefaultStatsInterval период сбора статистики connection pool
const DefaultStatsInterval = 15 * time.Second

// DB обёртка над *sql.DB, которая пишет метрики запросов
// metrics может быть nil, тогда обёртка только проксирует вызовы
type DB struct {
	db      *sql.DB
	metrics *metrics.Metrics
}

// Wrap оборачивает соединение без фонового сбора статистики пула
func Wrap(db *sql.DB, m *metrics.Metrics) *DB {
	return &DB{db: db, metrics: m}
}

// WrapWithDefault оборачивает соединение и запускает сбор статистики пула до закрытия stopCh
func WrapWithDefault(db *sql.DB, m *metrics.Metrics, stopCh <-chan struct{}) *DB {
	wrapped := Wrap(db, m)
	if m != nil {
		go wrapped.collectStats(DefaultStatsInterval, stopCh)
	}
	return wrapped
}

// ExecContext выполняет запрос без результата
func (d *DB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	res, err := d.db.ExecContext(ctx, query, args...)
	d.metrics.ObserveDB(operation(query), err, time.Since(start))
	return res, err
}

// QueryContext выполняет запрос, возвращающий строки
func (d *DB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := d.db.QueryContext(ctx, query, args...)
	d.metrics.ObserveDB(operation(query), err, time.Since(start))
	return rows, err
}

// QueryRowContext выполняет запрос, возвращающий одну строку
func (d *DB) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := d.db.QueryRowContext(ctx, query, args...)
	d.metrics.ObserveDB(operation(query), row.Err(), time.Since(start))
	return row
}

// BeginTx открывает транзакцию
func (d *DB) BeginTx(ctx context.Context, opts *sql.TxOptions) (TxExecutor, error) {
	tx, err := d.db.BeginTx(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &Tx{tx: tx, metrics: d.metrics}, nil
}

// PingContext проверяет соединение
func (d *DB) PingContext(ctx context.Context) error {
	return d.db.PingContext(ctx)
}

// Close закрывает соединение
func (d *DB) Close() error {
	return d.db.Close()
}

func (d *DB) collectStats(interval time.Duration, stopCh <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		d.recordStats()
		select {
		case <-ticker.C:
		case <-stopCh:
			return
		}
	}
}

func (d *DB) recordStats() {
	stats := d.db.Stats()
	d.metrics.DBOpenConnections.WithLabelValues().Set(float64(stats.OpenConnections))
	d.metrics.DBInUseConnections.WithLabelValues().Set(float64(stats.InUse))
	d.metrics.DBIdleConnections.WithLabelValues().Set(float64(stats.Idle))
	d.metrics.DBWaitCount.WithLabelValues().Set(float64(stats.WaitCount))
}

// Tx транзакция с метриками
type Tx struct {
	tx      *sql.Tx
	metrics *metrics.Metrics
}

// ExecContext выполняет запрос в транзакции
func (t *Tx) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	res, err := t.tx.ExecContext(ctx, query, args...)
	t.metrics.ObserveDB(operation(query), err, time.Since(start))
	return res, err
}

// QueryContext выполняет запрос в транзакции
func (t *Tx) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := t.tx.QueryContext(ctx, query, args...)
	t.metrics.ObserveDB(operation(query), err, time.Since(start))
	return rows, err
}

// QueryRowContext выполняет запрос в транзакции
func (t *Tx) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := t.tx.QueryRowContext(ctx, query, args...)
	t.metrics.ObserveDB(operation(query), row.Err(), time.Since(start))
	return row
}

// Commit фиксирует транзакцию
func (t *Tx) Commit() error {
	start := time.Now()
	err := t.tx.Commit()
	t.metrics.ObserveDB("commit", err, time.Since(start))
	return err
}

// Rollback откатывает транзакцию
func (t *Tx) Rollback() error {
	return t.tx.Rollback()
}

// operation первое слово запроса: select, insert, update, delete
func operation(query string) string {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return "unknown"
	}
	return strings.ToLower(fields[0])
}
