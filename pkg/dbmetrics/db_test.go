package dbmetrics

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/FWL-BookingService/pkg/metrics"
)

func TestDB_RecordsQueryMetrics(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	m := metrics.New("test")
	db := Wrap(sqlDB, m)

	mock.ExpectExec("UPDATE availability_slots").WillReturnResult(sqlmock.NewResult(0, 1))

	_, err = db.ExecContext(context.Background(), "UPDATE availability_slots SET booked_count = 0")
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.DBQueriesTotal.WithLabelValues("update", "ok")))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDB_WorksWithoutMetrics(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db := Wrap(sqlDB, nil)
	mock.ExpectQuery("SELECT 1").WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(1))

	var n int
	require.NoError(t, db.QueryRowContext(context.Background(), "SELECT 1").Scan(&n))
	assert.Equal(t, 1, n)
}

func TestGetExecutor_PrefersTransaction(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db := Wrap(sqlDB, nil)
	mock.ExpectBegin()
	mock.ExpectRollback()

	ctx := context.Background()
	assert.False(t, IsInTransaction(ctx))
	assert.Equal(t, DBExecutor(db), GetExecutor(ctx, db))

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)

	txCtx := WithTx(ctx, tx)
	assert.True(t, IsInTransaction(txCtx))
	assert.Equal(t, DBExecutor(tx), GetExecutor(txCtx, db))

	require.NoError(t, tx.Rollback())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOperation(t *testing.T) {
	assert.Equal(t, "select", operation("  SELECT day FROM availability"))
	assert.Equal(t, "unknown", operation(""))
}
