package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/FWL-BookingService/internal/domain"
	"github.com/m04kA/FWL-BookingService/pkg/dbmetrics"
	"github.com/m04kA/FWL-BookingService/pkg/psqlbuilder"
)

const table = "appointments"

var columns = []string{
	"id",
	"name",
	"email",
	"phone",
	"service",
	"appointment_type",
	"appointment_date",
	"start_time",
	"end_time",
	"status",
	"notes",
	"slot_released",
	"created_at",
	"updated_at",
}

// Repository репозиторий записей на консультацию
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает запись
// Вызывается в той же транзакции, что и резервирование слота
func (r *Repository) Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"name",
			"email",
			"phone",
			"service",
			"appointment_type",
			"appointment_date",
			"start_time",
			"end_time",
			"status",
			"notes",
		).
		Values(
			appt.Name,
			appt.Email,
			appt.Phone,
			appt.Service,
			appt.AppointmentType,
			domain.FormatDate(appt.Date),
			appt.TimeSlot.StartTime,
			appt.TimeSlot.EndTime,
			appt.Status,
			appt.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&appt.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time

	return appt, nil
}

// GetByID получает запись по ID
// Внутри транзакции строка блокируется (FOR UPDATE), чтобы смена статуса и удаление не гонялись
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	appt, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %w", ErrScanRow, err)
	}

	return appt, nil
}

// List возвращает записи по фильтру, отсортированные по дате и времени начала
func (r *Repository) List(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := applyFilter(psqlbuilder.Select(columns...).From(table), filter).
		OrderBy("appointment_date ASC", "start_time ASC", "id ASC")

	if filter.Limit > 0 {
		selectBuilder = selectBuilder.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		selectBuilder = selectBuilder.Offset(uint64(filter.Offset))
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	appointments := make([]*domain.Appointment, 0)
	for rows.Next() {
		appt, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %w", ErrScanRow, err)
		}
		appointments = append(appointments, appt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %w", ErrScanRow, err)
	}

	return appointments, nil
}

// Count возвращает количество записей по фильтру (Limit и Offset игнорируются)
func (r *Repository) Count(ctx context.Context, filter domain.AppointmentsFilter) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := applyFilter(psqlbuilder.Select("COUNT(*)").From(table), filter).ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: Count - build select query: %v", ErrBuildQuery, err)
	}

	var total int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("%w: Count - scan count: %w", ErrScanRow, err)
	}

	return total, nil
}

// UpdateStatus обновляет статус записи и признак освобожденного слота
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus, slotReleased bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("status", status).
		Set("slot_released", slotReleased).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

// Delete удаляет запись (физическое удаление)
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

func applyFilter(b squirrel.SelectBuilder, filter domain.AppointmentsFilter) squirrel.SelectBuilder {
	if filter.Status != nil {
		b = b.Where(squirrel.Eq{"status": *filter.Status})
	}
	if filter.Date != nil {
		b = b.Where(squirrel.Eq{"appointment_date": domain.FormatDate(*filter.Date)})
	}
	return b
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var appt domain.Appointment
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&appt.ID,
		&appt.Name,
		&appt.Email,
		&appt.Phone,
		&appt.Service,
		&appt.AppointmentType,
		&appt.Date,
		&appt.TimeSlot.StartTime,
		&appt.TimeSlot.EndTime,
		&appt.Status,
		&appt.Notes,
		&appt.SlotReleased,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	appt.Date = domain.NormalizeDate(appt.Date)
	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time

	return &appt, nil
}
