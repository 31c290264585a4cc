package availability

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/FWL-BookingService/internal/domain"
	"github.com/m04kA/FWL-BookingService/pkg/dbmetrics"
	"github.com/m04kA/FWL-BookingService/pkg/psqlbuilder"
)

const (
	daysTable  = "availability"
	slotsTable = "availability_slots"
)

var slotColumns = []string{
	"start_time",
	"end_time",
	"max_capacity",
	"booked_count",
	"blocked",
}

// Repository хранилище доступности по дням
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория доступности
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetDay получает запись доступности за день вместе со слотами
// Внутри транзакции строка дня блокируется (FOR UPDATE): день является единицей взаимного исключения для бронирований
func (r *Repository) GetDay(ctx context.Context, date time.Time) (*domain.Availability, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"day",
		"business_open",
		"business_close",
		"created_at",
		"updated_at",
	).
		From(daysTable).
		Where(squirrel.Eq{"day": domain.FormatDate(date)})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetDay - build select query: %v", ErrBuildQuery, err)
	}

	var day domain.Availability
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&day.Date,
		&day.BusinessHours.Open,
		&day.BusinessHours.Close,
		&createdAt,
		&updatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDayNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetDay - scan day: %w", ErrScanRow, err)
	}

	day.Date = domain.NormalizeDate(day.Date)
	day.CreatedAt = createdAt.Time
	day.UpdatedAt = updatedAt.Time

	slots, err := r.selectSlots(ctx, "GetDay", squirrel.Eq{"day": domain.FormatDate(date)})
	if err != nil {
		return nil, err
	}
	day.Slots = slots

	return &day, nil
}

// ListBookableSlots возвращает свободные слоты дня по возрастанию времени начала
// Отсутствие записи дня не ошибка: возвращается пустой список
func (r *Repository) ListBookableSlots(ctx context.Context, date time.Time) ([]domain.Slot, error) {
	return r.selectSlots(ctx, "ListBookableSlots", squirrel.And{
		squirrel.Eq{"day": domain.FormatDate(date)},
		squirrel.Eq{"blocked": false},
		squirrel.Expr("booked_count < max_capacity"),
	})
}

// ReserveSlot атомарно занимает одно место в слоте
// Проверка вместимости и инкремент выполняются одним условным UPDATE (compare-and-swap),
// поэтому два конкурентных запроса не могут занять последнее место одновременно
func (r *Repository) ReserveSlot(ctx context.Context, date time.Time, ts domain.TimeSlot) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(slotsTable).
		Set("booked_count", squirrel.Expr("booked_count + 1")).
		Where(squirrel.Eq{
			"day":        domain.FormatDate(date),
			"start_time": ts.StartTime,
			"end_time":   ts.EndTime,
			"blocked":    false,
		}).
		Where("booked_count < max_capacity").
		Suffix("RETURNING start_time, end_time, max_capacity, booked_count, blocked").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ReserveSlot - build update query: %v", ErrBuildQuery, err)
	}

	var slot domain.Slot
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&slot.StartTime,
		&slot.EndTime,
		&slot.MaxCapacity,
		&slot.BookedCount,
		&slot.Blocked,
	)

	if errors.Is(err, sql.ErrNoRows) {
		// Ничего не обновилось: различаем отсутствующий и занятый слот
		if _, getErr := r.getSlot(ctx, date, ts); getErr != nil {
			return nil, getErr
		}
		return nil, ErrSlotNotAvailable
	}
	if err != nil {
		return nil, fmt.Errorf("%w: ReserveSlot - execute update: %w", ErrExecQuery, err)
	}

	if err := r.touchDay(ctx, "ReserveSlot", date); err != nil {
		return nil, err
	}

	return &slot, nil
}

// ReleaseSlot возвращает одно место в слот, счетчик не уходит ниже нуля
// Отсутствие дня или слота не ошибка
func (r *Repository) ReleaseSlot(ctx context.Context, date time.Time, ts domain.TimeSlot) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(slotsTable).
		Set("booked_count", squirrel.Expr("GREATEST(booked_count - 1, 0)")).
		Where(squirrel.Eq{
			"day":        domain.FormatDate(date),
			"start_time": ts.StartTime,
			"end_time":   ts.EndTime,
		}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: ReleaseSlot - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: ReleaseSlot - execute update: %w", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: ReleaseSlot - rows affected: %w", ErrExecQuery, err)
	}
	if affected == 0 {
		return nil
	}

	return r.touchDay(ctx, "ReleaseSlot", date)
}

// touchDay обновляет updated_at записи дня после изменения его слотов
func (r *Repository) touchDay(ctx context.Context, op string, date time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(daysTable).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"day": domain.FormatDate(date)}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: %s - build touch day query: %v", ErrBuildQuery, op, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %s - execute touch day: %w", ErrExecQuery, op, err)
	}

	return nil
}

// CreateDay создает запись дня со всеми слотами
func (r *Repository) CreateDay(ctx context.Context, day *domain.Availability) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)
	dayKey := domain.FormatDate(day.Date)

	query, args, err := psqlbuilder.Insert(daysTable).
		Columns("day", "business_open", "business_close").
		Values(dayKey, day.BusinessHours.Open, day.BusinessHours.Close).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: CreateDay - build insert day query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: CreateDay - execute insert day: %w", ErrExecQuery, err)
	}

	if len(day.Slots) == 0 {
		return nil
	}

	insertSlots := psqlbuilder.Insert(slotsTable).
		Columns("day", "start_time", "end_time", "max_capacity", "booked_count", "blocked")
	for _, s := range day.Slots {
		insertSlots = insertSlots.Values(dayKey, s.StartTime, s.EndTime, s.MaxCapacity, s.BookedCount, s.Blocked)
	}

	query, args, err = insertSlots.ToSql()
	if err != nil {
		return fmt.Errorf("%w: CreateDay - build insert slots query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: CreateDay - execute insert slots: %w", ErrExecQuery, err)
	}

	return nil
}

// DeleteAll удаляет все записи доступности (слоты удаляются каскадно)
// Возвращает количество удаленных дней
func (r *Repository) DeleteAll(ctx context.Context) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(daysTable).ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteAll - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteAll - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteAll - get rows affected: %w", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

// getSlot получает слот по границам
func (r *Repository) getSlot(ctx context.Context, date time.Time, ts domain.TimeSlot) (*domain.Slot, error) {
	slots, err := r.selectSlots(ctx, "getSlot", squirrel.Eq{
		"day":        domain.FormatDate(date),
		"start_time": ts.StartTime,
		"end_time":   ts.EndTime,
	})
	if err != nil {
		return nil, err
	}
	if len(slots) == 0 {
		return nil, ErrSlotNotFound
	}
	return &slots[0], nil
}

// selectSlots выбирает слоты по условию, отсортированные по времени начала
func (r *Repository) selectSlots(ctx context.Context, op string, where squirrel.Sqlizer) ([]domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns...).
		From(slotsTable).
		Where(where).
		OrderBy("start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select slots query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute select slots: %w", ErrExecQuery, op, err)
	}
	defer rows.Close()

	slots := make([]domain.Slot, 0)
	for rows.Next() {
		var s domain.Slot
		if err := rows.Scan(&s.StartTime, &s.EndTime, &s.MaxCapacity, &s.BookedCount, &s.Blocked); err != nil {
			return nil, fmt.Errorf("%w: %s - scan slot: %w", ErrScanRow, op, err)
		}
		slots = append(slots, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %w", ErrScanRow, op, err)
	}

	return slots, nil
}
