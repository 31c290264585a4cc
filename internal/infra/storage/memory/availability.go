package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/FWL-BookingService/internal/domain"
	"github.com/m04kA/FWL-BookingService/internal/infra/storage/availability"
)

// AvailabilityRepository доступность по дням в памяти
type AvailabilityRepository struct {
	store *Store
}

// GetDay возвращает копию записи дня
func (r *AvailabilityRepository) GetDay(ctx context.Context, date time.Time) (*domain.Availability, error) {
	defer r.store.lock(ctx)()

	day, ok := r.store.days[domain.FormatDate(date)]
	if !ok {
		return nil, availability.ErrDayNotFound
	}
	return cloneDay(day), nil
}

// ListBookableSlots возвращает свободные слоты дня по возрастанию времени начала
func (r *AvailabilityRepository) ListBookableSlots(ctx context.Context, date time.Time) ([]domain.Slot, error) {
	defer r.store.lock(ctx)()

	day, ok := r.store.days[domain.FormatDate(date)]
	if !ok {
		return []domain.Slot{}, nil
	}
	return day.BookableSlots(), nil
}

// ReserveSlot занимает одно место в слоте
func (r *AvailabilityRepository) ReserveSlot(ctx context.Context, date time.Time, ts domain.TimeSlot) (*domain.Slot, error) {
	defer r.store.lock(ctx)()

	day, ok := r.store.days[domain.FormatDate(date)]
	if !ok {
		return nil, availability.ErrSlotNotFound
	}

	slot, ok := day.FindSlot(ts)
	if !ok {
		return nil, availability.ErrSlotNotFound
	}
	if !slot.Reserve() {
		return nil, availability.ErrSlotNotAvailable
	}
	day.UpdatedAt = r.store.now()

	reserved := *slot
	return &reserved, nil
}

// ReleaseSlot возвращает одно место в слот. Отсутствие дня или слота не ошибка
func (r *AvailabilityRepository) ReleaseSlot(ctx context.Context, date time.Time, ts domain.TimeSlot) error {
	defer r.store.lock(ctx)()

	day, ok := r.store.days[domain.FormatDate(date)]
	if !ok {
		return nil
	}
	if slot, ok := day.FindSlot(ts); ok {
		slot.Release()
		day.UpdatedAt = r.store.now()
	}
	return nil
}

// CreateDay сохраняет запись дня
func (r *AvailabilityRepository) CreateDay(ctx context.Context, day *domain.Availability) error {
	defer r.store.lock(ctx)()

	key := domain.FormatDate(day.Date)
	if _, exists := r.store.days[key]; exists {
		return fmt.Errorf("%w: CreateDay - day %s already exists", availability.ErrExecQuery, key)
	}

	stored := cloneDay(day)
	stored.Date = domain.NormalizeDate(day.Date)
	domain.SortSlots(stored.Slots)
	now := r.store.now()
	stored.CreatedAt = now
	stored.UpdatedAt = now

	r.store.days[key] = stored
	return nil
}

// DeleteAll удаляет все записи доступности
func (r *AvailabilityRepository) DeleteAll(ctx context.Context) (int64, error) {
	defer r.store.lock(ctx)()

	n := int64(len(r.store.days))
	r.store.days = make(map[string]*domain.Availability)
	return n, nil
}
