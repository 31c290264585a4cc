package memory

import (
	"context"
	"sort"

	"github.com/m04kA/FWL-BookingService/internal/domain"
	"github.com/m04kA/FWL-BookingService/internal/infra/storage/appointment"
)

// AppointmentRepository записи в памяти
type AppointmentRepository struct {
	store *Store
}

// Create сохраняет запись и присваивает ей ID
func (r *AppointmentRepository) Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	defer r.store.lock(ctx)()

	r.store.nextID++
	now := r.store.now()

	appt.ID = r.store.nextID
	appt.CreatedAt = now
	appt.UpdatedAt = now

	stored := *appt
	r.store.appointments[stored.ID] = &stored

	return appt, nil
}

// GetByID возвращает копию записи
func (r *AppointmentRepository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	defer r.store.lock(ctx)()

	appt, ok := r.store.appointments[id]
	if !ok {
		return nil, appointment.ErrAppointmentNotFound
	}
	copied := *appt
	return &copied, nil
}

// List возвращает записи по фильтру, отсортированные по дате и времени начала
func (r *AppointmentRepository) List(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	defer r.store.lock(ctx)()

	matched := r.filter(filter)
	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.TimeSlot.StartTime != b.TimeSlot.StartTime {
			return a.TimeSlot.StartTime.IsBefore(b.TimeSlot.StartTime)
		}
		return a.ID < b.ID
	})

	if filter.Offset >= len(matched) {
		return []*domain.Appointment{}, nil
	}
	matched = matched[filter.Offset:]
	if filter.Limit > 0 && filter.Limit < len(matched) {
		matched = matched[:filter.Limit]
	}
	return matched, nil
}

// Count возвращает количество записей по фильтру
func (r *AppointmentRepository) Count(ctx context.Context, filter domain.AppointmentsFilter) (int, error) {
	defer r.store.lock(ctx)()
	return len(r.filter(filter)), nil
}

// UpdateStatus обновляет статус записи и признак освобожденного слота
func (r *AppointmentRepository) UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus, slotReleased bool) error {
	defer r.store.lock(ctx)()

	appt, ok := r.store.appointments[id]
	if !ok {
		return appointment.ErrAppointmentNotFound
	}
	appt.Status = status
	appt.SlotReleased = slotReleased
	appt.UpdatedAt = r.store.now()
	return nil
}

// Delete удаляет запись
func (r *AppointmentRepository) Delete(ctx context.Context, id int64) error {
	defer r.store.lock(ctx)()

	if _, ok := r.store.appointments[id]; !ok {
		return appointment.ErrAppointmentNotFound
	}
	delete(r.store.appointments, id)
	return nil
}

// filter вызывается под блокировкой
func (r *AppointmentRepository) filter(filter domain.AppointmentsFilter) []*domain.Appointment {
	result := make([]*domain.Appointment, 0, len(r.store.appointments))
	for _, appt := range r.store.appointments {
		if filter.Status != nil && appt.Status != *filter.Status {
			continue
		}
		if filter.Date != nil && domain.FormatDate(appt.Date) != domain.FormatDate(*filter.Date) {
			continue
		}
		copied := *appt
		result = append(result, &copied)
	}
	return result
}
