package memory

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/FWL-BookingService/internal/domain"
)

// Store хранилище в памяти процесса. Данные теряются при перезапуске
// Реализует те же контракты, что и Postgres репозитории
type Store struct {
	mu           sync.Mutex
	days         map[string]*domain.Availability
	appointments map[int64]*domain.Appointment
	nextID       int64
	now          func() time.Time
}

// NewStore создает пустое хранилище
func NewStore() *Store {
	return &Store{
		days:         make(map[string]*domain.Availability),
		appointments: make(map[int64]*domain.Appointment),
		now:          time.Now,
	}
}

// Availability репозиторий доступности поверх хранилища
func (s *Store) Availability() *AvailabilityRepository {
	return &AvailabilityRepository{store: s}
}

// Appointments репозиторий записей поверх хранилища
func (s *Store) Appointments() *AppointmentRepository {
	return &AppointmentRepository{store: s}
}

// TxManager менеджер транзакций поверх хранилища
func (s *Store) TxManager() *TransactionManager {
	return &TransactionManager{store: s}
}

type txKey struct{}

// lock берет мьютекс, если вызов не внутри транзакции этого хранилища
// Возвращает функцию освобождения
func (s *Store) lock(ctx context.Context) func() {
	if owner, ok := ctx.Value(txKey{}).(*Store); ok && owner == s {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

type snapshot struct {
	days         map[string]*domain.Availability
	appointments map[int64]*domain.Appointment
	nextID       int64
}

func (s *Store) snapshot() snapshot {
	snap := snapshot{
		days:         make(map[string]*domain.Availability, len(s.days)),
		appointments: make(map[int64]*domain.Appointment, len(s.appointments)),
		nextID:       s.nextID,
	}
	for k, d := range s.days {
		snap.days[k] = cloneDay(d)
	}
	for id, a := range s.appointments {
		copied := *a
		snap.appointments[id] = &copied
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.days = snap.days
	s.appointments = snap.appointments
	s.nextID = snap.nextID
}

// TransactionManager выполняет функцию под эксклюзивной блокировкой хранилища
// При ошибке состояние откатывается к снимку, сделанному до начала
type TransactionManager struct {
	store *Store
}

// Do выполняет fn атомарно
func (m *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if owner, ok := ctx.Value(txKey{}).(*Store); ok && owner == m.store {
		return fn(ctx)
	}

	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	snap := m.store.snapshot()
	if err := fn(context.WithValue(ctx, txKey{}, m.store)); err != nil {
		m.store.restore(snap)
		return err
	}
	return nil
}

// DoSerializable выполняет fn атомарно. Все транзакции хранилища сериализуемы
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.Do(ctx, fn)
}

func cloneDay(d *domain.Availability) *domain.Availability {
	copied := *d
	copied.Slots = append([]domain.Slot(nil), d.Slots...)
	return &copied
}
