package notification

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/m04kA/FWL-BookingService/internal/domain"
)

// Виды уведомлений для метрик
const (
	KindConfirmation = "confirmation"
	KindOperator     = "operator"
)

// Service отправляет уведомления о записях
// Доставка выполняется в фоне и никогда не влияет на результат бронирования
type Service struct {
	mailer  Mailer
	metrics Metrics
	timeout time.Duration
	logger  Logger

	mu      sync.Mutex
	closed  bool
	pending sync.WaitGroup
}

// NewService создает новый экземпляр сервиса уведомлений
// timeout ограничивает одну фоновую доставку (оба письма)
func NewService(mailer Mailer, metrics Metrics, timeout time.Duration, logger Logger) *Service {
	return &Service{
		mailer:  mailer,
		metrics: metrics,
		timeout: timeout,
		logger:  logger,
	}
}

// NotifyBooked запускает фоновую отправку подтверждения клиенту и уведомления оператору
// Не блокирует и не возвращает ошибок: сбои только логируются
func (s *Service) NotifyBooked(appt domain.Appointment) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		s.logger.Warn("NotifyBooked: service is shutting down, skip notifications for appointment id=%d", appt.ID)
		return
	}
	s.pending.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.pending.Done()
		s.deliver(appt)
	}()
}

// deliver отправляет оба письма параллельно
func (s *Service) deliver(appt domain.Appointment) {
	ctx := context.Background()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	// errgroup без общего контекста: ошибка одного письма не отменяет второе
	var g errgroup.Group
	g.Go(func() error {
		return s.send(ctx, KindConfirmation, appt, s.mailer.SendConfirmation)
	})
	g.Go(func() error {
		return s.send(ctx, KindOperator, appt, s.mailer.SendOperatorNotification)
	})

	if err := g.Wait(); err != nil {
		s.logger.Error("NotifyBooked: email sending failed for appointment id=%d: %v", appt.ID, err)
		return
	}
	s.logger.Info("NotifyBooked: all emails sent for appointment id=%d", appt.ID)
}

func (s *Service) send(
	ctx context.Context,
	kind string,
	appt domain.Appointment,
	fn func(ctx context.Context, appt domain.Appointment) error,
) error {
	err := fn(ctx, appt)
	if s.metrics != nil {
		s.metrics.ObserveNotification(kind, err)
	}
	if err != nil {
		s.logger.Warn("NotifyBooked: %s email for appointment id=%d failed: %v", kind, appt.ID, err)
		return fmt.Errorf("%s: %w", kind, err)
	}
	return nil
}

// SendTest синхронно отправляет оба письма для тестовой записи
// Подтверждение уходит на email, уведомление оператору на адрес из конфигурации
func (s *Service) SendTest(ctx context.Context, email string, now time.Time) error {
	appt := SampleAppointment(strings.TrimSpace(email), now)

	s.logger.Info("SendTest: sending test emails to %s", appt.Email)

	if err := s.send(ctx, KindConfirmation, appt, s.mailer.SendConfirmation); err != nil {
		return err
	}
	if err := s.send(ctx, KindOperator, appt, s.mailer.SendOperatorNotification); err != nil {
		return err
	}

	s.logger.Info("SendTest: test emails sent to %s", appt.Email)
	return nil
}

// SampleAppointment возвращает тестовую запись на послезавтра, 10:00-11:00
func SampleAppointment(email string, now time.Time) domain.Appointment {
	return domain.Appointment{
		Name:            "Test Client",
		Email:           email,
		Phone:           "123-456-7890",
		Service:         domain.ServiceTaxConsultation,
		AppointmentType: domain.TypeVirtual,
		Date:            domain.NormalizeDate(now.AddDate(0, 0, 2)),
		TimeSlot:        domain.TimeSlot{StartTime: "10:00:00", EndTime: "11:00:00"},
		Status:          domain.StatusScheduled,
		Notes:           "This is a test appointment",
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// Shutdown запрещает новые отправки и ждет завершения уже запущенных
func (s *Service) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.pending.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("%w: %v", ErrShutdownTimeout, ctx.Err())
	}
}
