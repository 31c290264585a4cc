package notification

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/FWL-BookingService/internal/domain"
	"github.com/m04kA/FWL-BookingService/pkg/logger"
	"github.com/m04kA/FWL-BookingService/pkg/metrics"
)

type fakeMailer struct {
	mu            sync.Mutex
	confirmations []domain.Appointment
	operator      []domain.Appointment
	confirmErr    error
	operatorErr   error
	block         chan struct{}
}

func (m *fakeMailer) SendConfirmation(ctx context.Context, appt domain.Appointment) error {
	if m.block != nil {
		select {
		case <-m.block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.confirmations = append(m.confirmations, appt)
	return m.confirmErr
}

func (m *fakeMailer) SendOperatorNotification(ctx context.Context, appt domain.Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.operator = append(m.operator, appt)
	return m.operatorErr
}

func (m *fakeMailer) counts() (int, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.confirmations), len(m.operator)
}

func appointment() domain.Appointment {
	return domain.Appointment{ID: 42, Name: "Jane", Email: "jane@example.com"}
}

func TestNotifyBooked_SendsBoth(t *testing.T) {
	mailer := &fakeMailer{}
	m := metrics.New("test")
	svc := NewService(mailer, m, time.Second, logger.Nop())

	svc.NotifyBooked(appointment())
	require.NoError(t, svc.Shutdown(context.Background()))

	confirmations, operator := mailer.counts()
	assert.Equal(t, 1, confirmations)
	assert.Equal(t, 1, operator)
	assert.Equal(t, int64(42), mailer.confirmations[0].ID)
}

func TestNotifyBooked_FailureDoesNotStopOtherEmail(t *testing.T) {
	mailer := &fakeMailer{confirmErr: errors.New("mailbox unavailable")}
	svc := NewService(mailer, nil, time.Second, logger.Nop())

	svc.NotifyBooked(appointment())
	require.NoError(t, svc.Shutdown(context.Background()))

	confirmations, operator := mailer.counts()
	assert.Equal(t, 1, confirmations)
	assert.Equal(t, 1, operator)
}

func TestNotifyBooked_DoesNotBlockCaller(t *testing.T) {
	mailer := &fakeMailer{block: make(chan struct{})}
	svc := NewService(mailer, nil, time.Second, logger.Nop())

	returned := make(chan struct{})
	go func() {
		svc.NotifyBooked(appointment())
		close(returned)
	}()

	select {
	case <-returned:
	case <-time.After(time.Second):
		t.Fatal("NotifyBooked blocked on delivery")
	}

	close(mailer.block)
	require.NoError(t, svc.Shutdown(context.Background()))
}

func TestNotifyBooked_Timeout(t *testing.T) {
	mailer := &fakeMailer{block: make(chan struct{})}
	defer close(mailer.block)
	svc := NewService(mailer, nil, 20*time.Millisecond, logger.Nop())

	svc.NotifyBooked(appointment())
	require.NoError(t, svc.Shutdown(context.Background()))

	confirmations, operator := mailer.counts()
	assert.Zero(t, confirmations)
	assert.Equal(t, 1, operator)
}

func TestShutdown_DeadlineAndRejectsNew(t *testing.T) {
	mailer := &fakeMailer{block: make(chan struct{})}
	svc := NewService(mailer, nil, 0, logger.Nop())

	svc.NotifyBooked(appointment())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, svc.Shutdown(ctx), ErrShutdownTimeout)

	// После остановки новые уведомления не запускаются
	svc.NotifyBooked(appointment())
	close(mailer.block)
	require.NoError(t, svc.Shutdown(context.Background()))

	confirmations, _ := mailer.counts()
	assert.Equal(t, 1, confirmations)
}

func TestSendTest(t *testing.T) {
	mailer := &fakeMailer{}
	svc := NewService(mailer, nil, time.Second, logger.Nop())
	now := time.Date(2026, time.October, 16, 9, 30, 0, 0, time.Local)

	require.NoError(t, svc.SendTest(context.Background(), " ops@example.com ", now))

	require.Len(t, mailer.confirmations, 1)
	appt := mailer.confirmations[0]
	assert.Equal(t, "ops@example.com", appt.Email)
	assert.Equal(t, "Test Client", appt.Name)
	assert.Equal(t, "2026-10-18", domain.FormatDate(appt.Date))
	assert.Equal(t, domain.TimeSlot{StartTime: "10:00:00", EndTime: "11:00:00"}, appt.TimeSlot)
	assert.Len(t, mailer.operator, 1)
}

func TestSendTest_ReturnsError(t *testing.T) {
	mailer := &fakeMailer{operatorErr: errors.New("relay denied")}
	svc := NewService(mailer, nil, time.Second, logger.Nop())

	err := svc.SendTest(context.Background(), "ops@example.com", time.Now())
	assert.ErrorContains(t, err, "relay denied")
}
