package get_availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/FWL-BookingService/internal/domain"
	"github.com/m04kA/FWL-BookingService/internal/infra/storage/memory"
	"github.com/m04kA/FWL-BookingService/pkg/logger"
)

var monday = time.Date(2026, time.October, 19, 0, 0, 0, 0, time.Local)

func seed(t *testing.T) *memory.Store {
	t.Helper()
	store := memory.NewStore()
	require.NoError(t, store.Availability().CreateDay(context.Background(), &domain.Availability{
		Date:          monday,
		BusinessHours: domain.BusinessHours{Open: "09:00:00", Close: "17:00:00"},
		Slots: []domain.Slot{
			{StartTime: "15:00:00", EndTime: "16:00:00", MaxCapacity: 1},
			{StartTime: "09:00:00", EndTime: "10:00:00", MaxCapacity: 1, Blocked: true},
			{StartTime: "13:00:00", EndTime: "14:00:00", MaxCapacity: 1, BookedCount: 1},
			{StartTime: "14:00:00", EndTime: "15:00:00", MaxCapacity: 2, BookedCount: 1},
		},
	}))
	return store
}

func TestExecute_ReturnsBookableSlotsSorted(t *testing.T) {
	uc := NewUseCase(seed(t).Availability(), logger.Nop())

	resp, err := uc.Execute(context.Background(), &Request{Date: "2026-10-19"})
	require.NoError(t, err)

	assert.True(t, monday.Equal(resp.Date))
	assert.Equal(t, []domain.TimeSlot{
		{StartTime: "14:00:00", EndTime: "15:00:00"},
		{StartTime: "15:00:00", EndTime: "16:00:00"},
	}, resp.Slots)
}

func TestExecute_IgnoresTimeOfDay(t *testing.T) {
	uc := NewUseCase(seed(t).Availability(), logger.Nop())

	local := time.Date(2026, time.October, 19, 18, 30, 0, 0, time.Local).Format(time.RFC3339)
	resp, err := uc.Execute(context.Background(), &Request{Date: local})
	require.NoError(t, err)
	assert.Len(t, resp.Slots, 2)
}

func TestExecute_WeekendReturnsEmpty(t *testing.T) {
	uc := NewUseCase(seed(t).Availability(), logger.Nop())

	resp, err := uc.Execute(context.Background(), &Request{Date: "2026-10-17"})
	require.NoError(t, err)
	require.NotNil(t, resp.Slots)
	assert.Empty(t, resp.Slots)
}

func TestExecute_DateErrors(t *testing.T) {
	uc := NewUseCase(seed(t).Availability(), logger.Nop())

	_, err := uc.Execute(context.Background(), &Request{Date: " "})
	assert.ErrorIs(t, err, ErrMissingDate)

	_, err = uc.Execute(context.Background(), nil)
	assert.ErrorIs(t, err, ErrMissingDate)

	_, err = uc.Execute(context.Background(), &Request{Date: "19/10/2026"})
	assert.ErrorIs(t, err, ErrInvalidDate)
}

type recordingRepo struct {
	dates []time.Time
}

func (r *recordingRepo) ListBookableSlots(ctx context.Context, date time.Time) ([]domain.Slot, error) {
	r.dates = append(r.dates, date)
	return nil, nil
}

func TestExecute_QueriesCalendarDayMidnight(t *testing.T) {
	repo := &recordingRepo{}
	uc := NewUseCase(repo, logger.Nop())

	inputs := []string{
		"2026-10-19",
		time.Date(2026, time.October, 19, 23, 59, 59, 0, time.Local).Format(time.RFC3339),
		time.Date(2026, time.October, 19, 12, 15, 0, 0, time.Local).Format(time.RFC3339Nano),
	}
	for _, in := range inputs {
		resp, err := uc.Execute(context.Background(), &Request{Date: in})
		require.NoError(t, err, in)
		assert.True(t, monday.Equal(resp.Date), in)
	}

	require.Len(t, repo.dates, len(inputs))
	for _, d := range repo.dates {
		assert.True(t, monday.Equal(d), "got %s", d)
	}
}

type brokenRepo struct{}

func (brokenRepo) ListBookableSlots(ctx context.Context, date time.Time) ([]domain.Slot, error) {
	return nil, errors.New("connection refused")
}

func TestExecute_RepositoryError(t *testing.T) {
	uc := NewUseCase(brokenRepo{}, logger.Nop())

	_, err := uc.Execute(context.Background(), &Request{Date: "2026-10-19"})
	assert.ErrorIs(t, err, ErrInternal)
}
