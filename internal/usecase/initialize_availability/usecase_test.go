package initialize_availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/FWL-BookingService/internal/domain"
	"github.com/m04kA/FWL-BookingService/internal/infra/storage/memory"
	"github.com/m04kA/FWL-BookingService/pkg/logger"
	"github.com/m04kA/FWL-BookingService/pkg/types"
)

var (
	friday = time.Date(2026, time.October, 16, 0, 0, 0, 0, time.Local)
	monday = time.Date(2026, time.October, 19, 0, 0, 0, 0, time.Local)
)

func defaultPolicy() domain.AvailabilityPolicy {
	return domain.AvailabilityPolicy{
		BusinessHours:       domain.BusinessHours{Open: "09:00:00", Close: "17:00:00"},
		BlockedStart:        "09:00:00",
		BlockedEnd:          "13:00:00",
		SlotDurationMinutes: 60,
		SlotCapacity:        1,
		HorizonDays:         365,
		SkipWeekends:        true,
	}
}

func TestGenerateSlots_DefaultPolicy(t *testing.T) {
	slots, err := generateSlots(defaultPolicy())
	require.NoError(t, err)
	require.Len(t, slots, 8)

	for i, s := range slots {
		start := types.MustTimeString(time.Date(0, 1, 1, 9+i, 0, 0, 0, time.UTC).Format("15:04:05"))
		assert.Equal(t, start, s.StartTime)
		assert.Equal(t, 1, s.MaxCapacity)
		assert.Zero(t, s.BookedCount)
		assert.Equal(t, i < 4, s.Blocked, "slot %s", s.StartTime)
		assert.Equal(t, i >= 4, s.Available(), "slot %s", s.StartTime)
	}
	assert.Equal(t, types.TimeString("16:00:00"), slots[7].StartTime)
	assert.Equal(t, types.TimeString("17:00:00"), slots[7].EndTime)
}

func TestGenerateSlots_StopsBeforeClose(t *testing.T) {
	policy := defaultPolicy()
	policy.SlotDurationMinutes = 90
	policy.BlockedStart, policy.BlockedEnd = "", ""

	slots, err := generateSlots(policy)
	require.NoError(t, err)

	// 09:00, 10:30, 12:00, 13:30, 15:00; 16:30-18:00 выходит за закрытие
	require.Len(t, slots, 5)
	assert.Equal(t, types.TimeString("15:00:00"), slots[4].StartTime)
	assert.Equal(t, types.TimeString("16:30:00"), slots[4].EndTime)
	for _, s := range slots {
		assert.False(t, s.Blocked)
	}
}

func TestGenerateSlots_PartialOverlapIsNotBlocked(t *testing.T) {
	policy := defaultPolicy()
	policy.BlockedStart, policy.BlockedEnd = "09:30:00", "11:00:00"

	slots, err := generateSlots(policy)
	require.NoError(t, err)

	assert.False(t, slots[0].Blocked) // 09:00-10:00 выходит за начало окна
	assert.True(t, slots[1].Blocked)  // 10:00-11:00 целиком внутри
	assert.False(t, slots[2].Blocked)
}

func TestGenerateSlots_Deterministic(t *testing.T) {
	a, err := generateSlots(defaultPolicy())
	require.NoError(t, err)
	b, err := generateSlots(defaultPolicy())
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestExecute_SkipsWeekendsAndResets(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	// Старая запись с бронью должна быть удалена
	require.NoError(t, store.Availability().CreateDay(ctx, &domain.Availability{
		Date:  monday,
		Slots: []domain.Slot{{StartTime: "13:00:00", EndTime: "14:00:00", MaxCapacity: 1, BookedCount: 1}},
	}))

	uc := NewUseCase(store.Availability(), store.TxManager(), defaultPolicy(), logger.Nop())

	resp, err := uc.Execute(ctx, &Request{From: friday.Add(15 * time.Hour), Days: 4})
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.Deleted)
	assert.Equal(t, 2, resp.Created)
	assert.Equal(t, 2, resp.SkippedDays)
	assert.Equal(t, 8, resp.SlotsPerDay)
	assert.Equal(t, 4, resp.BlockedPerDay)
	assert.True(t, friday.Equal(resp.FirstDay))
	assert.True(t, monday.Equal(resp.LastDay))

	_, err = store.Availability().GetDay(ctx, friday.AddDate(0, 0, 1))
	assert.Error(t, err, "saturday must not have a record")

	day, err := store.Availability().GetDay(ctx, monday)
	require.NoError(t, err)
	require.Len(t, day.Slots, 8)
	for _, s := range day.Slots {
		assert.Zero(t, s.BookedCount)
	}

	bookable, err := store.Availability().ListBookableSlots(ctx, monday)
	require.NoError(t, err)
	require.Len(t, bookable, 4)
	assert.Equal(t, types.TimeString("13:00:00"), bookable[0].StartTime)
}

func TestExecute_RerunProducesIdenticalSlots(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	uc := NewUseCase(store.Availability(), store.TxManager(), defaultPolicy(), logger.Nop())

	_, err := uc.Execute(ctx, &Request{From: monday, Days: 1})
	require.NoError(t, err)
	first, err := store.Availability().GetDay(ctx, monday)
	require.NoError(t, err)

	resp, err := uc.Execute(ctx, &Request{From: monday, Days: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Deleted)

	second, err := store.Availability().GetDay(ctx, monday)
	require.NoError(t, err)
	assert.Equal(t, first.Slots, second.Slots)
}

func TestExecute_DefaultsToHorizon(t *testing.T) {
	store := memory.NewStore()
	policy := defaultPolicy()
	policy.HorizonDays = 14
	uc := NewUseCase(store.Availability(), store.TxManager(), policy, logger.Nop())

	resp, err := uc.Execute(context.Background(), &Request{From: monday})
	require.NoError(t, err)
	assert.Equal(t, 10, resp.Created)
	assert.Equal(t, 4, resp.SkippedDays)
}

func TestExecute_InvalidInput(t *testing.T) {
	store := memory.NewStore()
	uc := NewUseCase(store.Availability(), store.TxManager(), defaultPolicy(), logger.Nop())

	_, err := uc.Execute(context.Background(), &Request{})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{From: monday, Days: -1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_InvalidPolicyKeepsExistingData(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *domain.AvailabilityPolicy)
	}{
		{name: "zero duration", mutate: func(p *domain.AvailabilityPolicy) { p.SlotDurationMinutes = 0 }},
		{name: "zero capacity", mutate: func(p *domain.AvailabilityPolicy) { p.SlotCapacity = 0 }},
		{name: "inverted hours", mutate: func(p *domain.AvailabilityPolicy) { p.BusinessHours.Close = "08:00:00" }},
		{name: "inverted blocked window", mutate: func(p *domain.AvailabilityPolicy) { p.BlockedEnd = "08:00:00" }},
		{name: "malformed open", mutate: func(p *domain.AvailabilityPolicy) { p.BusinessHours.Open = "9am" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memory.NewStore()
			ctx := context.Background()
			require.NoError(t, store.Availability().CreateDay(ctx, &domain.Availability{Date: monday}))

			policy := defaultPolicy()
			tt.mutate(&policy)
			uc := NewUseCase(store.Availability(), store.TxManager(), policy, logger.Nop())

			_, err := uc.Execute(ctx, &Request{From: monday, Days: 5})
			assert.ErrorIs(t, err, ErrInvalidPolicy)

			_, err = store.Availability().GetDay(ctx, monday)
			assert.NoError(t, err)
		})
	}
}
