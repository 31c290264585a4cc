package initialize_availability

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/FWL-BookingService/internal/domain"
	"github.com/m04kA/FWL-BookingService/pkg/types"
)

// generateSlots генерирует слоты дня по политике
// Слоты идут от открытия с фиксированным шагом, пока конец следующего слота не выйдет за закрытие
// Слот целиком внутри заблокированного окна создается с флагом Blocked
func generateSlots(policy domain.AvailabilityPolicy) ([]domain.Slot, error) {
	open := policy.BusinessHours.Open
	closeTime := policy.BusinessHours.Close

	slots := make([]domain.Slot, 0)
	current := open

	for current.IsBefore(closeTime) {
		end, err := current.AddMinutes(policy.SlotDurationMinutes)
		if err != nil {
			// Слот пересекает полночь: дальше генерировать нечего
			if errors.Is(err, types.ErrTimeOverflow) {
				break
			}
			return nil, err
		}
		if end.IsAfter(closeTime) {
			break
		}

		slots = append(slots, domain.Slot{
			StartTime:   current,
			EndTime:     end,
			MaxCapacity: policy.SlotCapacity,
			BookedCount: 0,
			Blocked:     policy.IsBlocked(current, end),
		})
		current = end
	}

	return slots, nil
}

// buildDays строит записи доступности для всех рабочих дней горизонта
// Возвращает записи и число пропущенных нерабочих дней
func buildDays(policy domain.AvailabilityPolicy, from time.Time, days int) ([]*domain.Availability, int, error) {
	slots, err := generateSlots(policy)
	if err != nil {
		return nil, 0, err
	}

	start := domain.NormalizeDate(from)
	result := make([]*domain.Availability, 0, days)
	skipped := 0

	for i := 0; i < days; i++ {
		date := start.AddDate(0, 0, i)
		if !policy.IsWorkingDay(date) {
			skipped++
			continue
		}

		result = append(result, &domain.Availability{
			Date:          date,
			BusinessHours: policy.BusinessHours,
			Slots:         append([]domain.Slot(nil), slots...),
		})
	}

	return result, skipped, nil
}

// validatePolicy проверяет политику генерации
func validatePolicy(policy domain.AvailabilityPolicy) error {
	if err := policy.BusinessHours.Open.Validate(); err != nil {
		return fmt.Errorf("%w: business open: %v", ErrInvalidPolicy, err)
	}
	if err := policy.BusinessHours.Close.Validate(); err != nil {
		return fmt.Errorf("%w: business close: %v", ErrInvalidPolicy, err)
	}
	if !policy.BusinessHours.Open.IsBefore(policy.BusinessHours.Close) {
		return fmt.Errorf("%w: business hours must open before they close", ErrInvalidPolicy)
	}
	if policy.SlotDurationMinutes <= 0 {
		return fmt.Errorf("%w: slot duration must be positive", ErrInvalidPolicy)
	}
	if policy.SlotCapacity < 1 {
		return fmt.Errorf("%w: slot capacity must be at least 1", ErrInvalidPolicy)
	}
	if policy.HasBlockedWindow() && !policy.BlockedStart.IsBefore(policy.BlockedEnd) {
		return fmt.Errorf("%w: blocked window must start before it ends", ErrInvalidPolicy)
	}
	return nil
}

func countBlocked(slots []domain.Slot) int {
	n := 0
	for i := range slots {
		if slots[i].Blocked {
			n++
		}
	}
	return n
}
