package domain

import (
	"sort"
	"time"

	"github.com/m04kA/FWL-BookingService/pkg/types"
)

// BusinessHours bound slot generation for a day
type BusinessHours struct {
	Open  types.TimeString
	Close types.TimeString
}

// Availability is the per-date aggregate of slots
type Availability struct {
	Date          time.Time // Local midnight
	BusinessHours BusinessHours
	Slots         []Slot // Ordered by StartTime
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// FindSlot returns the slot with exactly the given bounds
func (a *Availability) FindSlot(ts TimeSlot) (*Slot, bool) {
	for i := range a.Slots {
		if a.Slots[i].Matches(ts) {
			return &a.Slots[i], true
		}
	}
	return nil, false
}

// BookableSlots returns available slots in ascending start time order
func (a *Availability) BookableSlots() []Slot {
	result := make([]Slot, 0, len(a.Slots))
	for _, s := range a.Slots {
		if s.Available() {
			result = append(result, s)
		}
	}
	SortSlots(result)
	return result
}

// SortSlots orders slots by start time
func SortSlots(slots []Slot) {
	sort.SliceStable(slots, func(i, j int) bool {
		return slots[i].StartTime.IsBefore(slots[j].StartTime)
	})
}

// AvailabilityPolicy describes how availability days are generated
type AvailabilityPolicy struct {
	BusinessHours       BusinessHours
	BlockedStart        types.TimeString // Empty means no blocked window
	BlockedEnd          types.TimeString
	SlotDurationMinutes int
	SlotCapacity        int
	HorizonDays         int
	SkipWeekends        bool
}

// HasBlockedWindow returns true if the policy defines a blocked window
func (p *AvailabilityPolicy) HasBlockedWindow() bool {
	return !p.BlockedStart.IsZero() && !p.BlockedEnd.IsZero()
}

// IsBlocked returns true if the interval lies entirely inside the blocked window
func (p *AvailabilityPolicy) IsBlocked(start, end types.TimeString) bool {
	if !p.HasBlockedWindow() {
		return false
	}
	return start.Compare(p.BlockedStart) >= 0 && end.Compare(p.BlockedEnd) <= 0
}

// IsWorkingDay returns true if a record should be generated for the date
func (p *AvailabilityPolicy) IsWorkingDay(date time.Time) bool {
	return !p.SkipWeekends || !IsWeekend(date)
}
