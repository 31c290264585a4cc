package domain

import "github.com/m04kA/FWL-BookingService/pkg/types"

// TimeSlot identifies a slot within a day by value
type TimeSlot struct {
	StartTime types.TimeString
	EndTime   types.TimeString
}

// Slot represents a fixed-width interval of an availability day
type Slot struct {
	StartTime   types.TimeString
	EndTime     types.TimeString
	MaxCapacity int
	BookedCount int
	Blocked     bool // Policy-level block, independent of bookings
}

// Available returns true if the slot can accept one more booking
func (s *Slot) Available() bool {
	return !s.Blocked && s.BookedCount < s.MaxCapacity
}

// RemainingCapacity returns how many bookings the slot can still accept
func (s *Slot) RemainingCapacity() int {
	if s.Blocked || s.BookedCount >= s.MaxCapacity {
		return 0
	}
	return s.MaxCapacity - s.BookedCount
}

// Matches returns true if the slot has exactly the given bounds
func (s *Slot) Matches(ts TimeSlot) bool {
	return s.StartTime == ts.StartTime && s.EndTime == ts.EndTime
}

// TimeSlot returns the slot bounds
func (s *Slot) TimeSlot() TimeSlot {
	return TimeSlot{StartTime: s.StartTime, EndTime: s.EndTime}
}

// Reserve increments the booked count if the slot is available
func (s *Slot) Reserve() bool {
	if !s.Available() {
		return false
	}
	s.BookedCount++
	return true
}

// Release decrements the booked count, never going below zero
func (s *Slot) Release() {
	if s.BookedCount > 0 {
		s.BookedCount--
	}
}
