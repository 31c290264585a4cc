package models

import (
	"time"

	"github.com/m04kA/FWL-BookingService/internal/domain"
)

// BusinessHoursResponse часы работы дня
type BusinessHoursResponse struct {
	Open  string `json:"open"`
	Close string `json:"close"`
}

// SlotResponse слот со счетчиками
type SlotResponse struct {
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	MaxCapacity int    `json:"maxCapacity"`
	BookedCount int    `json:"bookedCount"`
	Available   bool   `json:"available"` // Вычисляется: не заблокирован и есть свободные места
	Blocked     bool   `json:"blocked"`
}

// DayResponse полная запись доступности за день
type DayResponse struct {
	Date          string                `json:"date"` // "2026-10-19"
	BusinessHours BusinessHoursResponse `json:"businessHours"`
	Slots         []SlotResponse        `json:"slots"`
	CreatedAt     time.Time             `json:"createdAt"`
	UpdatedAt     time.Time             `json:"updatedAt"`
}

// FromDomainAvailability конвертирует domain модель в DTO
func FromDomainAvailability(a *domain.Availability) *DayResponse {
	if a == nil {
		return nil
	}

	slots := make([]SlotResponse, 0, len(a.Slots))
	for i := range a.Slots {
		s := &a.Slots[i]
		slots = append(slots, SlotResponse{
			StartTime:   s.StartTime.String(),
			EndTime:     s.EndTime.String(),
			MaxCapacity: s.MaxCapacity,
			BookedCount: s.BookedCount,
			Available:   s.Available(),
			Blocked:     s.Blocked,
		})
	}

	return &DayResponse{
		Date: domain.FormatDate(a.Date),
		BusinessHours: BusinessHoursResponse{
			Open:  a.BusinessHours.Open.String(),
			Close: a.BusinessHours.Close.String(),
		},
		Slots:     slots,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}
