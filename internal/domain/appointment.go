package domain

import (
	"fmt"
	"time"
)

// AppointmentStatus represents the lifecycle state of an appointment
type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "scheduled"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// AppointmentStatuses lists every valid status
var AppointmentStatuses = []AppointmentStatus{
	StatusScheduled,
	StatusCompleted,
	StatusCancelled,
}

// IsValid returns true if the status is one of the known values
func (s AppointmentStatus) IsValid() bool {
	for _, known := range AppointmentStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// IsTerminal returns true if no transition out of the status exists
func (s AppointmentStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransitionTo returns true if moving to next is allowed.
// Only scheduled -> completed and scheduled -> cancelled exist.
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	return s == StatusScheduled && (next == StatusCompleted || next == StatusCancelled)
}

// AppointmentType is the meeting format
type AppointmentType string

const (
	TypeInPerson AppointmentType = "in-person"
	TypeVirtual  AppointmentType = "virtual"
)

// OfferedService is one of the services a client can book
type OfferedService string

const (
	ServiceTaxConsultation   OfferedService = "Tax Consultation"
	ServiceAccounting        OfferedService = "Accounting Services"
	ServiceFinancialPlanning OfferedService = "Financial Planning"
	ServiceBusinessAdvisory  OfferedService = "Business Advisory"
)

// OfferedServices lists every bookable service
var OfferedServices = []OfferedService{
	ServiceTaxConsultation,
	ServiceAccounting,
	ServiceFinancialPlanning,
	ServiceBusinessAdvisory,
}

// IsValid returns true if the service is offered
func (s OfferedService) IsValid() bool {
	for _, known := range OfferedServices {
		if s == known {
			return true
		}
	}
	return false
}

// Appointment represents a client's booking of one slot
type Appointment struct {
	ID              int64
	Name            string
	Email           string
	Phone           string
	Service         OfferedService
	AppointmentType AppointmentType
	Date            time.Time // Local midnight
	TimeSlot        TimeSlot
	Status          AppointmentStatus
	Notes           string

	// SlotReleased is set once the appointment's capacity has been returned
	SlotReleased bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// FormattedDate renders the date as "Monday, October 19, 2026"
func (a *Appointment) FormattedDate() string {
	return a.Date.Format(DisplayDateFormat)
}

// FormattedTime renders the slot as "09:00 - 10:00"
func (a *Appointment) FormattedTime() string {
	return fmt.Sprintf("%s - %s", a.TimeSlot.StartTime.Short(), a.TimeSlot.EndTime.Short())
}

// HoldsSlot returns true if the appointment still consumes slot capacity
func (a *Appointment) HoldsSlot() bool {
	return !a.SlotReleased
}

// AppointmentsFilter фильтр для списка записей
type AppointmentsFilter struct {
	Status *AppointmentStatus // Фильтр по статусу (опционально)
	Date   *time.Time         // Конкретный день (опционально)
	Limit  int
	Offset int
}
