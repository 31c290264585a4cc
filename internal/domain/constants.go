package domain

// Field limits
const (
	MaxNameLength  = 100
	MaxNotesLength = 500
)

// Pagination defaults for appointment listings
const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Default availability policy
const (
	DefaultBusinessOpen        = "09:00:00"
	DefaultBusinessClose       = "17:00:00"
	DefaultBlockedStart        = "09:00:00"
	DefaultBlockedEnd          = "13:00:00"
	DefaultSlotDurationMinutes = 60
	DefaultSlotCapacity        = 1
	DefaultHorizonDays         = 365
)

// Date format constants
const (
	DateFormat        = "2006-01-02" // YYYY-MM-DD
	DisplayDateFormat = "Monday, January 2, 2006"
)
