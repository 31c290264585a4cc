package create_appointment

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrMissingFields возвращается, когда не заполнено обязательное поле
	ErrMissingFields = errors.New("create_appointment: required fields are missing")

	// ErrInvalidEmail возвращается при некорректном email
	ErrInvalidEmail = errors.New("create_appointment: invalid email address")

	// ErrInvalidDate возвращается, когда дата не распознана или в прошлом
	ErrInvalidDate = errors.New("create_appointment: invalid appointment date")

	// ErrDayNotAvailable возвращается, когда на дату нет записи доступности
	ErrDayNotAvailable = errors.New("create_appointment: no availability for selected date")

	// ErrSlotNotFound возвращается, когда в дне нет выбранного слота
	ErrSlotNotFound = errors.New("create_appointment: slot not found")

	// ErrSlotNotAvailable возвращается, когда слот заблокирован, заполнен или занят конкурентным запросом
	ErrSlotNotAvailable = errors.New("create_appointment: slot is not available")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)

// ValidationError ошибка валидации с сообщением, которое можно показать клиенту
type ValidationError struct {
	Kind    error
	Message string
}

func (e *ValidationError) Error() string {
	return e.Kind.Error() + ": " + e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Kind
}
