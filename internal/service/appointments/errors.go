package appointments

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("appointments: appointment not found")

	// ErrInvalidStatus возвращается при попытке установить неизвестный статус
	ErrInvalidStatus = errors.New("appointments: invalid status value")

	// ErrInvalidTransition возвращается, когда переход между статусами запрещен
	ErrInvalidTransition = errors.New("appointments: status transition is not allowed")

	// ErrInvalidInput возвращается при некорректных параметрах запроса
	ErrInvalidInput = errors.New("appointments: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("appointments: internal error")
)
