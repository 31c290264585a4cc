package availability

import "errors"

var (
	// ErrDayNotFound возвращается, когда на дату нет записи доступности
	ErrDayNotFound = errors.New("availability: no availability record for date")

	// ErrInvalidDate возвращается, когда дату не удалось распознать
	ErrInvalidDate = errors.New("availability: invalid date")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("availability: internal error")
)
