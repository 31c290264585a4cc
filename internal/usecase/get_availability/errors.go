package get_availability

import "errors"

var (
	// ErrMissingDate возвращается, когда дата не передана
	ErrMissingDate = errors.New("get_availability: date is required")

	// ErrInvalidDate возвращается, когда дату не удалось распознать
	ErrInvalidDate = errors.New("get_availability: invalid date")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_availability: internal error")
)
