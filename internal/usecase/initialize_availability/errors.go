package initialize_availability

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных параметрах генерации
	ErrInvalidInput = errors.New("initialize_availability: invalid input data")

	// ErrInvalidPolicy возвращается при некорректной политике генерации слотов
	ErrInvalidPolicy = errors.New("initialize_availability: invalid availability policy")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("initialize_availability: internal error")
)
