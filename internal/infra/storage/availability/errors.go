package availability

import "errors"

var (
	// ErrDayNotFound возвращается, когда для даты нет записи доступности
	ErrDayNotFound = errors.New("availability.repository: day not found")

	// ErrSlotNotFound возвращается, когда в дне нет слота с такими границами
	ErrSlotNotFound = errors.New("availability.repository: slot not found")

	// ErrSlotNotAvailable возвращается, когда слот заблокирован или заполнен
	ErrSlotNotAvailable = errors.New("availability.repository: slot not available")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("availability.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("availability.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("availability.repository: failed to scan row")
)
