package initialize_availability

import "time"

// Request модель запроса на генерацию доступности
type Request struct {
	From time.Time // Первый день горизонта (время суток игнорируется)
	Days int       // Длина горизонта в календарных днях
}

// Response модель результата генерации
type Response struct {
	Deleted       int64     // Удалено старых записей
	Created       int       // Создано новых записей
	SkippedDays   int       // Пропущено нерабочих дней
	SlotsPerDay   int       // Слотов в каждом дне
	BlockedPerDay int       // Из них заблокировано политикой
	FirstDay      time.Time // Первый созданный день (нулевой, если не создано ни одного)
	LastDay       time.Time // Последний созданный день
}
