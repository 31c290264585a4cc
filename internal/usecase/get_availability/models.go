package get_availability

import (
	"time"

	"github.com/m04kA/FWL-BookingService/internal/domain"
)

// Request модель запроса свободных слотов
type Request struct {
	Date string // "2026-10-19" или RFC 3339, время суток игнорируется
}

// Response модель ответа со свободными слотами
type Response struct {
	Date  time.Time         // Локальная полночь запрошенного дня
	Slots []domain.TimeSlot // Только слоты, которые можно забронировать. Никогда не nil
}
