package get_availability

import (
	"context"
	"fmt"
	"strings"

	"github.com/m04kA/FWL-BookingService/internal/domain"
)

// UseCase use case для получения свободных слотов на дату
type UseCase struct {
	availabilityRepo AvailabilityRepository
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(availabilityRepo AvailabilityRepository, logger Logger) *UseCase {
	return &UseCase{
		availabilityRepo: availabilityRepo,
		logger:           logger,
	}
}

// Execute выполняет use case получения свободных слотов
// Отсутствие записи доступности на дату (например, выходной) дает пустой список, а не ошибку
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация даты
	if req == nil || strings.TrimSpace(req.Date) == "" {
		return nil, ErrMissingDate
	}

	date, err := domain.ParseDate(req.Date)
	if err != nil {
		uc.logger.Warn("GetAvailability: invalid date %q", req.Date)
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, req.Date)
	}

	// 2. Запись доступности хранится на полночь календарного дня
	day := domain.NormalizeDate(date)

	// 3. Получаем свободные слоты
	slots, err := uc.availabilityRepo.ListBookableSlots(ctx, day)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to list slots for %s: %v", domain.FormatDate(day), err)
		return nil, fmt.Errorf("%w: failed to list slots: %v", ErrInternal, err)
	}

	result := make([]domain.TimeSlot, 0, len(slots))
	for i := range slots {
		result = append(result, slots[i].TimeSlot())
	}

	uc.logger.Info("GetAvailability: %d bookable slots on %s", len(result), domain.FormatDate(day))

	return &Response{
		Date:  day,
		Slots: result,
	}, nil
}
