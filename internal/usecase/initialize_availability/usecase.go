package initialize_availability

import (
	"context"
	"fmt"

	"github.com/m04kA/FWL-BookingService/internal/domain"
)

// UseCase use case для генерации доступности на горизонт дней
type UseCase struct {
	availabilityRepo AvailabilityRepository
	txManager        TransactionManager
	policy           domain.AvailabilityPolicy
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	availabilityRepo AvailabilityRepository,
	txManager TransactionManager,
	policy domain.AvailabilityPolicy,
	logger Logger,
) *UseCase {
	return &UseCase{
		availabilityRepo: availabilityRepo,
		txManager:        txManager,
		policy:           policy,
		logger:           logger,
	}
}

// Execute выполняет полный сброс доступности: все существующие записи удаляются,
// затем для каждого рабочего дня горизонта создается новая запись
// Удаление и создание выполняются в одной транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if req == nil || req.From.IsZero() {
		return nil, fmt.Errorf("%w: start date is required", ErrInvalidInput)
	}

	days := req.Days
	if days == 0 {
		days = uc.policy.HorizonDays
	}
	if days <= 0 {
		return nil, fmt.Errorf("%w: days must be positive", ErrInvalidInput)
	}

	if err := validatePolicy(uc.policy); err != nil {
		uc.logger.Error("InitializeAvailability: %v", err)
		return nil, err
	}

	// 2. Строим записи заранее, чтобы ошибка генерации не оставила пустое хранилище
	records, skipped, err := buildDays(uc.policy, req.From, days)
	if err != nil {
		uc.logger.Error("InitializeAvailability: failed to generate slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
	}

	uc.logger.Info("InitializeAvailability: from=%s, days=%d, working days=%d, skipped=%d",
		domain.FormatDate(req.From), days, len(records), skipped)

	// 3. Удаляем старые записи и создаем новые в одной транзакции
	var deleted int64
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		n, err := uc.availabilityRepo.DeleteAll(txCtx)
		if err != nil {
			return fmt.Errorf("%w: failed to delete availability: %v", ErrInternal, err)
		}
		deleted = n

		for _, day := range records {
			if err := uc.availabilityRepo.CreateDay(txCtx, day); err != nil {
				return fmt.Errorf("%w: failed to create day %s: %v", ErrInternal, domain.FormatDate(day.Date), err)
			}
		}
		return nil
	})
	if err != nil {
		uc.logger.Error("InitializeAvailability: %v", err)
		return nil, err
	}

	resp := &Response{
		Deleted:     deleted,
		Created:     len(records),
		SkippedDays: skipped,
	}
	if len(records) > 0 {
		resp.SlotsPerDay = len(records[0].Slots)
		resp.BlockedPerDay = countBlocked(records[0].Slots)
		resp.FirstDay = records[0].Date
		resp.LastDay = records[len(records)-1].Date
	}

	uc.logger.Info("InitializeAvailability: deleted %d records, created %d records with %d slots each",
		resp.Deleted, resp.Created, resp.SlotsPerDay)

	return resp, nil
}
