package availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/FWL-BookingService/internal/domain"
	availabilityRepo "github.com/m04kA/FWL-BookingService/internal/infra/storage/availability"
	"github.com/m04kA/FWL-BookingService/internal/service/availability/models"
)

// Service сервис просмотра доступности для администратора
type Service struct {
	availabilityRepo AvailabilityRepository
	logger           Logger
}

// NewService создает новый экземпляр сервиса доступности
func NewService(availabilityRepo AvailabilityRepository, logger Logger) *Service {
	return &Service{
		availabilityRepo: availabilityRepo,
		logger:           logger,
	}
}

// GetDay возвращает полную запись дня со всеми слотами, включая заблокированные и занятые
func (s *Service) GetDay(ctx context.Context, date string) (*models.DayResponse, error) {
	day, err := domain.ParseDate(date)
	if err != nil {
		s.logger.Warn("GetDay: invalid date %q", date)
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}

	s.logger.Info("GetDay: fetching availability for %s", domain.FormatDate(day))

	record, err := s.availabilityRepo.GetDay(ctx, day)
	if err != nil {
		if errors.Is(err, availabilityRepo.ErrDayNotFound) {
			s.logger.Warn("GetDay: no availability for %s", domain.FormatDate(day))
			return nil, ErrDayNotFound
		}
		s.logger.Error("GetDay: repository error for %s: %v", domain.FormatDate(day), err)
		return nil, fmt.Errorf("%w: GetDay - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainAvailability(record), nil
}
