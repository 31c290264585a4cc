package appointments

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/FWL-BookingService/internal/domain"
	appointmentRepo "github.com/m04kA/FWL-BookingService/internal/infra/storage/appointment"
	"github.com/m04kA/FWL-BookingService/internal/service/appointments/models"
)

// Service сервис для административной работы с записями
type Service struct {
	appointmentRepo  AppointmentRepository
	availabilityRepo AvailabilityRepository
	txManager        TransactionManager
	releaseOnCancel  bool
	logger           Logger
}

// NewService создает новый экземпляр сервиса записей
// releaseOnCancel определяет, возвращает ли отмена через смену статуса место в слот
func NewService(
	appointmentRepo AppointmentRepository,
	availabilityRepo AvailabilityRepository,
	txManager TransactionManager,
	releaseOnCancel bool,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo:  appointmentRepo,
		availabilityRepo: availabilityRepo,
		txManager:        txManager,
		releaseOnCancel:  releaseOnCancel,
		logger:           logger,
	}
}

// GetByID получает запись по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d", id)

	appt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError("GetByID", id, err)
	}

	return models.FromDomainAppointment(appt), nil
}

// List получает страницу записей, отсортированных по дате и времени начала
func (s *Service) List(ctx context.Context, req *models.ListRequest) (*models.ListResponse, error) {
	page, limit := normalizePage(req.Page, req.Limit)

	filter := domain.AppointmentsFilter{
		Limit:  limit,
		Offset: (page - 1) * limit,
	}

	if req.Status != nil && strings.TrimSpace(*req.Status) != "" {
		status, err := models.ToDomainStatus(strings.TrimSpace(*req.Status))
		if err != nil {
			s.logger.Warn("List: invalid status filter %q", *req.Status)
			return nil, fmt.Errorf("%w: invalid status filter", ErrInvalidInput)
		}
		filter.Status = &status
	}

	if req.Date != nil && strings.TrimSpace(*req.Date) != "" {
		date, err := domain.ParseDate(*req.Date)
		if err != nil {
			s.logger.Warn("List: invalid date filter %q", *req.Date)
			return nil, fmt.Errorf("%w: invalid date filter", ErrInvalidInput)
		}
		filter.Date = &date
	}

	s.logger.Info("List: page=%d, limit=%d, status=%v, date=%v", page, limit, filter.Status, req.Date)

	appts, err := s.appointmentRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	total, err := s.appointmentRepo.Count(ctx, filter)
	if err != nil {
		s.logger.Error("List: count error: %v", err)
		return nil, fmt.Errorf("%w: List - count error: %v", ErrInternal, err)
	}

	return &models.ListResponse{
		Appointments: models.FromDomainAppointmentList(appts),
		TotalPages:   (total + limit - 1) / limit,
		CurrentPage:  page,
		Total:        total,
	}, nil
}

// UpdateStatus меняет статус записи
// Разрешены только переходы scheduled -> completed и scheduled -> cancelled
// Повторная установка текущего статуса ничего не меняет
func (s *Service) UpdateStatus(ctx context.Context, id int64, req *models.UpdateStatusRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("UpdateStatus: updating appointment id=%d to status=%s", id, req.Status)

	// 1. Валидируем статус
	newStatus, err := models.ToDomainStatus(strings.TrimSpace(req.Status))
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%q for appointment id=%d", req.Status, id)
		return nil, ErrInvalidStatus
	}

	// 2. Проверяем переход и обновляем запись в одной транзакции
	var result *domain.Appointment
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		appt, err := s.appointmentRepo.GetByID(txCtx, id)
		if err != nil {
			return s.mapRepoError("UpdateStatus", id, err)
		}

		if appt.Status == newStatus {
			result = appt
			return nil
		}

		if !appt.Status.CanTransitionTo(newStatus) {
			s.logger.Warn("UpdateStatus: transition %s -> %s is not allowed for appointment id=%d",
				appt.Status, newStatus, id)
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, appt.Status, newStatus)
		}

		// 2.1. При включенной опции отмена возвращает место в слот
		release := s.releaseOnCancel && newStatus == domain.StatusCancelled && appt.HoldsSlot()
		if release {
			if err := s.availabilityRepo.ReleaseSlot(txCtx, appt.Date, appt.TimeSlot); err != nil {
				s.logger.Error("UpdateStatus: failed to release slot for appointment id=%d: %v", id, err)
				return fmt.Errorf("%w: UpdateStatus - release slot: %v", ErrInternal, err)
			}
		}

		if err := s.appointmentRepo.UpdateStatus(txCtx, id, newStatus, appt.SlotReleased || release); err != nil {
			return s.mapRepoError("UpdateStatus", id, err)
		}

		updated, err := s.appointmentRepo.GetByID(txCtx, id)
		if err != nil {
			return s.mapRepoError("UpdateStatus", id, err)
		}
		result = updated
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("UpdateStatus: appointment id=%d has status=%s", id, result.Status)
	return models.FromDomainAppointment(result), nil
}

// Delete удаляет запись и возвращает место в слот, если запись его еще занимает
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting appointment id=%d", id)

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Получаем запись (строка блокируется до конца транзакции)
		appt, err := s.appointmentRepo.GetByID(txCtx, id)
		if err != nil {
			return s.mapRepoError("Delete", id, err)
		}

		// 2. Освобождаем место в слоте
		if appt.HoldsSlot() {
			if err := s.availabilityRepo.ReleaseSlot(txCtx, appt.Date, appt.TimeSlot); err != nil {
				s.logger.Error("Delete: failed to release slot for appointment id=%d: %v", id, err)
				return fmt.Errorf("%w: Delete - release slot: %v", ErrInternal, err)
			}
		}

		// 3. Удаляем запись
		if err := s.appointmentRepo.Delete(txCtx, id); err != nil {
			return s.mapRepoError("Delete", id, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("Delete: appointment id=%d deleted", id)
	return nil
}

// Вспомогательные методы

func (s *Service) mapRepoError(op string, id int64, err error) error {
	if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
		s.logger.Warn("%s: appointment id=%d not found", op, id)
		return ErrAppointmentNotFound
	}
	s.logger.Error("%s: repository error for appointment id=%d: %v", op, id, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}

// normalizePage применяет значения по умолчанию и ограничения пагинации
func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = domain.DefaultPage
	}
	if limit < 1 {
		limit = domain.DefaultPageSize
	}
	if limit > domain.MaxPageSize {
		limit = domain.MaxPageSize
	}
	return page, limit
}
