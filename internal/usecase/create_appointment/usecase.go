package create_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/FWL-BookingService/internal/domain"
	availabilityRepo "github.com/m04kA/FWL-BookingService/internal/infra/storage/availability"
	"github.com/m04kA/FWL-BookingService/pkg/metrics"
	"github.com/m04kA/FWL-BookingService/pkg/txmanager"
)

// UseCase use case для создания записи на консультацию
type UseCase struct {
	availabilityRepo AvailabilityRepository
	appointmentRepo  AppointmentRepository
	txManager        TransactionManager
	notifier         Notifier
	metrics          BookingMetrics
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	availabilityRepo AvailabilityRepository,
	appointmentRepo AppointmentRepository,
	txManager TransactionManager,
	notifier Notifier,
	bookingMetrics BookingMetrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		availabilityRepo: availabilityRepo,
		appointmentRepo:  appointmentRepo,
		txManager:        txManager,
		notifier:         notifier,
		metrics:          bookingMetrics,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// WithTimeProvider подменяет источник текущего времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case создания записи
// Резервирование слота и сохранение записи выполняются в одной сериализуемой транзакции:
// либо есть и запись, и занятое место, либо нет ни того, ни другого
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация и нормализация входных данных
	appt, err := validateRequest(req, uc.timeProvider.Now())
	if err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		uc.observe(metrics.BookingInvalid)
		return nil, err
	}

	uc.logger.Info("CreateAppointment: email=%s, service=%s, date=%s, slot=%s-%s",
		appt.Email, appt.Service, domain.FormatDate(appt.Date), appt.TimeSlot.StartTime, appt.TimeSlot.EndTime)

	// 2. Резервируем слот и сохраняем запись в одной транзакции
	var created *domain.Appointment
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Получаем день (строка дня блокируется до конца транзакции)
		if _, err := uc.availabilityRepo.GetDay(txCtx, appt.Date); err != nil {
			if errors.Is(err, availabilityRepo.ErrDayNotFound) {
				return ErrDayNotAvailable
			}
			if txmanager.IsSerializationFailure(err) {
				return err
			}
			return fmt.Errorf("%w: failed to get availability: %v", ErrInternal, err)
		}

		// 2.2. Занимаем место в слоте (условный UPDATE)
		if _, err := uc.availabilityRepo.ReserveSlot(txCtx, appt.Date, appt.TimeSlot); err != nil {
			switch {
			case errors.Is(err, availabilityRepo.ErrSlotNotFound):
				return ErrSlotNotFound
			case errors.Is(err, availabilityRepo.ErrSlotNotAvailable):
				return ErrSlotNotAvailable
			case txmanager.IsSerializationFailure(err):
				// Отдаем менеджеру транзакций для повтора
				return err
			default:
				return fmt.Errorf("%w: failed to reserve slot: %v", ErrInternal, err)
			}
		}

		// 2.3. Сохраняем запись
		result, err := uc.appointmentRepo.Create(txCtx, appt)
		if err != nil {
			if txmanager.IsSerializationFailure(err) {
				return err
			}
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		created = result
		return nil
	})

	if err != nil {
		return nil, uc.handleTxError(appt, err)
	}

	uc.logger.Info("CreateAppointment: created appointment id=%d for %s %s",
		created.ID, domain.FormatDate(created.Date), created.FormattedTime())
	uc.observe(metrics.BookingCreated)

	// 3. Уведомления отправляются после коммита и не влияют на результат
	uc.notifier.NotifyBooked(*created)

	return newResponse(created), nil
}

// handleTxError классифицирует ошибку транзакции
func (uc *UseCase) handleTxError(appt *domain.Appointment, err error) error {
	switch {
	case errors.Is(err, ErrDayNotAvailable):
		uc.logger.Warn("CreateAppointment: no availability for %s", domain.FormatDate(appt.Date))
		uc.observe(metrics.BookingSlotUnavailable)
		return err

	case errors.Is(err, ErrSlotNotFound), errors.Is(err, ErrSlotNotAvailable):
		uc.logger.Warn("CreateAppointment: slot %s-%s on %s is not available: %v",
			appt.TimeSlot.StartTime, appt.TimeSlot.EndTime, domain.FormatDate(appt.Date), err)
		uc.observe(metrics.BookingSlotUnavailable)
		return err

	case errors.Is(err, txmanager.ErrSerializationFailure):
		// Конкурентные брони не разрешились за отведенные повторы: считаем слот занятым
		uc.logger.Warn("CreateAppointment: serialization conflict on %s %s-%s: %v",
			domain.FormatDate(appt.Date), appt.TimeSlot.StartTime, appt.TimeSlot.EndTime, err)
		uc.observe(metrics.BookingSlotUnavailable)
		return fmt.Errorf("%w: %v", ErrSlotNotAvailable, err)

	default:
		uc.logger.Error("CreateAppointment: failed: %v", err)
		uc.observe(metrics.BookingFailed)
		if errors.Is(err, ErrInternal) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}

func (uc *UseCase) observe(outcome string) {
	if uc.metrics != nil {
		uc.metrics.ObserveBooking(outcome)
	}
}
