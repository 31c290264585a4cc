package create_appointment

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/FWL-BookingService/internal/domain"
	"github.com/m04kA/FWL-BookingService/pkg/types"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var validate = newValidator()

// input нормализованные поля запроса для проверки тегами validator
type input struct {
	Name            string `json:"name" validate:"required,max=100"`
	Email           string `json:"email" validate:"required,appt_email"`
	Phone           string `json:"phone" validate:"required,max=50"`
	Service         string `json:"service" validate:"required,offered_service"`
	AppointmentType string `json:"appointmentType" validate:"required,oneof=in-person virtual"`
	Date            string `json:"date" validate:"required"`
	StartTime       string `json:"startTime" validate:"required,timeofday"`
	EndTime         string `json:"endTime" validate:"required,timeofday"`
	Notes           string `json:"notes" validate:"max=500"`
}

// fieldMessages тексты ошибок для клиента по полю и тегу
var fieldMessages = map[string]string{
	"name.max":                "Name cannot be more than 100 characters",
	"phone.max":               "Phone number cannot be more than 50 characters",
	"service.offered_service": "Service is not supported",
	"appointmentType.oneof":   "Appointment type is not supported",
	"startTime.timeofday":     "Please provide a valid time format",
	"endTime.timeofday":       "Please provide a valid time format",
	"notes.max":               "Notes cannot be more than 500 characters",
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	mustRegister(v, "appt_email", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	mustRegister(v, "timeofday", func(fl validator.FieldLevel) bool {
		return types.TimeString(fl.Field().String()).Validate() == nil
	})
	mustRegister(v, "offered_service", func(fl validator.FieldLevel) bool {
		return domain.OfferedService(fl.Field().String()).IsValid()
	})

	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

// normalize обрезает пробелы и приводит email к нижнему регистру
func normalize(req *Request) input {
	in := input{
		Name:            strings.TrimSpace(req.Name),
		Email:           strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:           strings.TrimSpace(req.Phone),
		Service:         strings.TrimSpace(req.Service),
		AppointmentType: strings.TrimSpace(req.AppointmentType),
		Date:            strings.TrimSpace(req.Date),
		Notes:           strings.TrimSpace(req.Notes),
	}
	if req.TimeSlot != nil {
		in.StartTime = strings.TrimSpace(req.TimeSlot.StartTime)
		in.EndTime = strings.TrimSpace(req.TimeSlot.EndTime)
	}
	return in
}

// validateRequest валидирует запрос и собирает из него запись со статусом scheduled
func validateRequest(req *Request, now time.Time) (*domain.Appointment, error) {
	if req == nil {
		return nil, &ValidationError{Kind: ErrMissingFields, Message: "All fields are required"}
	}

	in := normalize(req)

	if err := validate.Struct(in); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
		return nil, toValidationError(fieldErrs)
	}

	date, err := domain.ParseDate(in.Date)
	if err != nil {
		return nil, &ValidationError{Kind: ErrInvalidDate, Message: "Please provide a valid date"}
	}

	// Дата должна быть сегодня или позже (сравнение по локальной полуночи)
	if date.Before(domain.NormalizeDate(now)) {
		return nil, &ValidationError{Kind: ErrInvalidDate, Message: "Appointment date must be in the future"}
	}

	start := types.MustTimeString(in.StartTime)
	end := types.MustTimeString(in.EndTime)
	if !start.IsBefore(end) {
		return nil, &ValidationError{Kind: ErrInvalidInput, Message: "End time must be after start time"}
	}

	return &domain.Appointment{
		Name:            in.Name,
		Email:           in.Email,
		Phone:           in.Phone,
		Service:         domain.OfferedService(in.Service),
		AppointmentType: domain.AppointmentType(in.AppointmentType),
		Date:            date,
		TimeSlot:        domain.TimeSlot{StartTime: start, EndTime: end},
		Status:          domain.StatusScheduled,
		Notes:           in.Notes,
	}, nil
}

// toValidationError переводит первую ошибку validator в сообщение для клиента
// Отсутствие любого обязательного поля дает одно общее сообщение
func toValidationError(errs validator.ValidationErrors) *ValidationError {
	for _, fe := range errs {
		if fe.Tag() == "required" {
			return &ValidationError{Kind: ErrMissingFields, Message: "All fields are required"}
		}
	}

	fe := errs[0]
	if fe.Tag() == "appt_email" {
		return &ValidationError{Kind: ErrInvalidEmail, Message: "Please provide a valid email address"}
	}

	if msg, ok := fieldMessages[fe.Field()+"."+fe.Tag()]; ok {
		return &ValidationError{Kind: ErrInvalidInput, Message: msg}
	}
	return &ValidationError{Kind: ErrInvalidInput, Message: fmt.Sprintf("Invalid value for %s", fe.Field())}
}
