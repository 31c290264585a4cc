package create_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/FWL-BookingService/internal/api/handlers"
	createAppointment "github.com/m04kA/FWL-BookingService/internal/usecase/create_appointment"
)

const (
	msgBooked             = "Appointment booked successfully"
	msgInvalidRequestBody = "Invalid request body"
	msgDayNotAvailable    = "No availability for selected date"
	msgSlotNotAvailable   = "Selected time slot is no longer available"
	msgFailed             = "Failed to book appointment"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		var validationErr *createAppointment.ValidationError

		switch {
		case errors.As(err, &validationErr):
			h.logger.Warn("POST /appointments - Validation failed: %v", err)
			handlers.RespondBadRequest(w, validationErr.Message)

		case errors.Is(err, createAppointment.ErrDayNotAvailable):
			h.logger.Warn("POST /appointments - No availability: date=%s", req.Date)
			handlers.RespondBadRequest(w, msgDayNotAvailable)

		case errors.Is(err, createAppointment.ErrSlotNotFound),
			errors.Is(err, createAppointment.ErrSlotNotAvailable):
			h.logger.Warn("POST /appointments - Slot not available: date=%s, error=%v", req.Date, err)
			handlers.RespondBadRequest(w, msgSlotNotAvailable)

		default:
			h.logger.Error("POST /appointments - Failed to book appointment: date=%s, error=%v", req.Date, err)
			handlers.RespondInternalError(w, msgFailed, err)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment created successfully: appointment_id=%d, date=%s",
		result.ID, req.Date)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
