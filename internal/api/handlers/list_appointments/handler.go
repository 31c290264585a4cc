package list_appointments

import (
	"errors"
	"net/http"

	"github.com/m04kA/FWL-BookingService/internal/api/handlers"
	"github.com/m04kA/FWL-BookingService/internal/service/appointments"
)

const (
	msgInvalidParams = "Invalid query parameters"
	msgFailed        = "Failed to fetch appointments"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/appointments
// Query params: page, limit, status, date (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req := ToServiceRequest(r.URL.Query())

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /appointments - Invalid parameters: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /appointments - Failed to list appointments: %v", err)
			handlers.RespondInternalError(w, msgFailed, err)
		}
		return
	}

	h.logger.Info("GET /appointments - Appointments retrieved: page=%d, count=%d, total=%d",
		result.CurrentPage, len(result.Appointments), result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
