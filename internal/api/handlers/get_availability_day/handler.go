package get_availability_day

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/FWL-BookingService/internal/api/handlers"
	"github.com/m04kA/FWL-BookingService/internal/service/availability"
)

const (
	msgInvalidDate = "Please provide a valid date"
	msgNotFound    = "No availability for selected date"
	msgFailed      = "Failed to fetch availability"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability/{date}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	date := mux.Vars(r)["date"]

	day, err := h.service.GetDay(r.Context(), date)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrInvalidDate):
			h.logger.Warn("GET /availability/{date} - Invalid date: %q", date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, availability.ErrDayNotFound):
			h.logger.Warn("GET /availability/{date} - No availability: date=%s", date)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /availability/{date} - Failed to fetch availability: date=%s, error=%v", date, err)
			handlers.RespondInternalError(w, msgFailed, err)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, day)
}
