package get_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/FWL-BookingService/internal/api/handlers"
	getAvailability "github.com/m04kA/FWL-BookingService/internal/usecase/get_availability"
)

const (
	msgMissingDate = "Date parameter is required"
	msgInvalidDate = "Please provide a valid date"
	msgFailed      = "Failed to fetch availability"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")

	result, err := h.useCase.Execute(r.Context(), &getAvailability.Request{Date: date})
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrMissingDate):
			h.logger.Warn("GET /availability - Missing date parameter")
			handlers.RespondBadRequest(w, msgMissingDate)

		case errors.Is(err, getAvailability.ErrInvalidDate):
			h.logger.Warn("GET /availability - Invalid date: %q", date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /availability - Failed to fetch availability: date=%s, error=%v", date, err)
			handlers.RespondInternalError(w, msgFailed, err)
		}
		return
	}

	h.logger.Info("GET /availability - %d slots for date=%s", len(result.Slots), date)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
