package delete_appointment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/FWL-BookingService/internal/api/handlers"
	"github.com/m04kA/FWL-BookingService/internal/service/appointments"
)

const (
	msgDeleted   = "Appointment deleted successfully"
	msgInvalidID = "Invalid appointment ID"
	msgNotFound  = "Appointment not found"
	msgFailed    = "Failed to delete appointment"
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

// Handle DELETE /api/v1/appointments/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /appointments/{id} - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			h.logger.Warn("DELETE /appointments/{id} - Appointment not found: appointment_id=%d", id)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("DELETE /appointments/{id} - Failed to delete appointment: appointment_id=%d, error=%v", id, err)
			handlers.RespondInternalError(w, msgFailed, err)
		}
		return
	}

	h.logger.Info("DELETE /appointments/{id} - Appointment deleted: appointment_id=%d", id)
	handlers.RespondJSON(w, http.StatusOK, &DeleteAppointmentResponse{
		Success: true,
		Message: msgDeleted,
	})
}
