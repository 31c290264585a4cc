package update_appointment_status

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/FWL-BookingService/internal/api/handlers"
	"github.com/m04kA/FWL-BookingService/internal/service/appointments"
	"github.com/m04kA/FWL-BookingService/internal/service/appointments/models"
)

const (
	msgInvalidID          = "Invalid appointment ID"
	msgInvalidRequestBody = "Invalid request body"
	msgInvalidStatus      = "Invalid status value"
	msgInvalidTransition  = "Status transition is not allowed"
	msgNotFound           = "Appointment not found"
	msgFailed             = "Failed to update appointment status"
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

// Handle PATCH /api/v1/appointments/{id}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id}/status - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	var req models.UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /appointments/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	appt, err := h.service.UpdateStatus(r.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidStatus):
			h.logger.Warn("PATCH /appointments/{id}/status - Invalid status: appointment_id=%d, status=%q", id, req.Status)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, appointments.ErrInvalidTransition):
			h.logger.Warn("PATCH /appointments/{id}/status - %v", err)
			handlers.RespondBadRequest(w, msgInvalidTransition)

		case errors.Is(err, appointments.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /appointments/{id}/status - Appointment not found: appointment_id=%d", id)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("PATCH /appointments/{id}/status - Failed to update status: appointment_id=%d, error=%v", id, err)
			handlers.RespondInternalError(w, msgFailed, err)
		}
		return
	}

	h.logger.Info("PATCH /appointments/{id}/status - Status updated: appointment_id=%d, status=%s", id, appt.Status)
	handlers.RespondJSON(w, http.StatusOK, &UpdateStatusResponse{
		Success:     true,
		Appointment: appt,
	})
}
