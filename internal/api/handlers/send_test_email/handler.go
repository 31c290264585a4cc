package send_test_email

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/FWL-BookingService/internal/api/handlers"
)

const (
	msgSent               = "Test emails sent successfully"
	msgFailed             = "Failed to send test emails"
	msgInvalidRequestBody = "Invalid request body"
	msgInvalidEmail       = "Please provide a valid email address"
)

type Handler struct {
	service  NotificationService
	validate *validator.Validate
	now      func() time.Time
	logger   Logger
}

func NewHandler(service NotificationService, logger Logger) *Handler {
	return &Handler{
		service:  service,
		validate: validator.New(),
		now:      time.Now,
		logger:   logger,
	}
}

// Handle POST /api/v1/appointments/test-email
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req SendTestEmailRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments/test-email - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if err := h.validate.Struct(&req); err != nil {
		h.logger.Warn("POST /appointments/test-email - Invalid email: %q", req.Email)
		handlers.RespondBadRequest(w, msgInvalidEmail)
		return
	}

	if err := h.service.SendTest(r.Context(), req.Email, h.now()); err != nil {
		h.logger.Error("POST /appointments/test-email - Failed to send test emails: email=%s, error=%v", req.Email, err)
		handlers.RespondJSON(w, http.StatusInternalServerError, &SendTestEmailResponse{
			Success: false,
			Message: msgFailed,
			Error:   err.Error(),
		})
		return
	}

	h.logger.Info("POST /appointments/test-email - Test emails sent: email=%s", req.Email)
	handlers.RespondJSON(w, http.StatusOK, &SendTestEmailResponse{
		Success: true,
		Message: msgSent,
	})
}
