package health

import (
	"net/http"
	"time"

	"github.com/m04kA/FWL-BookingService/internal/api/handlers"
)

// Response тело ответа проверки здоровья
type Response struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type Handler struct {
	now func() time.Time
}

func NewHandler() *Handler {
	return &Handler{now: time.Now}
}

// Handle GET /api/health
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, &Response{
		Status:    "healthy",
		Timestamp: h.now().UTC(),
	})
}
