package list_appointments

import (
	"net/url"
	"strconv"

	"github.com/m04kA/FWL-BookingService/internal/service/appointments/models"
)

// ToServiceRequest собирает запрос к сервису из query параметров
// Нечисловые page и limit заменяются значениями по умолчанию
func ToServiceRequest(query url.Values) *models.ListRequest {
	req := &models.ListRequest{
		Page:  parseIntOrZero(query.Get("page")),
		Limit: parseIntOrZero(query.Get("limit")),
	}

	if status := query.Get("status"); status != "" {
		req.Status = &status
	}
	if date := query.Get("date"); date != "" {
		req.Date = &date
	}

	return req
}

func parseIntOrZero(s string) int {
	if s == "" {
		return 0
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return v
}
