package get_availability

import (
	getAvailability "github.com/m04kA/FWL-BookingService/internal/usecase/get_availability"
)

// TimeSlotResponse свободный слот
type TimeSlotResponse struct {
	StartTime string `json:"startTime"` // "13:00:00"
	EndTime   string `json:"endTime"`   // "14:00:00"
}

// FromUseCaseResponse конвертирует ответ use case в массив слотов
func FromUseCaseResponse(resp *getAvailability.Response) []TimeSlotResponse {
	result := make([]TimeSlotResponse, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		result = append(result, TimeSlotResponse{
			StartTime: s.StartTime.String(),
			EndTime:   s.EndTime.String(),
		})
	}
	return result
}
