package mailer

import (
	"strings"
	"time"

	"github.com/m04kA/FWL-BookingService/internal/domain"
)

// Config параметры отправителя
type Config struct {
	Host          string
	Port          int
	Username      string
	Password      string
	From          string // Адрес отправителя
	FromName      string // Отображаемое имя отправителя, например "FWL-CPA"
	OperatorEmail string // Куда отправлять уведомления о новых записях
}

// messageData данные для шаблонов писем
type messageData struct {
	Name          string
	Email         string
	Phone         string
	Service       string
	ServiceLower  string
	IsVirtual     bool
	TypeLabel     string // "In-Person Meeting" / "Virtual Meeting"
	ShortType     string // "In-Person" / "Virtual"
	Location      string
	FormattedDate string
	TimeRange     string // "10:00:00 - 11:00:00"
	BookedAt      string
	Notes         string
	Year          int
}

func newMessageData(appt domain.Appointment, now time.Time) messageData {
	virtual := appt.AppointmentType == domain.TypeVirtual

	data := messageData{
		Name:          appt.Name,
		Email:         appt.Email,
		Phone:         appt.Phone,
		Service:       string(appt.Service),
		ServiceLower:  strings.ToLower(string(appt.Service)),
		IsVirtual:     virtual,
		TypeLabel:     "In-Person Meeting",
		ShortType:     "In-Person",
		Location:      "Our Office Address",
		FormattedDate: appt.FormattedDate(),
		TimeRange:     appt.TimeSlot.StartTime.String() + " - " + appt.TimeSlot.EndTime.String(),
		Notes:         appt.Notes,
		Year:          now.Year(),
	}
	if virtual {
		data.TypeLabel = "Virtual Meeting"
		data.ShortType = "Virtual"
		data.Location = "Online Meeting"
	}

	bookedAt := appt.CreatedAt
	if bookedAt.IsZero() {
		bookedAt = now
	}
	data.BookedAt = bookedAt.Format("Jan 2, 2006, 3:04 PM")

	return data
}
