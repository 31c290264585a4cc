package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"regexp"
	"time"
)

// TimeFormat формат времени слота (HH:MM:SS)
const TimeFormat = "15:04:05"

const minutesPerDay = 24 * 60

var (
	// ErrInvalidTimeString возвращается при некорректном формате времени
	ErrInvalidTimeString = errors.New("invalid time string format")

	// ErrTimeOverflow возвращается, когда результат выходит за пределы суток
	ErrTimeOverflow = errors.New("time string overflows the day")
)

// timeStringPattern допускает часы без ведущего нуля, как и клиентская форма
var timeStringPattern = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):[0-5][0-9]:[0-5][0-9]$`)

// TimeString время суток без даты в формате HH:MM:SS
// Хранится в нормализованном виде (с ведущими нулями), поэтому строки можно сравнивать лексикографически
type TimeString string

// NewTimeString создает TimeString из time.Time (дата отбрасывается)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(TimeFormat))
}

// NewTimeStringFromString парсит и нормализует строку "HH:MM:SS"
func NewTimeStringFromString(s string) (TimeString, error) {
	if !timeStringPattern.MatchString(s) {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}

	var h, m, sec int
	if _, err := fmt.Sscanf(s, "%d:%d:%d", &h, &m, &sec); err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}

	return fromSeconds(h*3600 + m*60 + sec), nil
}

// MustTimeString паникует при некорректном формате. Только для констант и тестов
func MustTimeString(s string) TimeString {
	ts, err := NewTimeStringFromString(s)
	if err != nil {
		panic(err)
	}
	return ts
}

// String возвращает строковое представление
func (t TimeString) String() string {
	return string(t)
}

// IsZero проверяет, что время не задано
func (t TimeString) IsZero() bool {
	return t == ""
}

// Validate проверяет формат времени
func (t TimeString) Validate() error {
	if !timeStringPattern.MatchString(string(t)) {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	return nil
}

// Seconds возвращает количество секунд от начала суток
func (t TimeString) Seconds() (int, error) {
	var h, m, s int
	if err := t.Validate(); err != nil {
		return 0, err
	}
	if _, err := fmt.Sscanf(string(t), "%d:%d:%d", &h, &m, &s); err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	return h*3600 + m*60 + s, nil
}

// AddMinutes прибавляет минуты. Переход через полночь считается ошибкой
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	secs, err := t.Seconds()
	if err != nil {
		return "", err
	}

	total := secs + minutes*60
	if total < 0 || total >= minutesPerDay*60 {
		return "", fmt.Errorf("%w: %s%+dm", ErrTimeOverflow, t, minutes)
	}

	return fromSeconds(total), nil
}

// Compare возвращает -1, 0 или 1
func (t TimeString) Compare(other TimeString) int {
	switch {
	case t < other:
		return -1
	case t > other:
		return 1
	default:
		return 0
	}
}

// IsBefore проверяет, что время строго раньше other
func (t TimeString) IsBefore(other TimeString) bool {
	return t.Compare(other) < 0
}

// IsAfter проверяет, что время строго позже other
func (t TimeString) IsAfter(other TimeString) bool {
	return t.Compare(other) > 0
}

// Short возвращает время в формате HH:MM
func (t TimeString) Short() string {
	if len(t) < 5 {
		return string(t)
	}
	return string(t[:5])
}

// Value реализует driver.Valuer
func (t TimeString) Value() (driver.Value, error) {
	return string(t), nil
}

// Scan реализует sql.Scanner. Postgres TIME приходит строкой или []byte
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		return t.scanString(v)
	case []byte:
		return t.scanString(string(v))
	case time.Time:
		*t = NewTimeString(v)
		return nil
	case nil:
		*t = ""
		return nil
	default:
		return fmt.Errorf("%w: unsupported scan type %T", ErrInvalidTimeString, src)
	}
}

func (t *TimeString) scanString(s string) error {
	// TIME может вернуться с дробной частью секунд: 13:00:00.000000
	if len(s) > 8 && s[8] == '.' {
		s = s[:8]
	}
	parsed, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func fromSeconds(total int) TimeString {
	return TimeString(fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60))
}
