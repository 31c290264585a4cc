package send_test_email

import (
	"context"
	"time"
)

type NotificationService interface {
	SendTest(ctx context.Context, email string, now time.Time) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
