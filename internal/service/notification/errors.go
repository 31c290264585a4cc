package notification

import "errors"

var (
	// ErrShutdownTimeout возвращается, когда фоновые отправки не завершились до дедлайна
	ErrShutdownTimeout = errors.New("notification: pending deliveries did not finish before deadline")
)
