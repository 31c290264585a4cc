package mailer

import "errors"

var (
	// ErrNoRecipient возвращается, когда у письма нет адресата
	ErrNoRecipient = errors.New("mailer: recipient is not set")

	// ErrRender возвращается при ошибке шаблона письма
	ErrRender = errors.New("mailer: failed to render template")

	// ErrSend возвращается, когда SMTP сервер не принял письмо
	ErrSend = errors.New("mailer: failed to send message")
)
