package mailer

import "gopkg.in/gomail.v2"

// disabledSender используется, когда SMTP выключен в конфиге: письма только логируются
type disabledSender struct {
	log Logger
}

func (s disabledSender) DialAndSend(msgs ...*gomail.Message) error {
	for _, m := range msgs {
		s.log.Warn("Mailer: smtp disabled, dropping %q to %v", m.GetHeader("Subject"), m.GetHeader("To"))
	}
	return nil
}

// NewDisabledClient создает клиент, который не отправляет писем
func NewDisabledClient(cfg Config, log Logger) *Client {
	return NewClientWithSender(disabledSender{log: log}, cfg, log)
}
