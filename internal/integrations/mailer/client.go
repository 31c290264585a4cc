package mailer

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"

	"gopkg.in/gomail.v2"

	"github.com/m04kA/FWL-BookingService/internal/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

const mailerHeader = "FWL-CPA Booking System"

// Sender отправляет готовые сообщения. *gomail.Dialer удовлетворяет интерфейсу
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// Client клиент для отправки писем о записях
type Client struct {
	sender Sender
	cfg    Config
	now    func() time.Time
	log    Logger
}

// NewClient создает клиент поверх SMTP (gomail.Dialer)
// Порт 465 означает неявный TLS
func NewClient(cfg Config, log Logger) *Client {
	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	dialer.SSL = cfg.Port == 465
	return NewClientWithSender(dialer, cfg, log)
}

// NewClientWithSender создает клиент с произвольным отправителем
func NewClientWithSender(sender Sender, cfg Config, log Logger) *Client {
	return &Client{
		sender: sender,
		cfg:    cfg,
		now:    time.Now,
		log:    log,
	}
}

// SendConfirmation отправляет клиенту подтверждение записи
func (c *Client) SendConfirmation(ctx context.Context, appt domain.Appointment) error {
	subject := fmt.Sprintf("Your FWL-CPA Appointment Confirmation - %s", shortDate(appt.Date))
	return c.send(ctx, "confirmation.html", appt.Email, c.cfg.FromName, subject, "3", appt)
}

// SendOperatorNotification отправляет оператору уведомление о новой записи
func (c *Client) SendOperatorNotification(ctx context.Context, appt domain.Appointment) error {
	subject := fmt.Sprintf("New Booking: %s - %s - %s", appt.Name, appt.Service, shortDate(appt.Date))
	return c.send(ctx, "operator.html", c.cfg.OperatorEmail, mailerHeader, subject, "1", appt)
}

func (c *Client) send(ctx context.Context, tmpl, to, fromName, subject, priority string, appt domain.Appointment) error {
	if strings.TrimSpace(to) == "" {
		return fmt.Errorf("%w: %s", ErrNoRecipient, tmpl)
	}

	body, err := c.render(tmpl, appt)
	if err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", c.cfg.From, fromName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetHeader("X-Priority", priority)
	m.SetHeader("X-Mailer", mailerHeader)
	m.SetBody("text/html", body)

	// gomail не принимает контекст: ждем результат отправки или отмену контекста
	done := make(chan error, 1)
	go func() {
		done <- c.sender.DialAndSend(m)
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("%w: to=%s: %v", ErrSend, to, err)
		}
	case <-ctx.Done():
		return fmt.Errorf("%w: to=%s: %v", ErrSend, to, ctx.Err())
	}

	c.log.Info("Mailer: %s sent to %s", strings.TrimSuffix(tmpl, ".html"), to)
	return nil
}

// render заполняет шаблон письма данными записи
func (c *Client) render(tmpl string, appt domain.Appointment) (string, error) {
	var body bytes.Buffer
	if err := templates.ExecuteTemplate(&body, tmpl, newMessageData(appt, c.now())); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrRender, tmpl, err)
	}
	return body.String(), nil
}

// shortDate форматирует дату как M/D/YYYY
func shortDate(t time.Time) string {
	return t.Format("1/2/2006")
}
