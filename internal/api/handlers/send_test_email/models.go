package send_test_email

// SendTestEmailRequest HTTP запрос на отправку тестовых писем
type SendTestEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// SendTestEmailResponse HTTP ответ
type SendTestEmailResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}
