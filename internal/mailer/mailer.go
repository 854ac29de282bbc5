package mailer

import (
	"fmt"

	"sportsvitae/backend/internal/config"

	"gopkg.in/gomail.v2"
)

// Sender delivers a single email. Delivery is best-effort everywhere in
// this codebase: callers log failures and move on.
type Sender interface {
	Send(to, subject, htmlBody string) error
}

// SMTPSender sends mail through a configured SMTP relay.
type SMTPSender struct {
	host     string
	port     int
	username string
	password string
	from     string
}

// NewFromConfig builds an SMTPSender from the loaded application config.
func NewFromConfig() *SMTPSender {
	cfg := config.AppConfig
	return &SMTPSender{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		username: cfg.SMTPUser,
		password: cfg.SMTPPassword,
		from:     cfg.MailFrom,
	}
}

func (s *SMTPSender) Send(to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(s.host, s.port, s.username, s.password)
	return d.DialAndSend(m)
}

func baseURL() string {
	if config.AppConfig == nil {
		return ""
	}
	return config.AppConfig.BaseURL
}

// SendVerificationMail mails the emailed-link token for email verification.
func SendVerificationMail(s Sender, to, token string) error {
	link := fmt.Sprintf("%s/verify-email?token=%s", baseURL(), token)
	body := fmt.Sprintf(`<p>Welcome to Sportsvitae!</p><p>Please <a href="%s">verify your email</a> to activate your account.</p>`, link)
	return s.Send(to, "Important: Verify Email for your Sportsvitae.com account now", body)
}

// SendForgotPasswordMail mails the password-reset token link.
func SendForgotPasswordMail(s Sender, to, token string) error {
	link := fmt.Sprintf("%s/reset-password?token=%s", baseURL(), token)
	body := fmt.Sprintf(`<p>We received a request to reset your password.</p><p><a href="%s">Choose a new password</a>.</p>`, link)
	return s.Send(to, "Sportsvitae.com: Choose a new password", body)
}

// SendNotificationMail mails the rendered notification text with its
// click-through link.
func SendNotificationMail(s Sender, to, message, clickURL string) error {
	subject := fmt.Sprintf("Sportsvitae %s", message)
	body := fmt.Sprintf(`<p>%s</p><p><a href="%s%s">View on Sportsvitae</a></p>`, message, baseURL(), clickURL)
	return s.Send(to, subject, body)
}
