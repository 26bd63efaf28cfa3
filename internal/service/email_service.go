package service

import (
	"context"
	"fmt"
	"time"

	mail "gopkg.in/mail.v2"

	"coach-library-backend/internal/background"
	"coach-library-backend/internal/config"
	"coach-library-backend/pkg/logger"
)

// EmailService implements Notifier by pushing deliveries onto the
// background queue. With SMTP unconfigured it degrades to a no-op.
type EmailService struct {
	queue   *background.Queue
	dialer  *mail.Dialer
	from    string
	enabled bool
}

func NewEmailService(cfg *config.Config, queue *background.Queue) *EmailService {
	enabled := cfg.EnableEmail && cfg.SMTPHost != ""
	if !enabled {
		logger.Warn("Email delivery disabled", map[string]interface{}{
			"enable_email": cfg.EnableEmail,
			"smtp_host":    cfg.SMTPHost,
		})
		return &EmailService{enabled: false}
	}

	dialer := mail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)
	dialer.Timeout = 15 * time.Second

	return &EmailService{
		queue:   queue,
		dialer:  dialer,
		from:    cfg.SMTPFrom,
		enabled: true,
	}
}

func (s *EmailService) enqueue(name, to, subject, body string) {
	if !s.enabled {
		return
	}

	err := s.queue.Enqueue(background.Job{
		Name:    name,
		Timeout: 30 * time.Second,
		RetryPolicy: background.RetryPolicy{
			MaxRetries: 3,
			Backoff:    2 * time.Second,
		},
		Run: func(ctx context.Context) error {
			msg := mail.NewMessage()
			msg.SetHeader("From", s.from)
			msg.SetHeader("To", to)
			msg.SetHeader("Subject", subject)
			msg.SetBody("text/html", body)
			return s.dialer.DialAndSend(msg)
		},
	})
	if err != nil {
		logger.Error(err, "Failed to enqueue email", map[string]interface{}{
			"job": name,
			"to":  to,
		})
	}
}

func (s *EmailService) SendRegistrationEmail(to, name string) {
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Welcome to the coach library. Your account has been created.</p>",
		name,
	)
	s.enqueue("registration_email", to, "Welcome to Coach Library", body)
}

func (s *EmailService) SendPasswordResetEmail(to, code string) {
	body := fmt.Sprintf(
		"<p>We received a request to reset your password.</p><p>Your reset code is: <strong>%s</strong></p><p>If you did not request this, ignore this email.</p>",
		code,
	)
	s.enqueue("password_reset_email", to, "Password Reset", body)
}
