package service

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"gopkg.in/gomail.v2"

	"utility-bill-splitter/internal/config"
	"utility-bill-splitter/internal/logger"
)

// NewEmailService builds the transport selected by email.provider.
func NewEmailService(cfg *config.Config) EmailService {
	switch cfg.Email.Provider {
	case config.EmailProviderSMTP:
		return &smtpEmailService{
			dialer:   gomail.NewDialer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.User, cfg.SMTP.Password),
			from:     cfg.Email.From,
			fromName: cfg.Email.FromName,
		}
	case config.EmailProviderSendGrid:
		return &sendGridEmailService{
			client:   sendgrid.NewSendClient(cfg.Email.SendGridAPIKey),
			from:     cfg.Email.From,
			fromName: cfg.Email.FromName,
		}
	default:
		return &logEmailService{}
	}
}

// logEmailService only logs outgoing mail; used in development.
type logEmailService struct{}

func (s *logEmailService) Send(ctx context.Context, toEmail, toName, subject, body string) error {
	logger.InfoContext(ctx, "Email (log provider)", "to", toEmail, "subject", subject, "body", body)
	return nil
}

type smtpEmailService struct {
	dialer   *gomail.Dialer
	from     string
	fromName string
}

func (s *smtpEmailService) Send(ctx context.Context, toEmail, toName, subject, body string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.from, s.fromName)
	m.SetAddressHeader("To", toEmail, toName)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	logger.ExternalServiceCall("smtp", "DialAndSend", "to", toEmail)
	err := s.dialer.DialAndSend(m)
	logger.ExternalServiceResult("smtp", "DialAndSend", err, "to", toEmail)
	if err != nil {
		return fmt.Errorf("failed to send email via smtp: %w", err)
	}
	return nil
}

type sendGridEmailService struct {
	client   *sendgrid.Client
	from     string
	fromName string
}

func (s *sendGridEmailService) Send(ctx context.Context, toEmail, toName, subject, body string) error {
	message := mail.NewSingleEmail(
		mail.NewEmail(s.fromName, s.from),
		subject,
		mail.NewEmail(toName, toEmail),
		body,
		"",
	)

	logger.ExternalServiceCall("sendgrid", "Send", "to", toEmail)
	response, err := s.client.SendWithContext(ctx, message)
	if err == nil && response.StatusCode >= 400 {
		err = fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	logger.ExternalServiceResult("sendgrid", "Send", err, "to", toEmail)
	if err != nil {
		return fmt.Errorf("failed to send email via sendgrid: %w", err)
	}
	return nil
}
