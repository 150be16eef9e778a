package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"utility-bill-splitter/internal/config"
)

func TestNewEmailService_SelectsProvider(t *testing.T) {
	tests := []struct {
		provider string
		want     EmailService
	}{
		{config.EmailProviderLog, &logEmailService{}},
		{config.EmailProviderSMTP, &smtpEmailService{}},
		{config.EmailProviderSendGrid, &sendGridEmailService{}},
		{"", &logEmailService{}},
	}

	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			cfg := &config.Config{}
			cfg.Email.Provider = tt.provider
			cfg.Email.SendGridAPIKey = "key"
			cfg.SMTP.Host = "localhost"
			cfg.SMTP.Port = 1025

			assert.IsType(t, tt.want, NewEmailService(cfg))
		})
	}
}

func TestLogEmailService_Send(t *testing.T) {
	svc := &logEmailService{}
	assert.NoError(t, svc.Send(context.Background(), "a@example.com", "A", "Bill", "body"))
}
