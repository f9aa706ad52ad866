package service

import (
	"context"
	"log/slog"

	"github.com/lindenshop/storefront-api/internal/redact"
)

// EmailSender delivers account emails. The transport is out of scope here;
// deployments plug in an SMTP or provider-backed implementation.
type EmailSender interface {
	// SendPasswordReset delivers a password-reset token to the address.
	SendPasswordReset(ctx context.Context, email, token string) error
}

// LogEmailSender is an EmailSender that only logs the delivery. Used in
// development and as the default when no transport is configured.
type LogEmailSender struct {
	logger *slog.Logger
}

// NewLogEmailSender creates a LogEmailSender.
func NewLogEmailSender(logger *slog.Logger) *LogEmailSender {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogEmailSender{logger: logger.With("component", "email_sender")}
}

var _ EmailSender = (*LogEmailSender)(nil)

// SendPasswordReset implements EmailSender.
func (s *LogEmailSender) SendPasswordReset(ctx context.Context, email, token string) error {
	s.logger.Info("password reset requested",
		"email", redact.String(email),
		"token_length", len(token))
	return nil
}
