package service

import (
	"context"
	"sync"

)

// MockEmailSender implements EmailSender for testing
type MockEmailSender struct {
	SendPasswordResetFn func(ctx context.Context, email, token string) error
	Err                 error

	mu         sync.Mutex
	SentEmails []string
	SentTokens []string
}

var _ EmailSender = (*MockEmailSender)(nil)

func (m *MockEmailSender) SendPasswordReset(ctx context.Context, email, token string) error {
	if m.SendPasswordResetFn != nil {
		return m.SendPasswordResetFn(ctx, email, token)
	}
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	m.SentEmails = append(m.SentEmails, email)
	m.SentTokens = append(m.SentTokens, token)
	m.mu.Unlock()
	return nil
}
