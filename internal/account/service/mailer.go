package service

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// RecoveryMessage is what gets delivered to an account holder who asked to
// recover their account.
type RecoveryMessage struct {
	To        string
	Name      string
	Token     string
	ExpiresAt time.Time
}

// Mailer delivers recovery tokens out of band.
type Mailer interface {
	SendRecovery(ctx context.Context, msg RecoveryMessage) error
}

// LogMailer "delivers" by writing the token to the log. It exists for local
// development only; never run it where logs are shared.
type LogMailer struct {
	Logger *slog.Logger
}

func (m *LogMailer) SendRecovery(ctx context.Context, msg RecoveryMessage) error {
	m.Logger.WarnContext(ctx, "account recovery token issued (log mailer)",
		"to", msg.To,
		"expires_at", msg.ExpiresAt,
		"token", msg.Token,
	)
	return nil
}

// MemoryMailer keeps every message it is given.
type MemoryMailer struct {
	mu   sync.Mutex
	sent []RecoveryMessage
}

func (m *MemoryMailer) SendRecovery(_ context.Context, msg RecoveryMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return nil
}

// Sent returns a copy of everything delivered so far.
func (m *MemoryMailer) Sent() []RecoveryMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]RecoveryMessage(nil), m.sent...)
}

// Last returns the most recent message to the given address.
func (m *MemoryMailer) Last(to string) (RecoveryMessage, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.sent) - 1; i >= 0; i-- {
		if m.sent[i].To == to {
			return m.sent[i], true
		}
	}
	return RecoveryMessage{}, false
}
