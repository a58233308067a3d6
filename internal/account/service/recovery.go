package service

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/accounts/internal/account/store"
	"github.com/aussiebroadwan/accounts/pkg/slogx"
)

type RecoveryService struct {
	Store  store.Store
	Tokens *TokenService
	Mailer Mailer
}

// RequestRecovery mails a recovery token to email if it belongs to an
// account. Unknown addresses succeed silently.
func (s *RecoveryService) RequestRecovery(ctx context.Context, email string) error {
	l := slogx.FromContext(ctx)
	email = normalizeEmail(email)

	a, err := s.Store.Accounts().GetAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			l.Info("recovery requested for unknown email")
			return nil
		}
		return err
	}

	token, expiresAt, err := s.Tokens.IssueRecovery(a)
	if err != nil {
		l.Error("failed to issue recovery token", "account_id", a.ID, "error", err)
		return err
	}

	err = s.Mailer.SendRecovery(ctx, RecoveryMessage{
		To:        a.Email,
		Name:      a.Name,
		Token:     token,
		ExpiresAt: expiresAt,
	})
	if err != nil {
		l.Error("failed to send recovery message", "account_id", a.ID, "error", err)
		return err
	}

	l.Info("recovery token sent", "account_id", a.ID)
	return nil
}
