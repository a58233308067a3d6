package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/aussiebroadwan/accounts/internal/account/domain"
	"github.com/aussiebroadwan/accounts/internal/account/store"
	"github.com/aussiebroadwan/accounts/pkg/slogx"
)

// Registration is everything produced by a successful sign up. APISecret is
// the queen client's secret and is never retrievable again.
type Registration struct {
	Account   domain.Account
	Queen     domain.Client
	APISecret string
	Token     string
}

type AccountService struct {
	Store   store.Store
	Tokens  *TokenService
	Clients *ClientService
}

// Register creates the account and its queen client in one transaction and
// signs the first session token. The caller validates the profile first.
func (s *AccountService) Register(ctx context.Context, profile domain.Account, queen QueenKeys) (Registration, error) {
	l := slogx.FromContext(ctx)

	now := time.Now().UTC()
	acct := profile
	acct.ID = uuid.NewString()
	acct.Email = normalizeEmail(profile.Email)
	acct.CreatedAt = now
	acct.UpdatedAt = now

	var (
		client domain.Client
		secret string
	)
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Accounts().CreateAccount(ctx, acct); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrAccountExists
			}
			return err
		}

		var err error
		client, secret, err = s.Clients.createQueen(ctx, tx, acct.ID, queen)
		if err != nil {
			return err
		}

		acct.QueenClientID = client.ID
		return tx.Accounts().SetQueenClient(ctx, acct.ID, client.ID)
	})
	if err != nil {
		if !errors.Is(err, ErrAccountExists) {
			l.Error("failed to register account", "error", err)
		}
		return Registration{}, err
	}

	token, err := s.Tokens.IssueSession(acct, KeyIDPassword)
	if err != nil {
		l.Error("failed to issue session token", "account_id", acct.ID, "error", err)
		return Registration{}, err
	}

	l.Info("account registered", "account_id", acct.ID, "client_id", client.ID)
	return Registration{Account: acct, Queen: client, APISecret: secret, Token: token}, nil
}

// Profile returns the account with the given id.
func (s *AccountService) Profile(ctx context.Context, accountID string) (domain.Account, error) {
	a, err := s.Store.Accounts().GetAccountByID(ctx, accountID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Account{}, ErrAccountNotFound
	}
	return a, err
}

// UpdateProfile applies upd to the account. Empty fields are left alone; a
// changed email must not already belong to another account.
func (s *AccountService) UpdateProfile(ctx context.Context, accountID string, upd domain.ProfileUpdate) (domain.Account, error) {
	l := slogx.FromContext(ctx)
	upd.Email = normalizeEmail(upd.Email)

	var updated domain.Account
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		cur, err := tx.Accounts().GetAccountByID(ctx, accountID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrAccountNotFound
			}
			return err
		}

		updated = upd.Apply(cur)
		if err := tx.Accounts().UpdateProfile(ctx, updated); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrEmailTaken
			}
			return err
		}
		return nil
	})
	if err != nil {
		return domain.Account{}, err
	}

	l.Info("profile updated", "account_id", accountID)
	return s.Profile(ctx, accountID)
}

// Meta returns the profile meta map, empty if none was ever written.
func (s *AccountService) Meta(ctx context.Context, accountID string) (map[string]string, error) {
	return s.Store.ProfileMeta().GetMeta(ctx, accountID)
}

// ReplaceMeta overwrites the whole profile meta map.
func (s *AccountService) ReplaceMeta(ctx context.Context, accountID string, meta map[string]string) error {
	if meta == nil {
		meta = map[string]string{}
	}
	for k := range meta {
		if k == "" {
			return &ValidationError{Fields: map[string]string{"meta": "keys must not be empty"}}
		}
	}

	if err := s.Store.ProfileMeta().ReplaceMeta(ctx, accountID, meta); err != nil {
		slogx.FromContext(ctx).Error("failed to replace profile meta", "account_id", accountID, "error", err)
		return err
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
