package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/aussiebroadwan/accounts/internal/account/domain"
	"github.com/aussiebroadwan/accounts/internal/account/store"
	"github.com/aussiebroadwan/accounts/pkg/cryptox"
	"github.com/aussiebroadwan/accounts/pkg/slogx"
)

// QueenKeys are the public halves of a queen client's keypairs, base64url.
type QueenKeys struct {
	PublicKey  string // curve25519
	SigningKey string // ed25519
}

type ClientService struct {
	Store  store.Store
	Hasher *cryptox.Hasher
}

// createQueen registers a new queen client for accountID inside tx and
// returns it along with its plaintext API secret.
func (s *ClientService) createQueen(ctx context.Context, tx store.Tx, accountID string, keys QueenKeys) (domain.Client, string, error) {
	apiKeyID, err := cryptox.GenerateToken(cryptox.TokenSize128)
	if err != nil {
		return domain.Client{}, "", err
	}

	secret, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return domain.Client{}, "", err
	}

	hash, err := s.Hasher.Hash(secret)
	if err != nil {
		return domain.Client{}, "", fmt.Errorf("failed to hash client secret: %w", err)
	}

	now := time.Now().UTC()
	c := domain.Client{
		ID:         uuid.NewString(),
		AccountID:  accountID,
		APIKeyID:   apiKeyID,
		SecretHash: hash,
		PublicKey:  keys.PublicKey,
		SigningKey: keys.SigningKey,
		Queen:      true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := tx.Clients().CreateClient(ctx, c); err != nil {
		return domain.Client{}, "", err
	}
	return c, secret, nil
}

// Client returns a client owned by accountID. Clients owned by somebody
// else are reported as not found.
func (s *ClientService) Client(ctx context.Context, accountID, clientID string) (domain.Client, error) {
	c, err := s.Store.Clients().GetClientByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Client{}, ErrClientNotFound
		}
		return domain.Client{}, err
	}
	if c.AccountID != accountID {
		return domain.Client{}, ErrClientNotFound
	}
	return c, nil
}

// BackfillSigningKey sets the signing key of a client created before
// clients carried one. An existing key is overwritten.
func (s *ClientService) BackfillSigningKey(ctx context.Context, accountID, clientID, signingKey string) error {
	l := slogx.FromContext(ctx)

	if _, err := s.Client(ctx, accountID, clientID); err != nil {
		return err
	}

	if err := s.Store.Clients().UpdateSigningKey(ctx, clientID, signingKey); err != nil {
		l.Error("failed to backfill signing key", "client_id", clientID, "error", err)
		return err
	}

	l.Info("client signing key backfilled", "client_id", clientID)
	return nil
}

// RollQueen replaces the account's queen client. The previous queen is
// superseded in the same transaction.
func (s *ClientService) RollQueen(ctx context.Context, accountID string, keys QueenKeys) (domain.Client, string, error) {
	l := slogx.FromContext(ctx)

	var (
		client domain.Client
		secret string
		prev   string
	)
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		a, err := tx.Accounts().GetAccountByID(ctx, accountID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrAccountNotFound
			}
			return err
		}
		prev = a.QueenClientID

		client, secret, err = s.createQueen(ctx, tx, accountID, keys)
		if err != nil {
			return err
		}

		if prev != "" {
			if err := tx.Clients().SupersedeClient(ctx, prev); err != nil && !errors.Is(err, store.ErrNotFound) {
				return err
			}
		}
		return tx.Accounts().SetQueenClient(ctx, accountID, client.ID)
	})
	if err != nil {
		if !errors.Is(err, ErrAccountNotFound) {
			l.Error("failed to roll queen client", "account_id", accountID, "error", err)
		}
		return domain.Client{}, "", err
	}

	l.Info("queen client rolled", "account_id", accountID, "client_id", client.ID, "previous_client_id", prev)
	return client, secret, nil
}
