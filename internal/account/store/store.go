package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/accounts/internal/account/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Sub-repositories are reached
// through methods so a Tx can hand out the same repos bound to itself.
type Store interface {
	Accounts() Accounts
	Clients() Clients
	Challenges() Challenges
	ProfileMeta() ProfileMeta

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn in a transaction, committing if fn returns nil.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error
	Ping(ctx context.Context) error
}

// Tx is a transactional store.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Accounts interface {
	GetAccountByID(ctx context.Context, id string) (domain.Account, error)

	// GetAccountByEmail expects a lowercased email.
	GetAccountByEmail(ctx context.Context, email string) (domain.Account, error)

	// CreateAccount returns ErrAlreadyExists if the email is taken.
	CreateAccount(ctx context.Context, a domain.Account) error

	// UpdateProfile rewrites the profile columns and bumps updated_at.
	UpdateProfile(ctx context.Context, a domain.Account) error

	SetQueenClient(ctx context.Context, accountID, clientID string) error
}

type Clients interface {
	GetClientByID(ctx context.Context, id string) (domain.Client, error)
	CreateClient(ctx context.Context, c domain.Client) error

	// UpdateSigningKey sets the client's ed25519 key (legacy backfill).
	UpdateSigningKey(ctx context.Context, clientID, signingKey string) error

	// SupersedeClient clears the queen flag and stamps superseded_at.
	SupersedeClient(ctx context.Context, clientID string) error
}

type Challenges interface {
	CreateChallenge(ctx context.Context, c domain.Challenge) error

	// ConsumeChallenge deletes the challenge with this hash and returns it.
	// A second call with the same hash returns ErrNotFound.
	ConsumeChallenge(ctx context.Context, hash string) (domain.Challenge, error)

	// DeleteExpiredChallenges returns how many rows were removed.
	DeleteExpiredChallenges(ctx context.Context, now time.Time) (int64, error)
}

type ProfileMeta interface {
	// GetMeta returns an empty, non-nil map if nothing is stored.
	GetMeta(ctx context.Context, accountID string) (map[string]string, error)

	// ReplaceMeta swaps the whole map.
	ReplaceMeta(ctx context.Context, accountID string, meta map[string]string) error
}
