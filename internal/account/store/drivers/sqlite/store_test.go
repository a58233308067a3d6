package sqlite_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/aussiebroadwan/accounts/internal/account/domain"
	"github.com/aussiebroadwan/accounts/internal/account/store"
	"github.com/aussiebroadwan/accounts/internal/account/store/drivers/sqlite"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	st, err := sqlite.NewStore(sqlite.DSN(filepath.Join(t.TempDir(), "accounts.db")))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	// second run is a no-op
	require.NoError(t, st.ApplyMigrations())
	return st
}

func testAccount(id, email string) domain.Account {
	return domain.Account{
		ID:              id,
		Email:           email,
		Name:            "Jane",
		AuthSalt:        "as",
		EncSalt:         "es",
		SigningKey:      "sk",
		PaperAuthSalt:   "pas",
		PaperEncSalt:    "pes",
		PaperSigningKey: "psk",
	}
}

func TestAccounts(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)
	ctx := t.Context()

	a := testAccount("a1", "jane@example.com")
	require.NoError(t, st.Accounts().CreateAccount(ctx, a))
	require.ErrorIs(t, st.Accounts().CreateAccount(ctx, testAccount("a2", "jane@example.com")), store.ErrAlreadyExists)

	got, err := st.Accounts().GetAccountByEmail(ctx, "jane@example.com")
	require.NoError(t, err)
	require.Equal(t, "a1", got.ID)
	require.Equal(t, "psk", got.PaperSigningKey)
	require.Empty(t, got.QueenClientID)
	require.False(t, got.CreatedAt.IsZero())

	_, err = st.Accounts().GetAccountByID(ctx, "missing")
	require.ErrorIs(t, err, store.ErrNotFound)

	got.SigningKey = "sk2"
	require.NoError(t, st.Accounts().UpdateProfile(ctx, got))
	require.NoError(t, st.Accounts().SetQueenClient(ctx, "a1", "c1"))

	got, err = st.Accounts().GetAccountByID(ctx, "a1")
	require.NoError(t, err)
	require.Equal(t, "sk2", got.SigningKey)
	require.Equal(t, "c1", got.QueenClientID)

	require.ErrorIs(t, st.Accounts().SetQueenClient(ctx, "missing", "c1"), store.ErrNotFound)
}

func TestClients(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)
	ctx := t.Context()

	require.NoError(t, st.Accounts().CreateAccount(ctx, testAccount("a1", "jane@example.com")))
	require.NoError(t, st.Clients().CreateClient(ctx, domain.Client{
		ID:         "c1",
		AccountID:  "a1",
		APIKeyID:   "k1",
		SecretHash: "h",
		PublicKey:  "pk",
		Queen:      true,
	}))

	c, err := st.Clients().GetClientByID(ctx, "c1")
	require.NoError(t, err)
	require.True(t, c.Queen)
	require.Empty(t, c.SigningKey)
	require.Nil(t, c.SupersededAt)

	require.NoError(t, st.Clients().UpdateSigningKey(ctx, "c1", "sig"))
	require.NoError(t, st.Clients().SupersedeClient(ctx, "c1"))

	c, err = st.Clients().GetClientByID(ctx, "c1")
	require.NoError(t, err)
	require.Equal(t, "sig", c.SigningKey)
	require.False(t, c.Queen)
	require.NotNil(t, c.SupersededAt)

	// clients must belong to an account
	err = st.Clients().CreateClient(ctx, domain.Client{ID: "c2", AccountID: "nope", APIKeyID: "k2"})
	require.Error(t, err)
}

func TestChallenges(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)
	ctx := t.Context()
	now := time.Now()

	require.NoError(t, st.Challenges().CreateChallenge(ctx, domain.Challenge{
		ID: "ch1", Email: "jane@example.com", Hash: "h1", ExpiresAt: now.Add(time.Minute),
	}))
	require.NoError(t, st.Challenges().CreateChallenge(ctx, domain.Challenge{
		ID: "ch2", Email: "jane@example.com", Hash: "h2", ExpiresAt: now.Add(-time.Minute),
	}))

	c, err := st.Challenges().ConsumeChallenge(ctx, "h1")
	require.NoError(t, err)
	require.Equal(t, "ch1", c.ID)
	require.WithinDuration(t, now.Add(time.Minute), c.ExpiresAt, time.Second)

	_, err = st.Challenges().ConsumeChallenge(ctx, "h1")
	require.ErrorIs(t, err, store.ErrNotFound)

	n, err := st.Challenges().DeleteExpiredChallenges(ctx, now)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	_, err = st.Challenges().ConsumeChallenge(ctx, "h2")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestProfileMeta(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)
	ctx := t.Context()

	require.NoError(t, st.Accounts().CreateAccount(ctx, testAccount("a1", "jane@example.com")))

	meta, err := st.ProfileMeta().GetMeta(ctx, "a1")
	require.NoError(t, err)
	require.NotNil(t, meta)
	require.Empty(t, meta)

	require.NoError(t, st.ProfileMeta().ReplaceMeta(ctx, "a1", map[string]string{"a": "1", "b": "2"}))
	require.NoError(t, st.ProfileMeta().ReplaceMeta(ctx, "a1", map[string]string{"b": "3"}))

	meta, err = st.ProfileMeta().GetMeta(ctx, "a1")
	require.NoError(t, err)
	require.Equal(t, map[string]string{"b": "3"}, meta)
}

func TestWithTxRollsBack(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)
	ctx := t.Context()

	err := st.WithTx(ctx, func(tx store.Tx) error {
		require.NoError(t, tx.Accounts().CreateAccount(ctx, testAccount("a1", "jane@example.com")))
		return store.ErrAlreadyExists
	})
	require.ErrorIs(t, err, store.ErrAlreadyExists)

	_, err = st.Accounts().GetAccountByID(ctx, "a1")
	require.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, st.WithTx(ctx, func(tx store.Tx) error {
		return tx.Accounts().CreateAccount(ctx, testAccount("a1", "jane@example.com"))
	}))
	_, err = st.Accounts().GetAccountByID(ctx, "a1")
	require.NoError(t, err)
}
