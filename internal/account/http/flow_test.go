package http_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/accounts/pkg/accountsdk"
)

func requireStatus(t *testing.T, err error, code int) {
	t.Helper()
	var rerr *accountsdk.RemoteError
	require.True(t, errors.As(err, &rerr), "expected RemoteError, got %v", err)
	require.Equal(t, code, rerr.StatusCode)
}

func TestRegisterThenLogin(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)
	ctx := t.Context()
	acct := srv.account()

	reg, err := acct.Register(ctx, "Jane", "jane@example.com", "correct horse battery")
	require.NoError(t, err)
	require.NotEmpty(t, reg.PaperKey)

	queen := reg.Client.Queen().Config()
	require.NotEmpty(t, queen.APISecret)

	meta, err := reg.Client.API().GetProfileMeta(ctx)
	require.NoError(t, err)
	require.Equal(t, accountsdk.BackupEnabled, meta[accountsdk.MetaBackupEnabled])
	require.NotEmpty(t, meta[accountsdk.MetaBackupClient])
	require.NotEmpty(t, meta[accountsdk.MetaPaperBackup])

	t.Run("password", func(t *testing.T) {
		c, err := acct.Login(ctx, "jane@example.com", "correct horse battery", accountsdk.LoginStandard)
		require.NoError(t, err)
		require.Equal(t, queen, c.Queen().Config())
		require.Equal(t, reg.Client.Account().AccountID, c.Account().AccountID)
		require.True(t, c.ValidatePassword("correct horse battery"))
	})

	t.Run("paper key", func(t *testing.T) {
		c, err := acct.Login(ctx, "jane@example.com", reg.PaperKey, accountsdk.LoginPaper)
		require.NoError(t, err)
		require.Equal(t, queen, c.Queen().Config())
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := acct.Login(ctx, "jane@example.com", "battery staple", accountsdk.LoginStandard)
		requireStatus(t, err, http.StatusUnauthorized)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := acct.Login(ctx, "ghost@example.com", "correct horse battery", accountsdk.LoginStandard)
		requireStatus(t, err, http.StatusUnauthorized)
	})

	t.Run("duplicate", func(t *testing.T) {
		_, err := acct.Register(ctx, "Jane", "jane@example.com", "another password")
		requireStatus(t, err, http.StatusConflict)
	})
}

func TestChangePassword(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)
	ctx := t.Context()
	acct := srv.account()

	reg, err := acct.Register(ctx, "Jane", "jane@example.com", "old password")
	require.NoError(t, err)

	_, err = reg.Client.ChangePassword(ctx, "not it", "new password", accountsdk.LoginStandard)
	require.ErrorIs(t, err, accountsdk.ErrIncorrectPassword)

	changed, err := reg.Client.ChangePassword(ctx, "old password", "new password", accountsdk.LoginStandard)
	require.NoError(t, err)
	require.True(t, changed.ValidatePassword("new password"))

	c, err := acct.Login(ctx, "jane@example.com", "new password", accountsdk.LoginStandard)
	require.NoError(t, err)
	require.Equal(t, reg.Client.Queen().Config(), c.Queen().Config())

	_, err = acct.Login(ctx, "jane@example.com", "old password", accountsdk.LoginStandard)
	requireStatus(t, err, http.StatusUnauthorized)

	// The paper hierarchy is untouched by a password change.
	c, err = acct.Login(ctx, "jane@example.com", reg.PaperKey, accountsdk.LoginPaper)
	require.NoError(t, err)
	require.Equal(t, reg.Client.Queen().Config(), c.Queen().Config())
}

func TestRecoveryThenPaperLogin(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)
	ctx := t.Context()
	acct := srv.account()

	reg, err := acct.Register(ctx, "Jane", "jane@example.com", "forgotten")
	require.NoError(t, err)

	require.NoError(t, acct.RequestRecovery(ctx, "nobody@example.com"))
	require.Empty(t, srv.mailer.Sent())

	require.NoError(t, acct.RequestRecovery(ctx, "jane@example.com"))
	msg, ok := srv.mailer.Last("jane@example.com")
	require.True(t, ok)

	recovered, err := acct.ChangeAccountPassword(ctx, "remembered", msg.Token)
	require.NoError(t, err)
	require.NotEqual(t, reg.PaperKey, recovered.PaperKey)

	newQueen := recovered.Client.Queen().Config()
	require.NotEqual(t, reg.Client.Queen().Config().ClientID, newQueen.ClientID)

	c, err := acct.Login(ctx, "jane@example.com", recovered.PaperKey, accountsdk.LoginPaper)
	require.NoError(t, err)
	require.Equal(t, newQueen.ClientID, c.Queen().Config().ClientID)

	c, err = acct.Login(ctx, "jane@example.com", "remembered", accountsdk.LoginStandard)
	require.NoError(t, err)
	require.Equal(t, newQueen.ClientID, c.Queen().Config().ClientID)

	_, err = acct.Login(ctx, "jane@example.com", reg.PaperKey, accountsdk.LoginPaper)
	requireStatus(t, err, http.StatusUnauthorized)
}
