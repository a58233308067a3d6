//go:build e2e

package account_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/accounts/pkg/accountsdk"
)

func TestRegisterLoginE2E(t *testing.T) {
	c := setupAccountContainer(t, nil)
	ctx := t.Context()
	acct := c.account()

	reg, err := acct.Register(ctx, "Jane", "jane@example.com", "correct horse battery")
	require.NoError(t, err)

	client, err := acct.Login(ctx, "jane@example.com", "correct horse battery", accountsdk.LoginStandard)
	require.NoError(t, err)
	require.Equal(t, reg.Client.Queen().Config(), client.Queen().Config())

	client, err = acct.Login(ctx, "jane@example.com", reg.PaperKey, accountsdk.LoginPaper)
	require.NoError(t, err)
	require.Equal(t, reg.Client.Queen().Config(), client.Queen().Config())

	t.Run("session survives serialization", func(t *testing.T) {
		data, err := client.MarshalJSON()
		require.NoError(t, err)

		restored, err := acct.FromJSON(data)
		require.NoError(t, err)

		meta, err := restored.API().GetProfileMeta(ctx)
		require.NoError(t, err)
		require.NotEmpty(t, meta[accountsdk.MetaPaperBackup])
	})
}

func TestRecoveryE2E(t *testing.T) {
	c := setupAccountContainer(t, nil)
	ctx := t.Context()
	acct := c.account()

	reg, err := acct.Register(ctx, "Jane", "jane@example.com", "forgotten")
	require.NoError(t, err)

	require.NoError(t, acct.RequestRecovery(ctx, "jane@example.com"))
	token := c.recoveryToken(t, "jane@example.com")

	recovered, err := acct.ChangeAccountPassword(ctx, "remembered", token)
	require.NoError(t, err)
	require.NotEqual(t, reg.Client.Queen().ClientID(), recovered.Client.Queen().ClientID())

	client, err := acct.Login(ctx, "jane@example.com", recovered.PaperKey, accountsdk.LoginPaper)
	require.NoError(t, err)
	require.Equal(t, recovered.Client.Queen().ClientID(), client.Queen().ClientID())
}
