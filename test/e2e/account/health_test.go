//go:build e2e

package account_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/accounts/pkg/accountsdk"
	"github.com/aussiebroadwan/accounts/pkg/jwtx"
)

func TestHealthAndJWKSE2E(t *testing.T) {
	c := setupAccountContainer(t, nil)
	ctx := t.Context()

	live, err := c.account().API().GetLiveness(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", live.Status)

	resp, err := http.Get(c.URL + "/.well-known/jwks.json")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var jwks jwtx.JWKS
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&jwks))
	require.Len(t, jwks.Keys, 2)

	ks := jwtx.NewKeySet()
	require.NoError(t, ks.ResetFromJWKS(jwks))

	reg, err := c.account().Register(ctx, "Jane", "jane@example.com", "hunter22")
	require.NoError(t, err)

	claims, err := jwtx.NewVerifierEdDSA(ks, testIssuer, nil).Verify(reg.Client.API().Token().Token())
	require.NoError(t, err)
	require.Equal(t, reg.Client.Account().AccountID, claims.Subject)
	require.Equal(t, accountsdk.KeyIDPassword, claims.KeyID)
}
