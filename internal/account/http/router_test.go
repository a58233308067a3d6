package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/accounts/internal/account/service"
	"github.com/aussiebroadwan/accounts/pkg/accountsdk"
	"github.com/aussiebroadwan/accounts/pkg/jwtx"
)

func (s *testServer) do(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}

	req, err := http.NewRequestWithContext(t.Context(), method, s.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func (s *testServer) token(t *testing.T, accountID string, scopes ...string) string {
	t.Helper()
	claims := jwtx.NewAccountClaims(accountID, "jane@example.com", scopes, "", time.Minute, testIssuer, nil, time.Now())
	tok, err := s.keys.GetSigner().Sign(claims)
	require.NoError(t, err)
	return tok
}

func decodeError(t *testing.T, resp *http.Response) accountsdk.ErrorResponse {
	t.Helper()
	var body accountsdk.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestSystemEndpoints(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	t.Run("livez", func(t *testing.T) {
		resp := srv.do(t, http.MethodGet, "/livez", "", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body accountsdk.HealthResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		require.Equal(t, "ok", body.Status)
		require.Equal(t, "test", body.Version)
	})

	t.Run("readyz", func(t *testing.T) {
		resp := srv.do(t, http.MethodGet, "/readyz", "", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body accountsdk.HealthResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		require.NotNil(t, body.Checks)
		require.Equal(t, "ok", body.Checks.Database)
		require.Equal(t, "ok", body.Checks.Signer)
	})

	t.Run("jwks verifies issued tokens", func(t *testing.T) {
		resp := srv.do(t, http.MethodGet, "/.well-known/jwks.json", "", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var jwks jwtx.JWKS
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&jwks))
		require.Len(t, jwks.Keys, 2)

		ks := jwtx.NewKeySet()
		require.NoError(t, ks.ResetFromJWKS(jwks))

		claims, err := jwtx.NewVerifierEdDSA(ks, testIssuer, nil).Verify(srv.token(t, "acct-1", service.ScopeAccountRead))
		require.NoError(t, err)
		require.Equal(t, "acct-1", claims.Subject)
	})

	t.Run("request id is echoed", func(t *testing.T) {
		resp := srv.do(t, http.MethodGet, "/livez", "", nil)
		require.NotEmpty(t, resp.Header.Get("X-Request-ID"))
	})
}

func TestRequestValidation(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	t.Run("malformed json", func(t *testing.T) {
		resp := srv.do(t, http.MethodPost, "/v1/account/profile", "", "{not json")
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		require.Equal(t, "invalid_request", decodeError(t, resp).Error)
	})

	t.Run("registration field errors", func(t *testing.T) {
		resp := srv.do(t, http.MethodPost, "/v1/account/profile", "", accountsdk.RegisterRequest{
			Profile: accountsdk.Profile{Email: "jane@example.com", AuthSalt: "short"},
		})
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)

		body := decodeError(t, resp)
		require.Equal(t, "invalid_request", body.Error)
		require.Contains(t, body.ErrorDescription, "profile.auth_salt")
		require.Contains(t, body.ErrorDescription, "account.public_key")
	})

	t.Run("challenge needs an email", func(t *testing.T) {
		resp := srv.do(t, http.MethodPost, "/v1/account/challenge", "", accountsdk.ChallengeRequest{Email: "Jane <jane@example.com>"})
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("unknown challenge", func(t *testing.T) {
		resp := srv.do(t, http.MethodPost, "/v1/account/auth", "", accountsdk.AuthRequest{
			Email: "jane@example.com", Challenge: "nope", Response: "nope",
		})
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		require.Equal(t, "invalid_grant", decodeError(t, resp).Error)
	})

	t.Run("recovery is quiet about unknown emails", func(t *testing.T) {
		resp := srv.do(t, http.MethodPost, "/v1/account/recover", "", accountsdk.RecoveryRequest{Email: "ghost@example.com"})
		require.Equal(t, http.StatusNoContent, resp.StatusCode)
	})
}

func TestAuthorization(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)
	ctx := t.Context()

	reg, err := srv.account().Register(ctx, "Jane", "jane@example.com", "hunter22")
	require.NoError(t, err)
	accountID := reg.Client.Account().AccountID
	clientID := reg.Client.Account().Client.ClientID
	backfill := accountsdk.KeyBackfillRequest{SigningKey: accountsdk.SigningKey{Ed25519: "key"}}

	t.Run("missing token", func(t *testing.T) {
		resp := srv.do(t, http.MethodGet, "/v1/account/profile/meta", "", nil)
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		require.True(t, strings.HasPrefix(resp.Header.Get("WWW-Authenticate"), "Bearer"))
	})

	t.Run("garbage token", func(t *testing.T) {
		resp := srv.do(t, http.MethodGet, "/v1/account/profile/meta", "not.a.jwt", nil)
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("recovery token reads meta", func(t *testing.T) {
		resp := srv.do(t, http.MethodGet, "/v1/account/profile/meta", srv.token(t, accountID, service.ScopeAccountRecover), nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var meta accountsdk.ProfileMeta
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&meta))
		require.Contains(t, meta, accountsdk.MetaBackupClient)
	})

	t.Run("recovery token cannot backfill", func(t *testing.T) {
		resp := srv.do(t, http.MethodPatch, "/v1/client/"+clientID+"/keys", srv.token(t, accountID, service.ScopeAccountRecover), backfill)
		require.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("read scope cannot write meta", func(t *testing.T) {
		resp := srv.do(t, http.MethodPut, "/v1/account/profile/meta", srv.token(t, accountID, service.ScopeAccountRead), map[string]string{})
		require.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("another account's client", func(t *testing.T) {
		resp := srv.do(t, http.MethodPatch, "/v1/client/"+clientID+"/keys", srv.token(t, "someone-else", service.ScopeAccountWrite), backfill)
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("own client", func(t *testing.T) {
		resp := srv.do(t, http.MethodPatch, "/v1/client/"+clientID+"/keys", srv.token(t, accountID, service.ScopeAccountWrite), backfill)
		require.Equal(t, http.StatusNoContent, resp.StatusCode)
	})
}
