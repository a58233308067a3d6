package httpx_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aussiebroadwan/accounts/pkg/httpx"
	"github.com/aussiebroadwan/accounts/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestChainOrder(t *testing.T) {
	var order []string
	mw := func(name string) httpx.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := httpx.Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	}), mw("a"), mw("b"))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, []string{"a", "b", "handler"}, order)
}

func TestAuthnAndScopes(t *testing.T) {
	km, err := jwtx.NewEphemeralKeyManager(jwtx.KeyManagerOptions{Issuer: "https://accounts.test", NumKeys: 1})
	require.NoError(t, err)

	sign := func(scopes []string, ttl time.Duration, now time.Time) string {
		c := jwtx.NewAccountClaims("acct-1", "jane@example.com", scopes, "password", ttl, "https://accounts.test", nil, now)
		s, err := km.GetSigner().Sign(c)
		require.NoError(t, err)
		return s
	}

	var gotAccount string
	handler := httpx.Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAccount, _ = httpx.AccountIDFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}),
		httpx.AuthnMiddleware(km.Verifier),
		httpx.RequireAnyScope("account:write"),
	)

	serve := func(bearer string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPut, "/", nil)
		if bearer != "" {
			req.Header.Set("Authorization", "Bearer "+bearer)
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	now := time.Now()

	t.Run("missing token", func(t *testing.T) {
		rec := serve("")
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Contains(t, rec.Header().Get("WWW-Authenticate"), "invalid_token")
		require.Contains(t, rec.Body.String(), `"error":"invalid_token"`)
	})

	t.Run("garbage token", func(t *testing.T) {
		require.Equal(t, http.StatusUnauthorized, serve("abc.def.ghi").Code)
	})

	t.Run("expired token", func(t *testing.T) {
		rec := serve(sign([]string{"account:write"}, time.Minute, now.Add(-time.Hour)))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Contains(t, rec.Body.String(), "token expired")
	})

	t.Run("insufficient scope", func(t *testing.T) {
		rec := serve(sign([]string{"account:recover"}, time.Minute, now))
		require.Equal(t, http.StatusForbidden, rec.Code)
		require.Contains(t, rec.Header().Get("WWW-Authenticate"), "insufficient_scope")
	})

	t.Run("ok", func(t *testing.T) {
		rec := serve(sign([]string{"account:read", "account:write"}, time.Minute, now))
		require.Equal(t, http.StatusNoContent, rec.Code)
		require.Equal(t, "acct-1", gotAccount)
	})
}

func TestRequireAllScopes(t *testing.T) {
	h := httpx.RequireAllScopes("account:read", "account:write")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	ctx := httpx.ContextWithClaims(req.Context(), jwtx.Claims{Scopes: []string{"account:read"}})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req.WithContext(ctx))
	require.Equal(t, http.StatusForbidden, rec.Code)

	ctx = httpx.ContextWithClaims(req.Context(), jwtx.Claims{Scopes: []string{"account:write", "account:read"}})
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req.WithContext(ctx))
	require.Equal(t, http.StatusOK, rec.Code)
}
