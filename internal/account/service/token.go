package service

import (
	"errors"
	"time"

	"github.com/aussiebroadwan/accounts/internal/account/domain"
	"github.com/aussiebroadwan/accounts/pkg/jwtx"
)

// Token scopes.
const (
	ScopeAccountRead    = "account:read"
	ScopeAccountWrite   = "account:write"
	ScopeAccountRecover = "account:recover"
)

// Key ids recorded in tokens: which credential answered the login
// challenge, or the recovery flow.
const (
	KeyIDPassword = "password"
	KeyIDPaper    = "paper"
	KeyIDRecovery = "recovery"
)

// TokenService mints account tokens. Sessions come from a challenge login;
// recovery tokens are mailed out and only allow re-keying the account.
type TokenService struct {
	KeyManager  *jwtx.KeyManager
	Issuer      string
	SessionTTL  time.Duration
	RecoveryTTL time.Duration
	Now         func() time.Time
}

// IssueSession signs a read/write token for a, recording which credential
// answered the challenge.
func (s *TokenService) IssueSession(a domain.Account, keyID string) (string, error) {
	return s.sign(a, []string{ScopeAccountRead, ScopeAccountWrite}, keyID, orDefault(s.SessionTTL, jwtx.DefaultSessionTTL))
}

// IssueRecovery signs a recovery token for a.
func (s *TokenService) IssueRecovery(a domain.Account) (string, time.Time, error) {
	ttl := orDefault(s.RecoveryTTL, jwtx.DefaultRecoveryTTL)
	tok, err := s.sign(a, []string{ScopeAccountRecover}, KeyIDRecovery, ttl)
	return tok, s.now().Add(ttl), err
}

func (s *TokenService) sign(a domain.Account, scopes []string, keyID string, ttl time.Duration) (string, error) {
	signer := s.KeyManager.GetSigner()
	if signer == nil {
		return "", errors.New("no signing key available")
	}

	claims := jwtx.NewAccountClaims(a.ID, a.Email, scopes, keyID, ttl, s.Issuer, nil, s.now())
	return signer.Sign(claims)
}

func (s *TokenService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func orDefault(d, def time.Duration) time.Duration {
	if d <= 0 {
		return def
	}
	return d
}
