package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// DefaultSessionTTL is the lifetime of a session token issued by a
	// challenge login. Clients refresh well before this by logging in again.
	DefaultSessionTTL = 15 * time.Minute

	// DefaultRecoveryTTL is the lifetime of an emailed recovery token.
	DefaultRecoveryTTL = time.Hour
)

// Claims are the account token claims. Subject is the account id.
type Claims struct {
	jwt.RegisteredClaims

	// Email the account is registered under
	Email string `json:"email,omitempty"`

	// Permission scopes, e.g. "account:read"
	Scopes []string `json:"scopes,omitempty"`

	// Which credential produced the token: "password", "paper" or
	// "recovery". Mostly useful when reading logs.
	KeyID string `json:"keyid,omitempty"`
}

// NewAccountClaims builds claims for an account token.
func NewAccountClaims(
	accountID, email string,
	scopes []string,
	keyID string,
	ttl time.Duration,
	issuer string,
	audience []string,
	now time.Time,
) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   accountID,
			Audience:  jwt.ClaimStrings(audience),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		Email:  email,
		Scopes: scopes,
		KeyID:  keyID,
	}
}

// NewJTI returns a URL-safe random identifier for the "jti" claim.
func NewJTI() string {
	var b [20]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}

// HasScope reports whether the claims grant scope.
func (c *Claims) HasScope(scope string) bool {
	return slices.Contains(c.Scopes, scope)
}

// ValidateIssuer checks if the issuer matches expected value.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil // nothing to enforce
	}

	if c.Issuer != expected {
		return ErrIssuer
	}

	return nil
}

// ValidateAudience checks if at least one expected audience is present.
func (c *Claims) ValidateAudience(expected []string) error {
	if len(expected) == 0 {
		return nil // nothing to enforce
	}

	for _, want := range expected {
		if slices.Contains(c.Audience, want) {
			return nil
		}
	}

	return ErrAudience
}

// ValidateExpiry checks exp and nbf against now, allowing leeway either
// side for clock skew.
func (c *Claims) ValidateExpiry(now time.Time, leeway time.Duration) error {
	if c.ExpiresAt != nil && now.After(c.ExpiresAt.Add(leeway)) {
		return ErrExpired
	}

	if c.NotBefore != nil && now.Before(c.NotBefore.Add(-leeway)) {
		return ErrNotYetValid
	}

	return nil
}
