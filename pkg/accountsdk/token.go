package accountsdk

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// DefaultTokenLifetime is how long a token is trusted before it is refreshed.
const DefaultTokenLifetime = 5 * time.Minute

// Token is a bearer token with an optional Refresher. It is safe for
// concurrent use; concurrent callers of Valid share a single refresh.
type Token struct {
	mu        sync.RWMutex
	token     string
	created   time.Time
	refresher Refresher

	lifetime time.Duration
	now      func() time.Time
}

// TokenOption configures a Token.
type TokenOption func(*Token)

// TokenLifetime overrides DefaultTokenLifetime.
func TokenLifetime(d time.Duration) TokenOption {
	return func(t *Token) {
		if d > 0 {
			t.lifetime = d
		}
	}
}

// TokenClock replaces time.Now, mostly for tests.
func TokenClock(now func() time.Time) TokenOption {
	return func(t *Token) {
		if now != nil {
			t.now = now
		}
	}
}

func tokenCreated(created time.Time) TokenOption {
	return func(t *Token) { t.created = created }
}

// NewToken wraps token, stamped as created now. refresher may be nil.
func NewToken(token string, refresher Refresher, opts ...TokenOption) *Token {
	t := &Token{
		token:     token,
		refresher: refresher,
		lifetime:  DefaultTokenLifetime,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.created.IsZero() {
		t.created = t.now()
	}
	return t
}

// Token returns the current token string without checking expiry.
func (t *Token) Token() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.token
}

// Bearer returns the Authorization header value for the current token.
func (t *Token) Bearer() string {
	return "Bearer " + t.Token()
}

// Created returns when the current token string was obtained.
func (t *Token) Created() time.Time {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.created
}

// Refresher returns the token's refresher, or nil.
func (t *Token) Refresher() Refresher {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.refresher
}

// Expired reports whether the token is at least one lifetime old.
func (t *Token) Expired() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.expired()
}

func (t *Token) expired() bool {
	return !t.now().Before(t.created.Add(t.lifetime))
}

// Refresh unconditionally obtains a new token string from the refresher. On
// failure the token is left exactly as it was.
func (t *Token) Refresh(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.refresh(ctx)
}

func (t *Token) refresh(ctx context.Context) error {
	if t.refresher == nil {
		return ErrNoRefresherConfigured
	}

	next, err := t.refresher.Refresh(ctx)
	if err != nil {
		return fmt.Errorf("failed to refresh token: %w", err)
	}
	if next == "" {
		return errors.New("failed to refresh token: refresher returned an empty token")
	}

	t.token = next
	t.created = t.now()
	return nil
}

// Valid returns a token string that is not expired, refreshing first when
// needed.
func (t *Token) Valid(ctx context.Context) (string, error) {
	t.mu.RLock()
	if !t.expired() {
		token := t.token
		t.mu.RUnlock()
		return token, nil
	}
	t.mu.RUnlock()

	t.mu.Lock()
	defer t.mu.Unlock()

	// Another caller may have refreshed while we waited for the write lock.
	if !t.expired() {
		return t.token, nil
	}
	if err := t.refresh(ctx); err != nil {
		return "", err
	}
	return t.token, nil
}

// WithRefresher returns a new Token carrying the same token string and
// creation time, bound to r.
func (t *Token) WithRefresher(r Refresher) *Token {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return &Token{
		token:     t.token,
		created:   t.created,
		refresher: r,
		lifetime:  t.lifetime,
		now:       t.now,
	}
}

// TokenData is the serialized form of a Token. Created is in unix
// milliseconds.
type TokenData struct {
	Token     string         `json:"token"`
	Created   int64          `json:"created"`
	Refresher *RefresherData `json:"refresher,omitempty"`
}

// Serialize captures the token and its refresher. The result contains
// private key material when a refresher is attached.
func (t *Token) Serialize() TokenData {
	t.mu.RLock()
	defer t.mu.RUnlock()

	data := TokenData{
		Token:   t.token,
		Created: t.created.UnixMilli(),
	}
	if t.refresher != nil {
		data.Refresher = t.refresher.Serialize()
	}
	return data
}
