package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"errors"
	"time"

	"github.com/aussiebroadwan/accounts/internal/account/domain"
	"github.com/aussiebroadwan/accounts/internal/account/store"
	"github.com/aussiebroadwan/accounts/pkg/cryptox"
	"github.com/aussiebroadwan/accounts/pkg/idx"
	"github.com/aussiebroadwan/accounts/pkg/slogx"
)

// DefaultChallengeTTL bounds how long a login nonce may be answered.
const DefaultChallengeTTL = 5 * time.Minute

// ChallengeResult is handed to a client starting a login.
type ChallengeResult struct {
	Challenge     string
	AuthSalt      string
	PaperAuthSalt string
}

// Session is the result of a successful login.
type Session struct {
	Account domain.Account
	Queen   domain.Client
	Token   string
}

// AuthService runs the challenge/response login. The client proves it can
// derive the account's signing key by signing a server nonce; no secret
// ever reaches the service.
type AuthService struct {
	Store  store.Store
	Tokens *TokenService
	Crypto *cryptox.Sodium

	// Pepper keys the decoy salts handed out for unknown emails.
	Pepper string

	ChallengeTTL time.Duration
	Now          func() time.Time
}

// Challenge stores a fresh single use nonce for email and returns it with
// the account's auth salts. Unknown emails get stable decoy salts so the
// endpoint does not reveal which addresses are registered.
func (s *AuthService) Challenge(ctx context.Context, email string) (ChallengeResult, error) {
	l := slogx.FromContext(ctx)
	email = normalizeEmail(email)

	var res ChallengeResult
	a, err := s.Store.Accounts().GetAccountByEmail(ctx, email)
	switch {
	case err == nil:
		res.AuthSalt, res.PaperAuthSalt = a.AuthSalt, a.PaperAuthSalt
	case errors.Is(err, store.ErrNotFound):
		res.AuthSalt = s.decoySalt("auth|" + email)
		res.PaperAuthSalt = s.decoySalt("paper|" + email)
	default:
		l.Error("failed to look up account for challenge", "error", err)
		return ChallengeResult{}, err
	}

	nonce, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return ChallengeResult{}, err
	}

	now := s.now()
	err = s.Store.Challenges().CreateChallenge(ctx, domain.Challenge{
		ID:        idx.New().String(),
		Email:     email,
		Hash:      cryptox.FingerprintToken(nonce),
		ExpiresAt: now.Add(s.ttl()),
		CreatedAt: now,
	})
	if err != nil {
		l.Error("failed to store challenge", "error", err)
		return ChallengeResult{}, err
	}

	res.Challenge = nonce
	return res, nil
}

// Authenticate consumes the challenge and checks response is a signature
// over it by the signing key selected by keyID. Every failure that depends
// on the account or the challenge is reported as ErrInvalidChallenge or
// ErrInvalidSignature.
func (s *AuthService) Authenticate(ctx context.Context, email, challenge, response, keyID string) (Session, error) {
	l := slogx.FromContext(ctx)
	email = normalizeEmail(email)

	if keyID == "" {
		keyID = KeyIDPassword
	}
	if keyID != KeyIDPassword && keyID != KeyIDPaper {
		return Session{}, &ValidationError{Fields: map[string]string{"keyid": "must be password or paper"}}
	}

	c, err := s.Store.Challenges().ConsumeChallenge(ctx, cryptox.FingerprintToken(challenge))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Session{}, ErrInvalidChallenge
		}
		return Session{}, err
	}
	if c.Email != email || !s.now().Before(c.ExpiresAt) {
		return Session{}, ErrInvalidChallenge
	}

	a, err := s.Store.Accounts().GetAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Session{}, ErrInvalidChallenge
		}
		return Session{}, err
	}

	pub := a.SigningKey
	if keyID == KeyIDPaper {
		pub = a.PaperSigningKey
	}
	if pub == "" {
		return Session{}, ErrInvalidSignature
	}

	nonce, err := s.Crypto.B64URLDecode(challenge)
	if err != nil {
		return Session{}, ErrInvalidChallenge
	}
	if err := s.Crypto.Verify(nonce, response, pub); err != nil {
		l.Info("login signature rejected", "account_id", a.ID, "keyid", keyID)
		return Session{}, ErrInvalidSignature
	}

	var queen domain.Client
	if a.QueenClientID != "" {
		queen, err = s.Store.Clients().GetClientByID(ctx, a.QueenClientID)
		if err != nil {
			l.Error("failed to load queen client", "account_id", a.ID, "error", err)
			return Session{}, err
		}
	}

	token, err := s.Tokens.IssueSession(a, keyID)
	if err != nil {
		l.Error("failed to issue session token", "account_id", a.ID, "error", err)
		return Session{}, err
	}

	l.Info("account authenticated", "account_id", a.ID, "keyid", keyID)
	return Session{Account: a, Queen: queen, Token: token}, nil
}

func (s *AuthService) decoySalt(label string) string {
	mac := hmac.New(sha256.New, []byte(s.Pepper))
	mac.Write([]byte(label))
	return s.Crypto.B64URLEncode(mac.Sum(nil)[:cryptox.SaltSize])
}

func (s *AuthService) ttl() time.Duration {
	if s.ChallengeTTL <= 0 {
		return DefaultChallengeTTL
	}
	return s.ChallengeTTL
}

func (s *AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}
