package accountsdk

import (
	"context"
	"fmt"
)

// Refresher obtains a fresh token string for an expired Token.
type Refresher interface {
	Refresh(ctx context.Context) (string, error)
	Serialize() *RefresherData
}

// RefresherData is the serialized form of a KeyRefresher. Keys holds the
// private half of the auth signing keypair.
type RefresherData struct {
	Username string   `json:"username"`
	KeyID    string   `json:"keyid,omitempty"`
	Keys     *Keypair `json:"keys"`
}

// KeyRefresher re-authenticates by answering a fresh login challenge with a
// stored signing keypair.
type KeyRefresher struct {
	api      *API
	crypto   Crypto
	keys     Keypair
	username string
	keyID    string
}

// NewKeyRefresher binds keys to username. An empty keyID means
// KeyIDPassword. api should carry no token.
func NewKeyRefresher(api *API, crypto Crypto, keys Keypair, username, keyID string) *KeyRefresher {
	if keyID == "" {
		keyID = KeyIDPassword
	}
	return &KeyRefresher{
		api:      api,
		crypto:   crypto,
		keys:     keys,
		username: username,
		keyID:    keyID,
	}
}

// Profile performs a full challenge and response login.
func (r *KeyRefresher) Profile(ctx context.Context) (*AuthResponse, error) {
	ch, err := r.api.Challenge(ctx, r.username)
	if err != nil {
		return nil, err
	}
	return r.answer(ctx, ch.Challenge)
}

// answer signs challenge with the refresher's keys and completes the login.
func (r *KeyRefresher) answer(ctx context.Context, challenge string) (*AuthResponse, error) {
	nonce, err := r.crypto.B64URLDecode(challenge)
	if err != nil {
		return nil, fmt.Errorf("failed to decode challenge: %w", err)
	}

	sig, err := r.crypto.Sign(nonce, r.keys.PrivateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to sign challenge: %w", err)
	}

	return r.api.CompleteChallenge(ctx, AuthRequest{
		Email:     r.username,
		Challenge: challenge,
		Response:  sig,
		KeyID:     r.keyID,
	})
}

// Refresh returns the token from a fresh login.
func (r *KeyRefresher) Refresh(ctx context.Context) (string, error) {
	resp, err := r.Profile(ctx)
	if err != nil {
		return "", err
	}
	return resp.Token, nil
}

// Serialize returns the refresher's username, key id and keys.
func (r *KeyRefresher) Serialize() *RefresherData {
	keys := r.keys
	return &RefresherData{
		Username: r.username,
		KeyID:    r.keyID,
		Keys:     &keys,
	}
}

// refresherFromData rebuilds a KeyRefresher from untrusted serialized data.
func refresherFromData(d *RefresherData, api *API, crypto Crypto) (*KeyRefresher, error) {
	invalid := func(reason string) error {
		return &ValidationError{Field: "refresher", Reason: reason, Err: ErrInvalidRefresher}
	}

	switch {
	case d.Username == "":
		return nil, invalid("username is required")
	case d.Keys == nil || d.Keys.PublicKey == "" || d.Keys.PrivateKey == "":
		return nil, invalid("signing keys are required")
	}
	switch d.KeyID {
	case "", KeyIDPassword, KeyIDPaper:
	default:
		return nil, invalid(fmt.Sprintf("unknown keyid %q", d.KeyID))
	}
	if _, err := crypto.B64URLDecode(d.Keys.PrivateKey); err != nil {
		return nil, invalid("private key is not base64url")
	}

	return NewKeyRefresher(api, crypto, *d.Keys, d.Username, d.KeyID), nil
}
