package domain

import "time"

// Client is a storage client registered to an account. The queen client is
// the one whose configuration the account keeps escrowed in profile meta.
type Client struct {
	ID         string
	AccountID  string
	APIKeyID   string
	SecretHash string // argon2id of the API secret
	PublicKey  string // curve25519, base64url
	SigningKey string // ed25519, base64url; empty for legacy clients
	Queen      bool

	SupersededAt *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
