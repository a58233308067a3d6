package domain

import "time"

// Account is the stored profile of an account holder. The service never
// sees a password or paper key, only the salts and public signing keys
// derived from them on the client.
type Account struct {
	ID    string
	Email string // lowercased
	Name  string

	AuthSalt   string
	EncSalt    string
	SigningKey string // ed25519, base64url

	PaperAuthSalt   string
	PaperEncSalt    string
	PaperSigningKey string

	QueenClientID string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ProfileUpdate carries the fields of a profile change. Empty fields are
// left as they are.
type ProfileUpdate struct {
	Name  string
	Email string

	AuthSalt   string
	EncSalt    string
	SigningKey string

	PaperAuthSalt   string
	PaperEncSalt    string
	PaperSigningKey string
}

// Apply returns a copy of a with u applied.
func (u ProfileUpdate) Apply(a Account) Account {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&a.Name, u.Name)
	set(&a.Email, u.Email)
	set(&a.AuthSalt, u.AuthSalt)
	set(&a.EncSalt, u.EncSalt)
	set(&a.SigningKey, u.SigningKey)
	set(&a.PaperAuthSalt, u.PaperAuthSalt)
	set(&a.PaperEncSalt, u.PaperEncSalt)
	set(&a.PaperSigningKey, u.PaperSigningKey)
	return a
}
