package domain

import "time"

// Challenge is an outstanding login nonce. Only its fingerprint is stored;
// it is consumed by the first auth attempt that presents it.
type Challenge struct {
	ID        string
	Email     string
	Hash      string
	ExpiresAt time.Time
	CreatedAt time.Time
}
