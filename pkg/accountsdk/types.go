package accountsdk

import "encoding/json"

// ============================================================================
// Key Types
// ============================================================================

// LoginType selects which credential hierarchy a login or password change
// uses.
type LoginType string

const (
	// LoginStandard authenticates with the account password.
	LoginStandard LoginType = "standard"

	// LoginPaper authenticates with the paper key issued at registration.
	LoginPaper LoginType = "paper"
)

// Key id discriminators sent to the complete-challenge endpoint.
const (
	KeyIDPassword = "password"
	KeyIDPaper    = "paper"
)

// keyID maps a login type onto the server's key id discriminator.
func (t LoginType) keyID() string {
	if t == LoginPaper {
		return KeyIDPaper
	}
	return KeyIDPassword
}

// SigningKey wraps a base64url Ed25519 public key.
type SigningKey struct {
	Ed25519 string `json:"ed25519"`
}

// PublicKey wraps a base64url Curve25519 public key.
type PublicKey struct {
	Curve25519 string `json:"curve25519"`
}

// ============================================================================
// Account & Profile
// ============================================================================

// Profile is the account holder's public credential record. Salts are 16
// random bytes, base64url encoded, generated independently for each
// hierarchy.
type Profile struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`

	// Password hierarchy
	AuthSalt   string      `json:"auth_salt,omitempty"`
	EncSalt    string      `json:"enc_salt,omitempty"`
	SigningKey *SigningKey `json:"signing_key,omitempty"`

	// Paper key hierarchy
	PaperAuthSalt   string      `json:"paper_auth_salt,omitempty"`
	PaperEncSalt    string      `json:"paper_enc_salt,omitempty"`
	PaperSigningKey *SigningKey `json:"paper_signing_key,omitempty"`
}

// ClientCredentials identifies a storage client. APISecret is only returned
// when the client is created.
type ClientCredentials struct {
	ClientID  string `json:"client_id"`
	APIKeyID  string `json:"api_key_id,omitempty"`
	APISecret string `json:"api_secret,omitempty"`
}

// AccountInfo is the account record returned by registration and login.
type AccountInfo struct {
	AccountID string            `json:"account_id"`
	Client    ClientCredentials `json:"client"`
}

// AccountInit carries the public keys of the queen client created alongside
// a new account.
type AccountInit struct {
	Company    string     `json:"company,omitempty"`
	Plan       string     `json:"plan,omitempty"`
	PublicKey  PublicKey  `json:"public_key"`
	SigningKey SigningKey `json:"signing_key"`
}

// ============================================================================
// Profile Meta
// ============================================================================

// Profile meta keys used for backup escrow.
const (
	MetaBackupEnabled = "backupEnabled"
	MetaBackupClient  = "backupClient"
	MetaPaperBackup   = "paperBackup"

	// BackupEnabled is the value stored under MetaBackupEnabled.
	BackupEnabled = "enabled"
)

// ProfileMeta is the free form string map stored alongside a profile. Keys
// the SDK does not know about are preserved when it rewrites the map.
type ProfileMeta map[string]string

// Clone returns an independent copy of m.
func (m ProfileMeta) Clone() ProfileMeta {
	out := make(ProfileMeta, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// ============================================================================
// Request/Response Types
// ============================================================================

// RegisterRequest is the body of POST /v1/account/profile.
type RegisterRequest struct {
	Profile Profile     `json:"profile"`
	Account AccountInit `json:"account"`
}

// RegisterResponse is returned by POST /v1/account/profile.
type RegisterResponse struct {
	Token   string      `json:"token"`
	Account AccountInfo `json:"account"`
	Profile Profile     `json:"profile"`
}

// ChallengeRequest is the body of POST /v1/account/challenge.
type ChallengeRequest struct {
	Email string `json:"email"`
}

// ChallengeResponse carries a fresh login nonce and the auth salts needed to
// re-derive the signing key that must answer it.
type ChallengeResponse struct {
	Challenge     string `json:"challenge"`
	AuthSalt      string `json:"auth_salt"`
	PaperAuthSalt string `json:"paper_auth_salt"`
}

// AuthRequest is the body of POST /v1/account/auth.
type AuthRequest struct {
	Email     string `json:"email"`
	Challenge string `json:"challenge"`
	Response  string `json:"response"`
	KeyID     string `json:"keyid"`
}

// AuthResponse is returned by POST /v1/account/auth.
type AuthResponse struct {
	Token   string      `json:"token"`
	Account AccountInfo `json:"account"`
	Profile Profile     `json:"profile"`
}

// UpdateProfileRequest is the body of PATCH /v1/account/profile. Empty
// fields are left unchanged.
type UpdateProfileRequest struct {
	Profile Profile `json:"profile"`
}

// UpdateProfileResponse returns the stored profile after the update.
type UpdateProfileResponse struct {
	Profile Profile `json:"profile"`
}

// KeyBackfillRequest is the body of PATCH /v1/client/{id}/keys.
type KeyBackfillRequest struct {
	SigningKey SigningKey `json:"signing_key"`
}

// QueenKeys are the public keys of a replacement queen client.
type QueenKeys struct {
	PublicKey  PublicKey  `json:"public_key"`
	SigningKey SigningKey `json:"signing_key"`
}

// RollQueenRequest is the body of POST /v1/account/e3db/clients/queen.
type RollQueenRequest struct {
	Client QueenKeys `json:"client"`
}

// RecoveryRequest is the body of POST /v1/account/recover.
type RecoveryRequest struct {
	Email string `json:"email"`
}

// ============================================================================
// Realm Identities
// ============================================================================

// Identity is a realm identity as listed by the identity service.
type Identity struct {
	ID         int64               `json:"id"`
	ToznyID    string              `json:"tozny_id"`
	Username   string              `json:"name"`
	Email      string              `json:"email,omitempty"`
	FirstName  string              `json:"first_name,omitempty"`
	LastName   string              `json:"last_name,omitempty"`
	Active     bool                `json:"active"`
	Attributes map[string][]string `json:"attributes,omitempty"`
}

// IdentityPage is one page of a realm identity listing. Next is the offset
// of the following page, or zero when there are no more.
type IdentityPage struct {
	Identities []Identity
	Next       int
}

type rawIdentityPage struct {
	Identities []json.RawMessage `json:"identities"`
	Next       int               `json:"next"`
}

// ============================================================================
// Common Types
// ============================================================================

// ErrorResponse is the error body returned by the account service.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
}

// HealthResponse represents the response from health check endpoints.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks is the per-dependency status reported by /readyz.
type HealthChecks struct {
	Database string `json:"database"`
	Signer   string `json:"signer"`
}
