package accountsdk

import (
	"encoding/base64"
	"net/mail"
	"strings"
)

// saltSize matches cryptox.SaltSize. Server side validation uses it without
// pulling in a crypto provider.
const saltSize = 16

// ValidateEmail rejects anything that is not a bare address. Display names
// and surrounding whitespace are not accepted.
func ValidateEmail(email string) error {
	invalid := func(reason string) error {
		return &ValidationError{Field: "email", Reason: reason, Err: ErrInvalidEmail}
	}

	if email == "" {
		return invalid("email is required")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Name != "" || addr.Address != email {
		return invalid("must be a plain address like name@example.com")
	}
	if _, domain, _ := strings.Cut(addr.Address, "@"); !strings.Contains(domain, ".") {
		return invalid("domain must be fully qualified")
	}
	return nil
}

// Validate checks a registration request and returns field errors.
func (r *RegisterRequest) Validate() map[string]string {
	errs := make(map[string]string)

	if err := ValidateEmail(r.Profile.Email); err != nil {
		errs["profile.email"] = err.Error()
	}
	checkSalt(errs, "profile.auth_salt", r.Profile.AuthSalt)
	checkSalt(errs, "profile.enc_salt", r.Profile.EncSalt)
	checkSalt(errs, "profile.paper_auth_salt", r.Profile.PaperAuthSalt)
	checkSalt(errs, "profile.paper_enc_salt", r.Profile.PaperEncSalt)
	checkSigningKey(errs, "profile.signing_key", r.Profile.SigningKey)
	checkSigningKey(errs, "profile.paper_signing_key", r.Profile.PaperSigningKey)

	if r.Account.PublicKey.Curve25519 == "" {
		errs["account.public_key"] = "curve25519 public key is required"
	}
	if r.Account.SigningKey.Ed25519 == "" {
		errs["account.signing_key"] = "ed25519 signing key is required"
	}
	return errs
}

// Validate checks a profile update. Only fields that are present are
// checked, but each hierarchy must be replaced whole.
func (r *UpdateProfileRequest) Validate() map[string]string {
	errs := make(map[string]string)
	p := r.Profile

	if p.Email != "" {
		if err := ValidateEmail(p.Email); err != nil {
			errs["profile.email"] = err.Error()
		}
	}
	if p.AuthSalt != "" || p.EncSalt != "" || p.SigningKey != nil {
		checkSalt(errs, "profile.auth_salt", p.AuthSalt)
		checkSalt(errs, "profile.enc_salt", p.EncSalt)
		checkSigningKey(errs, "profile.signing_key", p.SigningKey)
	}
	if p.PaperAuthSalt != "" || p.PaperEncSalt != "" || p.PaperSigningKey != nil {
		checkSalt(errs, "profile.paper_auth_salt", p.PaperAuthSalt)
		checkSalt(errs, "profile.paper_enc_salt", p.PaperEncSalt)
		checkSigningKey(errs, "profile.paper_signing_key", p.PaperSigningKey)
	}
	return errs
}

func checkSalt(errs map[string]string, field, v string) {
	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(v, "="))
	if err != nil || len(raw) != saltSize {
		errs[field] = "must be 16 bytes of base64url"
	}
}

func checkSigningKey(errs map[string]string, field string, k *SigningKey) {
	if k == nil || k.Ed25519 == "" {
		errs[field] = "ed25519 key is required"
	}
}
