// Package storagesdk holds the storage client identity that the account SDK
// escrows. Only the surface the account flows need lives here: building a
// Config from credentials or from its serialized form, and wrapping it in a
// Client.
package storagesdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
)

const (
	// VersionLegacy configs predate client signing keys.
	VersionLegacy = 1

	// VersionCurrent configs carry an Ed25519 signing keypair.
	VersionCurrent = 2
)

// ErrInvalidConfig is returned when a config is missing required credentials.
var ErrInvalidConfig = errors.New("storagesdk: invalid client config")

// Config is the complete credential set of a storage client. Keys are
// base64url strings as produced by cryptox.
type Config struct {
	Version           int    `json:"version"`
	APIURL            string `json:"api_url"`
	APIKeyID          string `json:"api_key_id"`
	APISecret         string `json:"api_secret"`
	ClientID          string `json:"client_id"`
	PublicKey         string `json:"public_key"`
	PrivateKey        string `json:"private_key"`
	PublicSigningKey  string `json:"public_signing_key,omitempty"`
	PrivateSigningKey string `json:"private_signing_key,omitempty"`
}

// NewConfig builds a Config from positional credential fields. The version
// follows from whether a signing keypair is supplied.
func NewConfig(
	clientID, apiKeyID, apiSecret string,
	publicKey, privateKey string,
	apiURL string,
	publicSigningKey, privateSigningKey string,
) Config {
	cfg := Config{
		Version:           VersionLegacy,
		APIURL:            strings.TrimSuffix(apiURL, "/"),
		APIKeyID:          apiKeyID,
		APISecret:         apiSecret,
		ClientID:          clientID,
		PublicKey:         publicKey,
		PrivateKey:        privateKey,
		PublicSigningKey:  publicSigningKey,
		PrivateSigningKey: privateSigningKey,
	}
	if cfg.HasSigningKey() {
		cfg.Version = VersionCurrent
	}
	return cfg
}

// ParseConfig rehydrates a Config from its serialized form. This is a trust
// boundary: the payload came out of an encrypted backup or a caller's
// storage, so it is validated before use.
func ParseConfig(data []byte) (Config, error) {
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if cfg.Version == 0 {
		cfg.Version = VersionLegacy
		if cfg.HasSigningKey() {
			cfg.Version = VersionCurrent
		}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that every credential a client needs is present.
func (c Config) Validate() error {
	var missing []string
	for name, v := range map[string]string{
		"client_id":   c.ClientID,
		"api_key_id":  c.APIKeyID,
		"api_secret":  c.APISecret,
		"public_key":  c.PublicKey,
		"private_key": c.PrivateKey,
	} {
		if strings.TrimSpace(v) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		slices.Sort(missing)
		return fmt.Errorf("%w: missing %s", ErrInvalidConfig, strings.Join(missing, ", "))
	}
	if (c.PublicSigningKey == "") != (c.PrivateSigningKey == "") {
		return fmt.Errorf("%w: signing keypair is incomplete", ErrInvalidConfig)
	}
	return nil
}

// HasSigningKey reports whether the config carries a public signing key.
// Configs without one are legacy v1 clients and need migrating.
func (c Config) HasSigningKey() bool {
	return c.PublicSigningKey != ""
}

// WithAPIURL returns a copy pointed at apiURL. Backups may have been written
// against a different endpoint than the one currently in use.
func (c Config) WithAPIURL(apiURL string) Config {
	c.APIURL = strings.TrimSuffix(apiURL, "/")
	return c
}

// WithSigningKeys returns a copy carrying the given signing keypair, upgraded
// to the current version.
func (c Config) WithSigningKeys(public, private string) Config {
	c.PublicSigningKey = public
	c.PrivateSigningKey = private
	c.Version = VersionCurrent
	return c
}

// Serialize returns the JSON form accepted by ParseConfig.
func (c Config) Serialize() ([]byte, error) {
	return json.Marshal(c)
}
