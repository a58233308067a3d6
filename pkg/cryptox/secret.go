package cryptox

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Argon2id parameters for hashing API secrets at rest.
const (
	memory      = 19 * 1024 // KiB
	iterations  = 2
	parallelism = 1
	hashLength  = 32
	pepperSize  = 32
)

// ErrSecretMismatch is returned by Hasher.Verify when the secret is wrong.
var ErrSecretMismatch = errors.New("cryptox: secret does not match")

// Hasher produces PHC formatted Argon2id hashes of server-side secrets
// (API secrets issued to storage clients). A pepper is mixed into every
// hash and lives outside the database.
type Hasher struct {
	pepper string
}

// NewHasher returns a Hasher using the given pepper. An empty pepper is
// allowed for tests.
func NewHasher(pepper string) *Hasher {
	return &Hasher{pepper: pepper}
}

// LoadPepper reads the pepper at path, creating the file with a random
// pepper the first time.
func LoadPepper(path string) (string, error) {
	path = filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return "", fmt.Errorf("cryptox: failed to create pepper dir: %w", err)
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		return strings.TrimSpace(string(data)), nil
	case !errors.Is(err, os.ErrNotExist):
		return "", fmt.Errorf("cryptox: failed to read pepper: %w", err)
	}

	pepper, err := GenerateToken(pepperSize)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(pepper), 0o600); err != nil {
		return "", fmt.Errorf("cryptox: failed to write pepper: %w", err)
	}
	return pepper, nil
}

// Hash returns "$argon2id$v=19$m=..,t=..,p=..$salt$hash".
func (h *Hasher) Hash(secret string) (string, error) {
	salt := make([]byte, SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	sum := argon2.IDKey([]byte(secret+h.pepper), salt, iterations, memory, parallelism, hashLength)

	return fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		memory,
		iterations,
		parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(sum),
	), nil
}

// Verify compares secret against a hash produced by Hash in constant time.
func (h *Hasher) Verify(secret, encoded string) error {
	// ["", "argon2id", "v=19", "m=X,t=Y,p=Z", "salt", "hash"]
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return errors.New("cryptox: invalid hash format")
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return errors.New("cryptox: unsupported argon2 version")
	}

	var mem, iters uint32
	var par uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &mem, &iters, &par); err != nil {
		return fmt.Errorf("cryptox: invalid hash parameters: %w", err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return fmt.Errorf("cryptox: invalid hash salt: %w", err)
	}
	want, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return fmt.Errorf("cryptox: invalid hash value: %w", err)
	}

	got := argon2.IDKey([]byte(secret+h.pepper), salt, iters, mem, par, uint32(len(want))) // #nosec G115
	if subtle.ConstantTimeCompare(got, want) != 1 {
		return ErrSecretMismatch
	}
	return nil
}
