package cryptox

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/sha512"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/nacl/box"
	"golang.org/x/crypto/nacl/secretbox"
	"golang.org/x/crypto/pbkdf2"
)

const (
	// SaltSize is the length of every key derivation salt in bytes.
	SaltSize = 16

	// SymmetricKeySize is the length of a secretbox key in bytes.
	SymmetricKeySize = 32

	nonceSize = 24
)

var (
	ErrDecryptionFailed = errors.New("cryptox: decryption failed")
	ErrInvalidKey       = errors.New("cryptox: invalid key")
	ErrInvalidSignature = errors.New("cryptox: invalid signature")
	ErrInvalidRounds    = errors.New("cryptox: key derivation rounds must be positive")
)

// Keypair is an asymmetric keypair with both halves base64url encoded
// (no padding). Signing keypairs are Ed25519, encryption keypairs are
// Curve25519.
type Keypair struct {
	PublicKey  string `json:"public_key"`
	PrivateKey string `json:"private_key"`
}

// Sodium implements the primitives the account SDK needs using the NaCl
// constructions from x/crypto:
//
//   - secretbox (XSalsa20-Poly1305) for symmetric string encryption
//   - box (Curve25519) for storage client encryption keys
//   - Ed25519 for signing, including keys derived from a password
//   - PBKDF2-HMAC-SHA512 for stretching passwords and paper keys
//
// A Sodium value is safe for concurrent use.
type Sodium struct {
	rand io.Reader
}

// NewSodium returns a provider backed by crypto/rand.
func NewSodium() *Sodium {
	return &Sodium{rand: rand.Reader}
}

// RandomBytes returns n bytes from the provider's entropy source.
func (s *Sodium) RandomBytes(n int) ([]byte, error) {
	if n <= 0 {
		return nil, fmt.Errorf("cryptox: random size must be positive, got %d", n)
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(s.rand, buf); err != nil {
		return nil, fmt.Errorf("cryptox: failed to read random bytes: %w", err)
	}
	return buf, nil
}

// DeriveSymmetricKey stretches secret with salt into a secretbox key.
func (s *Sodium) DeriveSymmetricKey(secret string, salt []byte, rounds int) (string, error) {
	raw, err := stretch(secret, salt, rounds)
	if err != nil {
		return "", err
	}
	return s.B64URLEncode(raw), nil
}

// DeriveSigningKey stretches secret with salt and uses the result as an
// Ed25519 seed. The same inputs always yield the same keypair, which is what
// lets a password prove possession of a previously registered public key.
func (s *Sodium) DeriveSigningKey(secret string, salt []byte, rounds int) (Keypair, error) {
	seed, err := stretch(secret, salt, rounds)
	if err != nil {
		return Keypair{}, err
	}
	priv := ed25519.NewKeyFromSeed(seed)
	return s.signingKeypair(priv), nil
}

// Sign returns a detached Ed25519 signature over message.
func (s *Sodium) Sign(message []byte, privateKey string) (string, error) {
	raw, err := s.B64URLDecode(privateKey)
	if err != nil || len(raw) != ed25519.PrivateKeySize {
		return "", fmt.Errorf("%w: signing key", ErrInvalidKey)
	}
	return s.B64URLEncode(ed25519.Sign(ed25519.PrivateKey(raw), message)), nil
}

// Verify checks a detached Ed25519 signature produced by Sign.
func (s *Sodium) Verify(message []byte, signature, publicKey string) error {
	pub, err := s.B64URLDecode(publicKey)
	if err != nil || len(pub) != ed25519.PublicKeySize {
		return fmt.Errorf("%w: verification key", ErrInvalidKey)
	}
	sig, err := s.B64URLDecode(signature)
	if err != nil || len(sig) != ed25519.SignatureSize {
		return ErrInvalidSignature
	}
	if !ed25519.Verify(ed25519.PublicKey(pub), message, sig) {
		return ErrInvalidSignature
	}
	return nil
}

// EncryptString seals plaintext under key. The output is
// base64url(nonce || secretbox) with a fresh random nonce per call.
func (s *Sodium) EncryptString(plaintext, key string) (string, error) {
	k, err := s.symmetricKey(key)
	if err != nil {
		return "", err
	}

	var nonce [nonceSize]byte
	if _, err := io.ReadFull(s.rand, nonce[:]); err != nil {
		return "", fmt.Errorf("cryptox: failed to generate nonce: %w", err)
	}

	sealed := secretbox.Seal(nonce[:], []byte(plaintext), &nonce, k)
	return s.B64URLEncode(sealed), nil
}

// DecryptString opens a value produced by EncryptString. Any failure to
// authenticate the ciphertext, including a wrong key, is ErrDecryptionFailed.
func (s *Sodium) DecryptString(ciphertext, key string) (string, error) {
	k, err := s.symmetricKey(key)
	if err != nil {
		return "", err
	}

	raw, err := s.B64URLDecode(ciphertext)
	if err != nil || len(raw) < nonceSize+secretbox.Overhead {
		return "", ErrDecryptionFailed
	}

	var nonce [nonceSize]byte
	copy(nonce[:], raw[:nonceSize])

	plain, ok := secretbox.Open(nil, raw[nonceSize:], &nonce, k)
	if !ok {
		return "", ErrDecryptionFailed
	}
	return string(plain), nil
}

// GenerateKeypair returns a random Curve25519 encryption keypair.
func (s *Sodium) GenerateKeypair() (Keypair, error) {
	pub, priv, err := box.GenerateKey(s.rand)
	if err != nil {
		return Keypair{}, fmt.Errorf("cryptox: failed to generate box keypair: %w", err)
	}
	return Keypair{
		PublicKey:  s.B64URLEncode(pub[:]),
		PrivateKey: s.B64URLEncode(priv[:]),
	}, nil
}

// GenerateSigningKeypair returns a random Ed25519 signing keypair.
func (s *Sodium) GenerateSigningKeypair() (Keypair, error) {
	_, priv, err := ed25519.GenerateKey(s.rand)
	if err != nil {
		return Keypair{}, fmt.Errorf("cryptox: failed to generate signing keypair: %w", err)
	}
	return s.signingKeypair(priv), nil
}

// B64URLEncode encodes b as unpadded base64url.
func (s *Sodium) B64URLEncode(b []byte) string {
	return base64.RawURLEncoding.EncodeToString(b)
}

// B64URLDecode decodes base64url, tolerating trailing padding written by
// other platform clients.
func (s *Sodium) B64URLDecode(v string) ([]byte, error) {
	return base64.RawURLEncoding.DecodeString(strings.TrimRight(v, "="))
}

func (s *Sodium) signingKeypair(priv ed25519.PrivateKey) Keypair {
	pub := priv.Public().(ed25519.PublicKey)
	return Keypair{
		PublicKey:  s.B64URLEncode(pub),
		PrivateKey: s.B64URLEncode(priv),
	}
}

func (s *Sodium) symmetricKey(key string) (*[SymmetricKeySize]byte, error) {
	raw, err := s.B64URLDecode(key)
	if err != nil || len(raw) != SymmetricKeySize {
		return nil, fmt.Errorf("%w: symmetric key", ErrInvalidKey)
	}
	var k [SymmetricKeySize]byte
	copy(k[:], raw)
	return &k, nil
}

// stretch runs PBKDF2-HMAC-SHA512 over secret and salt. Rounds are always
// supplied by the caller.
func stretch(secret string, salt []byte, rounds int) ([]byte, error) {
	if rounds <= 0 {
		return nil, ErrInvalidRounds
	}
	if len(salt) == 0 {
		return nil, errors.New("cryptox: salt is required")
	}
	return pbkdf2.Key([]byte(secret), salt, rounds, SymmetricKeySize, sha512.New), nil
}
