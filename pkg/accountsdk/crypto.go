package accountsdk

import "github.com/aussiebroadwan/accounts/pkg/cryptox"

// Keypair is an asymmetric keypair with base64url encoded halves.
type Keypair = cryptox.Keypair

// Crypto is the provider the credential flows run on. The flows only decide
// which primitive is called, with which inputs and in what order; the
// primitives themselves belong to the provider. cryptox.Sodium is the stock
// implementation.
type Crypto interface {
	RandomBytes(n int) ([]byte, error)

	// DeriveSymmetricKey and DeriveSigningKey stretch secret with salt.
	// Rounds is always passed explicitly.
	DeriveSymmetricKey(secret string, salt []byte, rounds int) (string, error)
	DeriveSigningKey(secret string, salt []byte, rounds int) (Keypair, error)

	Sign(message []byte, privateKey string) (string, error)

	EncryptString(plaintext, key string) (string, error)
	DecryptString(ciphertext, key string) (string, error)

	GenerateKeypair() (Keypair, error)
	GenerateSigningKeypair() (Keypair, error)

	B64URLEncode(b []byte) string
	B64URLDecode(s string) ([]byte, error)
}

var _ Crypto = (*cryptox.Sodium)(nil)
