package cryptox_test

import (
	"crypto/ed25519"
	"testing"

	"github.com/aussiebroadwan/accounts/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

// Low round count keeps the suite fast; the derivation code path is the same.
const testRounds = 10

func TestSodiumDeriveSymmetricKey(t *testing.T) {
	t.Parallel()
	s := cryptox.NewSodium()

	salt, err := s.RandomBytes(cryptox.SaltSize)
	require.NoError(t, err)

	k1, err := s.DeriveSymmetricKey("hunter2", salt, testRounds)
	require.NoError(t, err)
	k2, err := s.DeriveSymmetricKey("hunter2", salt, testRounds)
	require.NoError(t, err)
	require.Equal(t, k1, k2, "derivation must be deterministic")

	raw, err := s.B64URLDecode(k1)
	require.NoError(t, err)
	require.Len(t, raw, cryptox.SymmetricKeySize)

	t.Run("different salt gives different key", func(t *testing.T) {
		other, err := s.RandomBytes(cryptox.SaltSize)
		require.NoError(t, err)
		k3, err := s.DeriveSymmetricKey("hunter2", other, testRounds)
		require.NoError(t, err)
		require.NotEqual(t, k1, k3)
	})

	t.Run("different rounds give different key", func(t *testing.T) {
		k4, err := s.DeriveSymmetricKey("hunter2", salt, testRounds+1)
		require.NoError(t, err)
		require.NotEqual(t, k1, k4)
	})

	t.Run("rejects non-positive rounds", func(t *testing.T) {
		_, err := s.DeriveSymmetricKey("hunter2", salt, 0)
		require.ErrorIs(t, err, cryptox.ErrInvalidRounds)
	})

	t.Run("rejects empty salt", func(t *testing.T) {
		_, err := s.DeriveSymmetricKey("hunter2", nil, testRounds)
		require.Error(t, err)
	})
}

func TestSodiumDeriveSigningKey(t *testing.T) {
	t.Parallel()
	s := cryptox.NewSodium()
	salt := []byte("0123456789abcdef")

	kp1, err := s.DeriveSigningKey("correct horse", salt, testRounds)
	require.NoError(t, err)
	kp2, err := s.DeriveSigningKey("correct horse", salt, testRounds)
	require.NoError(t, err)
	require.Equal(t, kp1, kp2)

	wrong, err := s.DeriveSigningKey("battery staple", salt, testRounds)
	require.NoError(t, err)
	require.NotEqual(t, kp1.PublicKey, wrong.PublicKey)

	pub, err := s.B64URLDecode(kp1.PublicKey)
	require.NoError(t, err)
	require.Len(t, pub, ed25519.PublicKeySize)
}

func TestSodiumSignVerify(t *testing.T) {
	t.Parallel()
	s := cryptox.NewSodium()

	kp, err := s.GenerateSigningKeypair()
	require.NoError(t, err)

	msg := []byte("challenge bytes")
	sig, err := s.Sign(msg, kp.PrivateKey)
	require.NoError(t, err)
	require.NoError(t, s.Verify(msg, sig, kp.PublicKey))

	t.Run("tampered message fails", func(t *testing.T) {
		require.ErrorIs(t, s.Verify([]byte("other"), sig, kp.PublicKey), cryptox.ErrInvalidSignature)
	})

	t.Run("other key fails", func(t *testing.T) {
		other, err := s.GenerateSigningKeypair()
		require.NoError(t, err)
		require.ErrorIs(t, s.Verify(msg, sig, other.PublicKey), cryptox.ErrInvalidSignature)
	})

	t.Run("garbage private key", func(t *testing.T) {
		_, err := s.Sign(msg, "not-a-key")
		require.ErrorIs(t, err, cryptox.ErrInvalidKey)
	})
}

func TestSodiumEncryptDecrypt(t *testing.T) {
	t.Parallel()
	s := cryptox.NewSodium()
	salt := []byte("fedcba9876543210")

	key, err := s.DeriveSymmetricKey("password", salt, testRounds)
	require.NoError(t, err)

	ct, err := s.EncryptString(`{"client_id":"abc"}`, key)
	require.NoError(t, err)

	ct2, err := s.EncryptString(`{"client_id":"abc"}`, key)
	require.NoError(t, err)
	require.NotEqual(t, ct, ct2, "nonce must be fresh per encryption")

	pt, err := s.DecryptString(ct, key)
	require.NoError(t, err)
	require.Equal(t, `{"client_id":"abc"}`, pt)

	t.Run("wrong key", func(t *testing.T) {
		wrong, err := s.DeriveSymmetricKey("not the password", salt, testRounds)
		require.NoError(t, err)
		_, err = s.DecryptString(ct, wrong)
		require.ErrorIs(t, err, cryptox.ErrDecryptionFailed)
	})

	t.Run("truncated ciphertext", func(t *testing.T) {
		_, err := s.DecryptString(ct[:10], key)
		require.ErrorIs(t, err, cryptox.ErrDecryptionFailed)
	})

	t.Run("invalid key encoding", func(t *testing.T) {
		_, err := s.EncryptString("x", "short")
		require.ErrorIs(t, err, cryptox.ErrInvalidKey)
	})
}

func TestSodiumGenerateKeypair(t *testing.T) {
	t.Parallel()
	s := cryptox.NewSodium()

	a, err := s.GenerateKeypair()
	require.NoError(t, err)
	b, err := s.GenerateKeypair()
	require.NoError(t, err)
	require.NotEqual(t, a.PublicKey, b.PublicKey)

	raw, err := s.B64URLDecode(a.PrivateKey)
	require.NoError(t, err)
	require.Len(t, raw, 32)
}

func TestSodiumB64URL(t *testing.T) {
	t.Parallel()
	s := cryptox.NewSodium()

	in := []byte{0xfb, 0xff, 0x00, 0x10}
	enc := s.B64URLEncode(in)
	require.NotContains(t, enc, "=")
	require.NotContains(t, enc, "+")

	out, err := s.B64URLDecode(enc)
	require.NoError(t, err)
	require.Equal(t, in, out)

	padded, err := s.B64URLDecode(enc + "==")
	require.NoError(t, err)
	require.Equal(t, in, padded)
}
