package accountsdk

import (
	"fmt"

	"github.com/aussiebroadwan/accounts/pkg/cryptox"
	"github.com/aussiebroadwan/accounts/pkg/storagesdk"
)

// keySet is one credential hierarchy: the salts and what they derive from a
// single secret.
type keySet struct {
	authSalt []byte
	encSalt  []byte
	encKey   string
	auth     Keypair
}

// credentials are the password and paper key hierarchies of an account.
type credentials struct {
	password keySet
	paper    keySet
}

// newKeySet draws fresh salts and derives the enc key and auth keypair for
// secret.
func (a *Account) newKeySet(secret string) (keySet, error) {
	authSalt, err := a.crypto.RandomBytes(cryptox.SaltSize)
	if err != nil {
		return keySet{}, fmt.Errorf("failed to generate auth salt: %w", err)
	}
	encSalt, err := a.crypto.RandomBytes(cryptox.SaltSize)
	if err != nil {
		return keySet{}, fmt.Errorf("failed to generate enc salt: %w", err)
	}

	encKey, err := a.crypto.DeriveSymmetricKey(secret, encSalt, a.rounds)
	if err != nil {
		return keySet{}, fmt.Errorf("failed to derive enc key: %w", err)
	}
	auth, err := a.crypto.DeriveSigningKey(secret, authSalt, a.rounds)
	if err != nil {
		return keySet{}, fmt.Errorf("failed to derive auth key: %w", err)
	}

	return keySet{authSalt: authSalt, encSalt: encSalt, encKey: encKey, auth: auth}, nil
}

// newCredentials derives both hierarchies. All four salts are drawn
// independently.
func (a *Account) newCredentials(password, paperKey string) (*credentials, error) {
	pw, err := a.newKeySet(password)
	if err != nil {
		return nil, err
	}
	paper, err := a.newKeySet(paperKey)
	if err != nil {
		return nil, err
	}
	return &credentials{password: pw, paper: paper}, nil
}

// passwordProfile is the profile fragment for the password hierarchy.
func (a *Account) passwordProfile(ks keySet) Profile {
	return Profile{
		AuthSalt:   a.crypto.B64URLEncode(ks.authSalt),
		EncSalt:    a.crypto.B64URLEncode(ks.encSalt),
		SigningKey: &SigningKey{Ed25519: ks.auth.PublicKey},
	}
}

// profile is the full credential profile for both hierarchies.
func (a *Account) profile(name, email string, c *credentials) Profile {
	p := a.passwordProfile(c.password)
	p.Name = name
	p.Email = email
	p.PaperAuthSalt = a.crypto.B64URLEncode(c.paper.authSalt)
	p.PaperEncSalt = a.crypto.B64URLEncode(c.paper.encSalt)
	p.PaperSigningKey = &SigningKey{Ed25519: c.paper.auth.PublicKey}
	return p
}

// queenKeys generates the encryption and signing keypairs of a new queen
// client.
func (a *Account) queenKeys() (enc, sig Keypair, err error) {
	enc, err = a.crypto.GenerateKeypair()
	if err != nil {
		return Keypair{}, Keypair{}, fmt.Errorf("failed to generate client keypair: %w", err)
	}
	sig, err = a.crypto.GenerateSigningKeypair()
	if err != nil {
		return Keypair{}, Keypair{}, fmt.Errorf("failed to generate client signing keypair: %w", err)
	}
	return enc, sig, nil
}

// ============================================================================
// Backup Escrow
// ============================================================================

// sealBackup serializes cfg and encrypts it under key.
func (a *Account) sealBackup(cfg storagesdk.Config, key string) (string, error) {
	data, err := cfg.Serialize()
	if err != nil {
		return "", err
	}
	ct, err := a.crypto.EncryptString(string(data), key)
	if err != nil {
		return "", fmt.Errorf("failed to encrypt backup client: %w", err)
	}
	return ct, nil
}

// openBackup decrypts and parses a sealed backup.
func (a *Account) openBackup(ciphertext, key string) (storagesdk.Config, error) {
	if ciphertext == "" {
		return storagesdk.Config{}, fmt.Errorf("%w: no backup stored", ErrCorruptBackupPayload)
	}

	plain, err := a.crypto.DecryptString(ciphertext, key)
	if err != nil {
		return storagesdk.Config{}, fmt.Errorf("failed to decrypt backup client: %w", err)
	}

	cfg, err := storagesdk.ParseConfig([]byte(plain))
	if err != nil {
		return storagesdk.Config{}, fmt.Errorf("%w: %w", ErrCorruptBackupPayload, err)
	}
	return cfg, nil
}

// backupMeta seals cfg under both enc keys into meta. Keys already in meta
// are kept.
func (a *Account) backupMeta(meta ProfileMeta, cfg storagesdk.Config, encKey, paperEncKey string) (ProfileMeta, error) {
	backup, err := a.sealBackup(cfg, encKey)
	if err != nil {
		return nil, err
	}
	paper, err := a.sealBackup(cfg, paperEncKey)
	if err != nil {
		return nil, err
	}

	out := meta.Clone()
	out[MetaBackupEnabled] = BackupEnabled
	out[MetaBackupClient] = backup
	out[MetaPaperBackup] = paper
	return out, nil
}

// decodeSalt decodes a profile salt, treating anything unusable as a corrupt
// payload.
func (a *Account) decodeSalt(field, value string) ([]byte, error) {
	if value == "" {
		return nil, fmt.Errorf("%w: missing %s", ErrCorruptBackupPayload, field)
	}
	salt, err := a.crypto.B64URLDecode(value)
	if err != nil || len(salt) == 0 {
		return nil, fmt.Errorf("%w: malformed %s", ErrCorruptBackupPayload, field)
	}
	return salt, nil
}
