package jwtx

import (
	"fmt"
	"math/rand/v2"

	"github.com/aussiebroadwan/accounts/pkg/cryptox"
)

// AlgorithmEdDSA is the only algorithm account tokens are signed with.
const AlgorithmEdDSA = "EdDSA"

const (
	defaultNumKeys = 3
	maxNumKeys     = 10
)

// KeyManager holds the signing keys for one account service instance.
// Keys are generated at startup and never persisted, so a restart
// invalidates outstanding tokens and SDK sessions simply log in again.
type KeyManager struct {
	Verifier *EdDSAVerifier
	KeySet   *KeySet

	signers []Signer
}

// KeyManagerOptions configures the KeyManager.
type KeyManagerOptions struct {
	// Issuer is the iss claim placed in and required of tokens.
	Issuer string

	// Audience values required of tokens. Empty disables the check.
	Audience []string

	// NumKeys is how many signing keys to generate. Defaults to 3, capped at 10.
	NumKeys int
}

// NewEphemeralKeyManager generates in-memory Ed25519 signing keys with
// random key ids and wires them into a KeySet and verifier.
func NewEphemeralKeyManager(opts KeyManagerOptions) (*KeyManager, error) {
	if opts.Issuer == "" {
		return nil, fmt.Errorf("jwtx: Issuer is required")
	}

	numKeys := opts.NumKeys
	if numKeys <= 0 {
		numKeys = defaultNumKeys
	}
	numKeys = min(numKeys, maxNumKeys)

	keyset := NewKeySet()
	signers := make([]Signer, 0, numKeys)

	for i := range numKeys {
		kid, err := generateRandomKeyID()
		if err != nil {
			return nil, fmt.Errorf("jwtx: failed to generate key ID: %w", err)
		}

		pemBytes, err := cryptox.GenerateEd25519Key()
		if err != nil {
			return nil, fmt.Errorf("jwtx: failed to generate key %d: %w", i+1, err)
		}

		signer, err := NewSignerEdDSA(kid, pemBytes)
		if err != nil {
			return nil, fmt.Errorf("jwtx: failed to load key %d: %w", i+1, err)
		}

		if err := keyset.AddSigner(signer); err != nil {
			return nil, fmt.Errorf("jwtx: failed to add signer %d to keyset: %w", i+1, err)
		}
		signers = append(signers, signer)
	}

	return &KeyManager{
		Verifier: NewVerifierEdDSA(keyset, opts.Issuer, opts.Audience),
		KeySet:   keyset,
		signers:  signers,
	}, nil
}

// Algorithm returns the signing algorithm being used.
func (km *KeyManager) Algorithm() string {
	return AlgorithmEdDSA
}

// IsReady returns true if the KeyManager has valid keys loaded.
func (km *KeyManager) IsReady() bool {
	return km.KeySet.IsReady()
}

// GetSigner returns a randomly selected signer.
func (km *KeyManager) GetSigner() Signer {
	switch len(km.signers) {
	case 0:
		return nil
	case 1:
		return km.signers[0]
	}
	return km.signers[rand.IntN(len(km.signers))]
}

// NumSigners returns the number of signing keys.
func (km *KeyManager) NumSigners() int {
	return len(km.signers)
}

// generateRandomKeyID returns "accounts-" followed by a 128-bit token.
func generateRandomKeyID() (string, error) {
	token, err := cryptox.GenerateToken(cryptox.TokenSize128)
	if err != nil {
		return "", fmt.Errorf("failed to generate random key ID: %w", err)
	}
	return "accounts-" + token, nil
}
