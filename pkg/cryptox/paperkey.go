package cryptox

import (
	"fmt"
	"strings"

	"github.com/tyler-smith/go-bip39"
)

// PaperKeyWords is the number of words in a generated paper key.
const PaperKeyWords = 12

// paperKeyEntropyBits gives exactly PaperKeyWords words from the BIP-39
// English list (128 bits + 4 checksum bits, 11 bits per word).
const paperKeyEntropyBits = 128

// GeneratePaperKey returns a fresh human readable recovery passphrase of
// PaperKeyWords lowercase words separated by single spaces.
func GeneratePaperKey() (string, error) {
	entropy, err := bip39.NewEntropy(paperKeyEntropyBits)
	if err != nil {
		return "", fmt.Errorf("cryptox: failed to generate paper key entropy: %w", err)
	}
	words, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", fmt.Errorf("cryptox: failed to encode paper key: %w", err)
	}
	return words, nil
}

// NormalizePaperKey canonicalises a paper key typed back in by a person:
// lowercase, single spaces, no surrounding whitespace. Keys are derived from
// the normalised form so "Apple  banana" and "apple banana" unlock the same
// account.
func NormalizePaperKey(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// IsPaperKey reports whether s (after normalisation) is a well formed paper
// key, including its checksum word.
func IsPaperKey(s string) bool {
	s = NormalizePaperKey(s)
	return len(strings.Fields(s)) == PaperKeyWords && bip39.IsMnemonicValid(s)
}
