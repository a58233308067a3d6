package app

import (
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/accounts/pkg/jwtx"
)

// InitAccountKeys generates the in-memory Ed25519 keys account tokens are
// signed with. Nothing is persisted: after a restart outstanding tokens stop
// verifying and SDK sessions log in again through their refresher.
func InitAccountKeys(cfg Config, logger *slog.Logger) (*jwtx.KeyManager, error) {
	logger.Info("initializing ephemeral key manager",
		"algorithm", jwtx.AlgorithmEdDSA,
		"num_keys", cfg.NumKeys,
	)

	keyManager, err := jwtx.NewEphemeralKeyManager(jwtx.KeyManagerOptions{
		Issuer:  cfg.Issuer,
		NumKeys: cfg.NumKeys,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize key manager: %w", err)
	}

	logger.Info("ephemeral signing keys generated",
		"algorithm", keyManager.Algorithm(),
		"num_keys", keyManager.NumSigners(),
		"issuer", cfg.Issuer,
	)
	return keyManager, nil
}
