package accountsdk

import (
	"context"
	"fmt"

	"github.com/aussiebroadwan/accounts/pkg/storagesdk"
)

// migrateLegacyClient upgrades a storage client that predates signing keys.
// A fresh signing keypair is registered with the service and the upgraded
// config is sealed back into meta under metaKey, using the same enc key the
// backup was opened with. Other meta entries are written back unchanged.
//
// A client that already has a signing key is returned as is, so running the
// migration again is a no-op.
func (a *Account) migrateLegacyClient(
	ctx context.Context,
	api *API,
	meta ProfileMeta,
	metaKey string,
	cfg storagesdk.Config,
	encKey string,
) (storagesdk.Config, error) {
	if cfg.HasSigningKey() {
		return cfg, nil
	}

	keys, err := a.crypto.GenerateSigningKeypair()
	if err != nil {
		return storagesdk.Config{}, fmt.Errorf("failed to generate client signing keypair: %w", err)
	}
	if err := api.BackfillSigningKey(ctx, cfg.ClientID, SigningKey{Ed25519: keys.PublicKey}); err != nil {
		return storagesdk.Config{}, fmt.Errorf("failed to backfill client signing key: %w", err)
	}

	migrated := cfg.WithSigningKeys(keys.PublicKey, keys.PrivateKey)
	sealed, err := a.sealBackup(migrated, encKey)
	if err != nil {
		return storagesdk.Config{}, err
	}

	next := meta.Clone()
	next[metaKey] = sealed
	if err := api.PutProfileMeta(ctx, next); err != nil {
		return storagesdk.Config{}, fmt.Errorf("failed to store migrated backup: %w", err)
	}
	return migrated, nil
}
