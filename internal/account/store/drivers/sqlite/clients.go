package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/accounts/internal/account/domain"
)

type clientsRepo struct {
	q dbtx
}

func (r *clientsRepo) GetClientByID(ctx context.Context, id string) (domain.Client, error) {
	var (
		c          domain.Client
		superseded sql.NullTime
	)
	err := r.q.QueryRowContext(ctx, `
		SELECT id, account_id, api_key_id, secret_hash, public_key, signing_key,
			queen, superseded_at, created_at, updated_at
		FROM clients WHERE id = ?`, id,
	).Scan(
		&c.ID, &c.AccountID, &c.APIKeyID, &c.SecretHash, &c.PublicKey, &c.SigningKey,
		&c.Queen, &superseded, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return domain.Client{}, mapNotFound(err)
	}
	c.SupersededAt = mapNullTimePtr(superseded)
	return c, nil
}

func (r *clientsRepo) CreateClient(ctx context.Context, c domain.Client) error {
	now := utc(c.CreatedAt)
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO clients (id, account_id, api_key_id, secret_hash, public_key,
			signing_key, queen, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.AccountID, c.APIKeyID, c.SecretHash, c.PublicKey,
		c.SigningKey, c.Queen, now, now,
	)
	return mapConflict(err)
}

func (r *clientsRepo) UpdateSigningKey(ctx context.Context, clientID, signingKey string) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE clients SET signing_key = ?, updated_at = ? WHERE id = ?`,
		signingKey, time.Now().UTC(), clientID,
	)
	return requireRow(res, err)
}

func (r *clientsRepo) SupersedeClient(ctx context.Context, clientID string) error {
	now := time.Now().UTC()
	res, err := r.q.ExecContext(ctx,
		`UPDATE clients SET queen = 0, superseded_at = ?, updated_at = ? WHERE id = ?`,
		now, now, clientID,
	)
	return requireRow(res, err)
}
