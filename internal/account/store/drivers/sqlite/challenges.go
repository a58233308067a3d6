package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/accounts/internal/account/domain"
)

type challengesRepo struct {
	q dbtx
}

func (r *challengesRepo) CreateChallenge(ctx context.Context, c domain.Challenge) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO challenges (id, email, hash, expires_at, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		c.ID, c.Email, c.Hash, c.ExpiresAt.UTC(), utc(c.CreatedAt),
	)
	return mapConflict(err)
}

func (r *challengesRepo) ConsumeChallenge(ctx context.Context, hash string) (domain.Challenge, error) {
	var c domain.Challenge
	err := r.q.QueryRowContext(ctx, `
		DELETE FROM challenges WHERE hash = ?
		RETURNING id, email, hash, expires_at, created_at`, hash,
	).Scan(&c.ID, &c.Email, &c.Hash, &c.ExpiresAt, &c.CreatedAt)
	if err != nil {
		return domain.Challenge{}, mapNotFound(err)
	}
	return c, nil
}

func (r *challengesRepo) DeleteExpiredChallenges(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.q.ExecContext(ctx, `DELETE FROM challenges WHERE expires_at <= ?`, now.UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
