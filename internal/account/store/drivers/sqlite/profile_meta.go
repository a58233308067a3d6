package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"
)

// profileMetaRepo keeps each account's meta map as one JSON document so a
// replace is a single atomic upsert.
type profileMetaRepo struct {
	q dbtx
}

func (r *profileMetaRepo) GetMeta(ctx context.Context, accountID string) (map[string]string, error) {
	var data string
	err := r.q.QueryRowContext(ctx,
		`SELECT data FROM profile_meta WHERE account_id = ?`, accountID,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, err
	}

	meta := map[string]string{}
	if err := json.Unmarshal([]byte(data), &meta); err != nil {
		return nil, err
	}
	return meta, nil
}

func (r *profileMetaRepo) ReplaceMeta(ctx context.Context, accountID string, meta map[string]string) error {
	if meta == nil {
		meta = map[string]string{}
	}
	data, err := json.Marshal(meta)
	if err != nil {
		return err
	}

	_, err = r.q.ExecContext(ctx, `
		INSERT INTO profile_meta (account_id, data, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(account_id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		accountID, string(data), time.Now().UTC(),
	)
	return err
}
