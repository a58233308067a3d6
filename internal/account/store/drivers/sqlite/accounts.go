package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/accounts/internal/account/domain"
)

type accountsRepo struct {
	q dbtx
}

const accountColumns = `id, email, name, auth_salt, enc_salt, signing_key,
	paper_auth_salt, paper_enc_salt, paper_signing_key, queen_client_id,
	created_at, updated_at`

func scanAccount(row *sql.Row) (domain.Account, error) {
	var (
		a     domain.Account
		queen sql.NullString
	)
	err := row.Scan(
		&a.ID, &a.Email, &a.Name,
		&a.AuthSalt, &a.EncSalt, &a.SigningKey,
		&a.PaperAuthSalt, &a.PaperEncSalt, &a.PaperSigningKey,
		&queen, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return domain.Account{}, mapNotFound(err)
	}
	a.QueenClientID = mapNullString(queen)
	return a, nil
}

func (r *accountsRepo) GetAccountByID(ctx context.Context, id string) (domain.Account, error) {
	return scanAccount(r.q.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id = ?`, id))
}

func (r *accountsRepo) GetAccountByEmail(ctx context.Context, email string) (domain.Account, error) {
	return scanAccount(r.q.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE email = ?`, email))
}

func (r *accountsRepo) CreateAccount(ctx context.Context, a domain.Account) error {
	now := utc(a.CreatedAt)
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO accounts (`+accountColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.Email, a.Name,
		a.AuthSalt, a.EncSalt, a.SigningKey,
		a.PaperAuthSalt, a.PaperEncSalt, a.PaperSigningKey,
		mapStringNull(a.QueenClientID), now, now,
	)
	return mapConflict(err)
}

func (r *accountsRepo) UpdateProfile(ctx context.Context, a domain.Account) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE accounts SET
			email = ?, name = ?,
			auth_salt = ?, enc_salt = ?, signing_key = ?,
			paper_auth_salt = ?, paper_enc_salt = ?, paper_signing_key = ?,
			updated_at = ?
		WHERE id = ?`,
		a.Email, a.Name,
		a.AuthSalt, a.EncSalt, a.SigningKey,
		a.PaperAuthSalt, a.PaperEncSalt, a.PaperSigningKey,
		time.Now().UTC(), a.ID,
	)
	return requireRow(res, mapConflict(err))
}

func (r *accountsRepo) SetQueenClient(ctx context.Context, accountID, clientID string) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE accounts SET queen_client_id = ?, updated_at = ? WHERE id = ?`,
		clientID, time.Now().UTC(), accountID,
	)
	return requireRow(res, err)
}
