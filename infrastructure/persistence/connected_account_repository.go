package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"pulse-metrics/domain/model"
)

// EnsureConnectedAccountSchema creates the TikTok token table if not exists
func EnsureConnectedAccountSchema(db *sql.DB) error {
	ddl := `CREATE TABLE IF NOT EXISTS connected_accounts (
        id BIGSERIAL PRIMARY KEY,
        user_id TEXT NOT NULL UNIQUE,
        open_id TEXT NOT NULL,
        username TEXT,
        access_token TEXT NOT NULL,
        refresh_token TEXT,
        expires_at TIMESTAMPTZ,
        scopes TEXT,
        created_at TIMESTAMPTZ NOT NULL,
        updated_at TIMESTAMPTZ NOT NULL
    )`
	if _, err := db.Exec(ddl); err != nil {
		return fmt.Errorf("create connected_accounts table: %w", err)
	}
	return nil
}

// ConnectedAccountRepository persists TikTok OAuth tokens per user
type ConnectedAccountRepository struct{ db *sql.DB }

func NewConnectedAccountRepository(db *sql.DB) *ConnectedAccountRepository {
	return &ConnectedAccountRepository{db: db}
}

func (r *ConnectedAccountRepository) Get(ctx context.Context, userID string) (*model.ConnectedAccount, error) {
	if r.db == nil {
		return nil, nil
	}
	row := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, open_id, COALESCE(username, ''), access_token, COALESCE(refresh_token, ''), expires_at, COALESCE(scopes, ''), created_at, updated_at
		 FROM connected_accounts WHERE user_id=$1`, userID)
	acc := &model.ConnectedAccount{}
	var exp sql.NullTime
	if err := row.Scan(&acc.ID, &acc.UserID, &acc.OpenID, &acc.Username, &acc.AccessToken, &acc.RefreshToken, &exp, &acc.Scopes, &acc.CreatedAt, &acc.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if exp.Valid {
		acc.ExpiresAt = &exp.Time
	}
	return acc, nil
}

func (r *ConnectedAccountRepository) Upsert(ctx context.Context, account *model.ConnectedAccount) error {
	if r.db == nil {
		return nil
	}
	now := time.Now().UTC()
	if account.CreatedAt.IsZero() {
		account.CreatedAt = now
	}
	account.UpdatedAt = now
	q := `INSERT INTO connected_accounts (user_id, open_id, username, access_token, refresh_token, expires_at, scopes, created_at, updated_at)
	      VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	      ON CONFLICT (user_id) DO UPDATE SET
	        open_id=EXCLUDED.open_id,
	        username=EXCLUDED.username,
	        access_token=EXCLUDED.access_token,
	        refresh_token=EXCLUDED.refresh_token,
	        expires_at=EXCLUDED.expires_at,
	        scopes=EXCLUDED.scopes,
	        updated_at=EXCLUDED.updated_at`
	_, err := r.db.ExecContext(ctx, q,
		account.UserID, account.OpenID, account.Username, account.AccessToken,
		account.RefreshToken, account.ExpiresAt, account.Scopes, account.CreatedAt, account.UpdatedAt)
	return err
}

func (r *ConnectedAccountRepository) Delete(ctx context.Context, userID string) error {
	if r.db == nil {
		return nil
	}
	_, err := r.db.ExecContext(ctx, `DELETE FROM connected_accounts WHERE user_id=$1`, userID)
	return err
}
