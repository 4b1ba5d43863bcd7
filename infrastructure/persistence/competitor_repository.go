package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// EnsureCompetitorSchema creates the tracked competitor table if not exists
func EnsureCompetitorSchema(db *sql.DB) error {
	ddl := `CREATE TABLE IF NOT EXISTS competitors (
        user_id TEXT NOT NULL,
        username TEXT NOT NULL,
        created_at TIMESTAMPTZ NOT NULL,
        PRIMARY KEY (user_id, username)
    )`
	if _, err := db.Exec(ddl); err != nil {
		return fmt.Errorf("create competitors table: %w", err)
	}
	return nil
}

// CompetitorRepository persists tracked competitor handles per user
type CompetitorRepository struct{ db *sql.DB }

func NewCompetitorRepository(db *sql.DB) *CompetitorRepository {
	return &CompetitorRepository{db: db}
}

func (r *CompetitorRepository) List(ctx context.Context, userID string) ([]string, error) {
	if r.db == nil {
		return []string{}, nil
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT username FROM competitors WHERE user_id=$1 ORDER BY created_at`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var username string
		if err := rows.Scan(&username); err != nil {
			return nil, err
		}
		out = append(out, username)
	}
	return out, rows.Err()
}

func (r *CompetitorRepository) Add(ctx context.Context, userID, username string) error {
	if r.db == nil {
		return nil
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO competitors (user_id, username, created_at) VALUES ($1, $2, $3)
		 ON CONFLICT (user_id, username) DO NOTHING`,
		userID, username, time.Now().UTC())
	return err
}

func (r *CompetitorRepository) AllHandles(ctx context.Context) ([]string, error) {
	if r.db == nil {
		return []string{}, nil
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT DISTINCT username FROM competitors ORDER BY username`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var username string
		if err := rows.Scan(&username); err != nil {
			return nil, err
		}
		out = append(out, username)
	}
	return out, rows.Err()
}

func (r *CompetitorRepository) Remove(ctx context.Context, userID, username string) error {
	if r.db == nil {
		return nil
	}
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM competitors WHERE user_id=$1 AND username=$2`, userID, username)
	return err
}
