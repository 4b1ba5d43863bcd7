package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"pulse-metrics/domain/model"
)

// EnsureSnapshotSchema creates the account stat history table if not exists
func EnsureSnapshotSchema(db *sql.DB) error {
	ddl := `CREATE TABLE IF NOT EXISTS stat_snapshots (
        id BIGSERIAL PRIMARY KEY,
        username TEXT NOT NULL,
        followers BIGINT NOT NULL,
        likes BIGINT NOT NULL,
        videos BIGINT NOT NULL,
        total_views BIGINT NOT NULL DEFAULT 0,
        captured_at TIMESTAMPTZ NOT NULL
    )`
	if _, err := db.Exec(ddl); err != nil {
		return fmt.Errorf("create stat_snapshots table: %w", err)
	}
	if _, err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_stat_snapshots_username_captured ON stat_snapshots(username, captured_at)`); err != nil {
		return fmt.Errorf("create idx_stat_snapshots_username_captured: %w", err)
	}
	return nil
}

// SnapshotRepository keeps daily account stat readings on PostgreSQL. At most
// one snapshot per account per day is stored; a same-day write replaces the
// earlier reading.
type SnapshotRepository struct{ db *sql.DB }

func NewSnapshotRepository(db *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

func (r *SnapshotRepository) Record(ctx context.Context, snap *model.StatsSnapshot) error {
	if r.db == nil {
		return nil
	}
	if snap.CapturedAt.IsZero() {
		snap.CapturedAt = time.Now().UTC()
	}
	day := snap.CapturedAt.UTC().Truncate(24 * time.Hour)
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM stat_snapshots WHERE username=$1 AND captured_at >= $2 AND captured_at < $3`,
		snap.Username, day, day.Add(24*time.Hour))
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO stat_snapshots (username, followers, likes, videos, total_views, captured_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		snap.Username, snap.Followers, snap.Likes, snap.Videos, snap.TotalViews, snap.CapturedAt.UTC())
	return err
}

func (r *SnapshotRepository) History(ctx context.Context, username string, since time.Time) ([]model.StatsSnapshot, error) {
	if r.db == nil {
		return []model.StatsSnapshot{}, nil
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, username, followers, likes, videos, total_views, captured_at
		 FROM stat_snapshots WHERE username=$1 AND captured_at >= $2 ORDER BY captured_at`,
		username, since.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.StatsSnapshot, 0)
	for rows.Next() {
		var snap model.StatsSnapshot
		if err := rows.Scan(&snap.ID, &snap.Username, &snap.Followers, &snap.Likes, &snap.Videos, &snap.TotalViews, &snap.CapturedAt); err != nil {
			return nil, err
		}
		out = append(out, snap)
	}
	return out, rows.Err()
}

func (r *SnapshotRepository) Prune(ctx context.Context, username string, olderThan time.Time) (int64, error) {
	if r.db == nil {
		return 0, nil
	}
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM stat_snapshots WHERE username=$1 AND captured_at < $2`,
		username, olderThan.UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
