package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"pulse-metrics/domain/model"
)

// EnsureProfileSchema creates the billing projection table if not exists
func EnsureProfileSchema(db *sql.DB) error {
	ddl := `CREATE TABLE IF NOT EXISTS user_profiles (
        user_id TEXT PRIMARY KEY,
        stripe_customer_id TEXT,
        plan TEXT NOT NULL DEFAULT 'free',
        subscription_status TEXT NOT NULL DEFAULT 'active',
        updated_at TIMESTAMPTZ NOT NULL
    )`
	if _, err := db.Exec(ddl); err != nil {
		return fmt.Errorf("create user_profiles table: %w", err)
	}
	if _, err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_user_profiles_customer ON user_profiles(stripe_customer_id)`); err != nil {
		return fmt.Errorf("create idx_user_profiles_customer: %w", err)
	}
	return nil
}

// ProfileRepository persists the billing projection per user on PostgreSQL
type ProfileRepository struct{ db *sql.DB }

func NewProfileRepository(db *sql.DB) *ProfileRepository { return &ProfileRepository{db: db} }

// GetByUserID returns the projection row, nil when the user has none yet
func (r *ProfileRepository) GetByUserID(ctx context.Context, userID string) (*model.UserProfileRow, error) {
	if r.db == nil {
		return nil, nil
	}
	row := r.db.QueryRowContext(ctx,
		`SELECT user_id, COALESCE(stripe_customer_id, ''), plan, subscription_status, updated_at
		 FROM user_profiles WHERE user_id=$1`, userID)
	out := &model.UserProfileRow{}
	if err := row.Scan(&out.UserID, &out.StripeCustomerID, &out.Plan, &out.SubscriptionStatus, &out.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return out, nil
}

// AttachCustomer links a billing customer id to the user, creating the row
// when missing
func (r *ProfileRepository) AttachCustomer(ctx context.Context, userID, customerID string) error {
	if r.db == nil {
		return nil
	}
	q := `INSERT INTO user_profiles (user_id, stripe_customer_id, plan, subscription_status, updated_at)
	      VALUES ($1, $2, 'free', 'active', $3)
	      ON CONFLICT (user_id) DO UPDATE SET
	        stripe_customer_id=EXCLUDED.stripe_customer_id,
	        updated_at=EXCLUDED.updated_at`
	_, err := r.db.ExecContext(ctx, q, userID, customerID, time.Now().UTC())
	return err
}

func (r *ProfileRepository) UpdatePlanByUserID(ctx context.Context, userID, plan, status string) error {
	if r.db == nil {
		return nil
	}
	q := `INSERT INTO user_profiles (user_id, plan, subscription_status, updated_at)
	      VALUES ($1, $2, $3, $4)
	      ON CONFLICT (user_id) DO UPDATE SET
	        plan=EXCLUDED.plan,
	        subscription_status=EXCLUDED.subscription_status,
	        updated_at=EXCLUDED.updated_at`
	_, err := r.db.ExecContext(ctx, q, userID, plan, status, time.Now().UTC())
	return err
}

func (r *ProfileRepository) UpdatePlanByCustomerID(ctx context.Context, customerID, plan, status string) error {
	if r.db == nil {
		return nil
	}
	_, err := r.db.ExecContext(ctx,
		`UPDATE user_profiles SET plan=$1, subscription_status=$2, updated_at=$3 WHERE stripe_customer_id=$4`,
		plan, status, time.Now().UTC(), customerID)
	return err
}

func (r *ProfileRepository) UpdateStatusByCustomerID(ctx context.Context, customerID, status string) error {
	if r.db == nil {
		return nil
	}
	_, err := r.db.ExecContext(ctx,
		`UPDATE user_profiles SET subscription_status=$1, updated_at=$2 WHERE stripe_customer_id=$3`,
		status, time.Now().UTC(), customerID)
	return err
}
