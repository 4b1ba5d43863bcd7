package repository

import (
	"context"
	"time"

	"pulse-metrics/domain/model"
)

// IUser provides user lookup for the auth middleware
type IUser interface {
	GetByUserName(ctx context.Context, userName string) (model.User, error)
}

// IProfileStore persists the billing projection per user. It is the only
// external mutation point for plan/status outside direct resolver refresh.
type IProfileStore interface {
	GetByUserID(ctx context.Context, userID string) (*model.UserProfileRow, error)
	AttachCustomer(ctx context.Context, userID, customerID string) error
	UpdatePlanByUserID(ctx context.Context, userID, plan, status string) error
	UpdatePlanByCustomerID(ctx context.Context, customerID, plan, status string) error
	UpdateStatusByCustomerID(ctx context.Context, customerID, status string) error
}

// ICompetitorStore persists the tracked competitor handles per user
type ICompetitorStore interface {
	List(ctx context.Context, userID string) ([]string, error)
	Add(ctx context.Context, userID, username string) error
	Remove(ctx context.Context, userID, username string) error
	// AllHandles lists every distinct tracked handle across users, used by
	// the background refresh.
	AllHandles(ctx context.Context) ([]string, error)
}

// ISnapshotStore keeps daily account stat readings used for history charts.
// Rows older than the retention window are pruned on write.
type ISnapshotStore interface {
	Record(ctx context.Context, snap *model.StatsSnapshot) error
	History(ctx context.Context, username string, since time.Time) ([]model.StatsSnapshot, error)
	Prune(ctx context.Context, username string, olderThan time.Time) (int64, error)
}

// IConnectedAccountStore persists TikTok OAuth tokens per user
type IConnectedAccountStore interface {
	Get(ctx context.Context, userID string) (*model.ConnectedAccount, error)
	Upsert(ctx context.Context, account *model.ConnectedAccount) error
	Delete(ctx context.Context, userID string) error
}
