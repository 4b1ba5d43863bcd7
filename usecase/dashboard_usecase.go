package usecase

import (
	"context"
	"fmt"
	"time"

	"pulse-metrics/domain/dto"
	"pulse-metrics/domain/model"
	"pulse-metrics/domain/repository"
	"pulse-metrics/infrastructure/logger"
)

// cacheTTL bounds staleness of provider reads on the dashboard path
const cacheTTL = 5 * time.Minute

const defaultVideoCount = 30

// IDashboard assembles the per-account dashboard: profile, recent videos and
// the derived insight blocks, with a read-through cache in front of the
// provider
type IDashboard interface {
	Profile(ctx context.Context, username string) (*model.Profile, error)
	Videos(ctx context.Context, username string, count int) ([]model.Video, error)
	Overview(ctx context.Context, username string, count int) (*dto.DashboardResponse, error)
	Insights(ctx context.Context, username string, count int) (*model.AccountInsights, error)
	Growth(ctx context.Context, username string, timeframeDays int) (*model.GrowthPrediction, error)
	// History returns daily stat snapshots within the retention window.
	History(ctx context.Context, username string, historyDays int) ([]model.StatsSnapshot, error)
}

// DashboardUseCase implements the dashboard assembly operations
type DashboardUseCase struct {
	tiktok    repository.ITikTok
	cache     repository.IKeyValue
	analytics IAnalytics
	snapshots repository.ISnapshotStore // optional
}

// NewDashboardUseCase creates a new dashboard use case instance
func NewDashboardUseCase(tiktok repository.ITikTok, cache repository.IKeyValue, analytics IAnalytics) IDashboard {
	return &DashboardUseCase{tiktok: tiktok, cache: cache, analytics: analytics}
}

// WithSnapshots enables stat history recording on profile reads (fluent)
func (u *DashboardUseCase) WithSnapshots(snapshots repository.ISnapshotStore) *DashboardUseCase {
	u.snapshots = snapshots
	return u
}

// Profile returns the account profile, served from cache when fresh
func (u *DashboardUseCase) Profile(ctx context.Context, username string) (*model.Profile, error) {
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", model.ErrValidation)
	}

	key := "profile:" + username
	var cached model.Profile
	if found, err := u.cache.Get(ctx, key, &cached); err == nil && found {
		return &cached, nil
	}

	profile, err := u.tiktok.GetUserProfile(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("get user profile: %w", err)
	}

	if err := u.cache.Set(ctx, key, profile, cacheTTL); err != nil {
		logger.GetLogger().WithField("key", key).WithError(err).Warn("profile cache write failed")
	}
	u.recordSnapshot(ctx, profile)
	return profile, nil
}

func (u *DashboardUseCase) recordSnapshot(ctx context.Context, profile *model.Profile) {
	if u.snapshots == nil || profile == nil {
		return
	}
	snap := &model.StatsSnapshot{
		Username:   profile.Username,
		Followers:  profile.Stats.Followers,
		Likes:      profile.Stats.Likes,
		Videos:     profile.Stats.Videos,
		CapturedAt: time.Now(),
	}
	if err := u.snapshots.Record(ctx, snap); err != nil {
		logger.GetLogger().WithField("username", profile.Username).
			WithError(err).Warn("stat snapshot write failed")
	}
}

// Videos returns the account's recent videos, served from cache when fresh
func (u *DashboardUseCase) Videos(ctx context.Context, username string, count int) ([]model.Video, error) {
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", model.ErrValidation)
	}
	if count <= 0 {
		count = defaultVideoCount
	}

	key := fmt.Sprintf("videos:%s:%d", username, count)
	var cached []model.Video
	if found, err := u.cache.Get(ctx, key, &cached); err == nil && found {
		return cached, nil
	}

	videos, err := u.tiktok.GetUserVideos(ctx, username, count)
	if err != nil {
		return nil, fmt.Errorf("get user videos: %w", err)
	}

	if err := u.cache.Set(ctx, key, videos, cacheTTL); err != nil {
		logger.GetLogger().WithField("key", key).WithError(err).Warn("video cache write failed")
	}
	return videos, nil
}

// Overview assembles the full dashboard payload for one account
func (u *DashboardUseCase) Overview(ctx context.Context, username string, count int) (*dto.DashboardResponse, error) {
	profile, err := u.Profile(ctx, username)
	if err != nil {
		return nil, err
	}
	videos, err := u.Videos(ctx, username, count)
	if err != nil {
		return nil, err
	}
	return &dto.DashboardResponse{
		Profile:  profile,
		Videos:   videos,
		Insights: u.analytics.BuildInsights(profile, videos),
	}, nil
}

// Insights returns only the derived blocks for one account
func (u *DashboardUseCase) Insights(ctx context.Context, username string, count int) (*model.AccountInsights, error) {
	overview, err := u.Overview(ctx, username, count)
	if err != nil {
		return nil, err
	}
	return overview.Insights, nil
}

// Growth returns a follower projection for one account
func (u *DashboardUseCase) Growth(ctx context.Context, username string, timeframeDays int) (*model.GrowthPrediction, error) {
	profile, err := u.Profile(ctx, username)
	if err != nil {
		return nil, err
	}
	videos, err := u.Videos(ctx, username, defaultVideoCount)
	if err != nil {
		return nil, err
	}
	return u.analytics.PredictGrowth(profile.Stats.Followers, videos, timeframeDays), nil
}

// History returns recorded stat snapshots inside the retention window. A zero
// historyDays means unlimited retention.
func (u *DashboardUseCase) History(ctx context.Context, username string, historyDays int) ([]model.StatsSnapshot, error) {
	if u.snapshots == nil {
		return []model.StatsSnapshot{}, nil
	}
	since := time.Time{}
	if historyDays > 0 {
		since = time.Now().AddDate(0, 0, -historyDays)
	}
	history, err := u.snapshots.History(ctx, username, since)
	if err != nil {
		return nil, fmt.Errorf("load stat history: %w", err)
	}
	return history, nil
}
