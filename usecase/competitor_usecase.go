package usecase

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"pulse-metrics/domain/model"
	"pulse-metrics/domain/repository"
	"pulse-metrics/infrastructure/logger"
)

const competitorVideoCount = 10

// ICompetitor manages the tracked competitor list per user and builds the
// comparison views over it
type ICompetitor interface {
	List(ctx context.Context, userID string) ([]string, error)
	Add(ctx context.Context, userID, username string) error
	Remove(ctx context.Context, userID, username string) error
	// Data fetches every tracked competitor's profile and recent videos
	// concurrently and aggregates them keyed by username. Competitors that
	// fail to load are skipped, not fatal.
	Data(ctx context.Context, userID string) (map[string]model.CompetitorSummary, error)
	Compare(ctx context.Context, userID, username string) (*model.ComparisonReport, error)
}

// CompetitorUseCase implements competitor tracking and comparison
type CompetitorUseCase struct {
	store     repository.ICompetitorStore
	tiktok    repository.ITikTok
	analytics IAnalytics
	dashboard IDashboard
}

// NewCompetitorUseCase creates a new competitor use case instance
func NewCompetitorUseCase(store repository.ICompetitorStore, tiktok repository.ITikTok, analytics IAnalytics, dashboard IDashboard) ICompetitor {
	return &CompetitorUseCase{store: store, tiktok: tiktok, analytics: analytics, dashboard: dashboard}
}

// normalizeHandle strips the leading "@" and surrounding whitespace
func normalizeHandle(username string) string {
	return strings.TrimPrefix(strings.TrimSpace(username), "@")
}

func (u *CompetitorUseCase) List(ctx context.Context, userID string) ([]string, error) {
	handles, err := u.store.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list competitors: %w", err)
	}
	if handles == nil {
		handles = []string{}
	}
	return handles, nil
}

func (u *CompetitorUseCase) Add(ctx context.Context, userID, username string) error {
	handle := normalizeHandle(username)
	if handle == "" {
		return fmt.Errorf("%w: competitor handle is required", model.ErrValidation)
	}

	existing, err := u.store.List(ctx, userID)
	if err != nil {
		return fmt.Errorf("list competitors: %w", err)
	}
	for _, h := range existing {
		if h == handle {
			return nil // already tracked
		}
	}

	if err := u.store.Add(ctx, userID, handle); err != nil {
		return fmt.Errorf("add competitor: %w", err)
	}
	return nil
}

func (u *CompetitorUseCase) Remove(ctx context.Context, userID, username string) error {
	handle := normalizeHandle(username)
	if handle == "" {
		return fmt.Errorf("%w: competitor handle is required", model.ErrValidation)
	}
	if err := u.store.Remove(ctx, userID, handle); err != nil {
		return fmt.Errorf("remove competitor: %w", err)
	}
	return nil
}

func (u *CompetitorUseCase) Data(ctx context.Context, userID string) (map[string]model.CompetitorSummary, error) {
	handles, err := u.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := make(map[string]model.CompetitorSummary, len(handles))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	for _, handle := range handles {
		handle := handle
		g.Go(func() error {
			summary, err := u.summarize(gctx, handle)
			if err != nil {
				logger.GetLogger().WithField("username", handle).
					WithError(err).Warn("competitor fetch failed, skipping")
				return nil
			}
			mu.Lock()
			result[handle] = *summary
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}

func (u *CompetitorUseCase) summarize(ctx context.Context, handle string) (*model.CompetitorSummary, error) {
	profile, err := u.tiktok.GetUserProfile(ctx, handle)
	if err != nil {
		return nil, err
	}
	videos, err := u.tiktok.GetUserVideos(ctx, handle, competitorVideoCount)
	if err != nil {
		return nil, err
	}

	var views int64
	var engagement float64
	for i := range videos {
		views += videos[i].Stats.Views
		engagement += u.analytics.VideoEngagement(&videos[i])
	}
	summary := &model.CompetitorSummary{Profile: *profile, AvgEngagement: "0.00%"}
	if len(videos) > 0 {
		summary.AvgViews = int64(math.Round(float64(views) / float64(len(videos))))
		summary.AvgEngagement = fmt.Sprintf("%.2f%%", engagement/float64(len(videos)))
	}
	return summary, nil
}

func (u *CompetitorUseCase) Compare(ctx context.Context, userID, username string) (*model.ComparisonReport, error) {
	profile, err := u.dashboard.Profile(ctx, username)
	if err != nil {
		return nil, err
	}
	videos, err := u.dashboard.Videos(ctx, username, defaultVideoCount)
	if err != nil {
		return nil, err
	}

	data, err := u.Data(ctx, userID)
	if err != nil {
		return nil, err
	}
	// sorted handles keep comparison output stable across map iteration
	handles := make([]string, 0, len(data))
	for handle := range data {
		handles = append(handles, handle)
	}
	sort.Strings(handles)
	competitors := make([]model.CompetitorSummary, 0, len(handles))
	for _, handle := range handles {
		competitors = append(competitors, data[handle])
	}

	return u.analytics.CompareWithCompetitors(profile, videos, competitors), nil
}
