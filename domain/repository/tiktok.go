package repository

import (
	"context"

	"pulse-metrics/domain/model"
)

// ITikTok defines the data provider operations the dashboard consumes. Every
// implementation must return a deterministic fallback shape when the provider
// is unconfigured so the analytics engine always receives well-formed input.
type ITikTok interface {
	GetUserProfile(ctx context.Context, username string) (*model.Profile, error)
	GetUserVideos(ctx context.Context, username string, count int) ([]model.Video, error)
	GetTrendingVideos(ctx context.Context) ([]model.Video, error)
	GetTrendingSounds(ctx context.Context, region string) ([]model.TrendingSound, error)
	GetTrendingHashtags(ctx context.Context, region string) ([]model.TrendingHashtag, error)
	SearchUsers(ctx context.Context, query string) ([]model.UserSearchResult, error)
	SearchVideos(ctx context.Context, query string) ([]model.Video, error)
	GetVideoDetails(ctx context.Context, videoURL string) (*model.Video, error)
	GetHashtagVideos(ctx context.Context, hashtag string) ([]model.Video, error)
}
