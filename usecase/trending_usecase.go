package usecase

import (
	"context"
	"fmt"

	"pulse-metrics/domain/model"
	"pulse-metrics/domain/repository"
	"pulse-metrics/infrastructure/logger"
)

// ITrending serves the discovery feeds. Plan-based truncation is applied by
// the caller, not here.
type ITrending interface {
	Sounds(ctx context.Context, region string) ([]model.TrendingSound, error)
	Hashtags(ctx context.Context, region string) ([]model.TrendingHashtag, error)
	Videos(ctx context.Context) ([]model.Video, error)
	SearchUsers(ctx context.Context, query string) ([]model.UserSearchResult, error)
	SearchVideos(ctx context.Context, query string) ([]model.Video, error)
}

// TrendingUseCase implements the discovery feeds over the provider with a
// read-through cache
type TrendingUseCase struct {
	tiktok repository.ITikTok
	cache  repository.IKeyValue
}

// NewTrendingUseCase creates a new trending use case instance
func NewTrendingUseCase(tiktok repository.ITikTok, cache repository.IKeyValue) ITrending {
	return &TrendingUseCase{tiktok: tiktok, cache: cache}
}

func (u *TrendingUseCase) Sounds(ctx context.Context, region string) ([]model.TrendingSound, error) {
	if region == "" {
		region = "US"
	}

	key := "trending-sounds:" + region
	var cached []model.TrendingSound
	if found, err := u.cache.Get(ctx, key, &cached); err == nil && found {
		return cached, nil
	}

	sounds, err := u.tiktok.GetTrendingSounds(ctx, region)
	if err != nil {
		return nil, fmt.Errorf("get trending sounds: %w", err)
	}

	if err := u.cache.Set(ctx, key, sounds, cacheTTL); err != nil {
		logger.GetLogger().WithField("key", key).WithError(err).Warn("trending cache write failed")
	}
	return sounds, nil
}

func (u *TrendingUseCase) Hashtags(ctx context.Context, region string) ([]model.TrendingHashtag, error) {
	if region == "" {
		region = "US"
	}

	key := "trending-hashtags:" + region
	var cached []model.TrendingHashtag
	if found, err := u.cache.Get(ctx, key, &cached); err == nil && found {
		return cached, nil
	}

	hashtags, err := u.tiktok.GetTrendingHashtags(ctx, region)
	if err != nil {
		return nil, fmt.Errorf("get trending hashtags: %w", err)
	}

	if err := u.cache.Set(ctx, key, hashtags, cacheTTL); err != nil {
		logger.GetLogger().WithField("key", key).WithError(err).Warn("trending cache write failed")
	}
	return hashtags, nil
}

func (u *TrendingUseCase) Videos(ctx context.Context) ([]model.Video, error) {
	key := "trending-videos"
	var cached []model.Video
	if found, err := u.cache.Get(ctx, key, &cached); err == nil && found {
		return cached, nil
	}

	videos, err := u.tiktok.GetTrendingVideos(ctx)
	if err != nil {
		return nil, fmt.Errorf("get trending videos: %w", err)
	}

	if err := u.cache.Set(ctx, key, videos, cacheTTL); err != nil {
		logger.GetLogger().WithField("key", key).WithError(err).Warn("trending cache write failed")
	}
	return videos, nil
}

func (u *TrendingUseCase) SearchUsers(ctx context.Context, query string) ([]model.UserSearchResult, error) {
	if query == "" {
		return nil, fmt.Errorf("%w: search query is required", model.ErrValidation)
	}
	results, err := u.tiktok.SearchUsers(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}
	return results, nil
}

func (u *TrendingUseCase) SearchVideos(ctx context.Context, query string) ([]model.Video, error) {
	if query == "" {
		return nil, fmt.Errorf("%w: search query is required", model.ErrValidation)
	}
	results, err := u.tiktok.SearchVideos(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search videos: %w", err)
	}
	return results, nil
}
