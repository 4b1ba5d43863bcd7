package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"pulse-metrics/domain/model"
	"pulse-metrics/domain/repository"
)

type mockTikTok struct {
	mock.Mock
}

var _ repository.ITikTok = (*mockTikTok)(nil)

func (m *mockTikTok) GetUserProfile(ctx context.Context, username string) (*model.Profile, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Profile), args.Error(1)
}

func (m *mockTikTok) GetUserVideos(ctx context.Context, username string, count int) ([]model.Video, error) {
	args := m.Called(ctx, username, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Video), args.Error(1)
}

func (m *mockTikTok) GetTrendingVideos(ctx context.Context) ([]model.Video, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Video), args.Error(1)
}

func (m *mockTikTok) GetTrendingSounds(ctx context.Context, region string) ([]model.TrendingSound, error) {
	args := m.Called(ctx, region)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TrendingSound), args.Error(1)
}

func (m *mockTikTok) GetTrendingHashtags(ctx context.Context, region string) ([]model.TrendingHashtag, error) {
	args := m.Called(ctx, region)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TrendingHashtag), args.Error(1)
}

func (m *mockTikTok) SearchUsers(ctx context.Context, query string) ([]model.UserSearchResult, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.UserSearchResult), args.Error(1)
}

func (m *mockTikTok) SearchVideos(ctx context.Context, query string) ([]model.Video, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Video), args.Error(1)
}

func (m *mockTikTok) GetVideoDetails(ctx context.Context, videoID string) (*model.Video, error) {
	args := m.Called(ctx, videoID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Video), args.Error(1)
}

func (m *mockTikTok) GetHashtagVideos(ctx context.Context, hashtag string) ([]model.Video, error) {
	args := m.Called(ctx, hashtag)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Video), args.Error(1)
}

func testProfile(username string, followers int64) *model.Profile {
	return &model.Profile{
		ID:       "id-" + username,
		Username: username,
		Nickname: username,
		Stats:    model.ProfileStats{Followers: followers, Likes: 1000, Videos: 10},
	}
}

func TestDashboardProfileCachesReads(t *testing.T) {
	tiktok := &mockTikTok{}
	tiktok.On("GetUserProfile", mock.Anything, "creator").
		Return(testProfile("creator", 5000), nil).Once()
	u := NewDashboardUseCase(tiktok, newMemKV(), NewAnalyticsUsecase())

	first, err := u.Profile(context.Background(), "creator")
	assert.NoError(t, err)
	second, err := u.Profile(context.Background(), "creator")
	assert.NoError(t, err)

	assert.Equal(t, first.Username, second.Username)
	tiktok.AssertNumberOfCalls(t, "GetUserProfile", 1)
}

func TestDashboardProfileRequiresUsername(t *testing.T) {
	u := NewDashboardUseCase(&mockTikTok{}, newMemKV(), NewAnalyticsUsecase())

	_, err := u.Profile(context.Background(), "")
	assert.ErrorIs(t, err, model.ErrValidation)
}

func TestDashboardVideosDefaultCount(t *testing.T) {
	tiktok := &mockTikTok{}
	tiktok.On("GetUserVideos", mock.Anything, "creator", defaultVideoCount).
		Return([]model.Video{mkVideo("1", time.Now().Unix(), 100, 10, 0, 0)}, nil).Once()
	u := NewDashboardUseCase(tiktok, newMemKV(), NewAnalyticsUsecase())

	videos, err := u.Videos(context.Background(), "creator", 0)

	assert.NoError(t, err)
	assert.Len(t, videos, 1)
	tiktok.AssertExpectations(t)
}

func TestDashboardOverview(t *testing.T) {
	tiktok := &mockTikTok{}
	tiktok.On("GetUserProfile", mock.Anything, "creator").
		Return(testProfile("creator", 10000), nil)
	tiktok.On("GetUserVideos", mock.Anything, "creator", defaultVideoCount).
		Return([]model.Video{
			mkVideo("1", time.Now().Unix(), 1000, 40, 5, 5),
			mkVideo("2", time.Now().Unix(), 3000, 120, 15, 15),
		}, nil)
	u := NewDashboardUseCase(tiktok, newMemKV(), NewAnalyticsUsecase())

	overview, err := u.Overview(context.Background(), "creator", 0)

	assert.NoError(t, err)
	assert.Equal(t, "creator", overview.Profile.Username)
	assert.Len(t, overview.Videos, 2)
	assert.NotNil(t, overview.Insights)
	assert.Equal(t, int64(4000), overview.Insights.TotalViews)
}

func TestDashboardGrowth(t *testing.T) {
	tiktok := &mockTikTok{}
	tiktok.On("GetUserProfile", mock.Anything, "creator").
		Return(testProfile("creator", 10000), nil)
	tiktok.On("GetUserVideos", mock.Anything, "creator", defaultVideoCount).
		Return([]model.Video{mkVideo("1", time.Now().Unix(), 1000, 40, 5, 5)}, nil)
	u := NewDashboardUseCase(tiktok, newMemKV(), NewAnalyticsUsecase())

	growth, err := u.Growth(context.Background(), "creator", 30)

	assert.NoError(t, err)
	assert.Equal(t, int64(10000), growth.Predicted)
	assert.Equal(t, model.ConfidenceLow, growth.Confidence)
}

func TestDashboardHistoryWithoutStore(t *testing.T) {
	u := NewDashboardUseCase(&mockTikTok{}, newMemKV(), NewAnalyticsUsecase())

	history, err := u.History(context.Background(), "creator", 7)

	assert.NoError(t, err)
	assert.Empty(t, history)
}
