package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"pulse-metrics/domain/model"
)

type mockCompetitorStore struct {
	mock.Mock
}

func (m *mockCompetitorStore) List(ctx context.Context, userID string) ([]string, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockCompetitorStore) Add(ctx context.Context, userID, username string) error {
	return m.Called(ctx, userID, username).Error(0)
}

func (m *mockCompetitorStore) Remove(ctx context.Context, userID, username string) error {
	return m.Called(ctx, userID, username).Error(0)
}

func (m *mockCompetitorStore) AllHandles(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func TestCompetitorAddStripsHandle(t *testing.T) {
	store := &mockCompetitorStore{}
	store.On("List", mock.Anything, "user-1").Return([]string{}, nil)
	store.On("Add", mock.Anything, "user-1", "rival").Return(nil)
	u := NewCompetitorUseCase(store, &mockTikTok{}, NewAnalyticsUsecase(), nil)

	err := u.Add(context.Background(), "user-1", " @rival ")

	assert.NoError(t, err)
	store.AssertExpectations(t)
}

func TestCompetitorAddDeduplicates(t *testing.T) {
	store := &mockCompetitorStore{}
	store.On("List", mock.Anything, "user-1").Return([]string{"rival"}, nil)
	u := NewCompetitorUseCase(store, &mockTikTok{}, NewAnalyticsUsecase(), nil)

	err := u.Add(context.Background(), "user-1", "@rival")

	assert.NoError(t, err)
	store.AssertNotCalled(t, "Add")
}

func TestCompetitorAddEmptyHandle(t *testing.T) {
	u := NewCompetitorUseCase(&mockCompetitorStore{}, &mockTikTok{}, NewAnalyticsUsecase(), nil)

	err := u.Add(context.Background(), "user-1", "@")
	assert.ErrorIs(t, err, model.ErrValidation)
}

func TestCompetitorDataSkipsFailures(t *testing.T) {
	store := &mockCompetitorStore{}
	store.On("List", mock.Anything, "user-1").Return([]string{"good", "bad"}, nil)

	tiktok := &mockTikTok{}
	tiktok.On("GetUserProfile", mock.Anything, "good").
		Return(testProfile("good", 8000), nil)
	tiktok.On("GetUserVideos", mock.Anything, "good", competitorVideoCount).
		Return([]model.Video{
			mkVideo("1", time.Now().Unix(), 1000, 40, 5, 5),
			mkVideo("2", time.Now().Unix(), 3000, 120, 15, 15),
		}, nil)
	tiktok.On("GetUserProfile", mock.Anything, "bad").
		Return(nil, assert.AnError)

	u := NewCompetitorUseCase(store, tiktok, NewAnalyticsUsecase(), nil)

	data, err := u.Data(context.Background(), "user-1")

	assert.NoError(t, err)
	assert.Len(t, data, 1)
	summary := data["good"]
	assert.Equal(t, int64(2000), summary.AvgViews)
	assert.Equal(t, "5.00%", summary.AvgEngagement)
}

func TestCompetitorCompareRanksUser(t *testing.T) {
	store := &mockCompetitorStore{}
	store.On("List", mock.Anything, "user-1").Return([]string{"rival"}, nil)

	tiktok := &mockTikTok{}
	tiktok.On("GetUserProfile", mock.Anything, "creator").
		Return(testProfile("creator", 5000), nil)
	tiktok.On("GetUserVideos", mock.Anything, "creator", defaultVideoCount).
		Return([]model.Video{mkVideo("1", time.Now().Unix(), 1000, 40, 5, 5)}, nil)
	tiktok.On("GetUserProfile", mock.Anything, "rival").
		Return(testProfile("rival", 10000), nil)
	tiktok.On("GetUserVideos", mock.Anything, "rival", competitorVideoCount).
		Return([]model.Video{mkVideo("2", time.Now().Unix(), 2000, 80, 10, 10)}, nil)

	dashboard := NewDashboardUseCase(tiktok, newMemKV(), NewAnalyticsUsecase())
	u := NewCompetitorUseCase(store, tiktok, NewAnalyticsUsecase(), dashboard)

	report, err := u.Compare(context.Background(), "user-1", "creator")

	assert.NoError(t, err)
	assert.Equal(t, "creator", report.User.Username)
	assert.Len(t, report.Competitors, 1)
	assert.Equal(t, 2, report.Rankings.Followers)
}
