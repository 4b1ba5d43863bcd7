package usecase

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pulse-metrics/domain/model"
)

func mkVideo(id string, createTime int64, views, likes, comments, shares int64, tags ...string) model.Video {
	return model.Video{
		ID:          id,
		Description: "video " + id,
		CreateTime:  createTime,
		Stats:       model.VideoStats{Views: views, Likes: likes, Comments: comments, Shares: shares},
		Hashtags:    tags,
	}
}

func TestEngagementRate(t *testing.T) {
	u := NewAnalyticsUsecase()

	rate := u.EngagementRate(model.VideoStats{Likes: 150, Comments: 30, Shares: 20}, 10000)
	assert.Equal(t, 2.0, rate)

	rate = u.EngagementRate(model.VideoStats{Likes: 1, Comments: 1, Shares: 1}, 7)
	assert.Equal(t, 42.86, rate)
}

func TestEngagementRateZeroFollowers(t *testing.T) {
	u := NewAnalyticsUsecase()

	rate := u.EngagementRate(model.VideoStats{Likes: 500, Comments: 100, Shares: 50}, 0)
	assert.Equal(t, 0.0, rate)
}

func TestVideoEngagement(t *testing.T) {
	u := NewAnalyticsUsecase()

	v := mkVideo("1", time.Now().Unix(), 1000, 40, 5, 5)
	assert.Equal(t, 5.0, u.VideoEngagement(&v))

	zero := mkVideo("2", time.Now().Unix(), 0, 40, 5, 5)
	assert.Equal(t, 0.0, u.VideoEngagement(&zero))
}

func TestBestPostingTimesSingleVideo(t *testing.T) {
	u := NewAnalyticsUsecase()

	// Wednesday 18:00 local, 5.00% engagement
	wednesday := time.Date(2024, time.January, 3, 18, 0, 0, 0, time.Local)
	videos := []model.Video{mkVideo("1", wednesday.Unix(), 1000, 40, 5, 5)}

	insights := u.BestPostingTimes(videos)

	assert.Len(t, insights.Heatmap, 24)
	row := insights.Heatmap[18]
	assert.Equal(t, "6pm", row.Hour)
	assert.Equal(t, 50, row.Wed)
	assert.Equal(t, 0, row.Tue)
	assert.Equal(t, 0, row.Thu)

	assert.Len(t, insights.BestTimes, 1)
	best := insights.BestTimes[0]
	assert.Equal(t, "Wed", best.Day)
	assert.Equal(t, "6:00 PM", best.Time)
	assert.Equal(t, "5.00%", best.Engagement)
	assert.Equal(t, 1, best.SampleSize)

	assert.Len(t, insights.BestDays, 3)
	assert.Equal(t, "Wed", insights.BestDays[0].Day)
}

func TestBestPostingTimesEmpty(t *testing.T) {
	u := NewAnalyticsUsecase()

	insights := u.BestPostingTimes(nil)

	assert.Len(t, insights.Heatmap, 24)
	for _, row := range insights.Heatmap {
		assert.Equal(t, 0, row.Sun+row.Mon+row.Tue+row.Wed+row.Thu+row.Fri+row.Sat)
	}
	assert.Empty(t, insights.BestTimes)
	for _, day := range insights.BestDays {
		assert.Equal(t, 0.0, day.AvgEngagement)
	}
}

func TestBestPostingTimesHourLabels(t *testing.T) {
	u := NewAnalyticsUsecase()

	insights := u.BestPostingTimes(nil)
	assert.Equal(t, "12am", insights.Heatmap[0].Hour)
	assert.Equal(t, "11am", insights.Heatmap[11].Hour)
	assert.Equal(t, "12pm", insights.Heatmap[12].Hour)
	assert.Equal(t, "11pm", insights.Heatmap[23].Hour)
}

func TestContentTrendsMidpointSplit(t *testing.T) {
	u := NewAnalyticsUsecase()

	// newest first after the internal sort: 3500, 4000, 2500 | 3000, 1500, 2000, 1000
	base := time.Now().Unix()
	videos := []model.Video{
		mkVideo("1", base-600, 3500, 100, 10, 5),
		mkVideo("2", base-1200, 4000, 100, 10, 5),
		mkVideo("3", base-1800, 2500, 100, 10, 5),
		mkVideo("4", base-2400, 3000, 100, 10, 5),
		mkVideo("5", base-3000, 1500, 100, 10, 5),
		mkVideo("6", base-3600, 2000, 100, 10, 5),
		mkVideo("7", base-4200, 1000, 100, 10, 5),
	}

	trends := u.ContentTrends(videos)

	// recent avg 3333.33 vs older avg 1875 -> +77.8%
	assert.Equal(t, model.TrendGrowing, trends.Trend)
	assert.Equal(t, 77.8, trends.Growth)
	assert.Equal(t, int64(3333), trends.AvgViews)
	assert.Equal(t, int64(1875), trends.AvgViewsOlder)

	assert.Len(t, trends.TopPerformers, 5)
	assert.Equal(t, "2", trends.TopPerformers[0].ID)
	assert.Equal(t, int64(4000), trends.TopPerformers[0].Views)
}

func TestContentTrendsSingleVideoIsNeutral(t *testing.T) {
	u := NewAnalyticsUsecase()

	videos := []model.Video{mkVideo("only", time.Now().Unix(), 5000, 100, 10, 5)}

	trends := u.ContentTrends(videos)

	assert.Equal(t, model.TrendNeutral, trends.Trend)
	assert.Equal(t, 0.0, trends.Growth)
	assert.Equal(t, int64(5000), trends.AvgViews)
	require.Len(t, trends.TopPerformers, 1)
	assert.Equal(t, "only", trends.TopPerformers[0].ID)
}

func TestContentTrendsEmpty(t *testing.T) {
	u := NewAnalyticsUsecase()

	trends := u.ContentTrends(nil)

	assert.Equal(t, model.TrendNeutral, trends.Trend)
	assert.Equal(t, 0.0, trends.Growth)
	assert.Equal(t, int64(0), trends.AvgViews)
	assert.NotNil(t, trends.TopPerformers)
	assert.Empty(t, trends.TopPerformers)
}

func TestContentTrendsDoesNotMutateInput(t *testing.T) {
	u := NewAnalyticsUsecase()

	base := time.Now().Unix()
	videos := []model.Video{
		mkVideo("old", base-7200, 100, 1, 0, 0),
		mkVideo("new", base, 200, 1, 0, 0),
	}

	first := u.ContentTrends(videos)
	second := u.ContentTrends(videos)

	assert.Equal(t, first, second)
	assert.Equal(t, "old", videos[0].ID)
	assert.Equal(t, "new", videos[1].ID)
}

func TestContentTrendsTruncatesDescriptions(t *testing.T) {
	u := NewAnalyticsUsecase()

	long := mkVideo("1", time.Now().Unix(), 100, 1, 0, 0)
	long.Description = strings.Repeat("a", 80)

	trends := u.ContentTrends([]model.Video{long})

	assert.Len(t, trends.TopPerformers, 1)
	desc := trends.TopPerformers[0].Description
	assert.True(t, strings.HasSuffix(desc, "..."))
	assert.Len(t, desc, 53)
}

func TestHashtagPerformance(t *testing.T) {
	u := NewAnalyticsUsecase()

	base := time.Now().Unix()
	videos := []model.Video{
		mkVideo("1", base, 1000, 40, 5, 5, "fyp", "dance"),
		mkVideo("2", base, 3000, 120, 15, 15, "fyp"),
		mkVideo("3", base, 500, 20, 2, 3, "dance"),
	}

	rankings := u.HashtagPerformance(videos)

	assert.Len(t, rankings.TopByViews, 2)
	assert.Equal(t, "fyp", rankings.TopByViews[0].Tag)
	assert.Equal(t, int64(2000), rankings.TopByViews[0].AvgViews)
	assert.Equal(t, 2, rankings.TopByViews[0].UseCount)
	assert.Equal(t, "5.00%", rankings.TopByViews[0].AvgEngagement)

	assert.Equal(t, "dance", rankings.TopByViews[1].Tag)
	assert.Equal(t, int64(750), rankings.TopByViews[1].AvgViews)

	// usage ties keep first-appearance order
	assert.Equal(t, "fyp", rankings.TopByUsage[0].Tag)
	assert.Equal(t, "dance", rankings.TopByUsage[1].Tag)
}

func TestHashtagPerformanceCaseSensitive(t *testing.T) {
	u := NewAnalyticsUsecase()

	base := time.Now().Unix()
	videos := []model.Video{
		mkVideo("1", base, 1000, 10, 0, 0, "FYP"),
		mkVideo("2", base, 2000, 10, 0, 0, "fyp"),
	}

	rankings := u.HashtagPerformance(videos)
	assert.Len(t, rankings.TopByViews, 2)
}

func TestPredictGrowthTooFewVideos(t *testing.T) {
	u := NewAnalyticsUsecase()

	base := time.Now().Unix()
	videos := []model.Video{
		mkVideo("1", base, 1000, 40, 5, 5),
		mkVideo("2", base, 1000, 40, 5, 5),
	}

	prediction := u.PredictGrowth(50000, videos, 30)

	assert.Equal(t, int64(50000), prediction.Predicted)
	assert.Equal(t, int64(0), prediction.Change)
	assert.Equal(t, 0.0, prediction.ChangePercent)
	assert.Equal(t, model.ConfidenceLow, prediction.Confidence)
	assert.Equal(t, "30 days", prediction.Timeframe)
}

func TestPredictGrowthHeuristic(t *testing.T) {
	u := NewAnalyticsUsecase()

	// 12 videos at 5% engagement each: daily rate 0.005
	base := time.Now().Unix()
	videos := make([]model.Video, 12)
	for i := range videos {
		videos[i] = mkVideo("v", base, 1000, 40, 5, 5)
	}

	prediction := u.PredictGrowth(10000, videos, 30)

	assert.Equal(t, int64(1500), prediction.Change)
	assert.Equal(t, int64(11500), prediction.Predicted)
	assert.Equal(t, 15.0, prediction.ChangePercent)
	assert.Equal(t, model.ConfidenceMedium, prediction.Confidence)
}

func TestPredictGrowthConfidenceHigh(t *testing.T) {
	u := NewAnalyticsUsecase()

	base := time.Now().Unix()
	videos := make([]model.Video, 25)
	for i := range videos {
		videos[i] = mkVideo("v", base, 1000, 40, 5, 5)
	}

	prediction := u.PredictGrowth(10000, videos, 30)
	assert.Equal(t, model.ConfidenceHigh, prediction.Confidence)
}

func TestCompareWithCompetitorsRanking(t *testing.T) {
	u := NewAnalyticsUsecase()

	profile := &model.Profile{
		Username: "creator",
		Stats:    model.ProfileStats{Followers: 5000},
	}
	videos := []model.Video{mkVideo("1", time.Now().Unix(), 1000, 40, 5, 5)}
	competitors := []model.CompetitorSummary{
		{Profile: model.Profile{Username: "big", Stats: model.ProfileStats{Followers: 10000}}, AvgViews: 5000, AvgEngagement: "3.00%"},
		{Profile: model.Profile{Username: "small", Stats: model.ProfileStats{Followers: 2000}}, AvgViews: 800},
	}

	report := u.CompareWithCompetitors(profile, videos, competitors)

	assert.Equal(t, "creator", report.User.Username)
	assert.Equal(t, int64(1000), report.User.AvgViews)
	assert.Equal(t, "5.00%", report.User.AvgEngagement)
	assert.Equal(t, 2, report.Rankings.Followers)

	assert.Len(t, report.Competitors, 2)
	assert.Equal(t, "0%", report.Competitors[1].AvgEngagement)
}

func TestCompareWithCompetitorsTieKeepsUserFirst(t *testing.T) {
	u := NewAnalyticsUsecase()

	profile := &model.Profile{Username: "creator", Stats: model.ProfileStats{Followers: 5000}}
	competitors := []model.CompetitorSummary{
		{Profile: model.Profile{Username: "rival", Stats: model.ProfileStats{Followers: 5000}}},
	}

	report := u.CompareWithCompetitors(profile, nil, competitors)
	assert.Equal(t, 1, report.Rankings.Followers)
}

func TestBuildInsights(t *testing.T) {
	u := NewAnalyticsUsecase()

	profile := &model.Profile{
		Username: "creator",
		Stats:    model.ProfileStats{Followers: 10000, Likes: 150},
	}
	base := time.Now().Unix()
	videos := []model.Video{
		mkVideo("1", base, 1000, 40, 20, 10),
		mkVideo("2", base, 3000, 120, 10, 20),
	}

	insights := u.BuildInsights(profile, videos)

	// (150 likes + 30 comments + 30 shares) / 10000 followers
	assert.Equal(t, 2.1, insights.EngagementRate)
	assert.Equal(t, int64(4000), insights.TotalViews)
	assert.Equal(t, int64(2000), insights.AvgViews)
	assert.Len(t, insights.PostingTimes.Heatmap, 24)
}

func TestBuildInsightsNilProfile(t *testing.T) {
	u := NewAnalyticsUsecase()

	insights := u.BuildInsights(nil, nil)

	assert.Equal(t, 0.0, insights.EngagementRate)
	assert.Equal(t, int64(0), insights.TotalViews)
}
