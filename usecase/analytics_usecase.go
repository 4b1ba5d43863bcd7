package usecase

import (
	"fmt"
	"math"
	"sort"
	"time"

	"pulse-metrics/domain/model"
)

// IAnalytics defines the derivation operations over normalized video and
// profile records. All methods are pure and synchronous: no I/O, and defined
// empty results instead of errors for empty or partial input, because they
// run on the rendering path.
type IAnalytics interface {
	EngagementRate(stats model.VideoStats, followers int64) float64
	VideoEngagement(video *model.Video) float64
	BestPostingTimes(videos []model.Video) *model.PostingTimeInsights
	ContentTrends(videos []model.Video) *model.ContentTrend
	HashtagPerformance(videos []model.Video) *model.HashtagRankings
	PredictGrowth(followers int64, videos []model.Video, timeframeDays int) *model.GrowthPrediction
	CompareWithCompetitors(profile *model.Profile, videos []model.Video, competitors []model.CompetitorSummary) *model.ComparisonReport
	BuildInsights(profile *model.Profile, videos []model.Video) *model.AccountInsights
}

// AnalyticsUsecase implements the analytics derivation pipeline
type AnalyticsUsecase struct{}

// NewAnalyticsUsecase creates a new analytics usecase instance
func NewAnalyticsUsecase() IAnalytics {
	return &AnalyticsUsecase{}
}

var dayNames = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// round2 rounds to 2 decimal places; percentage outputs carry exactly this
// precision as part of the contract, not merely for display
func round2(v float64) float64 { return math.Round(v*100) / 100 }

func round1(v float64) float64 { return math.Round(v*10) / 10 }

func percent2(v float64) string { return fmt.Sprintf("%.2f%%", v) }

// EngagementRate computes (likes+comments+shares)/followers x 100. A zero
// follower count yields 0, never a division error.
func (u *AnalyticsUsecase) EngagementRate(stats model.VideoStats, followers int64) float64 {
	if followers <= 0 {
		return 0
	}
	engagements := stats.Likes + stats.Comments + stats.Shares
	return round2(float64(engagements) / float64(followers) * 100)
}

// VideoEngagement computes the same rate against the video's own view count
func (u *AnalyticsUsecase) VideoEngagement(video *model.Video) float64 {
	if video == nil || video.Stats.Views <= 0 {
		return 0
	}
	engagements := video.Stats.Likes + video.Stats.Comments + video.Stats.Shares
	return round2(float64(engagements) / float64(video.Stats.Views) * 100)
}

type timeBucket struct {
	total float64
	count int
}

// BestPostingTimes buckets every video into one of the 168 (day, hour) cells
// by its local creation time and derives the heatmap, the top 5 slots and the
// top 3 days. Empty buckets average 0 and are excluded from the rankings.
func (u *AnalyticsUsecase) BestPostingTimes(videos []model.Video) *model.PostingTimeInsights {
	var buckets [7][24]timeBucket

	for i := range videos {
		ts := time.Unix(videos[i].CreateTime, 0)
		day := int(ts.Weekday()) // 0 = Sunday
		hour := ts.Hour()
		buckets[day][hour].total += u.VideoEngagement(&videos[i])
		buckets[day][hour].count++
	}

	out := &model.PostingTimeInsights{
		Heatmap:   make([]model.HeatmapRow, 0, 24),
		BestTimes: []model.BestTimeSlot{},
		BestDays:  []model.BestDay{},
	}

	var dayTotals [7]timeBucket
	for hour := 0; hour < 24; hour++ {
		row := model.HeatmapRow{Hour: hourLabel(hour)}
		cells := [7]*int{&row.Sun, &row.Mon, &row.Tue, &row.Wed, &row.Thu, &row.Fri, &row.Sat}
		for day := 0; day < 7; day++ {
			cell := buckets[day][hour]
			avg := 0.0
			if cell.count > 0 {
				avg = cell.total / float64(cell.count)
			}
			*cells[day] = int(math.Round(avg * 10)) // scale for heatmap intensity
			dayTotals[day].total += avg
			if cell.count > 0 {
				dayTotals[day].count++
			}
		}
		out.Heatmap = append(out.Heatmap, row)
	}

	// Rank non-empty slots by average engagement. The sort is stable so ties
	// keep bucket order.
	type slot struct {
		day, hour  int
		avg        float64
		sampleSize int
	}
	var slots []slot
	for day := 0; day < 7; day++ {
		for hour := 0; hour < 24; hour++ {
			cell := buckets[day][hour]
			if cell.count > 0 {
				slots = append(slots, slot{day, hour, cell.total / float64(cell.count), cell.count})
			}
		}
	}
	sort.SliceStable(slots, func(i, j int) bool { return slots[i].avg > slots[j].avg })
	for i := 0; i < len(slots) && i < 5; i++ {
		out.BestTimes = append(out.BestTimes, model.BestTimeSlot{
			Day:        dayNames[slots[i].day],
			Time:       formatHour(slots[i].hour),
			Engagement: percent2(slots[i].avg),
			SampleSize: slots[i].sampleSize,
		})
	}

	days := make([]model.BestDay, 0, 7)
	for day := 0; day < 7; day++ {
		avg := 0.0
		if dayTotals[day].count > 0 {
			avg = dayTotals[day].total / float64(dayTotals[day].count)
		}
		days = append(days, model.BestDay{Day: dayNames[day], AvgEngagement: avg})
	}
	sort.SliceStable(days, func(i, j int) bool { return days[i].AvgEngagement > days[j].AvgEngagement })
	if len(days) > 3 {
		days = days[:3]
	}
	out.BestDays = days

	return out
}

func hourLabel(hour int) string {
	switch {
	case hour == 0:
		return "12am"
	case hour < 12:
		return fmt.Sprintf("%dam", hour)
	case hour == 12:
		return "12pm"
	default:
		return fmt.Sprintf("%dpm", hour-12)
	}
}

func formatHour(hour int) string {
	switch {
	case hour == 0:
		return "12:00 AM"
	case hour < 12:
		return fmt.Sprintf("%d:00 AM", hour)
	case hour == 12:
		return "12:00 PM"
	default:
		return fmt.Sprintf("%d:00 PM", hour-12)
	}
}

// ContentTrends splits the videos, sorted newest first, at the midpoint and
// classifies the recent half against the older half
func (u *AnalyticsUsecase) ContentTrends(videos []model.Video) *model.ContentTrend {
	if len(videos) == 0 {
		return &model.ContentTrend{Trend: model.TrendNeutral, TopPerformers: []model.TopPerformer{}}
	}

	sorted := make([]model.Video, len(videos))
	copy(sorted, videos)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].CreateTime > sorted[j].CreateTime })

	midpoint := len(sorted) / 2
	recent := sorted[:midpoint]
	older := sorted[midpoint:]

	recentAvg := avgViews(recent)
	olderAvg := avgViews(older)

	growth := 0.0
	if midpoint == 0 {
		// a single video has no older half to compare against
		recentAvg = olderAvg
	} else if olderAvg > 0 {
		growth = round1((recentAvg - olderAvg) / olderAvg * 100)
	}

	trend := model.TrendNeutral
	if growth > 10 {
		trend = model.TrendGrowing
	} else if growth < -10 {
		trend = model.TrendDeclining
	}

	byViews := make([]model.Video, len(sorted))
	copy(byViews, sorted)
	sort.SliceStable(byViews, func(i, j int) bool { return byViews[i].Stats.Views > byViews[j].Stats.Views })

	performers := make([]model.TopPerformer, 0, 5)
	for i := 0; i < len(byViews) && i < 5; i++ {
		v := byViews[i]
		performers = append(performers, model.TopPerformer{
			ID:          v.ID,
			Description: truncate(v.Description, 50),
			Views:       v.Stats.Views,
			Engagement:  percent2(u.VideoEngagement(&v)),
			Hashtags:    v.Hashtags,
		})
	}

	return &model.ContentTrend{
		Trend:         trend,
		Growth:        growth,
		AvgViews:      int64(math.Round(recentAvg)),
		AvgViewsOlder: int64(math.Round(olderAvg)),
		TopPerformers: performers,
	}
}

func avgViews(videos []model.Video) float64 {
	if len(videos) == 0 {
		return 0
	}
	var sum int64
	for i := range videos {
		sum += videos[i].Stats.Views
	}
	return float64(sum) / float64(len(videos))
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) > n {
		runes = runes[:n]
	}
	return string(runes) + "..."
}

type hashtagAgg struct {
	count           int
	totalViews      int64
	totalEngagement float64
}

// HashtagPerformance aggregates per-tag stats across all videos. Tags match
// verbatim, case-sensitive; a video contributes to every tag it lists.
func (u *AnalyticsUsecase) HashtagPerformance(videos []model.Video) *model.HashtagRankings {
	stats := make(map[string]*hashtagAgg)
	order := make([]string, 0) // first-appearance order keeps ranking ties deterministic

	for i := range videos {
		engagement := u.VideoEngagement(&videos[i])
		for _, tag := range videos[i].Hashtags {
			agg, ok := stats[tag]
			if !ok {
				agg = &hashtagAgg{}
				stats[tag] = agg
				order = append(order, tag)
			}
			agg.count++
			agg.totalViews += videos[i].Stats.Views
			agg.totalEngagement += engagement
		}
	}

	ranked := make([]model.HashtagStat, 0, len(order))
	for _, tag := range order {
		agg := stats[tag]
		ranked = append(ranked, model.HashtagStat{
			Tag:           tag,
			UseCount:      agg.count,
			AvgViews:      int64(math.Round(float64(agg.totalViews) / float64(agg.count))),
			AvgEngagement: percent2(agg.totalEngagement / float64(agg.count)),
		})
	}

	byViews := make([]model.HashtagStat, len(ranked))
	copy(byViews, ranked)
	sort.SliceStable(byViews, func(i, j int) bool { return byViews[i].AvgViews > byViews[j].AvgViews })
	if len(byViews) > 10 {
		byViews = byViews[:10]
	}

	byUsage := make([]model.HashtagStat, len(ranked))
	copy(byUsage, ranked)
	sort.SliceStable(byUsage, func(i, j int) bool { return byUsage[i].UseCount > byUsage[j].UseCount })
	if len(byUsage) > 10 {
		byUsage = byUsage[:10]
	}

	return &model.HashtagRankings{TopByViews: byViews, TopByUsage: byUsage}
}

// PredictGrowth projects follower change over the timeframe. The daily growth
// rate (avg engagement x 0.001) is a placeholder heuristic carried over from
// the product, not a fitted model.
func (u *AnalyticsUsecase) PredictGrowth(followers int64, videos []model.Video, timeframeDays int) *model.GrowthPrediction {
	if timeframeDays <= 0 {
		timeframeDays = 30
	}
	timeframe := fmt.Sprintf("%d days", timeframeDays)

	if len(videos) < 3 {
		return &model.GrowthPrediction{
			Predicted:  followers,
			Confidence: model.ConfidenceLow,
			Timeframe:  timeframe,
		}
	}

	var sum float64
	for i := range videos {
		sum += u.VideoEngagement(&videos[i])
	}
	avgEngagement := sum / float64(len(videos))

	dailyGrowthRate := avgEngagement * 0.001
	change := int64(math.Round(float64(followers) * dailyGrowthRate * float64(timeframeDays)))

	changePercent := 0.0
	if followers > 0 {
		changePercent = round1(float64(change) / float64(followers) * 100)
	}

	confidence := model.ConfidenceLow
	switch {
	case len(videos) >= 20:
		confidence = model.ConfidenceHigh
	case len(videos) >= 10:
		confidence = model.ConfidenceMedium
	}

	return &model.GrowthPrediction{
		Predicted:     followers + change,
		Change:        change,
		ChangePercent: changePercent,
		Confidence:    confidence,
		Timeframe:     timeframe,
	}
}

// CompareWithCompetitors ranks the caller's follower count among the supplied
// competitor summaries. Rank 1 is highest; on equal counts the first-seen
// entry wins the higher rank (descending stable sort).
func (u *AnalyticsUsecase) CompareWithCompetitors(profile *model.Profile, videos []model.Video, competitors []model.CompetitorSummary) *model.ComparisonReport {
	report := &model.ComparisonReport{
		Rankings: model.ComparisonRankings{Followers: 1, Engagement: 1, Views: 1},
	}
	if profile == nil {
		profile = &model.Profile{}
	}

	var engagementSum float64
	var viewSum int64
	for i := range videos {
		engagementSum += u.VideoEngagement(&videos[i])
		viewSum += videos[i].Stats.Views
	}
	userAvgEngagement := 0.0
	userAvgViews := 0.0
	if len(videos) > 0 {
		userAvgEngagement = engagementSum / float64(len(videos))
		userAvgViews = float64(viewSum) / float64(len(videos))
	}

	report.User = model.ComparisonEntry{
		Username:      profile.Username,
		Followers:     profile.Stats.Followers,
		AvgViews:      int64(math.Round(userAvgViews)),
		AvgEngagement: percent2(userAvgEngagement),
	}

	report.Competitors = make([]model.ComparisonEntry, 0, len(competitors))
	allFollowers := []int64{report.User.Followers}
	for _, comp := range competitors {
		avgEngagement := comp.AvgEngagement
		if avgEngagement == "" {
			avgEngagement = "0%"
		}
		report.Competitors = append(report.Competitors, model.ComparisonEntry{
			Username:      comp.Username,
			Followers:     comp.Stats.Followers,
			AvgViews:      comp.AvgViews,
			AvgEngagement: avgEngagement,
		})
		allFollowers = append(allFollowers, comp.Stats.Followers)
	}

	sort.SliceStable(allFollowers, func(i, j int) bool { return allFollowers[i] > allFollowers[j] })
	for i, count := range allFollowers {
		if count == report.User.Followers {
			report.Rankings.Followers = i + 1
			break
		}
	}

	return report
}

// BuildInsights assembles every derived block for one account into a single
// payload, the way the dashboard consumes it
func (u *AnalyticsUsecase) BuildInsights(profile *model.Profile, videos []model.Video) *model.AccountInsights {
	if profile == nil {
		profile = &model.Profile{}
	}

	var comments, shares, totalViews int64
	for i := range videos {
		comments += videos[i].Stats.Comments
		shares += videos[i].Stats.Shares
		totalViews += videos[i].Stats.Views
	}

	avg := int64(0)
	if len(videos) > 0 {
		avg = int64(math.Round(float64(totalViews) / float64(len(videos))))
	}

	return &model.AccountInsights{
		EngagementRate: u.EngagementRate(model.VideoStats{
			Likes:    profile.Stats.Likes,
			Comments: comments,
			Shares:   shares,
		}, profile.Stats.Followers),
		PostingTimes:     *u.BestPostingTimes(videos),
		ContentTrends:    *u.ContentTrends(videos),
		Hashtags:         *u.HashtagPerformance(videos),
		GrowthPrediction: *u.PredictGrowth(profile.Stats.Followers, videos, 30),
		TotalViews:       totalViews,
		AvgViews:         avg,
	}
}
