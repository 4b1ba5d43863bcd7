package model

// HeatmapRow is one hour-of-day row of the posting-time heatmap. Cell values
// are the average engagement for that (day, hour) bucket scaled by 10 and
// rounded, so the UI can map them straight to color intensity.
type HeatmapRow struct {
	Hour string `json:"hour"` // "12am", "1am", ... "11pm"
	Sun  int    `json:"sun"`
	Mon  int    `json:"mon"`
	Tue  int    `json:"tue"`
	Wed  int    `json:"wed"`
	Thu  int    `json:"thu"`
	Fri  int    `json:"fri"`
	Sat  int    `json:"sat"`
}

// BestTimeSlot is one ranked (day, hour) posting slot
type BestTimeSlot struct {
	Day        string `json:"day"`  // "Sun".."Sat"
	Time       string `json:"time"` // "6:00 PM"
	Engagement string `json:"engagement"`
	SampleSize int    `json:"sample_size"`
}

// BestDay is one ranked day of week by average engagement
type BestDay struct {
	Day           string  `json:"day"`
	AvgEngagement float64 `json:"avg_engagement"`
}

// PostingTimeInsights is the derived posting-time report: a 24x7 heatmap plus
// the top slots and days. Only buckets with at least one video are eligible
// for the rankings.
type PostingTimeInsights struct {
	Heatmap   []HeatmapRow   `json:"heatmap"`
	BestTimes []BestTimeSlot `json:"best_times"`
	BestDays  []BestDay      `json:"best_days"`
}

// TopPerformer annotates a high-view video with its own engagement rate
type TopPerformer struct {
	ID          string   `json:"id"`
	Description string   `json:"description"`
	Views       int64    `json:"views"`
	Engagement  string   `json:"engagement"`
	Hashtags    []string `json:"hashtags"`
}

// Trend classification values
const (
	TrendGrowing   = "growing"
	TrendDeclining = "declining"
	TrendNeutral   = "neutral"
)

// ContentTrend classifies recent performance against the older half of the
// provided videos
type ContentTrend struct {
	Trend         string         `json:"trend"`
	Growth        float64        `json:"growth"` // percent, 1 decimal
	AvgViews      int64          `json:"avg_views"`
	AvgViewsOlder int64          `json:"avg_views_older"`
	TopPerformers []TopPerformer `json:"top_performers"`
}

// HashtagStat is the per-tag aggregate across all scanned videos
type HashtagStat struct {
	Tag           string `json:"tag"`
	UseCount      int    `json:"use_count"`
	AvgViews      int64  `json:"avg_views"`
	AvgEngagement string `json:"avg_engagement"`
}

// HashtagRankings exposes the two top-10 orderings of hashtag performance
type HashtagRankings struct {
	TopByViews []HashtagStat `json:"top_by_views"`
	TopByUsage []HashtagStat `json:"top_by_usage"`
}

// Confidence levels for growth prediction
const (
	ConfidenceLow    = "low"
	ConfidenceMedium = "medium"
	ConfidenceHigh   = "high"
)

// GrowthPrediction is a follower projection over a timeframe. The projection
// formula is a documented heuristic, not a statistical model.
type GrowthPrediction struct {
	Predicted     int64   `json:"predicted"`
	Change        int64   `json:"change"`
	ChangePercent float64 `json:"change_percent"` // 1 decimal
	Confidence    string  `json:"confidence"`
	Timeframe     string  `json:"timeframe"` // e.g. "30 days"
}

// ComparisonEntry is one account's aggregate block inside a comparison report
type ComparisonEntry struct {
	Username      string `json:"username"`
	Followers     int64  `json:"followers"`
	AvgViews      int64  `json:"avg_views"`
	AvgEngagement string `json:"avg_engagement"`
}

// ComparisonRankings holds the caller's 1-based positions among competitors
type ComparisonRankings struct {
	Followers  int `json:"followers"`
	Engagement int `json:"engagement"`
	Views      int `json:"views"`
}

// ComparisonReport ranks the caller against tracked competitors
type ComparisonReport struct {
	User        ComparisonEntry    `json:"user"`
	Competitors []ComparisonEntry  `json:"competitors"`
	Rankings    ComparisonRankings `json:"rankings"`
}

// CompetitorSummary is the cached per-competitor aggregate used by the
// comparison report and the competitors page
type CompetitorSummary struct {
	Profile
	AvgViews      int64  `json:"avg_views"`
	AvgEngagement string `json:"avg_engagement"`
}

// AccountInsights bundles every derived block for one account into the single
// dashboard payload
type AccountInsights struct {
	EngagementRate   float64             `json:"engagement_rate"`
	PostingTimes     PostingTimeInsights `json:"posting_times"`
	ContentTrends    ContentTrend        `json:"content_trends"`
	Hashtags         HashtagRankings     `json:"hashtag_performance"`
	GrowthPrediction GrowthPrediction    `json:"growth_prediction"`
	TotalViews       int64               `json:"total_views"`
	AvgViews         int64               `json:"avg_views"`
}
