package dto

import "pulse-metrics/domain/model"

// AccountRequest identifies the account the dashboard is tracking
type AccountRequest struct {
	Username string `json:"username" binding:"required"`
	Count    int    `json:"count,omitempty"`
}

// DashboardResponse is the aggregated payload for the dashboard page: the
// profile, its recent videos and every derived insight block
type DashboardResponse struct {
	Profile  *model.Profile         `json:"profile"`
	Videos   []model.Video          `json:"videos"`
	Insights *model.AccountInsights `json:"insights"`
}

// CompareRequest asks for a comparison of the account against the caller's
// tracked competitors
type CompareRequest struct {
	Username string `json:"username" binding:"required"`
}

// CompetitorRequest adds or removes one tracked competitor handle
type CompetitorRequest struct {
	Username string `json:"username" binding:"required"`
}

// TrendingRequest scopes a trending feed query
type TrendingRequest struct {
	Region string `json:"region,omitempty"`
	Count  int    `json:"count,omitempty"`
}

// GrowthRequest asks for a follower projection
type GrowthRequest struct {
	Username      string `json:"username" binding:"required"`
	TimeframeDays int    `json:"timeframe_days,omitempty"`
}
