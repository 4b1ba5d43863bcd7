package model

import "time"

// Plan identifiers. Any unrecognized plan resolves to PlanFree, never to an
// error.
const (
	PlanFree    = "free"
	PlanCreator = "creator"
	PlanPro     = "pro"
	PlanAgency  = "agency"
)

// Subscription is the resolved billing state for one user session
type Subscription struct {
	Plan              string `json:"plan"`
	Status            string `json:"status"`
	CustomerID        string `json:"customer_id,omitempty"`
	CurrentPeriodEnd  int64  `json:"current_period_end,omitempty"` // epoch ms
	CancelAtPeriodEnd bool   `json:"cancel_at_period_end"`
	TrialEnd          int64  `json:"trial_end,omitempty"` // epoch ms, 0 = no trial
}

// IsOnTrial reports whether the subscription trial is still running
func (s *Subscription) IsOnTrial(now time.Time) bool {
	return s.TrialEnd > 0 && s.TrialEnd > now.UnixMilli()
}

// TrialDaysRemaining returns whole days left on trial, 0 when not on trial
func (s *Subscription) TrialDaysRemaining(now time.Time) int {
	if !s.IsOnTrial(now) {
		return 0
	}
	ms := s.TrialEnd - now.UnixMilli()
	return int((ms + msPerDay - 1) / msPerDay)
}

// DaysUntilExpiry returns whole days until the period ends for a cancelled
// subscription, -1 when no expiry is pending
func (s *Subscription) DaysUntilExpiry(now time.Time) int {
	if !s.CancelAtPeriodEnd || s.CurrentPeriodEnd == 0 {
		return -1
	}
	ms := s.CurrentPeriodEnd - now.UnixMilli()
	if ms < 0 {
		return 0
	}
	return int((ms + msPerDay - 1) / msPerDay)
}

const msPerDay = 24 * 60 * 60 * 1000

// Unlimited marks a quota with no upper bound
const Unlimited = -1

// PlanLimits is the per-feature quota row of one plan. Numeric quotas use
// Unlimited (-1) for no cap.
type PlanLimits struct {
	Accounts       int  `json:"accounts"`
	HistoryDays    int  `json:"history_days"`
	Competitors    int  `json:"competitors"`
	TrendingSounds int  `json:"trending_sounds"`
	Hashtags       int  `json:"hashtags"`
	Exports        bool `json:"exports"`
	APIAccess      bool `json:"api_access"`
	BestTimes      bool `json:"best_times"`
	WhiteLabel     bool `json:"white_label"`
	TeamSeats      int  `json:"team_seats"`
}

// planLimits is the authoritative quota table, one row per plan id
var planLimits = map[string]PlanLimits{
	PlanFree: {
		Accounts:       1,
		HistoryDays:    7,
		Competitors:    0,
		TrendingSounds: 5,
		Hashtags:       5,
		Exports:        false,
		APIAccess:      false,
		BestTimes:      false,
		WhiteLabel:     false,
		TeamSeats:      1,
	},
	PlanCreator: {
		Accounts:       1,
		HistoryDays:    90,
		Competitors:    0,
		TrendingSounds: Unlimited,
		Hashtags:       Unlimited,
		Exports:        false,
		APIAccess:      false,
		BestTimes:      true,
		WhiteLabel:     false,
		TeamSeats:      1,
	},
	PlanPro: {
		Accounts:       3,
		HistoryDays:    Unlimited,
		Competitors:    10,
		TrendingSounds: Unlimited,
		Hashtags:       Unlimited,
		Exports:        true,
		APIAccess:      true,
		BestTimes:      true,
		WhiteLabel:     false,
		TeamSeats:      1,
	},
	PlanAgency: {
		Accounts:       10,
		HistoryDays:    Unlimited,
		Competitors:    Unlimited,
		TrendingSounds: Unlimited,
		Hashtags:       Unlimited,
		Exports:        true,
		APIAccess:      true,
		BestTimes:      true,
		WhiteLabel:     true,
		TeamSeats:      5,
	},
}

// LimitsFor returns the quota row for a plan id; unknown plans fall back to
// the free row
func LimitsFor(plan string) PlanLimits {
	if limits, ok := planLimits[plan]; ok {
		return limits
	}
	return planLimits[PlanFree]
}

// TierPrice holds monthly/yearly amounts in USD
type TierPrice struct {
	Monthly int `json:"monthly"`
	Yearly  int `json:"yearly"`
}

// PricingTier describes one sellable plan and its billing-provider price ids
type PricingTier struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Price       TierPrice         `json:"price"`
	PriceIDs    map[string]string `json:"price_ids,omitempty"` // period -> provider price id
	Popular     bool              `json:"popular"`
}

// UserProfileRow is the persisted billing projection per user, updated by the
// webhook collaborator and read during subscription resolution
type UserProfileRow struct {
	UserID             string    `json:"user_id"`
	StripeCustomerID   string    `json:"stripe_customer_id"`
	Plan               string    `json:"plan"`
	SubscriptionStatus string    `json:"subscription_status"`
	UpdatedAt          time.Time `json:"updated_at"`
}
