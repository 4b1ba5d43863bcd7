package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"pulse-metrics/domain/dto"
	"pulse-metrics/domain/model"
	"pulse-metrics/domain/repository"
	"pulse-metrics/infrastructure/logger"
)

// Resolution states of one user's subscription entry
const (
	StateUnresolved = "unresolved"
	StateResolving  = "resolving"
	StateResolved   = "resolved"
)

// Feature keys accepted by the limit helpers
const (
	FeatureAccounts       = "accounts"
	FeatureHistoryDays    = "historyDays"
	FeatureCompetitors    = "competitors"
	FeatureTrendingSounds = "trendingSounds"
	FeatureHashtags       = "hashtags"
	FeatureExports        = "exports"
	FeatureAPIAccess      = "apiAccess"
	FeatureBestTimes      = "bestTimes"
	FeatureWhiteLabel     = "whiteLabel"
	FeatureTeamSeats      = "teamSeats"
)

// IEntitlement resolves the subscription state per user and answers feature
// gate questions against the plan quota table. Resolution never fails: billing
// read errors and unconfigured billing degrade to the free plan.
type IEntitlement interface {
	Current(ctx context.Context, userID string) *model.Subscription
	Refresh(ctx context.Context, userID string) *model.Subscription
	Limits(ctx context.Context, userID string) model.PlanLimits
	State(userID string) string
	// OnCheckoutCompleted schedules a refresh after the settle delay so the
	// provider webhook has time to land before the state is re-read.
	OnCheckoutCompleted(userID string)
	RequestUpgrade(ctx context.Context, userID string, req *dto.UpgradeRequest) (*dto.BillingActionResult, error)
	RequestCancellation(ctx context.Context, userID string) (*dto.BillingActionResult, error)
	HasFeature(limits model.PlanLimits, feature string) bool
	WithinLimit(limits model.PlanLimits, feature string, usage int) bool
	Remaining(limits model.PlanLimits, feature string, usage int) int
}

type resolvedEntry struct {
	state string
	sub   *model.Subscription
}

// EntitlementUsecase implements subscription resolution over the billing
// collaborator with a key-value fallback for deployments without billing
type EntitlementUsecase struct {
	billing  repository.IBilling
	kv       repository.IKeyValue
	profiles repository.IProfileStore
	baseURL  string

	mu      sync.Mutex
	entries map[string]*resolvedEntry

	settleDelay time.Duration
	now         func() time.Time
}

// NewEntitlementUsecase creates a new entitlement usecase instance
func NewEntitlementUsecase(billing repository.IBilling, kv repository.IKeyValue, profiles repository.IProfileStore, baseURL string) IEntitlement {
	return &EntitlementUsecase{
		billing:     billing,
		kv:          kv,
		profiles:    profiles,
		baseURL:     baseURL,
		entries:     make(map[string]*resolvedEntry),
		settleDelay: 2 * time.Second,
		now:         time.Now,
	}
}

func subscriptionKey(userID string) string { return "subscription:" + userID }

func freeSubscription() *model.Subscription {
	return &model.Subscription{Plan: model.PlanFree, Status: "active"}
}

// Current returns the resolved subscription, resolving on first use
func (u *EntitlementUsecase) Current(ctx context.Context, userID string) *model.Subscription {
	u.mu.Lock()
	if entry, ok := u.entries[userID]; ok && entry.state == StateResolved {
		sub := entry.sub
		u.mu.Unlock()
		return sub
	}
	u.mu.Unlock()
	return u.Refresh(ctx, userID)
}

// Refresh re-resolves the subscription from billing or the local fallback
func (u *EntitlementUsecase) Refresh(ctx context.Context, userID string) *model.Subscription {
	u.mu.Lock()
	u.entries[userID] = &resolvedEntry{state: StateResolving}
	u.mu.Unlock()

	sub := u.resolve(ctx, userID)

	u.mu.Lock()
	u.entries[userID] = &resolvedEntry{state: StateResolved, sub: sub}
	u.mu.Unlock()
	return sub
}

func (u *EntitlementUsecase) resolve(ctx context.Context, userID string) *model.Subscription {
	if u.billing != nil && u.billing.Configured() {
		status, err := u.billing.GetSubscriptionStatus(ctx, userID, "")
		if err != nil {
			logger.GetLogger().WithField("user_id", userID).
				WithError(err).Warn("subscription status read failed, degrading to free")
			return freeSubscription()
		}
		return statusToSubscription(status)
	}
	return u.localSubscription(ctx, userID)
}

// localSubscription reads the key-value fallback, applying the expiry check
// on read so stale demo subscriptions lapse to free
func (u *EntitlementUsecase) localSubscription(ctx context.Context, userID string) *model.Subscription {
	var stored model.Subscription
	found, err := u.kv.Get(ctx, subscriptionKey(userID), &stored)
	if err != nil {
		logger.GetLogger().WithField("user_id", userID).
			WithError(err).Warn("local subscription read failed, degrading to free")
		return freeSubscription()
	}
	if !found {
		return freeSubscription()
	}
	if stored.CurrentPeriodEnd > 0 && stored.CurrentPeriodEnd < u.now().UnixMilli() {
		return &model.Subscription{Plan: model.PlanFree, Status: "expired"}
	}
	return &stored
}

func statusToSubscription(status *dto.SubscriptionStatusResponse) *model.Subscription {
	if status == nil {
		return freeSubscription()
	}
	sub := &model.Subscription{Plan: status.Plan, Status: status.Status}
	if sub.Plan == "" {
		sub.Plan = model.PlanFree
	}
	if sub.Status == "" {
		sub.Status = "active"
	}
	if status.CustomerID != nil {
		sub.CustomerID = *status.CustomerID
	}
	if status.Subscription != nil {
		sub.CurrentPeriodEnd = status.Subscription.CurrentPeriodEnd
		sub.CancelAtPeriodEnd = status.Subscription.CancelAtPeriodEnd
		if status.Subscription.TrialEnd != nil {
			sub.TrialEnd = *status.Subscription.TrialEnd
		}
	}
	return sub
}

// Limits returns the quota row for the user's current plan
func (u *EntitlementUsecase) Limits(ctx context.Context, userID string) model.PlanLimits {
	return model.LimitsFor(u.Current(ctx, userID).Plan)
}

// State reports the resolution state for a user
func (u *EntitlementUsecase) State(userID string) string {
	u.mu.Lock()
	defer u.mu.Unlock()
	if entry, ok := u.entries[userID]; ok {
		return entry.state
	}
	return StateUnresolved
}

// OnCheckoutCompleted invalidates and re-resolves after the settle delay
func (u *EntitlementUsecase) OnCheckoutCompleted(userID string) {
	time.AfterFunc(u.settleDelay, func() {
		u.Refresh(context.Background(), userID)
	})
}

// RequestUpgrade starts a plan change. With billing configured this returns a
// hosted checkout URL and leaves local state untouched until the provider
// confirms; without billing it writes the fallback state synchronously.
func (u *EntitlementUsecase) RequestUpgrade(ctx context.Context, userID string, req *dto.UpgradeRequest) (*dto.BillingActionResult, error) {
	if req == nil || req.PlanID == "" {
		return nil, fmt.Errorf("%w: plan id is required", model.ErrValidation)
	}
	period := req.BillingPeriod
	if period == "" {
		period = "monthly"
	}

	if u.billing == nil || !u.billing.Configured() {
		return u.localUpgrade(ctx, userID, req.PlanID)
	}

	priceID := u.billing.PriceIDFor(req.PlanID, period)
	if priceID == "" {
		return nil, fmt.Errorf("%w: unknown plan %q", model.ErrValidation, req.PlanID)
	}
	session, err := u.billing.CreateCheckoutSession(ctx, &dto.CheckoutSessionRequest{
		PriceID:    priceID,
		UserID:     userID,
		SuccessURL: u.baseURL + "/settings?upgraded=true",
		CancelURL:  u.baseURL + "/pricing",
	})
	if err != nil {
		return nil, fmt.Errorf("create checkout session: %w", err)
	}
	return &dto.BillingActionResult{Success: true, URL: session.URL}, nil
}

func (u *EntitlementUsecase) localUpgrade(ctx context.Context, userID, planID string) (*dto.BillingActionResult, error) {
	if !knownPlan(planID) {
		return nil, fmt.Errorf("%w: unknown plan %q", model.ErrValidation, planID)
	}
	sub := &model.Subscription{
		Plan:             planID,
		Status:           "active",
		CurrentPeriodEnd: u.now().Add(30 * 24 * time.Hour).UnixMilli(),
	}
	if err := u.kv.Set(ctx, subscriptionKey(userID), sub, 0); err != nil {
		return nil, fmt.Errorf("store local subscription: %w", err)
	}
	u.mu.Lock()
	u.entries[userID] = &resolvedEntry{state: StateResolved, sub: sub}
	u.mu.Unlock()
	return &dto.BillingActionResult{Success: true}, nil
}

// RequestCancellation reverts a local subscription synchronously or hands the
// user to the billing portal when a provider manages the subscription
func (u *EntitlementUsecase) RequestCancellation(ctx context.Context, userID string) (*dto.BillingActionResult, error) {
	if u.billing == nil || !u.billing.Configured() {
		if err := u.kv.Delete(ctx, subscriptionKey(userID)); err != nil {
			return nil, fmt.Errorf("delete local subscription: %w", err)
		}
		u.mu.Lock()
		u.entries[userID] = &resolvedEntry{state: StateResolved, sub: freeSubscription()}
		u.mu.Unlock()
		return &dto.BillingActionResult{Success: true}, nil
	}

	row, err := u.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load billing profile: %w", err)
	}
	if row == nil || row.StripeCustomerID == "" {
		return nil, fmt.Errorf("%w: no billing customer for user", model.ErrValidation)
	}
	portal, err := u.billing.CreatePortalSession(ctx, row.StripeCustomerID, u.baseURL+"/settings")
	if err != nil {
		return nil, fmt.Errorf("create portal session: %w", err)
	}
	return &dto.BillingActionResult{Success: true, URL: portal.URL}, nil
}

func knownPlan(planID string) bool {
	switch planID {
	case model.PlanFree, model.PlanCreator, model.PlanPro, model.PlanAgency:
		return true
	}
	return false
}

// HasFeature reports whether the plan enables a feature at all. Numeric
// quotas count as enabled when unlimited or positive.
func (u *EntitlementUsecase) HasFeature(limits model.PlanLimits, feature string) bool {
	if enabled, ok := boolLimit(limits, feature); ok {
		return enabled
	}
	if limit, ok := numericLimit(limits, feature); ok {
		return limit == model.Unlimited || limit > 0
	}
	return false
}

// WithinLimit reports whether adding one more unit stays inside the quota
func (u *EntitlementUsecase) WithinLimit(limits model.PlanLimits, feature string, usage int) bool {
	if enabled, ok := boolLimit(limits, feature); ok {
		return enabled
	}
	if limit, ok := numericLimit(limits, feature); ok {
		return limit == model.Unlimited || usage < limit
	}
	return false
}

// Remaining returns the units left under a numeric quota, Unlimited for
// uncapped plans and never below zero
func (u *EntitlementUsecase) Remaining(limits model.PlanLimits, feature string, usage int) int {
	limit, ok := numericLimit(limits, feature)
	if !ok {
		return 0
	}
	if limit == model.Unlimited {
		return model.Unlimited
	}
	if remaining := limit - usage; remaining > 0 {
		return remaining
	}
	return 0
}

func boolLimit(limits model.PlanLimits, feature string) (bool, bool) {
	switch feature {
	case FeatureExports:
		return limits.Exports, true
	case FeatureAPIAccess:
		return limits.APIAccess, true
	case FeatureBestTimes:
		return limits.BestTimes, true
	case FeatureWhiteLabel:
		return limits.WhiteLabel, true
	}
	return false, false
}

func numericLimit(limits model.PlanLimits, feature string) (int, bool) {
	switch feature {
	case FeatureAccounts:
		return limits.Accounts, true
	case FeatureHistoryDays:
		return limits.HistoryDays, true
	case FeatureCompetitors:
		return limits.Competitors, true
	case FeatureTrendingSounds:
		return limits.TrendingSounds, true
	case FeatureHashtags:
		return limits.Hashtags, true
	case FeatureTeamSeats:
		return limits.TeamSeats, true
	}
	return 0, false
}
