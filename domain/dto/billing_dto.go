package dto

// CheckoutSessionRequest is the body of POST /api/stripe/create-checkout-session
type CheckoutSessionRequest struct {
	PriceID       string `json:"priceId"`
	CustomerID    string `json:"customerId,omitempty"`
	UserID        string `json:"userId,omitempty"`
	CustomerEmail string `json:"customerEmail,omitempty"`
	SuccessURL    string `json:"successUrl,omitempty"`
	CancelURL     string `json:"cancelUrl,omitempty"`
}

// CheckoutSessionResponse carries the hosted checkout redirect target
type CheckoutSessionResponse struct {
	SessionID string `json:"sessionId"`
	URL       string `json:"url"`
}

// WebhookResult reports what a verified billing event did. UserID is set only
// for a completed checkout so the caller can trigger an entitlement refresh
// for that user.
type WebhookResult struct {
	EventType string `json:"type"`
	UserID    string `json:"-"`
}

// PortalSessionRequest is the body of POST /api/stripe/create-portal-session
type PortalSessionRequest struct {
	CustomerID string `json:"customerId"`
	ReturnURL  string `json:"returnUrl,omitempty"`
}

// PortalSessionResponse carries the billing portal redirect target
type PortalSessionResponse struct {
	URL string `json:"url"`
}

// SubscriptionDetail mirrors the provider's subscription object with epoch-ms
// period boundaries
type SubscriptionDetail struct {
	ID                string `json:"id"`
	Status            string `json:"status"`
	CurrentPeriodEnd  int64  `json:"currentPeriodEnd"`
	CancelAtPeriodEnd bool   `json:"cancelAtPeriodEnd"`
	TrialEnd          *int64 `json:"trialEnd"`
}

// SubscriptionStatusResponse is the resolved billing state for a user. When
// billing is unconfigured or no customer exists this degrades to the free
// plan with a nil Subscription.
type SubscriptionStatusResponse struct {
	Plan         string              `json:"plan"`
	Status       string              `json:"status"`
	CustomerID   *string             `json:"customerId"`
	Subscription *SubscriptionDetail `json:"subscription"`
}

// UpgradeRequest asks the resolver to move the session to a paid tier
type UpgradeRequest struct {
	PlanID        string `json:"plan_id" binding:"required"`
	BillingPeriod string `json:"billing_period,omitempty"` // monthly | yearly
}

// BillingActionResult reports the outcome of an upgrade or cancellation. URL
// is set when the caller must complete the action at the billing provider.
type BillingActionResult struct {
	Success bool   `json:"success"`
	URL     string `json:"url,omitempty"`
	Error   string `json:"error,omitempty"`
}
