package repository

import (
	"context"

	"pulse-metrics/domain/dto"
	"pulse-metrics/domain/model"
)

// IBilling is the billing collaborator boundary (checkout, portal, status,
// webhook). Status reads degrade to the free plan instead of failing;
// session creation surfaces configuration/validation errors to the caller.
type IBilling interface {
	// Configured reports whether a billing secret is present. Unconfigured
	// deployments run the local demo path.
	Configured() bool
	CreateCheckoutSession(ctx context.Context, req *dto.CheckoutSessionRequest) (*dto.CheckoutSessionResponse, error)
	CreatePortalSession(ctx context.Context, customerID, returnURL string) (*dto.PortalSessionResponse, error)
	GetSubscriptionStatus(ctx context.Context, userID, customerID string) (*dto.SubscriptionStatusResponse, error)
	// HandleWebhook verifies the provider signature, applies the event to the
	// profile store and reports what it handled. The result carries the user
	// id of a completed checkout so the caller can refresh entitlements.
	HandleWebhook(ctx context.Context, payload []byte, signature string) (*dto.WebhookResult, error)
	// PriceIDFor resolves a (plan, billing period) pair to the provider price
	// id, empty when the plan is not sellable.
	PriceIDFor(planID, billingPeriod string) string
	// Tiers lists the sellable plans for the pricing page.
	Tiers() []model.PricingTier
}
