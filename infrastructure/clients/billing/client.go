package billing

import (
	"context"
	"encoding/json"
	"fmt"

	stripe "github.com/stripe/stripe-go/v76"
	portalsession "github.com/stripe/stripe-go/v76/billingportal/session"
	checkoutsession "github.com/stripe/stripe-go/v76/checkout/session"
	"github.com/stripe/stripe-go/v76/subscription"
	"github.com/stripe/stripe-go/v76/webhook"

	"pulse-metrics/domain/dto"
	"pulse-metrics/domain/model"
	"pulse-metrics/domain/repository"
	"pulse-metrics/infrastructure/configuration"
	"pulse-metrics/infrastructure/logger"
)

// Client is the Stripe-backed billing collaborator. Without a secret key it
// reports unconfigured and every status read degrades to the free plan, which
// keeps the local demo path alive.
type Client struct {
	secretKey     string
	webhookSecret string
	frontendURL   string
	profiles      repository.IProfileStore
	prices        *priceTable
}

// NewClient creates the billing client and sets the global Stripe key
func NewClient(cfg configuration.Stripe, frontendURL string, profiles repository.IProfileStore) repository.IBilling {
	if cfg.SecretKey != "" {
		stripe.Key = cfg.SecretKey
	}
	return &Client{
		secretKey:     cfg.SecretKey,
		webhookSecret: cfg.WebhookSecret,
		frontendURL:   frontendURL,
		profiles:      profiles,
		prices:        loadPriceTable(cfg.Prices),
	}
}

func (c *Client) Configured() bool {
	return c.secretKey != ""
}

// PriceIDFor resolves a (plan, billing period) pair to the provider price id
func (c *Client) PriceIDFor(planID, billingPeriod string) string {
	if billingPeriod == "" {
		billingPeriod = "monthly"
	}
	return c.prices.priceIDFor(planID, billingPeriod)
}

// CreateCheckoutSession starts a hosted subscription checkout with a 14 day
// trial. The user id rides along as metadata so the webhook can attach the
// customer afterwards.
func (c *Client) CreateCheckoutSession(ctx context.Context, req *dto.CheckoutSessionRequest) (*dto.CheckoutSessionResponse, error) {
	if !c.Configured() {
		return nil, fmt.Errorf("%w: stripe secret key not set", model.ErrConfiguration)
	}
	if req == nil || req.PriceID == "" {
		return nil, fmt.Errorf("%w: priceId is required", model.ErrValidation)
	}

	successURL := req.SuccessURL
	if successURL == "" {
		successURL = c.frontendURL + "/settings?upgraded=true"
	}
	cancelURL := req.CancelURL
	if cancelURL == "" {
		cancelURL = c.frontendURL + "/pricing"
	}

	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{Price: stripe.String(req.PriceID), Quantity: stripe.Int64(1)},
		},
		SuccessURL:          stripe.String(successURL),
		CancelURL:           stripe.String(cancelURL),
		AllowPromotionCodes: stripe.Bool(true),
		SubscriptionData: &stripe.CheckoutSessionSubscriptionDataParams{
			TrialPeriodDays: stripe.Int64(14),
			Metadata:        map[string]string{"userId": req.UserID},
		},
	}
	params.Context = ctx
	params.AddMetadata("userId", req.UserID)
	if req.CustomerID != "" {
		params.Customer = stripe.String(req.CustomerID)
	} else if req.CustomerEmail != "" {
		params.CustomerEmail = stripe.String(req.CustomerEmail)
	}

	sess, err := checkoutsession.New(params)
	if err != nil {
		return nil, fmt.Errorf("%w: create checkout session: %v", model.ErrUpstream, err)
	}
	return &dto.CheckoutSessionResponse{SessionID: sess.ID, URL: sess.URL}, nil
}

// CreatePortalSession opens the customer billing portal
func (c *Client) CreatePortalSession(ctx context.Context, customerID, returnURL string) (*dto.PortalSessionResponse, error) {
	if !c.Configured() {
		return nil, fmt.Errorf("%w: stripe secret key not set", model.ErrConfiguration)
	}
	if customerID == "" {
		return nil, fmt.Errorf("%w: customerId is required", model.ErrValidation)
	}
	if returnURL == "" {
		returnURL = c.frontendURL + "/settings"
	}

	params := &stripe.BillingPortalSessionParams{
		Customer:  stripe.String(customerID),
		ReturnURL: stripe.String(returnURL),
	}
	params.Context = ctx

	sess, err := portalsession.New(params)
	if err != nil {
		return nil, fmt.Errorf("%w: create portal session: %v", model.ErrUpstream, err)
	}
	return &dto.PortalSessionResponse{URL: sess.URL}, nil
}

// freeStatus is the degraded response for unconfigured billing or users with
// no customer record
func freeStatus() *dto.SubscriptionStatusResponse {
	return &dto.SubscriptionStatusResponse{Plan: model.PlanFree, Status: "active"}
}

// GetSubscriptionStatus resolves the current plan for a user. The customer id
// is looked up from the profile store when not supplied directly.
func (c *Client) GetSubscriptionStatus(ctx context.Context, userID, customerID string) (*dto.SubscriptionStatusResponse, error) {
	if !c.Configured() {
		return freeStatus(), nil
	}

	if customerID == "" && userID != "" {
		row, err := c.profiles.GetByUserID(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("load billing profile: %w", err)
		}
		if row != nil {
			customerID = row.StripeCustomerID
		}
	}
	if customerID == "" {
		return freeStatus(), nil
	}

	params := &stripe.SubscriptionListParams{
		Customer: stripe.String(customerID),
		Status:   stripe.String("all"),
	}
	params.Context = ctx
	params.Limit = stripe.Int64(1)

	iter := subscription.List(params)
	if !iter.Next() {
		if err := iter.Err(); err != nil {
			return nil, fmt.Errorf("%w: list subscriptions: %v", model.ErrUpstream, err)
		}
		resp := freeStatus()
		resp.CustomerID = &customerID
		return resp, nil
	}
	sub := iter.Subscription()

	detail := &dto.SubscriptionDetail{
		ID:                sub.ID,
		Status:            string(sub.Status),
		CurrentPeriodEnd:  sub.CurrentPeriodEnd * 1000,
		CancelAtPeriodEnd: sub.CancelAtPeriodEnd,
	}
	if sub.TrialEnd > 0 {
		trialEnd := sub.TrialEnd * 1000
		detail.TrialEnd = &trialEnd
	}
	return &dto.SubscriptionStatusResponse{
		Plan:         c.prices.planForPrice(subscriptionPriceID(sub)),
		Status:       string(sub.Status),
		CustomerID:   &customerID,
		Subscription: detail,
	}, nil
}

func subscriptionPriceID(sub *stripe.Subscription) string {
	if sub == nil || sub.Items == nil || len(sub.Items.Data) == 0 || sub.Items.Data[0].Price == nil {
		return ""
	}
	return sub.Items.Data[0].Price.ID
}

// HandleWebhook verifies the provider signature and applies the event to the
// profile store. The API version check is relaxed so accounts pinned to a
// different Stripe version still deliver.
func (c *Client) HandleWebhook(ctx context.Context, payload []byte, signature string) (*dto.WebhookResult, error) {
	if c.webhookSecret == "" {
		return nil, fmt.Errorf("%w: stripe webhook secret not set", model.ErrConfiguration)
	}
	event, err := webhook.ConstructEventWithOptions(payload, signature, c.webhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrSignature, err)
	}

	result := &dto.WebhookResult{EventType: string(event.Type)}
	userID, err := c.applyEvent(ctx, &event)
	result.UserID = userID
	return result, err
}

// applyEvent routes one verified event to the matching profile mutation and
// returns the settled user id for a completed checkout. Unrecognized event
// types are logged and acknowledged.
func (c *Client) applyEvent(ctx context.Context, event *stripe.Event) (string, error) {
	log := logger.GetLogger()

	switch string(event.Type) {
	case "checkout.session.completed":
		var sess stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
			return "", fmt.Errorf("decode checkout session: %w", err)
		}
		return c.handleCheckoutCompleted(ctx, &sess)

	case "customer.subscription.created", "customer.subscription.updated":
		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			return "", fmt.Errorf("decode subscription: %w", err)
		}
		plan := c.prices.planForPrice(subscriptionPriceID(&sub))
		return "", c.profiles.UpdatePlanByCustomerID(ctx, customerIDOf(sub.Customer), plan, string(sub.Status))

	case "customer.subscription.deleted":
		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			return "", fmt.Errorf("decode subscription: %w", err)
		}
		return "", c.profiles.UpdatePlanByCustomerID(ctx, customerIDOf(sub.Customer), model.PlanFree, "cancelled")

	case "invoice.payment_failed":
		var inv stripe.Invoice
		if err := json.Unmarshal(event.Data.Raw, &inv); err != nil {
			return "", fmt.Errorf("decode invoice: %w", err)
		}
		return "", c.profiles.UpdateStatusByCustomerID(ctx, customerIDOf(inv.Customer), "past_due")

	case "invoice.payment_succeeded":
		var inv stripe.Invoice
		if err := json.Unmarshal(event.Data.Raw, &inv); err != nil {
			return "", fmt.Errorf("decode invoice: %w", err)
		}
		log.WithField("customer_id", customerIDOf(inv.Customer)).Info("invoice payment succeeded")
		return "", nil

	default:
		log.WithField("event_type", string(event.Type)).Debug("unhandled billing event")
		return "", nil
	}
}

// handleCheckoutCompleted attaches the customer to the user from the session
// metadata, then resolves the purchased plan from the live subscription. The
// returned user id marks whose entitlements just settled.
func (c *Client) handleCheckoutCompleted(ctx context.Context, sess *stripe.CheckoutSession) (string, error) {
	userID := sess.Metadata["userId"]
	customerID := customerIDOf(sess.Customer)
	if userID == "" || customerID == "" {
		logger.GetLogger().WithField("session_id", sess.ID).Warn("checkout completed without user metadata")
		return "", nil
	}
	if err := c.profiles.AttachCustomer(ctx, userID, customerID); err != nil {
		return "", fmt.Errorf("attach customer: %w", err)
	}
	if sess.Subscription == nil || sess.Subscription.ID == "" {
		return userID, nil
	}

	params := &stripe.SubscriptionParams{}
	params.Context = ctx
	sub, err := subscription.Get(sess.Subscription.ID, params)
	if err != nil {
		return "", fmt.Errorf("%w: retrieve subscription: %v", model.ErrUpstream, err)
	}
	plan := c.prices.planForPrice(subscriptionPriceID(sub))
	return userID, c.profiles.UpdatePlanByUserID(ctx, userID, plan, "active")
}

func customerIDOf(customer *stripe.Customer) string {
	if customer == nil {
		return ""
	}
	return customer.ID
}
