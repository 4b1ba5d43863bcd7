package billing

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	stripe "github.com/stripe/stripe-go/v76"

	"pulse-metrics/domain/dto"
	"pulse-metrics/domain/model"
	"pulse-metrics/infrastructure/configuration"
)

type mockProfileStore struct {
	mock.Mock
}

func (m *mockProfileStore) GetByUserID(ctx context.Context, userID string) (*model.UserProfileRow, error) {
	args := m.Called(ctx, userID)
	row, _ := args.Get(0).(*model.UserProfileRow)
	return row, args.Error(1)
}

func (m *mockProfileStore) AttachCustomer(ctx context.Context, userID, customerID string) error {
	args := m.Called(ctx, userID, customerID)
	return args.Error(0)
}

func (m *mockProfileStore) UpdatePlanByUserID(ctx context.Context, userID, plan, status string) error {
	args := m.Called(ctx, userID, plan, status)
	return args.Error(0)
}

func (m *mockProfileStore) UpdatePlanByCustomerID(ctx context.Context, customerID, plan, status string) error {
	args := m.Called(ctx, customerID, plan, status)
	return args.Error(0)
}

func (m *mockProfileStore) UpdateStatusByCustomerID(ctx context.Context, customerID, status string) error {
	args := m.Called(ctx, customerID, status)
	return args.Error(0)
}

func newTestClient(profiles *mockProfileStore) *Client {
	return &Client{
		webhookSecret: "whsec_test",
		frontendURL:   "http://localhost:5173",
		profiles:      profiles,
		prices:        loadPriceTable(configuration.StripePrices{}),
	}
}

func TestGetSubscriptionStatus_UnconfiguredReturnsFreePlan(t *testing.T) {
	client := newTestClient(&mockProfileStore{})

	resp, err := client.GetSubscriptionStatus(context.Background(), "user-1", "")

	require.NoError(t, err)
	assert.Equal(t, model.PlanFree, resp.Plan)
	assert.Equal(t, "active", resp.Status)
	assert.Nil(t, resp.CustomerID)
	assert.Nil(t, resp.Subscription)
}

func TestCreateCheckoutSession_Unconfigured(t *testing.T) {
	client := newTestClient(&mockProfileStore{})

	_, err := client.CreateCheckoutSession(context.Background(), &dto.CheckoutSessionRequest{PriceID: "price_pro_monthly"})

	assert.ErrorIs(t, err, model.ErrConfiguration)
}

func TestCreateCheckoutSession_MissingPriceID(t *testing.T) {
	client := newTestClient(&mockProfileStore{})
	client.secretKey = "sk_test_123"

	_, err := client.CreateCheckoutSession(context.Background(), &dto.CheckoutSessionRequest{})

	assert.ErrorIs(t, err, model.ErrValidation)
}

func TestCreatePortalSession_MissingCustomerID(t *testing.T) {
	client := newTestClient(&mockProfileStore{})
	client.secretKey = "sk_test_123"

	_, err := client.CreatePortalSession(context.Background(), "", "")

	assert.ErrorIs(t, err, model.ErrValidation)
}

func TestPriceIDFor(t *testing.T) {
	client := newTestClient(&mockProfileStore{})

	assert.Equal(t, "price_pro_monthly", client.PriceIDFor(model.PlanPro, ""))
	assert.Equal(t, "price_agency_yearly", client.PriceIDFor(model.PlanAgency, "yearly"))
	assert.Equal(t, "", client.PriceIDFor("enterprise", "monthly"))
}

func TestPlanForPrice_DefaultsToFree(t *testing.T) {
	table := loadPriceTable(configuration.StripePrices{})

	assert.Equal(t, model.PlanCreator, table.planForPrice("price_creator_yearly"))
	assert.Equal(t, model.PlanFree, table.planForPrice("price_unknown"))
	assert.Equal(t, model.PlanFree, table.planForPrice(""))
}

func TestPlanForPrice_ConfiguredIDs(t *testing.T) {
	table := loadPriceTable(configuration.StripePrices{
		ProMonthly: "price_1AbCdE",
		ProYearly:  "price_2FgHiJ",
	})

	assert.Equal(t, model.PlanPro, table.planForPrice("price_1AbCdE"))
	assert.Equal(t, "price_2FgHiJ", table.priceIDFor(model.PlanPro, "yearly"))
	assert.Equal(t, "price_creator_monthly", table.priceIDFor(model.PlanCreator, "monthly"))
}

func TestTiers(t *testing.T) {
	client := newTestClient(&mockProfileStore{})

	tiers := client.Tiers()

	require.Len(t, tiers, 4)
	assert.Equal(t, model.PlanFree, tiers[0].ID)
	assert.Equal(t, 15, tiers[1].Price.Monthly)
	assert.Equal(t, 144, tiers[1].Price.Yearly)
	assert.Equal(t, 39, tiers[2].Price.Monthly)
	assert.True(t, tiers[2].Popular)
	assert.Equal(t, 99, tiers[3].Price.Monthly)
	assert.Equal(t, 948, tiers[3].Price.Yearly)
}

func TestHandleWebhook_MissingSecret(t *testing.T) {
	client := newTestClient(&mockProfileStore{})
	client.webhookSecret = ""

	_, err := client.HandleWebhook(context.Background(), []byte(`{}`), "sig")

	assert.ErrorIs(t, err, model.ErrConfiguration)
}

func TestHandleWebhook_BadSignature(t *testing.T) {
	client := newTestClient(&mockProfileStore{})

	_, err := client.HandleWebhook(context.Background(), []byte(`{"type":"invoice.payment_succeeded"}`), "t=1,v1=deadbeef")

	assert.ErrorIs(t, err, model.ErrSignature)
}

// signPayload builds a Stripe-Signature header for the payload the same way
// the provider does
func signPayload(payload []byte, secret string) string {
	ts := time.Now().Unix()
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.%s", ts, payload)
	return fmt.Sprintf("t=%d,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}

func TestHandleWebhook_SubscriptionUpdated(t *testing.T) {
	profiles := &mockProfileStore{}
	profiles.On("UpdatePlanByCustomerID", mock.Anything, "cus_123", model.PlanPro, "active").Return(nil)
	client := newTestClient(profiles)

	// api_version differs from the pinned library version on purpose, events
	// from accounts on another Stripe version must still be accepted
	payload := []byte(`{
		"id": "evt_1",
		"type": "customer.subscription.updated",
		"api_version": "2022-11-15",
		"data": {
			"object": {
				"id": "sub_1",
				"customer": "cus_123",
				"status": "active",
				"items": {"data": [{"price": {"id": "price_pro_monthly"}}]}
			}
		}
	}`)

	result, err := client.HandleWebhook(context.Background(), payload, signPayload(payload, "whsec_test"))

	require.NoError(t, err)
	assert.Equal(t, "customer.subscription.updated", result.EventType)
	assert.Equal(t, "", result.UserID)
	profiles.AssertExpectations(t)
}

func TestHandleWebhook_CheckoutCompletedReportsUser(t *testing.T) {
	profiles := &mockProfileStore{}
	profiles.On("AttachCustomer", mock.Anything, "user-1", "cus_123").Return(nil)
	client := newTestClient(profiles)

	payload := []byte(`{
		"id": "evt_2",
		"type": "checkout.session.completed",
		"data": {
			"object": {
				"id": "cs_1",
				"customer": "cus_123",
				"metadata": {"userId": "user-1"}
			}
		}
	}`)

	result, err := client.HandleWebhook(context.Background(), payload, signPayload(payload, "whsec_test"))

	require.NoError(t, err)
	assert.Equal(t, "checkout.session.completed", result.EventType)
	assert.Equal(t, "user-1", result.UserID)
	profiles.AssertExpectations(t)
}

func TestApplyEvent_SubscriptionDeleted(t *testing.T) {
	profiles := &mockProfileStore{}
	profiles.On("UpdatePlanByCustomerID", mock.Anything, "cus_123", model.PlanFree, "cancelled").Return(nil)
	client := newTestClient(profiles)

	raw := json.RawMessage(`{"id": "sub_1", "customer": "cus_123", "status": "canceled"}`)
	event := &stripe.Event{Type: "customer.subscription.deleted", Data: &stripe.EventData{Raw: raw}}

	_, err := client.applyEvent(context.Background(), event)

	require.NoError(t, err)
	profiles.AssertExpectations(t)
}

func TestApplyEvent_PaymentFailed(t *testing.T) {
	profiles := &mockProfileStore{}
	profiles.On("UpdateStatusByCustomerID", mock.Anything, "cus_123", "past_due").Return(nil)
	client := newTestClient(profiles)

	raw := json.RawMessage(`{"id": "in_1", "customer": "cus_123"}`)
	event := &stripe.Event{Type: "invoice.payment_failed", Data: &stripe.EventData{Raw: raw}}

	_, err := client.applyEvent(context.Background(), event)

	require.NoError(t, err)
	profiles.AssertExpectations(t)
}

func TestApplyEvent_UnknownTypeIsIgnored(t *testing.T) {
	profiles := &mockProfileStore{}
	client := newTestClient(profiles)

	event := &stripe.Event{Type: "customer.created", Data: &stripe.EventData{Raw: json.RawMessage(`{}`)}}

	_, err := client.applyEvent(context.Background(), event)

	require.NoError(t, err)
	profiles.AssertExpectations(t)
}

func TestApplyEvent_CheckoutWithoutMetadataIsIgnored(t *testing.T) {
	profiles := &mockProfileStore{}
	client := newTestClient(profiles)

	raw := json.RawMessage(`{"id": "cs_1", "customer": "cus_123"}`)
	event := &stripe.Event{Type: "checkout.session.completed", Data: &stripe.EventData{Raw: raw}}

	userID, err := client.applyEvent(context.Background(), event)

	require.NoError(t, err)
	assert.Equal(t, "", userID)
	profiles.AssertExpectations(t)
}
