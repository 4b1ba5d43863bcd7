package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"pulse-metrics/domain/dto"
	"pulse-metrics/domain/model"
	"pulse-metrics/domain/repository"
	"pulse-metrics/infrastructure/logger"
)

type IBillingHandler interface {
	CreateCheckoutSession(ctx *gin.Context)
	CreatePortalSession(ctx *gin.Context)
	SubscriptionStatus(ctx *gin.Context)
	Webhook(ctx *gin.Context)
	Pricing(ctx *gin.Context)
}

// BillingHandler exposes the billing provider surface. Checkout, portal and
// status mirror the provider session flow; the webhook applies verified
// events to the billing projection.
type BillingHandler struct {
	billing     repository.IBilling
	entitlement usecaseEntitlement
}

// usecaseEntitlement is the slice of the entitlement resolver the billing
// surface needs. The trigger fires when the webhook confirms a completed
// checkout, not when a session is created.
type usecaseEntitlement interface {
	OnCheckoutCompleted(userID string)
}

func NewBillingHandler(billing repository.IBilling, entitlement usecaseEntitlement) IBillingHandler {
	return &BillingHandler{billing: billing, entitlement: entitlement}
}

func (h *BillingHandler) CreateCheckoutSession(ctx *gin.Context) {
	var req dto.CheckoutSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.UserID == "" {
		req.UserID = sessionUserID(ctx)
	}

	resp, err := h.billing.CreateCheckoutSession(ctx.Request.Context(), &req)
	if err != nil {
		logger.GetLogger().WithField("error", err.Error()).Warn("checkout session creation failed")
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

func (h *BillingHandler) CreatePortalSession(ctx *gin.Context) {
	var req dto.PortalSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	resp, err := h.billing.CreatePortalSession(ctx.Request.Context(), req.CustomerID, req.ReturnURL)
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

func (h *BillingHandler) SubscriptionStatus(ctx *gin.Context) {
	userID := sessionUserID(ctx)
	customerID := ctx.Query("customerId")

	resp, err := h.billing.GetSubscriptionStatus(ctx.Request.Context(), userID, customerID)
	if err != nil {
		logger.GetLogger().WithField("error", err.Error()).Warn("subscription status lookup failed")
		// status reads degrade to the free plan, never fail the page
		ctx.JSON(http.StatusOK, &dto.SubscriptionStatusResponse{Plan: model.PlanFree, Status: "active"})
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// Webhook receives provider events. The raw body is required for signature
// verification, so this route must not use a JSON binding middleware.
func (h *BillingHandler) Webhook(ctx *gin.Context) {
	payload, err := io.ReadAll(ctx.Request.Body)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "unable to read payload"})
		return
	}

	result, err := h.billing.HandleWebhook(ctx.Request.Context(), payload, ctx.GetHeader("Stripe-Signature"))
	if err != nil {
		if errors.Is(err, model.ErrSignature) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid signature"})
			return
		}
		logger.GetLogger().WithField("error", err.Error()).Error("webhook processing failed")
		abortWithError(ctx, err)
		return
	}
	if h.entitlement != nil && result.UserID != "" {
		h.entitlement.OnCheckoutCompleted(result.UserID)
	}
	ctx.JSON(http.StatusOK, gin.H{"received": true, "type": result.EventType})
}

func (h *BillingHandler) Pricing(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"tiers": h.billing.Tiers()})
}
