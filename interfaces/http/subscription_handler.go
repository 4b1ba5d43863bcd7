package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"pulse-metrics/domain/dto"
	"pulse-metrics/usecase"
)

type ISubscriptionHandler interface {
	Current(ctx *gin.Context)
	Upgrade(ctx *gin.Context)
	Cancel(ctx *gin.Context)
}

// SubscriptionHandler exposes the resolved entitlement state to the frontend
type SubscriptionHandler struct {
	entitlement usecase.IEntitlement
}

func NewSubscriptionHandler(entitlement usecase.IEntitlement) ISubscriptionHandler {
	return &SubscriptionHandler{entitlement: entitlement}
}

// Current returns the resolved subscription, its quota row and the resolver
// state in one payload
func (h *SubscriptionHandler) Current(ctx *gin.Context) {
	userID := sessionUserID(ctx)
	sub := h.entitlement.Current(ctx.Request.Context(), userID)
	limits := h.entitlement.Limits(ctx.Request.Context(), userID)

	now := time.Now()
	ctx.JSON(http.StatusOK, gin.H{
		"subscription":     sub,
		"limits":           limits,
		"state":            h.entitlement.State(userID),
		"on_trial":         sub.IsOnTrial(now),
		"trial_days_left":  sub.TrialDaysRemaining(now),
		"days_till_expiry": sub.DaysUntilExpiry(now),
	})
}

func (h *SubscriptionHandler) Upgrade(ctx *gin.Context) {
	var req dto.UpgradeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "plan_id is required"})
		return
	}

	result, err := h.entitlement.RequestUpgrade(ctx.Request.Context(), sessionUserID(ctx), &req)
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}

func (h *SubscriptionHandler) Cancel(ctx *gin.Context) {
	result, err := h.entitlement.RequestCancellation(ctx.Request.Context(), sessionUserID(ctx))
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}
