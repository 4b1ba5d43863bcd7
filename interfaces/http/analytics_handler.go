package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"pulse-metrics/infrastructure/logger"
	"pulse-metrics/usecase"
)

type IAnalyticsHandler interface {
	GetProfile(ctx *gin.Context)
	GetVideos(ctx *gin.Context)
	GetInsights(ctx *gin.Context)
	GetBestTimes(ctx *gin.Context)
	GetTrends(ctx *gin.Context)
	GetHashtags(ctx *gin.Context)
	GetGrowth(ctx *gin.Context)
	GetHistory(ctx *gin.Context)
}

// AnalyticsHandler serves the dashboard analytics surface. Plan-gated blocks
// consult the entitlement resolver before any provider work happens.
type AnalyticsHandler struct {
	dashboard   usecase.IDashboard
	analytics   usecase.IAnalytics
	entitlement usecase.IEntitlement
}

func NewAnalyticsHandler(dashboard usecase.IDashboard, analytics usecase.IAnalytics, entitlement usecase.IEntitlement) IAnalyticsHandler {
	return &AnalyticsHandler{dashboard: dashboard, analytics: analytics, entitlement: entitlement}
}

// usernameParam reads the target account handle, 400 when absent
func usernameParam(ctx *gin.Context) (string, bool) {
	username := ctx.Query("username")
	if username == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "username is required"})
		return "", false
	}
	return username, true
}

func countParam(ctx *gin.Context, fallback int) int {
	if v := ctx.Query("count"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func (h *AnalyticsHandler) GetProfile(ctx *gin.Context) {
	username, ok := usernameParam(ctx)
	if !ok {
		return
	}
	profile, err := h.dashboard.Profile(ctx.Request.Context(), username)
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, profile)
}

func (h *AnalyticsHandler) GetVideos(ctx *gin.Context) {
	username, ok := usernameParam(ctx)
	if !ok {
		return
	}
	videos, err := h.dashboard.Videos(ctx.Request.Context(), username, countParam(ctx, 0))
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"videos": videos})
}

func (h *AnalyticsHandler) GetInsights(ctx *gin.Context) {
	username, ok := usernameParam(ctx)
	if !ok {
		return
	}
	insights, err := h.dashboard.Insights(ctx.Request.Context(), username, countParam(ctx, 0))
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, insights)
}

func (h *AnalyticsHandler) GetBestTimes(ctx *gin.Context) {
	username, ok := usernameParam(ctx)
	if !ok {
		return
	}
	limits := h.entitlement.Limits(ctx.Request.Context(), sessionUserID(ctx))
	if !h.entitlement.HasFeature(limits, usecase.FeatureBestTimes) {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "best posting times require a paid plan"})
		return
	}

	videos, err := h.dashboard.Videos(ctx.Request.Context(), username, 0)
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, h.analytics.BestPostingTimes(videos))
}

func (h *AnalyticsHandler) GetTrends(ctx *gin.Context) {
	username, ok := usernameParam(ctx)
	if !ok {
		return
	}
	videos, err := h.dashboard.Videos(ctx.Request.Context(), username, 0)
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, h.analytics.ContentTrends(videos))
}

func (h *AnalyticsHandler) GetHashtags(ctx *gin.Context) {
	username, ok := usernameParam(ctx)
	if !ok {
		return
	}
	videos, err := h.dashboard.Videos(ctx.Request.Context(), username, 0)
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, h.analytics.HashtagPerformance(videos))
}

func (h *AnalyticsHandler) GetGrowth(ctx *gin.Context) {
	username, ok := usernameParam(ctx)
	if !ok {
		return
	}
	days := 30
	if v := ctx.Query("days"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			days = n
		}
	}
	prediction, err := h.dashboard.Growth(ctx.Request.Context(), username, days)
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, prediction)
}

// GetHistory returns stat snapshots clamped to the plan's history window
func (h *AnalyticsHandler) GetHistory(ctx *gin.Context) {
	username, ok := usernameParam(ctx)
	if !ok {
		return
	}
	limits := h.entitlement.Limits(ctx.Request.Context(), sessionUserID(ctx))
	historyDays := limits.HistoryDays
	if historyDays < 0 {
		historyDays = 0 // unlimited
	}

	snapshots, err := h.dashboard.History(ctx.Request.Context(), username, historyDays)
	if err != nil {
		logger.GetLogger().WithField("username", username).WithField("error", err.Error()).Warn("history read failed")
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"history": snapshots, "history_days": limits.HistoryDays})
}
