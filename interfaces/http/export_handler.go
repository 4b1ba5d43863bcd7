package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"pulse-metrics/infrastructure/filecsv"
	"pulse-metrics/usecase"
)

type IExportHandler interface {
	ExportVideos(ctx *gin.Context)
	ExportHistory(ctx *gin.Context)
}

// ExportHandler streams dashboard data as CSV downloads. Exports are a paid
// feature, checked per request.
type ExportHandler struct {
	dashboard   usecase.IDashboard
	entitlement usecase.IEntitlement
}

func NewExportHandler(dashboard usecase.IDashboard, entitlement usecase.IEntitlement) IExportHandler {
	return &ExportHandler{dashboard: dashboard, entitlement: entitlement}
}

func (h *ExportHandler) allowed(ctx *gin.Context) bool {
	limits := h.entitlement.Limits(ctx.Request.Context(), sessionUserID(ctx))
	if !h.entitlement.HasFeature(limits, usecase.FeatureExports) {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "exports require a Pro or Agency plan"})
		return false
	}
	return true
}

func (h *ExportHandler) ExportVideos(ctx *gin.Context) {
	username, ok := usernameParam(ctx)
	if !ok || !h.allowed(ctx) {
		return
	}
	videos, err := h.dashboard.Videos(ctx.Request.Context(), username, countParam(ctx, 0))
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.Header("Content-Type", "text/csv")
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s-videos.csv", username))
	if err := filecsv.WriteVideos(ctx.Writer, videos); err != nil {
		abortWithError(ctx, err)
	}
}

func (h *ExportHandler) ExportHistory(ctx *gin.Context) {
	username, ok := usernameParam(ctx)
	if !ok || !h.allowed(ctx) {
		return
	}
	limits := h.entitlement.Limits(ctx.Request.Context(), sessionUserID(ctx))
	historyDays := limits.HistoryDays
	if historyDays < 0 {
		historyDays = 0
	}
	snapshots, err := h.dashboard.History(ctx.Request.Context(), username, historyDays)
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.Header("Content-Type", "text/csv")
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s-history.csv", username))
	if err := filecsv.WriteSnapshots(ctx.Writer, snapshots); err != nil {
		abortWithError(ctx, err)
	}
}
