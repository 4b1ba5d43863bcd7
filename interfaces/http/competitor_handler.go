package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pulse-metrics/domain/dto"
	"pulse-metrics/infrastructure/logger"
	"pulse-metrics/usecase"
)

type ICompetitorHandler interface {
	List(ctx *gin.Context)
	Add(ctx *gin.Context)
	Remove(ctx *gin.Context)
	GetData(ctx *gin.Context)
	Compare(ctx *gin.Context)
}

// CompetitorHandler manages the caller's tracked competitor set. Adding a
// competitor is quota-checked against the plan.
type CompetitorHandler struct {
	competitors usecase.ICompetitor
	entitlement usecase.IEntitlement
}

func NewCompetitorHandler(competitors usecase.ICompetitor, entitlement usecase.IEntitlement) ICompetitorHandler {
	return &CompetitorHandler{competitors: competitors, entitlement: entitlement}
}

func (h *CompetitorHandler) List(ctx *gin.Context) {
	handles, err := h.competitors.List(ctx.Request.Context(), sessionUserID(ctx))
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	if handles == nil {
		handles = []string{}
	}
	ctx.JSON(http.StatusOK, gin.H{"competitors": handles})
}

func (h *CompetitorHandler) Add(ctx *gin.Context) {
	userID := sessionUserID(ctx)
	var req dto.CompetitorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "username is required"})
		return
	}

	existing, err := h.competitors.List(ctx.Request.Context(), userID)
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	limits := h.entitlement.Limits(ctx.Request.Context(), userID)
	if !h.entitlement.WithinLimit(limits, usecase.FeatureCompetitors, len(existing)) {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "competitor limit reached for this plan"})
		return
	}

	if err := h.competitors.Add(ctx.Request.Context(), userID, req.Username); err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"added": req.Username})
}

func (h *CompetitorHandler) Remove(ctx *gin.Context) {
	username := ctx.Param("username")
	if err := h.competitors.Remove(ctx.Request.Context(), sessionUserID(ctx), username); err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"removed": username})
}

func (h *CompetitorHandler) GetData(ctx *gin.Context) {
	data, err := h.competitors.Data(ctx.Request.Context(), sessionUserID(ctx))
	if err != nil {
		logger.GetLogger().WithField("error", err.Error()).Warn("competitor data fetch failed")
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"competitors": data})
}

func (h *CompetitorHandler) Compare(ctx *gin.Context) {
	username, ok := usernameParam(ctx)
	if !ok {
		return
	}
	report, err := h.competitors.Compare(ctx.Request.Context(), sessionUserID(ctx), username)
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, report)
}
