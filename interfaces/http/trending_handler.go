package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pulse-metrics/domain/model"
	"pulse-metrics/usecase"
)

type ITrendingHandler interface {
	GetSounds(ctx *gin.Context)
	GetHashtags(ctx *gin.Context)
	GetVideos(ctx *gin.Context)
	SearchUsers(ctx *gin.Context)
	SearchVideos(ctx *gin.Context)
}

// TrendingHandler serves the discovery feeds. Free-tier responses are
// truncated to the plan's trending allowance.
type TrendingHandler struct {
	trending    usecase.ITrending
	entitlement usecase.IEntitlement
}

func NewTrendingHandler(trending usecase.ITrending, entitlement usecase.IEntitlement) ITrendingHandler {
	return &TrendingHandler{trending: trending, entitlement: entitlement}
}

// capped trims a feed to the plan allowance; Unlimited passes through
func capped[T any](items []T, limit int) []T {
	if limit == model.Unlimited || len(items) <= limit {
		return items
	}
	return items[:limit]
}

func (h *TrendingHandler) GetSounds(ctx *gin.Context) {
	sounds, err := h.trending.Sounds(ctx.Request.Context(), ctx.Query("region"))
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	limits := h.entitlement.Limits(ctx.Request.Context(), sessionUserID(ctx))
	ctx.JSON(http.StatusOK, gin.H{"sounds": capped(sounds, limits.TrendingSounds)})
}

func (h *TrendingHandler) GetHashtags(ctx *gin.Context) {
	hashtags, err := h.trending.Hashtags(ctx.Request.Context(), ctx.Query("region"))
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	limits := h.entitlement.Limits(ctx.Request.Context(), sessionUserID(ctx))
	ctx.JSON(http.StatusOK, gin.H{"hashtags": capped(hashtags, limits.Hashtags)})
}

func (h *TrendingHandler) GetVideos(ctx *gin.Context) {
	videos, err := h.trending.Videos(ctx.Request.Context())
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"videos": videos})
}

func (h *TrendingHandler) SearchUsers(ctx *gin.Context) {
	users, err := h.trending.SearchUsers(ctx.Request.Context(), ctx.Query("q"))
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"users": users})
}

func (h *TrendingHandler) SearchVideos(ctx *gin.Context) {
	videos, err := h.trending.SearchVideos(ctx.Request.Context(), ctx.Query("q"))
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"videos": videos})
}
