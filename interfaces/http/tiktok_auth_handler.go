package http

import (
	"crypto/rand"
	"encoding/base64"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"

	"pulse-metrics/domain/model"
	"pulse-metrics/domain/repository"
	"pulse-metrics/infrastructure/configuration"
	"pulse-metrics/infrastructure/logger"
)

// ITikTokAuthHandler defines the TikTok account connect flow
type ITikTokAuthHandler interface {
	GetAuthURL(ctx *gin.Context)
	HandleCallback(ctx *gin.Context)
	Status(ctx *gin.Context)
	Disconnect(ctx *gin.Context)
}

// TikTokAuthHandler implements the OAuth connect flow against TikTok's v2
// endpoints. Tokens are persisted per user so the dashboard can resolve the
// connected account without re-authorizing.
type TikTokAuthHandler struct {
	oauth2Config *oauth2.Config
	accounts     repository.IConnectedAccountStore
}

func NewTikTokAuthHandler(accounts repository.IConnectedAccountStore) (ITikTokAuthHandler, error) {
	config, err := configuration.GetTikTokOAuthConfig()
	if err != nil {
		return nil, err
	}

	oauth2Config := &oauth2.Config{
		ClientID:     config.ClientKey,
		ClientSecret: config.ClientSecret,
		RedirectURL:  config.RedirectURL,
		Scopes:       config.Scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:  "https://www.tiktok.com/v2/auth/authorize/",
			TokenURL: "https://open.tiktokapis.com/v2/oauth/token/",
		},
	}

	return &TikTokAuthHandler{oauth2Config: oauth2Config, accounts: accounts}, nil
}

func (h *TikTokAuthHandler) configured() bool {
	return h.oauth2Config.ClientID != "" && h.oauth2Config.ClientSecret != ""
}

// GetAuthURL handles GET /auth/tiktok
func (h *TikTokAuthHandler) GetAuthURL(ctx *gin.Context) {
	if !h.configured() {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": "TikTok OAuth is not configured"})
		return
	}
	state := generateRandomState()
	ctx.SetCookie("oauth_state", state, 600, "/", "", false, true)

	// TikTok expects client_key instead of the standard client_id
	authURL := h.oauth2Config.AuthCodeURL(state,
		oauth2.SetAuthURLParam("client_key", h.oauth2Config.ClientID))

	ctx.JSON(http.StatusOK, gin.H{"auth_url": authURL})
}

// HandleCallback handles GET /auth/tiktok/callback
func (h *TikTokAuthHandler) HandleCallback(ctx *gin.Context) {
	if errorParam := ctx.Query("error"); errorParam != "" {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":       errorParam,
			"description": ctx.Query("error_description"),
		})
		return
	}

	state := ctx.Query("state")
	cookieState, _ := ctx.Cookie("oauth_state")
	if state == "" || (cookieState != "" && state != cookieState) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "state mismatch"})
		return
	}

	code := ctx.Query("code")
	if code == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "authorization code not found"})
		return
	}

	token, err := h.oauth2Config.Exchange(ctx.Request.Context(), code,
		oauth2.SetAuthURLParam("client_key", h.oauth2Config.ClientID))
	if err != nil {
		logger.GetLogger().WithField("error", err.Error()).Error("token exchange failed")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to exchange code for token"})
		return
	}
	ctx.SetCookie("oauth_state", "", -1, "/", "", false, true)

	userID := sessionUserID(ctx)
	if userID != "" && h.accounts != nil {
		openID, _ := token.Extra("open_id").(string)
		account := &model.ConnectedAccount{
			UserID:       userID,
			OpenID:       openID,
			AccessToken:  token.AccessToken,
			RefreshToken: token.RefreshToken,
		}
		if !token.Expiry.IsZero() {
			expiry := token.Expiry
			account.ExpiresAt = &expiry
		}
		if err := h.accounts.Upsert(ctx.Request.Context(), account); err != nil {
			logger.GetLogger().WithField("error", err.Error()).Error("failed to persist connected account")
		}
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "connected_at": time.Now().UTC()})
}

// Status handles GET /api/tiktok/oauth/status
func (h *TikTokAuthHandler) Status(ctx *gin.Context) {
	if h.accounts == nil {
		ctx.JSON(http.StatusOK, gin.H{"connected": false, "configured": h.configured()})
		return
	}
	account, err := h.accounts.Get(ctx.Request.Context(), sessionUserID(ctx))
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	if account == nil {
		ctx.JSON(http.StatusOK, gin.H{"connected": false, "configured": h.configured()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"connected": true, "configured": h.configured(), "account": account})
}

// Disconnect handles DELETE /api/tiktok/oauth
func (h *TikTokAuthHandler) Disconnect(ctx *gin.Context) {
	if h.accounts == nil {
		ctx.JSON(http.StatusOK, gin.H{"disconnected": false})
		return
	}
	if err := h.accounts.Delete(ctx.Request.Context(), sessionUserID(ctx)); err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"disconnected": true})
}

// generateRandomState generates a random state parameter for OAuth2
func generateRandomState() string {
	b := make([]byte, 32)
	rand.Read(b)
	return base64.StdEncoding.EncodeToString(b)
}
