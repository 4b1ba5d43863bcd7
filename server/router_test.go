package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpHandler "pulse-metrics/interfaces/http"
)

func testRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	handlers := Handlers{
		Billing:      httpHandler.NewBillingHandler(nil, nil),
		Analytics:    httpHandler.NewAnalyticsHandler(nil, nil, nil),
		Trending:     httpHandler.NewTrendingHandler(nil, nil),
		Competitors:  httpHandler.NewCompetitorHandler(nil, nil),
		Subscription: httpHandler.NewSubscriptionHandler(nil),
		Export:       httpHandler.NewExportHandler(nil, nil),
	}
	return InitiateRouter(handlers, nil)
}

func TestHealthz(t *testing.T) {
	router := testRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ok")
}

func TestCORSPreflight(t *testing.T) {
	router := testRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/api/stripe/subscription-status", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "GET")
	router.ServeHTTP(w, req)

	assert.Less(t, w.Code, 300)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestMethodMismatchReturns405WithAllow(t *testing.T) {
	router := testRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/stripe/webhook", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Contains(t, w.Header().Get("Allow"), "POST")
}

func TestAuthenticatedRoutesRejectMissingToken(t *testing.T) {
	router := testRouter()

	for _, path := range []string{
		"/api/analytics/profile?username=dana",
		"/api/subscription",
		"/api/competitors",
	} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestPathMatches(t *testing.T) {
	assert.True(t, pathMatches("/api/competitors/:username", "/api/competitors/rival"))
	assert.True(t, pathMatches("/api/stripe/webhook", "/api/stripe/webhook"))
	assert.False(t, pathMatches("/api/stripe/webhook", "/api/stripe"))
	assert.False(t, pathMatches("/api/competitors/:username", "/api/trending/sounds"))
}
