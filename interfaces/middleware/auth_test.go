package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pulse-metrics/infrastructure/configuration"
	"pulse-metrics/infrastructure/utils"
)

func protectedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/api/me", Auth(nil), func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"user_id": ctx.GetString("user_id")})
	})
	return router
}

func signedToken(t *testing.T, secret string, expiresAt int64) string {
	t.Helper()
	token, err := utils.GenerateToken(map[string]interface{}{
		"user_name": "danacreates",
		"iss":       "user-1",
		"exp":       expiresAt,
	}, secret)
	require.NoError(t, err)
	return token
}

func TestAuthRejectsMissingHeader(t *testing.T) {
	router := protectedRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRejectsMalformedToken(t *testing.T) {
	router := protectedRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthAcceptsValidToken(t *testing.T) {
	previous := configuration.C.App.SecretKey
	configuration.C.App.SecretKey = "test-secret"
	defer func() { configuration.C.App.SecretKey = previous }()

	router := protectedRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, "test-secret", time.Now().Add(time.Hour).Unix()))
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":"user-1"`)
}

func TestAuthRejectsExpiredToken(t *testing.T) {
	previous := configuration.C.App.SecretKey
	configuration.C.App.SecretKey = "test-secret"
	defer func() { configuration.C.App.SecretKey = previous }()

	router := protectedRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, "test-secret", time.Now().Add(-time.Hour).Unix()))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRejectsWrongSecret(t *testing.T) {
	previous := configuration.C.App.SecretKey
	configuration.C.App.SecretKey = "test-secret"
	defer func() { configuration.C.App.SecretKey = previous }()

	router := protectedRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, "other-secret", time.Now().Add(time.Hour).Unix()))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
