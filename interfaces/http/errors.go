package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"pulse-metrics/domain/model"
)

// statusFor maps the domain error taxonomy onto HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, model.ErrValidation), errors.Is(err, model.ErrSignature):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrConfiguration), errors.Is(err, model.ErrUpstream):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

func abortWithError(ctx *gin.Context, err error) {
	ctx.JSON(statusFor(err), gin.H{"error": err.Error()})
}

// sessionUserID resolves the caller's user id, set by the auth middleware or
// supplied explicitly on public routes
func sessionUserID(ctx *gin.Context) string {
	if id := ctx.GetString("user_id"); id != "" {
		return id
	}
	return ctx.Query("userId")
}
