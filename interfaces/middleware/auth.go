package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"

	"pulse-metrics/domain/dto"
	"pulse-metrics/domain/model"
	"pulse-metrics/domain/repository"
	"pulse-metrics/infrastructure/configuration"
	"pulse-metrics/infrastructure/logger"
)

// Auth validates the bearer token and resolves the session user. Handlers
// downstream read the user id from the "user_id" context key.
func Auth(userRepository repository.IUser) gin.HandlerFunc {
	unauthorized := dto.Res{ResponseCode: "401", ResponseMessage: "Unauthorized"}

	return func(ctx *gin.Context) {
		authorization := ctx.Request.Header.Get("Authorization")
		if authorization == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, unauthorized)
			return
		}
		parts := strings.Split(authorization, "Bearer ")
		if len(parts) != 2 {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, unauthorized)
			return
		}

		claims, token, err := parseToken(parts[1], configuration.C.App.SecretKey)
		if err != nil || !token.Valid {
			res := unauthorized
			res.ResponseMessage = describeTokenError(err)
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, res)
			return
		}

		if userRepository != nil {
			if _, err := userRepository.GetByUserName(ctx.Request.Context(), claims.UserName); err != nil {
				logger.GetLogger().WithField("user_name", claims.UserName).Warn("token user not found")
				ctx.AbortWithStatusJSON(http.StatusUnauthorized, unauthorized)
				return
			}
		}

		ctx.Set("user_id", claims.Issuer)
		ctx.Set("user_name", claims.UserName)
		ctx.Next()
	}
}

func describeTokenError(err error) string {
	var ve *jwt.ValidationError
	if errors.As(err, &ve) {
		if ve.Errors&jwt.ValidationErrorMalformed != 0 {
			return "Malformed token"
		}
		if ve.Errors&(jwt.ValidationErrorExpired|jwt.ValidationErrorNotValidYet) != 0 {
			return "Token expired or not yet valid"
		}
	}
	return "Unauthorized"
}

func parseToken(raw, secretKey string) (model.UserClaims, *jwt.Token, error) {
	var claims model.UserClaims
	token, err := jwt.ParseWithClaims(raw, &claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(secretKey), nil
	})
	if token == nil {
		token = &jwt.Token{}
	}
	return claims, token, err
}
