package middleware

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/manmeet1049/bizzler/internal/api/response"
	"github.com/manmeet1049/bizzler/internal/domain/access"
	ierr "github.com/manmeet1049/bizzler/internal/errors"
	"github.com/manmeet1049/bizzler/internal/service"
)

const (
	ctxUserID = "user_id"
	ctxEmail  = "email"
	ctxAuth   = "auth_context"
)

func unauthorized(c *gin.Context, hint string) {
	response.Error(c, ierr.NewError(strings.ToLower(hint)).
		WithHint(hint).
		Mark(ierr.ErrUnauthorized))
	c.Abort()
}

// AuthMiddleware validates the bearer token and stores the caller's id and
// email on the context.
func AuthMiddleware(secret string) gin.HandlerFunc {
	jwtKey := []byte(secret)

	return func(c *gin.Context) {
		if len(jwtKey) == 0 {
			response.Error(c, ierr.NewError("jwt secret not configured").
				WithHint("JWT secret not configured.").
				Mark(ierr.ErrNotConfigured))
			c.Abort()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			unauthorized(c, "Authorization header missing.")
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			unauthorized(c, "Bearer token malformed.")
			return
		}

		token, err := jwt.Parse(strings.TrimSpace(tokenString), func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return jwtKey, nil
		})
		if err != nil || !token.Valid {
			unauthorized(c, "Invalid or expired token.")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			unauthorized(c, "Invalid token claims.")
			return
		}
		// tokens without a type predate refresh tokens and are access tokens
		if tokenType, ok := claims["token_type"].(string); ok && tokenType != service.TokenTypeAccess {
			unauthorized(c, "Access token required.")
			return
		}
		userID, ok := claims["user_id"].(float64)
		if !ok || userID <= 0 {
			unauthorized(c, "Invalid token claims.")
			return
		}

		c.Set(ctxUserID, uint(userID))
		if email, ok := claims["email"].(string); ok {
			c.Set(ctxEmail, email)
		}
		c.Next()
	}
}

// Actor returns the authenticated caller set by AuthMiddleware.
func Actor(c *gin.Context) access.Actor {
	return access.Actor{
		ID:    c.GetUint(ctxUserID),
		Email: c.GetString(ctxEmail),
	}
}
