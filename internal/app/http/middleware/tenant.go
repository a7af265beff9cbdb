package middleware

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/manmeet1049/bizzler/internal/api/response"
	"github.com/manmeet1049/bizzler/internal/domain/access"
	ierr "github.com/manmeet1049/bizzler/internal/errors"
	"github.com/manmeet1049/bizzler/internal/service"
)

const BusinessHeader = "X-Business-ID"

// TenantMiddleware resolves the business named by the X-Business-ID header
// into an AuthContext for the authenticated caller. Must run after
// AuthMiddleware.
func TenantMiddleware(businesses service.BusinessService) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader(BusinessHeader))
		if raw == "" {
			response.Error(c, ierr.NewValidationError(BusinessHeader))
			c.Abort()
			return
		}
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			response.Error(c, ierr.WithError(ierr.NewValidationError(BusinessHeader)).
				WithHint("Invalid business ID.").
				Mark(ierr.ErrValidation))
			c.Abort()
			return
		}

		auth, err := businesses.ResolveAuthContext(c.Request.Context(), Actor(c), uint(id))
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(ctxAuth, auth)
		c.Next()
	}
}

// RequireCapability rejects the request unless the resolved AuthContext holds
// every capability given.
func RequireCapability(caps ...access.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := AuthContext(c).Require(caps...); err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}
		c.Next()
	}
}

// AuthContext returns what TenantMiddleware resolved, or an empty context.
func AuthContext(c *gin.Context) access.AuthContext {
	if v, ok := c.Get(ctxAuth); ok {
		if auth, ok := v.(access.AuthContext); ok {
			return auth
		}
	}
	return access.AuthContext{Actor: Actor(c)}
}
