package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/grad-konnect/showcase-api/internal/models"
	appErrors "github.com/grad-konnect/showcase-api/pkg/errors"
	"github.com/grad-konnect/showcase-api/pkg/response"
)

// RequireRoles enforces role-based access control for routes.
// The pseudo-role "SELF" additionally allows the request when the
// :handle path parameter matches the authenticated user.
func RequireRoles(allowed ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claimsValue, exists := c.Get(ContextUserKey)
		if !exists {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}
		claims := claimsValue.(*models.JWTClaims)

		allowSelf := false
		allowedRoles := make(map[models.UserRole]struct{})

		for _, a := range allowed {
			if a == "SELF" {
				allowSelf = true
				continue
			}
			allowedRoles[models.UserRole(a)] = struct{}{}
		}

		if _, ok := allowedRoles[claims.Role]; ok {
			c.Next()
			return
		}

		if allowSelf {
			if target := c.Param("handle"); target != "" && target == claims.Handle {
				c.Next()
				return
			}
		}

		response.Error(c, appErrors.ErrForbidden)
		c.Abort()
	}
}
