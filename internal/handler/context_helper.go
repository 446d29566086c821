package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/grad-konnect/showcase-api/internal/middleware"
	"github.com/grad-konnect/showcase-api/internal/models"
)

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.JWTClaims)
	if !ok {
		return nil
	}
	return claims
}

func viewerFromContext(c *gin.Context) string {
	if claims := claimsFromContext(c); claims != nil {
		return claims.Handle
	}
	return ""
}
