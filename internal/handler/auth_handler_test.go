package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grad-konnect/showcase-api/internal/middleware"
	"github.com/grad-konnect/showcase-api/internal/models"
)

func TestAuthHandlerLoginRejectsMalformedJSON(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewAuthHandler(nil)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"role":`))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Login(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthHandlerMe(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewAuthHandler(nil)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	c.Set(middleware.ContextUserKey, &models.JWTClaims{
		Handle: "pixel_pioneer",
		Name:   "Priya Sharma",
		Email:  "priya@example.com",
		Role:   models.RoleStudent,
	})

	h.Me(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "pixel_pioneer")
	assert.Contains(t, rec.Body.String(), "priya@example.com")
}

func TestAuthHandlerMeRequiresAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewAuthHandler(nil)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/auth/me", nil)

	h.Me(c)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthHandlerLogoutRequiresAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewAuthHandler(nil)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/auth/logout", strings.NewReader(`{"refresh_token":"x"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Logout(c)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
