package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/grad-konnect/showcase-api/internal/models"
)

func rbacRouter(claims *models.JWTClaims, allowed ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if claims != nil {
			c.Set(ContextUserKey, claims)
		}
		c.Next()
	})
	r.PUT("/users/:handle", RequireRoles(allowed...), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func TestRequireRolesAllowsMatchingRole(t *testing.T) {
	r := rbacRouter(&models.JWTClaims{Handle: "ada_lovelace", Role: models.RoleMentor}, string(models.RoleMentor))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/users/pixel_pioneer", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRolesBlocksOtherRoles(t *testing.T) {
	r := rbacRouter(&models.JWTClaims{Handle: "pixel_pioneer", Role: models.RoleStudent}, string(models.RoleMentor))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/users/pixel_pioneer", nil))

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireRolesSelfMatchesHandleParam(t *testing.T) {
	r := rbacRouter(&models.JWTClaims{Handle: "pixel_pioneer", Role: models.RoleStudent}, "SELF")

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/users/pixel_pioneer", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRolesSelfRejectsOtherHandle(t *testing.T) {
	r := rbacRouter(&models.JWTClaims{Handle: "pixel_pioneer", Role: models.RoleStudent}, "SELF")

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/users/data_dynamo", nil))

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireRolesUnauthenticated(t *testing.T) {
	r := rbacRouter(nil, string(models.RoleMentor))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/users/pixel_pioneer", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
