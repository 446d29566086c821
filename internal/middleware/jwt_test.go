package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/grad-konnect/showcase-api/internal/models"
	appErrors "github.com/grad-konnect/showcase-api/pkg/errors"
)

type validatorStub struct {
	claims *models.JWTClaims
	err    error
	token  string
}

func (v *validatorStub) ValidateToken(token string) (*models.JWTClaims, error) {
	v.token = token
	if v.err != nil {
		return nil, v.err
	}
	return v.claims, nil
}

func jwtRouter(mw gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", mw, func(c *gin.Context) {
		if claims, ok := c.Get(ContextUserKey); ok {
			c.JSON(http.StatusOK, gin.H{"handle": claims.(*models.JWTClaims).Handle})
			return
		}
		c.JSON(http.StatusOK, gin.H{"handle": ""})
	})
	return r
}

func TestJWTAcceptsBearerToken(t *testing.T) {
	stub := &validatorStub{claims: &models.JWTClaims{Handle: "pixel_pioneer", Role: models.RoleStudent}}
	r := jwtRouter(JWT(stub))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer token-123")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "token-123", stub.token)
	assert.Contains(t, rec.Body.String(), "pixel_pioneer")
}

func TestJWTMissingHeader(t *testing.T) {
	r := jwtRouter(JWT(&validatorStub{}))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/protected", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTMalformedHeader(t *testing.T) {
	r := jwtRouter(JWT(&validatorStub{}))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Basic abc")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTInvalidToken(t *testing.T) {
	r := jwtRouter(JWT(&validatorStub{err: appErrors.Clone(appErrors.ErrUnauthorized, "invalid or expired token")}))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer expired")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestOptionalJWTPassesWithoutHeader(t *testing.T) {
	r := jwtRouter(OptionalJWT(&validatorStub{}))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/protected", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"handle":""`)
}

func TestOptionalJWTIgnoresInvalidToken(t *testing.T) {
	r := jwtRouter(OptionalJWT(&validatorStub{err: appErrors.ErrUnauthorized}))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer bad")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"handle":""`)
}

func TestOptionalJWTAttachesClaims(t *testing.T) {
	r := jwtRouter(OptionalJWT(&validatorStub{claims: &models.JWTClaims{Handle: "data_dynamo", Role: models.RoleStudent}}))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer good")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "data_dynamo")
}
