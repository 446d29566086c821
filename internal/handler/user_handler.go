package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/grad-konnect/showcase-api/internal/models"
	appErrors "github.com/grad-konnect/showcase-api/pkg/errors"
	"github.com/grad-konnect/showcase-api/pkg/response"
)

type profileService interface {
	Get(ctx context.Context, handle string) (*models.Profile, error)
	UpdateProfile(ctx context.Context, handle, actor string, req models.UpdateProfileRequest) (*models.Profile, error)
}

// UserHandler serves public profiles and profile updates.
type UserHandler struct {
	service profileService
}

// NewUserHandler creates a new handler.
func NewUserHandler(svc profileService) *UserHandler {
	return &UserHandler{service: svc}
}

// GetProfile godoc
// @Summary Get a user profile by handle
// @Tags Users
// @Produce json
// @Param handle path string true "User handle"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /users/{handle} [get]
func (h *UserHandler) GetProfile(c *gin.Context) {
	profile, err := h.service.Get(c.Request.Context(), c.Param("handle"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, profile, nil)
}

// UpdateProfile godoc
// @Summary Update own profile
// @Description Update name, bio and avatar; users may only update their own profile
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param handle path string true "User handle"
// @Param payload body models.UpdateProfileRequest true "Profile payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /users/{handle} [put]
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid profile payload"))
		return
	}

	profile, err := h.service.UpdateProfile(c.Request.Context(), c.Param("handle"), claims.Handle, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, profile, nil)
}
