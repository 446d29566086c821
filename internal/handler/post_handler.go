package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/grad-konnect/showcase-api/internal/models"
	appErrors "github.com/grad-konnect/showcase-api/pkg/errors"
	"github.com/grad-konnect/showcase-api/pkg/response"
)

type postLifecycle interface {
	Submit(ctx context.Context, author string, form models.PostForm) (*models.Post, error)
	Review(ctx context.Context, id int64, req models.ReviewRequest) (*models.Post, error)
	Like(ctx context.Context, id int64, viewer string) (*models.Post, error)
	Share(ctx context.Context, id int64, viewer string) (*models.Post, error)
	AddComment(ctx context.Context, id int64, viewer string, req models.CommentRequest) (*models.Post, error)
	Get(ctx context.Context, id int64, viewer string) (*models.Post, error)
	List(ctx context.Context, viewer string, filter models.PostFilter) ([]models.Post, *models.Pagination, error)
	ReviewQueue(ctx context.Context, page, pageSize int) ([]models.Post, *models.Pagination, error)
}

// PostHandler exposes the project post lifecycle over HTTP.
type PostHandler struct {
	service postLifecycle
}

// NewPostHandler creates a new handler.
func NewPostHandler(svc postLifecycle) *PostHandler {
	return &PostHandler{service: svc}
}

// Create godoc
// @Summary Submit a project post
// @Description Create a new project post; it enters the review queue as pending
// @Tags Posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.PostForm true "Post payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /posts [post]
func (h *PostHandler) Create(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var form models.PostForm
	if err := c.ShouldBindJSON(&form); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid post payload"))
		return
	}

	post, err := h.service.Submit(c.Request.Context(), claims.Handle, form)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, post)
}

// Get godoc
// @Summary Get a post by id
// @Tags Posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /posts/{id} [get]
func (h *PostHandler) Get(c *gin.Context) {
	id, err := parsePostID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	post, err := h.service.Get(c.Request.Context(), id, viewerFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, post, nil)
}

// List godoc
// @Summary List posts
// @Description List posts, optionally filtered by status and author handle
// @Tags Posts
// @Produce json
// @Param status query string false "Filter by status (pending, approved, rejected)"
// @Param user query string false "Filter by author handle"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /posts [get]
func (h *PostHandler) List(c *gin.Context) {
	filter := models.PostFilter{
		Status:     models.PostStatus(c.Query("status")),
		UserHandle: c.Query("user"),
		Page:       queryInt(c, "page", 0),
		PageSize:   queryInt(c, "page_size", 0),
	}

	posts, pagination, err := h.service.List(c.Request.Context(), viewerFromContext(c), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, posts, pagination)
}

// Review godoc
// @Summary Review a pending post
// @Description Approve or reject a pending post; rejection requires a reason
// @Tags Posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Param payload body models.ReviewRequest true "Review decision"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /posts/{id}/review [post]
func (h *PostHandler) Review(c *gin.Context) {
	id, err := parsePostID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req models.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid review payload"))
		return
	}

	post, err := h.service.Review(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, post, nil)
}

// Like godoc
// @Summary Toggle like on an approved post
// @Tags Posts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /posts/{id}/like [post]
func (h *PostHandler) Like(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	id, err := parsePostID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	post, err := h.service.Like(c.Request.Context(), id, claims.Handle)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, post, nil)
}

// Share godoc
// @Summary Record a share of an approved post
// @Tags Posts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /posts/{id}/share [post]
func (h *PostHandler) Share(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	id, err := parsePostID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	post, err := h.service.Share(c.Request.Context(), id, claims.Handle)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, post, nil)
}

// Comment godoc
// @Summary Comment on an approved post
// @Tags Posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Param payload body models.CommentRequest true "Comment payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /posts/{id}/comments [post]
func (h *PostHandler) Comment(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	id, err := parsePostID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req models.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid comment payload"))
		return
	}

	post, err := h.service.AddComment(c.Request.Context(), id, claims.Handle, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusCreated, post, nil)
}

// ReviewQueue godoc
// @Summary List pending posts awaiting review
// @Tags Posts
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /review/queue [get]
func (h *PostHandler) ReviewQueue(c *gin.Context) {
	posts, pagination, err := h.service.ReviewQueue(c.Request.Context(), queryInt(c, "page", 0), queryInt(c, "page_size", 0))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, posts, pagination)
}

func parsePostID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, appErrors.Clone(appErrors.ErrValidation, "invalid post id")
	}
	return id, nil
}

func queryInt(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
