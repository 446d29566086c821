package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/grad-konnect/showcase-api/internal/models"
	"github.com/grad-konnect/showcase-api/internal/repository"
	appErrors "github.com/grad-konnect/showcase-api/pkg/errors"
)

type lifecyclePostRepository interface {
	FindByID(ctx context.Context, id int64, viewer string) (*models.Post, error)
	List(ctx context.Context, viewer string, filter models.PostFilter) ([]models.Post, int, error)
	Create(ctx context.Context, post *models.Post) error
	UpdateStatus(ctx context.Context, id int64, status models.PostStatus, reason *string, version int) error
	ToggleLike(ctx context.Context, id int64, viewer string, version int) (bool, error)
	IncrementShares(ctx context.Context, id int64, version int) error
	AddComment(ctx context.Context, comment *models.Comment, version int) error
}

type lifecycleUserRepository interface {
	FindByHandle(ctx context.Context, handle string) (*models.User, error)
	IncrementPostCount(ctx context.Context, handle string) error
}

// PostService enforces the post lifecycle: submissions enter pending,
// a mentor decision moves them to approved or rejected exactly once,
// and engagement is only accepted on approved posts.
type PostService struct {
	posts     lifecyclePostRepository
	users     lifecycleUserRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewPostService constructs a PostService instance.
func NewPostService(posts lifecyclePostRepository, users lifecycleUserRepository, validate *validator.Validate, logger *zap.Logger) *PostService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &PostService{posts: posts, users: users, validator: validate, logger: logger}
}

// Submit creates a new pending post for the given author.
func (s *PostService) Submit(ctx context.Context, author string, form models.PostForm) (*models.Post, error) {
	if err := s.validator.Struct(form); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid post payload")
	}

	user, err := s.users.FindByHandle(ctx, author)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "author not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load author")
	}
	if user.Role != models.RoleStudent {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only students can submit projects")
	}

	post := &models.Post{
		UserHandle:     author,
		Title:          form.Title,
		Content:        form.Content,
		ImageURL:       form.ImageURL,
		Hashtags:       parseHashtags(form.Hashtags),
		LivePreviewURL: form.LivePreviewURL,
		GithubURL:      form.GithubURL,
		Status:         models.PostPending,
	}

	if err := s.posts.Create(ctx, post); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create post")
	}
	post.CommentData = []models.Comment{}

	if err := s.users.IncrementPostCount(ctx, author); err != nil {
		s.logger.Warn("failed to increment author post count", zap.String("handle", author), zap.Error(err))
	}

	s.logger.Info("post submitted", zap.Int64("post_id", post.ID), zap.String("author", author))
	return post, nil
}

// Review applies a mentor decision to a pending post. Posts that already
// carry a decision cannot be re-reviewed, and a rejection needs a reason.
func (s *PostService) Review(ctx context.Context, id int64, req models.ReviewRequest) (*models.Post, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid review payload")
	}

	post, err := s.findPost(ctx, id, "")
	if err != nil {
		return nil, err
	}
	if post.Status != models.PostPending {
		return nil, appErrors.ErrAlreadyReviewed
	}

	var reason *string
	status := models.PostApproved
	if req.Decision == models.DecisionReject {
		trimmed := strings.TrimSpace(req.Reason)
		if trimmed == "" {
			return nil, appErrors.Clone(appErrors.ErrValidation, "a rejection reason is required")
		}
		status = models.PostRejected
		reason = &trimmed
	}

	if err := s.posts.UpdateStatus(ctx, id, status, reason, post.Version); err != nil {
		return nil, s.mapWriteError(err, "failed to update post status")
	}

	s.logger.Info("post reviewed", zap.Int64("post_id", id), zap.String("decision", string(req.Decision)))
	return s.findPost(ctx, id, "")
}

// Like toggles the viewer's like on an approved post.
func (s *PostService) Like(ctx context.Context, id int64, viewer string) (*models.Post, error) {
	post, err := s.approvedPost(ctx, id, viewer)
	if err != nil {
		return nil, err
	}

	if _, err := s.posts.ToggleLike(ctx, id, viewer, post.Version); err != nil {
		return nil, s.mapWriteError(err, "failed to toggle like")
	}
	return s.findPost(ctx, id, viewer)
}

// Share increments the share counter of an approved post.
func (s *PostService) Share(ctx context.Context, id int64, viewer string) (*models.Post, error) {
	post, err := s.approvedPost(ctx, id, viewer)
	if err != nil {
		return nil, err
	}

	if err := s.posts.IncrementShares(ctx, id, post.Version); err != nil {
		return nil, s.mapWriteError(err, "failed to increment shares")
	}
	return s.findPost(ctx, id, viewer)
}

// AddComment appends a comment to an approved post.
func (s *PostService) AddComment(ctx context.Context, id int64, viewer string, req models.CommentRequest) (*models.Post, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "comment text is required")
	}

	post, err := s.approvedPost(ctx, id, viewer)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID:     id,
		UserHandle: viewer,
		Text:       strings.TrimSpace(req.Text),
	}
	if err := s.posts.AddComment(ctx, comment, post.Version); err != nil {
		return nil, s.mapWriteError(err, "failed to add comment")
	}
	return s.findPost(ctx, id, viewer)
}

// Get returns a single post with the liked flag computed for the viewer.
func (s *PostService) Get(ctx context.Context, id int64, viewer string) (*models.Post, error) {
	return s.findPost(ctx, id, viewer)
}

// List returns posts matching the filter with pagination metadata.
func (s *PostService) List(ctx context.Context, viewer string, filter models.PostFilter) ([]models.Post, *models.Pagination, error) {
	posts, total, err := s.posts.List(ctx, viewer, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list posts")
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 50
	}
	return posts, &models.Pagination{Page: page, PageSize: pageSize, TotalCount: total}, nil
}

// ReviewQueue lists the posts awaiting a mentor decision, paginated.
func (s *PostService) ReviewQueue(ctx context.Context, page, pageSize int) ([]models.Post, *models.Pagination, error) {
	filter := models.PostFilter{Status: models.PostPending, Page: page, PageSize: pageSize}
	posts, total, err := s.posts.List(ctx, "", filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list review queue")
	}

	if page < 1 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 50
	}
	return posts, &models.Pagination{Page: page, PageSize: pageSize, TotalCount: total}, nil
}

func (s *PostService) approvedPost(ctx context.Context, id int64, viewer string) (*models.Post, error) {
	post, err := s.findPost(ctx, id, viewer)
	if err != nil {
		return nil, err
	}
	if post.Status != models.PostApproved {
		return nil, appErrors.ErrPostNotApproved
	}
	return post, nil
}

func (s *PostService) findPost(ctx context.Context, id int64, viewer string) (*models.Post, error) {
	post, err := s.posts.FindByID(ctx, id, viewer)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "post not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load post")
	}
	return post, nil
}

func (s *PostService) mapWriteError(err error, message string) error {
	if errors.Is(err, repository.ErrStaleVersion) {
		return appErrors.ErrStaleWrite
	}
	if errors.Is(err, sql.ErrNoRows) {
		return appErrors.Clone(appErrors.ErrNotFound, "post not found")
	}
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, message)
}

// parseHashtags splits a comma-delimited string into trimmed, non-empty tags.
func parseHashtags(raw string) []string {
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			tags = append(tags, trimmed)
		}
	}
	return tags
}
