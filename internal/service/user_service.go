package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/grad-konnect/showcase-api/internal/models"
	appErrors "github.com/grad-konnect/showcase-api/pkg/errors"
)

type profileUserRepository interface {
	FindByHandle(ctx context.Context, handle string) (*models.User, error)
	UpdateProfile(ctx context.Context, handle, name, bio, avatarURL string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
}

// UserService provides profile use cases.
type UserService struct {
	repo      profileUserRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewUserService constructs a UserService instance.
func NewUserService(repo profileUserRepository, validate *validator.Validate, logger *zap.Logger) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &UserService{repo: repo, validator: validate, logger: logger}
}

// Get returns the public profile for a handle.
func (s *UserService) Get(ctx context.Context, handle string) (*models.Profile, error) {
	user, err := s.repo.FindByHandle(ctx, handle)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "user not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load user")
	}
	profile := user.Profile()
	return &profile, nil
}

// UpdateProfile changes the mutable profile fields. Only the owner may
// update their profile; role and handle are immutable.
func (s *UserService) UpdateProfile(ctx context.Context, handle, requester string, req models.UpdateProfileRequest) (*models.Profile, error) {
	if handle != requester {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "cannot update another user's profile")
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid profile payload")
	}

	user, err := s.repo.UpdateProfile(ctx, handle, req.Name, req.Bio, req.AvatarURL)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "user not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update profile")
	}

	s.logger.Info("profile updated", zap.String("handle", handle))
	profile := user.Profile()
	return &profile, nil
}

// Profiles returns all public profiles keyed by handle.
func (s *UserService) Profiles(ctx context.Context) (map[string]models.Profile, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list users")
	}
	profiles := make(map[string]models.Profile, len(users))
	for i := range users {
		profiles[users[i].Handle] = users[i].Profile()
	}
	return profiles, nil
}
