package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grad-konnect/showcase-api/internal/models"
	appErrors "github.com/grad-konnect/showcase-api/pkg/errors"
)

type profileRepoStub struct {
	users map[string]*models.User
}

func newProfileRepoStub(users ...*models.User) *profileRepoStub {
	stub := &profileRepoStub{users: make(map[string]*models.User)}
	for _, u := range users {
		stub.users[u.Handle] = u
	}
	return stub
}

func (s *profileRepoStub) FindByHandle(ctx context.Context, handle string) (*models.User, error) {
	user, ok := s.users[handle]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

func (s *profileRepoStub) UpdateProfile(ctx context.Context, handle, name, bio, avatarURL string) (*models.User, error) {
	user, ok := s.users[handle]
	if !ok {
		return nil, sql.ErrNoRows
	}
	user.Name = name
	user.Bio = bio
	user.AvatarURL = avatarURL
	copied := *user
	return &copied, nil
}

func (s *profileRepoStub) List(ctx context.Context) ([]models.User, error) {
	result := make([]models.User, 0, len(s.users))
	for _, user := range s.users {
		result = append(result, *user)
	}
	return result, nil
}

func TestUserServiceGetStudentProfileStats(t *testing.T) {
	repo := newProfileRepoStub(&models.User{
		Handle: "pixel_pioneer", Name: "Priya Sharma", Role: models.RoleStudent, PostsCount: 3,
	})
	svc := NewUserService(repo, nil, nil)

	profile, err := svc.Get(context.Background(), "pixel_pioneer")
	require.NoError(t, err)
	require.NotNil(t, profile.Stats.Posts)
	assert.Equal(t, 3, *profile.Stats.Posts)
	assert.Nil(t, profile.Stats.Mentees)
	assert.Nil(t, profile.Stats.Rating)
}

func TestUserServiceGetMentorProfileStats(t *testing.T) {
	mentees := 8
	rating := "99.1"
	repo := newProfileRepoStub(&models.User{
		Handle: "prof_davinci", Name: "Dr. Alistair Finch", Role: models.RoleMentor,
		Mentees: &mentees, Rating: &rating,
	})
	svc := NewUserService(repo, nil, nil)

	profile, err := svc.Get(context.Background(), "prof_davinci")
	require.NoError(t, err)
	assert.Nil(t, profile.Stats.Posts)
	require.NotNil(t, profile.Stats.Mentees)
	assert.Equal(t, 8, *profile.Stats.Mentees)
	require.NotNil(t, profile.Stats.Rating)
	assert.Equal(t, "99.1", *profile.Stats.Rating)
}

func TestUserServiceGetUnknownHandle(t *testing.T) {
	svc := NewUserService(newProfileRepoStub(), nil, nil)

	_, err := svc.Get(context.Background(), "ghost")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestUserServiceUpdateProfileSelfOnly(t *testing.T) {
	repo := newProfileRepoStub(&models.User{Handle: "pixel_pioneer", Name: "Priya Sharma", Role: models.RoleStudent})
	svc := NewUserService(repo, nil, nil)

	_, err := svc.UpdateProfile(context.Background(), "pixel_pioneer", "data_dynamo", models.UpdateProfileRequest{Name: "Hacker"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
	assert.Equal(t, "Priya Sharma", repo.users["pixel_pioneer"].Name)
}

func TestUserServiceUpdateProfile(t *testing.T) {
	repo := newProfileRepoStub(&models.User{Handle: "pixel_pioneer", Name: "Priya Sharma", Role: models.RoleStudent})
	svc := NewUserService(repo, nil, nil)

	profile, err := svc.UpdateProfile(context.Background(), "pixel_pioneer", "pixel_pioneer", models.UpdateProfileRequest{
		Name:      "Priya S.",
		Bio:       "Design systems nerd.",
		AvatarURL: "https://example.com/avatar.png",
	})
	require.NoError(t, err)
	assert.Equal(t, "Priya S.", profile.Name)
	assert.Equal(t, "Design systems nerd.", profile.Bio)
	// handle and role never change on a profile update
	assert.Equal(t, "pixel_pioneer", profile.Handle)
	assert.Equal(t, models.RoleStudent, profile.Role)
}

func TestUserServiceProfilesKeyedByHandle(t *testing.T) {
	repo := newProfileRepoStub(
		&models.User{Handle: "pixel_pioneer", Role: models.RoleStudent},
		&models.User{Handle: "prof_davinci", Role: models.RoleMentor},
	)
	svc := NewUserService(repo, nil, nil)

	profiles, err := svc.Profiles(context.Background())
	require.NoError(t, err)
	assert.Len(t, profiles, 2)
	assert.Contains(t, profiles, "pixel_pioneer")
	assert.Contains(t, profiles, "prof_davinci")
}
