package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grad-konnect/showcase-api/internal/models"
)

func userRows(now time.Time) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"handle", "name", "avatar_url", "bio", "role", "department", "year",
		"posts_count", "mentees", "rating", "email", "password_hash", "created_at", "updated_at",
	}).AddRow(
		"pixel_pioneer", "Priya Sharma", "https://example.com/a.png", "UI/UX enthusiast.", "student", "CSE", "3rd Year",
		3, nil, nil, "priya.sharma@example.com", "$2a$10$hash", now, now,
	)
}

func TestUserRepositoryFindByHandle(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	mock.ExpectQuery(`SELECT .+ FROM users WHERE handle = \$1 LIMIT 1`).
		WithArgs("pixel_pioneer").
		WillReturnRows(userRows(time.Now()))

	user, err := repo.FindByHandle(context.Background(), "pixel_pioneer")
	require.NoError(t, err)
	assert.Equal(t, "Priya Sharma", user.Name)
	assert.Equal(t, models.RoleStudent, user.Role)
	assert.Equal(t, 3, user.PostsCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryFindByRoleAndEmail(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	mock.ExpectQuery(`SELECT .+ FROM users WHERE role = \$1 AND email = \$2 LIMIT 1`).
		WithArgs("student", "priya.sharma@example.com").
		WillReturnRows(userRows(time.Now()))

	user, err := repo.FindByRoleAndEmail(context.Background(), models.RoleStudent, "priya.sharma@example.com")
	require.NoError(t, err)
	assert.Equal(t, "pixel_pioneer", user.Handle)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryFindByRoleAndEmailNotFound(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	mock.ExpectQuery(`SELECT .+ FROM users WHERE role = \$1 AND email = \$2 LIMIT 1`).
		WithArgs("mentor", "priya.sharma@example.com").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByRoleAndEmail(context.Background(), models.RoleMentor, "priya.sharma@example.com")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryExistsEmail(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)")).
		WithArgs("priya.sharma@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.ExistsEmail(context.Background(), "priya.sharma@example.com")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	mock.ExpectExec(`INSERT INTO users`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	user := &models.User{
		Handle:       "priya_sharma42",
		Name:         "Priya Sharma",
		Role:         models.RoleStudent,
		Department:   "CSE",
		Email:        "priya.sharma@example.com",
		PasswordHash: "$2a$10$hash",
	}
	require.NoError(t, repo.Create(context.Background(), user))
	assert.False(t, user.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryIncrementPostCount(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	mock.ExpectExec(`UPDATE users SET posts_count = posts_count \+ 1`).
		WithArgs("pixel_pioneer", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.IncrementPostCount(context.Background(), "pixel_pioneer"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryRefreshTokenRoundtrip(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewUserRepository(db)
	now := time.Now()

	mock.ExpectExec(`INSERT INTO refresh_tokens`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	token := &models.RefreshToken{UserHandle: "pixel_pioneer", Token: "opaque-token", ExpiresAt: now.Add(time.Hour)}
	require.NoError(t, repo.CreateRefreshToken(context.Background(), token))
	assert.NotEmpty(t, token.ID)

	mock.ExpectQuery(`SELECT .+ FROM refresh_tokens WHERE token = \$1 LIMIT 1`).
		WithArgs("opaque-token").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_handle", "token", "expires_at", "created_at", "revoked", "revoked_at", "ip_address", "user_agent"}).
			AddRow(token.ID, "pixel_pioneer", "opaque-token", token.ExpiresAt, now, false, nil, "", ""))

	found, err := repo.FindRefreshToken(context.Background(), "opaque-token")
	require.NoError(t, err)
	assert.Equal(t, "pixel_pioneer", found.UserHandle)
	assert.False(t, found.Revoked)

	mock.ExpectExec(`UPDATE refresh_tokens SET revoked = TRUE, revoked_at = \$2 WHERE id = \$1`).
		WithArgs(token.ID, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.RevokeRefreshToken(context.Background(), token.ID, now))
	assert.NoError(t, mock.ExpectationsWereMet())
}
