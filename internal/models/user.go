package models

import "time"

// UserRole distinguishes the two account types on the platform.
type UserRole string

const (
	RoleStudent UserRole = "student"
	RoleMentor  UserRole = "mentor"
)

// User represents an account stored in the users table. The handle is the
// primary key and doubles as the public, URL-safe identifier.
type User struct {
	Handle       string    `db:"handle" json:"handle"`
	Name         string    `db:"name" json:"name"`
	AvatarURL    string    `db:"avatar_url" json:"avatar_url"`
	Bio          string    `db:"bio" json:"bio"`
	Role         UserRole  `db:"role" json:"role"`
	Department   string    `db:"department" json:"department"`
	Year         *string   `db:"year" json:"year,omitempty"`
	PostsCount   int       `db:"posts_count" json:"-"`
	Mentees      *int      `db:"mentees" json:"-"`
	Rating       *string   `db:"rating" json:"-"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// ProfileStats carries the role-specific counters shown on a profile.
// Posts is set for students, Mentees and Rating for mentors.
type ProfileStats struct {
	Posts   *int    `json:"posts,omitempty"`
	Mentees *int    `json:"mentees,omitempty"`
	Rating  *string `json:"rating,omitempty"`
}

// Profile is the public view of a user.
type Profile struct {
	Handle     string       `json:"handle"`
	Name       string       `json:"name"`
	AvatarURL  string       `json:"avatar_url"`
	Bio        string       `json:"bio"`
	Role       UserRole     `json:"role"`
	Department string       `json:"department"`
	Year       *string      `json:"year,omitempty"`
	Stats      ProfileStats `json:"stats"`
}

// Profile derives the public view from a stored user record.
func (u *User) Profile() Profile {
	p := Profile{
		Handle:     u.Handle,
		Name:       u.Name,
		AvatarURL:  u.AvatarURL,
		Bio:        u.Bio,
		Role:       u.Role,
		Department: u.Department,
		Year:       u.Year,
	}
	switch u.Role {
	case RoleStudent:
		posts := u.PostsCount
		p.Stats.Posts = &posts
	case RoleMentor:
		p.Stats.Mentees = u.Mentees
		p.Stats.Rating = u.Rating
	}
	return p
}

// UpdateProfileRequest carries the mutable profile fields.
type UpdateProfileRequest struct {
	Name      string `json:"name" validate:"required"`
	Bio       string `json:"bio"`
	AvatarURL string `json:"avatar_url" validate:"omitempty,url"`
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
