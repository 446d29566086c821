package models

import (
	"time"

	"github.com/lib/pq"
)

// PostStatus tracks the review lifecycle of a submission.
// Posts are created pending and move to approved or rejected exactly once.
type PostStatus string

const (
	PostPending  PostStatus = "pending"
	PostApproved PostStatus = "approved"
	PostRejected PostStatus = "rejected"
)

// ReviewDecision is the mentor's verdict on a pending post.
type ReviewDecision string

const (
	DecisionApprove ReviewDecision = "approved"
	DecisionReject  ReviewDecision = "rejected"
)

// Post represents a project submission. Version guards concurrent writes:
// every mutation increments it and stale writers are rejected.
type Post struct {
	ID              int64          `db:"id" json:"id"`
	UserHandle      string         `db:"user_handle" json:"user_handle"`
	Title           string         `db:"title" json:"title"`
	Content         string         `db:"content" json:"content"`
	ImageURL        string         `db:"image_url" json:"image_url"`
	Hashtags        pq.StringArray `db:"hashtags" json:"hashtags"`
	Likes           int            `db:"likes" json:"likes"`
	Comments        int            `db:"comments" json:"comments"`
	Shares          int            `db:"shares" json:"shares"`
	IsLiked         bool           `db:"is_liked" json:"is_liked"`
	LivePreviewURL  string         `db:"live_preview_url" json:"live_preview_url,omitempty"`
	GithubURL       string         `db:"github_url" json:"github_url,omitempty"`
	CommentData     []Comment      `db:"-" json:"comment_data"`
	Status          PostStatus     `db:"status" json:"status"`
	RejectionReason *string        `db:"rejection_reason" json:"rejection_reason,omitempty"`
	Version         int            `db:"version" json:"-"`
	CreatedAt       time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at" json:"updated_at"`
}

// Comment is an immutable, append-only entry on a post.
type Comment struct {
	ID         int64     `db:"id" json:"id"`
	PostID     int64     `db:"post_id" json:"-"`
	UserHandle string    `db:"user_handle" json:"user_handle"`
	Text       string    `db:"text" json:"text"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// PostForm is the submission payload. Hashtags arrive as a single
// comma-delimited string and are parsed into a trimmed list.
type PostForm struct {
	Title          string `json:"title" validate:"required"`
	Content        string `json:"content" validate:"required"`
	ImageURL       string `json:"image_url" validate:"omitempty,url"`
	Hashtags       string `json:"hashtags"`
	LivePreviewURL string `json:"live_preview_url" validate:"omitempty,url"`
	GithubURL      string `json:"github_url" validate:"omitempty,url"`
}

// ReviewRequest carries the mentor decision for a pending post.
type ReviewRequest struct {
	Decision ReviewDecision `json:"decision" validate:"required,oneof=approved rejected"`
	Reason   string         `json:"reason"`
}

// CommentRequest is the payload for adding a comment.
type CommentRequest struct {
	Text string `json:"text" validate:"required"`
}

// PostFilter captures filtering criteria for listing posts.
type PostFilter struct {
	Status     PostStatus
	UserHandle string
	Page       int
	PageSize   int
}
