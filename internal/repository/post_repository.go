package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/grad-konnect/showcase-api/internal/models"
)

// ErrStaleVersion is returned when an optimistic update lost the race:
// the row exists but its version moved on since it was read.
var ErrStaleVersion = errors.New("stale post version")

const postColumns = `p.id, p.user_handle, p.title, p.content, p.image_url, p.hashtags, p.likes, p.comments, p.shares,
	p.live_preview_url, p.github_url, p.status, p.rejection_reason, p.version, p.created_at, p.updated_at,
	EXISTS (SELECT 1 FROM post_likes pl WHERE pl.post_id = p.id AND pl.user_handle = $1) AS is_liked`

// PostRepository provides database access for posts, comments and likes.
type PostRepository struct {
	db *sqlx.DB
}

// NewPostRepository creates a new instance of PostRepository.
func NewPostRepository(db *sqlx.DB) *PostRepository {
	return &PostRepository{db: db}
}

// FindByID returns a post with its comments. The liked flag is computed
// for the given viewer handle; an empty viewer never matches.
func (r *PostRepository) FindByID(ctx context.Context, id int64, viewer string) (*models.Post, error) {
	query := fmt.Sprintf(`SELECT %s FROM posts p WHERE p.id = $2 LIMIT 1`, postColumns)
	var post models.Post
	if err := r.db.GetContext(ctx, &post, query, viewer, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find post by id: %w", err)
	}

	comments, err := r.commentsFor(ctx, []int64{post.ID})
	if err != nil {
		return nil, err
	}
	post.CommentData = comments[post.ID]
	if post.CommentData == nil {
		post.CommentData = []models.Comment{}
	}
	return &post, nil
}

// List returns posts matching the filter, newest first, with comments attached.
func (r *PostRepository) List(ctx context.Context, viewer string, filter models.PostFilter) ([]models.Post, int, error) {
	type condition struct {
		column string
		value  interface{}
	}
	var conditions []condition
	if filter.Status != "" {
		conditions = append(conditions, condition{"p.status", filter.Status})
	}
	if filter.UserHandle != "" {
		conditions = append(conditions, condition{"p.user_handle", filter.UserHandle})
	}

	// The list query binds the viewer as $1 for the is_liked subquery;
	// the count query has no such placeholder and numbers from $1.
	listWhere, countWhere := `WHERE 1=1`, `WHERE 1=1`
	listArgs := []interface{}{viewer}
	countArgs := []interface{}{}
	for _, cond := range conditions {
		listArgs = append(listArgs, cond.value)
		listWhere += fmt.Sprintf(" AND %s = $%d", cond.column, len(listArgs))
		countArgs = append(countArgs, cond.value)
		countWhere += fmt.Sprintf(" AND %s = $%d", cond.column, len(countArgs))
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 50
	}
	offset := (page - 1) * pageSize

	listQuery := fmt.Sprintf(`SELECT %s FROM posts p %s ORDER BY p.created_at DESC, p.id DESC LIMIT %d OFFSET %d`, postColumns, listWhere, pageSize, offset)

	var posts []models.Post
	if err := r.db.SelectContext(ctx, &posts, listQuery, listArgs...); err != nil {
		return nil, 0, fmt.Errorf("list posts: %w", err)
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM posts p %s`, countWhere)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, countArgs...); err != nil {
		return nil, 0, fmt.Errorf("count posts: %w", err)
	}

	ids := make([]int64, len(posts))
	for i := range posts {
		ids[i] = posts[i].ID
	}
	comments, err := r.commentsFor(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	for i := range posts {
		posts[i].CommentData = comments[posts[i].ID]
		if posts[i].CommentData == nil {
			posts[i].CommentData = []models.Comment{}
		}
	}

	return posts, total, nil
}

// Create inserts a new post and fills in the generated fields.
func (r *PostRepository) Create(ctx context.Context, post *models.Post) error {
	const query = `INSERT INTO posts (user_handle, title, content, image_url, hashtags, live_preview_url, github_url, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, likes, comments, shares, version, created_at, updated_at`
	row := r.db.QueryRowxContext(ctx, query,
		post.UserHandle, post.Title, post.Content, post.ImageURL, post.Hashtags,
		post.LivePreviewURL, post.GithubURL, post.Status,
	)
	if err := row.Scan(&post.ID, &post.Likes, &post.Comments, &post.Shares, &post.Version, &post.CreatedAt, &post.UpdatedAt); err != nil {
		return fmt.Errorf("create post: %w", err)
	}
	return nil
}

// UpdateStatus applies a review decision guarded by the optimistic version.
func (r *PostRepository) UpdateStatus(ctx context.Context, id int64, status models.PostStatus, reason *string, version int) error {
	const query = `UPDATE posts SET status = $3, rejection_reason = $4, version = version + 1, updated_at = $5 WHERE id = $1 AND version = $2`
	res, err := r.db.ExecContext(ctx, query, id, version, status, reason, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update post status: %w", err)
	}
	return r.checkAffected(res)
}

// ToggleLike flips the viewer's membership in the post's like set and keeps
// the likes counter equal to the set cardinality. Returns the new state.
func (r *PostRepository) ToggleLike(ctx context.Context, id int64, viewer string, version int) (bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin like tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	res, err := tx.ExecContext(ctx, `DELETE FROM post_likes WHERE post_id = $1 AND user_handle = $2`, id, viewer)
	if err != nil {
		return false, fmt.Errorf("unlike post: %w", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("unlike post: %w", err)
	}

	liked := removed == 0
	if liked {
		if _, err := tx.ExecContext(ctx, `INSERT INTO post_likes (post_id, user_handle) VALUES ($1, $2)`, id, viewer); err != nil {
			return false, fmt.Errorf("like post: %w", err)
		}
	}

	const counter = `UPDATE posts SET likes = (SELECT COUNT(*) FROM post_likes WHERE post_id = $1), version = version + 1, updated_at = $3 WHERE id = $1 AND version = $2`
	res, err = tx.ExecContext(ctx, counter, id, version, time.Now().UTC())
	if err != nil {
		return false, fmt.Errorf("update like counter: %w", err)
	}
	if err := r.checkAffected(res); err != nil {
		return false, err
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit like tx: %w", err)
	}
	return liked, nil
}

// IncrementShares bumps the share counter guarded by the optimistic version.
func (r *PostRepository) IncrementShares(ctx context.Context, id int64, version int) error {
	const query = `UPDATE posts SET shares = shares + 1, version = version + 1, updated_at = $3 WHERE id = $1 AND version = $2`
	res, err := r.db.ExecContext(ctx, query, id, version, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("increment shares: %w", err)
	}
	return r.checkAffected(res)
}

// AddComment appends a comment and recomputes the counter as the list length.
func (r *PostRepository) AddComment(ctx context.Context, comment *models.Comment, version int) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin comment tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	const insert = `INSERT INTO post_comments (post_id, user_handle, text) VALUES ($1, $2, $3) RETURNING id, created_at`
	if err := tx.QueryRowxContext(ctx, insert, comment.PostID, comment.UserHandle, comment.Text).Scan(&comment.ID, &comment.CreatedAt); err != nil {
		return fmt.Errorf("insert comment: %w", err)
	}

	const counter = `UPDATE posts SET comments = (SELECT COUNT(*) FROM post_comments WHERE post_id = $1), version = version + 1, updated_at = $3 WHERE id = $1 AND version = $2`
	res, err := tx.ExecContext(ctx, counter, comment.PostID, version, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update comment counter: %w", err)
	}
	if err := r.checkAffected(res); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit comment tx: %w", err)
	}
	return nil
}

func (r *PostRepository) checkAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrStaleVersion
	}
	return nil
}

func (r *PostRepository) commentsFor(ctx context.Context, postIDs []int64) (map[int64][]models.Comment, error) {
	result := make(map[int64][]models.Comment, len(postIDs))
	if len(postIDs) == 0 {
		return result, nil
	}

	const query = `SELECT id, post_id, user_handle, text, created_at FROM post_comments WHERE post_id = ANY($1) ORDER BY created_at, id`
	var comments []models.Comment
	if err := r.db.SelectContext(ctx, &comments, query, pq.Array(postIDs)); err != nil {
		return nil, fmt.Errorf("load comments: %w", err)
	}
	for _, c := range comments {
		result[c.PostID] = append(result[c.PostID], c)
	}
	return result, nil
}
