package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/grad-konnect/showcase-api/internal/models"
)

// LeaderboardRepository reads and seeds the score tables that back the
// derived leaderboards. Row order follows insertion order so ties keep
// their seeded relative position.
type LeaderboardRepository struct {
	db *sqlx.DB
}

// NewLeaderboardRepository creates a new instance of LeaderboardRepository.
func NewLeaderboardRepository(db *sqlx.DB) *LeaderboardRepository {
	return &LeaderboardRepository{db: db}
}

// ProjectScores returns the seeded project scores.
func (r *LeaderboardRepository) ProjectScores(ctx context.Context) ([]models.ProjectScore, error) {
	var scores []models.ProjectScore
	if err := r.db.SelectContext(ctx, &scores, `SELECT handle, title, score FROM project_scores ORDER BY id`); err != nil {
		return nil, fmt.Errorf("load project scores: %w", err)
	}
	return scores, nil
}

// MentorScores returns the seeded mentor rating scores.
func (r *LeaderboardRepository) MentorScores(ctx context.Context) ([]models.MentorScore, error) {
	var scores []models.MentorScore
	if err := r.db.SelectContext(ctx, &scores, `SELECT handle, score FROM mentor_scores ORDER BY id`); err != nil {
		return nil, fmt.Errorf("load mentor scores: %w", err)
	}
	return scores, nil
}

// BranchScores returns the seeded department scores.
func (r *LeaderboardRepository) BranchScores(ctx context.Context) ([]models.BranchScore, error) {
	var scores []models.BranchScore
	if err := r.db.SelectContext(ctx, &scores, `SELECT name, score FROM branch_scores ORDER BY id`); err != nil {
		return nil, fmt.Errorf("load branch scores: %w", err)
	}
	return scores, nil
}

// CreatorScores returns the independently supplied top-creator scores.
func (r *LeaderboardRepository) CreatorScores(ctx context.Context) ([]models.CreatorScore, error) {
	var scores []models.CreatorScore
	if err := r.db.SelectContext(ctx, &scores, `SELECT handle, score FROM creator_scores ORDER BY id`); err != nil {
		return nil, fmt.Errorf("load creator scores: %w", err)
	}
	return scores, nil
}

// Count returns the number of project score rows, used to detect an unseeded store.
func (r *LeaderboardRepository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM project_scores`); err != nil {
		return 0, fmt.Errorf("count project scores: %w", err)
	}
	return total, nil
}

// SeedProjectScore inserts one project score row.
func (r *LeaderboardRepository) SeedProjectScore(ctx context.Context, score models.ProjectScore) error {
	if _, err := r.db.ExecContext(ctx, `INSERT INTO project_scores (handle, title, score) VALUES ($1, $2, $3)`, score.Handle, score.Title, score.Score); err != nil {
		return fmt.Errorf("seed project score: %w", err)
	}
	return nil
}

// SeedMentorScore inserts one mentor score row.
func (r *LeaderboardRepository) SeedMentorScore(ctx context.Context, score models.MentorScore) error {
	if _, err := r.db.ExecContext(ctx, `INSERT INTO mentor_scores (handle, score) VALUES ($1, $2)`, score.Handle, score.Score); err != nil {
		return fmt.Errorf("seed mentor score: %w", err)
	}
	return nil
}

// SeedBranchScore inserts one branch score row.
func (r *LeaderboardRepository) SeedBranchScore(ctx context.Context, score models.BranchScore) error {
	if _, err := r.db.ExecContext(ctx, `INSERT INTO branch_scores (name, score) VALUES ($1, $2)`, score.Name, score.Score); err != nil {
		return fmt.Errorf("seed branch score: %w", err)
	}
	return nil
}

// SeedCreatorScore inserts one creator score row.
func (r *LeaderboardRepository) SeedCreatorScore(ctx context.Context, score models.CreatorScore) error {
	if _, err := r.db.ExecContext(ctx, `INSERT INTO creator_scores (handle, score) VALUES ($1, $2)`, score.Handle, score.Score); err != nil {
		return fmt.Errorf("seed creator score: %w", err)
	}
	return nil
}
