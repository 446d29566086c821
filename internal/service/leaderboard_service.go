package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/grad-konnect/showcase-api/internal/models"
	appErrors "github.com/grad-konnect/showcase-api/pkg/errors"
	"github.com/grad-konnect/showcase-api/pkg/export"
)

const leaderboardCacheKey = "leaderboards:snapshot"

type leaderboardScoreRepository interface {
	ProjectScores(ctx context.Context) ([]models.ProjectScore, error)
	MentorScores(ctx context.Context) ([]models.MentorScore, error)
	BranchScores(ctx context.Context) ([]models.BranchScore, error)
	CreatorScores(ctx context.Context) ([]models.CreatorScore, error)
}

// LeaderboardServiceConfig tunes ranking behaviour.
type LeaderboardServiceConfig struct {
	CacheTTL time.Duration
	TopN     int
}

// LeaderboardService derives ranked lists from the seeded score tables.
// Ranking is a pure transform of its inputs; the Redis cache only avoids
// recomputing and re-reading unchanged seed data.
type LeaderboardService struct {
	scores leaderboardScoreRepository
	cache  *CacheService
	logger *zap.Logger
	now    func() time.Time
	cfg    LeaderboardServiceConfig
}

// NewLeaderboardService constructs a LeaderboardService with sane defaults.
func NewLeaderboardService(scores leaderboardScoreRepository, cache *CacheService, logger *zap.Logger, cfg LeaderboardServiceConfig) *LeaderboardService {
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 5 * time.Minute
	}
	if cfg.TopN <= 0 {
		cfg.TopN = 3
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LeaderboardService{scores: scores, cache: cache, logger: logger, now: time.Now, cfg: cfg}
}

// Snapshot returns all four ranked lists and reports cache utilisation.
func (s *LeaderboardService) Snapshot(ctx context.Context) (*models.LeaderboardSnapshot, bool, error) {
	var cached models.LeaderboardSnapshot
	if hit, err := s.cache.Get(ctx, leaderboardCacheKey, &cached); err == nil && hit {
		return &cached, true, nil
	}

	snapshot, err := s.build(ctx)
	if err != nil {
		return nil, false, err
	}

	if err := s.cache.Set(ctx, leaderboardCacheKey, snapshot, s.cfg.CacheTTL); err != nil {
		s.logger.Warn("failed to cache leaderboard snapshot", zap.Error(err))
	}

	return snapshot, false, nil
}

// Export renders the project leaderboard in the requested format.
func (s *LeaderboardService) Export(ctx context.Context, format string) ([]byte, string, string, error) {
	snapshot, _, err := s.Snapshot(ctx)
	if err != nil {
		return nil, "", "", err
	}

	table := export.Table{
		Columns: []string{"Rank", "Project", "Handle", "Score"},
	}
	for _, entry := range snapshot.Projects {
		table.Rows = append(table.Rows, []string{
			strconv.Itoa(entry.Rank), entry.Title, entry.Handle, entry.Score,
		})
	}

	switch format {
	case "csv":
		payload, err := export.NewCSVExporter().Render(table)
		if err != nil {
			return nil, "", "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		return payload, "text/csv", "project-leaderboard.csv", nil
	case "pdf":
		payload, err := export.NewPDFExporter().Render(table, "Project Leaderboard")
		if err != nil {
			return nil, "", "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		return payload, "application/pdf", "project-leaderboard.pdf", nil
	default:
		return nil, "", "", appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}
}

func (s *LeaderboardService) build(ctx context.Context) (*models.LeaderboardSnapshot, error) {
	projects, err := s.scores.ProjectScores(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load project scores")
	}
	mentors, err := s.scores.MentorScores(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load mentor scores")
	}
	branches, err := s.scores.BranchScores(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load branch scores")
	}
	creators, err := s.scores.CreatorScores(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load creator scores")
	}

	return &models.LeaderboardSnapshot{
		Projects:    rankProjects(projects),
		Mentors:     rankMentors(mentors),
		Branches:    rankBranches(branches),
		TopCreators: rankCreators(creators, s.cfg.TopN),
		GeneratedAt: s.now().UTC(),
	}, nil
}
