package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/grad-konnect/showcase-api/internal/models"
	"github.com/grad-konnect/showcase-api/pkg/response"
)

type feedProfiles interface {
	Profiles(ctx context.Context) (map[string]models.Profile, error)
}

type feedPosts interface {
	List(ctx context.Context, viewer string, filter models.PostFilter) ([]models.Post, *models.Pagination, error)
}

type feedLeaderboards interface {
	Snapshot(ctx context.Context) (*models.LeaderboardSnapshot, bool, error)
}

// FeedHandler composes the single-call payload the feed page renders from.
type FeedHandler struct {
	users        feedProfiles
	posts        feedPosts
	leaderboards feedLeaderboards
}

// NewFeedHandler creates a new handler.
func NewFeedHandler(users feedProfiles, posts feedPosts, leaderboards feedLeaderboards) *FeedHandler {
	return &FeedHandler{users: users, posts: posts, leaderboards: leaderboards}
}

// Feed godoc
// @Summary Get the combined feed snapshot
// @Description Returns user profiles, posts and ranked leaderboards in one payload
// @Tags Feed
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /feed [get]
func (h *FeedHandler) Feed(c *gin.Context) {
	ctx := c.Request.Context()
	viewer := viewerFromContext(c)

	profiles, err := h.users.Profiles(ctx)
	if err != nil {
		response.Error(c, err)
		return
	}

	posts, _, err := h.posts.List(ctx, viewer, models.PostFilter{})
	if err != nil {
		response.Error(c, err)
		return
	}

	snapshot, cacheHit, err := h.leaderboards.Snapshot(ctx)
	if err != nil {
		response.Error(c, err)
		return
	}

	feed := models.FeedSnapshot{
		Users:        profiles,
		Posts:        posts,
		Leaderboards: *snapshot,
	}

	response.JSON(c, http.StatusOK, feed, nil, map[string]interface{}{
		"cache_hit": cacheHit,
	})
}
