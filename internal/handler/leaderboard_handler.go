package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/grad-konnect/showcase-api/internal/models"
	"github.com/grad-konnect/showcase-api/pkg/response"
)

type leaderboardProvider interface {
	Snapshot(ctx context.Context) (*models.LeaderboardSnapshot, bool, error)
	Export(ctx context.Context, format string) ([]byte, string, string, error)
}

// LeaderboardHandler serves ranked leaderboard snapshots and exports.
type LeaderboardHandler struct {
	service leaderboardProvider
}

// NewLeaderboardHandler creates a new handler.
func NewLeaderboardHandler(svc leaderboardProvider) *LeaderboardHandler {
	return &LeaderboardHandler{service: svc}
}

// Snapshot godoc
// @Summary Get ranked leaderboards
// @Description Returns projects, mentors, branches and top creators with computed ranks
// @Tags Leaderboards
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /leaderboards [get]
func (h *LeaderboardHandler) Snapshot(c *gin.Context) {
	snapshot, cacheHit, err := h.service.Snapshot(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, snapshot, nil, map[string]interface{}{
		"cache_hit": cacheHit,
	})
}

// Export godoc
// @Summary Export leaderboards
// @Description Download the project leaderboard as CSV or PDF
// @Tags Leaderboards
// @Produce octet-stream
// @Param format query string true "Export format (csv or pdf)"
// @Success 200 {file} binary
// @Failure 400 {object} response.Envelope
// @Router /leaderboards/export [get]
func (h *LeaderboardHandler) Export(c *gin.Context) {
	payload, contentType, filename, err := h.service.Export(c.Request.Context(), c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, contentType, payload)
}
