package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/grad-konnect/showcase-api/internal/models"
)

func TestParseScoreSuffixes(t *testing.T) {
	assert.Equal(t, 28500.0, parseScore("28.5k"))
	assert.Equal(t, 1200000.0, parseScore("1.2m"))
	assert.Equal(t, 50.0, parseScore("50"))
	assert.Equal(t, 18000.0, parseScore("18.0K"))
	assert.Equal(t, 99.5, parseScore("99.5"))
}

func TestParseScoreUnparseable(t *testing.T) {
	assert.Equal(t, 0.0, parseScore(""))
	assert.Equal(t, 0.0, parseScore("n/a"))
	assert.Equal(t, 0.0, parseScore("k"))
}

func TestRankOrderDescendingStable(t *testing.T) {
	order := rankOrder([]float64{10000, 50000, 10000})
	assert.Equal(t, []int{1, 0, 2}, order)
}

func TestRankProjects(t *testing.T) {
	entries := rankProjects([]models.ProjectScore{
		{Handle: "a", Title: "Alpha", Score: "6.5k"},
		{Handle: "b", Title: "Beta", Score: "28.5k"},
		{Handle: "c", Title: "Gamma", Score: "14.5k"},
	})

	assert.Len(t, entries, 3)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, "Beta", entries[0].Title)
	assert.Equal(t, 2, entries[1].Rank)
	assert.Equal(t, "Gamma", entries[1].Title)
	assert.Equal(t, 3, entries[2].Rank)
	assert.Equal(t, "Alpha", entries[2].Title)
	// formatted scores pass through untouched
	assert.Equal(t, "28.5k", entries[0].Score)
}

func TestRankProjectsTiesKeepInputOrder(t *testing.T) {
	entries := rankProjects([]models.ProjectScore{
		{Handle: "first", Title: "First", Score: "10k"},
		{Handle: "top", Title: "Top", Score: "50k"},
		{Handle: "second", Title: "Second", Score: "10k"},
	})

	assert.Equal(t, "top", entries[0].Handle)
	assert.Equal(t, "first", entries[1].Handle)
	assert.Equal(t, "second", entries[2].Handle)
}

func TestRankCreatorsTopN(t *testing.T) {
	scores := []models.CreatorScore{
		{Handle: "a", Score: "5k"},
		{Handle: "b", Score: "9k"},
		{Handle: "c", Score: "7k"},
		{Handle: "d", Score: "1k"},
	}

	entries := rankCreators(scores, 3)
	assert.Len(t, entries, 3)
	assert.Equal(t, "b", entries[0].Handle)
	assert.Equal(t, "c", entries[1].Handle)
	assert.Equal(t, "a", entries[2].Handle)

	all := rankCreators(scores, 0)
	assert.Len(t, all, 4)
}
