package service

import (
	"sort"
	"strconv"
	"strings"

	"github.com/grad-konnect/showcase-api/internal/models"
)

// parseScore converts a formatted score string into its numeric value.
// A trailing "k" multiplies by 1e3 and "m" by 1e6, case-insensitive.
// Unparseable input counts as zero.
func parseScore(raw string) float64 {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return 0
	}

	multiplier := 1.0
	switch s[len(s)-1] {
	case 'k':
		multiplier = 1_000
		s = s[:len(s)-1]
	case 'm':
		multiplier = 1_000_000
		s = s[:len(s)-1]
	}

	value, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return value * multiplier
}

// rankOrder returns the index order of the given scores sorted descending.
// Equal scores keep their input order.
func rankOrder(scores []float64) []int {
	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})
	return order
}

func rankProjects(scores []models.ProjectScore) []models.ProjectLeaderboardEntry {
	values := make([]float64, len(scores))
	for i, s := range scores {
		values[i] = parseScore(s.Score)
	}
	entries := make([]models.ProjectLeaderboardEntry, 0, len(scores))
	for rank, idx := range rankOrder(values) {
		entries = append(entries, models.ProjectLeaderboardEntry{
			Rank:   rank + 1,
			Title:  scores[idx].Title,
			Handle: scores[idx].Handle,
			Score:  scores[idx].Score,
		})
	}
	return entries
}

func rankMentors(scores []models.MentorScore) []models.MentorLeaderboardEntry {
	values := make([]float64, len(scores))
	for i, s := range scores {
		values[i] = parseScore(s.Score)
	}
	entries := make([]models.MentorLeaderboardEntry, 0, len(scores))
	for rank, idx := range rankOrder(values) {
		entries = append(entries, models.MentorLeaderboardEntry{
			Rank:   rank + 1,
			Handle: scores[idx].Handle,
			Score:  scores[idx].Score,
		})
	}
	return entries
}

func rankBranches(scores []models.BranchScore) []models.BranchLeaderboardEntry {
	values := make([]float64, len(scores))
	for i, s := range scores {
		values[i] = parseScore(s.Score)
	}
	entries := make([]models.BranchLeaderboardEntry, 0, len(scores))
	for rank, idx := range rankOrder(values) {
		entries = append(entries, models.BranchLeaderboardEntry{
			Rank:  rank + 1,
			Name:  scores[idx].Name,
			Score: scores[idx].Score,
		})
	}
	return entries
}

func rankCreators(scores []models.CreatorScore, topN int) []models.CreatorLeaderboardEntry {
	values := make([]float64, len(scores))
	for i, s := range scores {
		values[i] = parseScore(s.Score)
	}
	entries := make([]models.CreatorLeaderboardEntry, 0, len(scores))
	for rank, idx := range rankOrder(values) {
		entries = append(entries, models.CreatorLeaderboardEntry{
			Rank:   rank + 1,
			Handle: scores[idx].Handle,
			Score:  scores[idx].Score,
		})
	}
	if topN > 0 && len(entries) > topN {
		entries = entries[:topN]
	}
	return entries
}
