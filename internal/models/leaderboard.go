package models

import "time"

// ProjectScore is a seeded (student, project, score) row backing the
// project leaderboard. Scores are formatted strings like "28.5k".
type ProjectScore struct {
	Handle string `db:"handle" json:"handle"`
	Title  string `db:"title" json:"title"`
	Score  string `db:"score" json:"score"`
}

// MentorScore backs the mentor leaderboard.
type MentorScore struct {
	Handle string `db:"handle" json:"handle"`
	Score  string `db:"score" json:"score"`
}

// BranchScore backs the department leaderboard.
type BranchScore struct {
	Name  string `db:"name" json:"name"`
	Score string `db:"score" json:"score"`
}

// CreatorScore backs the top-creators list. The list is supplied
// independently of the project scores rather than derived from them.
type CreatorScore struct {
	Handle string `db:"handle" json:"handle"`
	Score  string `db:"score" json:"score"`
}

// ProjectLeaderboardEntry is a ranked project row.
type ProjectLeaderboardEntry struct {
	Rank   int    `json:"rank"`
	Title  string `json:"title"`
	Handle string `json:"handle"`
	Score  string `json:"score"`
}

// MentorLeaderboardEntry is a ranked mentor row.
type MentorLeaderboardEntry struct {
	Rank   int    `json:"rank"`
	Handle string `json:"handle"`
	Score  string `json:"score"`
}

// BranchLeaderboardEntry is a ranked department row.
type BranchLeaderboardEntry struct {
	Rank  int    `json:"rank"`
	Name  string `json:"name"`
	Score string `json:"score"`
}

// CreatorLeaderboardEntry is a ranked top-creator row.
type CreatorLeaderboardEntry struct {
	Rank   int    `json:"rank"`
	Handle string `json:"handle"`
	Score  string `json:"score"`
}

// LeaderboardSnapshot bundles all derived rankings.
type LeaderboardSnapshot struct {
	Projects    []ProjectLeaderboardEntry `json:"projects"`
	Mentors     []MentorLeaderboardEntry  `json:"mentors"`
	Branches    []BranchLeaderboardEntry  `json:"branches"`
	TopCreators []CreatorLeaderboardEntry `json:"top_creators"`
	GeneratedAt time.Time                 `json:"generated_at"`
}

// FeedSnapshot is the initial payload a client needs to render the app.
type FeedSnapshot struct {
	Users        map[string]Profile  `json:"users"`
	Posts        []Post              `json:"posts"`
	Leaderboards LeaderboardSnapshot `json:"leaderboards"`
}
