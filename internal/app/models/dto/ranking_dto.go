package dto

import "github.com/gspavan07/StudentCodingDashboard/internal/app/models"

// RankingFilter narrows the leaderboard before sorting. Branch may stand
// alone; Year is only valid together with Branch. Search matches name or
// roll number as a case-insensitive substring.
type RankingFilter struct {
	Branch string `form:"branch" json:"branch"`
	Year   string `form:"year" json:"year"`
	Search string `form:"q" json:"q"`
}

// RankingRequest is the query shape of the rankings endpoint. Limit 0 means
// unlimited.
type RankingRequest struct {
	RankingFilter
	Limit int `form:"limit" json:"limit"`
}

// RankedStudent is one leaderboard row. The student fields are flattened
// into the row alongside the computed figures.
type RankedStudent struct {
	Rank int `json:"rank"`
	models.Student
	Score         int `json:"score"`
	TotalProblems int `json:"totalProblems"`
	TotalContests int `json:"totalContests"`
}
