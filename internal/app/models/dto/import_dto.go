package dto

import "github.com/gspavan07/StudentCodingDashboard/internal/app/models"

// ImportRow is one already-structured row of a bulk import, as produced by
// the external spreadsheet parser plus profile scraper. Metric groups default
// to zero values when the scraper had nothing for a platform.
type ImportRow struct {
	RollNumber string  `json:"rollNumber"`
	Name       string  `json:"name"`
	Branch     string  `json:"branch"`
	Year       string  `json:"year"`
	ImageURL   *string `json:"imageUrl,omitempty"`

	HackerRank models.HackerRankMetrics `json:"hackerrank"`
	LeetCode   models.LeetCodeMetrics   `json:"leetcode"`
	CodeChef   models.CodeChefMetrics   `json:"codechef"`
	Gfg        models.GfgMetrics        `json:"gfg"`
}

// ImportRequest is the body of the bulk import endpoint.
type ImportRequest struct {
	Rows []ImportRow `json:"rows" binding:"required"`
}

// ImportResponse reports the outcome of a bulk import. Processed counts rows
// upserted; Skipped counts malformed rows that were dropped without aborting
// the batch.
type ImportResponse struct {
	Processed int    `json:"processed"`
	Skipped   int    `json:"skipped"`
	Message   string `json:"message"`
}
