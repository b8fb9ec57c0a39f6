package dto

import "github.com/gspavan07/StudentCodingDashboard/internal/app/models"

// CreateStudentRequest is the body of the single-record create endpoint.
type CreateStudentRequest struct {
	RollNumber string  `json:"rollNumber" binding:"required"`
	Name       string  `json:"name" binding:"required"`
	Branch     string  `json:"branch" binding:"required"`
	Year       string  `json:"year" binding:"required"`
	ImageURL   *string `json:"imageUrl,omitempty"`
}

// UpdateStudentRequest is the body of the partial update endpoint. Only the
// mutable fields appear; absent fields are left untouched.
type UpdateStudentRequest struct {
	Name     *string `json:"name,omitempty"`
	Branch   *string `json:"branch,omitempty"`
	Year     *string `json:"year,omitempty"`
	ImageURL *string `json:"imageUrl,omitempty"`
}

// StudentProfileResponse is a student together with its profile and the
// figures computed from it. Collections of these are read-only snapshots.
type StudentProfileResponse struct {
	models.Student
	Profile       *models.CodingProfile `json:"profile"`
	Score         int                   `json:"score"`
	TotalProblems int                   `json:"totalProblems"`
	TotalContests int                   `json:"totalContests"`
}

// DeleteCountResponse reports how many roster rows a bulk delete removed.
type DeleteCountResponse struct {
	Deleted int    `json:"deleted"`
	Message string `json:"message"`
}
