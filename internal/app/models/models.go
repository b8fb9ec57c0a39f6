package models

// RoleType defines the user role type carried in JWT claims.
type RoleType string

const (
	RoleAdmin  RoleType = "ADMIN"
	RoleViewer RoleType = "VIEWER"
)

// KnownBranches lists the department codes recognized by the roster. Uploads
// for other branch codes are not rejected at the store level; this set drives
// validation at the API boundary.
var KnownBranches = []string{"CSE", "ECE", "EEE", "CIV", "MEC", "IT", "AIML", "DS"}

// Feedback defines the feedback model based on the 'feedback' table.
type Feedback struct {
	ID      int64  `json:"id" db:"id" example:"1"`
	Name    string `json:"name" db:"name" example:"Jane Student"`
	Email   string `json:"email" db:"email" example:"jane@example.com"`
	Message string `json:"message" db:"message" example:"Ranking page loads slowly"`
}

// Developer defines the developer model based on the 'developers' table,
// shown on the about page.
type Developer struct {
	ID              int64   `json:"id" db:"id" example:"1"`
	Name            string  `json:"name" db:"name" example:"Pavan Gollapalli"`
	Role            string  `json:"role" db:"role" example:"Full Stack Developer"`
	GithubProfile   string  `json:"githubProfile" db:"github_profile" example:"https://github.com/gspavan07"`
	Bio             *string `json:"bio,omitempty" db:"bio"`
	ImageURL        *string `json:"imageUrl,omitempty" db:"image_url"`
	LinkedinProfile *string `json:"linkedinProfile,omitempty" db:"linkedin_profile"`
}
