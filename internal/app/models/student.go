package models

// Student defines the student model based on the 'students' table.
// RollNumber is the external natural key: unique across the roster and
// immutable once assigned. ID is the store-assigned surrogate key.
type Student struct {
	ID         int64   `json:"id" db:"id" example:"1"`
	RollNumber string  `json:"rollNumber" db:"roll_number" example:"22A91A0501"` // Unique roll number, used for upload matching
	Name       string  `json:"name" db:"name" example:"Pavan Gollapalli"`
	Branch     string  `json:"branch" db:"branch" example:"CSE"` // Department code
	Year       string  `json:"year" db:"year" example:"3"`       // Academic year / section grouping label
	ImageURL   *string `json:"imageUrl,omitempty" db:"image_url"`
}

// StudentUpdate carries the mutable student fields for partial updates.
// Nil fields are left untouched; the roll number is intentionally absent
// because it never changes after creation.
type StudentUpdate struct {
	Name     *string `json:"name,omitempty"`
	Branch   *string `json:"branch,omitempty"`
	Year     *string `json:"year,omitempty"`
	ImageURL *string `json:"imageUrl,omitempty"`
}

// StudentWithProfile combines a student with its (possibly absent) coding profile.
type StudentWithProfile struct {
	Student
	Profile *CodingProfile `json:"profile"`
}
