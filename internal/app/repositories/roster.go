package repositories

import (
	"context"

	"github.com/gspavan07/StudentCodingDashboard/internal/app/models"
)

// ImportRecord is one validated row of a bulk import: the student identity
// fields plus the full platform metric bundle scraped for that student.
// Rows reach the store only after the import service has validated them.
type ImportRecord struct {
	RollNumber string
	Name       string
	Branch     string
	Year       string
	ImageURL   *string
	Metrics    models.ProfileMetrics
}

// RosterStore owns the student roster and the per-student coding profiles.
// Implementations must keep the rollNumber lookup index consistent with the
// student records at all times, serialize mutations against each other, and
// hand out copies rather than references into their own state.
//
// Roll number matching is case-sensitive exact match; callers normalize at
// the query boundary, not here.
type RosterStore interface {
	// GetAll returns every student in insertion order.
	GetAll(ctx context.Context) ([]models.Student, error)

	// GetAllWithProfiles returns every student joined with its profile
	// (nil when never scraped), in insertion order.
	GetAllWithProfiles(ctx context.Context) ([]models.StudentWithProfile, error)

	// GetByBranchAndYear returns students matching both fields exactly.
	GetByBranchAndYear(ctx context.Context, branch, year string) ([]models.Student, error)

	// GetByRollNumber returns the student with the given roll number, or
	// apperrors.ErrStudentNotFound.
	GetByRollNumber(ctx context.Context, rollNumber string) (*models.Student, error)

	// GetProfile returns the coding profile for a student id, or
	// apperrors.ErrProfileNotFound when the student was never scraped.
	GetProfile(ctx context.Context, studentID int64) (*models.CodingProfile, error)

	// GetStudentWithProfile composes the two lookups above. The student must
	// exist; the profile may be nil.
	GetStudentWithProfile(ctx context.Context, rollNumber string) (*models.StudentWithProfile, error)

	// CreateStudent assigns a surrogate id and stores the student. Fails with
	// apperrors.ErrRollNumberExists when the roll number is already taken.
	CreateStudent(ctx context.Context, student *models.Student) (*models.Student, error)

	// UpdateStudent merges the non-nil fields of update into the record.
	// The surrogate id and roll number never change.
	UpdateStudent(ctx context.Context, id int64, update models.StudentUpdate) (*models.Student, error)

	// ReplaceProfile swaps the student's profile for the given metrics
	// wholesale, preserving the profile's surrogate id when one exists.
	ReplaceProfile(ctx context.Context, studentID int64, metrics models.ProfileMetrics) (*models.CodingProfile, error)

	// DeleteStudent removes a student and its coding profile in the same
	// logical operation. Returns false when the id is unknown.
	DeleteStudent(ctx context.Context, id int64) (bool, error)

	// DeleteStudentByRollNumber removes the student matching the roll number.
	DeleteStudentByRollNumber(ctx context.Context, rollNumber string) (bool, error)

	// DeleteStudentsByBranch removes every student in the branch and returns
	// how many rows were removed. Zero matches is not an error.
	DeleteStudentsByBranch(ctx context.Context, branch string) (int, error)

	// DeleteStudentsBySection removes every student in the (branch, year)
	// section and returns how many rows were removed.
	DeleteStudentsBySection(ctx context.Context, branch, year string) (int, error)

	// Reconcile upserts a batch of import records in order. Later rows win
	// over earlier ones for the same roll number. Each row lands atomically:
	// a student is never left without its profile. Returns the number of
	// rows upserted.
	Reconcile(ctx context.Context, batch []ImportRecord) (int, error)
}
