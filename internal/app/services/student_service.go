package services

import (
	"context"
	"strings"

	"github.com/gspavan07/StudentCodingDashboard/internal/app/models"
	"github.com/gspavan07/StudentCodingDashboard/internal/app/models/dto"
	"github.com/gspavan07/StudentCodingDashboard/internal/app/repositories"
	"github.com/gspavan07/StudentCodingDashboard/internal/pkg/apperrors"
	"github.com/gspavan07/StudentCodingDashboard/internal/pkg/logger"
	"github.com/gspavan07/StudentCodingDashboard/internal/pkg/scoring"
)

// StudentService implements roster reads and the single-record admin
// mutations. Roll numbers are uppercased here, at the query boundary, so the
// store only ever sees the canonical form.
type StudentService struct {
	roster repositories.RosterStore
}

// NewStudentService creates a new student service instance.
func NewStudentService(roster repositories.RosterStore) *StudentService {
	return &StudentService{roster: roster}
}

// GetAllStudents returns every student with its profile and computed figures,
// in insertion order.
func (s *StudentService) GetAllStudents(ctx context.Context) ([]dto.StudentProfileResponse, error) {
	students, err := s.roster.GetAllWithProfiles(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]dto.StudentProfileResponse, 0, len(students))
	for _, swp := range students {
		out = append(out, toProfileResponse(swp))
	}
	return out, nil
}

// GetStudentByRollNumber returns one student with its profile and computed
// figures. The profile is nil when the student was never scraped.
func (s *StudentService) GetStudentByRollNumber(ctx context.Context, rollNumber string) (*dto.StudentProfileResponse, error) {
	swp, err := s.roster.GetStudentWithProfile(ctx, normalizeRollNumber(rollNumber))
	if err != nil {
		return nil, err
	}
	resp := toProfileResponse(*swp)
	return &resp, nil
}

// GetStudentsBySection returns the students of one (branch, year) section.
// Both parameters are required; a partial section is a caller error rather
// than an empty result.
func (s *StudentService) GetStudentsBySection(ctx context.Context, branch, year string) ([]models.Student, error) {
	if branch == "" || year == "" {
		return nil, apperrors.ErrBadRequest
	}
	return s.roster.GetByBranchAndYear(ctx, branch, year)
}

// CreateStudent registers a single student without a profile. The profile
// arrives later through the bulk import path.
func (s *StudentService) CreateStudent(ctx context.Context, req dto.CreateStudentRequest) (*models.Student, error) {
	student := &models.Student{
		RollNumber: normalizeRollNumber(req.RollNumber),
		Name:       strings.TrimSpace(req.Name),
		Branch:     strings.TrimSpace(req.Branch),
		Year:       strings.TrimSpace(req.Year),
		ImageURL:   req.ImageURL,
	}
	if student.RollNumber == "" || student.Name == "" {
		return nil, apperrors.ErrValidationFailed
	}

	created, err := s.roster.CreateStudent(ctx, student)
	if err != nil {
		return nil, err
	}

	logger.Info().Int64("student_id", created.ID).Str("roll_number", created.RollNumber).Msg("Student created")
	return created, nil
}

// UpdateStudent applies a partial update to the student's mutable fields.
func (s *StudentService) UpdateStudent(ctx context.Context, id int64, req dto.UpdateStudentRequest) (*models.Student, error) {
	update := models.StudentUpdate{
		Name:     req.Name,
		Branch:   req.Branch,
		Year:     req.Year,
		ImageURL: req.ImageURL,
	}
	return s.roster.UpdateStudent(ctx, id, update)
}

// DeleteStudent removes the student with the given roll number together with
// its profile.
func (s *StudentService) DeleteStudent(ctx context.Context, rollNumber string) error {
	deleted, err := s.roster.DeleteStudentByRollNumber(ctx, normalizeRollNumber(rollNumber))
	if err != nil {
		return err
	}
	if !deleted {
		return apperrors.ErrStudentNotFound
	}

	logger.Info().Str("roll_number", rollNumber).Msg("Student deleted")
	return nil
}

// DeleteBranch removes every student of a branch and returns how many were
// removed. An empty branch deletes nothing rather than everything.
func (s *StudentService) DeleteBranch(ctx context.Context, branch string) (int, error) {
	if branch == "" {
		return 0, apperrors.ErrBadRequest
	}

	n, err := s.roster.DeleteStudentsByBranch(ctx, branch)
	if err != nil {
		return 0, err
	}

	logger.Info().Str("branch", branch).Int("deleted", n).Msg("Branch roster cleared")
	return n, nil
}

// DeleteSection removes every student of a (branch, year) section and returns
// how many were removed.
func (s *StudentService) DeleteSection(ctx context.Context, branch, year string) (int, error) {
	if branch == "" || year == "" {
		return 0, apperrors.ErrBadRequest
	}

	n, err := s.roster.DeleteStudentsBySection(ctx, branch, year)
	if err != nil {
		return 0, err
	}

	logger.Info().Str("branch", branch).Str("year", year).Int("deleted", n).Msg("Section roster cleared")
	return n, nil
}

func toProfileResponse(swp models.StudentWithProfile) dto.StudentProfileResponse {
	return dto.StudentProfileResponse{
		Student:       swp.Student,
		Profile:       swp.Profile,
		Score:         scoring.Score(swp.Profile),
		TotalProblems: scoring.TotalProblems(swp.Profile),
		TotalContests: scoring.TotalContests(swp.Profile),
	}
}

func normalizeRollNumber(rollNumber string) string {
	return strings.ToUpper(strings.TrimSpace(rollNumber))
}
