package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gspavan07/StudentCodingDashboard/internal/app/models"
	"github.com/gspavan07/StudentCodingDashboard/internal/pkg/apperrors"
	"github.com/gspavan07/StudentCodingDashboard/internal/pkg/dberrors"
	"github.com/gspavan07/StudentCodingDashboard/internal/pkg/logger"
)

var studentColumns = []string{"id", "roll_number", "name", "branch", "year", "image_url"}

var profileColumns = []string{
	"id", "student_id",
	"hackerrank_star_score", "hackerrank_contests", "hackerrank_stars",
	"leetcode_easy", "leetcode_medium", "leetcode_hard", "leetcode_rank", "leetcode_contests",
	"codechef_total_solved", "codechef_contests", "codechef_stars",
	"gfg_school", "gfg_basic", "gfg_medium", "gfg_hard", "gfg_score",
}

// PostgresRoster is the RosterStore backed by the students/coding_profiles
// tables. Row-level writes that touch both tables run inside a transaction,
// giving the same per-row atomicity the in-memory store gets from its lock.
type PostgresRoster struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewPostgresRoster creates a new Postgres-backed roster store.
func NewPostgresRoster(db *pgxpool.Pool) *PostgresRoster {
	return &PostgresRoster{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// rowQuerier abstracts the pool and a transaction for single-row statements,
// so the write helpers can run standalone or inside a reconcile transaction.
type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// GetAll returns every student ordered by surrogate id (insertion order).
func (r *PostgresRoster) GetAll(ctx context.Context) ([]models.Student, error) {
	sql, args, err := r.sb.Select(studentColumns...).
		From("students").
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get students query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error retrieving students: %w", err)
	}
	defer rows.Close()

	return scanStudents(rows)
}

// GetAllWithProfiles returns every student left-joined with its profile.
func (r *PostgresRoster) GetAllWithProfiles(ctx context.Context) ([]models.StudentWithProfile, error) {
	query := `
		SELECT s.id, s.roll_number, s.name, s.branch, s.year, s.image_url,
		       p.id, p.student_id,
		       p.hackerrank_star_score, p.hackerrank_contests, p.hackerrank_stars,
		       p.leetcode_easy, p.leetcode_medium, p.leetcode_hard, p.leetcode_rank, p.leetcode_contests,
		       p.codechef_total_solved, p.codechef_contests, p.codechef_stars,
		       p.gfg_school, p.gfg_basic, p.gfg_medium, p.gfg_hard, p.gfg_score
		FROM students s
		LEFT JOIN coding_profiles p ON p.student_id = s.id
		ORDER BY s.id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error retrieving students with profiles: %w", err)
	}
	defer rows.Close()

	var out []models.StudentWithProfile
	for rows.Next() {
		var s models.Student
		var p models.CodingProfile
		var profileID, profileStudentID *int64

		err := rows.Scan(
			&s.ID, &s.RollNumber, &s.Name, &s.Branch, &s.Year, &s.ImageURL,
			&profileID, &profileStudentID,
			&p.HackerRankStarScore, &p.HackerRankContests, &p.HackerRankStars,
			&p.LeetCodeEasy, &p.LeetCodeMedium, &p.LeetCodeHard, &p.LeetCodeRank, &p.LeetCodeContests,
			&p.CodeChefTotalSolved, &p.CodeChefContests, &p.CodeChefStars,
			&p.GfgSchool, &p.GfgBasic, &p.GfgMedium, &p.GfgHard, &p.GfgScore,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning student with profile row: %w", err)
		}

		swp := models.StudentWithProfile{Student: s}
		if profileID != nil {
			p.ID = *profileID
			p.StudentID = *profileStudentID
			swp.Profile = &p
		}
		out = append(out, swp)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating students with profiles: %w", err)
	}
	return out, nil
}

// GetByBranchAndYear returns students matching both fields exactly.
func (r *PostgresRoster) GetByBranchAndYear(ctx context.Context, branch, year string) ([]models.Student, error) {
	sql, args, err := r.sb.Select(studentColumns...).
		From("students").
		Where(squirrel.Eq{"branch": branch, "year": year}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get students by section query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error retrieving students by section: %w", err)
	}
	defer rows.Close()

	return scanStudents(rows)
}

// GetByRollNumber returns the student with the given roll number.
func (r *PostgresRoster) GetByRollNumber(ctx context.Context, rollNumber string) (*models.Student, error) {
	sql, args, err := r.sb.Select(studentColumns...).
		From("students").
		Where(squirrel.Eq{"roll_number": rollNumber}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	var s models.Student
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&s.ID, &s.RollNumber, &s.Name, &s.Branch, &s.Year, &s.ImageURL)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return &s, nil
}

// GetProfile returns the coding profile for a student id.
func (r *PostgresRoster) GetProfile(ctx context.Context, studentID int64) (*models.CodingProfile, error) {
	sql, args, err := r.sb.Select(profileColumns...).
		From("coding_profiles").
		Where(squirrel.Eq{"student_id": studentID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get profile query: %w", err)
	}

	p, err := scanProfileRow(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, fmt.Errorf("error retrieving profile: %w", err)
	}
	return p, nil
}

// GetStudentWithProfile composes the student and profile lookups.
func (r *PostgresRoster) GetStudentWithProfile(ctx context.Context, rollNumber string) (*models.StudentWithProfile, error) {
	student, err := r.GetByRollNumber(ctx, rollNumber)
	if err != nil {
		return nil, err
	}

	swp := &models.StudentWithProfile{Student: *student}
	profile, err := r.GetProfile(ctx, student.ID)
	if err != nil {
		if errors.Is(err, apperrors.ErrProfileNotFound) {
			return swp, nil
		}
		return nil, err
	}
	swp.Profile = profile
	return swp, nil
}

// CreateStudent inserts a student and returns it with its assigned id.
func (r *PostgresRoster) CreateStudent(ctx context.Context, student *models.Student) (*models.Student, error) {
	created, err := r.createStudentTx(ctx, r.db, student)
	if err != nil {
		return nil, err
	}
	logger.Info().Int64("id", created.ID).Str("rollNumber", created.RollNumber).Msg("Student created")
	return created, nil
}

func (r *PostgresRoster) createStudentTx(ctx context.Context, q rowQuerier, student *models.Student) (*models.Student, error) {
	sql, args, err := r.sb.Insert("students").
		Columns("roll_number", "name", "branch", "year", "image_url").
		Values(student.RollNumber, student.Name, student.Branch, student.Year, student.ImageURL).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build create student query: %w", err)
	}

	s := *student
	if err := q.QueryRow(ctx, sql, args...).Scan(&s.ID); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "students_roll_number_key") {
			return nil, apperrors.ErrRollNumberExists
		}
		return nil, fmt.Errorf("error creating student: %w", err)
	}
	return &s, nil
}

// UpdateStudent merges the non-nil fields of update into the record.
func (r *PostgresRoster) UpdateStudent(ctx context.Context, id int64, update models.StudentUpdate) (*models.Student, error) {
	return r.updateStudentTx(ctx, r.db, id, update)
}

func (r *PostgresRoster) updateStudentTx(ctx context.Context, q rowQuerier, id int64, update models.StudentUpdate) (*models.Student, error) {
	builder := r.sb.Update("students").Where(squirrel.Eq{"id": id})

	changed := false
	if update.Name != nil {
		builder = builder.Set("name", *update.Name)
		changed = true
	}
	if update.Branch != nil {
		builder = builder.Set("branch", *update.Branch)
		changed = true
	}
	if update.Year != nil {
		builder = builder.Set("year", *update.Year)
		changed = true
	}
	if update.ImageURL != nil {
		builder = builder.Set("image_url", *update.ImageURL)
		changed = true
	}

	if !changed {
		// Nothing to merge; return the current record.
		return r.getByIDTx(ctx, q, id)
	}

	sql, args, err := builder.
		Suffix("RETURNING id, roll_number, name, branch, year, image_url").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build update student query: %w", err)
	}

	var s models.Student
	err = q.QueryRow(ctx, sql, args...).Scan(
		&s.ID, &s.RollNumber, &s.Name, &s.Branch, &s.Year, &s.ImageURL)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error updating student: %w", err)
	}
	return &s, nil
}

func (r *PostgresRoster) getByIDTx(ctx context.Context, q rowQuerier, id int64) (*models.Student, error) {
	sql, args, err := r.sb.Select(studentColumns...).
		From("students").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get student by id query: %w", err)
	}

	var s models.Student
	err = q.QueryRow(ctx, sql, args...).Scan(
		&s.ID, &s.RollNumber, &s.Name, &s.Branch, &s.Year, &s.ImageURL)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student by id: %w", err)
	}
	return &s, nil
}

// ReplaceProfile swaps the student's profile wholesale, preserving the
// profile row's surrogate id via upsert on student_id.
func (r *PostgresRoster) ReplaceProfile(ctx context.Context, studentID int64, metrics models.ProfileMetrics) (*models.CodingProfile, error) {
	return r.replaceProfileTx(ctx, r.db, studentID, metrics)
}

func (r *PostgresRoster) replaceProfileTx(ctx context.Context, q rowQuerier, studentID int64, metrics models.ProfileMetrics) (*models.CodingProfile, error) {
	p := metrics.ToProfile(studentID)

	query := `
		INSERT INTO coding_profiles (
			student_id,
			hackerrank_star_score, hackerrank_contests, hackerrank_stars,
			leetcode_easy, leetcode_medium, leetcode_hard, leetcode_rank, leetcode_contests,
			codechef_total_solved, codechef_contests, codechef_stars,
			gfg_school, gfg_basic, gfg_medium, gfg_hard, gfg_score
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		ON CONFLICT (student_id) DO UPDATE SET
			hackerrank_star_score = EXCLUDED.hackerrank_star_score,
			hackerrank_contests   = EXCLUDED.hackerrank_contests,
			hackerrank_stars      = EXCLUDED.hackerrank_stars,
			leetcode_easy         = EXCLUDED.leetcode_easy,
			leetcode_medium       = EXCLUDED.leetcode_medium,
			leetcode_hard         = EXCLUDED.leetcode_hard,
			leetcode_rank         = EXCLUDED.leetcode_rank,
			leetcode_contests     = EXCLUDED.leetcode_contests,
			codechef_total_solved = EXCLUDED.codechef_total_solved,
			codechef_contests     = EXCLUDED.codechef_contests,
			codechef_stars        = EXCLUDED.codechef_stars,
			gfg_school            = EXCLUDED.gfg_school,
			gfg_basic             = EXCLUDED.gfg_basic,
			gfg_medium            = EXCLUDED.gfg_medium,
			gfg_hard              = EXCLUDED.gfg_hard,
			gfg_score             = EXCLUDED.gfg_score
		RETURNING id
	`

	err := q.QueryRow(ctx, query,
		p.StudentID,
		p.HackerRankStarScore, p.HackerRankContests, p.HackerRankStars,
		p.LeetCodeEasy, p.LeetCodeMedium, p.LeetCodeHard, p.LeetCodeRank, p.LeetCodeContests,
		p.CodeChefTotalSolved, p.CodeChefContests, p.CodeChefStars,
		p.GfgSchool, p.GfgBasic, p.GfgMedium, p.GfgHard, p.GfgScore,
	).Scan(&p.ID)
	if err != nil {
		return nil, fmt.Errorf("error replacing profile: %w", err)
	}

	return p, nil
}

// DeleteStudent removes a student; the profile row goes with it via the
// ON DELETE CASCADE on coding_profiles.student_id.
func (r *PostgresRoster) DeleteStudent(ctx context.Context, id int64) (bool, error) {
	sql, args, err := r.sb.Delete("students").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build delete student query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return false, fmt.Errorf("error deleting student: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// DeleteStudentByRollNumber removes the student matching the roll number.
func (r *PostgresRoster) DeleteStudentByRollNumber(ctx context.Context, rollNumber string) (bool, error) {
	sql, args, err := r.sb.Delete("students").
		Where(squirrel.Eq{"roll_number": rollNumber}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build delete by roll number query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return false, fmt.Errorf("error deleting student by roll number: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// DeleteStudentsByBranch removes every student in the branch.
func (r *PostgresRoster) DeleteStudentsByBranch(ctx context.Context, branch string) (int, error) {
	sql, args, err := r.sb.Delete("students").
		Where(squirrel.Eq{"branch": branch}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build delete by branch query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("error deleting students by branch: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

// DeleteStudentsBySection removes every student in the (branch, year) section.
func (r *PostgresRoster) DeleteStudentsBySection(ctx context.Context, branch, year string) (int, error) {
	sql, args, err := r.sb.Delete("students").
		Where(squirrel.Eq{"branch": branch, "year": year}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build delete by section query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("error deleting students by section: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

// Reconcile upserts the batch row by row, each row in its own transaction so
// a student insert and its profile replace land or fail together.
func (r *PostgresRoster) Reconcile(ctx context.Context, batch []ImportRecord) (int, error) {
	count := 0
	for _, rec := range batch {
		if rec.RollNumber == "" {
			continue
		}
		if err := r.reconcileRow(ctx, rec); err != nil {
			logger.Error().Err(err).Str("rollNumber", rec.RollNumber).Msg("Failed to upsert import row")
			return count, err
		}
		count++
	}
	return count, nil
}

func (r *PostgresRoster) reconcileRow(ctx context.Context, rec ImportRecord) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("error starting reconcile transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var student *models.Student
	existing, err := r.getByRollNumberTx(ctx, tx, rec.RollNumber)
	switch {
	case err == nil:
		student, err = r.updateStudentTx(ctx, tx, existing.ID, models.StudentUpdate{
			Name:     &rec.Name,
			Branch:   &rec.Branch,
			Year:     &rec.Year,
			ImageURL: rec.ImageURL,
		})
		if err != nil {
			return err
		}
	case errors.Is(err, apperrors.ErrStudentNotFound):
		student, err = r.createStudentTx(ctx, tx, &models.Student{
			RollNumber: rec.RollNumber,
			Name:       rec.Name,
			Branch:     rec.Branch,
			Year:       rec.Year,
			ImageURL:   rec.ImageURL,
		})
		if err != nil {
			return err
		}
	default:
		return err
	}

	if _, err := r.replaceProfileTx(ctx, tx, student.ID, rec.Metrics); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *PostgresRoster) getByRollNumberTx(ctx context.Context, tx pgx.Tx, rollNumber string) (*models.Student, error) {
	sql, args, err := r.sb.Select(studentColumns...).
		From("students").
		Where(squirrel.Eq{"roll_number": rollNumber}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build locked roll number query: %w", err)
	}

	var s models.Student
	err = tx.QueryRow(ctx, sql, args...).Scan(
		&s.ID, &s.RollNumber, &s.Name, &s.Branch, &s.Year, &s.ImageURL)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student for reconcile: %w", err)
	}
	return &s, nil
}

func scanStudents(rows pgx.Rows) ([]models.Student, error) {
	var out []models.Student
	for rows.Next() {
		var s models.Student
		if err := rows.Scan(&s.ID, &s.RollNumber, &s.Name, &s.Branch, &s.Year, &s.ImageURL); err != nil {
			return nil, fmt.Errorf("error scanning student row: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating student rows: %w", err)
	}
	return out, nil
}

func scanProfileRow(row pgx.Row) (*models.CodingProfile, error) {
	var p models.CodingProfile
	err := row.Scan(
		&p.ID, &p.StudentID,
		&p.HackerRankStarScore, &p.HackerRankContests, &p.HackerRankStars,
		&p.LeetCodeEasy, &p.LeetCodeMedium, &p.LeetCodeHard, &p.LeetCodeRank, &p.LeetCodeContests,
		&p.CodeChefTotalSolved, &p.CodeChefContests, &p.CodeChefStars,
		&p.GfgSchool, &p.GfgBasic, &p.GfgMedium, &p.GfgHard, &p.GfgScore,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
