package repositories

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gspavan07/StudentCodingDashboard/internal/app/models"
	"github.com/gspavan07/StudentCodingDashboard/internal/pkg/apperrors"
)

func strPtr(s string) *string { return &s }

func testStudent(roll, branch, year string) *models.Student {
	return &models.Student{
		RollNumber: roll,
		Name:       "Student " + roll,
		Branch:     branch,
		Year:       year,
	}
}

func testRecord(roll, branch, year string) ImportRecord {
	return ImportRecord{
		RollNumber: roll,
		Name:       "Student " + roll,
		Branch:     branch,
		Year:       year,
		Metrics: models.ProfileMetrics{
			LeetCode: models.LeetCodeMetrics{Easy: 5, Medium: 2, Contests: 1},
			CodeChef: models.CodeChefMetrics{Contests: 3},
		},
	}
}

func TestCreateStudentAssignsIDs(t *testing.T) {
	r := NewMemoryRoster()
	ctx := context.Background()

	a, err := r.CreateStudent(ctx, testStudent("22A1", "CSE", "3"))
	require.NoError(t, err)
	b, err := r.CreateStudent(ctx, testStudent("22A2", "CSE", "3"))
	require.NoError(t, err)

	assert.Equal(t, int64(1), a.ID)
	assert.Equal(t, int64(2), b.ID)
}

func TestCreateStudentDuplicateRollNumber(t *testing.T) {
	r := NewMemoryRoster()
	ctx := context.Background()

	_, err := r.CreateStudent(ctx, testStudent("22A1", "CSE", "3"))
	require.NoError(t, err)

	_, err = r.CreateStudent(ctx, testStudent("22A1", "ECE", "2"))
	assert.ErrorIs(t, err, apperrors.ErrRollNumberExists)

	// The failed create must not have clobbered the original record.
	existing, err := r.GetByRollNumber(ctx, "22A1")
	require.NoError(t, err)
	assert.Equal(t, "CSE", existing.Branch)
}

func TestGetByRollNumberIsExactMatch(t *testing.T) {
	r := NewMemoryRoster()
	ctx := context.Background()

	_, err := r.CreateStudent(ctx, testStudent("22A1B", "CSE", "3"))
	require.NoError(t, err)

	_, err = r.GetByRollNumber(ctx, "22a1b")
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)

	found, err := r.GetByRollNumber(ctx, "22A1B")
	require.NoError(t, err)
	assert.Equal(t, "22A1B", found.RollNumber)
}

func TestGetStudentWithProfileNoProfile(t *testing.T) {
	r := NewMemoryRoster()
	ctx := context.Background()

	_, err := r.CreateStudent(ctx, testStudent("22A1", "CSE", "3"))
	require.NoError(t, err)

	swp, err := r.GetStudentWithProfile(ctx, "22A1")
	require.NoError(t, err)
	assert.Equal(t, "22A1", swp.RollNumber)
	assert.Nil(t, swp.Profile)
}

func TestUpdateStudentMergesPartialFields(t *testing.T) {
	r := NewMemoryRoster()
	ctx := context.Background()

	created, err := r.CreateStudent(ctx, testStudent("22A1", "CSE", "3"))
	require.NoError(t, err)

	updated, err := r.UpdateStudent(ctx, created.ID, models.StudentUpdate{
		Name: strPtr("Renamed"),
		Year: strPtr("4"),
	})
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "22A1", updated.RollNumber)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, "CSE", updated.Branch)
	assert.Equal(t, "4", updated.Year)

	// Section index must follow the year change.
	old, err := r.GetByBranchAndYear(ctx, "CSE", "3")
	require.NoError(t, err)
	assert.Empty(t, old)

	moved, err := r.GetByBranchAndYear(ctx, "CSE", "4")
	require.NoError(t, err)
	assert.Len(t, moved, 1)
}

func TestUpdateStudentUnknownID(t *testing.T) {
	r := NewMemoryRoster()

	_, err := r.UpdateStudent(context.Background(), 42, models.StudentUpdate{Name: strPtr("x")})
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}

func TestReplaceProfileKeepsSurrogateID(t *testing.T) {
	r := NewMemoryRoster()
	ctx := context.Background()

	created, err := r.CreateStudent(ctx, testStudent("22A1", "CSE", "3"))
	require.NoError(t, err)

	first, err := r.ReplaceProfile(ctx, created.ID, models.ProfileMetrics{
		LeetCode: models.LeetCodeMetrics{Easy: 10},
	})
	require.NoError(t, err)

	second, err := r.ReplaceProfile(ctx, created.ID, models.ProfileMetrics{
		Gfg: models.GfgMetrics{Hard: 2},
	})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)

	// Wholesale replace: earlier LeetCode figures must be gone, not merged.
	stored, err := r.GetProfile(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.LeetCodeEasy)
	assert.Equal(t, 0, *stored.LeetCodeEasy)
	require.NotNil(t, stored.GfgHard)
	assert.Equal(t, 2, *stored.GfgHard)
}

func TestDeleteStudentCascadesProfile(t *testing.T) {
	r := NewMemoryRoster()
	ctx := context.Background()

	created, err := r.CreateStudent(ctx, testStudent("22A1", "CSE", "3"))
	require.NoError(t, err)
	_, err = r.ReplaceProfile(ctx, created.ID, models.ProfileMetrics{})
	require.NoError(t, err)

	deleted, err := r.DeleteStudent(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = r.GetByRollNumber(ctx, "22A1")
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
	_, err = r.GetProfile(ctx, created.ID)
	assert.ErrorIs(t, err, apperrors.ErrProfileNotFound)

	// Roll number is free again after deletion.
	_, err = r.CreateStudent(ctx, testStudent("22A1", "CSE", "3"))
	assert.NoError(t, err)
}

func TestDeleteStudentUnknownID(t *testing.T) {
	r := NewMemoryRoster()

	deleted, err := r.DeleteStudent(context.Background(), 7)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestDeleteStudentsByBranch(t *testing.T) {
	r := NewMemoryRoster()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := r.CreateStudent(ctx, testStudent(fmt.Sprintf("CSE%d", i), "CSE", "3"))
		require.NoError(t, err)
	}
	_, err := r.CreateStudent(ctx, testStudent("ECE0", "ECE", "3"))
	require.NoError(t, err)

	count, err := r.DeleteStudentsByBranch(ctx, "CSE")
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	remaining, err := r.GetByBranchAndYear(ctx, "CSE", "3")
	require.NoError(t, err)
	assert.Empty(t, remaining)

	all, err := r.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	// Deleting again finds nothing and is not an error.
	count, err = r.DeleteStudentsByBranch(ctx, "CSE")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestDeleteStudentsBySection(t *testing.T) {
	r := NewMemoryRoster()
	ctx := context.Background()

	_, err := r.CreateStudent(ctx, testStudent("A1", "CSE", "3"))
	require.NoError(t, err)
	_, err = r.CreateStudent(ctx, testStudent("A2", "CSE", "4"))
	require.NoError(t, err)

	count, err := r.DeleteStudentsBySection(ctx, "CSE", "3")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	all, err := r.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "A2", all[0].RollNumber)
}

func TestReconcileCreatesStudentsWithProfiles(t *testing.T) {
	r := NewMemoryRoster()
	ctx := context.Background()

	count, err := r.Reconcile(ctx, []ImportRecord{
		testRecord("A1", "CSE", "3"),
		testRecord("A2", "CSE", "3"),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	swp, err := r.GetStudentWithProfile(ctx, "A1")
	require.NoError(t, err)
	require.NotNil(t, swp.Profile)
	assert.Equal(t, 5, *swp.Profile.LeetCodeEasy)
}

func TestReconcileIsIdempotent(t *testing.T) {
	r := NewMemoryRoster()
	ctx := context.Background()

	batch := []ImportRecord{
		testRecord("A1", "CSE", "3"),
		testRecord("A2", "CSE", "3"),
	}

	first, err := r.Reconcile(ctx, batch)
	require.NoError(t, err)
	second, err := r.Reconcile(ctx, batch)
	require.NoError(t, err)

	assert.Equal(t, first, second)

	all, err := r.GetAllWithProfiles(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)

	// Surrogate ids survive the re-import.
	assert.Equal(t, int64(1), all[0].ID)
	assert.Equal(t, int64(2), all[1].ID)
	require.NotNil(t, all[0].Profile)
	assert.Equal(t, int64(1), all[0].Profile.ID)
}

func TestReconcileLastRowWinsWithinBatch(t *testing.T) {
	r := NewMemoryRoster()
	ctx := context.Background()

	early := testRecord("A1", "CSE", "3")
	late := testRecord("A1", "CSE", "3")
	late.Name = "Corrected Name"
	late.Metrics = models.ProfileMetrics{LeetCode: models.LeetCodeMetrics{Hard: 9}}

	count, err := r.Reconcile(ctx, []ImportRecord{early, late})
	require.NoError(t, err)

	// Both rows are upserts, so both count.
	assert.Equal(t, 2, count)

	all, err := r.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Corrected Name", all[0].Name)

	profile, err := r.GetProfile(ctx, all[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 9, *profile.LeetCodeHard)
	assert.Equal(t, 0, *profile.LeetCodeEasy)
}

func TestReconcileUpdatesKeepIdentity(t *testing.T) {
	r := NewMemoryRoster()
	ctx := context.Background()

	_, err := r.Reconcile(ctx, []ImportRecord{testRecord("A1", "CSE", "3")})
	require.NoError(t, err)

	moved := testRecord("A1", "CSE", "4")
	_, err = r.Reconcile(ctx, []ImportRecord{moved})
	require.NoError(t, err)

	s, err := r.GetByRollNumber(ctx, "A1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), s.ID)
	assert.Equal(t, "4", s.Year)

	section, err := r.GetByBranchAndYear(ctx, "CSE", "4")
	require.NoError(t, err)
	assert.Len(t, section, 1)
}

func TestReadersGetCopies(t *testing.T) {
	r := NewMemoryRoster()
	ctx := context.Background()

	_, err := r.CreateStudent(ctx, &models.Student{
		RollNumber: "A1", Name: "Original", Branch: "CSE", Year: "3",
		ImageURL: strPtr("https://img/a1.jpg"),
	})
	require.NoError(t, err)

	got, err := r.GetByRollNumber(ctx, "A1")
	require.NoError(t, err)
	got.Name = "Mutated"
	*got.ImageURL = "https://img/other.jpg"

	again, err := r.GetByRollNumber(ctx, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Original", again.Name)
	assert.Equal(t, "https://img/a1.jpg", *again.ImageURL)
}

func TestConcurrentReconcileAndReads(t *testing.T) {
	r := NewMemoryRoster()
	ctx := context.Background()

	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			batch := make([]ImportRecord, 0, 25)
			for i := 0; i < 25; i++ {
				batch = append(batch, testRecord(fmt.Sprintf("R%03d", i), "CSE", "3"))
			}
			_, err := r.Reconcile(ctx, batch)
			assert.NoError(t, err)
		}()
	}
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 25; i++ {
				all, err := r.GetAllWithProfiles(ctx)
				assert.NoError(t, err)
				// No reader may observe a student without its profile:
				// reconcile writes the pair in one critical section.
				for _, swp := range all {
					assert.NotNil(t, swp.Profile)
				}
			}
		}()
	}
	wg.Wait()

	all, err := r.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 25)
}
