package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gspavan07/StudentCodingDashboard/internal/app/models"
	"github.com/gspavan07/StudentCodingDashboard/internal/app/models/dto"
	"github.com/gspavan07/StudentCodingDashboard/internal/app/repositories"
	"github.com/gspavan07/StudentCodingDashboard/internal/pkg/apperrors"
)

func TestImport_EmptyBatchRejected(t *testing.T) {
	svc := NewImportService(repositories.NewMemoryRoster())

	_, err := svc.Import(context.Background(), dto.ImportRequest{})
	assert.ErrorIs(t, err, apperrors.ErrEmptyBatch)
}

func TestImport_SkipsMalformedRows(t *testing.T) {
	roster := repositories.NewMemoryRoster()
	svc := NewImportService(roster)

	resp, err := svc.Import(context.Background(), dto.ImportRequest{Rows: []dto.ImportRow{
		{RollNumber: "20A91A0501", Name: "Ravi", Branch: "CSE", Year: "3"},
		{RollNumber: "", Name: "No Roll"},
		{RollNumber: "20A91A0502", Name: ""},
		{RollNumber: "   ", Name: "Blank Roll"},
		{RollNumber: "20A91A0503", Name: "Sita", Branch: "CSE", Year: "3"},
	}})
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Processed)
	assert.Equal(t, 3, resp.Skipped)

	students, err := roster.GetAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, students, 2)
}

func TestImport_SkipsRowsWithNegativeMetrics(t *testing.T) {
	roster := repositories.NewMemoryRoster()
	svc := NewImportService(roster)

	resp, err := svc.Import(context.Background(), dto.ImportRequest{Rows: []dto.ImportRow{
		{RollNumber: "R1", Name: "Negative Easy", Branch: "CSE", Year: "3",
			LeetCode: models.LeetCodeMetrics{Easy: -5}},
		{RollNumber: "R2", Name: "Negative Rank", Branch: "CSE", Year: "3",
			LeetCode: models.LeetCodeMetrics{Rank: -1.5}},
		{RollNumber: "R3", Name: "Negative Gfg", Branch: "CSE", Year: "3",
			Gfg: models.GfgMetrics{Hard: -1}},
		{RollNumber: "R4", Name: "Clean", Branch: "CSE", Year: "3",
			LeetCode: models.LeetCodeMetrics{Easy: 5}},
	}})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Processed)
	assert.Equal(t, 3, resp.Skipped)

	students, err := roster.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, "R4", students[0].RollNumber)
}

func TestImport_AllRowsMalformed(t *testing.T) {
	svc := NewImportService(repositories.NewMemoryRoster())

	resp, err := svc.Import(context.Background(), dto.ImportRequest{Rows: []dto.ImportRow{
		{RollNumber: "", Name: ""},
		{RollNumber: "R1", Name: "  "},
	}})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Processed)
	assert.Equal(t, 2, resp.Skipped)
}

func TestImport_NormalizesRollNumber(t *testing.T) {
	roster := repositories.NewMemoryRoster()
	svc := NewImportService(roster)

	_, err := svc.Import(context.Background(), dto.ImportRequest{Rows: []dto.ImportRow{
		{RollNumber: " 20a91a0501 ", Name: "Ravi", Branch: "CSE", Year: "3"},
	}})
	require.NoError(t, err)

	student, err := roster.GetByRollNumber(context.Background(), "20A91A0501")
	require.NoError(t, err)
	assert.Equal(t, "Ravi", student.Name)
}

func TestImport_DuplicateRollNumberLastRowWins(t *testing.T) {
	roster := repositories.NewMemoryRoster()
	svc := NewImportService(roster)

	resp, err := svc.Import(context.Background(), dto.ImportRequest{Rows: []dto.ImportRow{
		{RollNumber: "R1", Name: "Old Name", Branch: "CSE", Year: "3",
			LeetCode: models.LeetCodeMetrics{Easy: 5}},
		{RollNumber: "R1", Name: "New Name", Branch: "CSE", Year: "3",
			LeetCode: models.LeetCodeMetrics{Easy: 9}},
	}})
	require.NoError(t, err)

	// Both rows are upserted; the later one overwrites the earlier.
	assert.Equal(t, 2, resp.Processed)

	student, err := roster.GetByRollNumber(context.Background(), "R1")
	require.NoError(t, err)
	assert.Equal(t, "New Name", student.Name)

	profile, err := roster.GetProfile(context.Background(), student.ID)
	require.NoError(t, err)
	require.NotNil(t, profile.LeetCodeEasy)
	assert.Equal(t, 9, *profile.LeetCodeEasy)
}

func TestImport_ReimportPreservesStudentIdentity(t *testing.T) {
	roster := repositories.NewMemoryRoster()
	svc := NewImportService(roster)

	row := dto.ImportRow{RollNumber: "R1", Name: "Ravi", Branch: "CSE", Year: "3",
		LeetCode: models.LeetCodeMetrics{Easy: 5}}

	_, err := svc.Import(context.Background(), dto.ImportRequest{Rows: []dto.ImportRow{row}})
	require.NoError(t, err)
	first, err := roster.GetByRollNumber(context.Background(), "R1")
	require.NoError(t, err)

	row.LeetCode.Easy = 12
	_, err = svc.Import(context.Background(), dto.ImportRequest{Rows: []dto.ImportRow{row}})
	require.NoError(t, err)
	second, err := roster.GetByRollNumber(context.Background(), "R1")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
}
