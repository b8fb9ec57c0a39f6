package services

import (
	"context"
	"strings"

	"github.com/gspavan07/StudentCodingDashboard/internal/app/models"
	"github.com/gspavan07/StudentCodingDashboard/internal/app/models/dto"
	"github.com/gspavan07/StudentCodingDashboard/internal/app/repositories"
	"github.com/gspavan07/StudentCodingDashboard/internal/pkg/apperrors"
	"github.com/gspavan07/StudentCodingDashboard/internal/pkg/logger"
)

// ImportService validates bulk upload rows and reconciles the clean ones
// against the roster. Malformed rows are skipped and counted, never
// aborting the rest of the batch.
type ImportService struct {
	roster repositories.RosterStore
}

// NewImportService creates a new import service instance.
func NewImportService(roster repositories.RosterStore) *ImportService {
	return &ImportService{roster: roster}
}

// Import processes a batch of upload rows. Rows missing a roll number or a
// name are skipped. Rows sharing a roll number are all applied in order, so
// the last occurrence wins.
func (s *ImportService) Import(ctx context.Context, req dto.ImportRequest) (*dto.ImportResponse, error) {
	if len(req.Rows) == 0 {
		return nil, apperrors.ErrEmptyBatch
	}

	records := make([]repositories.ImportRecord, 0, len(req.Rows))
	skipped := 0
	for i, row := range req.Rows {
		rec, ok := toImportRecord(row)
		if !ok {
			logger.Warn().Int("row", i).Str("roll_number", row.RollNumber).Msg("Skipping malformed upload row")
			skipped++
			continue
		}
		records = append(records, rec)
	}

	processed := 0
	if len(records) > 0 {
		n, err := s.roster.Reconcile(ctx, records)
		if err != nil {
			return nil, err
		}
		processed = n
	}

	logger.Info().Int("processed", processed).Int("skipped", skipped).Msg("Upload batch reconciled")

	return &dto.ImportResponse{
		Processed: processed,
		Skipped:   skipped,
		Message:   "import completed",
	}, nil
}

// toImportRecord validates a single upload row. A row is usable when it has
// both a roll number and a name, and no metric is negative; missing metric
// fields default to zero.
func toImportRecord(row dto.ImportRow) (repositories.ImportRecord, bool) {
	roll := strings.ToUpper(strings.TrimSpace(row.RollNumber))
	name := strings.TrimSpace(row.Name)
	if roll == "" || name == "" {
		return repositories.ImportRecord{}, false
	}
	if hasNegativeMetric(row) {
		return repositories.ImportRecord{}, false
	}

	return repositories.ImportRecord{
		RollNumber: roll,
		Name:       name,
		Branch:     strings.TrimSpace(row.Branch),
		Year:       strings.TrimSpace(row.Year),
		ImageURL:   row.ImageURL,
		Metrics: models.ProfileMetrics{
			HackerRank: row.HackerRank,
			LeetCode:   row.LeetCode,
			CodeChef:   row.CodeChef,
			Gfg:        row.Gfg,
		},
	}, true
}

func hasNegativeMetric(row dto.ImportRow) bool {
	ints := []int{
		row.HackerRank.StarScore, row.HackerRank.Contests, row.HackerRank.Stars,
		row.LeetCode.Easy, row.LeetCode.Medium, row.LeetCode.Hard, row.LeetCode.Contests,
		row.CodeChef.TotalSolved, row.CodeChef.Contests, row.CodeChef.Stars,
		row.Gfg.School, row.Gfg.Basic, row.Gfg.Medium, row.Gfg.Hard, row.Gfg.Score,
	}
	for _, v := range ints {
		if v < 0 {
			return true
		}
	}
	return row.LeetCode.Rank < 0
}
