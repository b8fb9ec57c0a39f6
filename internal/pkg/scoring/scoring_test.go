package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gspavan07/StudentCodingDashboard/internal/app/models"
)

func intPtr(v int) *int { return &v }

func TestScoreNilProfile(t *testing.T) {
	assert.Equal(t, 0, Score(nil))
	assert.Equal(t, 0, TotalProblems(nil))
	assert.Equal(t, 0, TotalContests(nil))
}

func TestScoreEmptyProfile(t *testing.T) {
	// All metric fields nil: never-scraped profile scores zero.
	p := &models.CodingProfile{ID: 1, StudentID: 1}
	assert.Equal(t, 0, Score(p))
	assert.Equal(t, 0, TotalProblems(p))
	assert.Equal(t, 0, TotalContests(p))
}

func TestScoreWeights(t *testing.T) {
	tests := []struct {
		name     string
		profile  *models.CodingProfile
		expected int
	}{
		{
			name: "mixed platforms",
			// 1*10 + 2*5 + 3*2 + 1*3 + 2*1 + 3*0 + 2*4 + 2*0 + 7 = 46
			profile: &models.CodingProfile{
				LeetCodeEasy:        intPtr(10),
				LeetCodeMedium:      intPtr(5),
				LeetCodeHard:        intPtr(2),
				GfgBasic:            intPtr(3),
				GfgMedium:           intPtr(1),
				GfgHard:             intPtr(0),
				CodeChefContests:    intPtr(4),
				HackerRankStarScore: intPtr(7),
			},
			expected: 46,
		},
		{
			name: "leetcode only",
			profile: &models.CodingProfile{
				LeetCodeEasy:   intPtr(1),
				LeetCodeMedium: intPtr(1),
				LeetCodeHard:   intPtr(1),
			},
			expected: 6,
		},
		{
			name: "contests only",
			profile: &models.CodingProfile{
				CodeChefContests: intPtr(3),
				LeetCodeContests: intPtr(2),
			},
			expected: 10,
		},
		{
			name: "hackerrank contests do not score",
			profile: &models.CodingProfile{
				HackerRankContests: intPtr(9),
			},
			expected: 0,
		},
		{
			name: "unscored fields ignored",
			profile: &models.CodingProfile{
				HackerRankStars:     intPtr(5),
				CodeChefTotalSolved: intPtr(120),
				CodeChefStars:       intPtr(4),
				GfgSchool:           intPtr(30),
				GfgScore:            intPtr(250),
			},
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Score(tt.profile))
		})
	}
}

func TestScoreNegativeValuesPassThrough(t *testing.T) {
	// No clamping: validation happens upstream at the import boundary.
	p := &models.CodingProfile{
		LeetCodeEasy: intPtr(-3),
		GfgHard:      intPtr(1),
	}
	assert.Equal(t, 0, Score(p))
}

func TestTotalProblems(t *testing.T) {
	p := &models.CodingProfile{
		LeetCodeEasy:   intPtr(10),
		LeetCodeMedium: intPtr(5),
		LeetCodeHard:   intPtr(2),
		GfgBasic:       intPtr(3),
		GfgMedium:      intPtr(1),
		GfgHard:        intPtr(4),
		GfgSchool:      intPtr(20), // school problems are not counted
	}
	assert.Equal(t, 25, TotalProblems(p))
}

func TestTotalContestsUsesHackerRankAndCodeChef(t *testing.T) {
	// Intentionally a different platform pair than the score's contest terms.
	p := &models.CodingProfile{
		HackerRankContests: intPtr(3),
		CodeChefContests:   intPtr(2),
		LeetCodeContests:   intPtr(7),
	}
	assert.Equal(t, 5, TotalContests(p))
}
