package models

// CodingProfile defines the per-student bundle of per-platform coding metrics,
// based on the 'coding_profiles' table. At most one profile exists per student
// (1:1 by convention, enforced by the write paths rather than a constraint).
//
// Metric columns are nullable in storage: nil means "never scraped", and every
// consumer treats nil as zero. Imports replace the whole bundle, never merge
// field by field.
type CodingProfile struct {
	ID        int64 `json:"id" db:"id" example:"1"`
	StudentID int64 `json:"studentId" db:"student_id" example:"1"`

	// HackerRank
	HackerRankStarScore *int `json:"hackerRankStarScore" db:"hackerrank_star_score"`
	HackerRankContests  *int `json:"hackerRankContests" db:"hackerrank_contests"`
	HackerRankStars     *int `json:"hackerRankStars" db:"hackerrank_stars"`

	// LeetCode
	LeetCodeEasy     *int     `json:"leetCodeEasy" db:"leetcode_easy"`
	LeetCodeMedium   *int     `json:"leetCodeMedium" db:"leetcode_medium"`
	LeetCodeHard     *int     `json:"leetCodeHard" db:"leetcode_hard"`
	LeetCodeRank     *float64 `json:"leetCodeRank" db:"leetcode_rank"` // External contest rating, may be fractional
	LeetCodeContests *int     `json:"leetCodeContests" db:"leetcode_contests"`

	// CodeChef
	CodeChefTotalSolved *int `json:"codeChefTotalSolved" db:"codechef_total_solved"`
	CodeChefContests    *int `json:"codeChefContests" db:"codechef_contests"`
	CodeChefStars       *int `json:"codeChefStars" db:"codechef_stars"`

	// GeeksforGeeks
	GfgSchool *int `json:"gfgSchool" db:"gfg_school"`
	GfgBasic  *int `json:"gfgBasic" db:"gfg_basic"`
	GfgMedium *int `json:"gfgMedium" db:"gfg_medium"`
	GfgHard   *int `json:"gfgHard" db:"gfg_hard"`
	GfgScore  *int `json:"gfgScore" db:"gfg_score"`
}

// ProfileMetrics is the platform-grouped shape an import row carries before it
// is flattened into a CodingProfile. All fields default to zero when the
// scraper had nothing for that platform.
type ProfileMetrics struct {
	HackerRank HackerRankMetrics `json:"hackerrank"`
	LeetCode   LeetCodeMetrics   `json:"leetcode"`
	CodeChef   CodeChefMetrics   `json:"codechef"`
	Gfg        GfgMetrics        `json:"gfg"`
}

// HackerRankMetrics groups the HackerRank figures of an import row.
type HackerRankMetrics struct {
	StarScore int `json:"starScore"`
	Contests  int `json:"contests"`
	Stars     int `json:"stars"`
}

// LeetCodeMetrics groups the LeetCode figures of an import row.
type LeetCodeMetrics struct {
	Easy     int     `json:"easy"`
	Medium   int     `json:"medium"`
	Hard     int     `json:"hard"`
	Rank     float64 `json:"rank"`
	Contests int     `json:"contests"`
}

// CodeChefMetrics groups the CodeChef figures of an import row.
type CodeChefMetrics struct {
	TotalSolved int `json:"totalSolved"`
	Contests    int `json:"contests"`
	Stars       int `json:"stars"`
}

// GfgMetrics groups the GeeksforGeeks figures of an import row.
type GfgMetrics struct {
	School int `json:"school"`
	Basic  int `json:"basic"`
	Medium int `json:"medium"`
	Hard   int `json:"hard"`
	Score  int `json:"score"`
}

// ToProfile flattens the platform-grouped metrics into a CodingProfile for the
// given student. Every column is populated, so a replaced profile never keeps
// stale values from an earlier import.
func (m ProfileMetrics) ToProfile(studentID int64) *CodingProfile {
	intPtr := func(v int) *int { return &v }
	floatPtr := func(v float64) *float64 { return &v }

	return &CodingProfile{
		StudentID:           studentID,
		HackerRankStarScore: intPtr(m.HackerRank.StarScore),
		HackerRankContests:  intPtr(m.HackerRank.Contests),
		HackerRankStars:     intPtr(m.HackerRank.Stars),
		LeetCodeEasy:        intPtr(m.LeetCode.Easy),
		LeetCodeMedium:      intPtr(m.LeetCode.Medium),
		LeetCodeHard:        intPtr(m.LeetCode.Hard),
		LeetCodeRank:        floatPtr(m.LeetCode.Rank),
		LeetCodeContests:    intPtr(m.LeetCode.Contests),
		CodeChefTotalSolved: intPtr(m.CodeChef.TotalSolved),
		CodeChefContests:    intPtr(m.CodeChef.Contests),
		CodeChefStars:       intPtr(m.CodeChef.Stars),
		GfgSchool:           intPtr(m.Gfg.School),
		GfgBasic:            intPtr(m.Gfg.Basic),
		GfgMedium:           intPtr(m.Gfg.Medium),
		GfgHard:             intPtr(m.Gfg.Hard),
		GfgScore:            intPtr(m.Gfg.Score),
	}
}
