// Package scoring maps a coding profile's raw platform metrics to a single
// comparable score. Every call site that needs a score must delegate here;
// the weights are a behavioral contract shared with historical exports.
package scoring

import "github.com/gspavan07/StudentCodingDashboard/internal/app/models"

// Weights applied to each scoring term. Easy problems count once, medium
// twice, hard three times; every CodeChef or LeetCode contest counts twice;
// the HackerRank star score is added as-is.
const (
	WeightEasy    = 1
	WeightMedium  = 2
	WeightHard    = 3
	WeightContest = 2
)

// Score computes the weighted score for a profile. A nil profile scores 0.
// Nil metric fields contribute 0; values are otherwise passed through
// arithmetically, without clamping. Validation of scraped inputs is the
// import boundary's job, not this function's.
func Score(p *models.CodingProfile) int {
	if p == nil {
		return 0
	}

	return WeightEasy*intOf(p.LeetCodeEasy) +
		WeightEasy*intOf(p.GfgBasic) +
		WeightMedium*intOf(p.LeetCodeMedium) +
		WeightMedium*intOf(p.GfgMedium) +
		WeightHard*intOf(p.LeetCodeHard) +
		WeightHard*intOf(p.GfgHard) +
		WeightContest*intOf(p.CodeChefContests) +
		WeightContest*intOf(p.LeetCodeContests) +
		intOf(p.HackerRankStarScore)
}

// TotalProblems sums the difficulty-bucketed problem counts across LeetCode
// and GeeksforGeeks. A nil profile yields 0.
func TotalProblems(p *models.CodingProfile) int {
	if p == nil {
		return 0
	}

	return intOf(p.LeetCodeEasy) + intOf(p.LeetCodeMedium) + intOf(p.LeetCodeHard) +
		intOf(p.GfgBasic) + intOf(p.GfgMedium) + intOf(p.GfgHard)
}

// TotalContests sums HackerRank and CodeChef contest participation.
//
// Note the asymmetry with Score, which weighs CodeChef and LeetCode contests
// but not HackerRank ones. The two figures have always drawn from different
// platforms and downstream consumers rely on both independently, so the
// asymmetry is kept as-is.
func TotalContests(p *models.CodingProfile) int {
	if p == nil {
		return 0
	}

	return intOf(p.HackerRankContests) + intOf(p.CodeChefContests)
}

func intOf(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
