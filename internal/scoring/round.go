// Package scoring implements the rubric that turns resume text into an AnalysisResult.
//
// All scores are integers in [0, 100]. Rounding is round-half-up done in
// integer arithmetic, so results never depend on floating point error.
package scoring

// Component weights of the overall score, in percent. They sum to 100.
const (
	keywordWeight = 40
	skillsWeight  = 35
	formatWeight  = 25
)

// Percent returns round(100*n/d) with halves rounded up. d <= 0 yields 0.
func Percent(n, d int) int {
	if d <= 0 || n <= 0 {
		return 0
	}
	// floor(100n/d + 1/2) == floor((200n + d) / 2d)
	return (200*n + d) / (2 * d)
}

// WeightedScore combines the three component scores as
// round(0.40*keyword + 0.35*skills + 0.25*format) with halves rounded up.
func WeightedScore(keyword, skills, format int) int {
	total := keyword*keywordWeight + skills*skillsWeight + format*formatWeight
	return (total + 50) / 100
}
