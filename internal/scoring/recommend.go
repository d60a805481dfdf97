package scoring

import "github.com/jonathan/resume-scorer/internal/types"

// Thresholds used by the recommendation rules.
const (
	minFoundKeywords  = 5
	minFoundTechnical = 3
	minKeywordScore   = 60
)

// Rule is a single recommendation condition.
type Rule struct {
	ID      string
	Message string
	applies func(r *types.AnalysisResult) bool
}

// Applies reports whether the rule fires for r.
func (rule Rule) Applies(r *types.AnalysisResult) bool {
	return rule.applies(r)
}

// rules are evaluated in this order; the output order is part of the contract.
var rules = []Rule{
	{
		ID:      "short",
		Message: "Add more detail to your experience and achievements to reach optimal length",
		applies: func(r *types.AnalysisResult) bool { return r.WordCount < MinWords },
	},
	{
		ID:      "long",
		Message: "Consider condensing your resume to focus on most relevant information",
		applies: func(r *types.AnalysisResult) bool { return r.WordCount > MaxWords },
	},
	{
		ID:      "contact",
		Message: "Include complete contact information (email, phone, location)",
		applies: func(r *types.AnalysisResult) bool { return !r.FormatAnalysis.HasContact },
	},
	{
		ID:      "summary",
		Message: "Add a professional summary to highlight your key qualifications",
		applies: func(r *types.AnalysisResult) bool { return !r.FormatAnalysis.HasSummary },
	},
	{
		ID:      "keywords",
		Message: "Include more industry-relevant keywords to improve ATS compatibility",
		applies: func(r *types.AnalysisResult) bool { return len(r.KeywordAnalysis.Found) < minFoundKeywords },
	},
	{
		ID:      "technical",
		Message: "Highlight more technical skills relevant to your field",
		applies: func(r *types.AnalysisResult) bool { return len(r.SkillsAnalysis.Technical) < minFoundTechnical },
	},
	{
		ID:      "action-verbs",
		Message: "Use action verbs and quantify your achievements with specific metrics",
		applies: func(r *types.AnalysisResult) bool { return r.KeywordAnalysis.Score < minKeywordScore },
	},
}

// Rules returns the recommendation rules in evaluation order.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}

// Recommend evaluates every rule against r and returns the messages of those
// that fire. All rules are checked; several may fire.
func Recommend(r *types.AnalysisResult) []string {
	out := make([]string, 0, len(rules))
	for _, rule := range rules {
		if rule.applies(r) {
			out = append(out, rule.Message)
		}
	}
	return out
}

// ScoreBand groups a 0-100 score for display.
type ScoreBand string

const (
	BandStrong ScoreBand = "strong"
	BandFair   ScoreBand = "fair"
	BandWeak   ScoreBand = "weak"
)

// Band returns the display band of score: strong from 80, fair from 60.
func Band(score int) ScoreBand {
	switch {
	case score >= 80:
		return BandStrong
	case score >= 60:
		return BandFair
	default:
		return BandWeak
	}
}
