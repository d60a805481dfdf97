package scoring

import (
	"github.com/jonathan/resume-scorer/internal/lexicon"
	"github.com/jonathan/resume-scorer/internal/types"
)

// MaxMissingKeywords caps KeywordAnalysis.Missing.
const MaxMissingKeywords = 5

// AnalyzeKeywords matches the keyword lexicon against lower, the lowercased document.
// Matching is plain substring containment, not whole-word.
func AnalyzeKeywords(lower string, keywords *lexicon.Lexicon) types.KeywordAnalysis {
	found, missing := keywords.Match(lower)
	if len(missing) > MaxMissingKeywords {
		missing = missing[:MaxMissingKeywords]
	}

	return types.KeywordAnalysis{
		Found:   found,
		Missing: missing,
		Score:   Percent(len(found), keywords.Len()),
	}
}
