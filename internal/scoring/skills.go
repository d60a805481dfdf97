package scoring

import (
	"github.com/jonathan/resume-scorer/internal/lexicon"
	"github.com/jonathan/resume-scorer/internal/types"
)

// AnalyzeSkills matches the technical and soft skill lexicons against lower.
// A term present in both lexicons counts once in each.
func AnalyzeSkills(lower string, technical, soft *lexicon.Lexicon) types.SkillsAnalysis {
	foundTechnical, _ := technical.Match(lower)
	foundSoft, _ := soft.Match(lower)

	return types.SkillsAnalysis{
		Technical: foundTechnical,
		Soft:      foundSoft,
		Score:     Percent(len(foundTechnical)+len(foundSoft), technical.Len()+soft.Len()),
	}
}
