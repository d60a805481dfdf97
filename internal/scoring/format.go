package scoring

import (
	"regexp"

	"github.com/jonathan/resume-scorer/internal/types"
)

// Section probes. They run on the original-case text.
var (
	contactPattern    = regexp.MustCompile(`(?i)(@|email|phone|\+\d|\(\d{3}\)|\d{3}-\d{3}-\d{4})`)
	summaryPattern    = regexp.MustCompile(`(?i)(summary|objective|profile|about)`)
	experiencePattern = regexp.MustCompile(`(?i)(experience|work|employment|job|position)`)
	educationPattern  = regexp.MustCompile(`(?i)(education|degree|university|college|school)`)
)

const formatChecks = 4

// AnalyzeFormat detects contact details and the summary, experience and
// education sections.
func AnalyzeFormat(text string) types.FormatAnalysis {
	f := types.FormatAnalysis{
		HasContact:    contactPattern.MatchString(text),
		HasSummary:    summaryPattern.MatchString(text),
		HasExperience: experiencePattern.MatchString(text),
		HasEducation:  educationPattern.MatchString(text),
	}
	f.Score = Percent(f.SectionCount(), formatChecks)
	return f
}
