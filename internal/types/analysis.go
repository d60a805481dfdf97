// Package types provides type definitions for structured data used throughout the resume-scorer system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// AnalysisResult is the full assessment of one resume.
type AnalysisResult struct {
	OverallScore    int             `json:"overallScore"`
	WordCount       int             `json:"wordCount"`
	KeywordAnalysis KeywordAnalysis `json:"keywordAnalysis"`
	SkillsAnalysis  SkillsAnalysis  `json:"skillsAnalysis"`
	FormatAnalysis  FormatAnalysis  `json:"formatAnalysis"`
	Recommendations []string        `json:"recommendations"`
}

// KeywordAnalysis reports which common ATS keywords the resume contains.
type KeywordAnalysis struct {
	Found   []string `json:"found"`
	Missing []string `json:"missing"` // First few missing keywords, lexicon order
	Score   int      `json:"score"`
}

// SkillsAnalysis reports matched technical and soft skills.
type SkillsAnalysis struct {
	Technical []string `json:"technical"`
	Soft      []string `json:"soft"`
	Score     int      `json:"score"`
}

// FormatAnalysis reports which structural sections were detected.
type FormatAnalysis struct {
	HasContact    bool `json:"hasContact"`
	HasSummary    bool `json:"hasSummary"`
	HasExperience bool `json:"hasExperience"`
	HasEducation  bool `json:"hasEducation"`
	Score         int  `json:"score"`
}

// SectionCount returns how many of the four structural checks passed.
func (f FormatAnalysis) SectionCount() int {
	n := 0
	for _, ok := range []bool{f.HasContact, f.HasSummary, f.HasExperience, f.HasEducation} {
		if ok {
			n++
		}
	}
	return n
}
