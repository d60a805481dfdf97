package scoring

import (
	"errors"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-scorer/internal/lexicon"
	"github.com/jonathan/resume-scorer/internal/types"
)

// Engine scores documents against a fixed set of lexicons.
// It holds no mutable state and is safe for concurrent use.
type Engine struct {
	keywords  *lexicon.Lexicon
	technical *lexicon.Lexicon
	soft      *lexicon.Lexicon
}

var defaultEngine = NewEngine()

// NewEngine returns an Engine over the built-in lexicons.
func NewEngine() *Engine {
	return &Engine{
		keywords:  lexicon.CommonKeywords,
		technical: lexicon.TechnicalSkills,
		soft:      lexicon.SoftSkills,
	}
}

// NewEngineWithLexicons returns an Engine over caller-supplied lexicons.
func NewEngineWithLexicons(keywords, technical, soft *lexicon.Lexicon) (*Engine, error) {
	if keywords == nil || technical == nil || soft == nil {
		return nil, errors.New("all three lexicons are required")
	}
	return &Engine{keywords: keywords, technical: technical, soft: soft}, nil
}

// Lexicons returns the lexicons the engine scores against.
func (e *Engine) Lexicons() (keywords, technical, soft *lexicon.Lexicon) {
	return e.keywords, e.technical, e.soft
}

// Analyze scores text with the built-in lexicons.
func Analyze(text string) types.AnalysisResult {
	return defaultEngine.Analyze(text)
}

// Analyze runs the four sub-analyses in sequence and aggregates them.
func (e *Engine) Analyze(text string) types.AnalysisResult {
	lower := strings.ToLower(text)
	return aggregate(
		WordCount(text),
		AnalyzeKeywords(lower, e.keywords),
		AnalyzeSkills(lower, e.technical, e.soft),
		AnalyzeFormat(text),
	)
}

// AnalyzeParallel runs the four sub-analyses concurrently. The result is
// identical to Analyze.
func (e *Engine) AnalyzeParallel(text string) types.AnalysisResult {
	lower := strings.ToLower(text)

	var (
		g         errgroup.Group
		wordCount int
		keywords  types.KeywordAnalysis
		skills    types.SkillsAnalysis
		format    types.FormatAnalysis
	)
	g.Go(func() error {
		wordCount = WordCount(text)
		return nil
	})
	g.Go(func() error {
		keywords = AnalyzeKeywords(lower, e.keywords)
		return nil
	})
	g.Go(func() error {
		skills = AnalyzeSkills(lower, e.technical, e.soft)
		return nil
	})
	g.Go(func() error {
		format = AnalyzeFormat(text)
		return nil
	})
	_ = g.Wait() // sub-analyses never fail

	return aggregate(wordCount, keywords, skills, format)
}

func aggregate(wordCount int, keywords types.KeywordAnalysis, skills types.SkillsAnalysis, format types.FormatAnalysis) types.AnalysisResult {
	result := types.AnalysisResult{
		OverallScore:    WeightedScore(keywords.Score, skills.Score, format.Score),
		WordCount:       wordCount,
		KeywordAnalysis: keywords,
		SkillsAnalysis:  skills,
		FormatAnalysis:  format,
	}
	result.Recommendations = Recommend(&result)
	return result
}
