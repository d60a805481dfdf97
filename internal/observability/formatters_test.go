package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jonathan/resume-scorer/internal/ingestion"
	"github.com/jonathan/resume-scorer/internal/scoring"
	"github.com/stretchr/testify/assert"
)

func TestPrintAnalysis(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	result := scoring.Analyze("jane@example.com Summary Experience python react leadership")
	p.PrintAnalysis("resume.txt", &result)
	output := buf.String()

	assert.Contains(t, output, "RESUME SCORE")
	assert.Contains(t, output, "resume.txt")
	assert.Contains(t, output, "BREAKDOWN")
	assert.Contains(t, output, "KEYWORDS & SKILLS")
	assert.Contains(t, output, "python, react")
	assert.Contains(t, output, "✓ Contact information")
	assert.Contains(t, output, "✗ Education")
	assert.Contains(t, output, "RECOMMENDATIONS")
	assert.Contains(t, output, "1. Add more detail")
}

func TestPrintAnalysis_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintAnalysis("x", nil)

	assert.Empty(t, buf.String())
}

func TestPrintAnalysis_NoRecommendations(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	result := scoring.Analyze("")
	result.Recommendations = []string{}
	p.PrintAnalysis("", &result)

	assert.NotContains(t, buf.String(), "RECOMMENDATIONS")
	assert.NotContains(t, buf.String(), "Source:")
	assert.Contains(t, buf.String(), "(none)")
}

func TestPrintBox_LineWidth(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TITLE", strings.Repeat("é", 100))

	for _, line := range strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n") {
		assert.Equal(t, boxWidth, len([]rune(line)), "line %q", line)
	}
	assert.Contains(t, buf.String(), "...")
}

func TestPrintBox_WrapsLongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	msg := "Add more relevant keywords from the job description to improve ATS matching"
	p.printBox("TITLE", msg)

	out := buf.String()
	assert.NotContains(t, out, "...")
	assert.Contains(t, out, "ATS matching")
	for _, line := range strings.Split(strings.TrimSuffix(out, "\n"), "\n") {
		assert.Equal(t, boxWidth, len([]rune(line)), "line %q", line)
	}
}

func TestWrap(t *testing.T) {
	assert.Equal(t, []string{"short"}, wrap("short", 10))
	assert.Equal(t, []string{"one two", "three"}, wrap("one two three", 8))
	assert.Equal(t, []string{"abcdefghijkl"}, wrap("abcdefghijkl", 5))
}

func TestScoreBar(t *testing.T) {
	assert.Equal(t, "["+strings.Repeat("░", barWidth)+"]", scoreBar(0))
	assert.Equal(t, "["+strings.Repeat("█", barWidth)+"]", scoreBar(100))
	assert.Equal(t, "["+strings.Repeat("█", 10)+strings.Repeat("░", 10)+"]", scoreBar(50))
}

func TestPrintMetadata(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintMetadata(ingestion.NewMetadata("text", "stdin"))
	assert.Contains(t, buf.String(), "DOCUMENT")
	assert.Contains(t, buf.String(), "stdin")

	buf.Reset()
	p.PrintMetadata(nil)
	assert.Empty(t, buf.String())
}
