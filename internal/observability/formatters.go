// Package observability provides formatted output utilities for the CLI text report.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-scorer/internal/ingestion"
	"github.com/jonathan/resume-scorer/internal/scoring"
	"github.com/jonathan/resume-scorer/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// barWidth is the width of score progress bars
	barWidth = 20
)

// Printer handles formatted report output
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		for _, wrapped := range wrap(line, boxWidth-4) {
			fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(wrapped, boxWidth-4))
		}
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// wrap breaks s at spaces into lines of at most width runes. Words longer
// than width are left for truncate.
func wrap(s string, width int) []string {
	if utf8.RuneCountInString(s) <= width {
		return []string{s}
	}
	var lines []string
	var current string
	for _, word := range strings.Fields(s) {
		switch {
		case current == "":
			current = word
		case utf8.RuneCountInString(current)+1+utf8.RuneCountInString(word) <= width:
			current += " " + word
		default:
			lines = append(lines, current)
			current = word
		}
	}
	return append(lines, current)
}

// truncate shortens s to at most width runes, marking the cut with "...".
func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	runes := []rune(s)
	return string(runes[:width-3]) + "..."
}

// scoreBar renders a score as a fixed-width progress bar.
func scoreBar(score int) string {
	filled := score * barWidth / 100
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled) + "]"
}

func scoreLine(label string, score int) string {
	return fmt.Sprintf("%-10s %s %3d%%  %s", label, scoreBar(score), score, scoring.Band(score))
}

func check(ok bool) string {
	if ok {
		return "✓"
	}
	return "✗"
}

// listOrNone joins items, or returns "(none)" for an empty list.
func listOrNone(items []string) string {
	if len(items) == 0 {
		return "(none)"
	}
	return strings.Join(items, ", ")
}

// PrintAnalysis outputs the full text report for one resume.
func (p *Printer) PrintAnalysis(source string, result *types.AnalysisResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	if source != "" {
		sb.WriteString(fmt.Sprintf("Source:   %s\n", source))
	}
	sb.WriteString(fmt.Sprintf("Score:    %d / 100 (%s)\n", result.OverallScore, scoring.Band(result.OverallScore)))
	sb.WriteString(fmt.Sprintf("Words:    %d\n", result.WordCount))
	sb.WriteString(scoring.Length(result.WordCount).Message())
	p.printBox("RESUME SCORE", sb.String())

	sb.Reset()
	sb.WriteString(scoreLine("Keywords", result.KeywordAnalysis.Score) + "\n")
	sb.WriteString(scoreLine("Skills", result.SkillsAnalysis.Score) + "\n")
	sb.WriteString(scoreLine("Format", result.FormatAnalysis.Score))
	p.printBox("BREAKDOWN", sb.String())

	sb.Reset()
	sb.WriteString(fmt.Sprintf("Found:     %s\n", listOrNone(result.KeywordAnalysis.Found)))
	sb.WriteString(fmt.Sprintf("Missing:   %s\n", listOrNone(result.KeywordAnalysis.Missing)))
	sb.WriteString(fmt.Sprintf("Technical: %s\n", listOrNone(result.SkillsAnalysis.Technical)))
	sb.WriteString(fmt.Sprintf("Soft:      %s", listOrNone(result.SkillsAnalysis.Soft)))
	p.printBox("KEYWORDS & SKILLS", sb.String())

	f := result.FormatAnalysis
	sb.Reset()
	sb.WriteString(fmt.Sprintf("%s Contact information\n", check(f.HasContact)))
	sb.WriteString(fmt.Sprintf("%s Professional summary\n", check(f.HasSummary)))
	sb.WriteString(fmt.Sprintf("%s Work experience\n", check(f.HasExperience)))
	sb.WriteString(fmt.Sprintf("%s Education", check(f.HasEducation)))
	p.printBox("FORMAT", sb.String())

	if len(result.Recommendations) > 0 {
		sb.Reset()
		for i, rec := range result.Recommendations {
			sb.WriteString(fmt.Sprintf("%d. %s", i+1, rec))
			if i < len(result.Recommendations)-1 {
				sb.WriteString("\n")
			}
		}
		p.printBox("RECOMMENDATIONS", sb.String())
	}
}

// PrintMetadata outputs ingestion details for a document.
func (p *Printer) PrintMetadata(m *ingestion.Metadata) {
	if m == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Source:  %s\n", m.Source))
	sb.WriteString(fmt.Sprintf("Bytes:   %d\n", m.Bytes))
	sb.WriteString(fmt.Sprintf("SHA256:  %s\n", m.Hash))
	sb.WriteString(fmt.Sprintf("Read at: %s", m.Timestamp))
	p.printBox("DOCUMENT", sb.String())
}
