package scoring

import "strings"

// Word count thresholds for a one-page resume.
const (
	MinWords     = 200
	OptimalWords = 400
	MaxWords     = 600
)

// WordCount returns the number of whitespace-separated tokens in text.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// LengthVerdict classifies a word count.
type LengthVerdict string

const (
	LengthTooShort LengthVerdict = "too_short"
	LengthOptimal  LengthVerdict = "optimal"
	LengthLong     LengthVerdict = "long"
	LengthTooLong  LengthVerdict = "too_long"
)

// Length returns the verdict for wordCount.
func Length(wordCount int) LengthVerdict {
	switch {
	case wordCount < MinWords:
		return LengthTooShort
	case wordCount <= OptimalWords:
		return LengthOptimal
	case wordCount <= MaxWords:
		return LengthLong
	default:
		return LengthTooLong
	}
}

// Message returns a short reader-facing note for the verdict.
func (v LengthVerdict) Message() string {
	switch v {
	case LengthTooShort:
		return "Consider adding more detail to reach 200-400 words"
	case LengthOptimal:
		return "Perfect length for a one-page resume"
	case LengthLong:
		return "Good length, but consider condensing for impact"
	case LengthTooLong:
		return "Too long - aim for 200-400 words"
	default:
		return ""
	}
}
