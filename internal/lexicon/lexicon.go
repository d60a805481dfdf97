// Package lexicon holds the fixed term lists the scoring rubric matches against.
package lexicon

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmpty is returned when a lexicon is built with no terms.
var ErrEmpty = errors.New("lexicon has no terms")

// InvalidTermError reports a term that breaks the lexicon invariants.
type InvalidTermError struct {
	Lexicon string
	Index   int
	Term    string
	Reason  string
}

func (e *InvalidTermError) Error() string {
	return fmt.Sprintf("lexicon %s: term %d (%q) %s", e.Lexicon, e.Index, e.Term, e.Reason)
}

// Lexicon is an ordered, duplicate-free list of lowercase phrases.
// It is never mutated after construction and is safe for concurrent use.
type Lexicon struct {
	name  string
	terms []string
}

// New validates terms and returns a Lexicon that preserves their order.
// Terms must be non-empty, lowercase, free of surrounding whitespace and unique.
func New(name string, terms []string) (*Lexicon, error) {
	if len(terms) == 0 {
		return nil, fmt.Errorf("lexicon %s: %w", name, ErrEmpty)
	}

	seen := make(map[string]struct{}, len(terms))
	for i, term := range terms {
		switch {
		case term == "":
			return nil, &InvalidTermError{Lexicon: name, Index: i, Term: term, Reason: "is empty"}
		case strings.TrimSpace(term) != term:
			return nil, &InvalidTermError{Lexicon: name, Index: i, Term: term, Reason: "has surrounding whitespace"}
		case strings.ToLower(term) != term:
			return nil, &InvalidTermError{Lexicon: name, Index: i, Term: term, Reason: "is not lowercase"}
		}
		if _, dup := seen[term]; dup {
			return nil, &InvalidTermError{Lexicon: name, Index: i, Term: term, Reason: "is a duplicate"}
		}
		seen[term] = struct{}{}
	}

	owned := make([]string, len(terms))
	copy(owned, terms)
	return &Lexicon{name: name, terms: owned}, nil
}

// MustNew is like New but panics on invalid input. Intended for package-level lists.
func MustNew(name string, terms []string) *Lexicon {
	lex, err := New(name, terms)
	if err != nil {
		panic(err)
	}
	return lex
}

// Name returns the lexicon's identifier.
func (l *Lexicon) Name() string { return l.name }

// Len returns the number of terms.
func (l *Lexicon) Len() int { return len(l.terms) }

// Terms returns a copy of the terms in lexicon order.
func (l *Lexicon) Terms() []string {
	out := make([]string, len(l.terms))
	copy(out, l.terms)
	return out
}

// Match partitions the terms by substring containment in lower, which the
// caller must already have lowercased. A term matches anywhere in the text,
// including inside longer words. Both slices keep lexicon order and are non-nil.
func (l *Lexicon) Match(lower string) (found, missing []string) {
	found = make([]string, 0, len(l.terms))
	missing = make([]string, 0, len(l.terms))
	for _, term := range l.terms {
		if strings.Contains(lower, term) {
			found = append(found, term)
		} else {
			missing = append(missing, term)
		}
	}
	return found, missing
}
