package query

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/dgallion1/mdsearch/internal/flatten"
)

var (
	// ErrEmptyTerm is returned when splitting the keywords leaves an empty term.
	ErrEmptyTerm = errors.New("empty search term")
	// ErrInvalidPattern is returned when a term is not a valid regular expression.
	ErrInvalidPattern = errors.New("invalid search pattern")
)

// Options controls how a keyword argument becomes a Query.
type Options struct {
	// Delimiter separates terms in the keyword argument. Empty splits on
	// runs of whitespace.
	Delimiter     string
	CaseSensitive bool
	// FixedStrings matches terms literally instead of as regular expressions.
	FixedStrings bool
}

// Query is a set of terms that must all match (logical AND).
type Query struct {
	Terms         []*Pattern
	CaseSensitive bool
}

// Match is a record that satisfied a query. Spans[i] holds every match of
// Terms[i] in Record.Text.
type Match struct {
	Record flatten.Record
	Spans  [][]Span
}

// SplitTerms splits a combined keyword argument into terms. A term is never
// split internally, so with delimiter "," the argument "pingback is,main"
// yields the phrase "pingback is" and "main".
func SplitTerms(keywords, delimiter string) ([]string, error) {
	var terms []string
	if delimiter == "" {
		terms = strings.Fields(keywords)
	} else {
		terms = strings.Split(keywords, delimiter)
	}

	if len(terms) == 0 {
		return nil, ErrEmptyTerm
	}
	for i, term := range terms {
		if term == "" {
			return nil, fmt.Errorf("%w at position %d", ErrEmptyTerm, i+1)
		}
	}
	return terms, nil
}

// Parse builds a Query from a keyword argument.
func Parse(keywords string, opts Options) (*Query, error) {
	terms, err := SplitTerms(keywords, opts.Delimiter)
	if err != nil {
		return nil, err
	}

	compile := Regex
	if opts.FixedStrings {
		compile = Literal
	}

	q := &Query{CaseSensitive: opts.CaseSensitive}
	for _, term := range terms {
		p, err := compile(term, opts.CaseSensitive)
		if err != nil {
			return nil, err
		}
		q.Terms = append(q.Terms, p)
	}
	return q, nil
}

// Match tests a single record. Every term must match somewhere in the
// record's text; there is no proximity or ordering constraint.
func (q *Query) Match(rec flatten.Record) (Match, bool) {
	spans := make([][]Span, len(q.Terms))
	for i, term := range q.Terms {
		found := term.FindAll(rec.Text)
		if len(found) == 0 {
			return Match{}, false
		}
		spans[i] = found
	}
	return Match{Record: rec, Spans: spans}, true
}

// Evaluate returns the matching records in input order.
func (q *Query) Evaluate(records []flatten.Record) []Match {
	var matches []Match
	for _, rec := range records {
		if m, ok := q.Match(rec); ok {
			matches = append(matches, m)
		}
	}
	return matches
}

// Merged returns the union of all term spans, sorted and with overlapping
// or adjacent spans combined.
func (m Match) Merged() []Span {
	var all []Span
	for _, spans := range m.Spans {
		for _, s := range spans {
			if s.End > s.Start {
				all = append(all, s)
			}
		}
	}
	if len(all) == 0 {
		return nil
	}

	sort.Slice(all, func(i, j int) bool {
		if all[i].Start != all[j].Start {
			return all[i].Start < all[j].Start
		}
		return all[i].End < all[j].End
	})

	merged := []Span{all[0]}
	for _, s := range all[1:] {
		last := &merged[len(merged)-1]
		if s.Start <= last.End {
			if s.End > last.End {
				last.End = s.End
			}
			continue
		}
		merged = append(merged, s)
	}
	return merged
}
