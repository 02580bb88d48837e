package query

import (
	"fmt"
	"regexp"
)

// Span is a half-open byte range [Start, End) within a record's text.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Pattern is a compiled search term. Literal and regex terms both compile
// to a Pattern, so evaluation never needs to know which kind it was.
type Pattern struct {
	Term string
	re   *regexp.Regexp
}

// Regex compiles term as a regular expression.
func Regex(term string, caseSensitive bool) (*Pattern, error) {
	expr := term
	if !caseSensitive {
		expr = "(?i)" + expr
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidPattern, term, err)
	}
	return &Pattern{Term: term, re: re}, nil
}

// Literal compiles term so that it only matches itself.
func Literal(term string, caseSensitive bool) (*Pattern, error) {
	p, err := Regex(regexp.QuoteMeta(term), caseSensitive)
	if err != nil {
		return nil, err
	}
	p.Term = term
	return p, nil
}

// FindAll returns every non-overlapping match of the pattern in text.
func (p *Pattern) FindAll(text string) []Span {
	locs := p.re.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return nil
	}
	spans := make([]Span, 0, len(locs))
	for _, loc := range locs {
		spans = append(spans, Span{Start: loc[0], End: loc[1]})
	}
	return spans
}

func (p *Pattern) String() string {
	return p.re.String()
}
