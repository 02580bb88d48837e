package query

import (
	"errors"
	"testing"

	"github.com/dgallion1/mdsearch/internal/flatten"
)

func TestSplitTerms(t *testing.T) {
	tests := []struct {
		name      string
		keywords  string
		delimiter string
		want      []string
	}{
		{"whitespace default", "hello  main\tworld", "", []string{"hello", "main", "world"}},
		{"phrase delimiter", "hello,main,world,pingback is", ",", []string{"hello", "main", "world", "pingback is"}},
		{"explicit space", "a b", " ", []string{"a", "b"}},
		{"multi-char delimiter", "x::y z", "::", []string{"x", "y z"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SplitTerms(tt.keywords, tt.delimiter)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("term[%d]: expected %q, got %q", i, tt.want[i], got[i])
				}
			}
		})
	}
}

func TestSplitTerms_EmptyTerm(t *testing.T) {
	tests := []struct {
		keywords  string
		delimiter string
	}{
		{"", ""},
		{"   ", ""},
		{"a,,b", ","},
		{"a,", ","},
		{"", ","},
	}
	for _, tt := range tests {
		_, err := SplitTerms(tt.keywords, tt.delimiter)
		if !errors.Is(err, ErrEmptyTerm) {
			t.Errorf("SplitTerms(%q, %q): expected ErrEmptyTerm, got %v", tt.keywords, tt.delimiter, err)
		}
	}
}

func TestParse_InvalidPattern(t *testing.T) {
	_, err := Parse("ok (unclosed", Options{})
	if !errors.Is(err, ErrInvalidPattern) {
		t.Fatalf("expected ErrInvalidPattern, got %v", err)
	}

	// The same term is fine when matched literally.
	q, err := Parse("(unclosed", Options{FixedStrings: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := q.Match(flatten.Record{Text: "an (unclosed paren"}); !ok {
		t.Error("expected literal term to match")
	}
}

func TestQuery_CaseSensitivity(t *testing.T) {
	rec := flatten.Record{Text: "hello world"}

	q, err := Parse("Hello", Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := q.Match(rec); !ok {
		t.Error("expected case-insensitive match by default")
	}

	q, err = Parse("Hello", Options{CaseSensitive: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := q.Match(rec); ok {
		t.Error("expected no match when case-sensitive")
	}
}

func TestQuery_AllTermsRequired(t *testing.T) {
	both := flatten.Record{Heading: "both", Text: "alpha and then beta"}
	only := flatten.Record{Heading: "only", Text: "alpha alone"}

	q, err := Parse("alpha beta", Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	matches := q.Evaluate([]flatten.Record{both, only})
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}
	if matches[0].Record.Heading != "both" {
		t.Errorf("expected the record with both terms, got %q", matches[0].Record.Heading)
	}
}

func TestQuery_TermOrderIrrelevant(t *testing.T) {
	rec := flatten.Record{Text: "delta gamma beta alpha"}
	q, err := Parse("alpha,beta,gamma,delta", Options{Delimiter: ","})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := q.Match(rec); !ok {
		t.Error("expected match regardless of term positions")
	}
}

func TestQuery_Spans(t *testing.T) {
	rec := flatten.Record{Text: "go to go, Go!"}
	q, err := Parse("go to", Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m, ok := q.Match(rec)
	if !ok {
		t.Fatal("expected match")
	}

	want := []Span{{0, 2}, {6, 8}, {10, 12}}
	if len(m.Spans[0]) != len(want) {
		t.Fatalf("expected spans %v, got %v", want, m.Spans[0])
	}
	for i := range want {
		if m.Spans[0][i] != want[i] {
			t.Errorf("span[%d]: expected %v, got %v", i, want[i], m.Spans[0][i])
		}
	}
	if len(m.Spans[1]) != 1 || m.Spans[1][0] != (Span{3, 5}) {
		t.Errorf("unexpected spans for second term: %v", m.Spans[1])
	}
}

func TestQuery_NewlineFlattening(t *testing.T) {
	q, err := Parse(`hello.*world`, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lineLocal := flatten.Record{Text: "hello\nworld"}
	if _, ok := q.Match(lineLocal); ok {
		t.Error("expected no match across a real newline")
	}

	escaped := flatten.Record{Text: `hello\nworld`}
	if _, ok := q.Match(escaped); !ok {
		t.Error("expected match across an escaped newline")
	}
}

func TestQuery_EvaluatePreservesOrder(t *testing.T) {
	records := []flatten.Record{
		{Heading: "1", Text: "x"},
		{Heading: "2", Text: "nothing"},
		{Heading: "3", Text: "x x"},
		{Heading: "4", Text: "x"},
	}
	q, err := Parse("x", Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	matches := q.Evaluate(records)
	want := []string{"1", "3", "4"}
	if len(matches) != len(want) {
		t.Fatalf("expected %d matches, got %d", len(want), len(matches))
	}
	for i := range want {
		if matches[i].Record.Heading != want[i] {
			t.Errorf("match[%d]: expected %q, got %q", i, want[i], matches[i].Record.Heading)
		}
	}
}

func TestMatch_Merged(t *testing.T) {
	m := Match{Spans: [][]Span{
		{{10, 14}, {0, 3}},
		{{2, 5}, {20, 22}},
		{{12, 13}, {7, 7}},
	}}

	want := []Span{{0, 5}, {10, 14}, {20, 22}}
	got := m.Merged()
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("merged[%d]: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestLiteral_EscapesMetacharacters(t *testing.T) {
	p, err := Literal("a.b", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Term != "a.b" {
		t.Errorf("expected original term kept, got %q", p.Term)
	}
	if spans := p.FindAll("axb"); spans != nil {
		t.Errorf("expected literal dot not to match any char, got %v", spans)
	}
	if spans := p.FindAll("a.b"); len(spans) != 1 {
		t.Errorf("expected one literal match, got %v", spans)
	}
}

func TestPattern_StringShowsCompiledExpression(t *testing.T) {
	lit, err := Literal("a.b", false)
	if err != nil {
		t.Fatal(err)
	}
	if got := lit.String(); got != `(?i)a\.b` {
		t.Errorf("expected %q, got %q", `(?i)a\.b`, got)
	}

	re, err := Regex("a.b", true)
	if err != nil {
		t.Fatal(err)
	}
	if got := re.String(); got != "a.b" {
		t.Errorf("expected %q, got %q", "a.b", got)
	}
}
