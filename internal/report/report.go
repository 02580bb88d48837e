package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/mdsearch/internal/query"
	"github.com/fatih/color"
)

const indentUnit = "  "

// Options controls rendering. Color is explicit so output does not depend
// on the terminal the tests run in.
type Options struct {
	Color bool
}

// Reporter renders matches as blocks of heading lineage followed by the
// record text with matched spans highlighted.
type Reporter struct {
	w       io.Writer
	path    *color.Color
	heading *color.Color
	match   *color.Color
}

func New(w io.Writer, opts Options) *Reporter {
	r := &Reporter{
		w:       w,
		path:    color.New(color.FgGreen),
		heading: color.New(color.FgCyan, color.Bold),
		match:   color.New(color.FgRed, color.Bold),
	}
	for _, c := range []*color.Color{r.path, r.heading, r.match} {
		if opts.Color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return r
}

// File writes the path header followed by every match. Nothing is written
// when matches is empty.
func (r *Reporter) File(path string, matches []query.Match) error {
	if len(matches) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(r.w, r.path.Sprint(path)); err != nil {
		return err
	}
	for _, m := range matches {
		if err := r.Match(m); err != nil {
			return err
		}
	}
	return nil
}

// Match writes a single block: one line per lineage heading, indented by
// depth, then the text one level deeper, then a blank line.
func (r *Reporter) Match(m query.Match) error {
	var b strings.Builder
	for i, h := range m.Record.Lineage {
		b.WriteString(strings.Repeat(indentUnit, i))
		b.WriteString(r.heading.Sprint(h))
		b.WriteByte('\n')
	}

	indent := strings.Repeat(indentUnit, len(m.Record.Lineage))
	text := Highlight(m.Record.Text, m.Merged(), r.match.SprintFunc())
	for _, line := range strings.Split(text, "\n") {
		b.WriteString(indent)
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteByte('\n')

	_, err := io.WriteString(r.w, b.String())
	return err
}

// Highlight wraps each span of text with paint. Spans must be sorted and
// non-overlapping, as returned by query.Match.Merged.
func Highlight(text string, spans []query.Span, paint func(a ...interface{}) string) string {
	if len(spans) == 0 {
		return text
	}
	var b strings.Builder
	pos := 0
	for _, s := range spans {
		if s.Start < pos || s.End > len(text) {
			continue
		}
		b.WriteString(text[pos:s.Start])
		// Paint per line so a span crossing a newline does not bleed
		// styling into the indentation of the next line.
		parts := strings.Split(text[s.Start:s.End], "\n")
		for i, part := range parts {
			if i > 0 {
				b.WriteByte('\n')
			}
			if part != "" {
				b.WriteString(paint(part))
			}
		}
		pos = s.End
	}
	b.WriteString(text[pos:])
	return b.String()
}
