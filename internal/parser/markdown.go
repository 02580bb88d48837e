package parser

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/dgallion1/mdsearch/internal/outline"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser handles Markdown files using goldmark.
//
// goldmark decides which lines are headings, so '#' lines inside code
// blocks and '#tag' words stay body text. The outline itself is then built
// from a plain line scan so every non-heading source line is kept.
type MarkdownParser struct{}

type frontMatter struct {
	Title string `yaml:"title" toml:"title"`
}

// atxMarker matches the opening of an ATX heading line.
var atxMarker = regexp.MustCompile(`^ {0,3}#{1,6}([ \t]|$)`)

// headingLine describes a source line that belongs to a heading.
type headingLine struct {
	level int
	text  string
	skip  bool // continuation or setext underline, consumed by the heading
}

func (p *MarkdownParser) Parse(r io.Reader, filename string) (*outline.Tree, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filename, err)
	}

	var meta frontMatter
	src, err := frontmatter.Parse(bytes.NewReader(raw), &meta)
	if err != nil {
		// Malformed front matter is content, not an I/O failure.
		src = raw
		meta = frontMatter{}
	}

	title := titleFromFilename(filename)
	if meta.Title != "" {
		title = meta.Title
	}

	lines := strings.Split(string(src), "\n")
	headings := locateHeadings(src, lineStarts(lines))

	b := outline.NewBuilder()
	for i, line := range lines {
		if h, ok := headings[i]; ok {
			if !h.skip {
				b.Heading(h.level, h.text)
			}
			continue
		}
		line = strings.TrimSpace(line)
		if line != "" {
			b.Line(line)
		}
	}

	return b.Tree(title), nil
}

// locateHeadings walks the top-level goldmark blocks and maps every line
// that is part of a heading to its level and text.
func locateHeadings(src []byte, starts []int) map[int]headingLine {
	doc := goldmark.New().Parser().Parse(text.NewReader(src))
	out := make(map[int]headingLine)

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		heading, ok := n.(*ast.Heading)
		if !ok {
			continue
		}
		segs := heading.Lines()
		if segs.Len() == 0 {
			// Empty headings have no source segment; their line stays body text.
			continue
		}

		var parts []string
		for i := 0; i < segs.Len(); i++ {
			seg := segs.At(i)
			if t := strings.TrimSpace(string(seg.Value(src))); t != "" {
				parts = append(parts, t)
			}
		}

		first := lineOf(starts, segs.At(0).Start)
		last := lineOf(starts, segs.At(segs.Len()-1).Start)
		out[first] = headingLine{level: heading.Level, text: strings.Join(parts, " ")}
		for l := first + 1; l <= last; l++ {
			out[l] = headingLine{skip: true}
		}
		if isSetext(src, starts, first) {
			out[last+1] = headingLine{skip: true}
		}
	}
	return out
}

// isSetext reports whether the heading starting at line does not open with
// an ATX marker, meaning it is underlined on the line after its text. "#foo"
// is not a marker, so "#foo\n===" is a Setext heading.
func isSetext(src []byte, starts []int, line int) bool {
	end := len(src)
	if line+1 < len(starts) {
		end = starts[line+1]
	}
	return !atxMarker.Match(bytes.TrimRight(src[starts[line]:end], "\r\n"))
}

func lineStarts(lines []string) []int {
	starts := make([]int, len(lines))
	off := 0
	for i, l := range lines {
		starts[i] = off
		off += len(l) + 1
	}
	return starts
}

func lineOf(starts []int, offset int) int {
	return sort.Search(len(starts), func(i int) bool { return starts[i] > offset }) - 1
}
