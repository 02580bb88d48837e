package parser

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/dgallion1/mdsearch/internal/outline"
)

// Parser converts raw document bytes into an outline tree.
type Parser interface {
	Parse(r io.Reader, filename string) (*outline.Tree, error)
}

// Options configures the parsers returned by ForFile.
type Options struct {
	// PDFFallbackPdftotext retries PDF extraction with pdftotext(1) when the
	// Go library fails.
	PDFFallbackPdftotext bool
}

// ForFile returns the appropriate parser for a filename. Extensions without
// a dedicated parser are treated as Markdown: discovery only hands us files
// the caller asked for, so they are assumed to use heading markers.
func ForFile(filename string, opts Options) Parser {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt":
		return &TextParser{}
	case ".html", ".htm":
		return &HTMLParser{}
	case ".pdf":
		return &PDFParser{FallbackPdftotext: opts.PDFFallbackPdftotext}
	case ".docx":
		return &DOCXParser{}
	default:
		return &MarkdownParser{}
	}
}

// titleFromFilename strips directories and the extension.
func titleFromFilename(filename string) string {
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// addLines splits text on newlines and appends the non-blank, trimmed lines
// to the builder's current section.
func addLines(b *outline.Builder, text string) {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			b.Line(line)
		}
	}
}
