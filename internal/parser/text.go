package parser

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/mdsearch/internal/outline"
)

// TextParser handles plain text files. There are no headings, so every
// non-blank line lands in the root body.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) (*outline.Tree, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	b := outline.NewBuilder()
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			b.Line(line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", filename, err)
	}

	return b.Tree(titleFromFilename(filename)), nil
}
