package flatten

import (
	"strings"

	"github.com/dgallion1/mdsearch/internal/outline"
)

// EscapedNewline joins lines when ReplaceNewlines is set. It is the literal
// two-character sequence backslash-n, so a pattern like `a.*b` can run
// across what used to be separate lines.
const EscapedNewline = `\n`

// Options controls flattening behavior.
type Options struct {
	// ReplaceNewlines joins lines with EscapedNewline instead of "\n".
	ReplaceNewlines bool
}

// Separator returns the string placed between joined lines.
func (o Options) Separator() string {
	if o.ReplaceNewlines {
		return EscapedNewline
	}
	return "\n"
}

// Record is the searchable form of one outline node: the node's heading,
// its body and every descendant heading and body line, joined into Text.
type Record struct {
	Lineage []string // Ancestor headings, root first, node itself excluded
	Heading string   // The node's own heading (empty for the document root)
	Depth   int      // Depth of the source node
	Text    string
}

// Tree walks an outline and produces one record per node in pre-order, so a
// parent's record always precedes its children's.
//
// The document root only gets a record when it has body lines of its own;
// otherwise it would duplicate the concatenation of its top-level sections.
func Tree(tree *outline.Tree, opts Options) []Record {
	var records []Record
	sep := opts.Separator()

	root := &tree.Root
	if len(root.Body) > 0 || root.Heading != "" {
		walkNode(root, nil, sep, &records)
		return records
	}
	for i := range root.Children {
		walkNode(&root.Children[i], nil, sep, &records)
	}
	return records
}

// walkNode appends the record for node and its descendants, returning the
// node's lines so the caller can fold them into its own text.
func walkNode(node *outline.Node, lineage []string, sep string, records *[]Record) []string {
	idx := len(*records)
	*records = append(*records, Record{
		Lineage: copyLineage(lineage),
		Heading: node.Heading,
		Depth:   node.Depth,
	})

	var lines []string
	if node.Heading != "" {
		lines = append(lines, node.Heading)
	}
	lines = append(lines, node.Body...)

	childLineage := lineage
	if node.Heading != "" {
		childLineage = append(copyLineage(lineage), node.Heading)
	}
	for i := range node.Children {
		lines = append(lines, walkNode(&node.Children[i], childLineage, sep, records)...)
	}

	(*records)[idx].Text = strings.Join(lines, sep)
	return lines
}

func copyLineage(lineage []string) []string {
	if len(lineage) == 0 {
		return nil
	}
	out := make([]string, len(lineage))
	copy(out, lineage)
	return out
}
