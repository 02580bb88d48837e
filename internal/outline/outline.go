package outline

// Tree is the root of a parsed document.
type Tree struct {
	Title string // Document title (from front matter or filename)
	Root  Node   // Depth 0, no heading
}

// Node is a heading section in the document outline. The root node has
// depth 0 and no heading; every child is exactly one deeper than its parent.
type Node struct {
	Depth    int      // Nesting depth in the tree
	Level    int      // Heading marker level in the source (0 for root)
	Heading  string   // Heading text (empty for root)
	Body     []string // The node's own non-heading lines
	Children []Node   // Subsections, owned by value
}

// Builder assembles a Tree from a forward scan of headings and lines.
//
// Headings are tracked on a stack of open nodes. A heading of level N closes
// every open node of level >= N and becomes a child of whatever remains on
// top, so level jumps (### directly under #) clamp to the nearest open
// ancestor instead of failing.
type Builder struct {
	root  Node
	stack []*Node
}

func NewBuilder() *Builder {
	b := &Builder{}
	b.stack = []*Node{&b.root}
	return b
}

// Heading opens a new section at the given marker level.
func (b *Builder) Heading(level int, text string) {
	if level < 1 {
		level = 1
	}
	for len(b.stack) > 1 && b.stack[len(b.stack)-1].Level >= level {
		b.stack = b.stack[:len(b.stack)-1]
	}
	parent := b.stack[len(b.stack)-1]
	parent.Children = append(parent.Children, Node{
		Depth:   parent.Depth + 1,
		Level:   level,
		Heading: text,
	})
	// Pointers into parent.Children stay valid: the slice only grows again
	// once this child has been popped.
	b.stack = append(b.stack, &parent.Children[len(parent.Children)-1])
}

// Line appends a body line to the deepest open section.
func (b *Builder) Line(text string) {
	top := b.stack[len(b.stack)-1]
	top.Body = append(top.Body, text)
}

// Tree returns the assembled tree. The builder must not be used afterwards.
func (b *Builder) Tree(title string) *Tree {
	return &Tree{Title: title, Root: b.root}
}
