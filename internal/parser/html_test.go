package parser

import (
	"strings"
	"testing"
)

func TestHTMLParser_Headings(t *testing.T) {
	input := `<html><head><title>Guide</title></head><body>
<nav>skip me</nav>
<h1>Install</h1>
<p>Download the archive.</p>
<h3>Linux</h3>
<ul><li>untar it</li><li>run it</li></ul>
<h2>Configure</h2>
<pre>key = value
other = 1</pre>
</body></html>`

	p := &HTMLParser{}
	tree, err := p.Parse(strings.NewReader(input), "guide.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if tree.Title != "Guide" {
		t.Errorf("expected title %q, got %q", "Guide", tree.Title)
	}
	if len(tree.Root.Children) != 1 {
		t.Fatalf("expected 1 top-level section, got %d", len(tree.Root.Children))
	}

	install := tree.Root.Children[0]
	if install.Heading != "Install" || len(install.Body) != 1 {
		t.Errorf("unexpected install section %+v", install)
	}
	if len(install.Children) != 2 {
		t.Fatalf("expected Linux and Configure under Install, got %d", len(install.Children))
	}

	linux := install.Children[0]
	if linux.Heading != "Linux" || linux.Depth != 2 {
		t.Errorf("expected Linux at depth 2, got %q at %d", linux.Heading, linux.Depth)
	}
	if len(linux.Body) != 2 || linux.Body[1] != "run it" {
		t.Errorf("unexpected list body %v", linux.Body)
	}

	cfg := install.Children[1]
	if len(cfg.Body) != 2 || cfg.Body[0] != "key = value" {
		t.Errorf("expected pre lines split, got %v", cfg.Body)
	}
}
