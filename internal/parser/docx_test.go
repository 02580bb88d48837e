package parser

import (
	"bytes"
	"testing"

	"github.com/fumiama/go-docx"
)

func buildDocx(t *testing.T, paras [][2]string) *bytes.Buffer {
	t.Helper()
	doc := docx.New().WithDefaultTheme()
	for _, p := range paras {
		para := doc.AddParagraph()
		if p[0] != "" {
			para.Style(p[0])
		}
		para.AddText(p[1])
	}
	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		t.Fatalf("write docx: %v", err)
	}
	return &buf
}

func TestDOCXParser_HeadingStyles(t *testing.T) {
	buf := buildDocx(t, [][2]string{
		{"", "preamble"},
		{"Heading1", "Install"},
		{"", "run the installer"},
		{"heading 2", "Linux"},
		{"", "use the package"},
		{"Title", "not a heading"},
		{"Heading1", "Usage"},
	})

	p := &DOCXParser{}
	tree, err := p.Parse(buf, "guide.docx")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if tree.Title != "guide" {
		t.Errorf("expected title %q, got %q", "guide", tree.Title)
	}
	if len(tree.Root.Body) != 1 || tree.Root.Body[0] != "preamble" {
		t.Errorf("expected root body [preamble], got %v", tree.Root.Body)
	}
	if len(tree.Root.Children) != 2 {
		t.Fatalf("expected 2 top-level sections, got %d", len(tree.Root.Children))
	}

	install := tree.Root.Children[0]
	if install.Heading != "Install" || len(install.Body) != 1 || install.Body[0] != "run the installer" {
		t.Errorf("unexpected Install section: %+v", install)
	}
	if len(install.Children) != 1 {
		t.Fatalf("expected Linux under Install, got %d children", len(install.Children))
	}
	linux := install.Children[0]
	if linux.Heading != "Linux" || linux.Level != 2 {
		t.Errorf("expected normalized level 2 heading Linux, got level %d %q", linux.Level, linux.Heading)
	}
	if len(linux.Body) != 2 || linux.Body[1] != "not a heading" {
		t.Errorf("expected Title style paragraph kept as body, got %v", linux.Body)
	}
	if tree.Root.Children[1].Heading != "Usage" {
		t.Errorf("expected Usage, got %q", tree.Root.Children[1].Heading)
	}
}

func TestDOCXParser_InvalidInput(t *testing.T) {
	p := &DOCXParser{}
	if _, err := p.Parse(bytes.NewReader([]byte("not a zip")), "broken.docx"); err == nil {
		t.Fatal("expected error for invalid docx")
	}
}
