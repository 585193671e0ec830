package glossary

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// Parse
// ---------------------------------------------------------------------------

func TestParse_OrderPreserved(t *testing.T) {
	data := []byte(`en:
  барон: baron
  крепость: stronghold
  яблоко: apple
jp:
  крепость: 拠点
`)
	g, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	terms := g.Terms("en")
	if len(terms) != 3 {
		t.Fatalf("got %d terms, want 3", len(terms))
	}
	wantOrder := []string{"барон", "крепость", "яблоко"}
	for i, w := range wantOrder {
		if terms[i].Term != w {
			t.Errorf("terms[%d].Term = %q, want %q", i, terms[i].Term, w)
		}
	}
	if terms[0].Translation != "baron" {
		t.Errorf("translation = %q, want baron", terms[0].Translation)
	}
}

func TestParse_EmptyDocument(t *testing.T) {
	g, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(g.Languages()) != 0 {
		t.Errorf("languages = %v, want none", g.Languages())
	}
}

func TestParse_NonMappingRoot(t *testing.T) {
	if _, err := Parse([]byte("- a\n- b\n")); err == nil {
		t.Error("want error for sequence root")
	}
}

// ---------------------------------------------------------------------------
// Load
// ---------------------------------------------------------------------------

func TestLoad_MissingFile(t *testing.T) {
	g, err := Load(filepath.Join(t.TempDir(), "no-such.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if g.Text("en") != "" {
		t.Error("missing file must yield an empty glossary")
	}
}

func TestLoad_EmptyPath(t *testing.T) {
	g, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(g.Languages()) != 0 {
		t.Error("empty path must yield an empty glossary")
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "glossary.yaml")
	if err := os.WriteFile(path, []byte("en:\n  меч: blade\n"), 0644); err != nil {
		t.Fatal(err)
	}

	g, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	terms := g.Terms("en")
	if len(terms) != 1 || terms[0].Translation != "blade" {
		t.Errorf("terms = %v", terms)
	}
}

// ---------------------------------------------------------------------------
// Text
// ---------------------------------------------------------------------------

func TestText_Format(t *testing.T) {
	g, err := Parse([]byte("en:\n  барон: baron\n  меч: blade\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	text := g.Text("en")
	lines := strings.Split(text, "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3:\n%s", len(lines), text)
	}
	if !strings.HasPrefix(lines[0], "Glossary") {
		t.Errorf("first line = %q, want Glossary header", lines[0])
	}
	if lines[1] != "барон -> baron" {
		t.Errorf("lines[1] = %q", lines[1])
	}
	if lines[2] != "меч -> blade" {
		t.Errorf("lines[2] = %q", lines[2])
	}
}

func TestText_UnknownLanguage(t *testing.T) {
	g, err := Parse([]byte("en:\n  меч: blade\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := g.Text("jp"); got != "" {
		t.Errorf("Text(jp) = %q, want empty", got)
	}
}
