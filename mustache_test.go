package mustache

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCompileAndRenderString(t *testing.T) {
	tmpl, err := CompileString("Hello, {{name}}!")
	if err != nil {
		t.Fatalf("CompileString: %v", err)
	}
	out, err := tmpl.Render(Map(map[string]Value{"name": Str("World")}))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if out != "Hello, World!" {
		t.Fatalf("out = %q", out)
	}
}

func TestCompileFileAndRenderFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "greeting.mustache")
	if err := os.WriteFile(path, []byte("Hi {{name}}"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	out, err := RenderFile(path, Map(map[string]Value{"name": Str("Ada")}))
	if err != nil {
		t.Fatalf("RenderFile: %v", err)
	}
	if out != "Hi Ada" {
		t.Fatalf("out = %q", out)
	}
}

func TestFRenderWritesToWriter(t *testing.T) {
	tmpl, err := CompileString("n={{n}}")
	if err != nil {
		t.Fatalf("CompileString: %v", err)
	}
	var b strings.Builder
	if err := tmpl.FRender(&b, Map(map[string]Value{"n": Str("1")})); err != nil {
		t.Fatalf("FRender: %v", err)
	}
	if b.String() != "n=1" {
		t.Fatalf("out = %q", b.String())
	}
}

func TestRenderInLayout(t *testing.T) {
	out, err := RenderInLayout("inner {{x}}", "<<{{content}}>>", Map(map[string]Value{"x": Str("y")}))
	if err != nil {
		t.Fatalf("RenderInLayout: %v", err)
	}
	if out != "<<inner y>>" {
		t.Fatalf("out = %q", out)
	}
}

func TestCompileUnclosedTagError(t *testing.T) {
	_, err := CompileString("{{oops")
	if err == nil {
		t.Fatal("expected an error")
	}
	merr, ok := err.(*Error)
	if !ok || merr.Kind != UnclosedTag {
		t.Fatalf("err = %v, want UnclosedTag", err)
	}
}

func TestCompileEmptyTagError(t *testing.T) {
	_, err := CompileString("{{ }}")
	if err == nil {
		t.Fatal("expected an error")
	}
	merr, ok := err.(*Error)
	if !ok || merr.Kind != EmptyTag {
		t.Fatalf("err = %v, want EmptyTag", err)
	}
}

func TestCompileMissingPartialRendersEmpty(t *testing.T) {
	tmpl, err := CompileString("before{{>whatever}}after")
	if err != nil {
		t.Fatalf("CompileString: %v", err)
	}
	out, err := tmpl.Render(Map(nil))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if out != "beforeafter" {
		t.Fatalf("out = %q, want %q", out, "beforeafter")
	}
}
