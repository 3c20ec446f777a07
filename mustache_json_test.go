package mustache

import "testing"

func TestRenderJSONEscaping(t *testing.T) {
	tmpl, err := New().WithEscapeMode(EscapeJSON).CompileString(`{"name": "{{name}}"}`)
	if err != nil {
		t.Fatalf("CompileString: %v", err)
	}
	out, err := tmpl.Render(Map(map[string]Value{"name": Str(`say "hi"` + "\n")}))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	want := `{"name": "say \"hi\"\n"}`
	if out != want {
		t.Fatalf("out = %q, want %q", out, want)
	}
}

func TestRenderJSONDoesNotAffectUnescapedTags(t *testing.T) {
	tmpl, err := New().WithEscapeMode(EscapeJSON).CompileString(`{{{raw}}}`)
	if err != nil {
		t.Fatalf("CompileString: %v", err)
	}
	out, err := tmpl.Render(Map(map[string]Value{"raw": Str(`"already json"`)}))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if out != `"already json"` {
		t.Fatalf("out = %q", out)
	}
}
