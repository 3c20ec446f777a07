package mustache

import "testing"

func TestEscapeHTML(t *testing.T) {
	cases := []struct {
		in, out string
	}{
		{`<b>`, `&lt;b&gt;`},
		{`a & b`, `a &amp; b`},
		{`"quoted"`, `&quot;quoted&quot;`},
		{`it's`, `it&#39;s`},
		{`plain`, `plain`},
		{"", ""},
	}
	for _, c := range cases {
		if got := escapeHTML(c.in); got != c.out {
			t.Errorf("escapeHTML(%q) = %q, want %q", c.in, got, c.out)
		}
	}
}

func TestEscapeJSON(t *testing.T) {
	cases := []struct {
		in, out string
	}{
		{`say "hi"`, `say \"hi\"`},
		{"line\nbreak", `line\nbreak`},
		{`back\slash`, `back\\slash`},
		{"tab\ttab", `tab\ttab`},
	}
	for _, c := range cases {
		if got := escapeJSON(c.in); got != c.out {
			t.Errorf("escapeJSON(%q) = %q, want %q", c.in, got, c.out)
		}
	}
}

func TestEscapeForNone(t *testing.T) {
	if got := escapeFor(EscapeNone, `<b>&"'`); got != `<b>&"'` {
		t.Errorf("escapeFor(EscapeNone) = %q, want passthrough", got)
	}
}
