package mustache

import (
	"strings"
	"unicode"
)

// EscapeMode selects the escaping policy applied to (escaped) interpolation
// output. It never affects unescaped tags ({{{x}}}, {{&x}}).
type EscapeMode int

// Defines the possible EscapeMode values.
const (
	EscapeHTML EscapeMode = iota // default: HTML entity escaping per spec §4.E
	EscapeJSON                   // escape for embedding inside a JSON string literal
	EscapeNone                   // no escaping (caller asserts the output is already safe)
)

// escapeHTML applies the exact five-entry table from spec §4.E. No other
// byte is transformed.
func escapeHTML(s string) string {
	if !strings.ContainsAny(s, `<>&"'`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 16)
	for _, r := range s {
		switch r {
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		case '&':
			b.WriteString("&amp;")
		case '"':
			b.WriteString("&quot;")
		case '\'':
			b.WriteString("&#39;")
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// escapeJSON escapes s so it can be embedded inside a JSON string literal.
func escapeJSON(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 16)
	for _, r := range s {
		switch r {
		case '"', '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		case '\n':
			b.WriteString(`\n`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if unicode.IsControl(r) {
				b.WriteString("\\u")
				const hex = "0123456789abcdef"
				b.WriteByte(hex[(r>>12)&0xF])
				b.WriteByte(hex[(r>>8)&0xF])
				b.WriteByte(hex[(r>>4)&0xF])
				b.WriteByte(hex[r&0xF])
			} else {
				b.WriteRune(r)
			}
		}
	}
	return b.String()
}

func escapeFor(mode EscapeMode, s string) string {
	switch mode {
	case EscapeJSON:
		return escapeJSON(s)
	case EscapeNone:
		return s
	default:
		return escapeHTML(s)
	}
}
