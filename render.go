package mustache

import "strings"

// indentWriter applies a single active indent prefix to every line of
// output, regardless of which token produced it. This generalizes the
// teacher's/original's indent handling (which only prepends indent to
// literal Text tokens, and does so unconditionally before every
// interpolation, corrupting mid-line output) into a uniform write
// discipline: indent is inserted once at the start of every non-blank
// line, tracked across token boundaries via atLineStart. A line made up
// solely of a trailing newline is left unindented, matching the
// teacher's own "skip blank lines" rule.
type indentWriter struct {
	b           *strings.Builder
	indent      string
	atLineStart bool
}

func newIndentWriter(b *strings.Builder) *indentWriter {
	return &indentWriter{b: b, atLineStart: true}
}

func (w *indentWriter) writeString(s string) {
	if s == "" {
		return
	}
	if w.indent == "" {
		w.b.WriteString(s)
		w.atLineStart = s[len(s)-1] == '\n'
		return
	}

	for i := 0; i < len(s); {
		if w.atLineStart {
			if s[i] != '\n' {
				w.b.WriteString(w.indent)
			}
			w.atLineStart = false
		}
		if j := strings.IndexByte(s[i:], '\n'); j >= 0 {
			w.b.WriteString(s[i : i+j+1])
			i += j + 1
			w.atLineStart = true
		} else {
			w.b.WriteString(s[i:])
			i = len(s)
		}
	}
}

// renderer walks a compiled token tree against a Stack, applying the
// escaping and indentation policy of a single render call. partials holds
// every partial reachable from the template being rendered, keyed by name;
// a name absent from (or mapped to nil in) partials renders as nothing.
type renderer struct {
	mode     EscapeMode
	w        *indentWriter
	partials map[string][]Token
}

func renderTokens(tokens []Token, stack *Stack, mode EscapeMode, partials map[string][]Token) (string, error) {
	var b strings.Builder
	r := &renderer{mode: mode, w: newIndentWriter(&b), partials: partials}
	if err := r.renderAll(tokens, stack); err != nil {
		return "", err
	}
	return b.String(), nil
}

func (r *renderer) renderAll(tokens []Token, stack *Stack) error {
	for _, t := range tokens {
		if err := r.renderOne(t, stack); err != nil {
			return err
		}
	}
	return nil
}

func (r *renderer) renderOne(t Token, stack *Stack) error {
	switch t.Kind {
	case TokenText:
		r.w.writeString(t.Text)
		return nil

	case TokenEscaped:
		return r.renderVar(t, stack, true)

	case TokenUnescaped:
		return r.renderVar(t, stack, false)

	case TokenSection:
		return r.renderSection(t, stack)

	case TokenPartial:
		return r.renderPartial(t, stack)

	default:
		return nil
	}
}

func (r *renderer) renderVar(t Token, stack *Stack, escape bool) error {
	value, ok := stack.Find(t.Path)
	if !ok {
		return nil
	}

	if value.Kind() == KindLambda {
		out, err := r.callLambda(value, "", stack)
		if err != nil {
			return err
		}
		if escape {
			r.w.writeString(escapeFor(r.mode, out))
		} else {
			r.w.writeString(out)
		}
		return nil
	}

	s, err := stringifyForInterpolation(value)
	if err != nil {
		return err
	}
	if escape {
		r.w.writeString(escapeFor(r.mode, s))
	} else {
		r.w.writeString(s)
	}
	return nil
}

// stringifyForInterpolation renders a non-lambda Value as interpolated text.
// Only String values are printable this way; anything else is a type error
// the caller made by putting a non-scalar under a variable tag.
func stringifyForInterpolation(v Value) (string, error) {
	if v.Kind() != KindString {
		return "", newError(UnsupportedType, 0, "cannot interpolate a %s value", v.Kind())
	}
	return v.AsString(), nil
}

// callLambda invokes value's Lambda with text, recompiles the result under
// the default delimiters (matching the teacher's tmpl.parent.CompileString
// re-entrance), and renders the recompiled tree against the current stack
// without pushing a new frame, returning the rendered string.
func (r *renderer) callLambda(value Value, text string, stack *Stack) (string, error) {
	out, err := value.CallLambda(text)
	if err != nil {
		return "", err
	}
	tree, err := compileFragment(out, defaultOTag, defaultCTag)
	if err != nil {
		return "", err
	}
	return renderTokens(tree, stack, r.mode, r.partials)
}

func (r *renderer) renderSection(t Token, stack *Stack) error {
	value, ok := stack.Find(t.Path)

	if t.Inverted {
		fires := !ok || isFalsyForInverted(value)
		if !fires {
			return nil
		}
		return r.renderAll(t.Children, stack)
	}

	if !ok {
		return nil
	}

	switch value.Kind() {
	case KindBool:
		if !value.AsBool() {
			return nil
		}
		return r.renderAll(t.Children, stack)

	case KindList:
		for _, item := range value.AsList() {
			stack.Push(item)
			err := r.renderAll(t.Children, stack)
			stack.Pop()
			if err != nil {
				return err
			}
		}
		return nil

	case KindOption:
		inner, present := value.Some()
		if !present {
			return nil
		}
		stack.Push(inner)
		err := r.renderAll(t.Children, stack)
		stack.Pop()
		return err

	case KindLambda:
		otag, ctag := t.OTag, t.CTag
		if otag == "" {
			otag = defaultOTag
		}
		if ctag == "" {
			ctag = defaultCTag
		}
		out, err := value.CallLambda(t.InnerSrc)
		if err != nil {
			return err
		}
		tree, err := compileFragment(out, otag, ctag)
		if err != nil {
			return err
		}
		rendered, err := renderTokens(tree, stack, r.mode, r.partials)
		if err != nil {
			return err
		}
		r.w.writeString(rendered)
		return nil

	case KindString:
		// Empty string is falsy for a non-inverted section and is skipped
		// rather than pushed; a non-empty string pushes the resolved value,
		// exposing it via {{.}} inside the section body, and renders once.
		if value.AsString() == "" {
			return nil
		}
		stack.Push(value)
		err := r.renderAll(t.Children, stack)
		stack.Pop()
		return err

	default:
		// Map sections push the resolved value, exposing it via {{.}}
		// inside the section body, and render once.
		stack.Push(value)
		err := r.renderAll(t.Children, stack)
		stack.Pop()
		return err
	}
}

func (r *renderer) renderPartial(t Token, stack *Stack) error {
	body, ok := r.partials[t.PartialName]
	if !ok {
		return nil
	}
	oldIndent := r.w.indent
	r.w.indent = oldIndent + t.Indent
	err := r.renderAll(body, stack)
	r.w.indent = oldIndent
	return err
}
