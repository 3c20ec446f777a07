package mustache

import "strings"

// fold turns a flat []rawToken into a []Token tree, matching each section
// close against its innermost open section by dotted-name path and
// accumulating each section's InnerSrc from its children's raw source, so a
// lambda bound to that section can be re-invoked against its exact original
// text. The lexer already guarantees depth balance; fold additionally
// requires that a close tag's path matches the section it is closing.
func fold(tokens []rawToken) ([]Token, error) {
	type frame struct {
		open     rawToken
		children []Token
		inner    strings.Builder
	}

	var stack []*frame
	var root []Token

	emit := func(t Token, src string) {
		if len(stack) == 0 {
			root = append(root, t)
			return
		}
		top := stack[len(stack)-1]
		top.children = append(top.children, t)
		top.inner.WriteString(src)
	}

	for _, rt := range tokens {
		switch rt.kind {
		case rawText:
			emit(Token{Kind: TokenText, Text: rt.text, Src: rt.src}, rt.src)

		case rawEscaped:
			emit(Token{Kind: TokenEscaped, Path: rt.path, Src: rt.src}, rt.src)

		case rawUnescaped:
			emit(Token{Kind: TokenUnescaped, Path: rt.path, Src: rt.src}, rt.src)

		case rawPartial:
			emit(Token{Kind: TokenPartial, PartialName: rt.name, Indent: rt.indent, Src: rt.src}, rt.src)

		case rawSectionOpen:
			stack = append(stack, &frame{open: rt})

		case rawSectionClose:
			if len(stack) == 0 {
				return nil, newError(StrayClose, rt.line, "closing unopened section %q", strings.Join(rt.path, "."))
			}
			top := stack[len(stack)-1]
			if !pathsEqual(top.open.path, rt.path) {
				return nil, newError(StrayClose, rt.line, "mismatched section close: opened %q, closed %q",
					strings.Join(top.open.path, "."), strings.Join(rt.path, "."))
			}
			stack = stack[:len(stack)-1]

			sec := Token{
				Kind:     TokenSection,
				Path:     top.open.path,
				Src:      top.open.src,
				Inverted: top.open.inverted,
				Children: top.children,
				OTag:     top.open.otag,
				CTag:     top.open.ctag,
				OpenSrc:  top.open.src,
				InnerSrc: top.inner.String(),
				CloseSrc: rt.src,
			}
			emit(sec, sec.OpenSrc+sec.InnerSrc+sec.CloseSrc)
		}
	}

	if len(stack) > 0 {
		top := stack[len(stack)-1]
		return nil, newError(UnclosedSection, top.open.line, "unclosed section %q", strings.Join(top.open.path, "."))
	}

	return root, nil
}

func pathsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// compileFragment lexes and folds a single template fragment under the given
// delimiters, without resolving partials. It is the shared core used both by
// top-level compilation and by lambda re-entrance (which recompiles a
// lambda's return value under the default delimiters for an interpolation
// lambda, or under the section's own delimiters for a section lambda).
func compileFragment(src, otag, ctag string) ([]Token, error) {
	raw, _, err := lex(src, otag, ctag)
	if err != nil {
		return nil, err
	}
	return fold(raw)
}

// collectPartials walks a compiled tree looking for every TokenPartial leaf
// it references (recursing into section bodies) and ensures each one's body
// ends up compiled into cache, keyed by partial name. A partial is compiled
// at most once no matter how many times it's referenced or how deeply
// nested those references are.
func collectPartials(tokens []Token, resolver PartialResolver, cache map[string][]Token) error {
	for _, t := range tokens {
		switch t.Kind {
		case TokenSection:
			if err := collectPartials(t.Children, resolver, cache); err != nil {
				return err
			}
		case TokenPartial:
			if err := resolvePartial(t.PartialName, resolver, cache); err != nil {
				return err
			}
		}
	}
	return nil
}

// resolvePartial compiles name's body into cache, unless it's already
// there. A nil entry (present key, nil slice) means either a missing
// partial — which renders as empty text, not an error — or a placeholder
// standing in for a partial whose own body is still being compiled.
//
// The placeholder is what makes self- and mutually-recursive partials work:
// a partial's body is looked up by name at render time, not inlined into
// the tree at compile time, so a partial that includes itself (directly or
// through another partial) simply produces a TokenPartial referencing its
// own name. Recursion terminates at render time, governed by the data being
// rendered, exactly like a recursive section over nested data would.
func resolvePartial(name string, resolver PartialResolver, cache map[string][]Token) error {
	if _, ok := cache[name]; ok {
		return nil
	}

	body, ok, err := resolver.Resolve(name)
	if err != nil {
		return err
	}
	if !ok {
		cache[name] = nil
		return nil
	}

	cache[name] = nil // placeholder: breaks cycles through this partial
	tokens, err := compileFragment(body, defaultOTag, defaultCTag)
	if err != nil {
		return err
	}
	cache[name] = tokens

	return collectPartials(tokens, resolver, cache)
}
