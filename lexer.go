package mustache

import "strings"

// skipWhitespaceTagTypes lists the tag sigils eligible for standalone-line
// whitespace removal: comments, section open/close, partials, and the
// delimiter-change tag. Interpolation tags (plain, &, {) are never eligible.
const skipWhitespaceTagTypes = "#^/>=!"

const (
	defaultOTag = "{{"
	defaultCTag = "}}"
)

// lexer is the character-level scanner described by spec §4.B. It uses the
// same substring-search technique as the teacher (and its sibling forks)
// rather than a literal one-rune-at-a-time automaton; see SPEC_FULL.md §4
// for why this preserves the specified observable contract.
type lexer struct {
	data string
	otag string
	ctag string
	p    int
	line int

	tokens   []rawToken
	partials []string
	depth    int
}

// lex tokenizes data starting with the given delimiters, returning the flat
// token stream and the list of partial names it references (in the order
// first referenced; may contain duplicates, which the compiler dedupes).
func lex(data, otag, ctag string) ([]rawToken, []string, error) {
	lx := &lexer{data: data, otag: otag, ctag: ctag, line: 1}
	if err := lx.run(); err != nil {
		return nil, nil, err
	}
	return lx.tokens, lx.partials, nil
}

func (lx *lexer) run() error {
	for {
		text, padding, mayStandalone, eof := lx.readText()
		if eof {
			if text != "" {
				lx.tokens = append(lx.tokens, rawToken{kind: rawText, src: text, text: text})
			}
			break
		}

		if text != "" {
			lx.tokens = append(lx.tokens, rawToken{kind: rawText, src: text, text: text})
		}

		tagLine := lx.line
		tag, standalone, err := lx.readTag(mayStandalone)
		if err != nil {
			return err
		}

		if !standalone && padding != "" {
			lx.tokens = append(lx.tokens, rawToken{kind: rawText, src: padding, text: padding})
		}

		indent := ""
		if standalone {
			indent = padding
		}
		if err := lx.dispatch(tag, indent, tagLine); err != nil {
			return err
		}
	}

	if lx.depth > 0 {
		return newError(UnclosedSection, lx.line, "unclosed section")
	}
	return nil
}

// readString scans forward from lx.p for the next occurrence of s, returning
// the text up to and including it. eof is true (and text is the unmatched
// remainder) if s never occurs before the end of input.
func (lx *lexer) readString(s string) (text string, eof bool) {
	newlines := 0
	for i := lx.p; ; i++ {
		if i+len(s) > len(lx.data) {
			text = lx.data[lx.p:]
			lx.p = len(lx.data)
			lx.line += newlines
			return text, true
		}
		if lx.data[i] == '\n' {
			newlines++
		}
		if lx.data[i] != s[0] {
			continue
		}
		match := true
		for j := 1; j < len(s); j++ {
			if s[j] != lx.data[i+j] {
				match = false
				break
			}
		}
		if match {
			e := i + len(s)
			text = lx.data[lx.p:e]
			lx.p = e
			lx.line += newlines
			return text, false
		}
	}
}

// readText reads the literal text preceding the next otag occurrence. When
// that text's suffix, back to the previous newline (or start of input), is
// pure spaces/tabs, the run is split off into padding and mayStandalone is
// set, deferring the decision of whether to actually trim it to readTag
// (which also knows whether the upcoming tag's sigil is trim-eligible and
// whether it is followed only by trailing whitespace up to a line end).
func (lx *lexer) readText() (text, padding string, mayStandalone, eof bool) {
	pPrev := lx.p
	t, eof := lx.readString(lx.otag)
	if eof {
		return t, "", false, true
	}

	tagStart := lx.p - len(lx.otag)
	i := tagStart
	for i > pPrev {
		if lx.data[i-1] != ' ' && lx.data[i-1] != '\t' {
			break
		}
		i--
	}

	mayStandalone = i == 0 || lx.data[i-1] == '\n'
	if mayStandalone {
		return lx.data[pPrev:i], lx.data[i:tagStart], true, false
	}
	return lx.data[pPrev:tagStart], "", false, false
}

// readTag reads the tag content between sigil and closer, and determines
// whether this tag is standalone (triggering whitespace/newline removal for
// tag kinds that produce no output).
func (lx *lexer) readTag(mayStandalone bool) (tag string, standalone bool, err error) {
	var text string
	var eof bool
	if lx.p < len(lx.data) && lx.data[lx.p] == '{' {
		text, eof = lx.readString("}" + lx.ctag)
	} else {
		text, eof = lx.readString(lx.ctag)
	}
	if eof {
		return "", false, newError(UnclosedTag, lx.line, "unmatched open tag")
	}

	text = text[:len(text)-len(lx.ctag)]
	tag = strings.TrimSpace(text)
	if tag == "" {
		return "", false, newError(EmptyTag, lx.line, "empty tag")
	}

	if !mayStandalone || !strings.ContainsRune(skipWhitespaceTagTypes, rune(tag[0])) {
		return tag, false, nil
	}

	eow := len(lx.data)
	for i := lx.p; i < len(lx.data); i++ {
		if lx.data[i] != ' ' && lx.data[i] != '\t' {
			eow = i
			break
		}
	}

	switch {
	case eow == len(lx.data):
		lx.p = eow
		return tag, true, nil
	case lx.data[eow] == '\n':
		lx.p = eow + 1
		lx.line++
		return tag, true, nil
	case eow+1 < len(lx.data) && lx.data[eow] == '\r' && lx.data[eow+1] == '\n':
		lx.p = eow + 2
		lx.line++
		return tag, true, nil
	default:
		return tag, false, nil
	}
}

func (lx *lexer) dispatch(tag, indent string, line int) error {
	raw := lx.otag + tag + lx.ctag

	switch tag[0] {
	case '!':
		return nil

	case '&':
		path, err := splitPath(strings.TrimSpace(tag[1:]), lx.line)
		if err != nil {
			return err
		}
		lx.tokens = append(lx.tokens, rawToken{kind: rawUnescaped, src: raw, path: path, line: line})
		return nil

	case '{':
		if !strings.HasSuffix(tag, "}") {
			return newError(UnbalancedTripleMustache, lx.line, "unbalanced \"{\" in tag")
		}
		path, err := splitPath(strings.TrimSpace(tag[1:len(tag)-1]), lx.line)
		if err != nil {
			return err
		}
		lx.tokens = append(lx.tokens, rawToken{kind: rawUnescaped, src: raw, path: path, line: line})
		return nil

	case '#', '^':
		path, err := splitPath(strings.TrimSpace(tag[1:]), lx.line)
		if err != nil {
			return err
		}
		lx.tokens = append(lx.tokens, rawToken{kind: rawSectionOpen, src: raw, path: path, inverted: tag[0] == '^', line: line, otag: lx.otag, ctag: lx.ctag})
		lx.depth++
		return nil

	case '/':
		path, err := splitPath(strings.TrimSpace(tag[1:]), lx.line)
		if err != nil {
			return err
		}
		lx.depth--
		if lx.depth < 0 {
			return newError(StrayClose, lx.line, "closing unopened section %q", strings.Join(path, "."))
		}
		lx.tokens = append(lx.tokens, rawToken{kind: rawSectionClose, src: raw, path: path, line: line})
		return nil

	case '>':
		name := strings.TrimSpace(tag[1:])
		if name == "" {
			return newError(EmptyTag, lx.line, "empty tag")
		}
		lx.tokens = append(lx.tokens, rawToken{kind: rawPartial, src: raw, name: name, indent: indent, line: line})
		lx.partials = append(lx.partials, name)
		return nil

	case '=':
		return lx.changeDelimiters(tag)

	default:
		path, err := splitPath(strings.TrimSpace(tag), lx.line)
		if err != nil {
			return err
		}
		lx.tokens = append(lx.tokens, rawToken{kind: rawEscaped, src: raw, path: path, line: line})
		return nil
	}
}

func (lx *lexer) changeDelimiters(tag string) error {
	if len(tag) < 2 || tag[len(tag)-1] != '=' {
		return newError(BadDelimiterChange, lx.line, "malformed set-delimiter tag")
	}
	inner := strings.TrimSpace(tag[1 : len(tag)-1])
	parts := strings.Fields(inner)
	if len(parts) != 2 {
		return newError(BadDelimiterChange, lx.line, "malformed set-delimiter tag")
	}
	lx.otag = parts[0]
	lx.ctag = parts[1]
	return nil
}

// splitPath splits trimmed tag content into a dotted-name path. The sole
// identifier "." yields the empty path ("top of stack"). Whitespace-only
// content is a fatal empty tag.
func splitPath(name string, line int) ([]string, error) {
	if name == "" {
		return nil, newError(EmptyTag, line, "empty tag")
	}
	if name == "." {
		return []string{}, nil
	}
	return strings.Split(name, "."), nil
}
