package mustache

import (
	"io"
	"os"
	"unicode/utf8"
)

// Compiler builds Templates with a consistent configuration: which partial
// resolver to consult and which escaping policy to apply to interpolated
// text. The zero value is not ready for use; construct one with New.
type Compiler struct {
	partials   PartialResolver
	escapeMode EscapeMode
}

// New returns a Compiler configured with no partials and HTML escaping.
func New() *Compiler {
	return &Compiler{partials: NoPartials{}}
}

// WithPartials attaches a partial resolver, used to look up every {{>name}}
// tag encountered while compiling.
func (c *Compiler) WithPartials(p PartialResolver) *Compiler {
	c.partials = p
	return c
}

// WithEscapeMode sets the escaping policy applied to {{escaped}} tags. The
// default is EscapeHTML.
func (c *Compiler) WithEscapeMode(m EscapeMode) *Compiler {
	c.escapeMode = m
	return c
}

// CompileString compiles a template from source text. Every {{>name}}
// reference reachable from it — transitively, through other partials — is
// resolved against the Compiler's partial resolver and compiled once into
// the Template's partial cache; a partial the resolver doesn't recognize
// compiles to nothing and renders as the empty string rather than failing.
func (c *Compiler) CompileString(data string) (*Template, error) {
	tree, err := compileFragment(data, defaultOTag, defaultCTag)
	if err != nil {
		return nil, err
	}

	resolver := c.partials
	if resolver == nil {
		resolver = NoPartials{}
	}
	partials := make(map[string][]Token)
	if err := collectPartials(tree, resolver, partials); err != nil {
		return nil, err
	}

	return &Template{tokens: tree, partials: partials, escapeMode: c.escapeMode}, nil
}

// CompileFile reads filename and compiles its contents.
func (c *Compiler) CompileFile(filename string) (*Template, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, wrapIOError(err)
	}
	if !utf8.Valid(data) {
		return nil, newError(InvalidUTF8, 0, "file %q is not valid UTF-8", filename)
	}
	return c.CompileString(string(data))
}

// Template is a compiled, ready-to-render Mustache template. Templates are
// immutable after compilation and safe for concurrent use, provided any
// Lambda values supplied at render time are themselves safe for concurrent
// use.
type Template struct {
	tokens     []Token
	partials   map[string][]Token
	escapeMode EscapeMode
}

// Render renders the template against root, returning the output as a
// string.
func (t *Template) Render(root Value) (string, error) {
	return renderTokens(t.tokens, NewStack(root), t.escapeMode, t.partials)
}

// FRender renders the template against root, writing the output to w.
func (t *Template) FRender(w io.Writer, root Value) error {
	out, err := t.Render(root)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}

// RenderInLayout renders t against root, then renders layout against a
// fresh context exposing the result as {{content}} — the layout sees only
// that binding, not root itself.
func (t *Template) RenderInLayout(layout *Template, root Value) (string, error) {
	content, err := t.Render(root)
	if err != nil {
		return "", err
	}
	return layout.Render(Map(map[string]Value{"content": Str(content)}))
}

// FRenderInLayout is RenderInLayout, writing the result to w.
func (t *Template) FRenderInLayout(w io.Writer, layout *Template, root Value) error {
	out, err := t.RenderInLayout(layout, root)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}

// CompileString compiles a template with no partial support and default
// HTML escaping.
func CompileString(data string) (*Template, error) {
	return New().CompileString(data)
}

// CompileFile compiles the template stored in filename.
func CompileFile(filename string) (*Template, error) {
	return New().CompileFile(filename)
}

// CompilePartials compiles a template, resolving {{>name}} tags against
// partials.
func CompilePartials(data string, partials PartialResolver) (*Template, error) {
	return New().WithPartials(partials).CompileString(data)
}

// Render compiles data and renders it against root in one step.
func Render(data string, root Value) (string, error) {
	tmpl, err := CompileString(data)
	if err != nil {
		return "", err
	}
	return tmpl.Render(root)
}

// RenderFile compiles the template in filename and renders it against root.
func RenderFile(filename string, root Value) (string, error) {
	tmpl, err := CompileFile(filename)
	if err != nil {
		return "", err
	}
	return tmpl.Render(root)
}

// RenderPartials compiles data with partial support and renders it against
// root.
func RenderPartials(data string, partials PartialResolver, root Value) (string, error) {
	tmpl, err := CompilePartials(data, partials)
	if err != nil {
		return "", err
	}
	return tmpl.Render(root)
}

// RenderInLayout compiles data and layoutData, renders data against root,
// then renders layoutData against the result per Template.RenderInLayout.
func RenderInLayout(data, layoutData string, root Value) (string, error) {
	tmpl, err := CompileString(data)
	if err != nil {
		return "", err
	}
	layout, err := CompileString(layoutData)
	if err != nil {
		return "", err
	}
	return tmpl.RenderInLayout(layout, root)
}

// RenderInLayoutPartials is RenderInLayout with partial support shared by
// both the content template and the layout.
func RenderInLayoutPartials(data, layoutData string, partials PartialResolver, root Value) (string, error) {
	tmpl, err := CompilePartials(data, partials)
	if err != nil {
		return "", err
	}
	layout, err := CompilePartials(layoutData, partials)
	if err != nil {
		return "", err
	}
	return tmpl.RenderInLayout(layout, root)
}

// RenderFileInLayout compiles the templates stored in filename and
// layoutFilename and renders the former inside the latter.
func RenderFileInLayout(filename, layoutFilename string, root Value) (string, error) {
	tmpl, err := CompileFile(filename)
	if err != nil {
		return "", err
	}
	layout, err := CompileFile(layoutFilename)
	if err != nil {
		return "", err
	}
	return tmpl.RenderInLayout(layout, root)
}
