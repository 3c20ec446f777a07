// Package v1api is a best-effort reimplementation of an older, reflection-based
// Mustache API (ParseString/Render/RenderInLayout taking arbitrary Go values
// directly) on top of the current Value-based core.
package v1api

import (
	"os"
	"path"

	mustache "github.com/runZeroInc/mustache/v2"
)

func encodeContext(context []interface{}) (mustache.Value, error) {
	if len(context) == 0 {
		return mustache.None(), nil
	}
	if len(context) == 1 {
		return mustache.Encode(context[0])
	}
	bindings := map[string]mustache.Value{}
	for _, c := range context {
		v, err := mustache.Encode(c)
		if err != nil {
			return mustache.Value{}, err
		}
		if v.Kind() == mustache.KindMap {
			for k, val := range v.AsMap() {
				bindings[k] = val
			}
		}
	}
	return mustache.Map(bindings), nil
}

// ParseString compiles a mustache template string, resolving partials from
// the current working directory.
func ParseString(data string) (*mustache.Template, error) {
	return ParseStringRaw(data, false)
}

// ParseStringRaw is ParseString, optionally disabling HTML escaping.
func ParseStringRaw(data string, forceRaw bool) (*mustache.Template, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	partials := &mustache.FileProvider{Paths: []string{cwd}}
	return ParseStringPartialsRaw(data, partials, forceRaw)
}

// ParseStringPartials compiles a mustache template string, retrieving any
// required partials from the given resolver.
func ParseStringPartials(data string, partials mustache.PartialResolver) (*mustache.Template, error) {
	return ParseStringPartialsRaw(data, partials, false)
}

// ParseStringPartialsRaw is ParseStringPartials, optionally disabling HTML
// escaping.
func ParseStringPartialsRaw(data string, partials mustache.PartialResolver, forceRaw bool) (*mustache.Template, error) {
	mode := mustache.EscapeHTML
	if forceRaw {
		mode = mustache.EscapeNone
	}
	return mustache.New().WithPartials(partials).WithEscapeMode(mode).CompileString(data)
}

// ParseFile loads and compiles a mustache template from a file, resolving
// partials relative to the file's directory.
func ParseFile(filename string) (*mustache.Template, error) {
	dirname, _ := path.Split(filename)
	partials := &mustache.FileProvider{Paths: []string{dirname}}
	return ParseFilePartials(filename, partials)
}

// ParseFilePartials is ParseFile with an explicit partial resolver.
func ParseFilePartials(filename string, partials mustache.PartialResolver) (*mustache.Template, error) {
	return ParseFilePartialsRaw(filename, false, partials)
}

// ParseFilePartialsRaw is ParseFilePartials, optionally disabling HTML
// escaping.
func ParseFilePartialsRaw(filename string, forceRaw bool, partials mustache.PartialResolver) (*mustache.Template, error) {
	mode := mustache.EscapeHTML
	if forceRaw {
		mode = mustache.EscapeNone
	}
	return mustache.New().WithPartials(partials).WithEscapeMode(mode).CompileFile(filename)
}

// Render compiles data and renders it against context — generally a map or
// struct, encoded via mustache.Encode.
func Render(data string, context ...interface{}) (string, error) {
	return RenderRaw(data, false, context...)
}

// RenderRaw is Render, optionally disabling HTML escaping.
func RenderRaw(data string, forceRaw bool, context ...interface{}) (string, error) {
	return RenderPartialsRaw(data, nil, forceRaw, context...)
}

// RenderPartials is Render with an explicit partial resolver.
func RenderPartials(data string, partials mustache.PartialResolver, context ...interface{}) (string, error) {
	return RenderPartialsRaw(data, partials, false, context...)
}

// RenderPartialsRaw is RenderPartials, optionally disabling HTML escaping.
func RenderPartialsRaw(data string, partials mustache.PartialResolver, forceRaw bool, context ...interface{}) (string, error) {
	c := mustache.New()
	if forceRaw {
		c = c.WithEscapeMode(mustache.EscapeNone)
	}
	if partials != nil {
		c = c.WithPartials(partials)
	}
	tmpl, err := c.CompileString(data)
	if err != nil {
		return "", err
	}
	root, err := encodeContext(context)
	if err != nil {
		return "", err
	}
	return tmpl.Render(root)
}

// RenderInLayout renders data inside layoutData, exposing data's rendered
// output to the layout as {{content}}.
func RenderInLayout(data, layoutData string, context ...interface{}) (string, error) {
	return RenderInLayoutPartials(data, layoutData, nil, context...)
}

// RenderInLayoutPartials is RenderInLayout with an explicit partial
// resolver shared by both templates.
func RenderInLayoutPartials(data, layoutData string, partials mustache.PartialResolver, context ...interface{}) (string, error) {
	layoutCmpl := mustache.New()
	cmpl := mustache.New()
	if partials != nil {
		layoutCmpl = layoutCmpl.WithPartials(partials)
		cmpl = cmpl.WithPartials(partials)
	}
	layoutTmpl, err := layoutCmpl.CompileString(layoutData)
	if err != nil {
		return "", err
	}
	tmpl, err := cmpl.CompileString(data)
	if err != nil {
		return "", err
	}
	root, err := encodeContext(context)
	if err != nil {
		return "", err
	}
	return tmpl.RenderInLayout(layoutTmpl, root)
}

// RenderFile loads and renders the template stored in filename.
func RenderFile(filename string, context ...interface{}) (string, error) {
	tmpl, err := mustache.New().CompileFile(filename)
	if err != nil {
		return "", err
	}
	root, err := encodeContext(context)
	if err != nil {
		return "", err
	}
	return tmpl.Render(root)
}

// RenderFileInLayout loads and renders the templates stored in filename and
// layoutFile, with filename's output exposed to the layout as {{content}}.
func RenderFileInLayout(filename, layoutFile string, context ...interface{}) (string, error) {
	layoutTmpl, err := mustache.New().CompileFile(layoutFile)
	if err != nil {
		return "", err
	}
	tmpl, err := mustache.New().CompileFile(filename)
	if err != nil {
		return "", err
	}
	root, err := encodeContext(context)
	if err != nil {
		return "", err
	}
	return tmpl.RenderInLayout(layoutTmpl, root)
}
