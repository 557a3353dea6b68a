// Package gotemplate implements template.TemplateRenderer on top of pongo2.
package gotemplate

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-reportgen/pkg/render/template"
)

const setName = "reportgen"

// Option configures an Engine.
type Option func(*options)

type options struct {
	files     fs.FS
	extension string
	globals   map[string]any
}

// WithFS loads templates from files.
func WithFS(files fs.FS) Option {
	return func(o *options) {
		if files != nil {
			o.files = files
		}
	}
}

// WithDir loads templates from a directory on disk.
func WithDir(dir string) Option {
	return func(o *options) {
		if dir = strings.TrimSpace(dir); dir != "" {
			o.files = os.DirFS(dir)
		}
	}
}

// WithExtension sets the suffix appended to template names that lack it.
func WithExtension(ext string) Option {
	return func(o *options) {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			return
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		o.extension = ext
	}
}

// WithGlobals seeds values and helper functions visible to every template.
func WithGlobals(globals map[string]any) Option {
	return func(o *options) {
		for name, value := range globals {
			if name = strings.TrimSpace(name); name != "" {
				if o.globals == nil {
					o.globals = make(map[string]any, len(globals))
				}
				o.globals[name] = value
			}
		}
	}
}

// Engine renders templates from one pongo2 set. Parsed files are cached by
// path.
type Engine struct {
	mu        sync.RWMutex
	set       *pongo2.TemplateSet
	cache     map[string]*pongo2.Template
	extension string
}

var _ template.TemplateRenderer = (*Engine)(nil)

func New(opts ...Option) (*Engine, error) {
	o := options{extension: ".html"}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.files == nil {
		return nil, errors.New("gotemplate: a template directory or fs.FS is required")
	}

	registerFilters()
	e := &Engine{
		set:       pongo2.NewSet(setName, pongo2.NewFSLoader(o.files)),
		cache:     make(map[string]*pongo2.Template),
		extension: o.extension,
	}
	if err := e.GlobalContext(o.globals); err != nil {
		return nil, fmt.Errorf("gotemplate: apply globals: %w", err)
	}
	return e, nil
}

// Render treats name as inline template source when it contains template
// tags, otherwise as a template path.
func (e *Engine) Render(name string, data any, out ...io.Writer) (string, error) {
	if strings.Contains(name, "{{") || strings.Contains(name, "{%") {
		return e.RenderString(name, data, out...)
	}
	return e.RenderTemplate(name, data, out...)
}

func (e *Engine) RenderTemplate(name string, data any, out ...io.Writer) (string, error) {
	path := name
	if !strings.HasSuffix(path, e.extension) {
		path += e.extension
	}
	tmpl, err := e.load(path)
	if err != nil {
		return "", err
	}
	return e.execute(tmpl, path, data, out)
}

func (e *Engine) RenderString(source string, data any, out ...io.Writer) (string, error) {
	tmpl, err := e.set.FromString(source)
	if err != nil {
		return "", fmt.Errorf("gotemplate: parse inline template: %w", err)
	}
	return e.execute(tmpl, "inline", data, out)
}

// RegisterFilter adds a filter to pongo2's process-wide registry. Names
// already taken are rejected.
func (e *Engine) RegisterFilter(name string, fn func(input any, param any) (any, error)) error {
	name = strings.TrimSpace(name)
	if name == "" || fn == nil {
		return errors.New("gotemplate: filter name and function required")
	}
	if pongo2.FilterExists(name) {
		return fmt.Errorf("gotemplate: filter %q already exists", name)
	}
	return pongo2.RegisterFilter(name, func(in, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
		var arg any
		if param != nil {
			arg = param.Interface()
		}
		result, err := fn(in.Interface(), arg)
		if err != nil {
			return nil, &pongo2.Error{Sender: "filter:" + name, OrigError: err}
		}
		return pongo2.AsValue(result), nil
	})
}

// GlobalContext merges data into the values every template sees.
func (e *Engine) GlobalContext(data any) error {
	if data == nil {
		return nil
	}
	globals, err := toContext(data)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.set.Globals == nil {
		e.set.Globals = make(pongo2.Context, len(globals))
	}
	e.set.Globals.Update(globals)
	return nil
}

func (e *Engine) load(path string) (*pongo2.Template, error) {
	e.mu.RLock()
	tmpl, ok := e.cache[path]
	e.mu.RUnlock()
	if ok {
		return tmpl, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if tmpl, ok := e.cache[path]; ok {
		return tmpl, nil
	}
	tmpl, err := e.set.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("gotemplate: load template %q: %w", path, err)
	}
	e.cache[path] = tmpl
	return tmpl, nil
}

func (e *Engine) execute(tmpl *pongo2.Template, name string, data any, out []io.Writer) (string, error) {
	ctx, err := toContext(data)
	if err != nil {
		return "", fmt.Errorf("gotemplate: convert data: %w", err)
	}

	var buf bytes.Buffer
	e.mu.RLock()
	err = tmpl.ExecuteWriter(ctx, &buf)
	e.mu.RUnlock()
	if err != nil {
		return "", fmt.Errorf("gotemplate: execute %q: %w", name, err)
	}

	for _, w := range out {
		if _, err := w.Write(buf.Bytes()); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}
