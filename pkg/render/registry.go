package render

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"mime"
	"slices"
	"strings"
	"sync"

	"github.com/goliatone/go-reportgen/pkg/app"
)

var ErrRendererNotFound = errors.New("render: renderer not found")

// Registry holds renderers by name.
type Registry struct {
	mu        sync.RWMutex
	renderers map[string]Renderer
}

func NewRegistry(renderers ...Renderer) (*Registry, error) {
	r := &Registry{renderers: make(map[string]Renderer, len(renderers))}
	for _, renderer := range renderers {
		if err := r.Register(renderer); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds renderer under its Name. Names must be unique.
func (r *Registry) Register(renderer Renderer) error {
	if renderer == nil {
		return errors.New("render: renderer is required")
	}
	name := strings.TrimSpace(renderer.Name())
	if name == "" {
		return errors.New("render: renderer name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.renderers[name]; exists {
		return fmt.Errorf("render: renderer %q already registered", name)
	}
	r.renderers[name] = renderer
	return nil
}

func (r *Registry) Get(name string) (Renderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	renderer, ok := r.renderers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrRendererNotFound, name)
	}
	return renderer, nil
}

// List returns the registered names, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.renderers))
}

// Negotiate picks the renderer whose content type best matches an HTTP
// Accept header, in the header's order. Wildcards, an empty header or no
// match select fallback.
func (r *Registry) Negotiate(accept, fallback string) (Renderer, error) {
	r.mu.RLock()
	byType := make(map[string]Renderer, len(r.renderers))
	for _, name := range slices.Sorted(maps.Keys(r.renderers)) {
		renderer := r.renderers[name]
		mediaType, _, err := mime.ParseMediaType(renderer.ContentType())
		if err != nil {
			continue
		}
		if _, taken := byType[mediaType]; !taken {
			byType[mediaType] = renderer
		}
	}
	r.mu.RUnlock()

	for _, part := range strings.Split(accept, ",") {
		mediaType, _, err := mime.ParseMediaType(strings.TrimSpace(part))
		if err != nil || strings.Contains(mediaType, "*") {
			continue
		}
		if renderer, ok := byType[mediaType]; ok {
			return renderer, nil
		}
	}
	return r.Get(fallback)
}

// Render runs the named renderer and returns its output with its content
// type.
func (r *Registry) Render(ctx context.Context, name string, view app.View, options RenderOptions) ([]byte, string, error) {
	renderer, err := r.Get(name)
	if err != nil {
		return nil, "", err
	}
	out, err := renderer.Render(ctx, view, options)
	if err != nil {
		return nil, "", fmt.Errorf("render: %s: %w", name, err)
	}
	return out, renderer.ContentType(), nil
}
