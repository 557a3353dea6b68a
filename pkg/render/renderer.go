package render

import (
	"context"

	"github.com/goliatone/go-reportgen/pkg/app"
)

// Renderer converts a view of the current form into a byte representation
// (HTML page, terminal transcript, etc.).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, view app.View, options RenderOptions) ([]byte, error)
}
