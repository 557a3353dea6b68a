package reportgen

import (
	"io/fs"

	vanilla "github.com/goliatone/go-reportgen/pkg/renderers/vanilla"
)

// EmbeddedTemplates exposes the built-in page templates so callers can reuse
// or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}

// EmbeddedAssets exposes the stylesheet and page script served next to the
// rendered page.
func EmbeddedAssets() fs.FS {
	return vanilla.AssetsFS()
}
