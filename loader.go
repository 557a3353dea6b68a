package reportgen

import (
	internalLoader "github.com/goliatone/go-reportgen/internal/config/loader"
	"github.com/goliatone/go-reportgen/pkg/config"
)

// newLoader keeps the concrete loader type hidden from consumers.
func newLoader(options config.LoaderOptions) config.Loader {
	return internalLoader.New(options)
}
