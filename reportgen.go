// Package reportgen renders an editable, multi-section report form from a
// per-language configuration, compiles it into a plain-text report and keeps
// the in-progress values in a single storage slot.
//
// The quickest way in is NewApp, which wires the embedded configurations, the
// default loader and an in-memory store:
//
//	a, err := reportgen.NewApp()
//	if err != nil { ... }
//	if err := a.Load(ctx, "en"); err != nil { ... }
//	text, _ := a.SetValue("blockers", "issues", "CI is flaky")
package reportgen

import (
	"github.com/goliatone/go-reportgen/pkg/app"
	"github.com/goliatone/go-reportgen/pkg/config"
	"github.com/goliatone/go-reportgen/pkg/report"
)

// App aliases app.App for callers that only import the root package.
type App = app.App

// Structured aliases the serialisable report snapshot.
type Structured = report.Structured

// DefaultLanguage is loaded when no language is requested.
const DefaultLanguage = "en"

// NewApp constructs an App backed by the embedded configurations. Options are
// applied after the defaults so callers can swap the loader, catalog or
// store.
func NewApp(options ...app.Option) (*App, error) {
	defaults := []app.Option{
		app.WithLoader(NewLoader()),
		app.WithCatalog(DefaultCatalog()),
	}
	return app.New(append(defaults, options...)...)
}

// NewLoader constructs a configuration loader using the internal
// implementation. The embedded configurations back fs sources unless
// WithFileSystem overrides them.
func NewLoader(options ...config.LoaderOption) config.Loader {
	opts := append([]config.LoaderOption{config.WithFileSystem(ConfigFS())}, options...)
	return newLoader(config.NewLoaderOptions(opts...))
}
