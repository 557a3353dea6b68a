package app

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-reportgen/pkg/config"
	"github.com/goliatone/go-reportgen/pkg/form"
	"github.com/goliatone/go-reportgen/pkg/storage"
)

// Option configures an App.
type Option func(*App)

// WithLoader sets the configuration loader.
func WithLoader(loader config.Loader) Option {
	return func(a *App) {
		if loader != nil {
			a.loader = loader
		}
	}
}

// WithCatalog sets the language → configuration mapping.
func WithCatalog(catalog *config.Catalog) Option {
	return func(a *App) {
		if catalog != nil {
			a.catalog = catalog
		}
	}
}

// WithStore sets the storage slot backend.
func WithStore(store storage.Store) Option {
	return func(a *App) {
		if store != nil {
			a.store = store
		}
	}
}

// WithStorageKey overrides the storage key snapshots are saved under.
func WithStorageKey(key string) Option {
	return func(a *App) {
		a.storageKey = key
	}
}

// WithInterval overrides the persistence interval.
func WithInterval(d time.Duration) Option {
	return func(a *App) {
		a.interval = d
	}
}

// WithLogger sets the logger for diagnostics.
func WithLogger(logger zerolog.Logger) Option {
	return func(a *App) {
		a.logger = logger
	}
}

// WithFormOptions forwards options to every form render, e.g. text metrics.
func WithFormOptions(options ...form.Option) Option {
	return func(a *App) {
		a.formOptions = append(a.formOptions, options...)
	}
}
