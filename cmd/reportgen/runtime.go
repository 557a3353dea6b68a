package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	reportgen "github.com/goliatone/go-reportgen"
	"github.com/goliatone/go-reportgen/internal/settings"
	"github.com/goliatone/go-reportgen/pkg/app"
	"github.com/goliatone/go-reportgen/pkg/storage"
)

const sqliteFile = "reportgen.db"

type runtime struct {
	settings settings.Settings
	logger   zerolog.Logger
	app      *app.App
}

// setup resolves settings, opens storage and loads the configured language.
// A failed initial load is logged and leaves the app without a form.
func setup(cmd *cobra.Command) (*runtime, error) {
	s, err := settings.Load(cfgPath, cmd.Flags())
	if err != nil {
		return nil, err
	}
	logger := newLogger(s.Log)
	ctx := logger.WithContext(cmd.Context())

	catalog, err := reportgen.CatalogFromLocation(s.Configs.Location)
	if err != nil {
		return nil, err
	}

	store, err := openStore(ctx, s.Storage)
	if err != nil {
		return nil, err
	}

	a, err := reportgen.NewApp(
		app.WithCatalog(catalog),
		app.WithLoader(reportgen.LoaderForLocation(s.Configs.Location, s.Configs.Timeout)),
		app.WithStore(store),
		app.WithStorageKey(s.Storage.Key),
		app.WithInterval(s.Persist.Interval),
		app.WithLogger(logger),
	)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to create app: %w", err)
	}

	logger.Info().
		Str("storage", s.Storage.Driver).
		Str("path", s.Storage.Path).
		Str("configs", s.Configs.Location).
		Msg("reportgen initialised")

	if err := a.Load(ctx, s.Language); err != nil {
		logger.Error().Err(err).Str("language", s.Language).Msg("initial load failed")
	}

	return &runtime{settings: s, logger: logger, app: a}, nil
}

func (r *runtime) close(ctx context.Context) {
	if err := r.app.Close(ctx); err != nil {
		r.logger.Error().Err(err).Msg("failed to close app")
	}
}

func newLogger(cfg settings.Log) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}
	if cfg.Pretty {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
}

func openStore(ctx context.Context, cfg settings.Storage) (storage.Store, error) {
	switch cfg.Driver {
	case settings.StorageMemory:
		return storage.NewMemory(), nil
	case settings.StorageFile:
		return storage.NewFile(cfg.Path)
	case settings.StorageSQLite:
		path := cfg.Path
		if filepath.Ext(path) == "" {
			path = filepath.Join(path, sqliteFile)
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", filepath.Dir(path), err)
		}
		return storage.OpenSQLite(ctx, path)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
