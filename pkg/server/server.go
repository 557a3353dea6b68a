// Package server exposes a report App over HTTP: the rendered page, its
// static assets and a small JSON API used by the page script.
package server

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-reportgen/pkg/app"
	"github.com/goliatone/go-reportgen/pkg/render"
	"github.com/goliatone/go-reportgen/pkg/server/middleware"
)

const DefaultShutdownTimeout = 10 * time.Second

type WebAPI struct {
	router *chi.Mux
	logger *zerolog.Logger
	server *http.Server
	config Config
}

type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	Dependencies    Dependencies
}

type Dependencies struct {
	App *app.App
	// Renderers serve GET /; RendererName is the default when the Accept
	// header matches none of them.
	Renderers     *render.Registry
	RendererName  string
	RenderOptions render.RenderOptions
	// Assets is served under /assets/. Nil disables the route.
	Assets  fs.FS
	Version string
}

// NewWebAPI builds the router. It fails when the page renderer cannot be
// resolved.
func NewWebAPI(logger zerolog.Logger, config Config) (*WebAPI, error) {
	router, err := ConfigureRouter(logger, config)
	if err != nil {
		return nil, err
	}
	if config.ShutdownTimeout <= 0 {
		config.ShutdownTimeout = DefaultShutdownTimeout
	}
	return &WebAPI{
		router: router,
		logger: &logger,
		config: config,
		server: &http.Server{
			Addr:              config.Addr,
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}, nil
}

// ConfigureRouter mounts every route on a fresh chi router.
func ConfigureRouter(logger zerolog.Logger, config Config) (*chi.Mux, error) {
	deps := config.Dependencies
	if deps.App == nil {
		return nil, errors.New("server: app is required")
	}
	if deps.Renderers == nil {
		return nil, errors.New("server: renderer registry is required")
	}
	if _, err := deps.Renderers.Get(deps.RendererName); err != nil {
		return nil, fmt.Errorf("server: %w", err)
	}

	h := NewHandler(deps.App, deps.Renderers, deps.RendererName, deps.RenderOptions, deps.Version)

	router := chi.NewRouter()
	router.Use(middleware.Logger(&logger))
	router.Use(chimiddleware.Recoverer)

	router.Get("/", h.Page)
	if deps.Assets != nil {
		router.Handle("/assets/*", http.StripPrefix("/assets/", http.FileServerFS(deps.Assets)))
	}

	router.Route("/api", func(r chi.Router) {
		r.Get("/languages", h.ListLanguages)
		r.Put("/language", h.SetLanguage)
		r.Get("/config", h.GetConfig)
		r.Get("/openapi.json", h.OpenAPI)
		r.Route("/sections/{sectionID}", func(r chi.Router) {
			r.Put("/included", h.SetIncluded)
			r.Put("/fields/{fieldID}", h.SetFieldValue)
		})
		r.Route("/report", func(r chi.Router) {
			r.Get("/", h.GetReport)
			r.Post("/generate", h.GenerateReport)
			r.Get("/structured", h.GetStructured)
			r.Put("/structured", h.ImportStructured)
		})
	})

	return router, nil
}

func (a *WebAPI) Handler() http.Handler {
	return a.router
}

// Start serves until ctx is cancelled, an interrupt arrives or the listener
// fails, then shuts down gracefully.
func (a *WebAPI) Start(ctx context.Context) error {
	a.logger.Info().Str("addr", a.server.Addr).Msg("starting server")

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- a.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		a.logger.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case <-ctx.Done():
		a.logger.Info().Msg("context cancelled, shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.config.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		a.logger.Error().Err(err).Msg("graceful shutdown failed")
		if closeErr := a.server.Close(); closeErr != nil {
			return fmt.Errorf("could not stop server: %w", closeErr)
		}
		return err
	}
	a.logger.Info().Msg("server stopped")
	return nil
}
