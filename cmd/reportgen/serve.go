package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	reportgen "github.com/goliatone/go-reportgen"
	"github.com/goliatone/go-reportgen/pkg/render"
	"github.com/goliatone/go-reportgen/pkg/renderers/tui"
	"github.com/goliatone/go-reportgen/pkg/renderers/vanilla"
	"github.com/goliatone/go-reportgen/pkg/server"
)

func newServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the report form over HTTP",
		RunE:  runServe,
	}
	cmd.Flags().String("addr", "", "listen address (default :8080)")
	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	rt, err := setup(cmd)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithCancel(rt.logger.WithContext(cmd.Context()))
	defer cancel()
	defer rt.close(context.WithoutCancel(ctx))

	translator, err := render.NewBundleTranslator(nil)
	if err != nil {
		return fmt.Errorf("failed to load translations: %w", err)
	}
	page, err := vanilla.New()
	if err != nil {
		return fmt.Errorf("failed to create page renderer: %w", err)
	}
	registry, err := render.NewRegistry(page, tui.Renderer{})
	if err != nil {
		return err
	}

	webAPI, err := server.NewWebAPI(rt.logger, server.Config{
		Addr:            rt.settings.Server.Addr,
		ShutdownTimeout: rt.settings.Server.ShutdownTimeout,
		Dependencies: server.Dependencies{
			App:           rt.app,
			Renderers:     registry,
			RendererName:  page.Name(),
			RenderOptions: render.RenderOptions{Translator: translator},
			Assets:        reportgen.EmbeddedAssets(),
			Version:       version,
		},
	})
	if err != nil {
		return err
	}

	stop := startAutosave(ctx, rt)
	defer stop()

	return webAPI.Start(ctx)
}

// startAutosave runs the persistence loop until the returned stop func is
// called. stop blocks until the loop has returned, so the store can be
// closed afterwards.
func startAutosave(ctx context.Context, rt *runtime) (stop func()) {
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := rt.app.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			rt.logger.Error().Err(err).Msg("autosave loop stopped")
		}
	}()
	return func() {
		cancel()
		<-done
	}
}
