package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-reportgen/pkg/render"
	"github.com/goliatone/go-reportgen/pkg/renderers/tui"
)

func newFillCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fill",
		Short: "Fill in the report interactively in the terminal",
		RunE:  runFill,
	}
	cmd.Flags().Bool("choose-language", false, "ask for the report language first")
	return cmd
}

func runFill(cmd *cobra.Command, _ []string) error {
	rt, err := setup(cmd)
	if err != nil {
		return err
	}
	ctx := rt.logger.WithContext(cmd.Context())
	defer rt.close(context.WithoutCancel(ctx))

	translator, err := render.NewBundleTranslator(nil)
	if err != nil {
		return fmt.Errorf("failed to load translations: %w", err)
	}
	askLanguage, _ := cmd.Flags().GetBool("choose-language")

	session := tui.NewSession(
		tui.WithPromptDriver(tui.NewSurveyDriver(os.Stdout)),
		tui.WithRenderOptions(render.RenderOptions{Translator: translator}),
		tui.WithLanguagePrompt(askLanguage),
	)
	if _, err := session.Run(ctx, rt.app); err != nil {
		if errors.Is(err, tui.ErrAborted) {
			rt.logger.Info().Msg("fill aborted, progress kept")
			return nil
		}
		return err
	}
	return nil
}
