package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-reportgen/pkg/app"
	"github.com/goliatone/go-reportgen/pkg/render"
	"github.com/goliatone/go-reportgen/pkg/renderers/tui"
	"github.com/goliatone/go-reportgen/pkg/renderers/vanilla"
)

const (
	formatText       = "text"
	formatStructured = "structured"
	formatHTML       = "html"
	formatOutline    = "outline"
)

func newCompileCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compile",
		Short: "Print the compiled report from stored or imported values",
		RunE:  runCompile,
	}
	cmd.Flags().StringP("input", "i", "", "structured report JSON to import first (- for stdin)")
	cmd.Flags().StringP("output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringP("format", "f", formatText, "output format: text, structured, html or outline")
	return cmd
}

func runCompile(cmd *cobra.Command, _ []string) error {
	rt, err := setup(cmd)
	if err != nil {
		return err
	}
	ctx := rt.logger.WithContext(cmd.Context())
	defer rt.close(ctx)

	input, _ := cmd.Flags().GetString("input")
	output, _ := cmd.Flags().GetString("output")
	format, _ := cmd.Flags().GetString("format")

	if input != "" {
		data, err := readInput(cmd.InOrStdin(), input)
		if err != nil {
			return err
		}
		restored, err := rt.app.Import(ctx, string(data))
		if err != nil {
			return fmt.Errorf("failed to import %s: %w", input, err)
		}
		rt.logger.Info().Int("restored", restored).Msg("structured report imported")
	}

	out, err := compileOutput(cmd, rt.app, format)
	if err != nil {
		return err
	}

	if output == "" {
		_, err = cmd.OutOrStdout().Write(out)
		return err
	}
	if err := os.WriteFile(output, out, 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	rt.logger.Info().Str("path", output).Msg("report written")
	return nil
}

func compileOutput(cmd *cobra.Command, a *app.App, format string) ([]byte, error) {
	switch format {
	case formatText:
		text, err := a.Generate()
		return []byte(text), err
	case formatStructured:
		snapshot, ok := a.Snapshot()
		if !ok {
			return nil, app.ErrNoForm
		}
		return []byte(snapshot + "\n"), nil
	case formatHTML, formatOutline:
		view, err := a.View()
		if err != nil {
			return nil, err
		}
		translator, err := render.NewBundleTranslator(nil)
		if err != nil {
			return nil, err
		}
		page, err := vanilla.New()
		if err != nil {
			return nil, err
		}
		registry, err := render.NewRegistry(page, tui.Renderer{})
		if err != nil {
			return nil, err
		}
		name := page.Name()
		if format == formatOutline {
			name = tui.Renderer{}.Name()
		}
		out, _, err := registry.Render(cmd.Context(), name, view, render.RenderOptions{Translator: translator})
		return out, err
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}
