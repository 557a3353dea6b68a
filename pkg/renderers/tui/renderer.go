package tui

import (
	"context"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/goliatone/go-reportgen/pkg/app"
	"github.com/goliatone/go-reportgen/pkg/render"
)

// Renderer prints a plain-text outline of the form followed by the report.
// Field values line up per section by terminal display width.
type Renderer struct{}

var _ render.Renderer = Renderer{}

func (Renderer) Name() string {
	return "text"
}

func (Renderer) ContentType() string {
	return "text/plain; charset=utf-8"
}

func (Renderer) Render(ctx context.Context, view app.View, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	locale := options.ResolveLocale(view.Language)

	var b strings.Builder
	b.WriteString(options.Text(locale, "page.title", "Weekly report"))
	b.WriteString(" [")
	b.WriteString(view.Language)
	b.WriteString("]\n\n")

	for _, section := range view.Sections {
		if section.Included {
			b.WriteString("[x] ")
		} else {
			b.WriteString("[ ] ")
		}
		b.WriteString(section.Title)
		b.WriteByte('\n')
		width := 0
		for _, field := range section.Fields {
			width = max(width, runewidth.StringWidth(field.Label)+1)
		}
		indent := "\n" + strings.Repeat(" ", 4+width+1)
		for _, field := range section.Fields {
			line := runewidth.FillRight(field.Label+":", width) + " " + strings.ReplaceAll(field.Value, "\n", indent)
			b.WriteString("    ")
			b.WriteString(strings.TrimRight(line, " "))
			b.WriteByte('\n')
		}
	}

	b.WriteString("\n")
	b.WriteString(options.Text(locale, "report.heading", "Report"))
	b.WriteString(":\n")
	b.WriteString(view.Report)
	return []byte(b.String()), nil
}
