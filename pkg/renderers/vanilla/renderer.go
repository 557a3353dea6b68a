package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-reportgen/pkg/app"
	"github.com/goliatone/go-reportgen/pkg/render"
	rendertemplate "github.com/goliatone/go-reportgen/pkg/render/template"
	gotemplate "github.com/goliatone/go-reportgen/pkg/render/template/gotemplate"
)

// Option configures the renderer.
type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	assetBase        string
	apiBase          string
	classes          ChromeClasses
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS. It must
// contain templates/page.html unless a theme partial points elsewhere.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithAssetBase sets the URL prefix the stylesheet and script are served
// under. Defaults to "/assets/".
func WithAssetBase(prefix string) Option {
	return func(cfg *config) {
		if prefix = strings.TrimSpace(prefix); prefix != "" {
			cfg.assetBase = strings.TrimRight(prefix, "/") + "/"
		}
	}
}

// WithAPIBase sets the URL prefix the page script calls. Defaults to "/api".
func WithAPIBase(prefix string) Option {
	return func(cfg *config) {
		if prefix = strings.TrimSpace(prefix); prefix != "" {
			cfg.apiBase = strings.TrimRight(prefix, "/")
		}
	}
}

// WithChromeClasses overrides page region classes.
func WithChromeClasses(classes ChromeClasses) Option {
	return func(cfg *config) {
		cfg.classes = classes
	}
}

// Renderer renders the report form as a standalone HTML page.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
	assetBase string
	apiBase   string
	classes   map[string]string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{
		templateFS: TemplatesFS(),
		assetBase:  "/assets/",
		apiBase:    "/api",
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".html"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{
		templates: renderer,
		assetBase: cfg.assetBase,
		apiBase:   cfg.apiBase,
		classes:   cfg.classes.resolve(),
	}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render produces the page for view. Hints are sanitised; every other value
// is escaped by the template.
func (r *Renderer) Render(ctx context.Context, view app.View, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	name := PageTemplate
	if options.Theme != nil {
		if partial := strings.TrimSpace(options.Theme.Partials["page"]); partial != "" {
			name = partial
		}
	}

	result, err := r.templates.RenderTemplate(name, r.pageData(view, options))
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}

func (r *Renderer) pageData(view app.View, options render.RenderOptions) map[string]any {
	locale := options.ResolveLocale(view.Language)

	sections := make([]map[string]any, 0, len(view.Sections))
	for _, section := range view.Sections {
		fields := make([]map[string]any, 0, len(section.Fields))
		for _, field := range section.Fields {
			fields = append(fields, map[string]any{
				"id":        field.ID,
				"control":   controlID(section.ID, field.ID),
				"label":     field.Label,
				"kind":      field.Kind,
				"multiline": field.MultiLine,
				"hint":      sanitizeHint(field.Hint),
				"value":     field.Value,
				"height":    field.Height,
			})
		}
		sections = append(sections, map[string]any{
			"id":       section.ID,
			"title":    section.Title,
			"included": section.Included,
			"fields":   fields,
		})
	}

	data := render.TemplateI18nFuncs(options.Translator, render.TemplateI18nConfig{OnMissing: options.OnMissing})
	for key, value := range map[string]any{
		"locale":       locale,
		"language":     view.Language,
		"languages":    view.Languages,
		"sections":     sections,
		"report":       view.Report,
		"reportHeight": view.ReportHeight,
		"apiBase":      r.apiBase,
		"classes":      r.classes,
		"theme":        themeContext(options.Theme),
		"assets": map[string]any{
			"stylesheet": r.assetURL(options.Theme, StylesheetName),
			"script":     r.assetURL(options.Theme, ScriptName),
		},
		"text": map[string]any{
			"title":    options.Text(locale, "page.title", "Weekly report"),
			"language": options.Text(locale, "page.language", "Language"),
			"include":  options.Text(locale, "section.include", "Include in report"),
			"generate": options.Text(locale, "report.generate", "Generate report"),
			"report":   options.Text(locale, "report.heading", "Report"),
		},
	} {
		data[key] = value
	}
	return data
}

func (r *Renderer) assetURL(cfg *theme.RendererConfig, name string) string {
	if cfg != nil && cfg.AssetURL != nil {
		if resolved := cfg.AssetURL(name); resolved != "" {
			return resolved
		}
	}
	return r.assetBase + name
}

func themeContext(cfg *theme.RendererConfig) map[string]any {
	if cfg == nil {
		return map[string]any{}
	}
	return map[string]any{
		"name":         cfg.Theme,
		"variant":      cfg.Variant,
		"cssVarsStyle": cssVarsStyle(cfg.CSSVars),
	}
}
