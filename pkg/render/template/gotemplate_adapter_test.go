package template_test

import (
	"embed"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-reportgen/pkg/app"
	"github.com/goliatone/go-reportgen/pkg/render/template"
	"github.com/goliatone/go-reportgen/pkg/render/template/gotemplate"
	"github.com/goliatone/go-reportgen/pkg/testsupport"
)

//go:embed testdata/templates/*.html
var embeddedTemplates embed.FS

var _ template.TemplateRenderer = (*gotemplate.Engine)(nil)

func TestGoTemplateEngine_RenderTemplate(t *testing.T) {
	engine := newEngine(t)

	result := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("hello", map[string]any{"name": "Ada"}, w)
	})

	testsupport.AssertGolden(t, filepath.Join("testdata", "hello.golden"), result)
}

func TestGoTemplateEngine_GlobalContext(t *testing.T) {
	engine := newEngine(t)
	if err := engine.GlobalContext(map[string]any{
		"settings": map[string]any{"env": "staging"},
	}); err != nil {
		t.Fatalf("global context: %v", err)
	}

	result := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("use-global", nil, w)
	})

	testsupport.AssertGolden(t, filepath.Join("testdata", "use-global.golden"), result)
}

func TestGoTemplateEngine_RegisterFilter(t *testing.T) {
	engine := newEngine(t)
	err := engine.RegisterFilter("shout", func(input any, _ any) (any, error) {
		if input == nil {
			return "", nil
		}
		return fmt.Sprintf("%s!", strings.ToUpper(fmt.Sprint(input))), nil
	})
	if err != nil {
		t.Fatalf("register filter: %v", err)
	}
	if err := engine.RegisterFilter("shout", func(any, any) (any, error) { return nil, nil }); err == nil {
		t.Fatalf("expected duplicate filter registration to fail")
	}

	result := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("use-filter", map[string]any{"name": "Ada"}, w)
	})

	testsupport.AssertGolden(t, filepath.Join("testdata", "use-filter.golden"), result)
}

func TestGoTemplateEngine_StructData(t *testing.T) {
	engine := newEngine(t)
	view := app.View{Sections: []app.SectionView{
		{ID: "blockers", Title: " Blockers ", Fields: []app.FieldView{
			{ID: "issues", Value: "ci\nflaky"},
			{ID: "owner"},
		}},
		{ID: "next", Title: "Next"},
	}}

	result := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("section", view, w)
	})

	testsupport.AssertGolden(t, filepath.Join("testdata", "section.golden"), result)
}

func TestGoTemplateEngine_RenderString(t *testing.T) {
	engine := newEngine(t)
	got, err := engine.Render("{{ a }}-{{ b }}", map[string]any{"a": 1, "b": "two"})
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if got != "1-two" {
		t.Fatalf("unexpected output %q", got)
	}

	if _, err := engine.RenderTemplate("missing", nil); err == nil {
		t.Fatalf("expected error for missing template")
	}
}

func TestGoTemplateEngine_RequiresSource(t *testing.T) {
	if _, err := gotemplate.New(); err == nil {
		t.Fatalf("expected error without base dir or fs")
	}
}

func newEngine(t *testing.T) *gotemplate.Engine {
	t.Helper()

	templatesFS, err := fs.Sub(embeddedTemplates, "testdata/templates")
	if err != nil {
		t.Fatalf("sub fs: %v", err)
	}

	engine, err := gotemplate.New(gotemplate.WithFS(templatesFS))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

func TestGoTemplateEngine_DirAndGlobals(t *testing.T) {
	engine, err := gotemplate.New(
		gotemplate.WithDir(filepath.Join("testdata", "templates")),
		gotemplate.WithGlobals(map[string]any{
			"settings": map[string]any{"env": "staging"},
			"shoutf":   func(s string) string { return strings.ToUpper(s) },
		}),
	)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	result := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("use-global.html", nil, w)
	})
	testsupport.AssertGolden(t, filepath.Join("testdata", "use-global.golden"), result)

	got, err := engine.RenderString(`{{ shoutf("ok") }}`, nil)
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if got != "OK" {
		t.Fatalf("expected global function to be callable, got %q", got)
	}
}
