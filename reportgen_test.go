package reportgen

import (
	"context"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-reportgen/pkg/app"
	"github.com/goliatone/go-reportgen/pkg/config"
)

func loadEmbedded(t *testing.T, lang string) config.Config {
	t.Helper()
	src, ok := DefaultCatalog().Resolve(lang)
	if !ok {
		t.Fatalf("no embedded config for %q", lang)
	}
	cfg, err := NewLoader().Load(context.Background(), src)
	if err != nil {
		t.Fatalf("load %s: %v", lang, err)
	}
	return cfg
}

func identityKeys(cfg config.Config) []string {
	var keys []string
	for _, section := range cfg.Sections {
		for _, field := range section.Fields {
			keys = append(keys, section.SectionID+"."+field.FieldID)
		}
	}
	return keys
}

func TestEmbeddedConfigsShareIdentityKeys(t *testing.T) {
	en := loadEmbedded(t, "en")
	fr := loadEmbedded(t, "fr")

	if len(en.Sections) == 0 {
		t.Fatalf("expected sections in the english config")
	}
	if diff := cmp.Diff(identityKeys(en), identityKeys(fr)); diff != "" {
		t.Fatalf("identity keys differ across languages (-en +fr):\n%s", diff)
	}
	if en.Sections[0].Title == fr.Sections[0].Title {
		t.Fatalf("expected translated titles, both are %q", en.Sections[0].Title)
	}
}

func TestConfigFSListsEveryLanguage(t *testing.T) {
	for lang, name := range ConfigFiles {
		if _, err := fs.Stat(ConfigFS(), name); err != nil {
			t.Fatalf("%s: %v", lang, err)
		}
	}
	if diff := cmp.Diff([]string{"en", "fr"}, DefaultCatalog().Languages()); diff != "" {
		t.Fatalf("languages mismatch (-want +got):\n%s", diff)
	}
}

func TestCatalogFromLocation_Directory(t *testing.T) {
	dir := t.TempDir()
	data, err := fs.ReadFile(ConfigFS(), ConfigFiles["en"])
	if err != nil {
		t.Fatalf("read embedded: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, ConfigFiles["en"]), data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	catalog, err := CatalogFromLocation(dir)
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	src, ok := catalog.Resolve("en")
	if !ok || src.Kind() != config.SourceKindFile {
		t.Fatalf("expected file source, got %v %v", src, ok)
	}
	cfg, err := NewLoader().Load(context.Background(), src)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(loadEmbedded(t, "en"), cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestCatalogFromLocation_URL(t *testing.T) {
	server := httptest.NewServer(http.FileServerFS(ConfigFS()))
	defer server.Close()

	catalog, err := CatalogFromLocation(server.URL + "/")
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	src, ok := catalog.Resolve("fr")
	if !ok || src.Kind() != config.SourceKindURL {
		t.Fatalf("expected url source, got %v %v", src, ok)
	}
	cfg, err := LoaderForLocation(server.URL, time.Second).Load(context.Background(), src)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Sections[0].Title != "Réalisations" {
		t.Fatalf("unexpected title %q", cfg.Sections[0].Title)
	}
}

func TestNewApp_LoadsDefaultLanguage(t *testing.T) {
	a, err := NewApp()
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	if err := a.Load(context.Background(), DefaultLanguage); err != nil {
		t.Fatalf("load: %v", err)
	}
	text, err := a.SetValue("blockers", "issues", "CI is flaky")
	if err != nil {
		t.Fatalf("set value: %v", err)
	}
	want := "3. Blockers\n\nIssues: \n CI is flaky\n\n"
	if !strings.Contains(text, want) {
		t.Fatalf("report missing %q:\n%s", want, text)
	}
}

func TestCatalogFromLocation_InvalidURL(t *testing.T) {
	if _, err := CatalogFromLocation("http://[::1"); err == nil {
		t.Fatalf("expected malformed url to be rejected")
	}
}

func TestNewApp_RemoteLocation(t *testing.T) {
	server := httptest.NewServer(http.FileServerFS(ConfigFS()))
	defer server.Close()

	catalog, err := CatalogFromLocation(server.URL)
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	a, err := NewApp(
		app.WithCatalog(catalog),
		app.WithLoader(LoaderForLocation(server.URL, time.Second)),
	)
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	if err := a.Load(context.Background(), "fr"); err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := a.Language(); got != "fr" {
		t.Fatalf("expected fr to be loaded, got %q", got)
	}
}
