// Package testsupport holds fixture and golden-file helpers shared by the
// package tests.
package testsupport

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-reportgen/pkg/config"
	"github.com/goliatone/go-reportgen/pkg/form"
	"github.com/goliatone/go-reportgen/pkg/report"
)

// UpdateEnv is the environment variable that switches golden helpers into
// write mode.
const UpdateEnv = "UPDATE_GOLDENS"

// MustLoadConfig reads and parses a configuration fixture.
func MustLoadConfig(t *testing.T, path string) config.Config {
	t.Helper()

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	return cfg
}

// LoadConfig reads a configuration fixture without requiring testing.T, so
// callers can wire fixtures in setup functions.
func LoadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Config{}, errors.New("testsupport: config path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return config.Config{}, fmt.Errorf("testsupport: read config: %w", err)
	}
	return config.Parse(data, path)
}

// MustParseConfig parses an inline configuration document.
func MustParseConfig(t *testing.T, doc string) config.Config {
	t.Helper()

	cfg, err := config.Parse([]byte(doc), t.Name())
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	return cfg
}

// FilledForm renders cfg with the text compiler and applies values keyed by
// "sectionId.fieldId".
func FilledForm(t *testing.T, cfg config.Config, values map[string]string) *form.Form {
	t.Helper()

	f := report.NewForm(cfg)
	for key, value := range values {
		sectionID, fieldID, ok := strings.Cut(key, ".")
		if !ok {
			t.Fatalf("value key %q is not sectionId.fieldId", key)
		}
		if err := f.SetValue(sectionID, fieldID, value); err != nil {
			t.Fatalf("set %s: %v", key, err)
		}
	}
	return f
}

// AssertGolden compares got with the golden file at path. With UPDATE_GOLDENS
// set it rewrites the file instead.
func AssertGolden(t *testing.T, path, got string) {
	t.Helper()

	if os.Getenv(UpdateEnv) != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir golden dir: %v", err)
		}
		if err := os.WriteFile(path, []byte(got), 0o644); err != nil {
			t.Fatalf("write golden: %v", err)
		}
		return
	}

	want, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	if diff := cmp.Diff(string(want), got); diff != "" {
		t.Fatalf("%s mismatch (-want +got):\n%s", filepath.Base(path), diff)
	}
}

// CaptureTemplateOutput runs render with a buffer and fails the test unless
// the returned string and the buffer agree.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) string {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}
	if buf.String() != out {
		t.Fatalf("writer received %q, result was %q", buf.String(), out)
	}
	return out
}
