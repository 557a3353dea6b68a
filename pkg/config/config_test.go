package config

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParse_JSON(t *testing.T) {
	data := []byte(`{
  "sections": [
    {"sectionId": "intro", "title": "Introduction", "fields": [
      {"fieldId": "did", "label": "Did", "type": "textarea", "hint": "What shipped?"},
      {"fieldId": "who", "label": "Who"}
    ]}
  ]
}`)

	got, err := Parse(data, "intro.json")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	want := Config{Sections: []SectionConfig{{
		SectionID: "intro",
		Title:     "Introduction",
		Fields: []FieldConfig{
			{FieldID: "did", Label: "Did", Type: FieldKindTextArea, Hint: "What shipped?"},
			{FieldID: "who", Label: "Who", Type: FieldKindInput},
		},
	}}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_YAMLFallback(t *testing.T) {
	data := []byte(`
sections:
  - sectionId: blockers
    title: Blockers
    fields:
      - fieldId: list
        label: List
        type: TextArea
`)

	got, err := Parse(data, "blockers.yaml")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(got.Sections) != 1 || got.Sections[0].SectionID != "blockers" {
		t.Fatalf("unexpected sections: %+v", got.Sections)
	}
	if kind := got.Sections[0].Fields[0].Type; kind != "TextArea" || !kind.MultiLine() {
		t.Fatalf("expected verbatim multi-line kind, got %q", kind)
	}
}

func TestParse_Empty(t *testing.T) {
	if _, err := Parse([]byte("  \n"), "empty.json"); err == nil {
		t.Fatalf("expected error for empty document")
	}
}

func TestParse_Garbage(t *testing.T) {
	_, err := Parse([]byte("{not: [valid"), "garbage.json")
	if err == nil || !strings.Contains(err.Error(), "garbage.json") {
		t.Fatalf("expected parse error naming the source, got %v", err)
	}
}

func TestValidate_IdentityKeys(t *testing.T) {
	cfg := Config{Sections: []SectionConfig{
		{SectionID: "a", Fields: []FieldConfig{{FieldID: "x"}, {FieldID: "x"}, {FieldID: ""}}},
		{SectionID: "a"},
		{SectionID: ""},
		{SectionID: "has space", Fields: []FieldConfig{{FieldID: "tab\tbed"}}},
	}}

	err := cfg.Validate()
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}

	want := []string{
		`section a: duplicate fieldId "x"`,
		"section a: field 2 has no fieldId",
		`duplicate sectionId "a"`,
		"section 2 has no sectionId",
		`section "has space": sectionId contains whitespace`,
		`section has space: fieldId "tab\tbed" contains whitespace`,
	}
	if diff := cmp.Diff(want, verr.Issues); diff != "" {
		t.Fatalf("issues mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_Valid(t *testing.T) {
	cfg := Config{Sections: []SectionConfig{
		{SectionID: "a", Fields: []FieldConfig{{FieldID: "x"}, {FieldID: "y"}}},
		{SectionID: "b", Fields: []FieldConfig{{FieldID: "x"}}},
	}}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestCatalog_Resolve(t *testing.T) {
	catalog := NewCatalog(map[string]Source{
		"en": SourceFromFS("en.json"),
		"FR": SourceFromFS("fr.json"),
	})

	src, ok := catalog.Resolve(" En ")
	if !ok || src.Location() != "en.json" || src.Kind() != SourceKindFS {
		t.Fatalf("unexpected en source: %v %v", src, ok)
	}
	if _, ok := catalog.Resolve("fr"); !ok {
		t.Fatalf("expected fr to resolve")
	}
	if _, ok := catalog.Resolve("de"); ok {
		t.Fatalf("expected unknown code to yield no source")
	}
	if diff := cmp.Diff([]string{"en", "fr"}, catalog.Languages()); diff != "" {
		t.Fatalf("languages mismatch (-want +got):\n%s", diff)
	}
}

func TestParseURLSource(t *testing.T) {
	src, err := ParseURLSource("https://example.com/configs/en.json")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if src.Kind() != SourceKindURL || src.Location() != "https://example.com/configs/en.json" {
		t.Fatalf("unexpected source %v", src)
	}

	for _, raw := range []string{"", "http://[::1/en.json", "ftp://example.com/en.json", "/configs/en.json"} {
		if _, err := ParseURLSource(raw); err == nil {
			t.Fatalf("expected %q to be rejected", raw)
		}
	}
}
