package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-reportgen/pkg/form"
)

// ErrInvalidReport marks input that is not a usable structured report.
var ErrInvalidReport = errors.New("report: invalid structured report")

// Structured is the serialisable snapshot of every field value keyed by
// section and field identity. Inclusion flags are not recorded.
type Structured struct {
	Sections map[string]SectionValues `json:"sections"`
}

// SectionValues holds the field values of one section.
type SectionValues struct {
	Fields map[string]string `json:"fields"`
}

// Build scans every section of the form, included or not.
func Build(f *form.Form) Structured {
	out := Structured{Sections: make(map[string]SectionValues)}
	for _, section := range f.Sections() {
		values := SectionValues{Fields: make(map[string]string, len(section.Fields))}
		for _, field := range section.Fields {
			values.Fields[field.ID] = field.Value
		}
		out.Sections[section.ID] = values
	}
	return out
}

// Marshal serialises a structured report. Map keys are emitted sorted, so the
// same values always produce the same bytes.
func Marshal(s Structured) (string, error) {
	if s.Sections == nil {
		s.Sections = map[string]SectionValues{}
	}
	data, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("report: marshal structured report: %w", err)
	}
	return string(data), nil
}

// Unmarshal parses a serialised structured report.
func Unmarshal(data string) (Structured, error) {
	if strings.TrimSpace(data) == "" {
		return Structured{}, fmt.Errorf("%w: empty input", ErrInvalidReport)
	}
	var out Structured
	if err := json.Unmarshal([]byte(data), &out); err != nil {
		return Structured{}, fmt.Errorf("%w: %w", ErrInvalidReport, err)
	}
	if out.Sections == nil {
		out.Sections = map[string]SectionValues{}
	}
	return out, nil
}

// Snapshot builds and serialises the structured report of f.
func Snapshot(f *form.Form) (string, error) {
	return Marshal(Build(f))
}
