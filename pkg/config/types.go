package config

import "strings"

// FieldKind names the input control a field renders as. The value is taken
// verbatim from the configuration.
type FieldKind string

const (
	// FieldKindTextArea renders a multi-line, auto-growing control.
	FieldKindTextArea FieldKind = "textarea"
	// FieldKindInput renders a single-line control.
	FieldKindInput FieldKind = "input"
)

// MultiLine reports whether the kind renders as a multi-line control.
func (k FieldKind) MultiLine() bool {
	return strings.EqualFold(strings.TrimSpace(string(k)), string(FieldKindTextArea))
}

// Config is the document describing every section of a report form. It is
// treated as immutable once loaded.
type Config struct {
	Sections []SectionConfig `json:"sections" yaml:"sections"`
}

// SectionConfig describes one independently includable group of fields.
type SectionConfig struct {
	SectionID string        `json:"sectionId" yaml:"sectionId"`
	Title     string        `json:"title" yaml:"title"`
	Fields    []FieldConfig `json:"fields" yaml:"fields"`
}

// FieldConfig describes a single labeled, editable value.
type FieldConfig struct {
	FieldID string    `json:"fieldId" yaml:"fieldId"`
	Label   string    `json:"label" yaml:"label"`
	Type    FieldKind `json:"type" yaml:"type"`
	Hint    string    `json:"hint,omitempty" yaml:"hint,omitempty"`
}

// Section returns the section with the given identity key.
func (c Config) Section(id string) (SectionConfig, bool) {
	for _, section := range c.Sections {
		if section.SectionID == id {
			return section, true
		}
	}
	return SectionConfig{}, false
}

// Field returns the field with the given identity key.
func (s SectionConfig) Field(id string) (FieldConfig, bool) {
	for _, field := range s.Fields {
		if field.FieldID == id {
			return field, true
		}
	}
	return FieldConfig{}, false
}

// normalize trims identity keys and fills the default field kind. Other
// kinds are kept as written.
func (c *Config) normalize() {
	for i := range c.Sections {
		section := &c.Sections[i]
		section.SectionID = strings.TrimSpace(section.SectionID)
		for j := range section.Fields {
			field := &section.Fields[j]
			field.FieldID = strings.TrimSpace(field.FieldID)
			if strings.TrimSpace(string(field.Type)) == "" {
				field.Type = FieldKindInput
			}
		}
	}
}
