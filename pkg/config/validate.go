package config

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// ErrInvalidConfig is matched by every validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// ValidationError lists every identity problem found in a configuration.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Issues) == 0 {
		return ErrInvalidConfig.Error()
	}
	return ErrInvalidConfig.Error() + ": " + strings.Join(e.Issues, "; ")
}

// Is lets errors.Is match ErrInvalidConfig.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidConfig
}

// Validate rejects configurations whose identity keys cannot serve as stable
// serialization keys: missing, duplicated, or containing whitespace.
func (c Config) Validate() error {
	var issues []string

	sectionIDs := make(map[string]struct{}, len(c.Sections))
	for i, section := range c.Sections {
		sid := section.SectionID
		switch {
		case sid == "":
			issues = append(issues, fmt.Sprintf("section %d has no sectionId", i))
		case hasSpace(sid):
			issues = append(issues, fmt.Sprintf("section %q: sectionId contains whitespace", sid))
		default:
			if _, exists := sectionIDs[sid]; exists {
				issues = append(issues, fmt.Sprintf("duplicate sectionId %q", sid))
			}
			sectionIDs[sid] = struct{}{}
		}

		label := sid
		if label == "" {
			label = fmt.Sprintf("#%d", i)
		}
		fieldIDs := make(map[string]struct{}, len(section.Fields))
		for j, field := range section.Fields {
			fid := field.FieldID
			switch {
			case fid == "":
				issues = append(issues, fmt.Sprintf("section %s: field %d has no fieldId", label, j))
			case hasSpace(fid):
				issues = append(issues, fmt.Sprintf("section %s: fieldId %q contains whitespace", label, fid))
			default:
				if _, exists := fieldIDs[fid]; exists {
					issues = append(issues, fmt.Sprintf("section %s: duplicate fieldId %q", label, fid))
				}
				fieldIDs[fid] = struct{}{}
			}
		}
	}

	if len(issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: issues}
}

func hasSpace(s string) bool {
	return strings.IndexFunc(s, unicode.IsSpace) >= 0
}
