package form

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-reportgen/pkg/config"
)

var (
	// ErrUnknownSection is returned when a section id is not part of the form.
	ErrUnknownSection = errors.New("form: unknown section")
	// ErrUnknownField is returned when a field id is not part of its section.
	ErrUnknownField = errors.New("form: unknown field")
)

// Compiler turns the current form state into the human-readable report.
type Compiler func(*Form) string

// ChangeKind distinguishes value edits from inclusion toggles.
type ChangeKind string

const (
	ChangeValue    ChangeKind = "value"
	ChangeIncluded ChangeKind = "included"
)

// Change describes one user interaction applied to the form.
type Change struct {
	Kind      ChangeKind
	SectionID string
	FieldID   string
}

// Field is one rendered input control.
type Field struct {
	ID     string
	Label  string
	Kind   config.FieldKind
	Hint   string
	Value  string
	Height string

	metrics Metrics
}

// SetHeight implements Control.
func (f *Field) SetHeight(height string) { f.Height = height }

// ScrollHeight implements Control.
func (f *Field) ScrollHeight() int { return f.metrics.ContentHeight(f.Value) }

// Section is one rendered group of fields plus its inclusion toggle.
type Section struct {
	ID       string
	Title    string
	Included bool
	Fields   []*Field
}

// Field looks up a field by id.
func (s *Section) Field(id string) (*Field, bool) {
	for _, field := range s.Fields {
		if field.ID == id {
			return field, true
		}
	}
	return nil, false
}

// Surface is the report display area.
type Surface struct {
	Text   string
	Height string

	metrics Metrics
}

// SetHeight implements Control.
func (s *Surface) SetHeight(height string) { s.Height = height }

// ScrollHeight implements Control.
func (s *Surface) ScrollHeight() int { return s.metrics.ContentHeight(s.Text) }

// Form is the rendered tree for one configuration.
type Form struct {
	sections  []*Section
	report    Surface
	compiler  Compiler
	listeners []func(Change)
}

// Option configures Render.
type Option func(*Form)

// WithCompiler sets the function used to recompile the report surface.
func WithCompiler(fn Compiler) Option {
	return func(f *Form) {
		if fn != nil {
			f.compiler = fn
		}
	}
}

// WithMetrics overrides the text metrics used for auto-resizing.
func WithMetrics(m Metrics) Option {
	return func(f *Form) {
		f.report.metrics = m
		for _, section := range f.sections {
			for _, field := range section.Fields {
				field.metrics = m
			}
		}
	}
}

// Render builds a fresh form from cfg, sections and fields in configuration
// order, every section included and every value empty, then compiles the
// report once.
func Render(cfg config.Config, options ...Option) *Form {
	f := &Form{
		sections: make([]*Section, 0, len(cfg.Sections)),
		report:   Surface{metrics: DefaultMetrics},
	}
	for _, sc := range cfg.Sections {
		section := &Section{
			ID:       sc.SectionID,
			Title:    sc.Title,
			Included: true,
			Fields:   make([]*Field, 0, len(sc.Fields)),
		}
		for _, fc := range sc.Fields {
			section.Fields = append(section.Fields, &Field{
				ID:      fc.FieldID,
				Label:   fc.Label,
				Kind:    fc.Type,
				Hint:    fc.Hint,
				metrics: DefaultMetrics,
			})
		}
		f.sections = append(f.sections, section)
	}

	for _, opt := range options {
		if opt != nil {
			opt(f)
		}
	}

	f.Recompile()
	return f
}

// Sections returns the rendered sections in document order.
func (f *Form) Sections() []*Section {
	if f == nil {
		return nil
	}
	return f.sections
}

// Section looks up a section by id.
func (f *Form) Section(id string) (*Section, bool) {
	if f == nil {
		return nil, false
	}
	for _, section := range f.sections {
		if section.ID == id {
			return section, true
		}
	}
	return nil, false
}

// Field looks up a field by its section and field ids.
func (f *Form) Field(sectionID, fieldID string) (*Field, error) {
	section, ok := f.Section(sectionID)
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownSection, sectionID)
	}
	field, ok := section.Field(fieldID)
	if !ok {
		return nil, fmt.Errorf("%w %q in section %q", ErrUnknownField, fieldID, sectionID)
	}
	return field, nil
}

// SetValue applies a value edit: the control grows to fit multi-line content
// and the report is recompiled.
func (f *Form) SetValue(sectionID, fieldID, value string) error {
	field, err := f.Field(sectionID, fieldID)
	if err != nil {
		return err
	}
	field.Value = value
	if field.Kind.MultiLine() {
		AutoResize(field)
	}
	f.Recompile()
	f.notify(Change{Kind: ChangeValue, SectionID: sectionID, FieldID: fieldID})
	return nil
}

// SetIncluded toggles a section's inclusion and recompiles the report. The
// section and its values stay in the form.
func (f *Form) SetIncluded(sectionID string, included bool) error {
	section, ok := f.Section(sectionID)
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownSection, sectionID)
	}
	section.Included = included
	f.Recompile()
	f.notify(Change{Kind: ChangeIncluded, SectionID: sectionID})
	return nil
}

// Restore sets a field value without notifying listeners. Unknown ids are
// reported as false.
func (f *Form) Restore(sectionID, fieldID, value string) bool {
	field, err := f.Field(sectionID, fieldID)
	if err != nil {
		return false
	}
	field.Value = value
	if field.Kind.MultiLine() {
		AutoResize(field)
	}
	return true
}

// Recompile overwrites the report surface with a fresh compilation and
// resizes it.
func (f *Form) Recompile() {
	if f == nil || f.compiler == nil {
		return
	}
	f.report.Text = f.compiler(f)
	AutoResize(&f.report)
}

// Report returns the current report surface text.
func (f *Form) Report() string {
	if f == nil {
		return ""
	}
	return f.report.Text
}

// ReportHeight returns the report surface's style height.
func (f *Form) ReportHeight() string {
	if f == nil {
		return ""
	}
	return f.report.Height
}

// OnChange registers a listener fired after every value or inclusion change.
func (f *Form) OnChange(fn func(Change)) {
	if f == nil || fn == nil {
		return
	}
	f.listeners = append(f.listeners, fn)
}

func (f *Form) notify(change Change) {
	for _, fn := range f.listeners {
		fn(change)
	}
}
