package report

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-reportgen/pkg/config"
	"github.com/goliatone/go-reportgen/pkg/form"
)

// Text compiles the human-readable report. Excluded sections are skipped and
// do not consume a number; included sections are numbered from 1.
func Text(f *form.Form) string {
	var b strings.Builder
	n := 1
	for _, section := range f.Sections() {
		if !section.Included {
			continue
		}
		b.WriteString(strconv.Itoa(n))
		b.WriteString(". ")
		b.WriteString(section.Title)
		b.WriteString("\n\n")
		n++

		for _, field := range section.Fields {
			b.WriteString(field.Label)
			b.WriteString(": \n ")
			b.WriteString(field.Value)
			b.WriteByte('\n')
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// NewForm renders cfg with Text wired as the report compiler.
func NewForm(cfg config.Config, options ...form.Option) *form.Form {
	opts := append([]form.Option{form.WithCompiler(Text)}, options...)
	return form.Render(cfg, opts...)
}
