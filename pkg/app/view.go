package app

// View is a read-only copy of the rendered form for renderers.
type View struct {
	Language     string
	Languages    []string
	Sections     []SectionView
	Report       string
	ReportHeight string
}

// SectionView mirrors a rendered section.
type SectionView struct {
	ID       string
	Title    string
	Included bool
	Fields   []FieldView
}

// FieldView mirrors a rendered field.
type FieldView struct {
	ID        string
	Label     string
	Kind      string
	MultiLine bool
	Hint      string
	Value     string
	Height    string
}

// View copies the current form state. It fails with ErrNoForm before the
// first successful load.
func (a *App) View() (View, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.form == nil {
		return View{}, ErrNoForm
	}

	view := View{
		Language:     a.language,
		Languages:    a.catalog.Languages(),
		Report:       a.form.Report(),
		ReportHeight: a.form.ReportHeight(),
	}
	for _, section := range a.form.Sections() {
		sv := SectionView{
			ID:       section.ID,
			Title:    section.Title,
			Included: section.Included,
			Fields:   make([]FieldView, 0, len(section.Fields)),
		}
		for _, field := range section.Fields {
			sv.Fields = append(sv.Fields, FieldView{
				ID:        field.ID,
				Label:     field.Label,
				Kind:      string(field.Kind),
				MultiLine: field.Kind.MultiLine(),
				Hint:      field.Hint,
				Value:     field.Value,
				Height:    field.Height,
			})
		}
		view.Sections = append(view.Sections, sv)
	}
	return view, nil
}
