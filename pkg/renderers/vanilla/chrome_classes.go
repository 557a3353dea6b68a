package vanilla

// ChromeClass is a typed identifier for semantic page CSS classes.
type ChromeClass string

const (
	ClassPage     ChromeClass = "reportgen-page"
	ClassHeader   ChromeClass = "reportgen-header"
	ClassForm     ChromeClass = "reportgen-form"
	ClassSection  ChromeClass = "report-section"
	ClassField    ChromeClass = "reportgen-field"
	ClassHint     ChromeClass = "hint"
	ClassActions  ChromeClass = "reportgen-actions"
	ClassReport   ChromeClass = "reportgen-report"
	ClassExcluded ChromeClass = "is-excluded"
)

// ChromeClasses overrides the class applied to each page region. Empty
// entries keep the defaults.
type ChromeClasses map[ChromeClass]string

func (c ChromeClasses) resolve() map[string]string {
	defaults := []ChromeClass{
		ClassPage, ClassHeader, ClassForm, ClassSection, ClassField,
		ClassHint, ClassActions, ClassReport, ClassExcluded,
	}
	out := make(map[string]string, len(defaults))
	for _, class := range defaults {
		value := string(class)
		if override := sanitizeClassList(c[class]); override != "" {
			value = override
		}
		out[classKey(class)] = value
	}
	return out
}

func classKey(class ChromeClass) string {
	switch class {
	case ClassPage:
		return "page"
	case ClassHeader:
		return "header"
	case ClassForm:
		return "form"
	case ClassSection:
		return "section"
	case ClassField:
		return "field"
	case ClassHint:
		return "hint"
	case ClassActions:
		return "actions"
	case ClassReport:
		return "report"
	case ClassExcluded:
		return "excluded"
	default:
		return string(class)
	}
}
