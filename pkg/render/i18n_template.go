package render

import "strings"

// TemplateI18nConfig configures template-level translation helpers.
type TemplateI18nConfig struct {
	// FuncName customizes the translator helper name (defaults to
	// "translate").
	FuncName string
	// OnMissing controls the string returned when a translation is missing.
	OnMissing MissingTranslationHandler
}

// TemplateI18nFuncs returns helpers suitable for a template engine's global
// context. The main helper signature is:
//
//	translate(locale, key, fallback) string
func TemplateI18nFuncs(t Translator, cfg TemplateI18nConfig) map[string]any {
	name := strings.TrimSpace(cfg.FuncName)
	if name == "" {
		name = "translate"
	}

	onMissing := cfg.OnMissing
	if onMissing == nil {
		onMissing = missingTranslationDefault
	}

	return map[string]any{
		name: func(locale, key, fallback string) string {
			key = strings.TrimSpace(key)
			if key == "" {
				return fallback
			}
			args := []any{map[string]any{"default": fallback}}
			if t == nil {
				return onMissing(locale, key, args, ErrMissingTranslator)
			}
			msg, err := t.Translate(locale, key)
			if err != nil || strings.TrimSpace(msg) == "" {
				return onMissing(locale, key, args, err)
			}
			return msg
		},
	}
}
