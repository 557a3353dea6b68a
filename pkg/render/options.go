package render

import theme "github.com/goliatone/go-theme"

// RenderOptions describe per-request data that renderers can use to customise
// their output without touching the form.
type RenderOptions struct {
	// Locale selects UI chrome strings. Falls back to the view's language.
	Locale string
	// Translator resolves UI chrome strings such as button labels. Nil keeps
	// the built-in English fallbacks.
	Translator Translator
	// OnMissing decides what is shown when a chrome string has no
	// translation.
	OnMissing MissingTranslationHandler
	// Theme carries resolved go-theme tokens and partial overrides.
	Theme *theme.RendererConfig
}

// ResolveLocale returns the explicit locale, or lang when none was set.
func (o RenderOptions) ResolveLocale(lang string) string {
	if o.Locale != "" {
		return o.Locale
	}
	return lang
}
