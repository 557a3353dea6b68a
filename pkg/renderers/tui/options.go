package tui

import "github.com/goliatone/go-reportgen/pkg/render"

// Theme holds optional message prefixes.
type Theme struct {
	SectionPrefix string
	InfoPrefix    string
}

// Option configures a Session.
type Option func(*Session)

// WithPromptDriver overrides the prompt driver used by the session.
func WithPromptDriver(driver PromptDriver) Option {
	return func(s *Session) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithRenderOptions supplies the locale and translator for prompt chrome.
func WithRenderOptions(opts render.RenderOptions) Option {
	return func(s *Session) {
		s.options = opts
	}
}

// WithLanguagePrompt asks for the form language before walking sections.
func WithLanguagePrompt(enabled bool) Option {
	return func(s *Session) {
		s.askLanguage = enabled
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(s *Session) {
		s.theme = theme
	}
}
