package tui

import (
	"context"
	"fmt"
	"html"
	"slices"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-reportgen/pkg/app"
	"github.com/goliatone/go-reportgen/pkg/render"
)

// Editor is the slice of app.App a session drives.
type Editor interface {
	View() (app.View, error)
	Load(ctx context.Context, lang string) error
	SetValue(sectionID, fieldID, value string) (string, error)
	SetIncluded(sectionID string, included bool) (string, error)
	Generate() (string, error)
}

var _ Editor = (*app.App)(nil)

// Session walks the form interactively: an inclusion confirm per section and
// a prompt per field of every included section. Answers are applied through
// the Editor as they are given.
type Session struct {
	driver      PromptDriver
	options     render.RenderOptions
	askLanguage bool
	theme       Theme
}

// NewSession constructs a session. The survey driver is used unless
// WithPromptDriver overrides it.
func NewSession(options ...Option) *Session {
	s := &Session{}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	if s.driver == nil {
		s.driver = NewSurveyDriver(nil)
	}
	return s
}

// Run drives one pass over the form and returns the generated report.
func (s *Session) Run(ctx context.Context, editor Editor) (string, error) {
	if editor == nil {
		return "", ErrNoEditor
	}

	view, err := editor.View()
	if err != nil {
		return "", err
	}

	if s.askLanguage && len(view.Languages) > 1 {
		if view, err = s.chooseLanguage(ctx, editor, view); err != nil {
			return "", err
		}
	}

	locale := s.options.ResolveLocale(view.Language)
	for _, section := range view.Sections {
		if err := s.info(ctx, s.theme.SectionPrefix+section.Title); err != nil {
			return "", err
		}

		included, err := s.driver.Confirm(ctx, ConfirmConfig{
			Message: s.includeMessage(locale, section.Title),
			Default: section.Included,
		})
		if err != nil {
			return "", err
		}
		if included != section.Included {
			if _, err := editor.SetIncluded(section.ID, included); err != nil {
				return "", err
			}
		}
		if !included {
			continue
		}

		for _, field := range section.Fields {
			value, err := s.promptField(ctx, field)
			if err != nil {
				return "", err
			}
			if value == field.Value {
				continue
			}
			if _, err := editor.SetValue(section.ID, field.ID, value); err != nil {
				return "", err
			}
		}
	}

	report, err := editor.Generate()
	if err != nil {
		return "", err
	}
	if err := s.info(ctx, s.options.Text(locale, "tui.done", "Report ready")); err != nil {
		return "", err
	}
	if err := s.info(ctx, report); err != nil {
		return "", err
	}
	return report, nil
}

func (s *Session) chooseLanguage(ctx context.Context, editor Editor, view app.View) (app.View, error) {
	current := slices.Index(view.Languages, view.Language)
	locale := s.options.ResolveLocale(view.Language)
	idx, err := s.driver.Select(ctx, SelectConfig{
		Message:      s.options.Text(locale, "page.language", "Language"),
		Options:      view.Languages,
		DefaultIndex: current,
	})
	if err != nil {
		return view, err
	}
	if idx < 0 || idx >= len(view.Languages) || idx == current {
		return view, nil
	}
	if err := editor.Load(ctx, view.Languages[idx]); err != nil {
		return view, err
	}
	return editor.View()
}

func (s *Session) promptField(ctx context.Context, field app.FieldView) (string, error) {
	help := plainHint(field.Hint)
	if field.MultiLine {
		return s.driver.TextArea(ctx, TextAreaConfig{
			Message: field.Label,
			Default: field.Value,
			Help:    help,
		})
	}
	return s.driver.Input(ctx, InputConfig{
		Message: field.Label,
		Default: field.Value,
		Help:    help,
	})
}

func (s *Session) includeMessage(locale, title string) string {
	if t := s.options.Translator; t != nil {
		msg, err := t.Translate(locale, "tui.include", map[string]any{"Title": title})
		if err == nil && strings.TrimSpace(msg) != "" {
			return msg
		}
	}
	return fmt.Sprintf("Include section %q?", title)
}

func (s *Session) info(ctx context.Context, msg string) error {
	return s.driver.Info(ctx, s.theme.InfoPrefix+msg)
}

var (
	plainPolicyOnce sync.Once
	plainPolicy     *bluemonday.Policy
)

// plainHint strips markup from a hint for terminal display.
func plainHint(raw string) string {
	plainPolicyOnce.Do(func() {
		plainPolicy = bluemonday.StrictPolicy()
	})
	return strings.TrimSpace(html.UnescapeString(plainPolicy.Sanitize(raw)))
}
