package render

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"sync"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var embeddedLocales embed.FS

// ErrMissingTranslator is passed to OnMissing when no translator is set.
var ErrMissingTranslator = errors.New("render: translator is nil")

// Translator resolves a message key for a locale. Args, when present, carry
// template data for the message.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// MissingTranslationHandler returns the text shown when key has no
// translation for locale.
type MissingTranslationHandler func(locale, key string, args []any, err error) string

// Text resolves key with the options' translator, falling back to fallback
// and finally to the key itself.
func (o RenderOptions) Text(locale, key, fallback string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return fallback
	}
	if o.Translator != nil {
		msg, err := o.Translator.Translate(locale, key)
		if err == nil && strings.TrimSpace(msg) != "" {
			return msg
		}
		if o.OnMissing != nil {
			return o.OnMissing(locale, key, nil, err)
		}
	} else if o.OnMissing != nil {
		return o.OnMissing(locale, key, nil, ErrMissingTranslator)
	}
	if strings.TrimSpace(fallback) != "" {
		return fallback
	}
	return key
}

func missingTranslationDefault(_ string, key string, args []any, _ error) string {
	for _, arg := range args {
		if m, ok := arg.(map[string]any); ok {
			if def, ok := m["default"].(string); ok && strings.TrimSpace(def) != "" {
				return def
			}
		}
	}
	return key
}

// BundleTranslator implements Translator on top of a go-i18n bundle.
type BundleTranslator struct {
	bundle *i18n.Bundle

	mu         sync.Mutex
	localizers map[string]*i18n.Localizer
}

var _ Translator = (*BundleTranslator)(nil)

// NewBundleTranslator loads every *.json message file in files. A nil files
// uses the built-in en/fr UI strings. English is the fallback language.
func NewBundleTranslator(files fs.FS) (*BundleTranslator, error) {
	if files == nil {
		sub, err := fs.Sub(embeddedLocales, "locales")
		if err != nil {
			return nil, fmt.Errorf("render: locales: %w", err)
		}
		files = sub
	}

	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	names, err := fs.Glob(files, "*.json")
	if err != nil {
		return nil, fmt.Errorf("render: list message files: %w", err)
	}
	if len(names) == 0 {
		return nil, errors.New("render: no message files found")
	}
	for _, name := range names {
		data, err := fs.ReadFile(files, name)
		if err != nil {
			return nil, fmt.Errorf("render: read %s: %w", name, err)
		}
		if _, err := bundle.ParseMessageFileBytes(data, path.Base(name)); err != nil {
			return nil, fmt.Errorf("render: parse %s: %w", name, err)
		}
	}

	return &BundleTranslator{
		bundle:     bundle,
		localizers: make(map[string]*i18n.Localizer),
	}, nil
}

// Languages lists the languages with loaded message files.
func (t *BundleTranslator) Languages() []string {
	tags := t.bundle.LanguageTags()
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		out = append(out, tag.String())
	}
	return out
}

// Translate localizes key. The first map argument, if any, is used as
// template data.
func (t *BundleTranslator) Translate(locale, key string, args ...any) (string, error) {
	cfg := &i18n.LocalizeConfig{MessageID: key}
	for _, arg := range args {
		if data, ok := arg.(map[string]any); ok {
			cfg.TemplateData = data
			break
		}
	}
	return t.localizer(locale).Localize(cfg)
}

func (t *BundleTranslator) localizer(locale string) *i18n.Localizer {
	locale = strings.ToLower(strings.TrimSpace(locale))

	t.mu.Lock()
	defer t.mu.Unlock()

	if l, ok := t.localizers[locale]; ok {
		return l
	}
	l := i18n.NewLocalizer(t.bundle, locale)
	t.localizers[locale] = l
	return l
}
