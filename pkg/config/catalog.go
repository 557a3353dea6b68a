package config

import (
	"sort"
	"strings"
)

// Catalog is the static mapping from a language code to the configuration
// resource for that language.
type Catalog struct {
	sources map[string]Source
}

// NewCatalog builds a catalog from a language → source map. Codes are
// matched case-insensitively.
func NewCatalog(sources map[string]Source) *Catalog {
	c := &Catalog{sources: make(map[string]Source, len(sources))}
	for lang, src := range sources {
		c.Add(lang, src)
	}
	return c
}

// Add registers or replaces the source for a language.
func (c *Catalog) Add(lang string, src Source) {
	code := normalizeLanguage(lang)
	if code == "" || src == nil {
		return
	}
	if c.sources == nil {
		c.sources = make(map[string]Source)
	}
	c.sources[code] = src
}

// Resolve returns the source for a language code. Unknown codes yield no
// source.
func (c *Catalog) Resolve(lang string) (Source, bool) {
	if c == nil {
		return nil, false
	}
	src, ok := c.sources[normalizeLanguage(lang)]
	return src, ok
}

// Languages returns the registered language codes, sorted.
func (c *Catalog) Languages() []string {
	if c == nil {
		return nil
	}
	out := make([]string, 0, len(c.sources))
	for code := range c.sources {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}

func normalizeLanguage(lang string) string {
	return strings.ToLower(strings.TrimSpace(lang))
}
