package gotemplate

import (
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
)

var filtersOnce sync.Once

// registerFilters installs the filters the report templates rely on.
func registerFilters() {
	filtersOnce.Do(func() {
		for name, fn := range map[string]pongo2.FilterFunction{
			"trim": filterTrim,
			"rows": filterRows,
		} {
			if !pongo2.FilterExists(name) {
				_ = pongo2.RegisterFilter(name, fn)
			}
		}
	})
}

func filterTrim(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	return pongo2.AsValue(strings.TrimSpace(in.String())), nil
}

// filterRows counts the lines of a value, at least one, so textareas open
// tall enough for restored content.
func filterRows(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	return pongo2.AsValue(strings.Count(in.String(), "\n") + 1), nil
}
