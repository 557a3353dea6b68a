package app

import (
	"errors"
	"fmt"
)

var (
	// ErrNoForm is returned by operations that need a rendered form before
	// the first successful load.
	ErrNoForm = errors.New("app: no form loaded")
	// ErrUnknownLanguage is returned when the catalog has no config for a
	// language code.
	ErrUnknownLanguage = errors.New("app: unknown language")
	// ErrStaleLoad is returned when a newer load started while this one was
	// retrieving its configuration; the result was discarded.
	ErrStaleLoad = errors.New("app: stale config load discarded")
)

// LoadError reports a configuration that could not be retrieved or parsed.
// The previous form stays in place.
type LoadError struct {
	Language string
	Err      error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("app: load config for %q: %v", e.Language, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }
