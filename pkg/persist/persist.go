// Package persist snapshots the structured report into a storage slot on a
// fixed interval and restores field values from the last snapshot.
package persist

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-reportgen/pkg/form"
	"github.com/goliatone/go-reportgen/pkg/report"
	"github.com/goliatone/go-reportgen/pkg/storage"
)

// DefaultInterval is how often Run compares and saves snapshots.
const DefaultInterval = 10 * time.Second

// Option configures a Loop.
type Option func(*Loop)

// WithInterval overrides the tick interval.
func WithInterval(d time.Duration) Option {
	return func(l *Loop) {
		if d > 0 {
			l.interval = d
		}
	}
}

// WithKey overrides the storage key.
func WithKey(key string) Option {
	return func(l *Loop) {
		if key != "" {
			l.key = key
		}
	}
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(logger zerolog.Logger) Option {
	return func(l *Loop) {
		l.logger = logger
	}
}

// Loop owns the storage slot and the last value written to it. It is not
// safe for concurrent use.
type Loop struct {
	store    storage.Store
	key      string
	interval time.Duration
	logger   zerolog.Logger

	last    string
	hasLast bool
}

// New constructs a Loop writing to store.
func New(store storage.Store, options ...Option) *Loop {
	l := &Loop{
		store:    store,
		key:      storage.DefaultKey,
		interval: DefaultInterval,
		logger:   zerolog.Nop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(l)
		}
	}
	return l
}

// Interval reports the configured tick interval.
func (l *Loop) Interval() time.Duration { return l.interval }

// Key reports the storage key.
func (l *Loop) Key() string { return l.key }

// Tick writes snapshot when it differs byte-for-byte from the last persisted
// value. An unchanged snapshot writes and logs nothing.
func (l *Loop) Tick(ctx context.Context, snapshot string) (bool, error) {
	if l.store == nil {
		return false, errors.New("persist: store is nil")
	}
	if l.hasLast && snapshot == l.last {
		return false, nil
	}
	if err := l.store.Set(ctx, l.key, snapshot); err != nil {
		return false, fmt.Errorf("persist: save snapshot: %w", err)
	}
	l.last = snapshot
	l.hasLast = true
	l.logger.Info().Str("key", l.key).Msg("saved")
	return true, nil
}

// Restore reads the stored snapshot and copies every value whose section and
// field exist in f. Stored keys missing from f are skipped; fields missing
// from storage keep their current value. It returns the number of fields
// restored.
func (l *Loop) Restore(ctx context.Context, f *form.Form) (int, error) {
	if l.store == nil {
		return 0, errors.New("persist: store is nil")
	}
	if f == nil {
		return 0, errors.New("persist: form is nil")
	}

	raw, ok, err := l.store.Get(ctx, l.key)
	if err != nil {
		return 0, fmt.Errorf("persist: read snapshot: %w", err)
	}
	if !ok || raw == "" {
		return 0, nil
	}

	stored, err := report.Unmarshal(raw)
	if err != nil {
		return 0, fmt.Errorf("persist: %w", err)
	}

	l.last = raw
	l.hasLast = true
	return l.Apply(f, stored), nil
}

// Apply copies the values of stored into f following the same rules as
// Restore, then recompiles the report surface.
func (l *Loop) Apply(f *form.Form, stored report.Structured) int {
	restored := 0
	known := make(map[string]bool)
	for _, section := range f.Sections() {
		known[section.ID] = true
		values, ok := stored.Sections[section.ID]
		if !ok {
			continue
		}
		for fieldID, value := range values.Fields {
			if f.Restore(section.ID, fieldID, value) {
				restored++
				continue
			}
			l.logger.Debug().Str("section", section.ID).Str("field", fieldID).Msg("stale restore key ignored")
		}
	}
	for _, sectionID := range slices.Sorted(maps.Keys(stored.Sections)) {
		if !known[sectionID] {
			l.logger.Debug().Str("section", sectionID).Msg("stale restore section ignored")
		}
	}
	f.Recompile()
	return restored
}

// FlushFunc takes a snapshot and hands it to Tick. Callers use it to hold
// their own lock around snapshot and write.
type FlushFunc func(ctx context.Context) error

// Run calls flush every interval until ctx is done. Flush errors are logged
// and the loop keeps going.
func (l *Loop) Run(ctx context.Context, flush FlushFunc) error {
	if flush == nil {
		return errors.New("persist: flush func is nil")
	}
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := flush(ctx); err != nil {
				l.logger.Error().Err(err).Msg("persist tick failed")
			}
		}
	}
}
