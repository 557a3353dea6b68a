package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-reportgen/pkg/config"
	"github.com/goliatone/go-reportgen/pkg/form"
	"github.com/goliatone/go-reportgen/pkg/persist"
	"github.com/goliatone/go-reportgen/pkg/report"
	"github.com/goliatone/go-reportgen/pkg/storage"
)

// App is the application state object.
type App struct {
	mu sync.Mutex

	loader      config.Loader
	catalog     *config.Catalog
	store       storage.Store
	storageKey  string
	interval    time.Duration
	logger      zerolog.Logger
	formOptions []form.Option

	loop       *persist.Loop
	generation uint64
	language   string
	cfg        config.Config
	form       *form.Form
	// editSeq holds the last applied edit sequence per "section.field".
	editSeq map[string]uint64
}

// New constructs an App. A loader is required; the store defaults to an
// in-memory slot.
func New(options ...Option) (*App, error) {
	a := &App{
		catalog: config.NewCatalog(nil),
		logger:  zerolog.Nop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(a)
		}
	}
	if a.loader == nil {
		return nil, errors.New("app: config loader is required")
	}
	if a.store == nil {
		a.store = storage.NewMemory()
	}

	a.loop = persist.New(a.store,
		persist.WithKey(a.storageKey),
		persist.WithInterval(a.interval),
		persist.WithLogger(a.logger),
	)
	return a, nil
}

// Load retrieves the configuration for lang, rebuilds the form from it and
// restores stored values into the new form. A failed load is logged and
// leaves the current form untouched. When another Load starts while this one
// is retrieving, this result is discarded and ErrStaleLoad is returned.
func (a *App) Load(ctx context.Context, lang string) error {
	src, ok := a.catalog.Resolve(lang)
	if !ok {
		a.logger.Warn().Str("language", lang).Msg("no config for language")
		return fmt.Errorf("%w %q", ErrUnknownLanguage, lang)
	}

	a.mu.Lock()
	a.generation++
	gen := a.generation
	a.mu.Unlock()

	cfg, err := a.loader.Load(ctx, src)

	a.mu.Lock()
	defer a.mu.Unlock()

	if gen != a.generation {
		a.logger.Debug().Str("language", lang).Uint64("generation", gen).Msg("discarding stale config load")
		return ErrStaleLoad
	}
	if err != nil {
		a.logger.Error().Str("language", lang).Err(err).Msg("error loading config file")
		return &LoadError{Language: lang, Err: err}
	}

	if a.form != nil {
		if _, err := a.flushLocked(ctx); err != nil {
			a.logger.Error().Err(err).Msg("flush before rebuild failed")
		}
	}

	a.cfg = cfg
	a.language = lang
	a.form = report.NewForm(cfg, a.formOptions...)

	restored, err := a.loop.Restore(ctx, a.form)
	if err != nil {
		a.logger.Warn().Err(err).Msg("restore snapshot failed")
	}

	a.logger.Info().
		Str("language", lang).
		Int("sections", len(cfg.Sections)).
		Int("restored", restored).
		Msg("config loaded")
	return nil
}

// SetValue applies a field edit and returns the recompiled report.
func (a *App) SetValue(sectionID, fieldID, value string) (string, error) {
	text, _, err := a.SetValueAt(sectionID, fieldID, value, 0)
	return text, err
}

// SetValueAt applies a field edit stamped with a client sequence number. An
// edit whose seq is not above the last one applied to the same field is
// dropped and reported as not applied. A zero seq always applies and does
// not move the field's sequence.
func (a *App) SetValueAt(sectionID, fieldID, value string, seq uint64) (text string, applied bool, err error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.form == nil {
		return "", false, ErrNoForm
	}
	key := sectionID + "." + fieldID
	if seq != 0 && seq <= a.editSeq[key] {
		if _, err := a.form.Field(sectionID, fieldID); err != nil {
			return "", false, err
		}
		a.logger.Debug().Str("field", key).Uint64("seq", seq).Msg("superseded edit dropped")
		return a.form.Report(), false, nil
	}
	if err := a.form.SetValue(sectionID, fieldID, value); err != nil {
		return "", false, err
	}
	if seq != 0 {
		if a.editSeq == nil {
			a.editSeq = make(map[string]uint64)
		}
		a.editSeq[key] = seq
	}
	return a.form.Report(), true, nil
}

// SetIncluded toggles a section's inclusion and returns the recompiled
// report.
func (a *App) SetIncluded(sectionID string, included bool) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.form == nil {
		return "", ErrNoForm
	}
	if err := a.form.SetIncluded(sectionID, included); err != nil {
		return "", err
	}
	return a.form.Report(), nil
}

// Generate recompiles the human-readable report on demand.
func (a *App) Generate() (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.form == nil {
		return "", ErrNoForm
	}
	a.form.Recompile()
	return a.form.Report(), nil
}

// Report returns the current report surface.
func (a *App) Report() (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.form == nil {
		return "", ErrNoForm
	}
	return a.form.Report(), nil
}

// Structured builds the structured report of the current form.
func (a *App) Structured() (report.Structured, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.form == nil {
		return report.Structured{}, ErrNoForm
	}
	return report.Build(a.form), nil
}

// Snapshot serialises the structured report of the current form. The bool is
// false before the first successful load.
func (a *App) Snapshot() (string, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.form == nil {
		return "", false
	}
	snapshot, err := report.Snapshot(a.form)
	if err != nil {
		a.logger.Error().Err(err).Msg("snapshot failed")
		return "", false
	}
	return snapshot, true
}

// Import validates a serialised structured report against the current
// configuration, copies its values into the form and persists the result. It
// returns the number of fields restored.
func (a *App) Import(ctx context.Context, data string) (int, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.form == nil {
		return 0, ErrNoForm
	}
	if err := report.Validate(report.Schema(a.cfg), data); err != nil {
		return 0, err
	}
	stored, err := report.Unmarshal(data)
	if err != nil {
		return 0, err
	}
	restored := a.loop.Apply(a.form, stored)
	if _, err := a.flushLocked(ctx); err != nil {
		return restored, err
	}
	return restored, nil
}

// Flush runs one persistence tick now. It reports whether a write happened.
func (a *App) Flush(ctx context.Context) (bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.flushLocked(ctx)
}

func (a *App) flushLocked(ctx context.Context) (bool, error) {
	if a.form == nil {
		return false, nil
	}
	snapshot, err := report.Snapshot(a.form)
	if err != nil {
		return false, err
	}
	return a.loop.Tick(ctx, snapshot)
}

// Run drives the persistence loop until ctx is done.
func (a *App) Run(ctx context.Context) error {
	return a.loop.Run(ctx, func(ctx context.Context) error {
		_, err := a.Flush(ctx)
		return err
	})
}

// Close flushes pending edits and releases the store.
func (a *App) Close(ctx context.Context) error {
	_, flushErr := a.Flush(ctx)
	closeErr := a.store.Close()
	return errors.Join(flushErr, closeErr)
}

// Config returns the current configuration and whether one is loaded.
func (a *App) Config() (config.Config, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.cfg, a.form != nil
}

// Language returns the language of the current form.
func (a *App) Language() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.language
}

// Languages lists the language codes the catalog knows.
func (a *App) Languages() []string {
	return a.catalog.Languages()
}

// Interval reports the persistence interval.
func (a *App) Interval() time.Duration {
	return a.loop.Interval()
}
