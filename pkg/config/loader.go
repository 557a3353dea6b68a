package config

import (
	"context"
	"io/fs"
	"net/http"
	"time"
)

// Loader retrieves and parses configuration documents. Implementations live
// under internal/config but satisfy this contract.
type Loader interface {
	Load(ctx context.Context, src Source) (Config, error)
}

// LoaderOptions configures how a Loader resolves sources.
type LoaderOptions struct {
	// FileSystem backs SourceKindFS lookups; the embedded configurations are
	// used by the top-level package when nil.
	FileSystem fs.FS

	// HTTPClient allows callers to inject custom HTTP behaviour. Nil means
	// URL sources are disabled unless AllowHTTPFallback is true.
	HTTPClient *http.Client

	// AllowHTTPFallback enables URL sources with a default client.
	AllowHTTPFallback bool

	// RequestTimeout caps remote fetch durations.
	RequestTimeout time.Duration
}

// LoaderOption mutates LoaderOptions prior to construction.
type LoaderOption func(*LoaderOptions)

// WithFileSystem injects an fs.FS used for SourceKindFS lookups.
func WithFileSystem(files fs.FS) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.FileSystem = files
	}
}

// WithHTTPClient injects a custom HTTP client for remote configurations.
func WithHTTPClient(client *http.Client) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.HTTPClient = client
	}
}

// WithHTTPFallback enables HTTP loading with a default client and assigns an
// optional timeout.
func WithHTTPFallback(timeout time.Duration) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.AllowHTTPFallback = true
		opts.RequestTimeout = timeout
	}
}

// NewLoaderOptions applies a set of LoaderOption values and returns the
// resulting configuration.
func NewLoaderOptions(options ...LoaderOption) LoaderOptions {
	cfg := LoaderOptions{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return cfg
}
