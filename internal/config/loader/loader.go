package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/goliatone/go-reportgen/pkg/config"
)

// Loader implements config.Loader by delegating to file, fs.FS, or HTTP
// strategies and parsing the retrieved bytes.
type Loader struct {
	fs        fs.FS
	http      *http.Client
	allowHTTP bool
	timeout   time.Duration
}

var _ config.Loader = (*Loader)(nil)

// New constructs a Loader from pre-resolved options.
func New(options config.LoaderOptions) *Loader {
	timeout := options.RequestTimeout

	var httpClient *http.Client
	switch {
	case options.HTTPClient != nil:
		clone := *options.HTTPClient
		if timeout > 0 && clone.Timeout == 0 {
			clone.Timeout = timeout
		}
		httpClient = &clone
	case options.AllowHTTPFallback:
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Loader{
		fs:        options.FileSystem,
		http:      httpClient,
		allowHTTP: httpClient != nil,
		timeout:   timeout,
	}
}

// Load retrieves the document behind src and parses it into a Config.
func (l *Loader) Load(ctx context.Context, src config.Source) (config.Config, error) {
	if src == nil {
		return config.Config{}, errors.New("config loader: source is nil")
	}

	var (
		data []byte
		err  error
	)

	switch src.Kind() {
	case config.SourceKindFile:
		data, err = loadFile(ctx, src.Location())
	case config.SourceKindFS:
		data, err = loadFromFS(ctx, l.fs, src.Location())
	case config.SourceKindURL:
		if !l.allowHTTP {
			return config.Config{}, errors.New("config loader: http support disabled")
		}
		data, err = loadHTTP(ctx, l.http, src.Location(), l.timeout)
	default:
		err = fmt.Errorf("config loader: unsupported source kind %q", src.Kind())
	}
	if err != nil {
		return config.Config{}, fmt.Errorf("config loader: retrieve %s: %w", src.Location(), err)
	}

	return config.Parse(data, src.Location())
}
