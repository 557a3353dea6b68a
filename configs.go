package reportgen

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/goliatone/go-reportgen/pkg/config"
)

//go:embed configs/*.json
var embeddedConfigs embed.FS

// ConfigFiles maps each supported language code to its configuration file
// name.
var ConfigFiles = map[string]string{
	"en": "software-dev-config-en.json",
	"fr": "software-dev-config-fr.json",
}

// ConfigFS exposes the bundled configurations rooted at the configs
// directory.
func ConfigFS() fs.FS {
	sub, err := fs.Sub(embeddedConfigs, "configs")
	if err != nil {
		return embeddedConfigs
	}
	return sub
}

// DefaultCatalog maps every supported language to its embedded
// configuration.
func DefaultCatalog() *config.Catalog {
	sources := make(map[string]config.Source, len(ConfigFiles))
	for lang, name := range ConfigFiles {
		sources[lang] = config.SourceFromFS(name)
	}
	return config.NewCatalog(sources)
}

// IsRemoteLocation reports whether location is an http(s) base URL.
func IsRemoteLocation(location string) bool {
	location = strings.TrimSpace(location)
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}

// CatalogFromLocation maps every supported language to a configuration file
// under location, which is either a directory or an http(s) base URL. An
// empty location yields DefaultCatalog. URL sources need a loader with HTTP
// enabled; see LoaderForLocation.
func CatalogFromLocation(location string) (*config.Catalog, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return DefaultCatalog(), nil
	}

	remote := IsRemoteLocation(location)
	sources := make(map[string]config.Source, len(ConfigFiles))
	for lang, name := range ConfigFiles {
		if !remote {
			sources[lang] = config.SourceFromFile(filepath.Join(location, name))
			continue
		}
		src, err := config.ParseURLSource(strings.TrimRight(location, "/") + "/" + path.Clean(name))
		if err != nil {
			return nil, fmt.Errorf("configs location: %w", err)
		}
		sources[lang] = src
	}
	return config.NewCatalog(sources), nil
}

// LoaderForLocation returns the loader matching CatalogFromLocation. Remote
// locations get HTTP loading bounded by timeout.
func LoaderForLocation(location string, timeout time.Duration) config.Loader {
	if IsRemoteLocation(location) {
		return NewLoader(config.WithHTTPFallback(timeout))
	}
	return NewLoader()
}
