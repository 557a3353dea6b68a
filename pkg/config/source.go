package config

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
)

// Source identifies where a configuration document lives so loaders can
// operate on files, fs.FS entries, or URLs without leaking implementation
// details.
type Source interface {
	Kind() SourceKind
	Location() string
}

// SourceKind enumerates the loader modalities.
type SourceKind string

const (
	SourceKindFile SourceKind = "file"
	SourceKindFS   SourceKind = "fs"
	SourceKindURL  SourceKind = "url"
)

type fileSource struct {
	path string
}

func (s fileSource) Location() string { return s.path }
func (s fileSource) Kind() SourceKind { return SourceKindFile }

// SourceFromFile returns a Source pointing to a file path.
func SourceFromFile(path string) Source {
	return fileSource{path: filepath.Clean(path)}
}

type fsSource struct {
	name string
}

func (s fsSource) Location() string { return s.name }
func (s fsSource) Kind() SourceKind { return SourceKindFS }

// SourceFromFS returns a Source identifying a resource inside the loader's
// fs.FS.
func SourceFromFS(name string) Source {
	return fsSource{name: name}
}

type urlSource struct {
	raw string
}

func (s urlSource) Location() string { return s.raw }
func (s urlSource) Kind() SourceKind { return SourceKindURL }

// ParseURLSource validates raw as an absolute http(s) URL and returns a
// Source for it.
func ParseURLSource(raw string) (Source, error) {
	if raw == "" {
		return nil, errors.New("config: empty URL source")
	}
	u, err := url.ParseRequestURI(raw)
	if err != nil {
		return nil, fmt.Errorf("config: invalid URL %q: %w", raw, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("config: URL %q must be http(s) with a host", raw)
	}
	return urlSource{raw: raw}, nil
}

// SourceFromURL is ParseURLSource for literals known to be valid. It panics
// on an invalid URL.
func SourceFromURL(raw string) Source {
	src, err := ParseURLSource(raw)
	if err != nil {
		panic(err.Error())
	}
	return src
}
