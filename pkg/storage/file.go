package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
)

// File stores each key as a file inside a directory. Writes go through a
// temporary file and a rename so a crash never leaves a torn snapshot.
type File struct {
	dir string
}

var _ Store = (*File)(nil)

// NewFile creates the directory if needed and returns a File store rooted
// there.
func NewFile(dir string) (*File, error) {
	if dir == "" {
		return nil, errors.New("storage: file store directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: create %s: %w", dir, err)
	}
	return &File{dir: dir}, nil
}

func (f *File) path(key string) string {
	return filepath.Join(f.dir, url.PathEscape(key)+".json")
}

func (f *File) Get(ctx context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, ErrEmptyKey
	}
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	data, err := os.ReadFile(f.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("storage: read %q: %w", key, err)
	}
	return string(data), true, nil
}

func (f *File) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return ErrEmptyKey
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(f.dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("storage: write %q: %w", key, err)
	}
	defer func() {
		_ = os.Remove(tmp.Name())
	}()

	if _, err := tmp.WriteString(value); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("storage: write %q: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("storage: write %q: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), f.path(key)); err != nil {
		return fmt.Errorf("storage: write %q: %w", key, err)
	}
	return nil
}

func (f *File) Close() error { return nil }
