package local

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sort"

	"beautymatch-backend/internal/shared/storage/source"
)

// Source implements source.Source over a local directory.
type Source struct {
	baseDir string
}

// New creates a dataset source rooted at baseDir.
func New(baseDir string) source.Source {
	return &Source{baseDir: baseDir}
}

// List returns file names under the base directory matching the glob pattern.
func (s *Source) List(ctx context.Context, pattern string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	matches, err := filepath.Glob(filepath.Join(s.baseDir, pattern))
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, filepath.Base(m))
	}
	sort.Strings(names)
	return names, nil
}

// Open opens one dataset file by name.
func (s *Source) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.Open(filepath.Join(s.baseDir, name))
}
