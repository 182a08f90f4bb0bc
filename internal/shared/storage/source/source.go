package source

import (
	"context"
	"io"
)

// Source provides read-only access to dataset files by name.
type Source interface {
	List(ctx context.Context, pattern string) ([]string, error)
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}
