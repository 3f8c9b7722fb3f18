package model

import (
	"context"
	"io"
)

// Storage keeps named documents, such as a JSON collection file, in a backend
// (local disk or an object store). Upload replaces the whole document.
type Storage interface {
	Upload(ctx context.Context, key string, reader io.Reader) error
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	Exists(ctx context.Context, key string) (bool, error)
}
