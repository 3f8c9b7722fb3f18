// Package jsonfile persists collections as JSON arrays in a model.Storage backend.
package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/ZhuneIDS/apitareas/internal/model"
)

// Collection is a JSON array document holding items of type T.
//
// Every mutation reads the whole document, applies a change and rewrites it.
// Mutations are serialized by a single-writer lock, so concurrent callers in
// the same process never lose updates.
type Collection[T any] struct {
	storage model.Storage
	key     string
	mu      sync.RWMutex
}

// NewCollection returns a collection stored under key, creating an empty
// array document if none exists yet.
func NewCollection[T any](ctx context.Context, storage model.Storage, key string) (*Collection[T], error) {
	c := &Collection[T]{storage: storage, key: key}

	exists, err := storage.Exists(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to check %s: %w", key, err)
	}
	if !exists {
		if err := c.write(ctx, []T{}); err != nil {
			return nil, fmt.Errorf("failed to initialize %s: %w", key, err)
		}
	}

	return c, nil
}

// Key returns the document key.
func (c *Collection[T]) Key() string {
	return c.key
}

// Load returns all items.
func (c *Collection[T]) Load(ctx context.Context) ([]T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.read(ctx)
}

// Mutate applies fn to the current items and persists the result.
// If fn returns an error nothing is written.
func (c *Collection[T]) Mutate(ctx context.Context, fn func(items []T) ([]T, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	items, err := c.read(ctx)
	if err != nil {
		return err
	}

	items, err = fn(items)
	if err != nil {
		return err
	}

	return c.write(ctx, items)
}

func (c *Collection[T]) read(ctx context.Context) ([]T, error) {
	rc, err := c.storage.Download(ctx, c.key)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", c.key, err)
	}
	defer rc.Close()

	var items []T
	if err := json.NewDecoder(rc).Decode(&items); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", c.key, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (c *Collection[T]) write(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}

	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", c.key, err)
	}

	if err := c.storage.Upload(ctx, c.key, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write %s: %w", c.key, err)
	}
	return nil
}
