// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package archive

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// maxParallelOpens limits the number of archives opened at once by
// [Cache.Preload].
const maxParallelOpens = 4

// Cache shares open archive handles by path. Concurrent requests for the
// same archive result in a single open.
type Cache struct {
	group   singleflight.Group
	mu      sync.Mutex
	readers map[string]*Reader
	closed  bool
}

// NewCache creates a new empty [Cache].
func NewCache() *Cache {
	return &Cache{
		readers: make(map[string]*Reader),
	}
}

func (c *Cache) lookup(key string) (*Reader, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, false, ErrClosed
	}

	reader, exists := c.readers[key]

	return reader, exists, nil
}

// Get returns the cached archive for the given path. It is opened on first
// use.
func (c *Cache) Get(name string) (*Reader, error) {
	key, err := filepath.Abs(name)
	if err != nil {
		return nil, fmt.Errorf("absolute path: %w", err)
	}

	reader, exists, err := c.lookup(key)
	if err != nil || exists {
		return reader, err
	}

	value, err, _ := c.group.Do(key, func() (any, error) {
		reader, exists, err := c.lookup(key)
		if err != nil || exists {
			return reader, err
		}

		reader, err = Open(key)
		if err != nil {
			return nil, err
		}

		slog.Debug("Opened archive",
			slog.String("path", key),
			slog.String("format", reader.Format().String()),
			slog.Int("members", reader.Len()))

		c.mu.Lock()
		defer c.mu.Unlock()

		if c.closed {
			_ = reader.Close()
			return nil, ErrClosed
		}

		c.readers[key] = reader

		return reader, nil
	})
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	return value.(*Reader), nil //nolint:forcetypeassert
}

// Preload opens all given archives in parallel. It returns the first error
// encountered.
func (c *Cache) Preload(ctx context.Context, names ...string) error {
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(maxParallelOpens)

	for _, name := range names {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err //nolint:wrapcheck
			}

			_, err := c.Get(name)

			return err
		})
	}

	return group.Wait() //nolint:wrapcheck
}

// Close closes all cached archives. The cache must not be used afterwards.
func (c *Cache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var errs []error

	for key, reader := range c.readers {
		errs = append(errs, reader.Close())

		delete(c.readers, key)
	}

	c.closed = true

	return errors.Join(errs...)
}

var sharedCache = sync.OnceValue(NewCache)

// SharedCache returns the process wide [Cache]. It is never closed.
func SharedCache() *Cache {
	return sharedCache()
}
