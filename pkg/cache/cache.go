// Package cache stores rendered maze artifacts.
//
// A maze is fully determined by its dimensions, seed and merge strategy, so
// an artifact rendered once for an explicit seed can be served again without
// regenerating it. [ArtifactKey] derives the key from everything that affects
// the output bytes.
//
// Two implementations are provided:
//   - [FileCache]: one JSON file per entry under a directory, with expiry
//   - [NullCache]: stores nothing, used when caching is disabled
package cache

import (
	"context"
	"os"
	"path/filepath"
	"time"
)

// Cache is a byte store keyed by string.
type Cache interface {
	// Get returns the entry for key. A miss returns ok == false and no error.
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)

	// Set stores data under key. A ttl of 0 never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	Close() error
}

// DefaultDir returns the per-user cache directory for mazegen artifacts.
func DefaultDir() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "mazegen"), nil
}
