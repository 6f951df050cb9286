// Package cache stores generated gaskets and rendered artifacts.
//
// Two stages are cached, each under its own key:
//
//   - gasket: the circle sequence for (curvatures, depth)
//   - artifact: the rendered bytes for a gasket plus render options
//
// The CLI uses a [FileCache] under the user's cache directory. The HTTP
// server can share a [RedisCache] between instances. [NullCache] disables
// caching.
package cache

import (
	"context"
	"strings"
	"time"

	apperrors "github.com/matzehuels/apollon/pkg/errors"
)

// Cache is a byte store with optional expiry.
type Cache interface {
	// Get returns the value for key. hit is false on a miss.
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)
	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// TTLs for the cached stages.
const (
	GasketTTL   = 7 * 24 * time.Hour
	ArtifactTTL = 7 * 24 * time.Hour
)

// Open returns the cache selected by url:
//
//	""                   file cache in dir
//	"none"               NullCache
//	"redis://host:6379"  RedisCache
func Open(url, dir string) (Cache, error) {
	switch {
	case url == "":
		fc, err := NewFileCache(dir)
		if err != nil {
			return nil, err
		}
		return fc, nil
	case url == "none":
		return NewNullCache(), nil
	case strings.HasPrefix(url, "redis://"), strings.HasPrefix(url, "rediss://"):
		rc, err := NewRedisCache(url)
		if err != nil {
			return nil, err
		}
		return rc, nil
	}
	return nil, apperrors.New(apperrors.ErrCodeInvalidInput, "unsupported cache url %q", url)
}
