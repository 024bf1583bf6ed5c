// Package cache provides content-addressed caching for computed layouts
// and rendered artifacts.
//
// Layout computation is cheap but rendering (Graphviz, large SVGs) is not,
// and the color table must stay stable across polling updates of the same
// repository. Cache keys are derived from content hashes of the commit
// list plus the options that influence the result, so a cache can never
// serve a stale entry for changed input.
//
// Implementations: FileCache for the CLI, RedisCache and MongoCache for
// server deployments, NullCache to disable caching entirely.
package cache

import (
	"context"
	"time"

	"github.com/gitlanes/gitlanes/pkg/render"
)

// Cache stores opaque byte values with optional expiration.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. The second return is false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of 0 means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// LayoutKey builds the cache key for a computed layout: the content hash of
// the normalized commit list. Options that change coordinates (zoom,
// spacing) are applied at projection time and deliberately excluded.
func LayoutKey(commitsHash string) string {
	return hashKey("layout", commitsHash)
}

// ColorKey builds the cache key for a resolved color table, keyed by
// commit-list identity so branch colors survive incremental updates.
func ColorKey(commitsHash string) string {
	return hashKey("colors", commitsHash)
}

// ArtifactKeyOpts carries every render option that influences the produced
// bytes. Leaving one out would let a cached artifact survive an option
// change, so the struct is hashed wholesale into the key.
type ArtifactKeyOpts struct {
	Format  string          // "svg", "dot", "png", "json"
	Zoom    float64         // projection zoom factor
	Palette []string        // branch color palette, nil for the default
	Geo     render.Geometry // projection geometry
}

// ArtifactCacheKey builds the cache key for a rendered artifact.
func ArtifactCacheKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
