// Package cache stores computed layouts and rendered artifacts.
//
// Entries are opaque byte slices addressed by string keys. Keys are built
// by a [Keyer] from the BLAKE3 hash of the input document and the options
// that influence the result, so a changed input or option never hits a
// stale entry.
//
// Three backends are provided:
//
//   - [FileCache] stores zstd-compressed JSON files under a directory.
//   - [RedisCache] stores entries in Redis with native expiry.
//   - [NullCache] stores nothing.
//
// A cache is an optimization only. Callers treat read failures and corrupt
// entries as misses and recompute.
package cache

import (
	"context"
	"time"
)

// Default time-to-live per entry kind.
const (
	TTLLayout   = 24 * time.Hour
	TTLArtifact = 24 * time.Hour
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the value for key. A missing or expired entry is a miss,
	// not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Keyer builds cache keys.
type Keyer interface {
	// LayoutKey addresses the base layout of a graph.
	LayoutKey(graphHash string, opts LayoutKeyOpts) string

	// ArtifactKey addresses a rendered view of a graph.
	ArtifactKey(graphHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts are the options that change a base layout.
type LayoutKeyOpts struct {
	XGap float64 `json:"x_gap"`
	YGap float64 `json:"y_gap"`
}

// ArtifactKeyOpts are the options that change a rendered artifact.
type ArtifactKeyOpts struct {
	Format   string  `json:"format"`
	Mode     string  `json:"mode"`
	Focus    string  `json:"focus,omitempty"`
	XGap     float64 `json:"x_gap"`
	YGap     float64 `json:"y_gap"`
	Radius   float64 `json:"radius"`
	Detailed bool    `json:"detailed,omitempty"`
}

// DefaultKeyer hashes key options into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey returns "layout:" followed by a hash of the graph hash and opts.
func (DefaultKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", graphHash, opts)
}

// ArtifactKey returns "artifact:" followed by a hash of the graph hash and opts.
func (DefaultKeyer) ArtifactKey(graphHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", graphHash, opts)
}
