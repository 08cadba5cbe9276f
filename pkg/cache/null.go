package cache

import (
	"context"
	"time"
)

// NullCache misses on every read and drops every write. It stands in for
// a real backend when caching is off, so the pipeline never branches on it.
type NullCache struct {
	reason string
}

// NewNullCache returns a disabled cache. reason says why, for logs.
func NewNullCache(reason string) *NullCache {
	return &NullCache{reason: reason}
}

// Reason reports why caching is disabled.
func (c *NullCache) Reason() string { return c.reason }

func (c *NullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

func (c *NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

func (c *NullCache) Delete(context.Context, string) error { return nil }

func (c *NullCache) Close() error { return nil }

var _ Cache = (*NullCache)(nil)
