package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/matzehuels/wbsview/pkg/cache"
	"github.com/matzehuels/wbsview/pkg/config"
)

func TestNewCacheBackends(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		noCache bool
		backend string
		addr    string
		want    string
	}{
		{"no-cache flag", true, config.BackendFile, "", "null"},
		{"none backend", false, config.BackendNone, "", "null"},
		{"file backend", false, config.BackendFile, "", "file"},
		{"unreachable redis falls back", false, config.BackendRedis, "127.0.0.1:1", "null"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logs bytes.Buffer
			c := New(&logs, LogInfo)
			c.noCache = tt.noCache
			c.cfg.Cache.Backend = tt.backend
			c.cfg.Cache.Dir = dir
			c.cfg.Cache.RedisAddr = tt.addr

			got, err := c.newCache(context.Background())
			if err != nil {
				t.Fatalf("newCache() error: %v", err)
			}
			defer got.Close()

			var kind string
			switch cc := got.(type) {
			case *cache.NullCache:
				kind = "null"
			case *cache.FileCache:
				kind = "file"
				if cc.Dir() != dir {
					t.Errorf("Dir() = %q, want %q", cc.Dir(), dir)
				}
			default:
				kind = "other"
			}
			if kind != tt.want {
				t.Errorf("newCache() = %T, want %s cache", got, tt.want)
			}
			if tt.backend == config.BackendRedis && !bytes.Contains(logs.Bytes(), []byte("redis unavailable")) {
				t.Error("redis fallback should be logged")
			}
		})
	}
}

func TestNewRunnerScopedKeyer(t *testing.T) {
	c := New(&bytes.Buffer{}, LogInfo)
	c.noCache = true

	runner, err := c.newRunner(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := runner.Keyer.(*cache.ScopedKeyer); ok {
		t.Error("no prefix configured, keyer should not be scoped")
	}

	c.cfg.Cache.Prefix = "team-a:"
	runner, err = c.newRunner(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := runner.Keyer.(*cache.ScopedKeyer); !ok {
		t.Errorf("Keyer = %T, want *cache.ScopedKeyer", runner.Keyer)
	}
}
