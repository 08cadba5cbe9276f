package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/goccy/go-json"

	"github.com/matzehuels/wbsview/pkg/cache"
	"github.com/matzehuels/wbsview/pkg/graph"
	"github.com/matzehuels/wbsview/pkg/layout"
	"github.com/matzehuels/wbsview/pkg/observability"
	"github.com/matzehuels/wbsview/pkg/view"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache("no cache configured")
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs load → layout → view → render for one view state.
func (r *Runner) Execute(ctx context.Context, path string, state view.State, format string, opts Options) (*Result, error) {
	if err := ValidateFormat(format); err != nil {
		return nil, err
	}
	result := &Result{Format: format}

	start := time.Now()
	loaded, err := r.Load(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Loaded = loaded
	result.Stats.LoadTime = time.Since(start)
	result.Stats.NodeCount = loaded.Graph.NodeCount()
	result.Stats.EdgeCount = loaded.Graph.EdgeCount()

	start = time.Now()
	base, hit, err := r.BaseLayoutWithCacheInfo(ctx, loaded, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Base = base
	result.Stats.LayoutTime = time.Since(start)
	result.CacheInfo.LayoutHit = hit

	r.Logger.Info("computed layout",
		"nodes", len(base.Nodes),
		"depth", base.Levels.Max(),
		"cached", hit,
		"duration", result.Stats.LayoutTime)

	result.View = view.Derive(state, base, opts.ViewOptions()...)
	if state.Mode == view.Local && result.View.Mode == view.Global {
		r.Logger.Warn("focus node not found, showing whole tree", "focus", state.Focus)
	}

	start = time.Now()
	artifact, hit, err := r.RenderWithCacheInfo(ctx, loaded.Hash, result.View, format, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifact = artifact
	result.Stats.RenderTime = time.Since(start)
	result.CacheInfo.RenderHit = hit

	r.Logger.Info("rendered view",
		"mode", result.View.Mode,
		"format", format,
		"bytes", len(artifact),
		"cached", hit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Load reads the document at path, hashes it and logs hierarchy problems.
func (r *Runner) Load(ctx context.Context, path string) (*Loaded, error) {
	start := time.Now()
	observability.Pipeline().OnLoadStart(ctx, path)

	g, err := graph.ReadGraphFile(path)
	if err != nil {
		observability.Pipeline().OnLoadComplete(ctx, path, 0, 0, time.Since(start), err)
		return nil, err
	}

	data, err := graph.MarshalGraph(g)
	if err != nil {
		observability.Pipeline().OnLoadComplete(ctx, path, 0, 0, time.Since(start), err)
		return nil, fmt.Errorf("hash graph: %w", err)
	}

	loaded := &Loaded{
		Path:        path,
		Graph:       g,
		Hash:        cache.Hash(data),
		Diagnostics: layout.Diagnose(g),
	}
	observability.Pipeline().OnLoadComplete(ctx, path, g.NodeCount(), g.EdgeCount(), time.Since(start), nil)

	r.Logger.Debug("loaded graph",
		"path", path,
		"nodes", g.NodeCount(),
		"edges", g.EdgeCount(),
		"hash", loaded.Hash[:12])
	r.logDiagnostics(loaded.Diagnostics)

	return loaded, nil
}

func (r *Runner) logDiagnostics(d layout.Diagnostics) {
	for _, group := range d.Cycles {
		r.Logger.Warn("hierarchy cycle, first reached depth is kept", "nodes", group)
	}
	if len(d.MultiParent) > 0 {
		r.Logger.Warn("nodes with several hierarchy parents", "nodes", d.MultiParent)
	}
	if len(d.Dangling) > 0 {
		r.Logger.Debug("edges reference unknown nodes", "edges", d.Dangling)
	}
}

// BaseLayoutWithCacheInfo computes the base layout with caching and
// returns cache hit info. Unreadable cache entries are recomputed.
func (r *Runner) BaseLayoutWithCacheInfo(ctx context.Context, loaded *Loaded, opts Options) (*layout.Base, bool, error) {
	cacheKey := r.Keyer.LayoutKey(loaded.Hash, opts.LayoutKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var cached layout.Base
			if err := json.Unmarshal(data, &cached); err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				return &cached, true, nil
			}
			r.Logger.Debug("discarding unreadable layout cache entry", "key", cacheKey)
		} else if err != nil {
			r.Logger.Warn("cache read failed", "err", err)
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	start := time.Now()
	n := loaded.Graph.NodeCount()
	observability.Pipeline().OnLayoutStart(ctx, n)
	base := layout.Compute(loaded.Graph, opts.LayoutOptions()...)
	observability.Pipeline().OnLayoutComplete(ctx, n, time.Since(start), nil)

	if data, err := json.Marshal(base); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout); err != nil {
			r.Logger.Warn("cache write failed", "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "layout", len(data))
		}
	}

	return base, false, nil
}

// BaseLayout is a convenience wrapper that discards the cache hit info.
func (r *Runner) BaseLayout(ctx context.Context, loaded *Loaded, opts Options) (*layout.Base, error) {
	base, _, err := r.BaseLayoutWithCacheInfo(ctx, loaded, opts)
	return base, err
}

// RenderWithCacheInfo renders v with caching and returns cache hit info.
// graphHash identifies the document the view was derived from.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, graphHash string, v view.View, format string, opts Options) ([]byte, bool, error) {
	if err := ValidateFormat(format); err != nil {
		return nil, false, err
	}
	cacheKey := r.Keyer.ArtifactKey(graphHash, opts.ArtifactKeyOpts(format, v))

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "artifact")
			return data, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
	}

	start := time.Now()
	observability.Pipeline().OnRenderStart(ctx, format)
	data, err := Render(ctx, v, format, opts)
	observability.Pipeline().OnRenderComplete(ctx, format, len(data), time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact); err != nil {
		r.Logger.Warn("cache write failed", "err", err)
	} else {
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}
	return data, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
