// Package pipeline runs the load → layout → view → render chain.
//
// This package wires the viewer core to the host concerns around it:
// caching, logging and observability hooks. The CLI uses it for every
// command, and the interactive explorer uses it to obtain the base layout
// once per session.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Load: read the WBS document and hash its canonical form
//  2. Layout: compute the base tree layout, cached by input hash
//  3. View: derive the GLOBAL or LOCAL view for a state
//  4. Render: emit JSON, DOT, SVG or PNG, cached by input hash and view
//
// Each stage can be run independently or as part of [Runner.Execute].
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, "wbs.json", view.Focused("12"), pipeline.FormatSVG, pipeline.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.Stdout.Write(result.Artifact)
package pipeline

import (
	"slices"
	"time"

	"github.com/matzehuels/wbsview/pkg/cache"
	"github.com/matzehuels/wbsview/pkg/errors"
	"github.com/matzehuels/wbsview/pkg/layout"
	"github.com/matzehuels/wbsview/pkg/view"
	"github.com/matzehuels/wbsview/pkg/wbs"
)

// Format constants for output formats.
const (
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatPNG  = "png"
)

// Formats lists the supported output formats.
var Formats = []string{FormatJSON, FormatDOT, FormatSVG, FormatPNG}

// ValidateFormat checks that format is supported. Matching is case-sensitive.
func ValidateFormat(format string) error {
	if !slices.Contains(Formats, format) {
		return errors.New(errors.ErrCodeInvalidFormat, "unknown format %q (want json, dot, svg or png)", format)
	}
	return nil
}

// Options configures the layout and render stages. Zero values select the
// built-in defaults.
type Options struct {
	XGap     float64
	YGap     float64
	Radius   float64
	Detailed bool
	// Refresh skips cache reads; results are still written.
	Refresh bool
}

// WithDefaults returns o with zero values replaced by the defaults.
func (o Options) WithDefaults() Options {
	if o.XGap <= 0 {
		o.XGap = layout.XGap
	}
	if o.YGap <= 0 {
		o.YGap = layout.YGap
	}
	if o.Radius <= 0 {
		o.Radius = view.Radius
	}
	return o
}

// LayoutKeyOpts returns the cache key options for the layout stage.
func (o Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	o = o.WithDefaults()
	return cache.LayoutKeyOpts{XGap: o.XGap, YGap: o.YGap}
}

// ArtifactKeyOpts returns the cache key options for the render stage.
func (o Options) ArtifactKeyOpts(format string, v view.View) cache.ArtifactKeyOpts {
	o = o.WithDefaults()
	return cache.ArtifactKeyOpts{
		Format:   format,
		Mode:     string(v.Mode),
		Focus:    v.Focus,
		XGap:     o.XGap,
		YGap:     o.YGap,
		Radius:   o.Radius,
		Detailed: o.Detailed,
	}
}

// LayoutOptions converts o to layout options.
func (o Options) LayoutOptions() []layout.Option {
	o = o.WithDefaults()
	return []layout.Option{layout.WithGaps(o.XGap, o.YGap)}
}

// ViewOptions converts o to view options.
func (o Options) ViewOptions() []view.Option {
	o = o.WithDefaults()
	return []view.Option{view.WithRadius(o.Radius)}
}

// Loaded is a document read from disk.
type Loaded struct {
	Path  string
	Graph *wbs.Graph
	// Hash is the BLAKE3 digest of the canonical graph encoding. It keys every
	// cache entry derived from this document.
	Hash        string
	Diagnostics layout.Diagnostics
}

// Result holds the output of [Runner.Execute].
type Result struct {
	Loaded   *Loaded
	Base     *layout.Base
	View     view.View
	Format   string
	Artifact []byte

	CacheInfo CacheInfo
	Stats     Stats
}

// CacheInfo reports which stages were served from cache.
type CacheInfo struct {
	LayoutHit bool
	RenderHit bool
}

// Stats holds stage timings and sizes.
type Stats struct {
	NodeCount  int
	EdgeCount  int
	LoadTime   time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}
