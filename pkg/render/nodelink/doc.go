// Package nodelink renders views as node-link diagrams.
//
// # Overview
//
// [ToDOT] converts a [view.View] to Graphviz DOT. Every node carries a
// pinned position (pos="x,y!"), so Graphviz draws the layout computed by
// this module instead of computing its own. The y axis is flipped because
// Graphviz grows upward while view coordinates grow downward.
//
// # Usage
//
//	dot := nodelink.ToDOT(v, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # Styling
//
// HIERARCHY edges are solid, dependency edges dashed, and every edge is
// labeled with its type. In a LOCAL view the focus node is filled. Edges
// whose endpoints are not both drawn are left out.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] with the neato engine,
// which honors pinned positions.
package nodelink
