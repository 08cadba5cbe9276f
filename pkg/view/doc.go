// Package view selects what part of a base layout is shown.
//
// A [State] is either GLOBAL (the whole tree) or LOCAL (one focus node and
// its direct neighbors). [Derive] turns a state plus a [layout.Base] into a
// [View]: the nodes with their on-screen positions and the edges to draw.
//
// In the LOCAL view the focus sits at the origin and its neighbors are
// spread evenly on a circle of radius [Radius], starting at angle 0 and
// going counter-clockwise in base-layout order. Both HIERARCHY and
// dependency edges count as connections. A LOCAL state whose focus is
// missing or unknown falls back to the GLOBAL view.
//
// Derive is pure. It allocates fresh positioned nodes and never touches
// the base layout, so a host may call it after every state change.
package view
