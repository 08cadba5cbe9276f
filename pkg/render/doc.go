// Package render turns derived views into output artifacts.
//
// The viewer core stops at [view.View]: positioned nodes plus the edges to
// draw. Renderers in the subpackages consume that value and never compute
// positions of their own.
//
//   - [nodelink] emits Graphviz DOT with pinned coordinates and renders it
//     to SVG or PNG in-process.
//   - [sink] emits the JSON payload an external drawing host consumes.
//
// [view.View]: github.com/matzehuels/wbsview/pkg/view
// [nodelink]: github.com/matzehuels/wbsview/pkg/render/nodelink
// [sink]: github.com/matzehuels/wbsview/pkg/render/sink
package render
