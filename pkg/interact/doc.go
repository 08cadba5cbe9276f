// Package interact drives view selection from pointer gestures.
//
// A [Controller] owns the two pieces of mutable state of a viewing
// session: the [view.State] (GLOBAL or LOCAL with a focus) and the context
// [Menu]. The rendering collaborator reports gestures through
// [Controller.Handle] and menu activations through [Controller.Select].
//
// # Gestures
//
//   - A left click on the canvas, a node or an edge closes the menu.
//   - A right click on the canvas opens the canvas menu at the pointer.
//   - A right click on a node opens the node menu for that node.
//
// Right clicks always ask the host to suppress its native context menu.
//
// # Menu Items
//
// The canvas menu offers [ItemReturnToWBS], which resets to the GLOBAL
// view. The node menu offers [ItemShowConnected], which focuses the node,
// and [ItemCreateConnected], which is not available yet and only shows a
// notice through the [Notifier].
//
// After every view change the controller derives a fresh [view.View] and
// pushes it to the [Renderer]. A Controller is not safe for concurrent use;
// hosts deliver gestures from a single event loop.
package interact
