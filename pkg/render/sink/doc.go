// Package sink serializes views for external drawing hosts.
//
// [RenderJSON] produces the payload a graph-drawing library consumes:
//
//	{
//	  "mode": "LOCAL",
//	  "focus": "B",
//	  "nodes": [{"id": "B", "type": "DOC", "position": {"x": 0, "y": 0}, "label": "...", "data": {...}}],
//	  "edges": [{"id": "e1", "source": "A", "target": "B", "label": "HIERARCHY", "data": {...}}]
//	}
//
// The data objects are the record's opaque attributes, copied as read.
// Type, WBS code, version and approval sit beside data, never inside it.
// Edges with a missing endpoint are included; drawing
// hosts ignore them the same way this module's renderers do.
package sink
