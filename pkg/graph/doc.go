// Package graph loads WBS graph documents and serializes them back.
//
// This package sits at the boundary between the static input document and
// the in-memory [wbs.Graph]. It is deliberately permissive: the viewer must
// always produce something renderable, so the loader never validates
// records against a schema.
//
// # Document Format
//
//	{
//	  "nodes": [
//	    {"id": "1", "type": "TASK", "wbs_code": "1", "data": {"title": "Build"}},
//	    {"id": "2", "type": "DOC", "data": {"name": "Spec"}}
//	  ],
//	  "edges": [
//	    {"id": "e1", "type": "HIERARCHY", "source": "1", "target": "2"},
//	    {"id": "e2", "type": "DOC_DEPENDS_ON", "source": "2", "target": "1",
//	     "data": {"based_on_version": "v3", "approved": true}}
//	  ]
//	}
//
// # Leniency
//
//   - A missing or non-array "nodes"/"edges" value is an empty sequence.
//   - Array entries that are not objects are skipped.
//   - Numeric or boolean ids and types are stringified.
//   - Edges may reference unknown node ids; they are kept as-is.
//
// Only document-level problems are errors: an unreadable file or bytes
// that are not JSON at all.
//
// # Labels
//
// Each node gets a display label: data.title, else data.name, else
// "{type} {wbs_code}". See [DeriveLabel].
//
// # Serialization
//
// [MarshalGraph] writes a graph in the same document format with a stable
// key order. Its output is what the pipeline hashes to key cached layouts.
package graph
