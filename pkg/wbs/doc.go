// Package wbs defines the record model of a Work-Breakdown-Structure graph.
//
// # Overview
//
// A WBS graph is a flat list of nodes (work items, documents) and edges.
// Edges of type [EdgeTypeHierarchy] form the breakdown tree; every other
// edge type is a dependency between items, for example
// [EdgeTypeDocDependsOn].
//
// # Records
//
// [NodeRecord] and [EdgeRecord] are plain values. Their [Attributes] bag
// carries whatever free-form data the input document attached; nothing in
// this module interprets it beyond passing it through to renderers.
//
// # Graph
//
// [Graph] holds the loaded records. It keeps nodes keyed by id while
// remembering document order, and partitions edges into hierarchy and
// dependency sequences at insertion time:
//
//	g := wbs.New()
//	g.AddNode(wbs.NodeRecord{ID: "1", Type: wbs.NodeTypeTask})
//	g.AddNode(wbs.NodeRecord{ID: "2", Type: wbs.NodeTypeTask})
//	g.AddEdge(wbs.EdgeRecord{ID: "e1", Source: "1", Target: "2", Type: wbs.EdgeTypeHierarchy})
//
// No structural validation happens here. Edges may reference ids that are
// not in the node set; such edges are kept and later produce no visible
// connection.
//
// # Concurrency
//
// A Graph is built once and then only read. Concurrent reads are safe;
// concurrent AddNode/AddEdge calls are not.
package wbs
