/*
Package dom implements a document tree engine for hierarchical markup
documents.

Overview

The engine manages mutable trees of typed nodes (elements, attributes,
character data, processing instructions, comments, …) owned by a Document
aggregate. Structural mutation is gated by placement rules: a document may
carry at most one element child and at most one doctype child, and only a
restricted set of node kinds directly below it. Nodes may be copied within a
document (CloneNode) or carried across document boundaries (ImportNode),
including from foreign tree implementations such as parsed HTML trees.

Documents additionally maintain two kinds of auxiliary state that must stay
consistent under arbitrary edits:

▪︎ a cache of tag-name query results, held weakly so that it never keeps a
scope node alive and may be reclaimed at any time;

▪︎ a registry of live traversal handles (node iterators and tree walkers),
which are notified before a node is removed so they can re-anchor instead of
pointing at a detached node.

The engine performs no I/O and no internal locking; callers serialize
mutation of a document externally. Parsing markup text into a tree and
rendering a tree are left to surrounding collaborators, as is byte-level
serialization (see package snapshot for the durable form).

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package dom

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'domtree.dom'.
func tracer() tracing.Trace {
	return tracing.Select("domtree.dom")
}
