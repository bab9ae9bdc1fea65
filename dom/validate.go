package dom

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

// checkChildPlacement decides whether child may become a direct child of
// parent. It is consulted by the mutation entry points themselves, before
// anything is linked, so the same rules govern programmatic construction and
// cross-document import. Fragment nodes are expanded by the caller; the
// placement of each fragment child is checked individually.
func checkChildPlacement(parent *Node, child *Node) error {
	switch parent.kind {
	case DocumentNode:
		switch child.kind {
		case ElementNode, PINode, CommentNode, DoctypeNode:
			// restricted set of document children
		default:
			return domError(ErrHierarchy, "hierarchy.child.kind", child.kind, parent.kind)
		}
		if child.kind == ElementNode && documentElementOf(parent) != nil {
			return domError(ErrHierarchy, "hierarchy.document.element", child.name)
		}
		if child.kind == DoctypeNode && doctypeOf(parent) != nil {
			return domError(ErrHierarchy, "hierarchy.document.doctype", child.name)
		}
	case ElementNode, FragmentNode, EntityRefNode:
		switch child.kind {
		case ElementNode, TextNode, CDATANode, EntityRefNode, PINode, CommentNode:
		default:
			return domError(ErrHierarchy, "hierarchy.child.kind", child.kind, parent.kind)
		}
	case AttributeNode:
		switch child.kind {
		case TextNode, EntityRefNode:
		default:
			return domError(ErrHierarchy, "hierarchy.child.kind", child.kind, parent.kind)
		}
	default:
		// character data, comments, PIs and doctypes are leaves
		return domError(ErrHierarchy, "hierarchy.child.kind", child.kind, parent.kind)
	}
	return nil
}

// documentElementOf scans the direct children of a document node for its
// element child. The cardinality invariant keeps this cheap; the result is
// deliberately not cached.
func documentElementOf(docNode *Node) *Node {
	for c := docNode.firstChild; c != nil; c = c.nextSibling {
		if c.kind == ElementNode {
			return c
		}
	}
	return nil
}

// doctypeOf scans the direct children of a document node for its doctype.
func doctypeOf(docNode *Node) *Node {
	for c := docNode.firstChild; c != nil; c = c.nextSibling {
		if c.kind == DoctypeNode {
			return c
		}
	}
	return nil
}
