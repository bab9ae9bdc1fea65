package dom

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

// NodeIterator presents the nodes of a subtree in document order, filtered
// by what-to-show flags and an optional NodeFilter. An iterator is anchored
// in its document's traversal registry while active and is re-anchored
// before any node it references is removed, so it never points at a
// detached node.
type NodeIterator struct {
	doc              *Document
	root             *Node
	whatToShow       uint32
	filter           NodeFilter
	expandEntityRefs bool
	reference        *Node
	beforeReference  bool
	detached         bool
}

// Root returns the subtree root the iterator was created for.
func (it *NodeIterator) Root() *Node {
	return it.root
}

// ReferenceNode returns the iterator's current reference node.
func (it *NodeIterator) ReferenceNode() *Node {
	return it.reference
}

// NextNode returns the next node in document order that passes the filter,
// or nil at the end of the subtree.
func (it *NodeIterator) NextNode() (*Node, error) {
	if it.detached {
		return nil, domError(ErrDetachedHandle, "detached.handle")
	}
	n, before := it.reference, it.beforeReference
	for {
		if before {
			before = false
		} else {
			n = it.following(n)
			if n == nil {
				return nil, nil
			}
		}
		if accepted(n, it.whatToShow, it.filter) == FilterAccept {
			it.reference, it.beforeReference = n, false
			return n, nil
		}
	}
}

// PreviousNode returns the previous node in document order that passes the
// filter, or nil at the beginning of the subtree.
func (it *NodeIterator) PreviousNode() (*Node, error) {
	if it.detached {
		return nil, domError(ErrDetachedHandle, "detached.handle")
	}
	n, before := it.reference, it.beforeReference
	for {
		if before {
			n = it.preceding(n)
			if n == nil {
				return nil, nil
			}
		} else {
			before = true
		}
		if accepted(n, it.whatToShow, it.filter) == FilterAccept {
			it.reference, it.beforeReference = n, true
			return n, nil
		}
	}
}

// Detach deregisters the iterator. Any further iteration fails with
// ErrDetachedHandle; a detached iterator is no longer notified of removals.
func (it *NodeIterator) Detach() {
	if it.detached {
		return
	}
	it.detached = true
	if it.doc.traversal != nil {
		it.doc.traversal.detachIterator(it)
	}
}

// nodeToBeRemoved re-anchors the reference if it sits in the subtree about
// to be removed. Called by the registry before the structural removal.
func (it *NodeIterator) nodeToBeRemoved(removed *Node) {
	if !inShadowOf(it.reference, removed) {
		return
	}
	it.reference, it.beforeReference = reanchor(removed), false
	tracer().Debugf("iterator re-anchored to %v", it.reference)
}

// following returns the next node after n in document order within the
// iterator's root subtree, or nil. Entity reference content is skipped
// unless expansion was requested.
func (it *NodeIterator) following(n *Node) *Node {
	if n.firstChild != nil && (n.kind != EntityRefNode || it.expandEntityRefs) {
		return n.firstChild
	}
	for ; n != nil && n != it.root; n = n.parent {
		if n.nextSibling != nil {
			return n.nextSibling
		}
	}
	return nil
}

// preceding returns the node before n in document order within the
// iterator's root subtree, or nil.
func (it *NodeIterator) preceding(n *Node) *Node {
	if n == it.root {
		return nil
	}
	if n.prevSibling == nil {
		return n.parent
	}
	n = n.prevSibling
	for n.lastChild != nil && (n.kind != EntityRefNode || it.expandEntityRefs) {
		n = n.lastChild
	}
	return n
}
