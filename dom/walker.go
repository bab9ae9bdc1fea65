package dom

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

// TreeWalker navigates a filtered view of a subtree. Unlike a NodeIterator
// it has a free current position that callers move along parent, child and
// sibling axes. Rejected nodes hide their whole subtree; skipped nodes are
// replaced by their children in the walker's view.
type TreeWalker struct {
	doc              *Document
	root             *Node
	whatToShow       uint32
	filter           NodeFilter
	expandEntityRefs bool
	current          *Node
	detached         bool
}

// Root returns the subtree root the walker was created for.
func (w *TreeWalker) Root() *Node {
	return w.root
}

// CurrentNode returns the walker's current node.
func (w *TreeWalker) CurrentNode() *Node {
	return w.current
}

// SetCurrentNode repositions the walker. The node need not pass the filter;
// it only has to be inside the walker's root subtree.
func (w *TreeWalker) SetCurrentNode(n *Node) error {
	if w.detached {
		return domError(ErrDetachedHandle, "detached.handle")
	}
	if n == nil || !inShadowOf(n, w.root) {
		return domError(ErrNotFound, "node.not.found", "nil", w.root.name)
	}
	w.current = n
	return nil
}

// Detach deregisters the walker; any further navigation fails with
// ErrDetachedHandle.
func (w *TreeWalker) Detach() {
	if w.detached {
		return
	}
	w.detached = true
	if w.doc.traversal != nil {
		w.doc.traversal.detachWalker(w)
	}
}

// nodeToBeRemoved re-anchors the current node if it sits in the subtree
// about to be removed.
func (w *TreeWalker) nodeToBeRemoved(removed *Node) {
	if !inShadowOf(w.current, removed) {
		return
	}
	w.current = reanchor(removed)
	tracer().Debugf("tree walker re-anchored to %v", w.current)
}

// ParentNode moves to the nearest visible ancestor within root, if any.
func (w *TreeWalker) ParentNode() (*Node, error) {
	if w.detached {
		return nil, domError(ErrDetachedHandle, "detached.handle")
	}
	if w.current == w.root {
		return nil, nil
	}
	for n := w.current.parent; n != nil; n = n.parent {
		if accepted(n, w.whatToShow, w.filter) == FilterAccept {
			w.current = n
			return n, nil
		}
		if n == w.root {
			break
		}
	}
	return nil, nil
}

// FirstChild moves to the first visible child, if any.
func (w *TreeWalker) FirstChild() (*Node, error) {
	if w.detached {
		return nil, domError(ErrDetachedHandle, "detached.handle")
	}
	if n := w.visibleChild(w.current, false); n != nil {
		w.current = n
		return n, nil
	}
	return nil, nil
}

// LastChild moves to the last visible child, if any.
func (w *TreeWalker) LastChild() (*Node, error) {
	if w.detached {
		return nil, domError(ErrDetachedHandle, "detached.handle")
	}
	if n := w.visibleChild(w.current, true); n != nil {
		w.current = n
		return n, nil
	}
	return nil, nil
}

// NextSibling moves to the next visible sibling, if any.
func (w *TreeWalker) NextSibling() (*Node, error) {
	if w.detached {
		return nil, domError(ErrDetachedHandle, "detached.handle")
	}
	if n := w.visibleSibling(w.current, false); n != nil {
		w.current = n
		return n, nil
	}
	return nil, nil
}

// PreviousSibling moves to the previous visible sibling, if any.
func (w *TreeWalker) PreviousSibling() (*Node, error) {
	if w.detached {
		return nil, domError(ErrDetachedHandle, "detached.handle")
	}
	if n := w.visibleSibling(w.current, true); n != nil {
		w.current = n
		return n, nil
	}
	return nil, nil
}

// NextNode moves to the next visible node in document order.
func (w *TreeWalker) NextNode() (*Node, error) {
	if w.detached {
		return nil, domError(ErrDetachedHandle, "detached.handle")
	}
	n := w.current
	for {
		n = w.followingVisible(n)
		if n == nil {
			return nil, nil
		}
		if accepted(n, w.whatToShow, w.filter) == FilterAccept {
			w.current = n
			return n, nil
		}
	}
}

// PreviousNode moves to the previous visible node in document order.
func (w *TreeWalker) PreviousNode() (*Node, error) {
	if w.detached {
		return nil, domError(ErrDetachedHandle, "detached.handle")
	}
	n := w.current
	for {
		n = w.precedingVisible(n)
		if n == nil {
			return nil, nil
		}
		if accepted(n, w.whatToShow, w.filter) == FilterAccept {
			w.current = n
			return n, nil
		}
	}
}

// visibleChild finds the first (or last) accepted child of n, descending
// through skipped nodes and pruning rejected ones.
func (w *TreeWalker) visibleChild(n *Node, last bool) *Node {
	c := n.firstChild
	if last {
		c = n.lastChild
	}
	if n.kind == EntityRefNode && !w.expandEntityRefs {
		return nil
	}
	for c != nil {
		switch accepted(c, w.whatToShow, w.filter) {
		case FilterAccept:
			return c
		case FilterSkip:
			if g := w.visibleChild(c, last); g != nil {
				return g
			}
		}
		if last {
			c = c.prevSibling
		} else {
			c = c.nextSibling
		}
	}
	return nil
}

// visibleSibling finds the next (or previous) accepted sibling of n,
// looking through skipped siblings' children and past rejected ones.
func (w *TreeWalker) visibleSibling(n *Node, prev bool) *Node {
	if n == w.root {
		return nil
	}
	s := n.nextSibling
	if prev {
		s = n.prevSibling
	}
	for s != nil {
		switch accepted(s, w.whatToShow, w.filter) {
		case FilterAccept:
			return s
		case FilterSkip:
			if c := w.visibleChild(s, prev); c != nil {
				return c
			}
		}
		if prev {
			s = s.prevSibling
		} else {
			s = s.nextSibling
		}
	}
	return nil
}

// followingVisible is document-order successor traversal that prunes
// rejected subtrees and respects the root boundary.
func (w *TreeWalker) followingVisible(n *Node) *Node {
	res := accepted(n, w.whatToShow, w.filter)
	if res != FilterReject &&
		(n.kind != EntityRefNode || w.expandEntityRefs) && n.firstChild != nil {
		return n.firstChild
	}
	for ; n != nil && n != w.root; n = n.parent {
		if n.nextSibling != nil {
			return n.nextSibling
		}
	}
	return nil
}

// precedingVisible is document-order predecessor traversal that prunes
// rejected subtrees and respects the root boundary.
func (w *TreeWalker) precedingVisible(n *Node) *Node {
	if n == w.root {
		return nil
	}
	if n.prevSibling == nil {
		return n.parent
	}
	n = n.prevSibling
	for {
		if accepted(n, w.whatToShow, w.filter) == FilterReject {
			return n // do not descend into rejected subtrees
		}
		if n.lastChild == nil || (n.kind == EntityRefNode && !w.expandEntityRefs) {
			return n
		}
		n = n.lastChild
	}
}
