package dom

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

// What-to-show flags select node kinds for traversal handles.
const (
	ShowElement uint32 = 1 << iota
	ShowAttribute
	ShowText
	ShowCDATA
	ShowEntityRef
	ShowPI
	ShowComment
	ShowDocument
	ShowDoctype
	ShowFragment

	ShowAll uint32 = 0xFFFFFFFF
)

func showMask(k NodeKind) uint32 {
	return 1 << (uint32(k) - 1)
}

// FilterResult is a node filter's verdict.
type FilterResult int

// Filter verdicts. For node iterators, Reject and Skip are equivalent; for
// tree walkers, Reject prunes the whole subtree while Skip considers the
// node's children in its place.
const (
	FilterAccept FilterResult = iota + 1
	FilterReject
	FilterSkip
)

// NodeFilter decides whether a traversal handle presents a node.
type NodeFilter interface {
	AcceptNode(n *Node) FilterResult
}

// FilterFunc adapts a function to the NodeFilter interface.
type FilterFunc func(n *Node) FilterResult

// AcceptNode calls f.
func (f FilterFunc) AcceptNode(n *Node) FilterResult {
	return f(n)
}

// traversalSupport is the per-document registry of active traversal handles.
// It is notified before any node is removed, and re-anchors every handle
// whose reference sits inside the removed subtree — strictly before the
// structural removal happens.
type traversalSupport struct {
	iterators []*NodeIterator
	walkers   []*TreeWalker
}

func (ts *traversalSupport) nodeToBeRemoved(n *Node) {
	for _, it := range ts.iterators {
		it.nodeToBeRemoved(n)
	}
	for _, w := range ts.walkers {
		w.nodeToBeRemoved(n)
	}
}

func (ts *traversalSupport) detachIterator(it *NodeIterator) {
	for i, reg := range ts.iterators {
		if reg == it {
			ts.iterators = append(ts.iterators[:i], ts.iterators[i+1:]...)
			return
		}
	}
}

func (ts *traversalSupport) detachWalker(w *TreeWalker) {
	for i, reg := range ts.walkers {
		if reg == w {
			ts.walkers = append(ts.walkers[:i], ts.walkers[i+1:]...)
			return
		}
	}
}

// CreateNodeIterator registers a new node iterator rooted at root (nil =
// the document node). The iterator stays registered until Detach.
func (d *Document) CreateNodeIterator(root *Node, whatToShow uint32,
	filter NodeFilter, expandEntityRefs bool) *NodeIterator {
	//
	if root == nil {
		root = &d.Node
	}
	if d.traversal == nil {
		d.traversal = &traversalSupport{}
	}
	it := &NodeIterator{
		doc:              d,
		root:             root,
		whatToShow:       whatToShow,
		filter:           filter,
		expandEntityRefs: expandEntityRefs,
		reference:        root,
		beforeReference:  true,
	}
	d.traversal.iterators = append(d.traversal.iterators, it)
	tracer().Debugf("created node iterator at %v", root)
	return it
}

// CreateTreeWalker registers a new tree walker rooted at root (nil = the
// document node). The walker stays registered until Detach.
func (d *Document) CreateTreeWalker(root *Node, whatToShow uint32,
	filter NodeFilter, expandEntityRefs bool) *TreeWalker {
	//
	if root == nil {
		root = &d.Node
	}
	if d.traversal == nil {
		d.traversal = &traversalSupport{}
	}
	w := &TreeWalker{
		doc:              d,
		root:             root,
		whatToShow:       whatToShow,
		filter:           filter,
		expandEntityRefs: expandEntityRefs,
		current:          root,
	}
	d.traversal.walkers = append(d.traversal.walkers, w)
	tracer().Debugf("created tree walker at %v", root)
	return w
}

// DetachAllTraversals deregisters every active handle, marking each as
// detached. Used on document teardown.
func (d *Document) DetachAllTraversals() {
	if d.traversal == nil {
		return
	}
	for _, it := range d.traversal.iterators {
		it.detached = true
	}
	for _, w := range d.traversal.walkers {
		w.detached = true
	}
	d.traversal = nil
}

// accepted checks a node against whatToShow and the filter.
func accepted(n *Node, whatToShow uint32, filter NodeFilter) FilterResult {
	if whatToShow&showMask(n.kind) == 0 {
		return FilterSkip
	}
	if filter == nil {
		return FilterAccept
	}
	return filter.AcceptNode(n)
}

// reanchor computes the spot a traversal reference moves to when the node it
// sits on (or under) is removed: the removed node's previous sibling if one
// exists, else its parent.
func reanchor(removed *Node) *Node {
	if removed.prevSibling != nil {
		return removed.prevSibling
	}
	return removed.parent
}

// inShadowOf reports whether n is removed or one of removed's descendants.
func inShadowOf(n *Node, removed *Node) bool {
	for ; n != nil; n = n.parent {
		if n == removed {
			return true
		}
	}
	return false
}
