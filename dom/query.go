package dom

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

// ElementList is a live tag-name query result: its membership is re-derived
// from the tree whenever the owning document has mutated since the last
// access. "*" acts as a wildcard for either key part. The list never holds
// authoritative state; dropping it and re-querying is always equivalent.
type ElementList struct {
	doc       *Document
	scope     *Node
	namespace string
	local     string
	stamp     uint64
	members   []*Node
	fresh     bool
}

// Length returns the current number of matching elements.
func (l *ElementList) Length() int {
	l.refresh()
	return len(l.members)
}

// Item returns the i-th matching element in document order, or nil if i is
// out of range.
func (l *ElementList) Item(i int) *Node {
	l.refresh()
	if i < 0 || i >= len(l.members) {
		return nil
	}
	return l.members[i]
}

// Nodes returns the current matches in document order as a fresh slice.
func (l *ElementList) Nodes() []*Node {
	l.refresh()
	nodes := make([]*Node, len(l.members))
	copy(nodes, l.members)
	return nodes
}

// refresh re-derives membership when the document generation moved on.
func (l *ElementList) refresh() {
	if l.fresh && l.stamp == l.doc.generation {
		return
	}
	l.members = l.members[:0]
	l.collect(l.scope)
	l.stamp = l.doc.generation
	l.fresh = true
}

// collect walks the subtree below scope in document order. The scope node
// itself is not a candidate, matching tag-name query semantics.
func (l *ElementList) collect(scope *Node) {
	for c := scope.firstChild; c != nil; c = c.nextSibling {
		if c.kind == ElementNode && l.matches(c) {
			l.members = append(l.members, c)
		}
		l.collect(c)
	}
}

func (l *ElementList) matches(n *Node) bool {
	if l.namespace != "*" && l.namespace != n.namespace {
		return false
	}
	return l.local == "*" || l.local == n.LocalName()
}

// ElementsByTagNameNS returns the live list of elements below scope whose
// namespace and local name match, with "*" as wildcard. A nil scope means
// the whole document. The two-level result cache is consulted first, so the
// same (scope, namespace, localName) triple yields the same list instance as
// long as the cache retains it; the cache only spares list construction and
// never affects result contents.
func (d *Document) ElementsByTagNameNS(scope *Node, namespace, local string) *ElementList {
	if scope == nil {
		scope = &d.Node
	}
	if d.tagCache == nil {
		d.tagCache = newTagNameCache()
	}
	if l := d.tagCache.lookup(scope, namespace, local); l != nil {
		return l
	}
	l := &ElementList{doc: d, scope: scope, namespace: namespace, local: local}
	d.tagCache.store(scope, namespace, local, l)
	return l
}

// ElementsByTagName is ElementsByTagNameNS with a wildcard namespace.
func (d *Document) ElementsByTagName(scope *Node, name string) *ElementList {
	return d.ElementsByTagNameNS(scope, "*", name)
}
