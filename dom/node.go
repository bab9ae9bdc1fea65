package dom

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"
	"strings"
)

// NodeKind tags the variant of a tree node.
type NodeKind uint8

// The node kinds of the document tree.
const (
	ElementNode NodeKind = iota + 1
	AttributeNode
	TextNode
	CDATANode
	EntityRefNode
	PINode
	CommentNode
	DocumentNode
	DoctypeNode
	FragmentNode
)

var kindNames = map[NodeKind]string{
	ElementNode:   "element",
	AttributeNode: "attribute",
	TextNode:      "text",
	CDATANode:     "cdata-section",
	EntityRefNode: "entity-reference",
	PINode:        "processing-instruction",
	CommentNode:   "comment",
	DocumentNode:  "document",
	DoctypeNode:   "document-type",
	FragmentNode:  "document-fragment",
}

func (k NodeKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("node-kind(%d)", k)
}

// ParseNodeKind maps a kind name, as produced by NodeKind.String, back to
// the kind. It reports false for unknown names.
func ParseNodeKind(s string) (NodeKind, bool) {
	for k, name := range kindNames {
		if name == s {
			return k, true
		}
	}
	return 0, false
}

/*
We manage a tree of mutable nodes. A single node type carries a kind tag
instead of one struct type per kind; links are sibling-chained the way
golang.org/x/net/html lays out its parse trees. The owning document is fixed
at creation time and only ever changes by going through the import engine,
which creates fresh nodes rather than re-homing existing ones.
*/

// Node is the base type the document tree is built of. Nodes are created by
// the factory operations of a Document and are unattached until inserted.
type Node struct {
	kind        NodeKind
	namespace   string
	name        string // qualified name, or a #-name for unnamed kinds
	value       string
	parent      *Node
	firstChild  *Node
	lastChild   *Node
	prevSibling *Node
	nextSibling *Node
	attributes  []*Node // attribute nodes; elements only
	specified   bool    // attribute nodes: set explicitly, not by defaulting
	readonly    bool
	owner       *Document
}

func (n *Node) String() string {
	return fmt.Sprintf("(%s %s)", n.kind, n.name)
}

// NodeType returns the kind tag of the node.
func (n *Node) NodeType() NodeKind {
	return n.kind
}

// NodeName returns the node's name. Element and attribute nodes report their
// qualified name, processing instructions their target, entity references
// and doctypes their name; the remaining kinds report a fixed #-name.
func (n *Node) NodeName() string {
	return n.name
}

// NodeValue returns the node's character data: text content for character
// data kinds, the value for attributes, empty otherwise.
func (n *Node) NodeValue() string {
	return n.value
}

// NamespaceURI returns the namespace the node was created in.
func (n *Node) NamespaceURI() string {
	return n.namespace
}

// LocalName returns the node name with any namespace prefix stripped.
func (n *Node) LocalName() string {
	if i := strings.IndexByte(n.name, ':'); i >= 0 {
		return n.name[i+1:]
	}
	return n.name
}

// OwnerDocument returns the document that created this node. For the
// document node itself this is its own document.
func (n *Node) OwnerDocument() *Document {
	return n.owner
}

// ParentNode returns the parent node, or nil for unattached nodes and the
// document node. Attribute nodes never have a parent.
func (n *Node) ParentNode() *Node {
	return n.parent
}

// FirstChild returns the first child node or nil.
func (n *Node) FirstChild() *Node {
	return n.firstChild
}

// LastChild returns the last child node or nil.
func (n *Node) LastChild() *Node {
	return n.lastChild
}

// NextSibling returns the node's next sibling or nil if it is the last child.
func (n *Node) NextSibling() *Node {
	return n.nextSibling
}

// PreviousSibling returns the node's previous sibling or nil if it is the
// first child.
func (n *Node) PreviousSibling() *Node {
	return n.prevSibling
}

// HasChildNodes checks for the existence of child nodes.
func (n *Node) HasChildNodes() bool {
	return n.firstChild != nil
}

// ChildNodes returns the node's children as a fresh slice, in order.
func (n *Node) ChildNodes() []*Node {
	var children []*Node
	for c := n.firstChild; c != nil; c = c.nextSibling {
		children = append(children, c)
	}
	return children
}

// Readonly reports whether the node has been frozen against mutation.
func (n *Node) Readonly() bool {
	return n.readonly
}

// SetReadonly freezes or unfreezes the node and all of its descendants
// (and, for elements, their attributes).
func (n *Node) SetReadonly(ro bool) {
	n.readonly = ro
	for _, a := range n.attributes {
		a.readonly = ro
	}
	for c := n.firstChild; c != nil; c = c.nextSibling {
		c.SetReadonly(ro)
	}
}

// TextContent returns the concatenated character data of the node and its
// descendants, skipping comments and processing instructions.
func (n *Node) TextContent() string {
	switch n.kind {
	case TextNode, CDATANode:
		return n.value
	case CommentNode, PINode:
		return ""
	}
	var sb strings.Builder
	for c := n.firstChild; c != nil; c = c.nextSibling {
		sb.WriteString(c.TextContent())
	}
	return sb.String()
}

// SetNodeValue replaces the node's character data.
func (n *Node) SetNodeValue(v string) error {
	if n.readonly {
		return domError(ErrReadonlyNode, "readonly.node", n.name)
	}
	n.value = v
	n.owner.mutated()
	return nil
}

// --- Structural mutation ---------------------------------------------------

// AppendChild attaches child as the last child of n. The child is first
// detached from any previous parent (within the same document). Placement is
// validated up front; on failure the tree is left exactly as it was.
func (n *Node) AppendChild(child *Node) error {
	return n.insert(child, nil)
}

// InsertBefore attaches child immediately before ref, which must be a child
// of n. A nil ref appends. The same validation as AppendChild applies.
func (n *Node) InsertBefore(child *Node, ref *Node) error {
	if ref != nil && ref.parent != n {
		return domError(ErrNotFound, "node.not.found", ref.name, n.name)
	}
	return n.insert(child, ref)
}

func (n *Node) insert(child *Node, ref *Node) error {
	if child == nil {
		return domError(ErrNotFound, "node.not.found", "nil", n.name)
	}
	if n.readonly {
		return domError(ErrReadonlyNode, "readonly.node", n.name)
	}
	if child.owner != n.owner {
		return domError(ErrWrongDocument, "wrong.document", child.name)
	}
	if child.kind == FragmentNode {
		return n.insertFragment(child, ref)
	}
	if err := checkChildPlacement(n, child); err != nil {
		return err
	}
	for a := n; a != nil; a = a.parent {
		if a == child {
			return domError(ErrHierarchy, "hierarchy.cycle", child.name)
		}
	}
	if child.parent != nil {
		if err := child.parent.RemoveChild(child); err != nil {
			return err
		}
	}
	n.link(child, ref)
	n.owner.mutated()
	return nil
}

// insertFragment splices the fragment's children in place of the fragment.
// All children are validated before the first one moves, keeping the
// operation all-or-nothing. Validation must also count the children against
// each other, not just against the tree: a fragment carrying two elements
// (or two doctypes) headed for a document must fail as a whole, and no
// fragment child may be an ancestor of the insertion point.
func (n *Node) insertFragment(frag *Node, ref *Node) error {
	var pendingElement, pendingDoctype bool
	for c := frag.firstChild; c != nil; c = c.nextSibling {
		if err := checkChildPlacement(n, c); err != nil {
			return err
		}
		for a := n; a != nil; a = a.parent {
			if a == c {
				return domError(ErrHierarchy, "hierarchy.cycle", c.name)
			}
		}
		if n.kind == DocumentNode {
			switch c.kind {
			case ElementNode:
				if pendingElement {
					return domError(ErrHierarchy, "hierarchy.document.element", c.name)
				}
				pendingElement = true
			case DoctypeNode:
				if pendingDoctype {
					return domError(ErrHierarchy, "hierarchy.document.doctype", c.name)
				}
				pendingDoctype = true
			}
		}
	}
	for frag.firstChild != nil {
		c := frag.firstChild
		frag.unlink(c)
		n.link(c, ref)
	}
	n.owner.mutated()
	return nil
}

// RemoveChild detaches child from n. Active traversal handles are notified
// before the subtree is unlinked, so they can re-anchor.
func (n *Node) RemoveChild(child *Node) error {
	if child == nil || child.parent != n {
		name := "nil"
		if child != nil {
			name = child.name
		}
		return domError(ErrNotFound, "node.not.found", name, n.name)
	}
	if n.readonly {
		return domError(ErrReadonlyNode, "readonly.node", n.name)
	}
	n.owner.nodeToBeRemoved(child)
	n.unlink(child)
	n.owner.mutated()
	return nil
}

// link attaches child before ref (nil ref = append). Callers have validated.
func (n *Node) link(child *Node, ref *Node) {
	child.parent = n
	if ref == nil {
		child.prevSibling = n.lastChild
		child.nextSibling = nil
		if n.lastChild != nil {
			n.lastChild.nextSibling = child
		} else {
			n.firstChild = child
		}
		n.lastChild = child
		return
	}
	child.prevSibling = ref.prevSibling
	child.nextSibling = ref
	if ref.prevSibling != nil {
		ref.prevSibling.nextSibling = child
	} else {
		n.firstChild = child
	}
	ref.prevSibling = child
}

func (n *Node) unlink(child *Node) {
	if child.prevSibling != nil {
		child.prevSibling.nextSibling = child.nextSibling
	} else {
		n.firstChild = child.nextSibling
	}
	if child.nextSibling != nil {
		child.nextSibling.prevSibling = child.prevSibling
	} else {
		n.lastChild = child.prevSibling
	}
	child.parent = nil
	child.prevSibling = nil
	child.nextSibling = nil
}

// --- Attributes ------------------------------------------------------------

// HasAttributes checks whether an element node carries attributes.
func (n *Node) HasAttributes() bool {
	return len(n.attributes) > 0
}

// Attributes returns the node's attribute nodes, in attachment order.
// Only element nodes carry attributes.
func (n *Node) Attributes() []*Node {
	attrs := make([]*Node, len(n.attributes))
	copy(attrs, n.attributes)
	return attrs
}

// Specified reports, for attribute nodes, whether the attribute was set
// explicitly rather than instantiated from a default declaration.
func (n *Node) Specified() bool {
	return n.specified
}

// AttributeNS returns the attribute with the given namespace and local name,
// or nil.
func (n *Node) AttributeNS(namespace, local string) *Node {
	for _, a := range n.attributes {
		if a.namespace == namespace && a.LocalName() == local {
			return a
		}
	}
	return nil
}

// SetAttributeNS sets an attribute on an element node, creating or replacing
// the attribute node. The resulting attribute is marked as specified.
func (n *Node) SetAttributeNS(namespace, qualifiedName, value string) error {
	a, err := n.owner.CreateAttributeNS(namespace, qualifiedName)
	if err != nil {
		return err
	}
	a.value = value
	return n.SetAttributeNode(a)
}

// SetAttributeNode attaches an attribute node to an element, replacing any
// attribute of the same namespace and local name.
func (n *Node) SetAttributeNode(a *Node) error {
	if n.readonly {
		return domError(ErrReadonlyNode, "readonly.node", n.name)
	}
	if n.kind != ElementNode {
		return domError(ErrHierarchy, "hierarchy.child.kind", AttributeNode, n.kind)
	}
	if a == nil {
		return domError(ErrNotFound, "node.not.found", "nil", n.name)
	}
	if a.kind != AttributeNode {
		return domError(ErrHierarchy, "hierarchy.child.kind", a.kind, n.kind)
	}
	if a.owner != n.owner {
		return domError(ErrWrongDocument, "wrong.document", a.name)
	}
	for i, old := range n.attributes {
		if old.namespace == a.namespace && old.LocalName() == a.LocalName() {
			n.attributes[i] = a
			n.owner.mutated()
			return nil
		}
	}
	n.attributes = append(n.attributes, a)
	n.owner.mutated()
	return nil
}

// RemoveAttributeNS removes the attribute with the given namespace and local
// name, if present.
func (n *Node) RemoveAttributeNS(namespace, local string) error {
	if n.readonly {
		return domError(ErrReadonlyNode, "readonly.node", n.name)
	}
	for i, a := range n.attributes {
		if a.namespace == namespace && a.LocalName() == local {
			n.attributes = append(n.attributes[:i], n.attributes[i+1:]...)
			n.owner.mutated()
			return nil
		}
	}
	return nil
}
