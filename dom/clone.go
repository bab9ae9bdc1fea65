package dom

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

/*
The import engine is the only way a node's owning document changes — and it
does so by creating fresh nodes in the target document, never by re-homing.
Two paths exist: nodes produced by this engine take an optimized path that
duplicates internal state directly; foreign trees (anything satisfying
ForeignNode) go through a generic per-kind path driven by the target
document's factories. Both must be indistinguishable to an observer.

Import does not validate placement: the imported node is unattached, and the
structural rules apply when it is actually inserted somewhere. This keeps
import and attachment independently composable.
*/

// ForeignNode describes a node from a tree implementation not produced by
// this engine, for the generic import path.
type ForeignNode interface {
	Kind() NodeKind
	Namespace() string
	Name() string
	Value() string
	Attributes() []ForeignAttr
	Children() []ForeignNode
}

// ForeignAttr is an attribute of a foreign node.
type ForeignAttr interface {
	Namespace() string
	Name() string
	Value() string
	Specified() bool
}

// ImportNode copies a node produced by this engine into document d, taking
// the optimized native path. The copy is unattached. With deep set, the
// entire descendant subtree is imported; character data kinds are leaves
// regardless, and entity reference content is never copied (expansion is the
// target document's business). Document, doctype and fragment nodes cannot
// be imported.
func (d *Document) ImportNode(src *Node, deep bool) (*Node, error) {
	if src == nil {
		return nil, domError(ErrNotFound, "node.not.found", "nil", d.name)
	}
	switch src.kind {
	case DocumentNode:
		return nil, domError(ErrUnsupportedNodeKind, "import.document")
	case ElementNode, AttributeNode, TextNode, CDATANode,
		EntityRefNode, PINode, CommentNode:
		// importable
	default:
		return nil, domError(ErrUnsupportedNodeKind, "import.kind", src.kind)
	}
	n := src.duplicate(d)
	if n.kind == AttributeNode {
		n.specified = true // the copy is an explicit value in the target
	}
	if deep && src.kind != EntityRefNode {
		for c := src.firstChild; c != nil; c = c.nextSibling {
			cc, err := d.ImportNode(c, true)
			if err != nil {
				return nil, err
			}
			if err := n.AppendChild(cc); err != nil {
				return nil, err
			}
		}
	}
	tracer().Debugf("imported %v into %v (deep=%v)", src, d, deep)
	return n, nil
}

// duplicate makes a childless copy of n owned by target, copying only
// explicitly specified attributes; default-only attributes are left to the
// target document's own defaulting rules.
func (n *Node) duplicate(target *Document) *Node {
	c := &Node{
		kind:      n.kind,
		namespace: n.namespace,
		name:      n.name,
		value:     n.value,
		specified: n.specified,
		owner:     target,
	}
	for _, a := range n.attributes {
		if !a.Specified() {
			continue
		}
		c.attributes = append(c.attributes, a.duplicate(target))
	}
	return c
}

// ImportForeign copies a foreign node into document d through the generic
// per-kind path, using d's own factories. Semantics match ImportNode.
func (d *Document) ImportForeign(src ForeignNode, deep bool) (*Node, error) {
	var n *Node
	var err error
	switch src.Kind() {
	case ElementNode:
		n, err = d.CreateElementNS(src.Namespace(), src.Name())
		if err != nil {
			return nil, err
		}
		for _, a := range src.Attributes() {
			if !a.Specified() {
				continue
			}
			attr, aerr := d.CreateAttributeNS(a.Namespace(), a.Name())
			if aerr != nil {
				return nil, aerr
			}
			attr.value = a.Value()
			if aerr = n.SetAttributeNode(attr); aerr != nil {
				return nil, aerr
			}
		}
	case AttributeNode:
		n, err = d.CreateAttributeNS(src.Namespace(), src.Name())
		if err != nil {
			return nil, err
		}
		n.value = src.Value()
		deep = false
	case TextNode:
		n = d.CreateTextNode(src.Value())
		deep = false
	case CDATANode:
		n = d.CreateCDATASection(src.Value())
		deep = false
	case CommentNode:
		n = d.CreateComment(src.Value())
		deep = false
	case PINode:
		n = d.CreateProcessingInstruction(src.Name(), src.Value())
		deep = false
	case EntityRefNode:
		n = d.CreateEntityReference(src.Name())
		deep = false
	case DocumentNode:
		return nil, domError(ErrUnsupportedNodeKind, "import.document")
	default:
		return nil, domError(ErrUnsupportedNodeKind, "import.kind", src.Kind())
	}
	if deep {
		for _, fc := range src.Children() {
			cc, cerr := d.ImportForeign(fc, true)
			if cerr != nil {
				return nil, cerr
			}
			if cerr = n.AppendChild(cc); cerr != nil {
				return nil, cerr
			}
		}
	}
	return n, nil
}

// CloneNode duplicates the node within its own document. A shallow clone
// copies name, value and (for elements) the full attribute set including
// default attributes, but no children; a deep clone additionally clones the
// descendant subtree, preserving order. The clone is unattached and not
// validated against any parent. Cloning a document node yields a new
// Document whose children are re-imported through the import engine.
func (n *Node) CloneNode(deep bool) *Node {
	if n.kind == DocumentNode {
		return &n.owner.cloneDocument(deep).Node
	}
	c := &Node{
		kind:      n.kind,
		namespace: n.namespace,
		name:      n.name,
		value:     n.value,
		specified: n.specified,
		owner:     n.owner,
	}
	for _, a := range n.attributes {
		c.attributes = append(c.attributes, a.CloneNode(false))
	}
	if deep {
		for ch := n.firstChild; ch != nil; ch = ch.nextSibling {
			c.link(ch.CloneNode(true), nil)
		}
	}
	return c
}

func (d *Document) cloneDocument(deep bool) *Document {
	nd := NewDocument(d.impl)
	for name, defaults := range d.defaultAttrs {
		for _, da := range defaults {
			nd.RegisterDefaultAttribute(name, da.namespace, da.name, da.value)
		}
	}
	if deep {
		for c := d.firstChild; c != nil; c = c.nextSibling {
			if c.kind == DoctypeNode {
				// SetDoctype re-freezes the clone, matching the source.
				if err := nd.SetDoctype(nd.CreateDoctype(c.name)); err != nil {
					tracer().Errorf("document clone: %v", err)
				}
				continue
			}
			cc, err := nd.ImportNode(c, true)
			if err != nil {
				tracer().Errorf("document clone: %v", err)
				continue
			}
			if err = nd.AppendChild(cc); err != nil {
				tracer().Errorf("document clone: %v", err)
			}
		}
	}
	return nd
}
