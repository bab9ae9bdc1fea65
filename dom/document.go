package dom

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

// Document is the root aggregate of a tree. It owns the tree's nodes, the
// node factories, the tag-name result cache, and the registry of active
// traversal handles. All of these except the tree content are transient:
// a restored document starts with empty caches and registries.
type Document struct {
	Node
	impl          Implementation
	eventSupport  *EventSupport     // lazily built from impl
	traversal     *traversalSupport // lazily built on first handle
	tagCache      *tagNameCache     // lazily built on first query
	eventsEnabled bool
	generation    uint64 // bumped on every structural mutation
	defaultAttrs  map[string][]defaultAttr
}

type defaultAttr struct {
	namespace string
	name      string
	value     string
}

// NewDocument creates an empty document bound to the given implementation
// strategy. A nil strategy is allowed; operations that need one will fail
// with ErrMissingImplementation.
func NewDocument(impl Implementation) *Document {
	d := &Document{impl: impl}
	d.Node.kind = DocumentNode
	d.Node.name = "#document"
	d.Node.owner = d
	return d
}

// Implementation returns the document's implementation strategy handle,
// which may be nil after a degraded restore.
func (d *Document) Implementation() Implementation {
	return d.impl
}

// EventsEnabled tests whether event dispatching must be done.
func (d *Document) EventsEnabled() bool {
	return d.eventsEnabled
}

// SetEventsEnabled switches event dispatching on or off.
func (d *Document) SetEventsEnabled(b bool) {
	d.eventsEnabled = b
}

// DocumentElement returns the document's element child, or nil. This is a
// linear scan over the direct children; the placement rules guarantee there
// is at most one.
func (d *Document) DocumentElement() *Node {
	return documentElementOf(&d.Node)
}

// Doctype returns the document's doctype child, or nil.
func (d *Document) Doctype() *Node {
	return doctypeOf(&d.Node)
}

// SetDoctype appends dt as the document's doctype and freezes it: once
// attached, a doctype is read-only and cannot be mutated in place.
func (d *Document) SetDoctype(dt *Node) error {
	if dt == nil {
		return nil
	}
	if err := d.AppendChild(dt); err != nil {
		return err
	}
	dt.SetReadonly(true)
	return nil
}

// Generation returns the document's mutation stamp. Live query results use
// it to detect staleness of their member snapshots.
func (d *Document) Generation() uint64 {
	return d.generation
}

func (d *Document) mutated() {
	d.generation++
}

// nodeToBeRemoved tells the document that a node is about to be detached,
// before any link changes. Active traversal handles re-anchor here.
func (d *Document) nodeToBeRemoved(n *Node) {
	if d.traversal != nil {
		d.traversal.nodeToBeRemoved(n)
	}
}

// --- Node factories --------------------------------------------------------

// CreateElementNS creates an unattached element node with the given
// namespace and qualified name. Attributes declared as defaults for this
// element name are instantiated on it, marked as not specified.
func (d *Document) CreateElementNS(namespace, qualifiedName string) (*Node, error) {
	if qualifiedName == "" {
		return nil, domError(ErrInvalidName, "invalid.name", ElementNode)
	}
	e := &Node{kind: ElementNode, namespace: namespace, name: qualifiedName, owner: d}
	for _, da := range d.defaultAttrs[qualifiedName] {
		a := &Node{kind: AttributeNode, namespace: da.namespace, name: da.name,
			value: da.value, owner: d}
		e.attributes = append(e.attributes, a)
	}
	return e, nil
}

// CreateElement creates an element node in the empty namespace.
func (d *Document) CreateElement(name string) (*Node, error) {
	return d.CreateElementNS("", name)
}

// CreateAttributeNS creates an unattached attribute node, marked specified.
func (d *Document) CreateAttributeNS(namespace, qualifiedName string) (*Node, error) {
	if qualifiedName == "" {
		return nil, domError(ErrInvalidName, "invalid.name", AttributeNode)
	}
	return &Node{kind: AttributeNode, namespace: namespace, name: qualifiedName,
		specified: true, owner: d}, nil
}

// CreateTextNode creates a text node carrying data.
func (d *Document) CreateTextNode(data string) *Node {
	return &Node{kind: TextNode, name: "#text", value: data, owner: d}
}

// CreateCDATASection creates a CDATA section node carrying data.
func (d *Document) CreateCDATASection(data string) *Node {
	return &Node{kind: CDATANode, name: "#cdata-section", value: data, owner: d}
}

// CreateComment creates a comment node carrying data.
func (d *Document) CreateComment(data string) *Node {
	return &Node{kind: CommentNode, name: "#comment", value: data, owner: d}
}

// CreateProcessingInstruction creates a processing instruction node.
func (d *Document) CreateProcessingInstruction(target, data string) *Node {
	return &Node{kind: PINode, name: target, value: data, owner: d}
}

// CreateEntityReference creates an entity reference node. Its expansion
// content is owned by the document's entity handling, not by the node.
func (d *Document) CreateEntityReference(name string) *Node {
	return &Node{kind: EntityRefNode, name: name, owner: d}
}

// CreateDocumentFragment creates an empty fragment node. Inserting a
// fragment splices its children in place of the fragment.
func (d *Document) CreateDocumentFragment() *Node {
	return &Node{kind: FragmentNode, name: "#document-fragment", owner: d}
}

// CreateDoctype creates an unattached doctype node.
func (d *Document) CreateDoctype(name string) *Node {
	return &Node{kind: DoctypeNode, name: name, owner: d}
}

// RegisterDefaultAttribute declares a default attribute for elements with
// the given qualified name. Elements created afterwards carry the attribute
// with Specified() == false; the import engine will not copy such
// attributes, leaving defaulting to the target document.
func (d *Document) RegisterDefaultAttribute(elementName, namespace, attrName, value string) {
	if d.defaultAttrs == nil {
		d.defaultAttrs = make(map[string][]defaultAttr)
	}
	d.defaultAttrs[elementName] = append(d.defaultAttrs[elementName],
		defaultAttr{namespace: namespace, name: attrName, value: value})
}

// CreateEvent builds an event object of the given type through the
// document's implementation strategy. The event support object is
// constructed on first use and reused for the document's lifetime.
func (d *Document) CreateEvent(eventType string) (*Event, error) {
	if d.eventSupport == nil {
		if d.impl == nil {
			return nil, domError(ErrMissingImplementation, "missing.implementation")
		}
		d.eventSupport = d.impl.CreateEventSupport()
	}
	return d.eventSupport.CreateEvent(eventType)
}
