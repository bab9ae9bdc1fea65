/*
Package snapshot persists documents across process boundaries.

Overview

A snapshot holds the durable part of a document: the tree content (node
kinds, names, values, explicitly specified attributes) and the identifying
tag of the implementation strategy in use — not the strategy object itself,
which may be process-local. Transient state (tag-name caches, traversal
registries, event support) is not persisted; a restored document starts with
all of it empty.

On restore, the strategy handle is re-derived from its tag through the
process-wide registry (dom.RestoreImplementation). If that fails, the
document is still fully usable for tree operations; only strategy-dependent
operations will fail, with dom.ErrMissingImplementation.

Default-only attributes are deliberately not written: the restoring
document's own defaulting rules re-instantiate them, the same stance the
import engine takes for cross-document copies.

The encoding is YAML, chosen for diffable snapshots; it is an
implementation detail, not a markup interchange format.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package snapshot

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/npillmayer/domtree/dom"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'domtree.snapshot'.
func tracer() tracing.Trace {
	return tracing.Select("domtree.snapshot")
}

// ErrBadSnapshot indicates a snapshot that cannot be decoded into a valid
// document tree.
var ErrBadSnapshot = errors.New("malformed document snapshot")

type documentRecord struct {
	Implementation string        `yaml:"implementation,omitempty"`
	Root           []*nodeRecord `yaml:"root"`
}

type nodeRecord struct {
	Kind      string        `yaml:"kind"`
	Namespace string        `yaml:"namespace,omitempty"`
	Name      string        `yaml:"name,omitempty"`
	Value     string        `yaml:"value,omitempty"`
	Attrs     []attrRecord  `yaml:"attrs,omitempty"`
	Children  []*nodeRecord `yaml:"children,omitempty"`
}

type attrRecord struct {
	Namespace string `yaml:"namespace,omitempty"`
	Name      string `yaml:"name"`
	Value     string `yaml:"value,omitempty"`
}

// Save writes a snapshot of doc to w.
func Save(w io.Writer, doc *dom.Document) error {
	rec := documentRecord{}
	if doc.Implementation() != nil {
		rec.Implementation = doc.Implementation().Name()
	}
	for c := doc.FirstChild(); c != nil; c = c.NextSibling() {
		rec.Root = append(rec.Root, record(c))
	}
	data, err := yaml.Marshal(rec)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// SaveFile writes a snapshot of doc to the named file.
func SaveFile(path string, doc *dom.Document) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return Save(f, doc)
}

func record(n *dom.Node) *nodeRecord {
	rec := &nodeRecord{
		Kind:      n.NodeType().String(),
		Namespace: n.NamespaceURI(),
		Value:     n.NodeValue(),
	}
	switch n.NodeType() {
	case dom.TextNode, dom.CDATANode, dom.CommentNode, dom.FragmentNode:
		// #-names are implied by the kind
	default:
		rec.Name = n.NodeName()
	}
	for _, a := range n.Attributes() {
		if !a.Specified() {
			continue
		}
		rec.Attrs = append(rec.Attrs, attrRecord{
			Namespace: a.NamespaceURI(),
			Name:      a.NodeName(),
			Value:     a.NodeValue(),
		})
	}
	if n.NodeType() == dom.EntityRefNode {
		return rec // expansion content is re-derived, not persisted
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		rec.Children = append(rec.Children, record(c))
	}
	return rec
}

// Load reads a snapshot from r and rebuilds the document, re-binding the
// implementation strategy by its tag. A strategy that cannot be re-derived
// degrades the document rather than failing the load.
func Load(r io.Reader) (*dom.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var rec documentRecord
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadSnapshot, err)
	}
	var impl dom.Implementation
	if rec.Implementation != "" {
		impl = dom.RestoreImplementation(rec.Implementation)
		if impl == nil {
			tracer().Infof("restoring document without implementation strategy %q",
				rec.Implementation)
		}
	}
	doc := dom.NewDocument(impl)
	for _, child := range rec.Root {
		n, err := build(doc, child)
		if err != nil {
			return nil, err
		}
		if n.NodeType() == dom.DoctypeNode {
			err = doc.SetDoctype(n) // re-freezes the doctype
		} else {
			err = doc.AppendChild(n)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadSnapshot, err)
		}
	}
	return doc, nil
}

// LoadFile reads a snapshot from the named file.
func LoadFile(path string) (*dom.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

func build(doc *dom.Document, rec *nodeRecord) (*dom.Node, error) {
	kind, ok := dom.ParseNodeKind(rec.Kind)
	if !ok {
		return nil, fmt.Errorf("%w: unknown node kind %q", ErrBadSnapshot, rec.Kind)
	}
	var n *dom.Node
	var err error
	switch kind {
	case dom.ElementNode:
		n, err = doc.CreateElementNS(rec.Namespace, rec.Name)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadSnapshot, err)
		}
		for _, a := range rec.Attrs {
			if err := n.SetAttributeNS(a.Namespace, a.Name, a.Value); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrBadSnapshot, err)
			}
		}
	case dom.TextNode:
		n = doc.CreateTextNode(rec.Value)
	case dom.CDATANode:
		n = doc.CreateCDATASection(rec.Value)
	case dom.CommentNode:
		n = doc.CreateComment(rec.Value)
	case dom.PINode:
		n = doc.CreateProcessingInstruction(rec.Name, rec.Value)
	case dom.EntityRefNode:
		n = doc.CreateEntityReference(rec.Name)
	case dom.DoctypeNode:
		n = doc.CreateDoctype(rec.Name)
	default:
		return nil, fmt.Errorf("%w: node kind %q cannot appear in a snapshot",
			ErrBadSnapshot, rec.Kind)
	}
	for _, child := range rec.Children {
		c, err := build(doc, child)
		if err != nil {
			return nil, err
		}
		if err := n.AppendChild(c); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadSnapshot, err)
		}
	}
	return n, nil
}
