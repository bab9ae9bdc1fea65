package dom

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import "golang.org/x/net/html"

// HTMLNode wraps a parsed HTML node as a ForeignNode, so subtrees produced
// by the golang.org/x/net/html parser can feed the generic import path:
//
//	frag, err := doc.ImportForeign(dom.HTMLNode(htmlNode), true)
//
// HTML has no notion of default attributes, so every attribute reports
// Specified() == true.
func HTMLNode(n *html.Node) ForeignNode {
	return htmlForeign{n: n}
}

type htmlForeign struct {
	n *html.Node
}

func (h htmlForeign) Kind() NodeKind {
	switch h.n.Type {
	case html.ElementNode:
		return ElementNode
	case html.TextNode:
		return TextNode
	case html.CommentNode:
		return CommentNode
	case html.DoctypeNode:
		return DoctypeNode
	case html.DocumentNode:
		return DocumentNode
	}
	return 0
}

func (h htmlForeign) Namespace() string {
	return h.n.Namespace
}

func (h htmlForeign) Name() string {
	return h.n.Data
}

func (h htmlForeign) Value() string {
	switch h.n.Type {
	case html.TextNode, html.CommentNode:
		return h.n.Data
	}
	return ""
}

func (h htmlForeign) Attributes() []ForeignAttr {
	attrs := make([]ForeignAttr, len(h.n.Attr))
	for i, a := range h.n.Attr {
		attrs[i] = htmlAttr{a: a}
	}
	return attrs
}

func (h htmlForeign) Children() []ForeignNode {
	var children []ForeignNode
	for c := h.n.FirstChild; c != nil; c = c.NextSibling {
		children = append(children, htmlForeign{n: c})
	}
	return children
}

type htmlAttr struct {
	a html.Attribute
}

func (h htmlAttr) Namespace() string { return h.a.Namespace }
func (h htmlAttr) Name() string      { return h.a.Key }
func (h htmlAttr) Value() string     { return h.a.Val }
func (h htmlAttr) Specified() bool   { return true }
