/*
Package domdbg implements helpers to debug a document tree.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>


*/
package domdbg

import (
	"fmt"
	"io"
	"strings"

	"github.com/npillmayer/domtree/dom"
	tp "github.com/xlab/treeprint"
)

// Print renders the subtree below n as an indented ASCII tree, one line per
// node, attributes inline. Handy in test failure logs.
func Print(n *dom.Node) string {
	p := tp.New()
	ppt(p, n)
	return p.String()
}

// Dump writes the rendered subtree to w.
func Dump(w io.Writer, n *dom.Node) error {
	_, err := io.WriteString(w, Print(n))
	return err
}

func ppt(p tp.Tree, n *dom.Node) {
	if n == nil {
		return
	}
	if !n.HasChildNodes() {
		p.AddNode(label(n))
		return
	}
	branch := p.AddBranch(label(n))
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		ppt(branch, c)
	}
}

func label(n *dom.Node) string {
	var sb strings.Builder
	sb.WriteString(n.NodeType().String())
	sb.WriteString(" ")
	sb.WriteString(n.NodeName())
	if v := n.NodeValue(); v != "" {
		if len(v) > 20 {
			v = v[:20] + "…"
		}
		fmt.Fprintf(&sb, " %q", v)
	}
	for _, a := range n.Attributes() {
		fmt.Fprintf(&sb, " %s=%q", a.NodeName(), a.NodeValue())
		if !a.Specified() {
			sb.WriteString("(default)")
		}
	}
	return sb.String()
}
