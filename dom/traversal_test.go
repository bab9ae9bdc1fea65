package dom_test

import (
	"errors"
	"testing"

	"github.com/npillmayer/domtree/dom"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// chainDocument builds a document with a root element carrying five child
// elements n1 … n5.
func chainDocument(t *testing.T) (*dom.Document, *dom.Node, []*dom.Node) {
	t.Helper()
	doc := dom.NewDocument(dom.Core())
	root := mustElement(t, doc, "root")
	if err := doc.AppendChild(root); err != nil {
		t.Fatal(err)
	}
	var chain []*dom.Node
	for _, name := range []string{"n1", "n2", "n3", "n4", "n5"} {
		n := mustElement(t, doc, name)
		if err := root.AppendChild(n); err != nil {
			t.Fatal(err)
		}
		chain = append(chain, n)
	}
	return doc, root, chain
}

func TestIteratorWalksDocumentOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "domtree.dom")
	defer teardown()
	//
	_, root, _ := chainDocument(t)
	it := root.OwnerDocument().CreateNodeIterator(root, dom.ShowElement, nil, false)
	var names []string
	for {
		n, err := it.NextNode()
		if err != nil {
			t.Fatal(err)
		}
		if n == nil {
			break
		}
		names = append(names, n.NodeName())
	}
	want := []string{"root", "n1", "n2", "n3", "n4", "n5"}
	if len(names) != len(want) {
		t.Fatalf("expected %d nodes, iterator yielded %d: %v", len(want), len(names), names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], names[i])
		}
	}
}

func TestIteratorPreviousNode(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "domtree.dom")
	defer teardown()
	//
	_, root, chain := chainDocument(t)
	it := root.OwnerDocument().CreateNodeIterator(root, dom.ShowElement, nil, false)
	for i := 0; i < 3; i++ { // root, n1, n2
		if _, err := it.NextNode(); err != nil {
			t.Fatal(err)
		}
	}
	n, err := it.PreviousNode()
	if err != nil {
		t.Fatal(err)
	}
	if n != chain[1] {
		t.Errorf("expected PreviousNode to yield n2, got %v", n)
	}
}

// TestIteratorReanchorsOnRemoval removes the middle node of a 5-node chain
// while an iterator references it; the iterator must re-anchor on the
// previous sibling before the removal completes.
func TestIteratorReanchorsOnRemoval(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "domtree.dom")
	defer teardown()
	//
	doc, root, chain := chainDocument(t)
	it := doc.CreateNodeIterator(root, dom.ShowElement, nil, false)
	for {
		n, err := it.NextNode()
		if err != nil {
			t.Fatal(err)
		}
		if n == chain[2] { // n3
			break
		}
		if n == nil {
			t.Fatal("iterator never reached n3")
		}
	}
	if err := root.RemoveChild(chain[2]); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if it.ReferenceNode() != chain[1] {
		t.Errorf("expected iterator to re-anchor on n2, references %v", it.ReferenceNode())
	}
	n, err := it.NextNode()
	if err != nil {
		t.Fatal(err)
	}
	if n != chain[3] {
		t.Errorf("expected iteration to continue at n4, got %v", n)
	}
}

func TestIteratorReanchorsToParentWithoutPriorSibling(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "domtree.dom")
	defer teardown()
	//
	doc, root, chain := chainDocument(t)
	it := doc.CreateNodeIterator(root, dom.ShowElement, nil, false)
	for {
		n, err := it.NextNode()
		if err != nil || n == nil {
			t.Fatal("iterator never reached n1")
		}
		if n == chain[0] {
			break
		}
	}
	if err := root.RemoveChild(chain[0]); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if it.ReferenceNode() != root {
		t.Errorf("expected iterator to re-anchor on the former parent, references %v",
			it.ReferenceNode())
	}
	n, err := it.NextNode()
	if err != nil {
		t.Fatal(err)
	}
	if n != chain[1] {
		t.Errorf("expected iteration to continue at n2, got %v", n)
	}
}

// TestDetachedIteratorIsNotRenotified detaches a handle and then removes its
// former anchor: no error, no re-anchoring of the detached handle.
func TestDetachedIteratorIsNotRenotified(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "domtree.dom")
	defer teardown()
	//
	doc, root, chain := chainDocument(t)
	it := doc.CreateNodeIterator(root, dom.ShowElement, nil, false)
	for {
		n, err := it.NextNode()
		if err != nil || n == nil {
			t.Fatal("iterator never reached n3")
		}
		if n == chain[2] {
			break
		}
	}
	it.Detach()
	if err := root.RemoveChild(chain[2]); err != nil {
		t.Fatalf("remove after detach failed: %v", err)
	}
	if it.ReferenceNode() != chain[2] {
		t.Error("detached iterator must not be re-anchored, was")
	}
	if _, err := it.NextNode(); !errors.Is(err, dom.ErrDetachedHandle) {
		t.Errorf("expected ErrDetachedHandle after Detach, got %v", err)
	}
}

func TestIteratorWhatToShow(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "domtree.dom")
	defer teardown()
	//
	doc := dom.NewDocument(dom.Core())
	root := mustElement(t, doc, "root")
	_ = doc.AppendChild(root)
	_ = root.AppendChild(doc.CreateTextNode("one"))
	_ = root.AppendChild(doc.CreateComment("two"))
	_ = root.AppendChild(doc.CreateTextNode("three"))
	it := doc.CreateNodeIterator(root, dom.ShowText, nil, false)
	count := 0
	for {
		n, err := it.NextNode()
		if err != nil {
			t.Fatal(err)
		}
		if n == nil {
			break
		}
		if n.NodeType() != dom.TextNode {
			t.Errorf("whatToShow let a %v through", n.NodeType())
		}
		count++
	}
	if count != 2 {
		t.Errorf("expected 2 text nodes, got %d", count)
	}
}

func TestWalkerNavigation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "domtree.dom")
	defer teardown()
	//
	doc, root, chain := chainDocument(t)
	w := doc.CreateTreeWalker(root, dom.ShowElement, nil, false)
	if n, _ := w.FirstChild(); n != chain[0] {
		t.Errorf("expected FirstChild to yield n1, got %v", n)
	}
	if n, _ := w.NextSibling(); n != chain[1] {
		t.Errorf("expected NextSibling to yield n2, got %v", n)
	}
	if n, _ := w.ParentNode(); n != root {
		t.Errorf("expected ParentNode to yield root, got %v", n)
	}
	if n, _ := w.LastChild(); n != chain[4] {
		t.Errorf("expected LastChild to yield n5, got %v", n)
	}
	if n, _ := w.PreviousSibling(); n != chain[3] {
		t.Errorf("expected PreviousSibling to yield n4, got %v", n)
	}
}

func TestWalkerFilterSkipAndReject(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "domtree.dom")
	defer teardown()
	//
	doc := dom.NewDocument(dom.Core())
	root := mustElement(t, doc, "root")
	_ = doc.AppendChild(root)
	skip := mustElement(t, doc, "skipme")
	inner := mustElement(t, doc, "inner")
	_ = skip.AppendChild(inner)
	reject := mustElement(t, doc, "rejectme")
	hidden := mustElement(t, doc, "hidden")
	_ = reject.AppendChild(hidden)
	_ = root.AppendChild(skip)
	_ = root.AppendChild(reject)
	//
	filter := dom.FilterFunc(func(n *dom.Node) dom.FilterResult {
		switch n.NodeName() {
		case "skipme":
			return dom.FilterSkip
		case "rejectme":
			return dom.FilterReject
		}
		return dom.FilterAccept
	})
	w := doc.CreateTreeWalker(root, dom.ShowElement, filter, false)
	if n, _ := w.FirstChild(); n != inner {
		t.Errorf("expected skipped node's child to surface, got %v", n)
	}
	if n, _ := w.NextSibling(); n != nil {
		t.Errorf("expected rejected subtree to be pruned, got %v", n)
	}
}

func TestWalkerReanchorsOnRemoval(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "domtree.dom")
	defer teardown()
	//
	doc, root, chain := chainDocument(t)
	w := doc.CreateTreeWalker(root, dom.ShowElement, nil, false)
	if err := w.SetCurrentNode(chain[2]); err != nil {
		t.Fatal(err)
	}
	if err := root.RemoveChild(chain[2]); err != nil {
		t.Fatal(err)
	}
	if w.CurrentNode() != chain[1] {
		t.Errorf("expected walker to re-anchor on n2, is at %v", w.CurrentNode())
	}
}

func TestExprFilter(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "domtree.dom")
	defer teardown()
	//
	doc, root, chain := chainDocument(t)
	_ = chain[1].SetAttributeNS("", "marked", "yes")
	_ = chain[3].SetAttributeNS("", "marked", "yes")
	filter, err := dom.CompileFilter(`kind == "element" && attr("marked") == "yes"`)
	if err != nil {
		t.Fatalf("cannot compile filter: %v", err)
	}
	it := doc.CreateNodeIterator(root, dom.ShowAll, filter, false)
	var got []*dom.Node
	for {
		n, err := it.NextNode()
		if err != nil {
			t.Fatal(err)
		}
		if n == nil {
			break
		}
		got = append(got, n)
	}
	if len(got) != 2 || got[0] != chain[1] || got[1] != chain[3] {
		t.Errorf("expected the two marked elements, got %v", got)
	}
}

func TestCompileFilterSyntaxError(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "domtree.dom")
	defer teardown()
	//
	if _, err := dom.CompileFilter(`kind == `); err == nil {
		t.Error("expected a compile error for a broken expression, got none")
	}
}

func TestDetachAllTraversals(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "domtree.dom")
	defer teardown()
	//
	doc, root, _ := chainDocument(t)
	it := doc.CreateNodeIterator(root, dom.ShowAll, nil, false)
	w := doc.CreateTreeWalker(root, dom.ShowAll, nil, false)
	doc.DetachAllTraversals()
	if _, err := it.NextNode(); !errors.Is(err, dom.ErrDetachedHandle) {
		t.Errorf("expected iterator to be detached on teardown, got %v", err)
	}
	if _, err := w.NextNode(); !errors.Is(err, dom.ErrDetachedHandle) {
		t.Errorf("expected walker to be detached on teardown, got %v", err)
	}
}
