package snapshot_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/npillmayer/domtree/dom"
	"github.com/npillmayer/domtree/dom/snapshot"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/require"
)

// threeLevelDocument builds a document with a 3-level element tree, a
// doctype, and a mix of attribute and character-data content.
func threeLevelDocument(t *testing.T) *dom.Document {
	t.Helper()
	doc := dom.NewDocument(dom.Core())
	require.NoError(t, doc.SetDoctype(doc.CreateDoctype("book")))
	book, err := doc.CreateElementNS("urn:book", "book")
	require.NoError(t, err)
	require.NoError(t, book.SetAttributeNS("", "id", "b1"))
	require.NoError(t, doc.AppendChild(book))
	chapter, err := doc.CreateElementNS("urn:book", "chapter")
	require.NoError(t, err)
	require.NoError(t, chapter.SetAttributeNS("", "title", "One"))
	require.NoError(t, book.AppendChild(chapter))
	para, err := doc.CreateElementNS("urn:book", "p")
	require.NoError(t, err)
	require.NoError(t, chapter.AppendChild(para))
	require.NoError(t, para.AppendChild(doc.CreateTextNode("Once upon a time")))
	require.NoError(t, para.AppendChild(doc.CreateCDATASection("<raw>")))
	require.NoError(t, chapter.AppendChild(doc.CreateComment("draft")))
	return doc
}

func sameTree(t *testing.T, a, b *dom.Node) {
	t.Helper()
	require.Equal(t, a.NodeType(), b.NodeType())
	require.Equal(t, a.NodeName(), b.NodeName())
	require.Equal(t, a.NodeValue(), b.NodeValue())
	require.Equal(t, a.NamespaceURI(), b.NamespaceURI())
	aa, ba := a.Attributes(), b.Attributes()
	require.Len(t, ba, len(aa))
	for i := range aa {
		require.Equal(t, aa[i].NodeName(), ba[i].NodeName())
		require.Equal(t, aa[i].NodeValue(), ba[i].NodeValue())
	}
	ac, bc := a.ChildNodes(), b.ChildNodes()
	require.Len(t, bc, len(ac))
	for i := range ac {
		sameTree(t, ac[i], bc[i])
	}
}

func TestRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "domtree.snapshot")
	defer teardown()
	//
	doc := threeLevelDocument(t)
	var buf bytes.Buffer
	require.NoError(t, snapshot.Save(&buf, doc))
	t.Logf("snapshot:\n%s", buf.String())
	//
	restored, err := snapshot.Load(&buf)
	require.NoError(t, err)
	sameTree(t, doc.DocumentElement(), restored.DocumentElement())
	require.NotNil(t, restored.Doctype(), "doctype must survive the round trip")
	require.True(t, restored.Doctype().Readonly(), "restored doctype must be frozen again")
	// strategy-dependent operation must work after restore
	ev, err := restored.CreateEvent("Event")
	require.NoError(t, err)
	require.Equal(t, "Event", ev.Type)
}

func TestRestoreRebindsStrategyByTag(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "domtree.snapshot")
	defer teardown()
	//
	doc := threeLevelDocument(t)
	var buf bytes.Buffer
	require.NoError(t, snapshot.Save(&buf, doc))
	restored, err := snapshot.Load(&buf)
	require.NoError(t, err)
	require.NotNil(t, restored.Implementation())
	require.Equal(t, "core", restored.Implementation().Name())
	// the tag resolves to the process-wide singleton, not a copy
	require.Same(t, dom.Core(), restored.Implementation())
}

func TestRestoreDegradesOnUnknownStrategy(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "domtree.snapshot")
	defer teardown()
	//
	in := strings.NewReader(`
implementation: no-such-strategy
root:
  - kind: element
    name: root
    children:
      - kind: text
        value: hello
`)
	restored, err := snapshot.Load(in)
	require.NoError(t, err, "unknown strategy must degrade, not fail the load")
	require.Nil(t, restored.Implementation())
	require.Equal(t, "hello", restored.DocumentElement().TextContent())
	// tree operations work, strategy-dependent ones fail
	el, err := restored.CreateElementNS("", "extra")
	require.NoError(t, err)
	require.NoError(t, restored.DocumentElement().AppendChild(el))
	require.ErrorIs(t, restored.AppendChild(el), dom.ErrHierarchy)
	_, err = restored.CreateEvent("Event")
	require.ErrorIs(t, err, dom.ErrMissingImplementation)
}

func TestTransientStateIsNotPersisted(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "domtree.snapshot")
	defer teardown()
	//
	doc := threeLevelDocument(t)
	// populate transient state
	_ = doc.ElementsByTagName(nil, "chapter")
	_ = doc.CreateNodeIterator(nil, dom.ShowAll, nil, false)
	var buf bytes.Buffer
	require.NoError(t, snapshot.Save(&buf, doc))
	require.NotContains(t, buf.String(), "iterator")
	require.NotContains(t, buf.String(), "cache")
}

func TestDefaultAttributesAreNotPersisted(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "domtree.snapshot")
	defer teardown()
	//
	doc := dom.NewDocument(dom.Core())
	doc.RegisterDefaultAttribute("chapter", "", "lang", "en")
	ch, err := doc.CreateElementNS("", "chapter")
	require.NoError(t, err)
	require.NoError(t, ch.SetAttributeNS("", "title", "One"))
	require.NoError(t, doc.AppendChild(ch))
	var buf bytes.Buffer
	require.NoError(t, snapshot.Save(&buf, doc))
	require.Contains(t, buf.String(), "title")
	require.NotContains(t, buf.String(), "lang")
	//
	restored, err := snapshot.Load(&buf)
	require.NoError(t, err)
	attrs := restored.DocumentElement().Attributes()
	require.Len(t, attrs, 1, "only the specified attribute is durable")
}

func TestLoadRejectsMalformedSnapshot(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "domtree.snapshot")
	defer teardown()
	//
	_, err := snapshot.Load(strings.NewReader("root: {kind: ["))
	require.Error(t, err)
	//
	_, err = snapshot.Load(strings.NewReader(`
root:
  - kind: flubber
    name: x
`))
	require.ErrorIs(t, err, snapshot.ErrBadSnapshot)
}

func TestSaveFileLoadFile(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "domtree.snapshot")
	defer teardown()
	//
	doc := threeLevelDocument(t)
	path := t.TempDir() + "/doc.yaml"
	require.NoError(t, snapshot.SaveFile(path, doc))
	restored, err := snapshot.LoadFile(path)
	require.NoError(t, err)
	sameTree(t, doc.DocumentElement(), restored.DocumentElement())
}
