package domdbg_test

import (
	"strings"
	"testing"

	"github.com/npillmayer/domtree/dom"
	"github.com/npillmayer/domtree/dom/domdbg"
)

func TestPrint(t *testing.T) {
	doc := dom.NewDocument(dom.Core())
	root, err := doc.CreateElementNS("", "root")
	if err != nil {
		t.Fatal(err)
	}
	if err := root.SetAttributeNS("", "id", "r1"); err != nil {
		t.Fatal(err)
	}
	if err := doc.AppendChild(root); err != nil {
		t.Fatal(err)
	}
	if err := root.AppendChild(doc.CreateTextNode("payload")); err != nil {
		t.Fatal(err)
	}
	out := domdbg.Print(&doc.Node)
	t.Logf("dump =\n%s", out)
	for _, want := range []string{"element root", `id="r1"`, "text #text", "payload"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected dump to contain %q, doesn't", want)
		}
	}
}
