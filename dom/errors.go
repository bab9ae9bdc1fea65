package dom

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"errors"
	"fmt"

	"github.com/npillmayer/domtree/i18n"
	"golang.org/x/text/language"
)

// Structural errors
var (
	// ErrHierarchy indicates that a structural placement rule was broken.
	ErrHierarchy = errors.New("hierarchy violation")

	// ErrReadonlyNode indicates an attempt to mutate a node frozen read-only.
	ErrReadonlyNode = errors.New("node is read-only")

	// ErrWrongDocument indicates a node used with a document it is not owned by.
	ErrWrongDocument = errors.New("node belongs to a different document")

	// ErrNotFound indicates that a reference node is not where it was claimed
	// to be, e.g. not a child of the node it should be removed from.
	ErrNotFound = errors.New("node not found")

	// ErrInvalidName indicates a node factory call with an empty name.
	ErrInvalidName = errors.New("invalid node name")
)

// Import/clone errors
var (
	// ErrUnsupportedNodeKind indicates an import or clone of a node kind the
	// engine cannot copy.
	ErrUnsupportedNodeKind = errors.New("unsupported node kind")
)

// Strategy and traversal errors
var (
	// ErrMissingImplementation indicates an operation that needs the
	// document's implementation strategy while none is bound (typically
	// after a degraded snapshot restore).
	ErrMissingImplementation = errors.New("no implementation strategy bound")

	// ErrUnsupportedEvent indicates an event type no factory is registered for.
	ErrUnsupportedEvent = errors.New("unsupported event type")

	// ErrDetachedHandle indicates use of a traversal handle after Detach.
	ErrDetachedHandle = errors.New("traversal handle is detached")
)

// domError wraps a sentinel with a localized message resolved from key.
func domError(sentinel error, key string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", i18n.FormatMessage(key, args...), sentinel)
}

func init() {
	i18n.AddBundle(language.English, map[string]string{
		"hierarchy.child.kind":       "a %s node cannot be placed below a %s node",
		"hierarchy.document.element": "document already has a document element; cannot attach <%s>",
		"hierarchy.document.doctype": "document already has a doctype; cannot attach %s",
		"hierarchy.cycle":            "node %s is an ancestor of the insertion point",
		"import.kind":                "cannot import a node of kind %s",
		"import.document":            "a document node cannot be imported",
		"readonly.node":              "node %s is read-only",
		"wrong.document":             "node %s is owned by a different document",
		"node.not.found":             "node %s is not a child of %s",
		"missing.implementation":     "document has no implementation strategy",
		"event.type":                 "no event factory registered for type %q",
		"detached.handle":            "traversal handle has been detached",
		"invalid.name":               "empty name for a %s node",
	})
}
