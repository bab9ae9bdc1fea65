package dom

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"runtime"
	"sync"
	"weak"
)

/*
The tag-name cache is a two-level association: scope node → (namespace,
localName) → result list. Both levels are weak. Scope keys are weak
pointers with a GC cleanup that drops the scope's whole inner table once
nothing else keeps the scope alive, so the cache never extends a scope
node's lifetime and memory stays bounded by live scopes. Inner entries hold
their result lists weakly too, so a list can be reclaimed while its scope
lives on; the next lookup then simply misses and the caller rebuilds.

Eviction is observationally safe at any time: the cache only spares
re-construction of result-list objects, it is never a source of truth.
Reclamation cleanups run on GC goroutines, so this is the one place in the
engine that locks.
*/

type tagNameKey struct {
	namespace string
	local     string
}

type scopeTable struct {
	entries map[tagNameKey]weak.Pointer[ElementList]
}

type tagNameCache struct {
	sync.Mutex
	scopes map[weak.Pointer[Node]]*scopeTable
}

func newTagNameCache() *tagNameCache {
	return &tagNameCache{scopes: make(map[weak.Pointer[Node]]*scopeTable)}
}

// lookup returns the cached list for (scope, namespace, local), or nil on a
// miss. A miss may be due to reclamation of either level; the caller
// rebuilds and stores.
func (tc *tagNameCache) lookup(scope *Node, namespace, local string) *ElementList {
	tc.Lock()
	defer tc.Unlock()
	t := tc.scopes[weak.Make(scope)]
	if t == nil {
		return nil
	}
	key := tagNameKey{namespace: namespace, local: local}
	ptr, ok := t.entries[key]
	if !ok {
		return nil
	}
	l := ptr.Value()
	if l == nil {
		delete(t.entries, key) // list was reclaimed
	}
	return l
}

// store caches a result list under (scope, namespace, local). The first
// entry for a scope installs a GC cleanup that removes the scope's whole
// table when the scope node becomes unreachable.
func (tc *tagNameCache) store(scope *Node, namespace, local string, l *ElementList) {
	tc.Lock()
	defer tc.Unlock()
	wk := weak.Make(scope)
	t := tc.scopes[wk]
	if t == nil {
		t = &scopeTable{entries: make(map[tagNameKey]weak.Pointer[ElementList])}
		tc.scopes[wk] = t
		runtime.AddCleanup(scope, func(key weak.Pointer[Node]) {
			tc.Lock()
			delete(tc.scopes, key)
			tc.Unlock()
		}, wk)
	}
	t.entries[tagNameKey{namespace: namespace, local: local}] = weak.Make(l)
}

// evictScope drops the inner table of a scope. Reclamation normally does
// this; tests use it to force a deterministic eviction.
func (tc *tagNameCache) evictScope(scope *Node) {
	tc.Lock()
	defer tc.Unlock()
	delete(tc.scopes, weak.Make(scope))
}
