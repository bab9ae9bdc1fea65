package dom

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import "sync"

// Implementation is the pluggable strategy handle of a document. It supplies
// document-wide factories; today that is event support, kept deliberately
// narrow so alternative DOM flavours can plug in without touching the tree
// engine.
type Implementation interface {
	Name() string // stable identifying tag, also the persisted form
	CreateEventSupport() *EventSupport
}

// Registration describes how to re-derive an implementation strategy from
// its identifying tag. Singleton is tried first (the shared process-wide
// instance); New is the fallback constructor for strategies without a
// shared instance.
type Registration struct {
	Singleton func() Implementation
	New       func() Implementation
}

var implRegistry = struct {
	sync.RWMutex
	known map[string]Registration
}{known: make(map[string]Registration)}

// RegisterImplementation makes a strategy re-derivable by tag. Intended to
// be called from package init of the strategy's home package.
func RegisterImplementation(tag string, reg Registration) {
	implRegistry.Lock()
	defer implRegistry.Unlock()
	implRegistry.known[tag] = reg
}

// RestoreImplementation re-derives a strategy handle from its identifying
// tag: the registered singleton accessor first, then the registered
// constructor, then nil. A nil result leaves the document usable for tree
// operations; strategy-dependent ones fail with ErrMissingImplementation.
func RestoreImplementation(tag string) Implementation {
	implRegistry.RLock()
	reg, ok := implRegistry.known[tag]
	implRegistry.RUnlock()
	if !ok {
		tracer().Errorf("implementation strategy %q is not registered", tag)
		return nil
	}
	if reg.Singleton != nil {
		if impl := reg.Singleton(); impl != nil {
			return impl
		}
		tracer().Infof("singleton accessor for strategy %q returned nothing", tag)
	}
	if reg.New != nil {
		if impl := reg.New(); impl != nil {
			tracer().Infof("strategy %q re-derived by construction, not from singleton", tag)
			return impl
		}
	}
	tracer().Errorf("strategy %q could not be re-derived, document will be degraded", tag)
	return nil
}

// --- Core implementation ---------------------------------------------------

// CoreImplementation is the engine's standard strategy.
type CoreImplementation struct{}

var coreImpl = &CoreImplementation{}

// Core returns the shared core implementation strategy.
func Core() Implementation {
	return coreImpl
}

// Name returns the identifying tag "core".
func (impl *CoreImplementation) Name() string {
	return "core"
}

// CreateEventSupport builds event support with the standard event types.
func (impl *CoreImplementation) CreateEventSupport() *EventSupport {
	es := NewEventSupport()
	es.RegisterEventFactory("Event", func() *Event { return &Event{} })
	es.RegisterEventFactory("MutationEvent", func() *Event {
		return &Event{Bubbles: true}
	})
	es.RegisterEventFactory("UIEvent", func() *Event {
		return &Event{Bubbles: true, Cancelable: true}
	})
	return es
}

func init() {
	RegisterImplementation("core", Registration{
		Singleton: Core,
		New:       func() Implementation { return &CoreImplementation{} },
	})
}
