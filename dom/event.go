package dom

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

// Event is the payload constructed for event dispatch. Dispatch itself is a
// collaborator's concern; this engine only builds the objects, through the
// document's implementation strategy.
type Event struct {
	Type       string
	Target     *Node
	Bubbles    bool
	Cancelable bool
}

// EventFactory produces a fresh, uninitialized event object.
type EventFactory func() *Event

// EventSupport maps event type names to factories. Each document builds one
// lazily from its implementation strategy and reuses it for its lifetime.
type EventSupport struct {
	factories map[string]EventFactory
}

// NewEventSupport creates empty event support.
func NewEventSupport() *EventSupport {
	return &EventSupport{factories: make(map[string]EventFactory)}
}

// RegisterEventFactory adds or replaces the factory for an event type.
func (es *EventSupport) RegisterEventFactory(eventType string, f EventFactory) {
	es.factories[eventType] = f
}

// CreateEvent builds an event of the given type, failing with
// ErrUnsupportedEvent for types no factory is registered for.
func (es *EventSupport) CreateEvent(eventType string) (*Event, error) {
	f, ok := es.factories[eventType]
	if !ok {
		return nil, domError(ErrUnsupportedEvent, "event.type", eventType)
	}
	ev := f()
	ev.Type = eventType
	return ev, nil
}
