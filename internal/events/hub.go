// Package events is the small synchronous dispatcher that keeps views in step
// with model state. Handlers run on the caller's goroutine, in subscription order.
package events

// Kind enumerates the lifecycle notifications a Hub can carry.
type Kind int

const (
	Added Kind = iota
	Changed
	Removed
	Reset
)

func (k Kind) String() string {
	switch k {
	case Added:
		return "added"
	case Changed:
		return "changed"
	case Removed:
		return "removed"
	case Reset:
		return "reset"
	}
	return "unknown"
}

// Event is what handlers receive. Subject is whatever the emitter is about
// (a single entity for added/changed/removed, nil for reset).
type Event struct {
	Kind    Kind
	Subject any
}

// Handler reacts to one event.
type Handler func(Event)

type subscription struct {
	id int
	fn Handler
}

// Hub fans events out to the handlers registered for their kind.
// The zero value is ready to use. A Hub is not safe for concurrent use;
// everything that touches it runs on the single UI loop.
type Hub struct {
	next int
	subs map[Kind][]subscription
}

// On registers fn for kind and returns the func that removes it again.
// Calling the returned func more than once is harmless.
func (h *Hub) On(kind Kind, fn Handler) (off func()) {
	if h.subs == nil {
		h.subs = map[Kind][]subscription{}
	}
	h.next++
	id := h.next
	h.subs[kind] = append(h.subs[kind], subscription{id: id, fn: fn})
	return func() { h.remove(kind, id) }
}

// Emit delivers e to the handlers registered for e.Kind at the time of the call.
// Handlers added or removed while emitting take effect from the next Emit.
func (h *Hub) Emit(e Event) {
	subs := h.subs[e.Kind]
	if len(subs) == 0 {
		return
	}
	snapshot := make([]subscription, len(subs))
	copy(snapshot, subs)
	for _, s := range snapshot {
		s.fn(e)
	}
}

// Count reports how many handlers are registered for kind.
func (h *Hub) Count(kind Kind) int {
	return len(h.subs[kind])
}

func (h *Hub) remove(kind Kind, id int) {
	subs := h.subs[kind]
	for i, s := range subs {
		if s.id == id {
			// Copy so a snapshot held by a running Emit is not rewritten.
			out := make([]subscription, 0, len(subs)-1)
			out = append(out, subs[:i]...)
			out = append(out, subs[i+1:]...)
			h.subs[kind] = out
			return
		}
	}
}
