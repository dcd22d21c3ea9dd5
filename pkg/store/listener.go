package store

import "sync/atomic"

// Listener is anything that can be notified when the store commits a new
// state. Membership in the subscriber set is identity-based: two listeners
// with the same ID count as one registration.
type Listener interface {
	// MarkDirty notifies the listener that the store has committed.
	// It is called synchronously on the committing goroutine.
	MarkDirty()

	// ID returns a unique identifier for this listener.
	// Used for deduplication and for cancel functions.
	ID() uint64
}

// globalIDCounter is the source of unique IDs for listeners.
// Using atomic operations ensures thread-safe ID generation without locks.
var globalIDCounter uint64

// NextListenerID returns a fresh unique listener ID.
// IDs are monotonically increasing and never reused.
func NextListenerID() uint64 {
	return atomic.AddUint64(&globalIDCounter, 1)
}

// funcListener adapts a bare callback to the Listener interface.
// Go functions are not comparable, so each wrapper gets a fresh ID and
// every SubscribeFunc call is a distinct registration.
type funcListener struct {
	id uint64
	fn func()
}

func (l *funcListener) MarkDirty() { l.fn() }

func (l *funcListener) ID() uint64 { return l.id }
