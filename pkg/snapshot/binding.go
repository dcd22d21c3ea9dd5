package snapshot

import "sync"

// Source is the store surface a binding needs. *store.Store[T] satisfies
// it; any implementation works as long as the version increases on every
// commit and subscribers are notified after the new state is readable.
type Source[T any] interface {
	// Get returns the current state.
	Get() T

	// GetVersioned returns the current state with the commit version it
	// belongs to, as a consistent pair.
	GetVersioned() (T, uint64)

	// SubscribeFunc registers a callback invoked after every commit and
	// returns an idempotent cancel function.
	SubscribeFunc(fn func()) (cancel func())
}

// Binding scopes a selector over a source for one consuming render unit.
// It caches the selector's output per commit version, giving the host a
// snapshot that is referentially stable until the next commit.
//
// A Binding is safe for concurrent use, but like the stores it wraps it is
// designed for a host that reads snapshots on the goroutine that receives
// change notifications.
type Binding[T, U any] struct {
	src      Source[T]
	selector func(T) U

	mu      sync.Mutex
	cached  U
	version uint64
	valid   bool

	// cancel is non-nil while mounted.
	cancel func()
}

// Bind creates a binding of selector over src. The selector must be pure
// and deterministic for a given state reference; it runs at most once per
// commit version. Panics if selector is nil — use BindState to observe the
// whole state.
func Bind[T, U any](src Source[T], selector func(T) U) *Binding[T, U] {
	if selector == nil {
		panic("snapshot: Bind called with nil selector")
	}
	return &Binding[T, U]{src: src, selector: selector}
}

// BindState creates a binding over the whole state (identity selector).
func BindState[T any](src Source[T]) *Binding[T, T] {
	return Bind(src, func(state T) T { return state })
}

// Snapshot fills the host's "read current snapshot" slot. It re-evaluates
// the selector only when the source has committed since the cached value
// was computed; otherwise the cached value is returned unchanged, so two
// calls with no intervening commit return the identical value.
//
// A panicking selector propagates to the caller and leaves the cache
// holding the previous valid snapshot.
func (b *Binding[T, U]) Snapshot() U {
	state, version := b.src.GetVersioned()

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.valid && version == b.version {
		return b.cached
	}

	next := b.selector(state)
	b.cached = next
	b.version = version
	b.valid = true
	return next
}

// Subscribe fills the host's subscription slot by delegating to the source.
// It works whether or not the binding is mounted.
func (b *Binding[T, U]) Subscribe(fn func()) (cancel func()) {
	return b.src.SubscribeFunc(fn)
}

// Mount transitions the binding to SUBSCRIBED: onChange will run after
// every commit until Unmount. Mounting an already-mounted binding is a
// no-op.
func (b *Binding[T, U]) Mount(onChange func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.cancel != nil {
		return
	}
	b.cancel = b.src.SubscribeFunc(onChange)
}

// Unmount transitions the binding back to UNSUBSCRIBED, cancelling the
// subscription taken by Mount. Idempotent.
func (b *Binding[T, U]) Unmount() {
	b.mu.Lock()
	cancel := b.cancel
	b.cancel = nil
	b.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

// Mounted reports whether the binding currently holds a subscription.
func (b *Binding[T, U]) Mounted() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cancel != nil
}
