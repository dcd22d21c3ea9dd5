package store

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Initializer produces a store's initial state. It receives the store being
// constructed so that actions stored in the state can close over it. The
// store's value is the zero value of T until the initializer returns, so
// Get inside the initializer reads the zero value.
type Initializer[T any] func(s *Store[T]) T

// MergeFunc combines the current state with a partial update to produce the
// next state. It must not mutate either argument.
type MergeFunc[T any] func(current, partial T) T

// Store owns a single state value, applies merges, and notifies subscribers
// after every commit.
//
// Exactly one live state reference exists per store at any time; Get always
// returns the latest. Notification is synchronous: by the time Set or
// SetFrom returns, all registered listeners have run.
type Store[T any] struct {
	name   string
	merge  MergeFunc[T]
	logger *slog.Logger

	// value is the current state.
	value T

	// mu protects value and serializes commits.
	mu sync.RWMutex

	// version counts commits. Incremented under mu so that GetVersioned
	// returns a consistent (state, version) pair.
	version atomic.Uint64

	// subs are the registered listeners, deduplicated by ID.
	subs []Listener

	// subMu protects the subs slice.
	subMu sync.RWMutex

	metrics *storeMetrics
	tracer  trace.Tracer
}

// New creates a store and runs the initializer exactly once to obtain the
// initial state. If the initializer panics, the panic propagates and no
// store is produced.
func New[T any](init Initializer[T], opts ...Option[T]) *Store[T] {
	s := &Store[T]{merge: Replace[T]}
	for _, opt := range opts {
		opt(s)
	}
	s.value = init(s)
	return s
}

// Get returns the current state reference. No side effects, never blocks on
// an in-flight notification.
func (s *Store[T]) Get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// GetVersioned returns the current state together with the commit version it
// belongs to. The pair is consistent: no commit can interleave between the
// two reads.
func (s *Store[T]) GetVersioned() (T, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value, s.version.Load()
}

// Version returns the number of commits applied so far. A freshly created
// store is at version 0.
func (s *Store[T]) Version() uint64 {
	return s.version.Load()
}

// Name returns the store name configured via WithName, or "".
func (s *Store[T]) Name() string {
	return s.name
}

// Set merges the partial value onto the current state using the store's
// merge strategy, commits the result, and notifies every registered
// listener exactly once. Listeners run even when the merged value equals
// the previous state; the store performs no equality short-circuiting.
func (s *Store[T]) Set(partial T) {
	s.apply("set", func(current T) T {
		return s.merge(current, partial)
	})
}

// SetFrom evaluates fn against the current state to obtain the partial
// value, then merges and commits like Set. If fn panics, the state and
// commit version are left unchanged and the panic propagates to the caller.
func (s *Store[T]) SetFrom(fn func(T) T) {
	s.apply("set_from", func(current T) T {
		return s.merge(current, fn(current))
	})
}

// Subscribe registers the listener and returns a cancel function that
// removes exactly that registration. Registering a listener whose ID is
// already present is a no-op. Cancel is idempotent and safe to call from
// inside a notification callback.
func (s *Store[T]) Subscribe(l Listener) (cancel func()) {
	if l == nil {
		return func() {}
	}

	s.subMu.Lock()
	lid := l.ID()
	dup := false
	for _, existing := range s.subs {
		if existing.ID() == lid {
			dup = true
			break
		}
	}
	if !dup {
		s.subs = append(s.subs, l)
	}
	s.subMu.Unlock()

	return func() { s.unsubscribe(lid) }
}

// SubscribeFunc registers a bare callback. Each call wraps fn in a listener
// with a fresh ID, so the same function subscribed twice is two
// registrations.
func (s *Store[T]) SubscribeFunc(fn func()) (cancel func()) {
	if fn == nil {
		return func() {}
	}
	return s.Subscribe(&funcListener{id: NextListenerID(), fn: fn})
}

// unsubscribe removes the listener with the given ID, if still registered.
func (s *Store[T]) unsubscribe(lid uint64) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	for i, existing := range s.subs {
		if existing.ID() == lid {
			// Remove by swapping with last element (order doesn't matter)
			s.subs[i] = s.subs[len(s.subs)-1]
			s.subs[len(s.subs)-1] = nil
			s.subs = s.subs[:len(s.subs)-1]
			return
		}
	}
}

// apply runs one commit: compute the next state, replace the reference,
// then notify. update runs under the write lock so concurrent SetFrom
// calls never lose updates.
func (s *Store[T]) apply(op string, update func(T) T) {
	var span trace.Span
	if s.tracer != nil {
		_, span = s.tracer.Start(context.Background(), "store.commit",
			trace.WithAttributes(
				attribute.String("store.name", s.name),
				attribute.String("store.op", op),
			))
		defer func() {
			if r := recover(); r != nil {
				span.SetStatus(codes.Error, fmt.Sprint(r))
				span.End()
				panic(r)
			}
			span.End()
		}()
	}

	start := time.Now()
	version := s.replace(update)
	notified := s.notifySubscribers()

	if s.metrics != nil {
		s.metrics.commits.Inc()
		s.metrics.notifications.Add(float64(notified))
		s.metrics.commitDuration.Observe(time.Since(start).Seconds())
	}
	if span != nil {
		span.SetAttributes(
			attribute.Int64("store.version", int64(version)),
			attribute.Int("store.listeners", notified),
		)
	}
	if s.logger != nil {
		s.logger.Debug("store commit",
			slog.String("store", s.name),
			slog.String("op", op),
			slog.Uint64("version", version),
			slog.Int("listeners", notified),
		)
	}
}

// replace swaps in the next state and bumps the version. The next state is
// computed before either assignment, so a panicking updater or merge
// strategy leaves the store untouched.
func (s *Store[T]) replace(update func(T) T) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := update(s.value)
	s.value = next
	return s.version.Add(1)
}

// notifySubscribers runs MarkDirty on every registered listener and returns
// how many were notified. Uses copy-before-notify so listeners can
// subscribe or cancel from inside their callback without deadlocking.
func (s *Store[T]) notifySubscribers() int {
	s.subMu.RLock()
	subs := make([]Listener, len(s.subs))
	copy(subs, s.subs)
	s.subMu.RUnlock()

	for _, sub := range subs {
		sub.MarkDirty()
	}
	return len(subs)
}
