// Package store provides an external observable store: a single state value,
// explicit update operations, and synchronous change notification.
//
// A store is created from an initializer that receives the store being
// constructed. Actions captured in the initial state can close over the store
// handle to read and update it later:
//
//	type Counter struct {
//	    Count int
//	    Inc   func()
//	}
//
//	s := store.New(func(s *store.Store[Counter]) Counter {
//	    return Counter{
//	        Inc: func() {
//	            s.SetFrom(func(c Counter) Counter {
//	                c.Count++
//	                return c
//	            })
//	        },
//	    }
//	})
//
// # Updates
//
// There are two update operations instead of one argument-sniffing entry
// point:
//
//	s.Set(partial)       // merge a partial value onto the current state
//	s.SetFrom(fn)        // derive the partial from the current state
//
// How a partial combines with the current state is the store's merge
// strategy. The default strategy is Replace (the partial becomes the next
// state). Map-shaped states use Shallow, which overwrites top-level keys
// only:
//
//	s := store.NewMap(func(s *store.Store[store.Map]) store.Map {
//	    return store.Map{"a": 1, "b": 2}
//	})
//	s.Set(store.Map{"a": 3})  // state is now {"a": 3, "b": 2}
//
// # Subscriptions
//
// Subscribers are notified synchronously on the committing goroutine after
// every commit, even when the merged value equals the previous one. By the
// time Set returns, every subscriber has already observed the new state via
// Get. Cancel functions are idempotent and safe to call from inside a
// notification callback; whether a listener removed mid-notification still
// receives the in-flight notification is unspecified.
//
// # Failure
//
// The initializer, updater functions and merge strategies signal failure by
// panicking. A panic propagates synchronously to the caller and never leaves
// partial state behind: a panicking initializer produces no store, and a
// panicking updater leaves both the state and the commit version untouched.
//
// # Thread Safety
//
// All store operations are safe for concurrent use. SetFrom evaluates its
// updater under the store's write lock, so concurrent functional updates
// never lose increments.
package store
