// Package snapshot adapts a store to a host render loop's external-store
// contract: a subscription slot plus a "read current snapshot" slot whose
// result is stable until the next commit.
//
// A Binding pairs one store with one selector and belongs to one consuming
// render unit. The host reads the selected slice through Snapshot and wires
// change notification through Mount/Unmount:
//
//	b := snapshot.Bind[Counter](s, func(c Counter) int { return c.Count })
//	b.Mount(scheduleRender)     // UNSUBSCRIBED -> SUBSCRIBED
//	defer b.Unmount()           // SUBSCRIBED -> UNSUBSCRIBED
//
//	// inside a render pass, possibly called several times:
//	count := b.Snapshot()
//
// # Stability
//
// Hosts with cooperative or interruptible scheduling may read the snapshot
// slot several times within one render pass. Two Snapshot calls with no
// intervening commit return the identical cached value; the selector runs
// at most once per commit version. Without this property a selector
// allocating a fresh value on every call would make the host believe the
// state changed on every read, re-rendering forever (or tearing, with
// different parts of one pass observing different values).
//
// The binding performs no equality short-circuiting on the selected value:
// every commit notifies a mounted binding, and the host decides by
// comparing snapshots whether anything relevant changed.
//
// The binding never polls and holds no timers; notifications flow only
// while mounted, driven by the store's commit path.
package snapshot
