package hosttest

import (
	"reflect"
	"sync"
	"testing"
)

// Bindable is the surface the loop drives. *snapshot.Binding[T, U]
// satisfies it.
type Bindable[U any] interface {
	Snapshot() U
	Mount(onChange func())
	Unmount()
}

// Loop is a minimal host render loop. Every change notification triggers a
// render pass that reads the binding's snapshot twice: once as an
// interruptible host would on the first read, and again when committing the
// pass. A mismatch between the two reads is a violation of the
// stable-until-next-commit contract and is recorded.
type Loop[U any] struct {
	binding Bindable[U]

	mu       sync.Mutex
	renders  []U
	unstable int
	mounted  bool
}

// NewLoop creates a loop around the binding. The binding starts unmounted.
func NewLoop[U any](binding Bindable[U]) *Loop[U] {
	return &Loop[U]{binding: binding}
}

// Mount subscribes the loop to the binding and performs the initial render
// pass, the way a host renders a unit when it first appears.
func (l *Loop[U]) Mount() {
	l.mu.Lock()
	if l.mounted {
		l.mu.Unlock()
		return
	}
	l.mounted = true
	l.mu.Unlock()

	l.binding.Mount(l.render)
	l.render()
}

// Unmount tears the loop down. No render passes run afterwards. Idempotent.
func (l *Loop[U]) Unmount() {
	l.mu.Lock()
	l.mounted = false
	l.mu.Unlock()

	l.binding.Unmount()
}

// render is one pass: double-read the snapshot, record the result.
func (l *Loop[U]) render() {
	first := l.binding.Snapshot()
	second := l.binding.Snapshot()

	l.mu.Lock()
	defer l.mu.Unlock()
	if !reflect.DeepEqual(first, second) {
		l.unstable++
	}
	l.renders = append(l.renders, second)
}

// Renders returns a copy of every snapshot rendered so far, in order.
func (l *Loop[U]) Renders() []U {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]U, len(l.renders))
	copy(out, l.renders)
	return out
}

// RenderCount returns how many render passes have run.
func (l *Loop[U]) RenderCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.renders)
}

// Current returns the most recently rendered snapshot, or the zero value if
// no pass has run.
func (l *Loop[U]) Current() U {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.renders) == 0 {
		var zero U
		return zero
	}
	return l.renders[len(l.renders)-1]
}

// UnstableReads returns how many passes observed different values from the
// two snapshot reads. Always zero for a conforming binding.
func (l *Loop[U]) UnstableReads() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.unstable
}

// ExpectRenderCount fails the test unless the loop has rendered exactly
// want passes.
func ExpectRenderCount[U any](t *testing.T, l *Loop[U], want int) {
	t.Helper()
	if got := l.RenderCount(); got != want {
		t.Errorf("expected %d render passes, got %d", want, got)
	}
}

// ExpectStable fails the test if any render pass observed an unstable
// snapshot.
func ExpectStable[U any](t *testing.T, l *Loop[U]) {
	t.Helper()
	if n := l.UnstableReads(); n != 0 {
		t.Errorf("expected stable snapshots, got %d unstable render passes", n)
	}
}
