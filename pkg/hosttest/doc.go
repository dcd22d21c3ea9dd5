// Package hosttest provides a reference host render loop for exercising
// snapshot bindings in tests, independent of any concrete UI framework.
//
// The hosttest package stands in for the external-store synchronization
// slot of a real host: it mounts a binding, re-reads the snapshot after
// every change notification, records each value it "rendered", and checks
// the stable-until-next-commit contract by reading the snapshot twice per
// pass.
//
// # Quick Start
//
//	func TestCounterRenders(t *testing.T) {
//	    s := store.New(initCounter)
//	    loop := hosttest.NewLoop[int](snapshot.Bind[Counter](s, selectCount))
//	    loop.Mount()
//	    defer loop.Unmount()
//
//	    s.SetFrom(increment)
//
//	    hosttest.ExpectRenderCount(t, loop, 2) // mount pass + one commit
//	    hosttest.ExpectStable(t, loop)
//	    if loop.Current() != 1 {
//	        t.Errorf("expected 1, got %d", loop.Current())
//	    }
//	}
package hosttest
