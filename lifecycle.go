package flexterm

import "flexterm/arena"

// OnMount queues fn to run once, immediately before the enclosing
// primitive finishes construction (spec §3 "on_mount callbacks run
// immediately after initialization", §9 Open Question: "a reasonable
// implementation fires mount before returning from the primitive, before
// the first frame is painted" — the resolution this package takes).
// Valid only while a Box's children closure is executing; called outside
// that, it logs a warning and does nothing (spec §7
// "Lifecycle-out-of-context... log a warning, no-op").
func OnMount(fn func()) {
	e := active()
	if e == nil {
		reportf("on_mount", "called with no mounted application")
		return
	}
	idx := e.Arena.Current()
	if idx == arena.None {
		reportf("on_mount", "called outside a primitive's children closure")
		return
	}
	e.mountQueue[idx] = append(e.mountQueue[idx], fn)
}

// OnDestroy queues fn to run (LIFO across all of an index's registered
// callbacks) when the enclosing component's cleanup closure releases it
// (spec §3 "Destroyed by invoking the cleanup closure, which... runs
// on_destroy callbacks"). Same out-of-context policy as OnMount.
func OnDestroy(fn func()) {
	e := active()
	if e == nil {
		reportf("on_destroy", "called with no mounted application")
		return
	}
	idx := e.Arena.Current()
	if idx == arena.None {
		reportf("on_destroy", "called outside a primitive's children closure")
		return
	}
	e.destroyCBs[idx] = append(e.destroyCBs[idx], fn)
}
