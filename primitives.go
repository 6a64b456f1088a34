package flexterm

import (
	"strconv"

	"flexterm/arena"
	"flexterm/reactive"
)

// Box allocates a container component, applies props, then runs children
// inside the new component's arena parent-context and lexical-context
// frame (spec §6 "box(props, children)"). on_mount callbacks queued
// during children() fire immediately before Box returns (spec §3 "on_mount
// callbacks run immediately after initialization").
func Box(props BoxProps, children func()) arena.Index {
	e := active()
	if e == nil {
		reportf("box", "called with no mounted application")
		return arena.None
	}

	idx := e.Arena.Allocate(props.ID)
	applyBoxProps(e.Store, idx, props)

	e.Arena.PushParentContext(idx)
	e.Arena.PushCurrent(idx)
	e.pushContextFrame()

	if children != nil {
		runGuarded("box.children", children)
	}

	e.popContextFrame()
	e.Arena.PopCurrent()
	e.Arena.PopParentContext()

	e.runMountCallbacks(idx)
	return idx
}

// Text allocates a leaf text component (spec §6 "text(props)"). It takes
// no children closure, so on_mount callbacks queued for its index (there
// are none, since OnMount requires a children closure to run inside) never
// accumulate.
func Text(props TextProps) arena.Index {
	e := active()
	if e == nil {
		reportf("text", "called with no mounted application")
		return arena.None
	}

	idx := e.Arena.Allocate(props.ID)
	applyTextProps(e.Store, idx, props)
	e.runMountCallbacks(idx)
	return idx
}

// Show mounts then() when cond() is true and els() (if given) otherwise,
// re-evaluating whenever a signal cond reads changes (spec §6 "show(getter,
// then, else?)"). The previous branch's scope is stopped before the new
// branch builds, so its components are fully released first (spec §5
// "show() and when() wrap their branch in an EffectScope; on condition
// change or disposal, the old branch's scope is stopped").
//
// The branch scope is a standalone reactive.NewScope(), not a child of the
// enclosing component's scope: Scope.children only grows, so parenting a
// scope that gets discarded and replaced on every condition flip would leak
// one stale entry per flip for the lifetime of the mount.
func Show(cond func() bool, then func(), els func()) {
	e := active()
	if e == nil {
		reportf("show", "called with no mounted application")
		return
	}

	var branch *reactive.Scope
	teardown := func() {
		if branch != nil {
			branch.Stop()
			branch = nil
		}
	}

	eff := reactive.CreateEffect(func() {
		on := cond()
		teardown()
		branch = reactive.NewScope()
		e.pushScope(branch)
		defer e.popScope()

		switch {
		case on && then != nil:
			runGuarded("show.then", then)
		case !on && els != nil:
			runGuarded("show.else", els)
		}
	})

	OnDestroy(func() {
		eff.Dispose()
		teardown()
	})
}

// AsyncStatus is the resolution state an AsyncState reports (spec §6
// "when(promise_getter, {pending, then, catch})"). The engine has no
// coroutines or awaits (spec §5 "Suspension points: none"), so async work
// is modeled as a signal-backed state machine the caller mutates from
// outside the render path (a goroutine, a callback) rather than a native
// promise/future.
type AsyncStatus int

const (
	AsyncPending AsyncStatus = iota
	AsyncResolved
	AsyncRejected
)

// AsyncState is the value a when() getter returns: the current status of
// some asynchronous operation plus its resolved value or error.
type AsyncState[T any] struct {
	Status AsyncStatus
	Value  T
	Err    error
}

// WhenHandlers holds the three branches when() dispatches between.
type WhenHandlers[T any] struct {
	Pending func()
	Then    func(value T)
	Catch   func(err error)
}

// When mounts Pending/Then/Catch according to promise().Status, rebuilding
// on every status transition the same way Show rebuilds on condition flip
// (spec §6 "when(promise_getter, {pending, then, catch})").
func When[T any](promise func() *AsyncState[T], h WhenHandlers[T]) {
	e := active()
	if e == nil {
		reportf("when", "called with no mounted application")
		return
	}

	var branch *reactive.Scope
	teardown := func() {
		if branch != nil {
			branch.Stop()
			branch = nil
		}
	}

	eff := reactive.CreateEffect(func() {
		state := promise()
		teardown()
		branch = reactive.NewScope()
		e.pushScope(branch)
		defer e.popScope()

		switch state.Status {
		case AsyncPending:
			if h.Pending != nil {
				runGuarded("when.pending", h.Pending)
			}
		case AsyncResolved:
			if h.Then != nil {
				v := state.Value
				runGuarded("when.then", func() { h.Then(v) })
			}
		case AsyncRejected:
			if h.Catch != nil {
				err := state.Err
				runGuarded("when.catch", func() { h.Catch(err) })
			}
		}
	})

	OnDestroy(func() {
		eff.Dispose()
		teardown()
	})
}

// EachOptions configures keyed reconciliation for Each.
type EachOptions[T any] struct {
	// Key returns a stable identity for item at index i. Items whose key
	// persists across a recompute keep their existing component(s) and
	// are not re-rendered; items whose key disappears are released.
	// Defaults to the item's positional index when nil.
	Key func(item T, index int) string
}

type eachItem struct {
	idx   arena.Index
	scope *reactive.Scope
}

// Each keeps one primitive subtree per element of items(), reusing it
// across recomputes when its key persists and releasing it when the key
// disappears (spec §6 "each(getter_of_list, render_item, {key})"). render
// returns the arena.Index of the root component it built, mirroring Box's
// own return value, so Each can release exactly that subtree on removal
// without needing render to register its own cleanup.
func Each[T any](items func() []T, render func(item T, index int) arena.Index, opts EachOptions[T]) {
	e := active()
	if e == nil {
		reportf("each", "called with no mounted application")
		return
	}

	keyOf := opts.Key
	if keyOf == nil {
		keyOf = func(_ T, i int) string { return strconv.Itoa(i) }
	}

	live := make(map[string]*eachItem)

	eff := reactive.CreateEffect(func() {
		list := items()
		seen := make(map[string]bool, len(list))

		for i, item := range list {
			key := keyOf(item, i)
			seen[key] = true
			if _, ok := live[key]; ok {
				continue
			}

			branch := reactive.NewScope()
			e.pushScope(branch)
			var idx arena.Index
			runGuarded("each.render", func() { idx = render(item, i) })
			e.popScope()

			live[key] = &eachItem{idx: idx, scope: branch}
		}

		for key, it := range live {
			if seen[key] {
				continue
			}
			it.scope.Stop()
			if it.idx != arena.None {
				e.Arena.Release(it.idx)
			}
			delete(live, key)
		}
	})

	OnDestroy(func() {
		eff.Dispose()
		for key, it := range live {
			it.scope.Stop()
			if it.idx != arena.None {
				e.Arena.Release(it.idx)
			}
			delete(live, key)
		}
	})
}
