package flexterm

import "flexterm/reactive"

// These re-export the reactive package's core primitives under the
// language-neutral names spec §6 lists alongside box/text/show/when/each
// ("signal(init), derived(fn, options?), effect(fn), batch(fn),
// flush_sync(), effect_scope(), on_scope_dispose(fn)"), so application
// code written against this package doesn't need a second import for the
// reactive substrate it's already using through Box/Text/Show/When/Each.

// NewSignal creates a reactive value cell. T must be comparable so Set can
// suppress no-op writes by equality (spec §4.2); slice/map/struct-with-slice
// payloads should use reactive.NewWithEqual directly with a custom equal.
func NewSignal[T comparable](init T) *reactive.Signal[T] { return reactive.New(init) }

// NewDerived creates a memoized computation over other signals/deriveds.
func NewDerived[T any](fn func() T) *reactive.Derived[T] { return reactive.NewDerived(fn) }

// CreateEffect runs fn immediately and reruns it whenever a signal/derived
// it read changes.
func CreateEffect(fn func()) *reactive.Effect { return reactive.CreateEffect(fn) }

// Batch defers effect reruns until fn returns, coalescing multiple writes
// into at most one rerun per affected effect.
func Batch(fn func()) { reactive.Batch(fn) }

// FlushSync runs any effects queued by a batch immediately instead of
// waiting for the next natural flush point.
func FlushSync() { reactive.FlushSync() }

// EffectScope creates a scope effects and cleanup closures can be attached
// to, for later bulk disposal (spec §6 "effect_scope()"). Show, When, and
// Each build one of these per branch/item internally; application code
// can create its own for manually-managed reactive subtrees.
func EffectScope() *reactive.Scope { return reactive.NewScope() }

// OnScopeDispose attaches fn to the nearest ambient scope pushed by Show,
// When, Each, or Mount around the root closure (spec §6
// "on_scope_dispose(fn)") — the reactive-cleanup
// counterpart to OnDestroy, for state that isn't tied to a component's
// arena index. Outside any such scope, it logs a warning and does
// nothing, matching the lifecycle-out-of-context policy.
func OnScopeDispose(fn func()) {
	e := active()
	if e == nil {
		reportf("on_scope_dispose", "called with no mounted application")
		return
	}
	s := e.currentScope()
	if s == nil {
		reportf("on_scope_dispose", "called outside an effect scope")
		return
	}
	s.OnDispose(fn)
}
