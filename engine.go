// Package flexterm ties the arena, reactive substrate, component store,
// layout engine, frame-buffer producer, renderer, and input router into
// the single mounted application the spec describes (§5: "the engine
// supports exactly one mounted application per process at a time").
// Primitives (Box, Text, Show, When, Each), context, and lifecycle hooks
// are free functions operating against the one active *engine, as a
// package-level API rather than a method-heavy builder.
package flexterm

import (
	"fmt"

	"flexterm/arena"
	"flexterm/frame"
	"flexterm/input"
	"flexterm/layout"
	"flexterm/reactive"
	"flexterm/store"
)

// ErrorReporter receives errors the engine can't propagate to a caller
// (spec §7): render write failures, cleanup panics, malformed input. See
// SetErrorReporter.
type ErrorReporter func(scope string, err error)

var errorReporter ErrorReporter = func(string, error) {}

// SetErrorReporter installs the process-wide error reporter and wires it
// through to the reactive package's own reporter, so Scope.Stop's
// recovered cleanup panics (reactive/effect.go) and this package's own
// reports share one sink instead of each logging independently.
func SetErrorReporter(r ErrorReporter) {
	if r == nil {
		r = func(string, error) {}
	}
	errorReporter = r
	reactive.SetReporter(func(scope string, err error) { errorReporter(scope, err) })
}

func reportf(scope, format string, args ...any) {
	errorReporter(scope, &reportedError{msg: fmt.Sprintf(format, args...)})
}

type reportedError struct{ msg string }

func (r *reportedError) Error() string { return r.msg }

// engine is the process-wide mounted application state. Only one may
// exist at a time (spec §5 "Concurrent mounts are explicitly unsupported
// and undefined").
type engine struct {
	Arena  *arena.Arena
	Store  *store.Store
	Layout *layout.Engine
	Frame  *frame.Engine
	Router *input.Router

	TerminalWidth   *reactive.Signal[int]
	TerminalHeight  *reactive.Signal[int]
	ConstrainHeight *reactive.Signal[bool]
	Fullscreen      *reactive.Signal[bool]

	contextStack []map[any]any
	scopeStack   []*reactive.Scope

	mountQueue map[arena.Index][]func()
	destroyCBs map[arena.Index][]func()
}

var activeEngine *engine

func active() *engine { return activeEngine }

// newEngine wires arena→store→layout→frame→router, the shape every
// package's own tests already build by hand (layout_test.go/frame_test.go
// newTestEngine helpers), generalized here into the one constructor every
// Mount call and every primitives_test.go test shares.
func newEngine(width, height int, constrainHeight, fullscreen bool) *engine {
	a := arena.New()
	s := store.New(a)
	tw := reactive.New(width)
	th := reactive.New(height)
	ch := reactive.New(constrainHeight)
	fs := reactive.New(fullscreen)
	l := layout.New(s, a, tw, th, ch)
	f := frame.New(s, a, l, fs)
	r := input.NewRouter(a, s)

	e := &engine{
		Arena: a, Store: s, Layout: l, Frame: f, Router: r,
		TerminalWidth: tw, TerminalHeight: th, ConstrainHeight: ch, Fullscreen: fs,
		mountQueue: make(map[arena.Index][]func()),
		destroyCBs: make(map[arena.Index][]func()),
	}

	a.OnRelease(func(idx arena.Index) { e.runDestroyCallbacks(idx) })

	return e
}

func (e *engine) runDestroyCallbacks(idx arena.Index) {
	cbs := e.destroyCBs[idx]
	delete(e.destroyCBs, idx)
	for i := len(cbs) - 1; i >= 0; i-- {
		runGuarded("destroy", cbs[i])
	}
}

func (e *engine) runMountCallbacks(idx arena.Index) {
	cbs := e.mountQueue[idx]
	delete(e.mountQueue, idx)
	for _, cb := range cbs {
		runGuarded("mount", cb)
	}
}

func runGuarded(scope string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			reportf(scope, "panic: %v", r)
		}
	}()
	fn()
}

func (e *engine) pushContextFrame() { e.contextStack = append(e.contextStack, map[any]any{}) }
func (e *engine) popContextFrame() {
	if n := len(e.contextStack); n > 0 {
		e.contextStack = e.contextStack[:n-1]
	}
}

func (e *engine) pushScope(s *reactive.Scope) { e.scopeStack = append(e.scopeStack, s) }
func (e *engine) popScope() {
	if n := len(e.scopeStack); n > 0 {
		e.scopeStack = e.scopeStack[:n-1]
	}
}
func (e *engine) currentScope() *reactive.Scope {
	if n := len(e.scopeStack); n > 0 {
		return e.scopeStack[n-1]
	}
	return nil
}
