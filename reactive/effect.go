package reactive

// Effect is a closure scheduled to run once after its dependencies change
// (spec §4.2). It runs synchronously at the flush boundary — immediately
// unless inside a Batch, in which case reruns coalesce to one per flush.
type Effect struct {
	fn           func()
	dependencies map[dependency]struct{}
	disposed     bool
	scope        *Scope
}

// CreateEffect builds and immediately runs fn, then keeps it subscribed to
// whatever signals/deriveds it read.
func CreateEffect(fn func()) *Effect {
	e := &Effect{fn: fn, dependencies: make(map[dependency]struct{})}
	e.Run()
	return e
}

func (e *Effect) addDependency(d dependency) { e.dependencies[d] = struct{}{} }

func (e *Effect) onDependencyUpdated() {
	if e.disposed {
		return
	}
	enqueueOrRun(e)
}

// Run re-executes fn, re-tracking dependencies from scratch: unsubscribe
// everything, resubscribe as we run. Simple and correct; the inefficiency
// doesn't matter at UI-update rates.
func (e *Effect) Run() {
	if e.disposed {
		return
	}

	old := e.dependencies
	e.dependencies = make(map[dependency]struct{})
	for dep := range old {
		dep.unsubscribe(e)
	}

	withSubscriber(e, func() {
		e.fn()
	})
}

// Dispose detaches the effect from every dependency and the pending flush
// queue; subsequent dependency changes are silently ignored.
func (e *Effect) Dispose() {
	if e.disposed {
		return
	}
	e.disposed = true
	for dep := range e.dependencies {
		dep.unsubscribe(e)
	}
	e.dependencies = nil
	if batchQueue != nil {
		delete(batchQueue, e)
	}
}

// Scope collects disposers so a whole subtree of reactivity can be torn
// down atomically (spec §4.2 EffectScope, and §5's show()/when() cleanup
// contract), built on the same dependency-tracking shape as Effect itself.
type Scope struct {
	parent    *Scope
	effects   []*Effect
	children  []*Scope
	disposers []func()
	stopped   bool
}

// NewScope creates a root scope with no parent.
func NewScope() *Scope { return &Scope{} }

// Child creates a nested scope; stopping the parent stops the child too.
func (s *Scope) Child() *Scope {
	child := &Scope{parent: s}
	s.children = append(s.children, child)
	return child
}

// Effect creates an effect owned by this scope.
func (s *Scope) Effect(fn func()) *Effect {
	e := CreateEffect(fn)
	e.scope = s
	s.effects = append(s.effects, e)
	return e
}

// OnDispose registers a cleanup closure run (LIFO, per §5) when the scope
// stops.
func (s *Scope) OnDispose(fn func()) {
	s.disposers = append(s.disposers, fn)
}

// Stop disposes every effect and child scope, then runs this scope's own
// cleanup closures in LIFO order (spec §5: "calls registered cleanup
// closures in LIFO order"). Idempotent.
func (s *Scope) Stop() {
	if s.stopped {
		return
	}
	s.stopped = true

	for _, child := range s.children {
		child.Stop()
	}
	s.children = nil

	for _, e := range s.effects {
		e.Dispose()
	}
	s.effects = nil

	for i := len(s.disposers) - 1; i >= 0; i-- {
		runCleanup(s.disposers[i])
	}
	s.disposers = nil
}

// runCleanup isolates a panicking destroy callback so it doesn't prevent
// the remaining callbacks from running (spec §7: "Cleanup failure...
// subsequent callbacks still run").
func runCleanup(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			Report("scope.dispose", panicToError(r))
		}
	}()
	fn()
}

func panicToError(r interface{}) error {
	if err, ok := r.(error); ok {
		return err
	}
	return &cleanupPanic{v: r}
}

type cleanupPanic struct{ v interface{} }

func (c *cleanupPanic) Error() string {
	if s, ok := c.v.(string); ok {
		return s
	}
	return "panic during cleanup"
}
