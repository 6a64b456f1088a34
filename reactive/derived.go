package reactive

// ErrCycle is the diagnostic a Derived panics with when it (directly or
// transitively) reads its own value during computation (spec §4.2/§7:
// "Reactivity cycle... fail fast with a clear diagnostic; do not hang").
type ErrCycle struct{ Name string }

func (e *ErrCycle) Error() string {
	name := e.Name
	if name == "" {
		name = "derived"
	}
	return "reactive: cycle detected computing " + name
}

// Derived is a memoized computation: recomputed on read only if a source
// changed since the last compute, otherwise the cached value is returned
// (spec §4.2, and property 5 in spec §8).
type Derived[T any] struct {
	name         string
	fn           func() T
	value        T
	hasValue     bool
	dirty        bool
	computing    bool
	dependencies map[dependency]struct{}
	subscribers  map[subscriber]struct{}
	equal        Equal[T]
	recomputes   int // test/debug counter, spec §8 property 5
}

// NewDerived creates a Derived with default (no-equality) invalidation:
// any dependency change marks it dirty, full recompute on next read.
func NewDerived[T any](fn func() T) *Derived[T] {
	return NewDerivedWithEqual(fn, nil)
}

// NewDerivedWithEqual attaches an equality predicate so that a structurally
// unchanged result suppresses invalidation of this derived's own
// dependents, per spec §4.2 ("Optional equality predicate... lets a
// derived suppress invalidation of its dependents"). Because invalidation
// must be decided before a lazy read happens, supplying equal makes this
// derived recompute eagerly (at notification time) instead of lazily.
func NewDerivedWithEqual[T any](fn func() T, equal Equal[T]) *Derived[T] {
	return &Derived[T]{
		fn:           fn,
		dirty:        true,
		dependencies: make(map[dependency]struct{}),
		subscribers:  make(map[subscriber]struct{}),
		equal:        equal,
	}
}

// Named sets a diagnostic name surfaced in ErrCycle messages.
func (d *Derived[T]) Named(name string) *Derived[T] {
	d.name = name
	return d
}

func (d *Derived[T]) subscribe(sub subscriber)   { d.subscribers[sub] = struct{}{} }
func (d *Derived[T]) unsubscribe(sub subscriber) { delete(d.subscribers, sub) }

func (d *Derived[T]) addDependency(dep dependency) { d.dependencies[dep] = struct{}{} }

func (d *Derived[T]) onDependencyUpdated() {
	if d.equal != nil {
		// Equality-suppressing deriveds must know NOW whether the result
		// actually changed, so recompute eagerly and compare.
		old, hadOld := d.value, d.hasValue
		d.recompute()
		if hadOld && d.equal(old, d.value) {
			return
		}
		d.notifySubscribers()
		return
	}
	if d.dirty {
		return
	}
	d.dirty = true
	d.notifySubscribers()
}

func (d *Derived[T]) notifySubscribers() {
	subs := make([]subscriber, 0, len(d.subscribers))
	for sub := range d.subscribers {
		subs = append(subs, sub)
	}
	for _, sub := range subs {
		sub.onDependencyUpdated()
	}
}

// GetValue implements Getter for use inside Bind[T].
func (d *Derived[T]) GetValue() interface{} { return d.Get() }

// Get returns the cached value, recomputing first if dirty.
func (d *Derived[T]) Get() T {
	track(d, d.subscribe)
	if d.dirty {
		d.recompute()
	}
	return d.value
}

func (d *Derived[T]) recompute() {
	if d.computing {
		panic(&ErrCycle{Name: d.name})
	}
	d.computing = true

	for dep := range d.dependencies {
		dep.unsubscribe(d)
	}
	d.dependencies = make(map[dependency]struct{})

	var newVal T
	withSubscriber(d, func() {
		newVal = d.fn()
	})

	d.computing = false
	d.recomputes++
	d.value = newVal
	d.hasValue = true
	d.dirty = false
}

// RecomputeCount exposes the call counter spec §8 property 5 asks tests
// to observe ("a call-counter in tests").
func (d *Derived[T]) RecomputeCount() int { return d.recomputes }
