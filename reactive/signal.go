package reactive

// Equal is the equality predicate a Signal uses to suppress no-op writes
// (spec §4.2: "Writing the same value... is a no-op"). Defaults to a
// generic comparable check; New[T] callers that hold non-comparable T
// (slices, maps) should use NewWithEqual and supply their own.
type Equal[T any] func(a, b T) bool

// Signal is a reactive cell holding a value plus a set of dependents.
type Signal[T any] struct {
	value       T
	subscribers map[subscriber]struct{}
	equal       Equal[T]
}

// New creates a Signal comparing values with ==. T must be comparable;
// use NewWithEqual for slice/map/struct-with-slice payloads.
func New[T comparable](val T) *Signal[T] {
	return NewWithEqual(val, func(a, b T) bool { return a == b })
}

// NewWithEqual creates a Signal with a caller-supplied equality predicate.
func NewWithEqual[T any](val T, equal Equal[T]) *Signal[T] {
	return &Signal[T]{value: val, subscribers: make(map[subscriber]struct{}), equal: equal}
}

func (s *Signal[T]) subscribe(sub subscriber)   { s.subscribers[sub] = struct{}{} }
func (s *Signal[T]) unsubscribe(sub subscriber) { delete(s.subscribers, sub) }

// GetValue implements Getter for use inside Bind[T].
func (s *Signal[T]) GetValue() interface{} { return s.Get() }

// Get reads the value, subscribing the currently-tracked reader (if any).
func (s *Signal[T]) Get() T {
	track(s, s.subscribe)
	return s.value
}

// Peek reads the value without establishing a dependency.
func (s *Signal[T]) Peek() T { return s.value }

// Set writes a new value. A no-op (per equal) skips notification entirely.
func (s *Signal[T]) Set(val T) {
	if s.equal(s.value, val) {
		return
	}
	s.value = val
	s.notify()
}

// Update reads, transforms, then writes — the common read-modify-write
// pattern (e.g. count.Update(func(n int) int { return n + 1 })).
func (s *Signal[T]) Update(fn func(T) T) {
	s.Set(fn(s.Peek()))
}

func (s *Signal[T]) notify() {
	subs := make([]subscriber, 0, len(s.subscribers))
	for sub := range s.subscribers {
		subs = append(subs, sub)
	}
	for _, sub := range subs {
		sub.onDependencyUpdated()
	}
}
