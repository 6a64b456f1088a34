package reactive

// Bind is the uniform wrapper over a literal T, a *Signal[T], a
// *Derived[T], or a 0-ary getter func, per spec §4.2 and the §9 design
// note ("model Bind<T> as a tagged variant"). Reading through Bind
// unwraps the value and, if performed inside a tracking scope, subscribes
// to the underlying source.
type Bind[T any] struct {
	kind   bindKind
	lit    T
	getter func() T
	source Getter
}

type bindKind uint8

const (
	bindLiteral bindKind = iota
	bindSignal
	bindDerived
	bindGetter
)

// Lit wraps a static value.
func Lit[T any](v T) Bind[T] { return Bind[T]{kind: bindLiteral, lit: v} }

// FromSignal wraps a *Signal[T].
func FromSignal[T any](s *Signal[T]) Bind[T] {
	return Bind[T]{kind: bindSignal, source: s, getter: s.Get}
}

// FromDerived wraps a *Derived[T].
func FromDerived[T any](d *Derived[T]) Bind[T] {
	return Bind[T]{kind: bindDerived, source: d, getter: d.Get}
}

// FromGetter wraps a plain 0-ary function. Getter-backed binds do not
// participate in dependency tracking unless fn itself reads a signal.
func FromGetter[T any](fn func() T) Bind[T] {
	return Bind[T]{kind: bindGetter, getter: fn}
}

// Get reads through the binding, unwrapping and (for signal/derived
// sources) subscribing the active tracking scope.
func (b Bind[T]) Get() T {
	switch b.kind {
	case bindLiteral:
		return b.lit
	default:
		return b.getter()
	}
}

// IsReactive reports whether this binding observes a live signal/derived
// (as opposed to a literal or opaque getter), used by layout/frame passes
// that want to know if a cell can ever change without re-deriving.
func (b Bind[T]) IsReactive() bool {
	return b.kind == bindSignal || b.kind == bindDerived
}
