package reactive

// SlotArray is a reactive sparse array: SlotArray[i] reads through a
// per-slot Bind, and SetSource installs a per-slot Derived so that slot
// alone invalidates when its own getter's dependencies change (spec §4.2:
// "a per-index slot array primitive that acts like a reactive sparse
// array of T"). The component store's parallel arrays are built from one
// SlotArray[T] per concern-field.
type SlotArray[T any] struct {
	slots []slot[T]
	dirty map[int]struct{}
	zero  T
}

type slot[T any] struct {
	bind Bind[T]
	set  bool
}

// NewSlotArray creates an empty slot array.
func NewSlotArray[T any]() *SlotArray[T] {
	return &SlotArray[T]{dirty: make(map[int]struct{})}
}

// ensure grows the backing slice so index i is addressable.
func (a *SlotArray[T]) ensure(i int) {
	if i < len(a.slots) {
		return
	}
	grown := make([]slot[T], i+1)
	copy(grown, a.slots)
	a.slots = grown
}

// Set installs a literal value at index i.
func (a *SlotArray[T]) Set(i int, v T) {
	a.ensure(i)
	a.slots[i] = slot[T]{bind: Lit(v), set: true}
	a.markDirty(i)
}

// SetBind installs a binding (literal/signal/derived/getter) at index i —
// spec §4.1's "either a static value or a Bind<T> wrapper".
func (a *SlotArray[T]) SetBind(i int, b Bind[T]) {
	a.ensure(i)
	a.slots[i] = slot[T]{bind: b, set: true}
	a.markDirty(i)
}

// SetSource installs a per-slot derived computed from getter, so the slot
// updates reactively without the caller re-calling SetBind (spec §4.2:
// "array.set_source(i, getter) installs a per-slot derived").
func (a *SlotArray[T]) SetSource(i int, getter func() T) {
	a.SetBind(i, FromDerived(NewDerived(getter)))
}

// Clear drops any binding at index i, reverting reads to the zero value
// (spec §4.2: "array.clear(i) drops it").
func (a *SlotArray[T]) Clear(i int) {
	if i < len(a.slots) {
		a.slots[i] = slot[T]{}
	}
	a.markDirty(i)
}

// Get reads index i through its binding, or returns the zero value if the
// index is out of range or never written (spec §7: "Missing data...
// returns the type's zero value").
func (a *SlotArray[T]) Get(i int) T {
	if i < 0 || i >= len(a.slots) || !a.slots[i].set {
		return a.zero
	}
	return a.slots[i].bind.Get()
}

func (a *SlotArray[T]) markDirty(i int) {
	a.dirty[i] = struct{}{}
}

// DirtySet returns the set of indices written since the last DrainDirty,
// letting a downstream consumer (layout) skip untouched indices (spec
// §4.2/§9 Open Question: implementations may use the dirty set or rely on
// derived-level equality instead — flexterm exposes it but layout_derived
// as specified does not rely on it).
func (a *SlotArray[T]) DirtySet() map[int]struct{} {
	out := make(map[int]struct{}, len(a.dirty))
	for i := range a.dirty {
		out[i] = struct{}{}
	}
	return out
}

// DrainDirty returns and clears the dirty set.
func (a *SlotArray[T]) DrainDirty() map[int]struct{} {
	out := a.dirty
	a.dirty = make(map[int]struct{})
	return out
}

// Len reports the backing capacity (not the number of set slots).
func (a *SlotArray[T]) Len() int { return len(a.slots) }

// Reset discards every slot and dirty entry (arena's "empty-reset" per
// spec §4.1: "reset all working arrays" when the live set drains to zero).
func (a *SlotArray[T]) Reset() {
	a.slots = nil
	a.dirty = make(map[int]struct{})
}
