// Package arena issues and recycles the dense component indices every
// other flexterm package keys its parallel arrays by (spec §4.1).
package arena

import "flexterm/reactive"

// Index identifies a component. -1 means "no component" (e.g. root's
// parent, or "nothing focused").
type Index int32

// None is the sentinel for "no component".
const None Index = -1

// Arena owns index allocation/recycling, the id↔index mapping, the
// reactive live set, and the parent-context/current-component stacks
// primitives use while building a tree (spec §4.1).
type Arena struct {
	live     *reactive.Set[Index]
	ids      map[string]Index
	indexIDs map[Index]string
	free     []Index
	next     Index

	parentOf map[Index]Index

	parentStack  []Index
	currentStack []Index

	onRelease []func(Index) // destroy-callback hooks, one per registered component kind
	resetters []func()      // array resets run when the live set drains to empty
}

// New creates an empty arena.
func New() *Arena {
	return &Arena{
		live:     reactive.NewSet[Index](),
		ids:      make(map[string]Index),
		indexIDs: make(map[Index]string),
		parentOf: make(map[Index]Index),
	}
}

// LiveSet exposes the reactive live set so layout_derived and others can
// depend on "did the set of allocated components change".
func (a *Arena) LiveSet() *reactive.Set[Index] { return a.live }

// OnRelease registers a callback invoked (with the freed index) whenever
// release_index frees that index. Component-array packages (store) use
// this to clear their own slots without the arena knowing their shape.
func (a *Arena) OnRelease(fn func(Index)) {
	a.onRelease = append(a.onRelease, fn)
}

// OnEmptyReset registers a callback invoked when the live set drains back
// to zero (spec §4.1: "reset all working arrays"). Used by the store to
// rebuild its arrays.
func (a *Arena) OnEmptyReset(fn func()) {
	a.resetters = append(a.resetters, fn)
}

// Allocate issues a new index, or returns the existing one if id is
// already mapped (spec §4.1: "idempotent"). Passing "" always allocates a
// fresh anonymous index.
func (a *Arena) Allocate(id string) Index {
	if id != "" {
		if idx, ok := a.ids[id]; ok {
			return idx
		}
	}

	var idx Index
	if n := len(a.free); n > 0 {
		idx = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		idx = a.next
		a.next++
	}

	if id != "" {
		a.ids[id] = idx
		a.indexIDs[idx] = id
	}
	a.parentOf[idx] = a.CurrentParent()
	a.live.Add(idx)
	return idx
}

// Release recursively frees idx and every descendant, leaf-first (spec
// §4.1: "collect first, then iterate to avoid mutation during traversal").
// Freeing an unknown index is a no-op (spec §4.1 Errors).
func (a *Arena) Release(idx Index) {
	if !a.live.Has(idx) {
		return
	}

	var order []Index
	queue := []Index{idx}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		order = append(order, cur)
		for child, parent := range a.parentOf {
			if parent == cur && a.live.Has(child) {
				queue = append(queue, child)
			}
		}
	}

	// Release leaf-first: reverse BFS order approximates this well enough
	// since a child always appears after its parent in `order`.
	for i := len(order) - 1; i >= 0; i-- {
		a.releaseOne(order[i])
	}

	if a.live.Len() == 0 {
		a.resetAll()
	}
}

func (a *Arena) releaseOne(idx Index) {
	for _, fn := range a.onRelease {
		fn(idx)
	}
	if id, ok := a.indexIDs[idx]; ok {
		delete(a.ids, id)
		delete(a.indexIDs, idx)
	}
	delete(a.parentOf, idx)
	a.live.Remove(idx)
	a.free = append(a.free, idx)
}

func (a *Arena) resetAll() {
	a.free = nil
	a.next = 0
	a.parentOf = make(map[Index]Index)
	for _, fn := range a.resetters {
		fn()
	}
}

// GetIndex looks up the index mapped to id.
func (a *Arena) GetIndex(id string) (Index, bool) {
	idx, ok := a.ids[id]
	return idx, ok
}

// GetID looks up the id mapped to idx, if any.
func (a *Arena) GetID(idx Index) (string, bool) {
	id, ok := a.indexIDs[idx]
	return id, ok
}

// Parent returns idx's parent, or None for roots/unknown indices.
func (a *Arena) Parent(idx Index) Index {
	if p, ok := a.parentOf[idx]; ok {
		return p
	}
	return None
}

// SetParent reassigns idx's parent (used when a component is reparented,
// e.g. moved between Show branches without being destroyed).
func (a *Arena) SetParent(idx, parent Index) {
	a.parentOf[idx] = parent
}

// IsLive reports whether idx is currently allocated.
func (a *Arena) IsLive(idx Index) bool { return a.live.Has(idx) }

// --- parent-context stack (spec §4.1) ---

// PushParentContext marks idx as the parent new allocations should use.
func (a *Arena) PushParentContext(idx Index) {
	a.parentStack = append(a.parentStack, idx)
}

// PopParentContext undoes the most recent PushParentContext.
func (a *Arena) PopParentContext() {
	if n := len(a.parentStack); n > 0 {
		a.parentStack = a.parentStack[:n-1]
	}
}

// CurrentParent returns the top of the parent-context stack, or None.
func (a *Arena) CurrentParent() Index {
	if n := len(a.parentStack); n > 0 {
		return a.parentStack[n-1]
	}
	return None
}

// --- current-component stack (spec §4.1, used by lifecycle hooks) ---

// PushCurrent marks idx as "the component currently being constructed",
// for on_mount/on_destroy hooks to attach to.
func (a *Arena) PushCurrent(idx Index) {
	a.currentStack = append(a.currentStack, idx)
}

// PopCurrent undoes the most recent PushCurrent.
func (a *Arena) PopCurrent() {
	if n := len(a.currentStack); n > 0 {
		a.currentStack = a.currentStack[:n-1]
	}
}

// Current returns the top of the current-component stack, or None.
func (a *Arena) Current() Index {
	if n := len(a.currentStack); n > 0 {
		return a.currentStack[n-1]
	}
	return None
}
