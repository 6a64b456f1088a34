package input

import (
	"sort"

	"flexterm/arena"
	"flexterm/reactive"
	"flexterm/store"
)

// Router holds the handler registries and reactive focus/last-event state
// described by spec §4.6. It performs dispatch but never touches stdin or
// the terminal itself.
type Router struct {
	Arena *arena.Arena
	Store *store.Store
	Grid  *HitGrid

	LastEvent *reactive.Signal[Event]
	LastKey   *reactive.Derived[KeyEvent]

	FocusedIndex *reactive.Signal[arena.Index]

	global    []func(Event) bool
	byKey     map[Key][]func(KeyEvent) bool
	byFocused map[arena.Index][]func(KeyEvent) bool

	hoveredIndex arena.Index
}

// NewRouter builds a Router wired to a.
func NewRouter(a *arena.Arena, s *store.Store) *Router {
	r := &Router{
		Arena: a, Store: s, Grid: NewHitGrid(),
		byKey: make(map[Key][]func(KeyEvent) bool), byFocused: make(map[arena.Index][]func(KeyEvent) bool),
		FocusedIndex: reactive.New[arena.Index](arena.None),
		hoveredIndex: arena.None,
	}
	r.LastEvent = reactive.NewWithEqual(Event{}, func(a, b Event) bool { return false })
	r.LastKey = reactive.NewDerived(func() KeyEvent {
		ev := r.LastEvent.Get()
		if ev.Key != nil {
			return *ev.Key
		}
		return KeyEvent{}
	}).Named("last_key")
	return r
}

// On registers a global handler, called for every event (spec §4.6 "on").
func (r *Router) On(fn func(Event) bool) { r.global = append(r.global, fn) }

// OnKey registers a handler for one or more specific keys.
func (r *Router) OnKey(fn func(KeyEvent) bool, keys ...Key) {
	for _, k := range keys {
		r.byKey[k] = append(r.byKey[k], fn)
	}
}

// OnFocused registers a handler invoked only while idx is focused.
func (r *Router) OnFocused(idx arena.Index, fn func(KeyEvent) bool) {
	r.byFocused[idx] = append(r.byFocused[idx], fn)
}

// DispatchKey runs the focused → key-specific → global handler chain for
// a press event, stopping at the first handler that returns true (spec
// §4.6 "Dispatch order"). Repeat/release update LastEvent but never
// invoke handlers.
func (r *Router) DispatchKey(ev KeyEvent) {
	r.LastEvent.Set(Event{Key: &ev})
	if ev.State != StatePress {
		return
	}

	focused := r.FocusedIndex.Peek()
	if focused != arena.None {
		for _, fn := range r.byFocused[focused] {
			if fn(ev) {
				return
			}
		}
	}
	for _, fn := range r.byKey[ev.Key] {
		if fn(ev) {
			return
		}
	}
	for _, fn := range r.global {
		if fn(Event{Key: &ev}) {
			return
		}
	}
}

// DispatchMouse resolves the event's component via the hit grid, fires
// enter/leave on hover changes, dispatches to the component's own
// handlers, applies click-to-focus, and falls through to global handlers
// unless a component handler consumed the event (spec §4.6 "Mouse").
func (r *Router) DispatchMouse(ev MouseEvent) {
	ev.ComponentIndex = r.Grid.Lookup(ev.X, ev.Y)
	r.LastEvent.Set(Event{Mouse: &ev})

	if ev.Action == MouseMove && ev.ComponentIndex != r.hoveredIndex {
		if r.hoveredIndex != arena.None {
			if fn, ok := r.Store.Handlers.OnMouseLeave[r.hoveredIndex]; ok {
				fn()
			}
		}
		if ev.ComponentIndex != arena.None {
			if fn, ok := r.Store.Handlers.OnMouseEnter[ev.ComponentIndex]; ok {
				fn()
			}
		}
		r.hoveredIndex = ev.ComponentIndex
	}

	consumed := false
	idx := ev.ComponentIndex
	if idx != arena.None {
		switch ev.Action {
		case MouseDown:
			if fn, ok := r.Store.Handlers.OnMouseDown[idx]; ok {
				consumed = fn(ev.X, ev.Y) || consumed
			}
		case MouseUp:
			if fn, ok := r.Store.Handlers.OnMouseUp[idx]; ok {
				consumed = fn(ev.X, ev.Y) || consumed
			}
			if fn, ok := r.Store.Handlers.OnClick[idx]; ok {
				consumed = fn(ev.X, ev.Y) || consumed
			}
			r.maybeFocus(idx)
		case MouseScroll:
			if fn, ok := r.Store.Handlers.OnScroll[idx]; ok {
				dx, dy := 0, ev.ScrollDelta
				if ev.ScrollDir == ScrollUp {
					dy = -dy
				}
				consumed = fn(dx, dy) || consumed
			}
		}
	}

	if !consumed {
		for _, fn := range r.global {
			if fn(Event{Mouse: &ev}) {
				return
			}
		}
	}
}

// maybeFocus implements click-to-focus: a focusable component (or one
// auto-focusable due to scroll overflow) receives focus after its own
// on_click has run, regardless of whether that handler consumed the
// event (spec §4.6 "Click-to-focus").
func (r *Router) maybeFocus(idx arena.Index) {
	if r.Store.Interaction.Focusable.Get(int(idx)) {
		r.FocusedIndex.Set(idx)
		return
	}
	overflow := r.Store.Layout.Overflow.Get(int(idx))
	if overflow == store.OverflowScroll {
		r.FocusedIndex.Set(idx)
	}
}

// FocusableOrder returns every focusable live index ordered by tab_index
// then insertion (arena index) order, for Tab/Shift-Tab cycling (spec
// §4.6 "Focus").
func (r *Router) FocusableOrder() []arena.Index {
	var out []arena.Index
	for _, idx := range r.Arena.LiveSet().Snapshot() {
		if r.Store.Interaction.Focusable.Get(int(idx)) {
			out = append(out, idx)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		ti := r.Store.Interaction.TabIndex.Get(int(out[i]))
		tj := r.Store.Interaction.TabIndex.Get(int(out[j]))
		if ti != tj {
			return ti < tj
		}
		return out[i] < out[j]
	})
	return out
}

// FocusNext/FocusPrev cycle the focused index through FocusableOrder(),
// wrapping around. A Tab/Shift-Tab handler the application installs via
// OnKey typically calls these.
func (r *Router) FocusNext() {
	order := r.FocusableOrder()
	r.cycleFocus(order, 1)
}

func (r *Router) FocusPrev() {
	order := r.FocusableOrder()
	r.cycleFocus(order, -1)
}

func (r *Router) cycleFocus(order []arena.Index, step int) {
	if len(order) == 0 {
		return
	}
	cur := r.FocusedIndex.Peek()
	pos := -1
	for i, idx := range order {
		if idx == cur {
			pos = i
			break
		}
	}
	next := (pos + step + len(order)) % len(order)
	r.FocusedIndex.Set(order[next])
}
