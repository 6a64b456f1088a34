// Package layout turns the component store's parallel arrays into a
// ComputedLayout via a single derived computation, layout_derived (spec
// §4.3), as five O(n) passes over arena indices instead of a
// pointer-tree Measure/Draw split: reset scratch, build sibling chains,
// bottom-up intrinsic sizing, top-down flex positioning, and a final
// absolute/fixed positioning pass.
package layout

import (
	"sort"

	"flexterm/arena"
	"flexterm/reactive"
	"flexterm/store"
)

// Computed holds the layout engine's parallel output arrays, one slot per
// arena index (spec §2 "ComputedLayout").
type Computed struct {
	X, Y, Width, Height    []int
	Scrollable             []bool
	MaxScrollX, MaxScrollY []int
	ContentWidth           int
	ContentHeight          int
}

func newComputed(n int) *Computed {
	return &Computed{
		X: make([]int, n), Y: make([]int, n),
		Width: make([]int, n), Height: make([]int, n),
		Scrollable: make([]bool, n),
		MaxScrollX: make([]int, n), MaxScrollY: make([]int, n),
	}
}

func (c *Computed) Rect(idx arena.Index) (x, y, w, h int) {
	i := int(idx)
	if i < 0 || i >= len(c.X) {
		return 0, 0, 0, 0
	}
	return c.X[i], c.Y[i], c.Width[i], c.Height[i]
}

// Engine owns the derived computation and the signals layout_derived
// depends on beyond the component arrays themselves.
type Engine struct {
	Store *store.Store
	Arena *arena.Arena

	TerminalWidth   *reactive.Signal[int]
	TerminalHeight  *reactive.Signal[int]
	ConstrainHeight *reactive.Signal[bool] // true in fullscreen mode

	derived *reactive.Derived[*Computed]

	// scratch, rebuilt every recompute; kept as fields only to avoid
	// reallocating slice headers across calls in the common case.
	firstChild, nextSibling, lastChild []int
	intrinsicW, intrinsicH             []int
}

// New builds a layout engine over s/a, depending on the given terminal
// size and fullscreen-constraint signals.
func New(s *store.Store, a *arena.Arena, width, height *reactive.Signal[int], constrainHeight *reactive.Signal[bool]) *Engine {
	e := &Engine{
		Store: s, Arena: a,
		TerminalWidth: width, TerminalHeight: height, ConstrainHeight: constrainHeight,
	}
	e.derived = reactive.NewDerived(func() *Computed { return e.compute() }).Named("layout_derived")
	return e
}

// Get returns the current ComputedLayout, recomputing only if a tracked
// dependency changed since the last read (spec §8 "layout monotonicity").
func (e *Engine) Get() *Computed { return e.derived.Get() }

// RecomputeCount exposes the underlying derived's recompute counter, used
// by tests asserting layout monotonicity under unchanged inputs.
func (e *Engine) RecomputeCount() int { return e.derived.RecomputeCount() }

func (e *Engine) compute() *Computed {
	// Snapshot's iteration order is a Go map's, not allocation order (see
	// reactive.Set.Snapshot); sort so sibling chains come out in the same
	// order children were allocated, matching the root-ordering sort below.
	liveIdx := e.Arena.LiveSet().Snapshot()
	sort.Slice(liveIdx, func(i, j int) bool { return liveIdx[i] < liveIdx[j] })
	tw := e.TerminalWidth.Get()
	th := e.TerminalHeight.Get()
	constrain := e.ConstrainHeight.Get()

	n := 0
	for _, idx := range liveIdx {
		if int(idx)+1 > n {
			n = int(idx) + 1
		}
	}
	c := newComputed(n)
	if n == 0 {
		return c
	}

	live := make([]bool, n)
	for _, idx := range liveIdx {
		live[int(idx)] = true
	}

	// Pass 1: reset scratch.
	e.firstChild = resetInts(e.firstChild, n, -1)
	e.nextSibling = resetInts(e.nextSibling, n, -1)
	e.lastChild = resetInts(e.lastChild, n, -1)
	e.intrinsicW = resetInts(e.intrinsicW, n, 0)
	e.intrinsicH = resetInts(e.intrinsicH, n, 0)

	// Pass 2: build sibling chains from parent_index; collect roots.
	var roots []int
	for _, idx := range liveIdx {
		i := int(idx)
		p := int(e.Arena.Parent(idx))
		if p >= 0 && p < n && live[p] {
			if e.firstChild[p] == -1 {
				e.firstChild[p] = i
			} else {
				e.nextSibling[e.lastChild[p]] = i
			}
			e.lastChild[p] = i
		} else {
			roots = append(roots, i)
		}
	}
	sort.Ints(roots)

	bfs := e.buildBFS(roots)

	// Pass 3: bottom-up intrinsic sizing, reverse BFS order.
	for i := len(bfs) - 1; i >= 0; i-- {
		e.computeIntrinsic(bfs[i], tw, th)
	}

	// Pass 4: top-down positioning.
	for _, root := range roots {
		rw, rh := e.rootSize(root, tw, th, constrain)
		c.X[root], c.Y[root] = 0, 0
		c.Width[root], c.Height[root] = rw, rh
		e.positionChildren(root, c, tw, th)
	}

	// Pass 5: absolute/fixed positioning.
	for _, idx := range bfs {
		e.positionAbsoluteChildren(idx, c, tw, th)
	}

	c.ContentWidth, c.ContentHeight = 0, 0
	for _, root := range roots {
		if c.Width[root] > c.ContentWidth {
			c.ContentWidth = c.Width[root]
		}
		if c.Height[root] > c.ContentHeight {
			c.ContentHeight = c.Height[root]
		}
	}
	return c
}

func resetInts(buf []int, n int, v int) []int {
	if cap(buf) < n {
		buf = make([]int, n)
	} else {
		buf = buf[:n]
	}
	for i := range buf {
		buf[i] = v
	}
	return buf
}

func (e *Engine) buildBFS(roots []int) []int {
	var order []int
	queue := append([]int{}, roots...)
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		order = append(order, cur)
		for ch := e.firstChild[cur]; ch != -1; ch = e.nextSibling[ch] {
			queue = append(queue, ch)
		}
	}
	return order
}

func (e *Engine) children(idx int) []int {
	var out []int
	for ch := e.firstChild[idx]; ch != -1; ch = e.nextSibling[ch] {
		out = append(out, ch)
	}
	return out
}

// flowChildren returns idx's children whose position is relative/sticky
// (i.e. participate in normal flex flow, per spec §4.3 pass 4), ordered by
// their order field and then by allocation index (spec §3 "order:
// repositions a flex item independently of its source/sibling order").
// children(idx) already yields allocation-index order, so a stable sort
// by Order alone produces (Order, allocation-index) without a separate
// tiebreak key.
func (e *Engine) flowChildren(idx int) []int {
	var out []int
	for _, ch := range e.children(idx) {
		pos := e.Store.Layout.Position.Get(ch)
		if pos != store.PositionAbsolute && pos != store.PositionFixed {
			out = append(out, ch)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return e.Store.Layout.Order.Get(out[i]) < e.Store.Layout.Order.Get(out[j])
	})
	return out
}

func (e *Engine) borderThickness(idx int) int {
	style := e.Store.Visual.BorderStyle.Get(idx)
	if style == store.BorderNone {
		return 0
	}
	return 1
}

func (e *Engine) paddingOf(idx int) store.Sides[int] { return e.Store.Spacing.Padding.Get(idx) }

func (e *Engine) computeIntrinsic(idx int, tw, th int) {
	typ := e.Store.Core.Type.Get(idx)
	pad := e.paddingOf(idx)
	border := e.borderThickness(idx)
	horiz := pad.Left + pad.Right + border*2
	vert := pad.Top + pad.Bottom + border*2

	if typ == store.Text {
		content := e.Store.Text.Content.Get(idx)
		wrap := e.Store.Text.TextWrap.Get(idx)
		explicitW, hasW := e.Store.Dimensions.Width.Get(idx).Resolve(tw)
		availableW := tw
		if hasW {
			availableW = explicitW - horiz
		}
		if availableW < 0 {
			availableW = 0
		}
		e.intrinsicW[idx] = DisplayWidth(content)
		if e.intrinsicW[idx] > availableW && availableW > 0 {
			e.intrinsicW[idx] = availableW
		}
		e.intrinsicH[idx] = MeasureTextHeight(content, availableW, wrap == store.NoWrapText, wrap == store.TruncateText)
		e.intrinsicW[idx] += horiz
		e.intrinsicH[idx] += vert
		return
	}

	dir := e.Store.Layout.FlexDirection.Get(idx)
	gap := e.Store.Spacing.Gap.Get(idx)
	flow := e.flowChildren(idx)

	mainSum, crossMax := 0, 0
	for i, ch := range flow {
		w, h := e.flexBase(ch, dir, tw, th)
		var main, cross int
		if dir.IsRow() {
			main, cross = w, h
		} else {
			main, cross = h, w
		}
		mainSum += main
		if i > 0 {
			mainSum += gap
		}
		if cross > crossMax {
			crossMax = cross
		}
	}

	if dir.IsRow() {
		e.intrinsicW[idx] = mainSum + horiz
		e.intrinsicH[idx] = crossMax + vert
	} else {
		e.intrinsicW[idx] = crossMax + horiz
		e.intrinsicH[idx] = mainSum + vert
	}
}

// explicitOrIntrinsic resolves a child's own size for use as a *sibling's*
// intrinsic-sizing input: explicit dimension if set, else its own
// already-computed intrinsic size (children are visited bottom-up first).
func (e *Engine) explicitOrIntrinsic(idx int, tw, th int) (w, h int) {
	if v, ok := e.Store.Dimensions.Width.Get(idx).Resolve(tw); ok {
		w = v
	} else {
		w = e.intrinsicW[idx]
	}
	if v, ok := e.Store.Dimensions.Height.Get(idx).Resolve(th); ok {
		h = v
	} else {
		h = e.intrinsicH[idx]
	}
	return e.clamp(idx, w, h)
}

// flexBase is explicitOrIntrinsic plus flex-basis (spec §3 "flex_basis"):
// when idx has a non-auto flex_basis, it overrides the main-axis component
// of the item's base size (width for a row parent, height for a column
// parent) before grow/shrink distribution, matching flexbox's basis >
// explicit-size-on-main-axis precedence. Cross axis is unaffected.
func (e *Engine) flexBase(idx int, dir store.FlexDirection, tw, th int) (w, h int) {
	w, h = e.explicitOrIntrinsic(idx, tw, th)
	ref := tw
	if !dir.IsRow() {
		ref = th
	}
	if basis, ok := e.Store.Layout.FlexBasis.Get(idx).Resolve(ref); ok {
		if dir.IsRow() {
			w = basis
		} else {
			h = basis
		}
	}
	return e.clamp(idx, w, h)
}

func (e *Engine) clamp(idx int, w, h int) (int, int) {
	if minW, ok := e.Store.Dimensions.MinWidth.Get(idx).Resolve(w); ok && w < minW {
		w = minW
	}
	if maxW, ok := e.Store.Dimensions.MaxWidth.Get(idx).Resolve(w); ok && w > maxW {
		w = maxW
	}
	if minH, ok := e.Store.Dimensions.MinHeight.Get(idx).Resolve(h); ok && h < minH {
		h = minH
	}
	if maxH, ok := e.Store.Dimensions.MaxHeight.Get(idx).Resolve(h); ok && h > maxH {
		h = maxH
	}
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return w, h
}

func (e *Engine) rootSize(root, tw, th int, constrain bool) (int, int) {
	w := tw
	if v, ok := e.Store.Dimensions.Width.Get(root).Resolve(tw); ok {
		w = v
	}
	h := e.intrinsicH[root]
	if constrain {
		h = th
	}
	if v, ok := e.Store.Dimensions.Height.Get(root).Resolve(th); ok {
		h = v
	}
	return e.clamp(root, w, h)
}
