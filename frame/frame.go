// Package frame implements framebuffer_derived (spec §4.4): a pure
// function of the component store and computed layout that paints a cell
// grid and produces hit regions for mouse routing, via a tree walk driven
// by arena indices rather than a hand-built scene graph.
package frame

import (
	"sort"

	"flexterm/arena"
	"flexterm/color"
	"flexterm/layout"
	"flexterm/reactive"
	"flexterm/store"
)

// Cell is one terminal cell: a rune plus its resolved paint state, using
// a color.Color/color.Attrs pair rather than a single packed style value.
type Cell struct {
	Rune  rune
	Fg    color.Color
	Bg    color.Color
	Attrs color.Attrs
}

// Buffer is a flat width*height grid of Cells, row-major (spec §4.4
// "buffer: Cell[height][width]").
type Buffer struct {
	Width, Height int
	Cells         []Cell
}

func newBuffer(w, h int) *Buffer {
	return &Buffer{Width: w, Height: h, Cells: make([]Cell, w*h)}
}

// Get returns the cell at (x,y), or the zero Cell if out of range.
func (b *Buffer) Get(x, y int) Cell {
	if x < 0 || x >= b.Width || y < 0 || y >= b.Height {
		return Cell{}
	}
	return b.Cells[y*b.Width+x]
}

func (b *Buffer) set(x, y int, c Cell) {
	if x < 0 || x >= b.Width || y < 0 || y >= b.Height {
		return
	}
	b.Cells[y*b.Width+x] = c
}

// HitRegion maps a screen rectangle back to the component index that
// painted it, for mouse hit testing (spec §4.4/§4.6).
type HitRegion struct {
	X, Y, W, H int
	Index      arena.Index
}

// Result is framebuffer_derived's output (spec §4.4).
type Result struct {
	Buffer       *Buffer
	HitRegions   []HitRegion
	TermWidth    int
	TermHeight   int
}

// clipRect is an inclusive-exclusive rectangle used to clip painting.
type clipRect struct{ x0, y0, x1, y1 int }

func (r clipRect) intersect(o clipRect) (clipRect, bool) {
	x0, y0 := max(r.x0, o.x0), max(r.y0, o.y0)
	x1, y1 := min(r.x1, o.x1), min(r.y1, o.y1)
	if x0 >= x1 || y0 >= y1 {
		return clipRect{}, false
	}
	return clipRect{x0, y0, x1, y1}, true
}

func max(a, b int) int { if a > b { return a }; return b }
func min(a, b int) int { if a < b { return a }; return b }

// Engine owns the derived computation producing Result (spec §4.4's
// framebuffer_derived).
type Engine struct {
	Store      *store.Store
	Arena      *arena.Arena
	Layout     *layout.Engine
	Fullscreen *reactive.Signal[bool]

	derived *reactive.Derived[*Result]
}

// New builds a frame engine layered over a layout engine.
func New(s *store.Store, a *arena.Arena, l *layout.Engine, fullscreen *reactive.Signal[bool]) *Engine {
	e := &Engine{Store: s, Arena: a, Layout: l, Fullscreen: fullscreen}
	e.derived = reactive.NewDerived(func() *Result { return e.compute() }).Named("framebuffer_derived")
	return e
}

// Get returns the current framebuffer, recomputing only if layout or any
// visual/text/interaction cell changed since the last read.
func (e *Engine) Get() *Result { return e.derived.Get() }

func (e *Engine) compute() *Result {
	computed := e.Layout.Get()
	tw := e.Layout.TerminalWidth.Get()
	th := e.Layout.TerminalHeight.Get()
	fullscreen := e.Fullscreen.Get()

	height := th
	if !fullscreen {
		height = computed.ContentHeight
		if height < 1 {
			height = 1
		}
	}
	buf := newBuffer(tw, height)

	liveIdx := e.Arena.LiveSet().Snapshot()
	live := make(map[int]bool, len(liveIdx))
	for _, idx := range liveIdx {
		live[int(idx)] = true
	}

	childrenOf := make(map[int][]int)
	var roots []int
	for _, idx := range liveIdx {
		i := int(idx)
		p := int(e.Arena.Parent(idx))
		if p >= 0 && live[p] {
			childrenOf[p] = append(childrenOf[p], i)
		} else {
			roots = append(roots, i)
		}
	}
	sortByZIndex(roots, e.Store)
	for p := range childrenOf {
		sortByZIndex(childrenOf[p], e.Store)
	}

	res := &Result{Buffer: buf, TermWidth: tw, TermHeight: th}
	rootClip := clipRect{0, 0, buf.Width, buf.Height}

	for _, root := range roots {
		e.paint(root, computed, buf, childrenOf, rootClip, 0, 0, color.Default, color.Default, color.Default, 1.0, res)
	}
	return res
}

func sortByZIndex(idx []int, s *store.Store) {
	sort.SliceStable(idx, func(i, j int) bool {
		return s.Layout.ZIndex.Get(idx[i]) < s.Layout.ZIndex.Get(idx[j])
	})
}

// paint recursively paints idx and its children into buf, tracking
// inherited colors/opacity and accumulated clip/scroll (spec §4.4 "Rendering
// walk").
func (e *Engine) paint(idx int, computed *layout.Computed, buf *Buffer, childrenOf map[int][]int, clip clipRect, scrollX, scrollY int, inheritFg, inheritBg, inheritBorder color.Color, inheritOpacity float64, res *Result) {
	x, y, w, h := computed.X[idx]-scrollX, computed.Y[idx]-scrollY, computed.Width[idx], computed.Height[idx]
	rect := clipRect{x, y, x + w, y + h}
	visibleRect, ok := rect.intersect(clip)

	if !e.Store.Core.Visible.Get(idx) {
		return
	}
	if !ok {
		return
	}

	fg := inheritFg
	if v := e.Store.Visual.FgColor.Get(idx); !v.IsUnset() {
		fg = v
	}
	bg := inheritBg
	if v := e.Store.Visual.BgColor.Get(idx); !v.IsUnset() {
		bg = v
	}
	borderColor := inheritBorder
	if v := e.Store.Visual.BorderColor.Get(idx); !v.IsUnset() {
		borderColor = v
	}
	// Primitives default Visual.Opacity to 1.0 at creation time, so an
	// unset slot (zero value) only occurs for components built without
	// going through flexterm's constructors (e.g. in isolated tests).
	ownOpacity := e.Store.Visual.Opacity.Get(idx)
	if ownOpacity == 0 {
		ownOpacity = 1
	}
	opacity := inheritOpacity * ownOpacity

	fg = fg.Scaled(opacity)
	bg = bg.Scaled(opacity)
	borderColor = borderColor.Scaled(opacity)

	if bg.A > 0 && !bg.IsDefault() {
		e.fillRect(buf, visibleRect, bg)
	}

	res.HitRegions = append(res.HitRegions, HitRegion{X: x, Y: y, W: w, H: h, Index: arena.Index(idx)})

	border := e.Store.Visual.BorderStyle.Get(idx)
	contentClip := visibleRect
	contentX, contentY, contentW, contentH := x, y, w, h
	if border != store.BorderNone && w >= 2 && h >= 2 {
		e.drawBorder(buf, x, y, w, h, border, borderColor, visibleRect)
		contentX, contentY = x+1, y+1
		contentW, contentH = w-2, h-2
	}
	pad := e.Store.Spacing.Padding.Get(idx)
	contentX += pad.Left
	contentY += pad.Top
	contentW -= pad.Left + pad.Right
	contentH -= pad.Top + pad.Bottom
	contentClip, ok = clipRect{contentX, contentY, contentX + max(contentW, 0), contentY + max(contentH, 0)}.intersect(visibleRect)
	if !ok {
		contentClip = clipRect{}
	}

	typ := e.Store.Core.Type.Get(idx)
	switch typ {
	case store.Text:
		e.paintText(buf, idx, contentX, contentY, contentW, contentH, fg, contentClip)
	case store.Input:
		e.paintInput(buf, idx, contentX, contentY, contentW, contentH, fg, contentClip)
	case store.Progress:
		e.paintProgress(buf, idx, contentX, contentY, contentW, fg, contentClip)
	case store.Select:
		e.paintSelect(buf, idx, contentX, contentY, contentW, fg, contentClip)
	}

	if typ == store.Box || typ == store.None {
		childScrollX, childScrollY := scrollX, scrollY
		overflow := e.Store.Layout.Overflow.Get(idx)
		if overflow == store.OverflowScroll || overflow == store.OverflowAuto {
			childScrollX += e.Store.Interaction.ScrollOffsetX.Get(idx)
			childScrollY += e.Store.Interaction.ScrollOffsetY.Get(idx)
		}
		for _, ch := range childrenOf[idx] {
			e.paint(ch, computed, buf, childrenOf, contentClip, childScrollX, childScrollY, fg, bg, borderColor, opacity, res)
		}
	}
}

func (e *Engine) fillRect(buf *Buffer, r clipRect, bg color.Color) {
	for y := r.y0; y < r.y1; y++ {
		for x := r.x0; x < r.x1; x++ {
			cell := buf.Get(x, y)
			cell.Rune = ' '
			cell.Bg = color.Blend(cell.Bg, bg)
			buf.set(x, y, cell)
		}
	}
}
