package input

import "flexterm/arena"

// MouseAction is the kind of mouse event (spec §4.6).
type MouseAction int

const (
	MouseDown MouseAction = iota
	MouseUp
	MouseMove
	MouseScroll
)

// MouseButton identifies which button a down/up event refers to.
type MouseButton int

const (
	ButtonNone MouseButton = iota
	ButtonLeft
	ButtonMiddle
	ButtonRight
)

// ScrollDirection is the wheel direction for a scroll event.
type ScrollDirection int

const (
	ScrollUp ScrollDirection = iota
	ScrollDown
)

// MouseEvent is a normalized mouse event, with ComponentIndex resolved by
// a HitGrid lookup before dispatch (spec §4.6).
type MouseEvent struct {
	Action         MouseAction
	Button         MouseButton
	X, Y           int
	Mods           Modifiers
	ComponentIndex arena.Index
	ScrollDir      ScrollDirection
	ScrollDelta    int
}

// HitGrid maps screen coordinates to the component index that last
// painted them there (spec §4.4 "Returns hit regions so the render
// effect can update the HitGrid without the derived having side
// effects").
type HitGrid struct {
	width, height int
	cells         []arena.Index
}

// NewHitGrid creates an empty grid.
func NewHitGrid() *HitGrid { return &HitGrid{} }

// Resize grows or shrinks the grid, discarding prior contents (the
// render effect always calls Clear+write after Resize, per spec §4.5).
func (g *HitGrid) Resize(w, h int) {
	g.width, g.height = w, h
	n := w * h
	if cap(g.cells) < n {
		g.cells = make([]arena.Index, n)
	} else {
		g.cells = g.cells[:n]
	}
	g.Clear()
}

// Clear resets every cell to arena.None.
func (g *HitGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = arena.None
	}
}

// Write stamps rect (x,y,w,h) with idx; later writes (children, painted
// after parents) overwrite earlier ones naturally (spec §4.4 step "d").
func (g *HitGrid) Write(x, y, w, h int, idx arena.Index) {
	for row := y; row < y+h; row++ {
		if row < 0 || row >= g.height {
			continue
		}
		for col := x; col < x+w; col++ {
			if col < 0 || col >= g.width {
				continue
			}
			g.cells[row*g.width+col] = idx
		}
	}
}

// Lookup returns the component index at (x,y), or arena.None.
func (g *HitGrid) Lookup(x, y int) arena.Index {
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		return arena.None
	}
	return g.cells[y*g.width+x]
}
