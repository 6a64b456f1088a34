package render

import (
	"io"
	"strconv"

	"flexterm/frame"
)

// Append is the AppendRegionRenderer of spec §4.5: splits each frame at
// a static height. Rows above that line are written once as permanent
// scrollback; rows at and below it are the reactive region, erased and
// repainted every Draw. total_static_lines_committed only ever grows.
// Shares Inline's row-sequential emission style, plus a monotonic
// watermark tracking how much scrollback has already been committed,
// since here the reactive region is only ever a suffix of the grid
// rather than the whole thing.
type Append struct {
	w                  *escWriter
	getStaticHeight    func() int
	committed          int
	prevReactiveHeight int
}

// NewAppend returns an Append writer. getStaticHeight is consulted once
// per Draw to learn how many leading rows of the frame are static (spec
// §6 "get_static_height").
func NewAppend(out io.Writer, getStaticHeight func() int) *Append {
	if getStaticHeight == nil {
		getStaticHeight = func() int { return 0 }
	}
	return &Append{w: newEscWriter(out), getStaticHeight: getStaticHeight}
}

// Invalidate forces the next Draw to repaint the reactive region as if
// it were empty. The committed static watermark is untouched — it never
// retracts (spec §4.5 "do not retract — the already-committed content
// is permanent").
func (a *Append) Invalidate() { a.prevReactiveHeight = 0 }

// Draw commits any newly-static rows once, then erases and repaints the
// reactive region.
func (a *Append) Draw(buf *frame.Buffer) {
	staticHeight := a.getStaticHeight()
	if staticHeight > buf.Height {
		staticHeight = buf.Height
	}
	if staticHeight > a.committed {
		a.writeRows(buf, a.committed, staticHeight, false)
		a.committed = staticHeight
	}

	if a.prevReactiveHeight > 0 {
		a.w.out.WriteString("\r")
		if a.prevReactiveHeight > 1 {
			a.w.out.WriteString("\x1b[")
			a.w.out.WriteString(strconv.Itoa(a.prevReactiveHeight - 1))
			a.w.out.WriteString("A")
		}
	}
	a.writeRows(buf, a.committed, buf.Height, true)
	a.prevReactiveHeight = buf.Height - a.committed
}

// RenderToHistory synchronously paints sub into the static region,
// regardless of the main reactive region's state (spec §4.5
// "render_to_history(closure)").
func (a *Append) RenderToHistory(sub *frame.Buffer) {
	a.writeRows(sub, 0, sub.Height, false)
	a.committed += sub.Height
}

func (a *Append) writeRows(buf *frame.Buffer, from, to int, eraseFirst bool) {
	for y := from; y < to; y++ {
		if eraseFirst {
			a.w.out.WriteString("\x1b[2K")
		}
		for x := 0; x < buf.Width; x++ {
			a.w.writeCell(buf.Get(x, y))
		}
		a.w.resetStyle()
		if y < to-1 || !eraseFirst {
			a.w.out.WriteString("\r\n")
		}
	}
}

// Flush writes all staged escapes to the underlying stream.
func (a *Append) Flush() error { return a.w.flush() }

// Close leaves the terminal as-is; append mode never owned alt-screen or
// cursor-visibility state.
func (a *Append) Close() error { return nil }
