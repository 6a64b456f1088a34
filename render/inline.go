package render

import (
	"io"
	"strconv"

	"flexterm/frame"
)

// Inline is the InlineRenderer of spec §4.5: no alternate screen, erases
// the previously drawn region by height and rewrites it sequentially row
// by row, leaving the cursor on the last row. Drops absolute
// cursor-position diffing since inline content scrolls with the
// surrounding terminal history instead of owning a fixed grid.
type Inline struct {
	w          *escWriter
	prevHeight int
}

// NewInline returns an Inline writer. No terminal mode changes happen on
// construction; the first Draw call establishes the region.
func NewInline(out io.Writer) *Inline {
	return &Inline{w: newEscWriter(out)}
}

// Invalidate forces the next Draw to treat the previous region as if it
// were empty (no erase before drawing).
func (in *Inline) Invalidate() { in.prevHeight = 0 }

// Draw erases the previously drawn rows then writes buf row by row,
// leaving the cursor at the end of the last row written (spec §4.5
// "leaves the cursor on the last row").
func (in *Inline) Draw(buf *frame.Buffer) {
	if in.prevHeight > 0 {
		in.w.out.WriteString("\r")
		if in.prevHeight > 1 {
			in.w.out.WriteString("\x1b[")
			in.w.out.WriteString(strconv.Itoa(in.prevHeight - 1))
			in.w.out.WriteString("A")
		}
	}

	for y := 0; y < buf.Height; y++ {
		in.w.out.WriteString("\x1b[2K")
		for x := 0; x < buf.Width; x++ {
			in.w.writeCell(buf.Get(x, y))
		}
		in.w.resetStyle()
		if y < buf.Height-1 {
			in.w.out.WriteString("\r\n")
		}
	}
	in.prevHeight = buf.Height
}

// Flush writes all staged escapes to the underlying stream.
func (in *Inline) Flush() error { return in.w.flush() }

// Close leaves the terminal as-is; inline mode never owned alt-screen or
// cursor-visibility state.
func (in *Inline) Close() error { return nil }
