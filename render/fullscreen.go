package render

import (
	"io"

	"flexterm/frame"
)

// Fullscreen is the DiffRenderer of spec §4.5: alt-screen, previous-frame
// diffing, minimal escape emission per changed cell, via a front/back
// double-buffer over frame.Cell/color.Color.
type Fullscreen struct {
	w     *escWriter
	prev  *frame.Buffer
	dirty bool
}

// NewFullscreen enters the alternate screen, clears it, homes and hides
// the cursor (spec §4.5 "Fullscreen: enter alt-screen, clear screen,
// home cursor, hide cursor").
func NewFullscreen(out io.Writer) *Fullscreen {
	f := &Fullscreen{w: newEscWriter(out), dirty: true}
	f.w.out.WriteString("\x1b[?1049h\x1b[2J\x1b[H\x1b[?25l")
	f.w.flush()
	return f
}

// Flush writes all staged escapes to the underlying stream.
func (f *Fullscreen) Flush() error { return f.w.flush() }

// Invalidate forces the next Draw to repaint every cell, per spec §4.5
// "On first draw or after invalidate() ... treats all cells as dirty".
func (f *Fullscreen) Invalidate() {
	f.dirty = true
	f.prev = nil
}

// Draw diffs buf against the previous frame cell-by-cell and writes only
// the minimum escape sequence for each changed cell.
func (f *Fullscreen) Draw(buf *frame.Buffer) {
	if f.prev == nil || f.prev.Width != buf.Width || f.prev.Height != buf.Height {
		f.dirty = true
	}

	for y := 0; y < buf.Height; y++ {
		for x := 0; x < buf.Width; x++ {
			cell := buf.Get(x, y)
			if !f.dirty && f.prev != nil && f.prev.Get(x, y) == cell {
				continue
			}
			f.w.moveTo(x, y)
			f.w.writeCell(cell)
		}
	}
	f.w.resetStyle()

	f.prev = buf
	f.dirty = false
}

// Close restores the cursor and exits the alternate screen (spec §4.5
// teardown "restores cursor, and, in fullscreen, exits alt-screen").
func (f *Fullscreen) Close() error {
	f.w.out.WriteString("\x1b[?25h\x1b[?1049l")
	return f.w.flush()
}
