// Package render turns a frame.Buffer into the minimum set of ANSI escape
// codes needed to bring a terminal's visible contents in line with it,
// in one of three modes (spec §4.5): three interchangeable Writer
// implementations sharing the same cursor/style-coalescing escape
// emission that a single diff-renderer would otherwise duplicate.
package render

import (
	"bufio"
	"io"
	"strconv"

	"flexterm/color"
	"flexterm/frame"
)

// Mode selects which renderer mount() wires up (spec §6 "mode").
type Mode int

const (
	ModeFullscreen Mode = iota
	ModeInline
	ModeAppend
)

// Writer is the interface all three render modes satisfy. Draw consumes
// one frame.Buffer and stages escapes into the writer's internal buffer;
// Flush is the explicit I/O boundary (spec §3.2/§7 "write failures to
// stdout are logged via the error reporter and the effect retries on the
// next frame" — callers inspect Flush's error rather than Draw's).
// Invalidate forces the next Draw to treat every cell as dirty (e.g.
// after a terminal resize); Close reverses whatever terminal state the
// writer entered and performs a final flush.
type Writer interface {
	Draw(buf *frame.Buffer)
	Flush() error
	Invalidate()
	Close() error
}

// escWriter is the shared low-level escape-sequence emitter every mode
// builds on: a buffered writer plus a reused cursor-position scratch
// buffer so each Draw doesn't allocate.
type escWriter struct {
	out       *bufio.Writer
	posBuf    []byte
	curX      int
	curY      int
	styleSet  bool
	lastFg    color.Color
	lastBg    color.Color
	lastAttrs color.Attrs
}

func newEscWriter(w io.Writer) *escWriter {
	return &escWriter{out: bufio.NewWriterSize(w, 64*1024), posBuf: make([]byte, 0, 32), curX: -1, curY: -1}
}

// moveTo emits an absolute cursor-position escape only if the cursor
// isn't already at (x,y), coalescing runs of adjacent cells into one
// positioning escape instead of one per cell.
func (e *escWriter) moveTo(x, y int) {
	if e.curX == x && e.curY == y {
		return
	}
	e.posBuf = e.posBuf[:0]
	e.posBuf = append(e.posBuf, '\x1b', '[')
	e.posBuf = strconv.AppendInt(e.posBuf, int64(y+1), 10)
	e.posBuf = append(e.posBuf, ';')
	e.posBuf = strconv.AppendInt(e.posBuf, int64(x+1), 10)
	e.posBuf = append(e.posBuf, 'H')
	e.out.Write(e.posBuf)
	e.curX, e.curY = x, y
}

// writeCell emits style escapes only when the style actually changed
// since the last cell written, then the rune, then advances curX.
func (e *escWriter) writeCell(c frame.Cell) {
	if !e.styleSet || c.Fg != e.lastFg || c.Bg != e.lastBg || c.Attrs != e.lastAttrs {
		e.out.WriteString("\x1b[0m")
		e.writeStyle(c.Fg, c.Bg, c.Attrs)
		e.lastFg, e.lastBg, e.lastAttrs = c.Fg, c.Bg, c.Attrs
		e.styleSet = true
	}
	r := c.Rune
	if r == 0 {
		r = ' '
	}
	e.out.WriteRune(r)
	e.curX++
}

func (e *escWriter) writeStyle(fg, bg color.Color, attrs color.Attrs) {
	for _, code := range attrs.Codes() {
		e.out.WriteString("\x1b[")
		e.out.WriteString(code)
		e.out.WriteByte('m')
	}
	if !fg.IsUnset() {
		e.out.WriteString("\x1b[")
		e.out.WriteString(fg.FgSGR())
		e.out.WriteByte('m')
	}
	if !bg.IsUnset() {
		e.out.WriteString("\x1b[")
		e.out.WriteString(bg.BgSGR())
		e.out.WriteByte('m')
	}
}

func (e *escWriter) resetStyle() {
	if e.styleSet {
		e.out.WriteString("\x1b[0m")
		e.styleSet = false
	}
}

func (e *escWriter) flush() error { return e.out.Flush() }
