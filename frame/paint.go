package frame

import (
	"strconv"

	"flexterm/color"
	"flexterm/layout"
	"flexterm/store"
)

// borderGlyphs holds the eight box-drawing characters for one style
// (spec §4.4 "one of N style tables (SINGLE, DOUBLE, ROUND, THICK...)").
type borderGlyphs struct {
	topLeft, topRight, bottomLeft, bottomRight rune
	horizontal, vertical                       rune
}

var borderTables = map[store.BorderStyle]borderGlyphs{
	store.BorderSingle: {'┌', '┐', '└', '┘', '─', '│'},
	store.BorderDouble: {'╔', '╗', '╚', '╝', '═', '║'},
	store.BorderRound:  {'╭', '╮', '╰', '╯', '─', '│'},
	store.BorderThick:  {'┏', '┓', '┗', '┛', '━', '┃'},
}

// drawBorder paints a border around the given rect, clipped to clip (spec
// §4.4 step "e"). All four sides use style's glyph table (SINGLE for an
// unknown style) and the single color fallback; the store's BorderSides,
// BorderStyleOverride and BorderColorOverride arrays are not consulted.
func (e *Engine) drawBorder(buf *Buffer, x, y, w, h int, style store.BorderStyle, fallback color.Color, clip clipRect) {
	glyphs, ok := borderTables[style]
	if !ok {
		glyphs = borderTables[store.BorderSingle]
	}

	put := func(px, py int, r rune, c color.Color) {
		if px < clip.x0 || px >= clip.x1 || py < clip.y0 || py >= clip.y1 {
			return
		}
		buf.set(px, py, Cell{Rune: r, Fg: c})
	}

	put(x, y, glyphs.topLeft, fallback)
	put(x+w-1, y, glyphs.topRight, fallback)
	put(x, y+h-1, glyphs.bottomLeft, fallback)
	put(x+w-1, y+h-1, glyphs.bottomRight, fallback)
	for i := 1; i < w-1; i++ {
		put(x+i, y, glyphs.horizontal, fallback)
		put(x+i, y+h-1, glyphs.horizontal, fallback)
	}
	for i := 1; i < h-1; i++ {
		put(x, y+i, glyphs.vertical, fallback)
		put(x+w-1, y+i, glyphs.vertical, fallback)
	}
}

func (e *Engine) writeLine(buf *Buffer, x, y, w int, line string, fg color.Color, attrs color.Attrs, align store.TextAlign, clip clipRect) {
	lineW := layout.DisplayWidth(line)
	startX := x
	switch align {
	case store.AlignCenterText:
		startX = x + max(0, (w-lineW)/2)
	case store.AlignRight:
		startX = x + max(0, w-lineW)
	}

	col := startX
	for _, r := range line {
		rw := layout.RuneWidth(r)
		if rw == 0 {
			rw = 1
		}
		if col < clip.x0 || col >= clip.x1 || y < clip.y0 || y >= clip.y1 {
			col += rw
			continue
		}
		buf.set(col, y, Cell{Rune: r, Fg: fg, Attrs: attrs})
		col += rw
	}
}

func (e *Engine) paintText(buf *Buffer, idx int, x, y, w, h int, fg color.Color, clip clipRect) {
	if w <= 0 || h <= 0 {
		return
	}
	content := e.Store.Text.Content.Get(idx)
	wrap := e.Store.Text.TextWrap.Get(idx)
	align := e.Store.Text.TextAlign.Get(idx)
	attrs := e.Store.Text.Attrs.Get(idx)

	var lines []string
	switch wrap {
	case store.NoWrapText:
		lines = []string{content}
	case store.TruncateText:
		lines = []string{layout.TruncateLine(content, w)}
	default:
		lines = layout.WrapText(content, w)
	}

	for i, line := range lines {
		if i >= h {
			break
		}
		if wrap == store.NoWrapText {
			line = layout.TruncateLine(line, w)
		}
		e.writeLine(buf, x, y+i, w, line, fg, attrs, align, clip)
	}
}

func (e *Engine) paintInput(buf *Buffer, idx int, x, y, w, h int, fg color.Color, clip clipRect) {
	if w <= 0 || h <= 0 {
		return
	}
	content := e.Store.Text.Content.Get(idx)
	cursorPos := e.Store.Interaction.CursorPos.Get(idx)
	attrs := e.Store.Text.Attrs.Get(idx)

	runes := []rune(content)
	scroll := 0
	if cursorPos >= w {
		scroll = cursorPos - w + 1
	}
	visible := runes
	if scroll < len(runes) {
		visible = runes[scroll:]
	} else {
		visible = nil
	}
	e.writeLine(buf, x, y, w, string(visible), fg, attrs, store.AlignLeft, clip)

	focused := e.Store.Interaction.CursorVisible.Get(idx)
	if focused {
		cursorX := x + (cursorPos - scroll)
		ch := e.Store.Interaction.CursorChar.Get(idx)
		if ch == 0 {
			ch = ' '
		}
		if cursorX >= clip.x0 && cursorX < clip.x1 && y >= clip.y0 && y < clip.y1 {
			cell := buf.Get(cursorX, y)
			cell.Attrs |= color.Inverse
			if ch != ' ' {
				cell.Rune = ch
			}
			buf.set(cursorX, y, cell)
		}
	}
}

func (e *Engine) paintProgress(buf *Buffer, idx int, x, y, w int, fg color.Color, clip clipRect) {
	if w <= 0 {
		return
	}
	content := e.Store.Text.Content.Get(idx)
	p, _ := strconv.ParseFloat(content, 64)
	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}
	filled := int(p * float64(w))
	dimFg := fg.Scaled(0.5)

	for i := 0; i < w; i++ {
		px := x + i
		if px < clip.x0 || px >= clip.x1 || y < clip.y0 || y >= clip.y1 {
			continue
		}
		if i < filled {
			buf.set(px, y, Cell{Rune: '█', Fg: fg})
		} else {
			buf.set(px, y, Cell{Rune: '░', Fg: dimFg})
		}
	}
}

func (e *Engine) paintSelect(buf *Buffer, idx int, x, y, w int, fg color.Color, clip clipRect) {
	if w <= 0 {
		return
	}
	content := e.Store.Text.Content.Get(idx)
	attrs := e.Store.Text.Attrs.Get(idx)
	indicatorW := 1
	textW := w - indicatorW
	if textW < 0 {
		textW = 0
	}
	e.writeLine(buf, x, y, textW, layout.TruncateLine(content, textW), fg, attrs, store.AlignLeft, clip)
	if indicatorX := x + w - 1; indicatorX >= clip.x0 && indicatorX < clip.x1 && y >= clip.y0 && y < clip.y1 {
		buf.set(indicatorX, y, Cell{Rune: '▼', Fg: fg})
	}
}
