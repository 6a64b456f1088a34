package layout

import (
	"flexterm/arena"
	"flexterm/store"
)

// flexLine is one wrapped row/column of flow children (spec §4.3 pass 4.1).
type flexLine struct {
	items    []int
	mainSize int // sum of item main sizes + inter-item gaps, before distribution
}

// positionChildren lays out idx's flow children inside its already-known
// content box, then recurses into each child (spec §4.3 pass 4).
func (e *Engine) positionChildren(idx int, c *Computed, tw, th int) {
	pad := e.paddingOf(idx)
	border := e.borderThickness(idx)
	contentX := c.X[idx] + pad.Left + border
	contentY := c.Y[idx] + pad.Top + border
	contentW := c.Width[idx] - pad.Left - pad.Right - border*2
	contentH := c.Height[idx] - pad.Top - pad.Bottom - border*2
	if contentW < 0 {
		contentW = 0
	}
	if contentH < 0 {
		contentH = 0
	}

	dir := e.Store.Layout.FlexDirection.Get(idx)
	wrap := e.Store.Layout.FlexWrap.Get(idx)
	gap := e.Store.Spacing.Gap.Get(idx)
	flow := e.flowChildren(idx)

	mainSize, crossSize := contentW, contentH
	if !dir.IsRow() {
		mainSize, crossSize = contentH, contentW
	}

	lines := e.buildLines(flow, dir, mainSize, gap, wrap != store.NoWrap, tw, th)

	lineCount := len(lines)
	if lineCount == 0 {
		// still recurse into non-flow children/absolute pass handles them
		return
	}
	crossPerLine := crossSize / lineCount

	childrenMaxMain, childrenMaxCross := 0, 0
	crossCursor := 0

	linesOrdered := lines
	if dir.IsReversed() {
		linesOrdered = reverseLines(lines)
	}

	for _, line := range linesOrdered {
		e.positionLine(c, idx, line, dir, wrap, gap, mainSize, crossPerLine, contentX, contentY, crossCursor, &childrenMaxMain, &childrenMaxCross, tw, th)
		crossCursor += crossPerLine
	}

	overflow := e.Store.Layout.Overflow.Get(idx)
	if overflow == store.OverflowScroll || overflow == store.OverflowAuto {
		childrenMaxX, childrenMaxY := childrenMaxMain, childrenMaxCross
		if !dir.IsRow() {
			childrenMaxX, childrenMaxY = childrenMaxCross, childrenMaxMain
		}
		maxSX := childrenMaxX - contentW
		maxSY := childrenMaxY - contentH
		if maxSX < 0 {
			maxSX = 0
		}
		if maxSY < 0 {
			maxSY = 0
		}
		c.MaxScrollX[idx] = maxSX
		c.MaxScrollY[idx] = maxSY
		c.Scrollable[idx] = overflow == store.OverflowScroll || maxSX > 0 || maxSY > 0
	}

	for _, ch := range flow {
		e.positionChildren(ch, c, tw, th)
	}
}

func reverseLines(lines []flexLine) []flexLine {
	out := make([]flexLine, len(lines))
	for i, l := range lines {
		out[len(lines)-1-i] = l
	}
	return out
}

// buildLines accumulates flow children into flex lines, wrapping when the
// next child would exceed mainSize (spec §4.3 pass 4.1).
func (e *Engine) buildLines(flow []int, dir store.FlexDirection, mainSize, gap int, canWrap bool, tw, th int) []flexLine {
	if len(flow) == 0 {
		return nil
	}
	var lines []flexLine
	var cur flexLine
	for _, ch := range flow {
		w, h := e.flexBase(ch, dir, tw, th)
		main := w
		if !dir.IsRow() {
			main = h
		}
		addition := main
		if len(cur.items) > 0 {
			addition += gap
		}
		if canWrap && len(cur.items) > 0 && cur.mainSize+addition > mainSize {
			lines = append(lines, cur)
			cur = flexLine{}
			addition = main
		}
		cur.items = append(cur.items, ch)
		cur.mainSize += addition
	}
	if len(cur.items) > 0 {
		lines = append(lines, cur)
	}
	return lines
}

// positionLine distributes free space among a line's items (flex
// grow/shrink), applies justify-content and align-items, and writes each
// item's final x/y/w/h (spec §4.3 pass 4.2-4.6).
func (e *Engine) positionLine(c *Computed, parent int, line flexLine, dir store.FlexDirection, wrap store.FlexWrap, gap, mainSize, crossSize, contentX, contentY, crossOffset int, maxMain, maxCross *int, tw, th int) {
	items := line.items
	if dir.IsReversed() {
		items = reverseSlice(items)
	}

	type itemSize struct{ main, cross, grow, shrink int; growF, shrinkF float64 }
	sizes := make([]itemSize, len(items))
	totalGrow, totalShrink := 0.0, 0.0

	for i, ch := range items {
		w, h := e.flexBase(ch, dir, tw, th)
		main, cross := w, h
		if !dir.IsRow() {
			main, cross = h, w
		}
		growF := e.Store.Layout.FlexGrow.Get(ch)
		shrinkF := e.Store.Layout.FlexShrink.Get(ch)
		sizes[i] = itemSize{main: main, cross: cross, growF: growF, shrinkF: shrinkF}
		totalGrow += growF
		totalShrink += shrinkF
	}

	free := mainSize - line.mainSize
	if free > 0 && totalGrow > 0 {
		allocated := 0
		for i := range sizes {
			share := int(float64(free) * sizes[i].growF / totalGrow)
			sizes[i].main += share
			allocated += share
		}
		sizes[len(sizes)-1].main += free - allocated
	} else if free < 0 && totalShrink > 0 {
		deficit := -free
		allocated := 0
		for i := range sizes {
			share := int(float64(deficit) * sizes[i].shrinkF / totalShrink)
			sizes[i].main -= share
			allocated += share
		}
		sizes[len(sizes)-1].main -= deficit - allocated
		for i := range sizes {
			if sizes[i].main < 0 {
				sizes[i].main = 0
			}
		}
	}

	remaining := mainSize - line.mainSize
	if remaining < 0 {
		remaining = 0
	}
	count := len(items)
	justify := e.Store.Layout.Justify.Get(parent)

	offset, itemGap := 0, gap
	switch justify {
	case store.JustifyStart:
		offset, itemGap = 0, gap
	case store.JustifyCenter:
		offset = remaining / 2
	case store.JustifyEnd:
		offset = remaining
	case store.JustifyBetween:
		if count > 1 {
			itemGap = remaining/(count-1) + gap
		}
	case store.JustifyAround:
		if count > 0 {
			slab := remaining / count
			offset = slab / 2
			itemGap = slab + gap
		}
	case store.JustifyEvenly:
		slab := remaining / (count + 1)
		offset = slab
		itemGap = slab + gap
	}

	align := e.Store.Layout.AlignItems.Get(parent)
	cursor := offset

	for i, ch := range items {
		alignSelf := e.Store.Layout.AlignSelf.Get(ch)
		effectiveAlign := align
		if alignSelf != store.AlignStretch {
			effectiveAlign = alignSelf
		}

		itemCross := sizes[i].cross
		crossPos := 0
		switch effectiveAlign {
		case store.AlignStretch:
			if hasExplicit := e.hasExplicitCross(ch, dir); !hasExplicit {
				itemCross = crossSize
			}
		case store.AlignStart:
		case store.AlignCenter:
			crossPos = (crossSize - itemCross) / 2
		case store.AlignEnd:
			crossPos = crossSize - itemCross
		case store.AlignBaseline:
			// baseline not yet supported; treat as start.
		}
		if crossPos < 0 {
			crossPos = 0
		}

		var x, y, w, h int
		if dir.IsRow() {
			x = contentX + cursor
			y = contentY + crossOffset + crossPos
			w, h = sizes[i].main, itemCross
		} else {
			x = contentX + crossOffset + crossPos
			y = contentY + cursor
			w, h = itemCross, sizes[i].main
		}
		w, h = e.clamp(ch, w, h)

		c.X[ch], c.Y[ch], c.Width[ch], c.Height[ch] = x, y, w, h

		if e.Store.Core.Type.Get(ch) == store.Text {
			pad := e.paddingOf(ch)
			border := e.borderThickness(ch)
			availW := w - pad.Left - pad.Right - border*2
			wrapMode := e.Store.Text.TextWrap.Get(ch)
			newH := MeasureTextHeight(e.Store.Text.Content.Get(ch), availW, wrapMode == store.NoWrapText, wrapMode == store.TruncateText) + pad.Top + pad.Bottom + border*2
			c.Height[ch] = newH
		}

		cursor += sizes[i].main + itemGap

		mainEnd := cursor
		if mainEnd > *maxMain {
			*maxMain = mainEnd
		}
		crossEnd := crossOffset + crossPos + itemCross
		if crossEnd > *maxCross {
			*maxCross = crossEnd
		}
	}
}

func reverseSlice(s []int) []int {
	out := make([]int, len(s))
	for i, v := range s {
		out[len(s)-1-i] = v
	}
	return out
}

func (e *Engine) hasExplicitCross(idx int, dir store.FlexDirection) bool {
	if dir.IsRow() {
		_, ok := e.Store.Dimensions.Height.Get(idx).Resolve(0)
		return ok
	}
	_, ok := e.Store.Dimensions.Width.Get(idx).Resolve(0)
	return ok
}

// positionAbsoluteChildren positions idx's absolute/fixed-position
// children relative to the nearest positioned ancestor (idx itself for
// absolute, the root for fixed) per spec §4.3 pass 5.
func (e *Engine) positionAbsoluteChildren(idx int, c *Computed, tw, th int) {
	for _, ch := range e.children(idx) {
		pos := e.Store.Layout.Position.Get(ch)
		if pos != store.PositionAbsolute && pos != store.PositionFixed {
			continue
		}
		containerX, containerY, containerW, containerH := c.X[idx], c.Y[idx], c.Width[idx], c.Height[idx]
		if pos == store.PositionFixed {
			root := arena.Index(idx)
			for p := e.Arena.Parent(root); p != arena.None; p = e.Arena.Parent(root) {
				root = p
			}
			r := int(root)
			containerX, containerY, containerW, containerH = c.X[r], c.Y[r], c.Width[r], c.Height[r]
		}

		w, h := e.explicitOrIntrinsic(ch, containerW, containerH)
		w, h = e.clamp(ch, w, h)

		off := e.Store.Layout.Offsets.Get(ch)
		x := containerX
		if off.Left.Set {
			x = containerX + off.Left.Value
		} else if off.Right.Set {
			x = containerX + containerW - w - off.Right.Value
		}
		y := containerY
		if off.Top.Set {
			y = containerY + off.Top.Value
		} else if off.Bottom.Set {
			y = containerY + containerH - h - off.Bottom.Value
		}

		c.X[ch], c.Y[ch], c.Width[ch], c.Height[ch] = x, y, w, h
		e.positionChildren(ch, c, tw, th)
	}
}
