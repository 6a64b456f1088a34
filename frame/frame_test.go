package frame

import (
	"testing"

	"flexterm/arena"
	"flexterm/color"
	"flexterm/layout"
	"flexterm/reactive"
	"flexterm/store"
)

func newTestEngine(tw, th int) (*Engine, *store.Store, *arena.Arena) {
	a := arena.New()
	s := store.New(a)
	l := layout.New(s, a, reactive.New(tw), reactive.New(th), reactive.New(false))
	e := New(s, a, l, reactive.New(false))
	return e, s, a
}

// S1 from the layout tests, extended to check the framebuffer: a bordered
// box with a text child should draw the top-left border glyph and place
// "Hi" inside the border.
func TestS1FramebufferDrawsBorderAndText(t *testing.T) {
	e, s, a := newTestEngine(40, 24)
	root := a.Allocate("root")
	s.Core.Type.Set(int(root), store.Box)
	s.Core.Visible.Set(int(root), true)
	s.Dimensions.Width.Set(int(root), store.Cells(10))
	s.Dimensions.Height.Set(int(root), store.Cells(3))
	s.Visual.BorderStyle.Set(int(root), store.BorderSingle)
	s.Visual.Opacity.Set(int(root), 1)

	a.PushParentContext(root)
	child := a.Allocate("text")
	a.PopParentContext()
	s.Core.Type.Set(int(child), store.Text)
	s.Core.Visible.Set(int(child), true)
	s.Text.Content.Set(int(child), "Hi")
	s.Visual.Opacity.Set(int(child), 1)

	res := e.Get()
	if res.Buffer.Height != 3 {
		t.Errorf("expected framebuffer height 3, got %d", res.Buffer.Height)
	}
	if got := res.Buffer.Get(0, 0).Rune; got != '┌' {
		t.Errorf("expected top-left corner glyph, got %q", got)
	}
	if got := res.Buffer.Get(1, 1).Rune; got != 'H' {
		t.Errorf("expected 'H' at (1,1), got %q", got)
	}
	if got := res.Buffer.Get(2, 1).Rune; got != 'i' {
		t.Errorf("expected 'i' at (2,1), got %q", got)
	}

	foundRoot, foundText := false, false
	for _, hr := range res.HitRegions {
		if hr.Index == root && hr.X == 0 && hr.Y == 0 && hr.W == 10 && hr.H == 3 {
			foundRoot = true
		}
		if hr.Index == child && hr.X == 1 && hr.Y == 1 && hr.W == 8 && hr.H == 1 {
			foundText = true
		}
	}
	if !foundRoot || !foundText {
		t.Errorf("expected hit regions for root and text child, got %+v", res.HitRegions)
	}
}

func TestFramebufferPurityUnderNoChange(t *testing.T) {
	e, s, a := newTestEngine(20, 10)
	root := a.Allocate("root")
	s.Core.Type.Set(int(root), store.Box)
	s.Core.Visible.Set(int(root), true)
	s.Dimensions.Width.Set(int(root), store.Cells(5))
	s.Dimensions.Height.Set(int(root), store.Cells(2))
	s.Visual.Opacity.Set(int(root), 1)

	r1 := e.Get()
	r2 := e.Get()
	if len(r1.Buffer.Cells) != len(r2.Buffer.Cells) {
		t.Fatalf("expected equal-length buffers")
	}
	for i := range r1.Buffer.Cells {
		if r1.Buffer.Cells[i] != r2.Buffer.Cells[i] {
			t.Fatalf("expected value-equal buffers at cell %d", i)
		}
	}
}

// Two nested scrollable ancestors must compose their scroll offsets: a
// descendant painted under scrollable B inside scrollable A is shifted by
// the sum of both offsets, not just the innermost one (frame.go's paint
// recurses with the running total, not each level's own contribution).
func TestNestedScrollOffsetsCompose(t *testing.T) {
	e, s, a := newTestEngine(10, 20)

	root := a.Allocate("root")
	s.Core.Type.Set(int(root), store.Box)
	s.Core.Visible.Set(int(root), true)
	s.Dimensions.Width.Set(int(root), store.Cells(10))
	s.Dimensions.Height.Set(int(root), store.Cells(20))
	s.Visual.Opacity.Set(int(root), 1)

	a.PushParentContext(root)
	outer := a.Allocate("outer")
	a.PopParentContext()
	s.Core.Type.Set(int(outer), store.Box)
	s.Core.Visible.Set(int(outer), true)
	s.Dimensions.Width.Set(int(outer), store.Cells(10))
	s.Dimensions.Height.Set(int(outer), store.Cells(20))
	s.Visual.Opacity.Set(int(outer), 1)
	s.Layout.Overflow.Set(int(outer), store.OverflowScroll)
	s.Interaction.ScrollOffsetY.Set(int(outer), 5)

	a.PushParentContext(outer)
	inner := a.Allocate("inner")
	a.PopParentContext()
	s.Core.Type.Set(int(inner), store.Box)
	s.Core.Visible.Set(int(inner), true)
	s.Dimensions.Width.Set(int(inner), store.Cells(10))
	s.Dimensions.Height.Set(int(inner), store.Cells(20))
	s.Visual.Opacity.Set(int(inner), 1)
	s.Layout.Overflow.Set(int(inner), store.OverflowScroll)
	s.Interaction.ScrollOffsetY.Set(int(inner), 3)

	// A filler box pushes "leaf" down to an unscrolled y=8, so that after
	// the full 5+3=8 scroll it lands exactly at the top of the viewport —
	// distinguishing the correct composed offset from the buggy
	// per-level delta (which would leave it at y=8-3=5 instead of 0).
	a.PushParentContext(inner)
	filler := a.Allocate("filler")
	s.Core.Type.Set(int(filler), store.Box)
	s.Core.Visible.Set(int(filler), true)
	s.Dimensions.Width.Set(int(filler), store.Cells(10))
	s.Dimensions.Height.Set(int(filler), store.Cells(8))
	s.Visual.Opacity.Set(int(filler), 1)

	leaf := a.Allocate("leaf")
	a.PopParentContext()
	s.Core.Type.Set(int(leaf), store.Text)
	s.Core.Visible.Set(int(leaf), true)
	s.Text.Content.Set(int(leaf), "X")
	s.Visual.Opacity.Set(int(leaf), 1)

	res := e.Get()
	var got *HitRegion
	for i := range res.HitRegions {
		if res.HitRegions[i].Index == leaf {
			got = &res.HitRegions[i]
		}
	}
	if got == nil {
		t.Fatal("expected a hit region for the leaf text")
	}
	if got.Y != 0 {
		t.Errorf("expected leaf painted at y=0 (unscrolled y=8 minus composed scroll 5+3=8), got y=%d", got.Y)
	}
}

func TestProgressBarFillsProportionally(t *testing.T) {
	e, s, a := newTestEngine(20, 5)
	root := a.Allocate("root")
	s.Core.Type.Set(int(root), store.Progress)
	s.Core.Visible.Set(int(root), true)
	s.Dimensions.Width.Set(int(root), store.Cells(10))
	s.Dimensions.Height.Set(int(root), store.Cells(1))
	s.Text.Content.Set(int(root), "0.5")
	s.Visual.Opacity.Set(int(root), 1)

	res := e.Get()
	filled := 0
	for x := 0; x < 10; x++ {
		if res.Buffer.Get(x, 0).Rune == '█' {
			filled++
		}
	}
	if filled != 5 {
		t.Errorf("expected 5 filled cells for 0.5 progress, got %d", filled)
	}
}

// A cursor past the visible width scrolls the displayed content so the
// cursor itself stays on-screen, and the cursor cell is drawn inverse.
func TestInputDrawsCursorScrolledToVisible(t *testing.T) {
	e, s, a := newTestEngine(20, 5)
	root := a.Allocate("root")
	s.Core.Type.Set(int(root), store.Input)
	s.Core.Visible.Set(int(root), true)
	s.Dimensions.Width.Set(int(root), store.Cells(5))
	s.Dimensions.Height.Set(int(root), store.Cells(1))
	s.Text.Content.Set(int(root), "hello world")
	s.Interaction.CursorPos.Set(int(root), 10)
	s.Interaction.CursorVisible.Set(int(root), true)
	s.Visual.Opacity.Set(int(root), 1)

	res := e.Get()
	// scroll = cursorPos-w+1 = 10-5+1 = 6, so the visible window is
	// "world" and the cursor (at content index 10, i.e. 'd') lands on
	// the last visible cell.
	want := "world"
	for i, r := range want {
		if got := res.Buffer.Get(i, 0).Rune; got != r {
			t.Errorf("cell %d: want %q, got %q", i, r, got)
		}
	}
	cursorCell := res.Buffer.Get(4, 0)
	if cursorCell.Rune != 'd' {
		t.Errorf("expected cursor cell to keep its content rune 'd', got %q", cursorCell.Rune)
	}
	if cursorCell.Attrs&color.Inverse == 0 {
		t.Errorf("expected cursor cell to be drawn inverse, got attrs %v", cursorCell.Attrs)
	}
}

// A select whose content overflows its width is truncated to leave room
// for the dropdown indicator, which is always drawn in the last column.
func TestSelectTruncatesAndDrawsIndicator(t *testing.T) {
	e, s, a := newTestEngine(20, 5)
	root := a.Allocate("root")
	s.Core.Type.Set(int(root), store.Select)
	s.Core.Visible.Set(int(root), true)
	s.Dimensions.Width.Set(int(root), store.Cells(10))
	s.Dimensions.Height.Set(int(root), store.Cells(1))
	s.Text.Content.Set(int(root), "Deploy to Production")
	s.Visual.Opacity.Set(int(root), 1)

	res := e.Get()
	want := "Deploy to"
	for i, r := range want {
		if got := res.Buffer.Get(i, 0).Rune; got != r {
			t.Errorf("cell %d: want %q, got %q", i, r, got)
		}
	}
	if got := res.Buffer.Get(9, 0).Rune; got != '▼' {
		t.Errorf("expected dropdown indicator '▼' in the last column, got %q", got)
	}
}
