package store

import (
	"testing"

	"flexterm/arena"
	"flexterm/color"
)

func TestNewStoreDefaultsAreZeroValues(t *testing.T) {
	a := arena.New()
	s := New(a)
	idx := a.Allocate("")

	if s.Core.Type.Get(int(idx)) != None {
		t.Errorf("expected zero-value ComponentType None")
	}
	if s.Visual.FgColor.Get(int(idx)) != (color.Color{}) {
		t.Errorf("expected zero-value color.Color")
	}
}

func TestStoreClearsSlotsOnRelease(t *testing.T) {
	a := arena.New()
	s := New(a)
	idx := a.Allocate("")

	s.Core.Type.Set(int(idx), Box)
	s.Text.Content.Set(int(idx), "hello")
	s.Handlers.OnClick[idx] = func(x, y int) bool { return true }

	a.Release(idx)

	if s.Core.Type.Get(int(idx)) != None {
		t.Errorf("expected Type cleared after release")
	}
	if s.Text.Content.Get(int(idx)) != "" {
		t.Errorf("expected Content cleared after release")
	}
	if _, ok := s.Handlers.OnClick[idx]; ok {
		t.Errorf("expected OnClick handler removed after release")
	}
}

func TestStoreResetsOnEmptyArena(t *testing.T) {
	a := arena.New()
	s := New(a)
	idx := a.Allocate("")
	s.Spacing.Gap.Set(int(idx), 3)

	a.Release(idx)

	idx2 := a.Allocate("")
	if idx2 != idx {
		t.Fatalf("expected index reuse after empty reset, got %d vs %d", idx2, idx)
	}
	if s.Spacing.Gap.Get(int(idx2)) != 0 {
		t.Errorf("expected gap reset to zero value on empty-reset, got %d", s.Spacing.Gap.Get(int(idx2)))
	}
}

func TestDimensionResolve(t *testing.T) {
	if v, ok := Cells(5).Resolve(100); !ok || v != 5 {
		t.Errorf("expected (5, true), got (%d, %v)", v, ok)
	}
	if v, ok := Pct(50).Resolve(100); !ok || v != 50 {
		t.Errorf("expected (50, true), got (%d, %v)", v, ok)
	}
	if _, ok := AutoDim().Resolve(100); ok {
		t.Errorf("expected auto dimension to report not-ok")
	}
}

func TestOffsetsDistinguishUnsetFromZero(t *testing.T) {
	var o Offsets
	if o.Top.Set {
		t.Errorf("expected zero-value Offset to be unset")
	}
	o.Top = Offset{Value: 0, Set: true}
	if !o.Top.Set {
		t.Errorf("expected explicit zero offset to be set")
	}
}
