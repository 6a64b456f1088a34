package input

import (
	"bytes"
	"testing"
	"time"

	"flexterm/arena"
	"flexterm/store"
)

func TestDecodeArrowKey(t *testing.T) {
	d := StartDecoder(bytes.NewReader([]byte("\x1b[A")))
	defer d.Stop()

	select {
	case ev := <-d.Events():
		if ev.Key == nil || ev.Key.Key != KeyArrowUp {
			t.Fatalf("expected ArrowUp, got %+v", ev)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for decoded event")
	}
}

func TestDecodePlainChar(t *testing.T) {
	d := StartDecoder(bytes.NewReader([]byte("a")))
	defer d.Stop()

	select {
	case ev := <-d.Events():
		if ev.Key == nil || ev.Key.Key != KeyChar || ev.Key.Rune != 'a' {
			t.Fatalf("expected char 'a', got %+v", ev)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for decoded event")
	}
}

func TestDecodeSGRMouseClick(t *testing.T) {
	d := StartDecoder(bytes.NewReader([]byte("\x1b[<0;5;3M")))
	defer d.Stop()

	select {
	case ev := <-d.Events():
		if ev.Mouse == nil {
			t.Fatalf("expected mouse event, got %+v", ev)
		}
		m := ev.Mouse
		if m.Action != MouseDown || m.Button != ButtonLeft || m.X != 4 || m.Y != 2 {
			t.Fatalf("unexpected mouse event %+v", m)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for decoded event")
	}
}

func TestDispatchKeyOrderingAndConsumption(t *testing.T) {
	a := arena.New()
	s := store.New(a)
	r := NewRouter(a, s)

	var order []string
	idx := a.Allocate("")
	r.FocusedIndex.Set(idx)

	r.OnFocused(idx, func(KeyEvent) bool { order = append(order, "focused"); return true })
	r.OnKey(func(KeyEvent) bool { order = append(order, "key"); return true }, KeyEnter)
	r.On(func(Event) bool { order = append(order, "global"); return true })

	r.DispatchKey(KeyEvent{Key: KeyEnter, State: StatePress})

	if len(order) != 1 || order[0] != "focused" {
		t.Errorf("expected only the focused handler to run, got %v", order)
	}
}

func TestDispatchKeyFallsThroughWhenNotConsumed(t *testing.T) {
	a := arena.New()
	s := store.New(a)
	r := NewRouter(a, s)

	var order []string
	r.OnKey(func(KeyEvent) bool { order = append(order, "key"); return false }, KeyEnter)
	r.On(func(Event) bool { order = append(order, "global"); return true })

	r.DispatchKey(KeyEvent{Key: KeyEnter, State: StatePress})

	if len(order) != 2 || order[0] != "key" || order[1] != "global" {
		t.Errorf("expected key then global, got %v", order)
	}
}

func TestDispatchMouseClickToFocus(t *testing.T) {
	a := arena.New()
	s := store.New(a)
	r := NewRouter(a, s)

	idx := a.Allocate("")
	s.Interaction.Focusable.Set(int(idx), true)
	r.Grid.Resize(10, 10)
	r.Grid.Write(0, 0, 5, 5, idx)

	r.DispatchMouse(MouseEvent{Action: MouseUp, X: 1, Y: 1})

	if r.FocusedIndex.Peek() != idx {
		t.Errorf("expected click to focus the clicked component")
	}
}

func TestFocusableOrderRespectsTabIndex(t *testing.T) {
	a := arena.New()
	s := store.New(a)
	r := NewRouter(a, s)

	i1 := a.Allocate("")
	i2 := a.Allocate("")
	s.Interaction.Focusable.Set(int(i1), true)
	s.Interaction.Focusable.Set(int(i2), true)
	s.Interaction.TabIndex.Set(int(i1), 2)
	s.Interaction.TabIndex.Set(int(i2), 1)

	order := r.FocusableOrder()
	if len(order) != 2 || order[0] != i2 || order[1] != i1 {
		t.Errorf("expected tab-index order [i2 i1], got %v", order)
	}
}
