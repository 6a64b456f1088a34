// Package input decodes raw stdin bytes into normalized keyboard/mouse
// events and routes them to registered handlers (spec §4.6). The decoder
// goroutine only turns bytes into events and hands them off on a channel;
// every handler call and focus/hit-grid mutation happens on the single
// goroutine that owns the rest of the reactive graph (spec §5), instead
// of spawning a goroutine per callback.
package input

// Key identifies a normalized key name (spec §4.6: "ArrowUp, Enter,
// Escape, Tab, F1..F12, letters, etc.").
type Key int

const (
	KeyNone Key = iota
	KeyEnter
	KeyEscape
	KeyTab
	KeyBackspace
	KeySpace
	KeyArrowUp
	KeyArrowDown
	KeyArrowLeft
	KeyArrowRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyDelete
	KeyInsert
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyChar
)

var keyNames = map[Key]string{
	KeyNone: "", KeyEnter: "Enter", KeyEscape: "Escape", KeyTab: "Tab",
	KeyBackspace: "Backspace", KeySpace: "Space",
	KeyArrowUp: "ArrowUp", KeyArrowDown: "ArrowDown", KeyArrowLeft: "ArrowLeft", KeyArrowRight: "ArrowRight",
	KeyHome: "Home", KeyEnd: "End", KeyPageUp: "PageUp", KeyPageDown: "PageDown",
	KeyDelete: "Delete", KeyInsert: "Insert",
	KeyF1: "F1", KeyF2: "F2", KeyF3: "F3", KeyF4: "F4", KeyF5: "F5", KeyF6: "F6",
	KeyF7: "F7", KeyF8: "F8", KeyF9: "F9", KeyF10: "F10", KeyF11: "F11", KeyF12: "F12",
}

// Name returns the key's normalized name, or its literal character for
// KeyChar.
func (k Key) Name(r rune) string {
	if k == KeyChar {
		return string(r)
	}
	return keyNames[k]
}

// Modifiers holds the active keyboard/mouse modifier state.
type Modifiers struct {
	Ctrl, Alt, Shift, Meta bool
}

// KeyState is the lifecycle phase of a key event (spec §4.6).
type KeyState int

const (
	StatePress KeyState = iota
	StateRepeat
	StateRelease
)

// KeyEvent is a normalized keyboard event (spec §4.6).
type KeyEvent struct {
	Key   Key
	Rune  rune
	Mods  Modifiers
	State KeyState
	Raw   []byte
}
