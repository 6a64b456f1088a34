package flexterm

import (
	"flexterm/arena"
	"flexterm/input"
	"flexterm/reactive"
)

// keyboardAPI is the package-level namespace backing the Keyboard value
// (spec §6 "keyboard.on(fn)", "keyboard.on_key(k, fn)",
// "keyboard.on_focused(i, fn)"). Tab/Shift-Tab cycling is opt-in: the
// spec names it as something "installed by the application" rather than
// ambient engine behavior, so Mount never registers it itself — an
// application wires it with Keyboard.OnKey(input.KeyTab, ...) calling
// Keyboard.FocusNext().
type keyboardAPI struct{}

// Keyboard is the single keyboard-handler namespace for the mounted
// application.
var Keyboard keyboardAPI

func (keyboardAPI) On(fn func(input.KeyEvent) bool) {
	if e := active(); e != nil {
		e.Router.On(func(ev input.Event) bool {
			if ev.Key == nil {
				return false
			}
			return fn(*ev.Key)
		})
	}
}

func (keyboardAPI) OnKey(k input.Key, fn func(input.KeyEvent) bool) {
	if e := active(); e != nil {
		e.Router.OnKey(fn, k)
	}
}

func (keyboardAPI) OnFocused(idx arena.Index, fn func(input.KeyEvent) bool) {
	if e := active(); e != nil {
		e.Router.OnFocused(idx, fn)
	}
}

func (keyboardAPI) FocusNext() {
	if e := active(); e != nil {
		e.Router.FocusNext()
	}
}

func (keyboardAPI) FocusPrev() {
	if e := active(); e != nil {
		e.Router.FocusPrev()
	}
}

// FocusedIndex returns the reactive signal tracking which component
// currently has focus, -1 (arena.None) if nothing does (spec §6
// "focused_index signal").
func (keyboardAPI) FocusedIndex() *reactive.Signal[arena.Index] {
	if e := active(); e != nil {
		return e.Router.FocusedIndex
	}
	return reactive.New(arena.None)
}
