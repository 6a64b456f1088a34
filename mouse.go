package flexterm

import "flexterm/input"

// mouseAPI backs the Mouse value (spec §6 "mouse equivalents" of the
// keyboard.on family). Per-component mouse handlers (on_click,
// on_mouse_down/up/enter/leave, on_scroll) are set via BoxProps/TextProps
// instead, matching spec §4.6's "component handlers" dispatch tier;
// Mouse.On only reaches the global tier.
type mouseAPI struct{}

// Mouse is the single mouse-handler namespace for the mounted application.
var Mouse mouseAPI

func (mouseAPI) On(fn func(input.MouseEvent) bool) {
	if e := active(); e != nil {
		e.Router.On(func(ev input.Event) bool {
			if ev.Mouse == nil {
				return false
			}
			return fn(*ev.Mouse)
		})
	}
}
