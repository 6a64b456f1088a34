// Example 2: Reactive Counter. Introduces signals for state management:
// the displayed count updates through Text.ContentSource, which installs
// a per-slot derived (reactive.SlotArray.SetSource) so the framebuffer
// repaints on change without rebuilding the component tree.
package main

import (
	"fmt"
	"os"
	"strconv"

	"flexterm"
	"flexterm/input"
	"flexterm/render"
	"flexterm/store"
)

func main() {
	count := flexterm.NewSignal(0)

	root := func() {
		flexterm.Box(flexterm.BoxProps{Padding: store.Uniform(1)}, func() {
			flexterm.MarkupText(flexterm.TextProps{Content: "# Reactive Counter"})
			flexterm.Text(flexterm.TextProps{
				ContentSource: func() string {
					return "Current count: " + strconv.Itoa(count.Get())
				},
			})
			flexterm.MarkupText(flexterm.TextProps{
				Content: "\n(press any key to increment, 'q' or Ctrl+C to quit)",
			})
		})
	}

	h, err := flexterm.Mount(root, flexterm.Options{Mode: render.ModeFullscreen})
	if err != nil {
		fmt.Fprintln(os.Stderr, "mount:", err)
		os.Exit(1)
	}

	quit := make(chan struct{})
	var closed bool
	flexterm.Keyboard.On(func(ev input.KeyEvent) bool {
		if ev.Key == input.KeyChar && (ev.Rune == 'q' || (ev.Mods.Ctrl && ev.Rune == 'c')) {
			if !closed {
				closed = true
				close(quit)
			}
			return true
		}
		count.Update(func(n int) int { return n + 1 })
		return true
	})

	<-quit
	h.Cleanup()
}
