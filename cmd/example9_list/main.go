// Example 9: Interactive List. A navigable menu using Up/Down keys,
// demonstrating Each's keyed reconciliation and per-item dynamic styling
// driven by a selection signal.
package main

import (
	"fmt"
	"os"

	"flexterm"
	"flexterm/arena"
	"flexterm/input"
	"flexterm/render"
	"flexterm/store"
)

func main() {
	menuItems := []string{
		"Start Server",
		"Deploy to Production",
		"View Logs",
		"Settings",
		"Exit",
	}

	selected := flexterm.NewSignal(0)

	root := func() {
		flexterm.Box(flexterm.BoxProps{
			Padding:       store.Uniform(1),
			FlexDirection: store.DirColumn,
		}, func() {
			flexterm.MarkupText(flexterm.TextProps{Content: "# Main Menu"})

			flexterm.Each(func() []string { return menuItems },
				func(item string, i int) arena.Index {
					return flexterm.Text(flexterm.TextProps{
						ContentSource: func() string {
							if selected.Get() == i {
								return "> " + item
							}
							return "  " + item
						},
					})
				},
				flexterm.EachOptions[string]{
					Key: func(item string, i int) string { return item },
				},
			)

			flexterm.MarkupText(flexterm.TextProps{
				Content: "\n(Up/Down to navigate, Enter to select Exit, 'q' or Ctrl+C to quit)",
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
	doQuit := func() {
		if !closed {
			closed = true
			close(quit)
		}
	}

	flexterm.Keyboard.On(func(ev input.KeyEvent) bool {
		switch ev.Key {
		case input.KeyArrowUp:
			selected.Update(func(i int) int {
				if i > 0 {
					return i - 1
				}
				return i
			})
		case input.KeyArrowDown:
			selected.Update(func(i int) int {
				if i < len(menuItems)-1 {
					return i + 1
				}
				return i
			})
		case input.KeyEnter:
			if selected.Peek() == len(menuItems)-1 {
				doQuit()
			}
		case input.KeyChar:
			if ev.Rune == 'q' || (ev.Mods.Ctrl && ev.Rune == 'c') {
				doQuit()
			}
		}
		return true
	})

	<-quit
	h.Cleanup()
}
