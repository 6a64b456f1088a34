// Example 6: Conditional Rendering. Demonstrates Show, switching which
// subtree is mounted based on a status signal (press 's' to cycle status).
package main

import (
	"fmt"
	"os"

	"flexterm"
	"flexterm/input"
	"flexterm/render"
	"flexterm/store"
)

type status int

const (
	statusLoading status = iota
	statusSuccess
	statusError
)

func main() {
	cur := flexterm.NewSignal(statusLoading)

	root := func() {
		flexterm.Box(flexterm.BoxProps{Padding: store.Uniform(1)}, func() {
			flexterm.MarkupText(flexterm.TextProps{Content: "# Status Monitor"})

			flexterm.Show(func() bool { return cur.Get() == statusLoading },
				func() { flexterm.MarkupText(flexterm.TextProps{Content: "#yellow(Loading data...)"}) },
				func() {
					flexterm.Show(func() bool { return cur.Get() == statusSuccess },
						func() { flexterm.MarkupText(flexterm.TextProps{Content: "#green(Data loaded successfully!)"}) },
						func() { flexterm.MarkupText(flexterm.TextProps{Content: "#red(Error loading data.)"}) },
					)
				},
			)

			flexterm.MarkupText(flexterm.TextProps{
				Content: "\n(press 's' to cycle status, 'q' or Ctrl+C to quit)",
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
		if ev.Key != input.KeyChar {
			return false
		}
		switch {
		case ev.Rune == 'q' || (ev.Mods.Ctrl && ev.Rune == 'c'):
			if !closed {
				closed = true
				close(quit)
			}
		case ev.Rune == 's':
			cur.Update(func(s status) status {
				if s == statusError {
					return statusLoading
				}
				return s + 1
			})
		}
		return true
	})

	<-quit
	h.Cleanup()
}
