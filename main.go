// Command flexterm is a minimal smoke-test entry point for the package:
// it mounts a reactive counter full-screen, incrementing on 'i' and
// exiting on 'q' or Ctrl+C, to confirm the whole mount/layout/paint
// pipeline produces visible output end to end.
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
		flexterm.Box(flexterm.BoxProps{
			Padding:       store.Uniform(1),
			FlexDirection: store.DirColumn,
		}, func() {
			flexterm.MarkupText(flexterm.TextProps{
				Content: "# flexterm\n\n(press 'i' to increment, 'q' to quit)",
			})
			flexterm.Text(flexterm.TextProps{
				ContentSource: func() string { return "Count: " + strconv.Itoa(count.Get()) },
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
			return true
		case ev.Rune == 'i':
			count.Update(func(n int) int { return n + 1 })
			return true
		}
		return false
	})

	<-quit
	if err := h.Cleanup(); err != nil {
		fmt.Fprintln(os.Stderr, "cleanup:", err)
	}
}
