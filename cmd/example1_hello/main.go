// Example 1: Hello World. The most basic usage: rendering static markup
// text and exiting on any key.
package main

import (
	"fmt"
	"os"

	"flexterm"
	"flexterm/input"
	"flexterm/render"
	"flexterm/store"
)

func main() {
	root := func() {
		flexterm.Box(flexterm.BoxProps{Padding: store.Uniform(1)}, func() {
			flexterm.MarkupText(flexterm.TextProps{
				Content: "# Hello, flexterm!\n\n" +
					"This is a **static** example.\n" +
					"You can use *bold*, _underline_, and even #green(colors)!\n\n" +
					"(press any key to exit)",
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
		if !closed {
			closed = true
			close(quit)
		}
		return true
	})

	<-quit
	h.Cleanup()
}
