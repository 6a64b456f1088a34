//go:build !chroma

package markup

import "flexterm/color"

// Highlight is the no-Chroma fallback: a single dim span, no per-token
// coloring.
func Highlight(code, lang string) []Span {
	return []Span{{Text: code, Attrs: color.Dim}}
}
