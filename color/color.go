// Package color defines the RGBA-with-sentinels color type the rest of
// flexterm paints with, and the ANSI SGR sequences that encode it.
package color

import "strconv"

// Color is an RGBA color with two sentinel encodings, per spec §3/§7:
//
//	R == -1            -> terminal default (no color escape emitted)
//	R == -2, G == idx   -> 256-color palette index idx
//	otherwise           -> 24-bit R,G,B with alpha A in [0,255]
type Color struct {
	R, G, B, A int
}

// Default is "use whatever the terminal's own default is".
var Default = Color{R: -1}

// Unset is the zero value: no color has been assigned at all (distinct
// from Default — Unset lets inheritance fall through to an ancestor).
var Unset = Color{}

// Indexed builds a 256-color palette reference.
func Indexed(idx int) Color {
	return Color{R: -2, G: idx, A: 255}
}

// RGB builds an opaque 24-bit color.
func RGB(r, g, b int) Color {
	return Color{R: r, G: g, B: b, A: 255}
}

// RGBA builds a 24-bit color with explicit alpha.
func RGBA(r, g, b, a int) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// IsDefault reports the "terminal default" sentinel.
func (c Color) IsDefault() bool { return c.R == -1 }

// IsIndexed reports the "256-color index" sentinel, returning the index.
func (c Color) IsIndexed() (idx int, ok bool) {
	if c.R == -2 {
		return c.G, true
	}
	return 0, false
}

// IsUnset reports the zero value (no color assigned, not even default).
func (c Color) IsUnset() bool { return c == Color{} }

// Scaled returns c with alpha multiplied by factor in [0,1], per §4.4's
// opacity rule ("alpha-scaled by effective_opacity before painting").
// Sentinel colors pass through unchanged — only real RGBA channels scale.
func (c Color) Scaled(factor float64) Color {
	if c.IsDefault() {
		return c
	}
	if _, ok := c.IsIndexed(); ok {
		return c
	}
	if factor < 0 {
		factor = 0
	}
	if factor > 1 {
		factor = 1
	}
	c.A = int(float64(c.A) * factor)
	return c
}

// Blend composites src over dst using src's alpha, premultiplied, per
// §4.4 "cell-level blending uses pre-multiplied alpha composition".
func Blend(dst, src Color) Color {
	if src.IsUnset() {
		return dst
	}
	if src.IsDefault() {
		return src
	}
	if _, ok := src.IsIndexed(); ok {
		return src
	}
	if src.A >= 255 {
		return src
	}
	if src.A <= 0 {
		return dst
	}
	a := float64(src.A) / 255.0
	mix := func(d, s int) int {
		return int(float64(s)*a + float64(d)*(1-a))
	}
	return Color{R: mix(dst.R, src.R), G: mix(dst.G, src.G), B: mix(dst.B, src.B), A: 255}
}

// FgSGR returns the escape code body (without ESC[ and trailing m split)
// for setting this as a foreground color, per spec §6's wire protocol.
func (c Color) FgSGR() string {
	if c.IsDefault() {
		return "39"
	}
	if idx, ok := c.IsIndexed(); ok {
		return "38;5;" + strconv.Itoa(idx)
	}
	return "38;2;" + itoa3(c.R, c.G, c.B)
}

// BgSGR is FgSGR's background counterpart.
func (c Color) BgSGR() string {
	if c.IsDefault() {
		return "49"
	}
	if idx, ok := c.IsIndexed(); ok {
		return "48;5;" + strconv.Itoa(idx)
	}
	return "48;2;" + itoa3(c.R, c.G, c.B)
}

func itoa3(r, g, b int) string {
	return strconv.Itoa(clamp255(r)) + ";" + strconv.Itoa(clamp255(g)) + ";" + strconv.Itoa(clamp255(b))
}

func clamp255(v int) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}

// Attrs is the text attribute bitfield from spec §3.
type Attrs uint8

const (
	Bold Attrs = 1 << iota
	Dim
	Italic
	Underline
	Blink
	Inverse
	Hidden
	Strikethrough
)

// SGR codes for attrs (spec §6).
var attrCodes = []struct {
	bit  Attrs
	code string
}{
	{Bold, "1"},
	{Dim, "2"},
	{Italic, "3"},
	{Underline, "4"},
	{Blink, "5"},
	{Inverse, "7"},
	{Hidden, "8"},
	{Strikethrough, "9"},
}

// Codes returns the SGR parameter codes this attribute set turns on.
func (a Attrs) Codes() []string {
	var out []string
	for _, ac := range attrCodes {
		if a&ac.bit != 0 {
			out = append(out, ac.code)
		}
	}
	return out
}

// Has reports whether bit is set.
func (a Attrs) Has(bit Attrs) bool { return a&bit != 0 }
