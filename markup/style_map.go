package markup

import (
	"strconv"

	"flexterm/color"
)

// namedColors is the set of terminal-safe names #color(...) tokens
// resolve by name.
var namedColors = map[string]color.Color{
	"black":   color.RGB(0, 0, 0),
	"red":     color.RGB(205, 0, 0),
	"green":   color.RGB(0, 205, 0),
	"yellow":  color.RGB(205, 205, 0),
	"blue":    color.RGB(0, 0, 238),
	"magenta": color.RGB(205, 0, 205),
	"cyan":    color.RGB(0, 205, 205),
	"white":   color.RGB(229, 229, 229),
	"grey":    color.RGB(127, 127, 127),
	"gray":    color.RGB(127, 127, 127),
}

// resolveColor turns a #color(...) token's name into a color.Color: a
// known name, a 3 or 6 digit hex triplet, or otherwise not-ok, in which
// case the token's content is left unstyled.
func resolveColor(name string) (color.Color, bool) {
	if c, ok := namedColors[name]; ok {
		return c, true
	}
	if isHex(name) {
		switch len(name) {
		case 6:
			r, _ := strconv.ParseInt(name[0:2], 16, 32)
			g, _ := strconv.ParseInt(name[2:4], 16, 32)
			b, _ := strconv.ParseInt(name[4:6], 16, 32)
			return color.RGB(int(r), int(g), int(b)), true
		case 3:
			r, _ := strconv.ParseInt(string([]byte{name[0], name[0]}), 16, 32)
			g, _ := strconv.ParseInt(string([]byte{name[1], name[1]}), 16, 32)
			b, _ := strconv.ParseInt(string([]byte{name[2], name[2]}), 16, 32)
			return color.RGB(int(r), int(g), int(b)), true
		}
	}
	return color.Color{}, false
}

func isHex(s string) bool {
	if len(s) != 3 && len(s) != 6 {
		return false
	}
	for _, r := range s {
		if !((r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')) {
			return false
		}
	}
	return true
}
