package markup

import (
	"strings"

	"flexterm/color"
)

// tokenize walks the marker-annotated string Parse built and splits it into
// Spans, tracking active attrs/colors as a toggle bitmask plus a stack
// (colors can nest, since #color(...) content can itself contain another
// #color(...) token).
func tokenize(txt string, codeMap map[string]string) []Span {
	var spans []Span
	var buf strings.Builder
	var attrs color.Attrs
	var fg, bg color.Color

	type frame struct{ fg, bg color.Color }
	var colorStack []frame

	flush := func() {
		if buf.Len() == 0 {
			return
		}
		emitText(buf.String(), fg, bg, attrs, codeMap, &spans)
		buf.Reset()
	}

	runes := []rune(txt)
	for i := 0; i < len(runes); i++ {
		switch runes[i] {
		case mBoldStart:
			flush()
			attrs |= color.Bold
		case mBoldEnd:
			flush()
			attrs &^= color.Bold
		case mDimStart:
			flush()
			attrs |= color.Dim
		case mDimEnd:
			flush()
			attrs &^= color.Dim
		case mUndStart:
			flush()
			attrs |= color.Underline
		case mUndEnd:
			flush()
			attrs &^= color.Underline
		case mBlinkStart:
			flush()
			attrs |= color.Blink
		case mBlinkEnd:
			flush()
			attrs &^= color.Blink
		case mRevStart:
			flush()
			attrs |= color.Inverse
		case mRevEnd:
			flush()
			attrs &^= color.Inverse
		case mHidStart:
			flush()
			attrs |= color.Hidden
		case mHidEnd:
			flush()
			attrs &^= color.Hidden
		case mStrikeStart:
			flush()
			attrs |= color.Strikethrough
		case mStrikeEnd:
			flush()
			attrs &^= color.Strikethrough
		case mColorOpen:
			flush()
			i++
			isBg := i < len(runes) && runes[i] == '1'
			i++
			var name strings.Builder
			for i < len(runes) && runes[i] != mColorNameEnd {
				name.WriteRune(runes[i])
				i++
			}
			colorStack = append(colorStack, frame{fg: fg, bg: bg})
			if c, ok := resolveColor(name.String()); ok {
				if isBg {
					bg = c
				} else {
					fg = c
				}
			}
		case mColorEnd:
			flush()
			if n := len(colorStack); n > 0 {
				f := colorStack[n-1]
				colorStack = colorStack[:n-1]
				fg, bg = f.fg, f.bg
			}
		default:
			buf.WriteRune(runes[i])
		}
	}
	flush()
	return spans
}

// emitText splits s on any fenced-code placeholder hashes it contains,
// handing each restored code block to Highlight instead of carrying the
// surrounding run's style onto it.
func emitText(s string, fg, bg color.Color, attrs color.Attrs, codeMap map[string]string, out *[]Span) {
	if len(codeMap) == 0 {
		if s != "" {
			*out = append(*out, Span{Text: s, Fg: fg, Bg: bg, Attrs: attrs})
		}
		return
	}

	rest := s
	for {
		bestIdx := -1
		var bestHash, bestContent string
		for hash, content := range codeMap {
			if idx := strings.Index(rest, hash); idx != -1 && (bestIdx == -1 || idx < bestIdx) {
				bestIdx, bestHash, bestContent = idx, hash, content
			}
		}
		if bestIdx == -1 {
			break
		}
		if before := rest[:bestIdx]; before != "" {
			*out = append(*out, Span{Text: before, Fg: fg, Bg: bg, Attrs: attrs})
		}
		*out = append(*out, Highlight(bestContent, "")...)
		rest = rest[bestIdx+len(bestHash):]
	}
	if rest != "" {
		*out = append(*out, Span{Text: rest, Fg: fg, Bg: bg, Attrs: attrs})
	}
}
