package layout

import (
	"strings"

	"github.com/clipperhouse/uax29/v2/graphemes"
	"github.com/mattn/go-runewidth"
)

// graphemeClusters splits s into user-perceived characters rather than
// runes, so a combining mark or multi-rune emoji sequence is never split
// across two hard-break/truncate pieces (spec §4.4 "hard-break at column
// boundaries" means grapheme boundaries, not rune boundaries).
func graphemeClusters(s string) []string {
	var out []string
	seg := graphemes.FromString(s)
	for seg.Next() {
		out = append(out, seg.Value())
	}
	return out
}

// DisplayWidth returns the Unicode display width of s in terminal cells:
// narrow runes count 1, wide/full-width and emoji count 2, combining marks
// count 0, ambiguous-width runes count as narrow (spec §4.4's text
// measurement contract).
func DisplayWidth(s string) int {
	cond := runewidth.NewCondition()
	cond.EastAsianWidth = false
	return cond.StringWidth(s)
}

var defaultCondition = func() *runewidth.Condition {
	c := runewidth.NewCondition()
	c.EastAsianWidth = false
	return c
}()

// RuneWidth returns a single rune's display width under the same
// ambiguous-as-narrow convention as DisplayWidth.
func RuneWidth(r rune) int { return defaultCondition.RuneWidth(r) }

// WrapText breaks content into lines no wider than w display cells,
// breaking on whitespace where possible and hard-breaking a single token
// that alone exceeds w (spec §4.4: "wrap_text breaks on whitespace when
// possible; when a single token exceeds w, hard-break at column
// boundaries").
func WrapText(content string, w int) []string {
	if w <= 0 {
		w = 1
	}
	cond := runewidth.NewCondition()
	cond.EastAsianWidth = false

	var out []string
	for _, paragraph := range strings.Split(content, "\n") {
		out = append(out, wrapParagraph(paragraph, w, cond)...)
	}
	return out
}

func wrapParagraph(p string, w int, cond *runewidth.Condition) []string {
	if p == "" {
		return []string{""}
	}
	words := strings.Fields(p)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	var cur strings.Builder
	curW := 0

	flush := func() {
		lines = append(lines, cur.String())
		cur.Reset()
		curW = 0
	}

	for _, word := range words {
		wordW := cond.StringWidth(word)
		if wordW > w {
			if curW > 0 {
				flush()
			}
			lines = append(lines, hardBreak(word, w, cond)...)
			continue
		}
		sep := 0
		if curW > 0 {
			sep = 1
		}
		if curW+sep+wordW > w {
			flush()
			sep = 0
		}
		if sep == 1 {
			cur.WriteByte(' ')
			curW++
		}
		cur.WriteString(word)
		curW += wordW
	}
	if curW > 0 || len(lines) == 0 {
		flush()
	}
	return lines
}

func hardBreak(word string, w int, cond *runewidth.Condition) []string {
	var out []string
	var cur strings.Builder
	curW := 0
	for _, cl := range graphemeClusters(word) {
		clW := cond.StringWidth(cl)
		if curW+clW > w && curW > 0 {
			out = append(out, cur.String())
			cur.Reset()
			curW = 0
		}
		cur.WriteString(cl)
		curW += clW
	}
	if curW > 0 {
		out = append(out, cur.String())
	}
	return out
}

// MeasureTextHeight returns the number of display rows content wraps to
// inside a column of width availableW, honoring the wrap mode.
func MeasureTextHeight(content string, availableW int, noWrap bool, truncate bool) int {
	if noWrap || truncate {
		return strings.Count(content, "\n") + 1
	}
	return len(WrapText(content, availableW))
}

// TruncateLine truncates s to fit within w display cells, honoring
// grapheme/wide-rune boundaries (no partial wide rune emitted).
func TruncateLine(s string, w int) string {
	if w <= 0 {
		return ""
	}
	cond := runewidth.NewCondition()
	cond.EastAsianWidth = false
	total := 0
	var b strings.Builder
	for _, cl := range graphemeClusters(s) {
		clW := cond.StringWidth(cl)
		if total+clW > w {
			break
		}
		b.WriteString(cl)
		total += clW
	}
	return b.String()
}
