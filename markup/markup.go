// Package markup implements the terse inline markup language TEXT content
// can be authored in: bold/dim/underline/blink/reverse/hidden/strike
// markers, headers, quotes, lists, horizontal rules, and named/hex color
// tokens. Unlike a single ANSI-escaped output string, Parse returns a
// []Span so the frame-buffer producer can paint each run with its own
// resolved color.Color/color.Attrs instead of re-parsing escape codes out
// of cell text.
package markup

import (
	"crypto/md5"
	"encoding/base64"
	"regexp"
	"strings"

	"flexterm/color"
)

// Span is one run of markup-resolved text sharing a single style, the unit
// TEXT components consume for text_content authored in this language.
type Span struct {
	Text  string
	Fg    color.Color
	Bg    color.Color
	Attrs color.Attrs
}

var (
	codeBlockRe  = regexp.MustCompile("`+")
	horizontalRe = regexp.MustCompile(`(?m)^[ ]{0,2}([ ]?[*_-][ ]?){3,}[ \t]*$`)
	headerRe     = regexp.MustCompile(`(?m)^(\#{1,6})[ \t]+(.+?)[ \t]*\#*([\r\n]+|$)`)
	listRe       = regexp.MustCompile(`(?m)^([ \t]{1,})[*+-]([ \t]{1,})`)
	quoteRe      = regexp.MustCompile(`(?m)^[ \t]*>([ \t]?)`)
	colorRe      = regexp.MustCompile(`(?s)(!?)#([a-zA-Z0-9]{3,8})\((.+?)\)([^)]|$)`)
)

// marker bytes delimit style transitions in the intermediate string Parse
// builds before tokenize splits it into Spans. They're control characters
// below 0x20 that can't occur in ordinary document text, so no escaping
// scheme is needed.
const (
	mBoldStart = '\x01'
	mBoldEnd   = '\x02'
	mDimStart  = '\x03'
	mDimEnd    = '\x04'
	mUndStart  = '\x05'
	mUndEnd    = '\x06'
	mBlinkStart = '\x07'
	mBlinkEnd   = '\x08'
	mRevStart   = '\x0b'
	mRevEnd     = '\x0c'
	mHidStart   = '\x0e'
	mHidEnd     = '\x0f'
	mStrikeStart = '\x10'
	mStrikeEnd   = '\x11'
	mColorOpen  = '\x12' // mColorOpen bgFlag name... mColorNameEnd content mColorEnd
	mColorNameEnd = '\x13'
	mColorEnd   = '\x14'
)

var styleMarkers = []struct {
	char       string
	startEnd2  string // always empty; not read
	startByte  byte
	endByte    byte
}{
	{`\*`, "", mBoldStart, mBoldEnd},
	{`-`, "", mDimStart, mDimEnd},
	{`_`, "", mUndStart, mUndEnd},
	{`:`, "", mBlinkStart, mBlinkEnd},
	{`!`, "", mRevStart, mRevEnd},
	{`\?`, "", mHidStart, mHidEnd},
	{`~`, "", mStrikeStart, mStrikeEnd},
}

var styleRegexes []*regexp.Regexp

func init() {
	for _, sm := range styleMarkers {
		c := sm.char
		styleRegexes = append(styleRegexes, regexp.MustCompile(
			`(?s)(`+c+c+`)(\S|\S.*?\S)`+c+c+`|(`+c+`)(\S|\S.*?\S)`+c))
	}
}

// Parse turns markup-annotated text into a slice of styled spans. Fenced
// code (delimited by matching runs of backticks) is preserved verbatim and
// then run through Highlight so fenced blocks get syntax-colored spans
// instead of the surrounding markup transforms.
func Parse(txt string) []Span {
	codeMap := make(map[string]string)
	txt = processCodeBlocks(txt, codeMap)

	txt = horizontal(txt)
	txt = header(txt)
	txt = boldUnderlineStrike(txt)
	txt = list(txt)
	txt = quote(txt)
	txt = colorize(txt)

	return tokenize(txt, codeMap)
}

func processCodeBlocks(txt string, codeMap map[string]string) string {
	indices := codeBlockRe.FindAllStringIndex(txt, -1)
	if len(indices) == 0 {
		return txt
	}

	type replacement struct {
		start, end int
		text       string
	}

	var replacements []replacement
	used := make(map[int]bool)

	for i := 0; i < len(indices); i++ {
		if used[i] {
			continue
		}
		len1 := indices[i][1] - indices[i][0]
		found := -1
		for j := i + 1; j < len(indices); j++ {
			if used[j] {
				continue
			}
			if indices[j][1]-indices[j][0] == len1 {
				found = j
				break
			}
		}
		if found == -1 {
			continue
		}
		start := indices[i][1]
		end := indices[found][0]
		content := txt[start:end]
		hash := md5Base64(content)
		codeMap[hash] = content
		replacements = append(replacements, replacement{start: start, end: end, text: hash})
		used[i], used[found] = true, true
		for k := i + 1; k < found; k++ {
			used[k] = true
		}
	}

	if len(replacements) == 0 {
		return txt
	}

	var sb strings.Builder
	last := 0
	for _, r := range replacements {
		sb.WriteString(txt[last:r.start])
		sb.WriteString(r.text)
		last = r.end
	}
	sb.WriteString(txt[last:])
	return sb.String()
}

func md5Base64(text string) string {
	hash := md5.Sum([]byte(text))
	return base64.StdEncoding.EncodeToString(hash[:])
}

func horizontal(txt string) string {
	line := strings.Repeat("─", 72)
	return horizontalRe.ReplaceAllString(txt, string(mBoldStart)+line+string(mBoldEnd))
}

func header(txt string) string {
	return headerRe.ReplaceAllStringFunc(txt, func(match string) string {
		parts := headerRe.FindStringSubmatch(match)
		hashes := parts[1]
		content := parts[2]
		suffix := parts[3]

		if len(hashes) == 1 {
			content = string(mBoldStart) + content + string(mBoldEnd)
		}
		return string(mRevStart) + " " + content + " " + string(mRevEnd) + suffix
	})
}

func boldUnderlineStrike(txt string) string {
	for i, re := range styleRegexes {
		sm := styleMarkers[i]
		txt = re.ReplaceAllStringFunc(txt, func(m string) string {
			sub := re.FindStringSubmatch(m)
			inner := sub[2]
			if inner == "" {
				inner = sub[4]
			}
			return string(sm.startByte) + inner + string(sm.endByte)
		})
	}
	return txt
}

func list(txt string) string {
	return listRe.ReplaceAllString(txt, "$1•$2")
}

func quote(txt string) string {
	return quoteRe.ReplaceAllString(txt, string(mRevStart)+"$1"+string(mRevEnd)+"$1")
}

func colorize(txt string) string {
	return colorRe.ReplaceAllStringFunc(txt, func(match string) string {
		parts := colorRe.FindStringSubmatch(match)
		bg := parts[1]
		name := parts[2]
		content := parts[3]
		suffix := parts[4]

		bgFlag := byte('0')
		if bg != "" {
			bgFlag = '1'
		}
		return string(mColorOpen) + string(bgFlag) + name + string(mColorNameEnd) +
			content + string(mColorEnd) + suffix
	})
}
