//go:build chroma

package markup

import (
	"flexterm/color"

	"github.com/alecthomas/chroma"
	"github.com/alecthomas/chroma/lexers"
)

// Highlight tokenizes code with Chroma and maps each token's category to a
// fixed terminal color, a simplified category-to-ANSI mapping rather than
// a full theme palette, built behind a build tag so a default build never
// links Chroma in at all.
func Highlight(code, lang string) []Span {
	var lexer chroma.Lexer
	if lang != "" {
		lexer = lexers.Get(lang)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return []Span{{Text: code, Attrs: color.Dim}}
	}

	var spans []Span
	for _, token := range iterator.Tokens() {
		var s Span
		s.Text = token.Value

		switch token.Type.Category() {
		case chroma.Keyword:
			s.Fg = namedColors["magenta"]
			s.Attrs |= color.Bold
		case chroma.Name:
			s.Fg = namedColors["white"]
		case chroma.LiteralString:
			s.Fg = namedColors["green"]
		case chroma.LiteralNumber:
			s.Fg = namedColors["cyan"]
		case chroma.Comment:
			s.Fg = namedColors["grey"]
			s.Attrs |= color.Dim
		case chroma.Operator, chroma.Punctuation:
			s.Fg = namedColors["white"]
		}

		spans = append(spans, s)
	}
	return spans
}
