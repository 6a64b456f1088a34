package flexterm

import (
	"flexterm/arena"
	"flexterm/markup"
	"flexterm/store"
)

// MarkupText renders props.Content through the markup sub-language
// (bold/dim/underline/blink/reverse/hidden/strike markers, headers,
// quotes, lists, horizontal rules, #color(...) tokens, and fenced code)
// instead of treating Content as plain text_content. A single resolved
// span becomes one Text primitive carrying that span's style merged onto
// props; multiple spans (mixed runs, or a fenced code block's per-token
// spans) become a left-to-right row of Text primitives inside a Box, each
// with its own resolved style, so markup content with mixed styling still
// paints as distinct cells instead of collapsing onto one.
func MarkupText(props TextProps) arena.Index {
	spans := markup.Parse(props.Content)

	if len(spans) <= 1 {
		p := props
		if len(spans) == 1 {
			p.Content = spans[0].Text
			if !spans[0].Fg.IsUnset() {
				p.FgColor = spans[0].Fg
			}
			if !spans[0].Bg.IsUnset() {
				p.BgColor = spans[0].Bg
			}
			p.Attrs |= spans[0].Attrs
		}
		return Text(p)
	}

	row := props
	row.Content = ""
	return Box(BoxProps{
		ID:            props.ID,
		FlexDirection: store.DirRow,
		Width:         props.Width,
		Height:        props.Height,
		Opacity:       props.Opacity,
		Focusable:     props.Focusable,
		TabIndex:      props.TabIndex,
		OnClick:       props.OnClick,
	}, func() {
		for _, sp := range spans {
			p := row
			p.ID = ""
			p.Content = sp.Text
			p.Attrs = row.Attrs | sp.Attrs
			if !sp.Fg.IsUnset() {
				p.FgColor = sp.Fg
			}
			if !sp.Bg.IsUnset() {
				p.BgColor = sp.Bg
			}
			Text(p)
		}
	})
}
