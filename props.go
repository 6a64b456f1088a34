package flexterm

import (
	"flexterm/arena"
	"flexterm/color"
	"flexterm/store"
)

// BoxProps configures a Box primitive (spec §3's Dimensions/Spacing/
// Layout/Visual/Interaction groups, minus the text-only fields). A zero
// Dimension field is treated as "unspecified" and falls back to
// store.AutoDim(), so every node defaults to auto-sized on both axes
// unless a caller sets Width/Height explicitly.
type BoxProps struct {
	ID string

	Width, Height                 store.Dimension
	MinWidth, MaxWidth             store.Dimension
	MinHeight, MaxHeight           store.Dimension

	Padding, Margin store.Sides[int]
	Gap             int

	FlexDirection store.FlexDirection
	FlexWrap      store.FlexWrap
	Justify       store.Justify
	AlignItems    store.AlignItems
	FlexGrow      float64
	FlexShrink    float64
	FlexBasis     store.Dimension
	Order         int
	AlignSelf     store.AlignItems
	ZIndex        int
	Position      store.Position
	Overflow      store.Overflow
	Offsets       store.Offsets
	ConstrainHeight bool

	FgColor, BgColor, BorderColor color.Color
	Opacity                       float64
	BorderStyle                   store.BorderStyle
	BorderSides                   store.Sides[bool]
	BorderStyleOverride           store.Sides[store.BorderStyle]
	BorderColorOverride           store.Sides[color.Color]

	Focusable bool
	TabIndex  int

	OnClick      func(x, y int) bool
	OnMouseDown  func(x, y int) bool
	OnMouseUp    func(x, y int) bool
	OnMouseEnter func()
	OnMouseLeave func()
	OnScroll     func(dx, dy int) bool
}

// TextProps configures a Text primitive (spec §3's Text group).
type TextProps struct {
	ID      string
	Content string

	// ContentSource, when set, installs Content as a per-slot derived
	// (store.Store's Text.Content is a reactive.SlotArray — see
	// SlotArray.SetSource) instead of a literal: the frame engine's own
	// repaint derived reads through it, so content updates without the
	// component being rebuilt. Content is used verbatim when this is nil.
	ContentSource func() string

	FgColor, BgColor, BorderColor color.Color
	Opacity                       float64

	Attrs     color.Attrs
	TextAlign store.TextAlign
	TextWrap  store.TextWrap

	Width, Height store.Dimension

	Focusable bool
	TabIndex  int

	OnClick func(x, y int) bool
}

func dimOrAuto(d store.Dimension) store.Dimension {
	if d == (store.Dimension{}) {
		return store.AutoDim()
	}
	return d
}

func opacityOrDefault(o float64) float64 {
	if o == 0 {
		return 1
	}
	return o
}

func applyBoxProps(s *store.Store, idx arena.Index, p BoxProps) {
	i := int(idx)
	s.Core.Type.Set(i, store.Box)
	s.Core.Visible.Set(i, true)

	s.Dimensions.Width.Set(i, dimOrAuto(p.Width))
	s.Dimensions.Height.Set(i, dimOrAuto(p.Height))
	s.Dimensions.MinWidth.Set(i, dimOrAuto(p.MinWidth))
	s.Dimensions.MaxWidth.Set(i, dimOrAuto(p.MaxWidth))
	s.Dimensions.MinHeight.Set(i, dimOrAuto(p.MinHeight))
	s.Dimensions.MaxHeight.Set(i, dimOrAuto(p.MaxHeight))

	s.Spacing.Padding.Set(i, p.Padding)
	s.Spacing.Margin.Set(i, p.Margin)
	s.Spacing.Gap.Set(i, p.Gap)

	s.Layout.FlexDirection.Set(i, p.FlexDirection)
	s.Layout.FlexWrap.Set(i, p.FlexWrap)
	s.Layout.Justify.Set(i, p.Justify)
	s.Layout.AlignItems.Set(i, p.AlignItems)
	s.Layout.FlexGrow.Set(i, p.FlexGrow)
	s.Layout.FlexShrink.Set(i, p.FlexShrink)
	s.Layout.FlexBasis.Set(i, dimOrAuto(p.FlexBasis))
	s.Layout.Order.Set(i, p.Order)
	s.Layout.AlignSelf.Set(i, p.AlignSelf)
	s.Layout.ZIndex.Set(i, p.ZIndex)
	s.Layout.Position.Set(i, p.Position)
	s.Layout.Overflow.Set(i, p.Overflow)
	s.Layout.Offsets.Set(i, p.Offsets)
	s.Layout.ConstrainH.Set(i, p.ConstrainHeight)

	s.Visual.FgColor.Set(i, p.FgColor)
	s.Visual.BgColor.Set(i, p.BgColor)
	s.Visual.BorderColor.Set(i, p.BorderColor)
	s.Visual.Opacity.Set(i, opacityOrDefault(p.Opacity))
	s.Visual.BorderStyle.Set(i, p.BorderStyle)
	s.Visual.BorderSides.Set(i, p.BorderSides)
	s.Visual.BorderStyleOverride.Set(i, p.BorderStyleOverride)
	s.Visual.BorderColorOverride.Set(i, p.BorderColorOverride)

	s.Interaction.Focusable.Set(i, p.Focusable)
	s.Interaction.TabIndex.Set(i, p.TabIndex)

	applyHandlers(s, idx, p.OnClick, p.OnMouseDown, p.OnMouseUp, p.OnMouseEnter, p.OnMouseLeave, p.OnScroll)
}

func applyTextProps(s *store.Store, idx arena.Index, p TextProps) {
	i := int(idx)
	s.Core.Type.Set(i, store.Text)
	s.Core.Visible.Set(i, true)

	s.Dimensions.Width.Set(i, dimOrAuto(p.Width))
	s.Dimensions.Height.Set(i, dimOrAuto(p.Height))

	s.Visual.FgColor.Set(i, p.FgColor)
	s.Visual.BgColor.Set(i, p.BgColor)
	s.Visual.BorderColor.Set(i, p.BorderColor)
	s.Visual.Opacity.Set(i, opacityOrDefault(p.Opacity))

	if p.ContentSource != nil {
		s.Text.Content.SetSource(i, p.ContentSource)
	} else {
		s.Text.Content.Set(i, p.Content)
	}
	s.Text.Attrs.Set(i, p.Attrs)
	s.Text.TextAlign.Set(i, p.TextAlign)
	s.Text.TextWrap.Set(i, p.TextWrap)

	s.Interaction.Focusable.Set(i, p.Focusable)
	s.Interaction.TabIndex.Set(i, p.TabIndex)

	applyHandlers(s, idx, p.OnClick, nil, nil, nil, nil, nil)
}

func applyHandlers(s *store.Store, idx arena.Index, onClick, onMouseDown, onMouseUp func(int, int) bool, onMouseEnter, onMouseLeave func(), onScroll func(int, int) bool) {
	if onClick != nil {
		s.Handlers.OnClick[idx] = onClick
	}
	if onMouseDown != nil {
		s.Handlers.OnMouseDown[idx] = onMouseDown
	}
	if onMouseUp != nil {
		s.Handlers.OnMouseUp[idx] = onMouseUp
	}
	if onMouseEnter != nil {
		s.Handlers.OnMouseEnter[idx] = onMouseEnter
	}
	if onMouseLeave != nil {
		s.Handlers.OnMouseLeave[idx] = onMouseLeave
	}
	if onScroll != nil {
		s.Handlers.OnScroll[idx] = onScroll
	}
}
