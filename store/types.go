// Package store holds the parallel arrays of component data flexterm's
// arena indices key into, grouped by concern (core, dimensions, spacing,
// layout, visual, text, interaction) per spec §3/§4.1. Each array is a
// reactive.SlotArray so any cell may hold a literal or a live binding.
package store

import (
	"flexterm/reactive"
)

// ComponentType is spec §3's component_type enum.
type ComponentType int

const (
	None ComponentType = iota
	Box
	Text
	Input
	Progress
	Select
)

// Dimension is either a literal cell count or a percentage of the parent's
// content box ("N%" in spec §3). Percent == true means Value is 0-100.
type Dimension struct {
	Value   int
	Percent bool
	Auto    bool // no explicit size; layout falls back to intrinsic/flex
}

// Cells builds an explicit cell-count dimension.
func Cells(n int) Dimension { return Dimension{Value: n} }

// Pct builds a percentage dimension ("N%").
func Pct(n int) Dimension { return Dimension{Value: n, Percent: true} }

// AutoDim is the unset/intrinsic dimension.
func AutoDim() Dimension { return Dimension{Auto: true} }

// Resolve converts a Dimension to an absolute cell count given the
// reference size it is a percentage of (spec §4.3 "Percentage dimensions:
// resolve against the parent's content box"). The zero Dimension, which is
// what an unwritten slot reads as (and what Cells(0) builds), counts as
// unset just like AutoDim() and reports ok=false.
func (d Dimension) Resolve(reference int) (value int, ok bool) {
	if d.Auto || d == (Dimension{}) {
		return 0, false
	}
	if d.Percent {
		return reference * d.Value / 100, true
	}
	return d.Value, true
}

// FlexDirection is spec §3's flex_direction enum.
type FlexDirection int

const (
	DirColumn FlexDirection = iota
	DirRow
	DirColumnReverse
	DirRowReverse
)

// IsRow reports whether the main axis is horizontal.
func (d FlexDirection) IsRow() bool { return d == DirRow || d == DirRowReverse }

// IsReversed reports whether main-axis iteration runs back to front.
func (d FlexDirection) IsReversed() bool { return d == DirColumnReverse || d == DirRowReverse }

// FlexWrap is spec §3's flex_wrap enum.
type FlexWrap int

const (
	NoWrap FlexWrap = iota
	Wrap
	WrapReverse
)

// Justify is spec §3's justify_content enum.
type Justify int

const (
	JustifyStart Justify = iota
	JustifyCenter
	JustifyEnd
	JustifyBetween
	JustifyAround
	JustifyEvenly
)

// AlignItems is spec §3's align_items enum.
type AlignItems int

const (
	AlignStretch AlignItems = iota
	AlignStart
	AlignCenter
	AlignEnd
	AlignBaseline
)

// Position is spec §3's position enum.
type Position int

const (
	PositionRelative Position = iota
	PositionAbsolute
	PositionFixed
	PositionSticky
)

// Overflow is spec §3's overflow enum.
type Overflow int

const (
	OverflowVisible Overflow = iota
	OverflowHidden
	OverflowScroll
	OverflowAuto
)

// BorderStyle indexes one of N border glyph tables (spec §4.4).
type BorderStyle int

const (
	BorderNone BorderStyle = iota
	BorderSingle
	BorderDouble
	BorderRound
	BorderThick
)

// TextAlign is spec §3's text_align enum.
type TextAlign int

const (
	AlignLeft TextAlign = iota
	AlignCenterText
	AlignRight
)

// TextWrap is spec §3's text_wrap enum.
type TextWrap int

const (
	WrapText TextWrap = iota // default: wrap (spec lists wrap=1 but 0 is the
	NoWrapText                // sensible zero-value fallback for "missing data reads as zero")
	TruncateText
)

// Side identifies one of the four box sides, used for per-side overrides.
type Side int

const (
	SideTop Side = iota
	SideRight
	SideBottom
	SideLeft
)

// Sides holds one value per box side (padding, margin, per-side border
// style/color).
type Sides[T any] struct {
	Top, Right, Bottom, Left T
}

// Uniform builds a Sides with the same value on every side.
func Uniform[T any](v T) Sides[T] { return Sides[T]{Top: v, Right: v, Bottom: v, Left: v} }

// slotted binds reactive.SlotArray[T] for the store's own convenience
// methods without re-exporting reactive's generic type everywhere.
type slotted[T any] = reactive.SlotArray[T]

// Offset is a single top/right/bottom/left position offset that may be
// unset (spec §4.3: "left wins over right; top wins over bottom", which
// only makes sense if "unset" is distinguishable from "0").
type Offset struct {
	Value int
	Set   bool
}

// Offsets holds top/right/bottom/left position offsets.
type Offsets = Sides[Offset]
