package store

import (
	"flexterm/arena"
	"flexterm/color"
	"flexterm/reactive"
)

// Core holds the core per-component arrays (spec §3 "Component").
type Core struct {
	Type    *slotted[ComponentType]
	Visible *slotted[bool]
}

// Dimensions holds the per-component sizing arrays (spec §3 "Dimensions").
type Dimensions struct {
	Width, Height         *slotted[Dimension]
	MinWidth, MaxWidth     *slotted[Dimension]
	MinHeight, MaxHeight   *slotted[Dimension]
}

// Spacing holds padding/margin/gap (spec §3 "Spacing").
type Spacing struct {
	Padding *slotted[Sides[int]]
	Margin  *slotted[Sides[int]]
	Gap     *slotted[int]
}

// Layout holds flex/position layout arrays (spec §3 "Layout").
type Layout struct {
	FlexDirection *slotted[FlexDirection]
	FlexWrap      *slotted[FlexWrap]
	Justify       *slotted[Justify]
	AlignItems    *slotted[AlignItems]
	FlexGrow      *slotted[float64]
	FlexShrink    *slotted[float64]
	FlexBasis     *slotted[Dimension]
	Order         *slotted[int]
	AlignSelf     *slotted[AlignItems]
	ZIndex        *slotted[int]
	Position      *slotted[Position]
	Overflow      *slotted[Overflow]
	Offsets       *slotted[Offsets]
	ConstrainH    *slotted[bool] // root-only: constrain height to terminal (fullscreen)
}

// Visual holds paint-time color/opacity/border arrays (spec §3 "Visual").
type Visual struct {
	FgColor     *slotted[color.Color]
	BgColor     *slotted[color.Color]
	BorderColor *slotted[color.Color]
	Opacity     *slotted[float64]
	BorderStyle *slotted[BorderStyle]
	BorderSides *slotted[Sides[bool]]        // which sides draw a border at all
	BorderStyleOverride *slotted[Sides[BorderStyle]]
	BorderColorOverride *slotted[Sides[color.Color]]
}

// TextArrays holds text-rendering arrays (spec §3 "Text").
type TextArrays struct {
	Content   *slotted[string]
	Attrs     *slotted[color.Attrs]
	TextAlign *slotted[TextAlign]
	TextWrap  *slotted[TextWrap]
}

// Interaction holds focus/cursor/scroll arrays (spec §3 "Interaction").
type Interaction struct {
	Focusable     *slotted[bool]
	TabIndex      *slotted[int]
	CursorPos     *slotted[int]
	CursorChar    *slotted[rune]
	CursorAltChar *slotted[rune]
	CursorVisible *slotted[bool]
	ScrollOffsetX *slotted[int]
	ScrollOffsetY *slotted[int]
}

// Handlers holds interaction callbacks that don't fit a plain value array
// (spec §4.6's on_click/on_mouse_*/on_scroll props). Kept out of Interaction
// since funcs aren't comparable and don't belong in a Bind[T].
type Handlers struct {
	OnClick     map[arena.Index]func(x, y int) bool
	OnMouseDown map[arena.Index]func(x, y int) bool
	OnMouseUp   map[arena.Index]func(x, y int) bool
	OnMouseEnter map[arena.Index]func()
	OnMouseLeave map[arena.Index]func()
	OnScroll    map[arena.Index]func(dx, dy int) bool
}

// Store bundles every component array plus the arena that indexes them.
// One Store per mounted application (spec §5: "exactly one mounted
// application per process at a time").
type Store struct {
	Arena *arena.Arena

	Core        Core
	Dimensions  Dimensions
	Spacing     Spacing
	Layout      Layout
	Visual      Visual
	Text        TextArrays
	Interaction Interaction
	Handlers    Handlers
}

// New builds a Store wired to a, registering reset/release hooks so the
// arena's lifecycle (empty-reset, per-index release) clears these arrays
// too (spec §4.1: "clear all array slots at that index").
func New(a *arena.Arena) *Store {
	s := &Store{Arena: a}
	s.allocateArrays()

	a.OnRelease(func(idx arena.Index) { s.clearIndex(idx) })
	a.OnEmptyReset(func() { s.allocateArrays() })
	return s
}

// allocateArrays (re)builds every component array from scratch. Called once
// from New and again on every arena empty-reset, so hook registration in New
// only happens once per Store rather than growing on each reset.
func (s *Store) allocateArrays() {
	*s = Store{
		Arena: s.Arena,
		Core: Core{
			Type:    reactive.NewSlotArray[ComponentType](),
			Visible: reactive.NewSlotArray[bool](),
		},
		Dimensions: Dimensions{
			Width: reactive.NewSlotArray[Dimension](), Height: reactive.NewSlotArray[Dimension](),
			MinWidth: reactive.NewSlotArray[Dimension](), MaxWidth: reactive.NewSlotArray[Dimension](),
			MinHeight: reactive.NewSlotArray[Dimension](), MaxHeight: reactive.NewSlotArray[Dimension](),
		},
		Spacing: Spacing{
			Padding: reactive.NewSlotArray[Sides[int]](),
			Margin:  reactive.NewSlotArray[Sides[int]](),
			Gap:     reactive.NewSlotArray[int](),
		},
		Layout: Layout{
			FlexDirection: reactive.NewSlotArray[FlexDirection](),
			FlexWrap:      reactive.NewSlotArray[FlexWrap](),
			Justify:       reactive.NewSlotArray[Justify](),
			AlignItems:    reactive.NewSlotArray[AlignItems](),
			FlexGrow:      reactive.NewSlotArray[float64](),
			FlexShrink:    reactive.NewSlotArray[float64](),
			FlexBasis:     reactive.NewSlotArray[Dimension](),
			Order:         reactive.NewSlotArray[int](),
			AlignSelf:     reactive.NewSlotArray[AlignItems](),
			ZIndex:        reactive.NewSlotArray[int](),
			Position:      reactive.NewSlotArray[Position](),
			Overflow:      reactive.NewSlotArray[Overflow](),
			Offsets:       reactive.NewSlotArray[Offsets](),
			ConstrainH:    reactive.NewSlotArray[bool](),
		},
		Visual: Visual{
			FgColor: reactive.NewSlotArray[color.Color](), BgColor: reactive.NewSlotArray[color.Color](),
			BorderColor: reactive.NewSlotArray[color.Color](), Opacity: reactive.NewSlotArray[float64](),
			BorderStyle: reactive.NewSlotArray[BorderStyle](), BorderSides: reactive.NewSlotArray[Sides[bool]](),
			BorderStyleOverride: reactive.NewSlotArray[Sides[BorderStyle]](),
			BorderColorOverride: reactive.NewSlotArray[Sides[color.Color]](),
		},
		Text: TextArrays{
			Content: reactive.NewSlotArray[string](), Attrs: reactive.NewSlotArray[color.Attrs](),
			TextAlign: reactive.NewSlotArray[TextAlign](), TextWrap: reactive.NewSlotArray[TextWrap](),
		},
		Interaction: Interaction{
			Focusable: reactive.NewSlotArray[bool](), TabIndex: reactive.NewSlotArray[int](),
			CursorPos: reactive.NewSlotArray[int](), CursorChar: reactive.NewSlotArray[rune](),
			CursorAltChar: reactive.NewSlotArray[rune](), CursorVisible: reactive.NewSlotArray[bool](),
			ScrollOffsetX: reactive.NewSlotArray[int](), ScrollOffsetY: reactive.NewSlotArray[int](),
		},
		Handlers: Handlers{
			OnClick: map[arena.Index]func(x, y int) bool{}, OnMouseDown: map[arena.Index]func(x, y int) bool{},
			OnMouseUp: map[arena.Index]func(x, y int) bool{}, OnMouseEnter: map[arena.Index]func(){},
			OnMouseLeave: map[arena.Index]func(){}, OnScroll: map[arena.Index]func(dx, dy int) bool{},
		},
	}
}

func (s *Store) clearIndex(idx arena.Index) {
	i := int(idx)
	s.Core.Type.Clear(i)
	s.Core.Visible.Clear(i)
	s.Dimensions.Width.Clear(i)
	s.Dimensions.Height.Clear(i)
	s.Dimensions.MinWidth.Clear(i)
	s.Dimensions.MaxWidth.Clear(i)
	s.Dimensions.MinHeight.Clear(i)
	s.Dimensions.MaxHeight.Clear(i)
	s.Spacing.Padding.Clear(i)
	s.Spacing.Margin.Clear(i)
	s.Spacing.Gap.Clear(i)
	s.Layout.FlexDirection.Clear(i)
	s.Layout.FlexWrap.Clear(i)
	s.Layout.Justify.Clear(i)
	s.Layout.AlignItems.Clear(i)
	s.Layout.FlexGrow.Clear(i)
	s.Layout.FlexShrink.Clear(i)
	s.Layout.FlexBasis.Clear(i)
	s.Layout.Order.Clear(i)
	s.Layout.AlignSelf.Clear(i)
	s.Layout.ZIndex.Clear(i)
	s.Layout.Position.Clear(i)
	s.Layout.Overflow.Clear(i)
	s.Layout.Offsets.Clear(i)
	s.Layout.ConstrainH.Clear(i)
	s.Visual.FgColor.Clear(i)
	s.Visual.BgColor.Clear(i)
	s.Visual.BorderColor.Clear(i)
	s.Visual.Opacity.Clear(i)
	s.Visual.BorderStyle.Clear(i)
	s.Visual.BorderSides.Clear(i)
	s.Visual.BorderStyleOverride.Clear(i)
	s.Visual.BorderColorOverride.Clear(i)
	s.Text.Content.Clear(i)
	s.Text.Attrs.Clear(i)
	s.Text.TextAlign.Clear(i)
	s.Text.TextWrap.Clear(i)
	s.Interaction.Focusable.Clear(i)
	s.Interaction.TabIndex.Clear(i)
	s.Interaction.CursorPos.Clear(i)
	s.Interaction.CursorChar.Clear(i)
	s.Interaction.CursorAltChar.Clear(i)
	s.Interaction.CursorVisible.Clear(i)
	s.Interaction.ScrollOffsetX.Clear(i)
	s.Interaction.ScrollOffsetY.Clear(i)

	delete(s.Handlers.OnClick, idx)
	delete(s.Handlers.OnMouseDown, idx)
	delete(s.Handlers.OnMouseUp, idx)
	delete(s.Handlers.OnMouseEnter, idx)
	delete(s.Handlers.OnMouseLeave, idx)
	delete(s.Handlers.OnScroll, idx)
}
