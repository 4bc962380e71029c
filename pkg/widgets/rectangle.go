package widgets

import (
	"image/color"

	"github.com/go-lilac/lilac/pkg/frame"
	"github.com/go-lilac/lilac/pkg/geometry"
	"github.com/go-lilac/lilac/pkg/layout"
)

// Rectangle is a colored leaf of a given size.
type Rectangle struct {
	Color   color.RGBA
	Size    geometry.Unit2
	MinSize geometry.Unit2
	MaxSize geometry.Unit2
	Margin  geometry.Edges
	Offset  geometry.Unit2
	Anchor  geometry.Unit2
}

// Mount writes the rectangle's attributes.
func (r Rectangle) Mount(s *frame.Scope) {
	frame.Set(s, ColorAttr, r.Color)
	frame.Set(s, ShapeAttr, ShapeRect)
	frame.Set(s, layout.SizeAttr, r.Size)
	if !r.MinSize.IsZero() {
		frame.Set(s, layout.MinSizeAttr, r.MinSize)
	}
	if !r.MaxSize.IsZero() {
		frame.Set(s, layout.MaxSizeAttr, r.MaxSize)
	}
	if r.Margin != (geometry.Edges{}) {
		frame.Set(s, layout.MarginAttr, r.Margin)
	}
	if !r.Offset.IsZero() {
		frame.Set(s, layout.OffsetAttr, r.Offset)
	}
	if !r.Anchor.IsZero() {
		frame.Set(s, layout.AnchorAttr, r.Anchor)
	}
}
