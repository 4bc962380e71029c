// Package geometry provides the 2D primitives used by the layout engine:
// vectors, axis-aligned rectangles, four-sided edge spacing, and
// absolute+relative units resolved against a parent size.
package geometry

import "math"

// Vec2 is a 2D point or extent in logical pixels.
type Vec2 struct {
	X float64
	Y float64
}

// V is shorthand for constructing a Vec2.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns the component-wise sum.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns the component-wise difference.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Mul returns the component-wise product.
func (v Vec2) Mul(o Vec2) Vec2 {
	return Vec2{X: v.X * o.X, Y: v.Y * o.Y}
}

// Scale returns the vector scaled by a scalar.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Max returns the component-wise maximum.
func (v Vec2) Max(o Vec2) Vec2 {
	return Vec2{X: math.Max(v.X, o.X), Y: math.Max(v.Y, o.Y)}
}

// Min returns the component-wise minimum.
func (v Vec2) Min(o Vec2) Vec2 {
	return Vec2{X: math.Min(v.X, o.X), Y: math.Min(v.Y, o.Y)}
}

// Clamp limits each component to the [lo, hi] range.
func (v Vec2) Clamp(lo, hi Vec2) Vec2 {
	return v.Max(lo).Min(hi)
}

// AbsDiffEq reports whether both components are within tolerance of o.
func (v Vec2) AbsDiffEq(o Vec2, tolerance float64) bool {
	return math.Abs(v.X-o.X) <= tolerance && math.Abs(v.Y-o.Y) <= tolerance
}

// Rect is an axis-aligned rectangle described by its min and max corners.
//
// Max >= Min is assumed by consumers but not enforced; degenerate rects
// (zero or negative size) are valid inputs to layout and clamp to zero-size
// results rather than failing.
type Rect struct {
	Min Vec2
	Max Vec2
}

// RectFromSize returns a rect anchored at the origin with the given size.
func RectFromSize(size Vec2) Rect {
	return Rect{Max: size}
}

// RectFromSizePos returns a rect of the given size positioned at pos.
func RectFromSizePos(size, pos Vec2) Rect {
	return Rect{Min: pos, Max: pos.Add(size)}
}

// Size returns the extent of the rect, clamped to be non-negative.
func (r Rect) Size() Vec2 {
	return Vec2{
		X: math.Max(r.Max.X-r.Min.X, 0),
		Y: math.Max(r.Max.Y-r.Min.Y, 0),
	}
}

// Translate returns the rect moved by offset.
func (r Rect) Translate(offset Vec2) Rect {
	return Rect{Min: r.Min.Add(offset), Max: r.Max.Add(offset)}
}

// Inset shrinks the rect inward by the given edges.
func (r Rect) Inset(edges Edges) Rect {
	return Rect{
		Min: Vec2{X: r.Min.X + edges.Left, Y: r.Min.Y + edges.Top},
		Max: Vec2{X: r.Max.X - edges.Right, Y: r.Max.Y - edges.Bottom},
	}
}

// Pad grows the rect outward by the given edges. Pad is the inverse of Inset.
func (r Rect) Pad(edges Edges) Rect {
	return Rect{
		Min: Vec2{X: r.Min.X - edges.Left, Y: r.Min.Y - edges.Top},
		Max: Vec2{X: r.Max.X + edges.Right, Y: r.Max.Y + edges.Bottom},
	}
}

// Merge returns the union of two rects.
func (r Rect) Merge(o Rect) Rect {
	return Rect{Min: r.Min.Min(o.Min), Max: r.Max.Max(o.Max)}
}

// MaxSize grows the rect, if needed, so its size is at least size.
// The min corner is kept in place.
func (r Rect) MaxSize(size Vec2) Rect {
	return Rect{Min: r.Min, Max: r.Max.Max(r.Min.Add(size))}
}

// ClampSize limits the rect's size to the [lo, hi] range, keeping the min
// corner in place.
func (r Rect) ClampSize(lo, hi Vec2) Rect {
	return Rect{Min: r.Min, Max: r.Min.Add(r.Size().Clamp(lo, hi))}
}

// Contains reports whether the point lies inside the rect, inclusive of the
// min edge and exclusive of the max edge.
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.Min.X && p.Y >= r.Min.Y && p.X < r.Max.X && p.Y < r.Max.Y
}

// Edges is four-sided spacing around a rect, used for both margin and
// padding.
type Edges struct {
	Left   float64
	Right  float64
	Top    float64
	Bottom float64
}

// EdgesAll returns uniform spacing on all four sides.
func EdgesAll(v float64) Edges {
	return Edges{Left: v, Right: v, Top: v, Bottom: v}
}

// Size returns the total horizontal and vertical spacing.
func (e Edges) Size() Vec2 {
	return Vec2{X: e.Left + e.Right, Y: e.Top + e.Bottom}
}

// Max returns the per-edge maximum of two edge sets. Overlapping margins
// merge this way: the larger clearance wins, the values are never summed.
func (e Edges) Max(o Edges) Edges {
	return Edges{
		Left:   math.Max(e.Left, o.Left),
		Right:  math.Max(e.Right, o.Right),
		Top:    math.Max(e.Top, o.Top),
		Bottom: math.Max(e.Bottom, o.Bottom),
	}
}

// Sub subtracts o per edge, clamping each side to be non-negative.
func (e Edges) Sub(o Edges) Edges {
	return Edges{
		Left:   math.Max(e.Left-o.Left, 0),
		Right:  math.Max(e.Right-o.Right, 0),
		Top:    math.Max(e.Top-o.Top, 0),
		Bottom: math.Max(e.Bottom-o.Bottom, 0),
	}
}
