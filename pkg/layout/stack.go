package layout

import (
	"math"

	"github.com/charmbracelet/log"

	"github.com/go-lilac/lilac/pkg/geometry"
	"github.com/go-lilac/lilac/pkg/scene"
)

// stackBounds accumulates the union of child rects alongside the union of
// their margin-expanded rects. The gap between the two unions is the
// stack's own margin, which merges overlapping child margins by taking the
// widest clearance per edge.
type stackBounds struct {
	inner geometry.Rect
	outer geometry.Rect
	set   bool
}

func (b *stackBounds) merge(rect geometry.Rect, margin geometry.Edges) {
	outer := rect.Pad(margin)
	if !b.set {
		b.inner, b.outer, b.set = rect, outer, true
		return
	}
	b.inner = b.inner.Merge(rect)
	b.outer = b.outer.Merge(outer)
}

func (b *stackBounds) margin() geometry.Edges {
	if !b.set {
		return geometry.Edges{}
	}
	return geometry.Edges{
		Left:   math.Max(b.inner.Min.X-b.outer.Min.X, 0),
		Right:  math.Max(b.outer.Max.X-b.inner.Max.X, 0),
		Top:    math.Max(b.inner.Min.Y-b.outer.Min.Y, 0),
		Bottom: math.Max(b.outer.Max.Y-b.inner.Max.Y, 0),
	}
}

func stackQuerySize(st *scene.Store, children []scene.NodeID, args QueryArgs) Sizing {
	var minBounds, prefBounds stackBounds
	childArgs := QueryArgs{
		Limits:      LayoutLimits{MaxSize: args.Limits.MaxSize},
		ContentArea: args.ContentArea,
		Direction:   args.Direction,
	}
	for _, child := range children {
		sizing := QuerySize(st, child, childArgs)
		minBounds.merge(sizing.Min, sizing.Margin)
		prefBounds.merge(sizing.Preferred, sizing.Margin)
	}

	minMargin := minBounds.margin()
	prefMargin := prefBounds.margin()
	if edgesDiffer(minMargin, prefMargin) {
		log.Warn("stack margin differs between minimum and preferred queries",
			"min", minMargin, "preferred", prefMargin)
	}

	return Sizing{
		Min:       geometry.RectFromSize(minBounds.inner.Size().Max(args.Limits.MinSize)),
		Preferred: geometry.RectFromSize(prefBounds.inner.Size().Max(args.Limits.MinSize).Min(args.Limits.MaxSize)),
		Margin:    minMargin.Max(prefMargin),
	}
}

func edgesDiffer(a, b geometry.Edges) bool {
	return math.Abs(a.Left-b.Left) > Tolerance ||
		math.Abs(a.Right-b.Right) > Tolerance ||
		math.Abs(a.Top-b.Top) > Tolerance ||
		math.Abs(a.Bottom-b.Bottom) > Tolerance
}

// stackApply lays every child out against the full limits, sizes the stack
// to the union of the results, then aligns each child independently per
// axis within that union.
func stackApply(st *scene.Store, opts StackOptions, children []scene.NodeID, contentRect geometry.Rect, limits LayoutLimits) Block {
	type placement struct {
		id    scene.NodeID
		block Block
	}
	placements := make([]placement, 0, len(children))
	var bounds stackBounds

	contentArea := contentRect.Size()
	for _, child := range children {
		block := Apply(st, child, contentArea, LayoutLimits{MaxSize: limits.MaxSize})
		bounds.merge(block.Rect, block.Margin)
		placements = append(placements, placement{id: child, block: block})
	}

	size := bounds.inner.Size().Max(limits.MinSize)
	for _, p := range placements {
		childSize := p.block.Rect.Size()
		pos := contentRect.Min.Add(geometry.V(
			opts.Horizontal.Offset(size.X, childSize.X),
			opts.Vertical.Offset(size.Y, childSize.Y),
		))
		commit(st, p.id, p.block, pos)
	}

	return Block{
		Rect:   geometry.RectFromSizePos(size, contentRect.Min),
		Margin: bounds.margin(),
	}
}
