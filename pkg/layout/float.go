package layout

import (
	"math"

	"github.com/go-lilac/lilac/pkg/geometry"
	"github.com/go-lilac/lilac/pkg/scene"
)

// Float children are laid out without constraining them to the parent and
// without contributing to the parent's own size: tooltips, overlays, and
// popups anchored to a widget but free of its box.

func unboundedLimits() LayoutLimits {
	return LayoutLimits{MaxSize: geometry.V(math.Inf(1), math.Inf(1))}
}

// floatQuerySize warms the children's query caches but reports a zero
// sizing; floated content never influences the parent's size negotiation.
func floatQuerySize(st *scene.Store, children []scene.NodeID, args QueryArgs) Sizing {
	childArgs := QueryArgs{
		Limits:      unboundedLimits(),
		ContentArea: args.ContentArea,
		Direction:   args.Direction,
	}
	for _, child := range children {
		QuerySize(st, child, childArgs)
	}
	return Sizing{}
}

// floatApply commits each child at the content-area origin with unbounded
// limits; the child's own offset and anchor attributes position it from
// there. The parent receives a zero-size block.
func floatApply(st *scene.Store, children []scene.NodeID, contentRect geometry.Rect) Block {
	contentArea := contentRect.Size()
	for _, child := range children {
		block := Apply(st, child, contentArea, unboundedLimits())
		commit(st, child, block, contentRect.Min)
	}
	return Block{Rect: geometry.Rect{Min: contentRect.Min, Max: contentRect.Min}}
}
