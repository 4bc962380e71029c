package layout

import (
	"github.com/charmbracelet/log"

	"github.com/go-lilac/lilac/pkg/geometry"
	"github.com/go-lilac/lilac/pkg/scene"
)

// QueryArgs are the inputs to a query-phase size probe.
type QueryArgs struct {
	Limits      LayoutLimits
	ContentArea geometry.Vec2
	// Direction is the axis the minimum size should be optimized for; a
	// text leaf squeezed horizontally reports a tall narrow minimum.
	Direction Direction
}

// QuerySize computes a node's minimum and preferred sizing for a
// hypothetical content area without committing anything. Results are
// memoized per node and reused while the inputs stay within Tolerance.
func QuerySize(st *scene.Store, id scene.NodeID, args QueryArgs) Sizing {
	cache := ensureCache(st, id)
	key := NewQueryKey(args)
	if sizing, ok := cache.lookupQuery(key, args.Limits, args.ContentArea); ok {
		return sizing
	}
	sizing := querySizeUncached(st, id, args)
	cache.insertQuery(key, args.Limits, args.ContentArea, sizing)
	return sizing
}

func querySizeUncached(st *scene.Store, id scene.NodeID, args QueryArgs) Sizing {
	margin := scene.GetOr(st, id, MarginAttr, geometry.Edges{})
	padding := scene.GetOr(st, id, PaddingAttr, geometry.Edges{})
	limits := resolveLimits(st, id, args.Limits, args.ContentArea)

	strategy, isContainer := scene.Get(st, id, StrategyAttr)
	if !isContainer {
		min, preferred := queryLeaf(st, id, args.ContentArea, limits, args.Direction)
		return Sizing{
			Min:       geometry.RectFromSizePos(min, resolvePos(st, id, args.ContentArea, min)),
			Preferred: geometry.RectFromSizePos(preferred, resolvePos(st, id, args.ContentArea, preferred)),
			Margin:    margin,
		}
	}

	inner := QueryArgs{
		Limits: LayoutLimits{
			MinSize: limits.MinSize.Sub(padding.Size()).Max(geometry.Vec2{}),
			MaxSize: limits.MaxSize.Sub(padding.Size()).Max(geometry.Vec2{}),
		},
		ContentArea: args.ContentArea.Sub(padding.Size()).Max(geometry.Vec2{}),
		Direction:   args.Direction,
	}

	children := st.Children(id)
	var sizing Sizing
	switch strategy.Kind {
	case KindFlow:
		sizing = flowQuerySize(st, id, strategy.Flow, children, inner)
	case KindStack:
		sizing = stackQuerySize(st, children, inner)
	case KindFloat:
		sizing = floatQuerySize(st, children, inner)
	}

	sizing.Min = padRect(sizing.Min, padding)
	sizing.Preferred = padRect(sizing.Preferred, padding)
	sizing.Margin = sizing.Margin.Sub(padding).Max(margin)
	sizing.Min = sizing.Min.Translate(resolvePos(st, id, args.ContentArea, sizing.Min.Size()))
	sizing.Preferred = sizing.Preferred.Translate(resolvePos(st, id, args.ContentArea, sizing.Preferred.Size()))

	if exceeds(sizing.Preferred.Size(), limits.MaxSize) {
		log.Warn("preferred size exceeds limits",
			"node", id, "preferred", sizing.Preferred.Size(), "max", limits.MaxSize)
	}
	return sizing
}

// Apply commits a node's layout against a concrete content area, writing
// the rect and local-position attributes of the whole subtree. Writes go
// through deduplicating updates so an unchanged result does not dirty the
// tree it was just computed for.
func Apply(st *scene.Store, id scene.NodeID, contentArea geometry.Vec2, limits LayoutLimits) Block {
	cache := ensureCache(st, id)
	if block, ok := cache.lookupBlock(limits, contentArea); ok {
		return block
	}
	block := applyUncached(st, id, contentArea, limits)
	cache.insertBlock(limits, contentArea, block)
	return block
}

func applyUncached(st *scene.Store, id scene.NodeID, contentArea geometry.Vec2, limits LayoutLimits) Block {
	margin := scene.GetOr(st, id, MarginAttr, geometry.Edges{})
	padding := scene.GetOr(st, id, PaddingAttr, geometry.Edges{})
	limits = resolveLimits(st, id, limits, contentArea)

	strategy, isContainer := scene.Get(st, id, StrategyAttr)
	if !isContainer {
		children := st.Children(id)
		if len(children) > 0 {
			// Children placed under a leaf would silently never be laid
			// out; this is a bug in the widget that mounted them.
			panic("layout: node has children but no layout strategy")
		}
		size := applyLeaf(st, id, contentArea, limits)
		offset := resolvePos(st, id, contentArea, size)
		return Block{Rect: geometry.RectFromSizePos(size, offset), Margin: margin}
	}

	contentRect := geometry.RectFromSize(contentArea).Inset(padding)
	innerLimits := LayoutLimits{
		MinSize: limits.MinSize.Sub(padding.Size()).Max(geometry.Vec2{}),
		MaxSize: limits.MaxSize.Sub(padding.Size()).Max(geometry.Vec2{}),
	}

	children := st.Children(id)
	var block Block
	switch strategy.Kind {
	case KindFlow:
		block = flowApply(st, id, strategy.Flow, children, contentRect, innerLimits)
	case KindStack:
		block = stackApply(st, strategy.Stack, children, contentRect, innerLimits)
	case KindFloat:
		block = floatApply(st, children, contentRect)
	}

	block.Rect = padRect(block.Rect, padding)
	block.Margin = block.Margin.Sub(padding).Max(margin)
	block.Rect = block.Rect.Translate(resolvePos(st, id, contentArea, block.Rect.Size()))

	if exceeds(block.Rect.Size(), limits.MaxSize) {
		log.Warn("committed size exceeds limits",
			"node", id, "size", block.Rect.Size(), "max", limits.MaxSize)
	}
	return block
}

// resolveLimits folds the node's own min/max size attributes into the
// limits handed down by the parent.
func resolveLimits(st *scene.Store, id scene.NodeID, limits LayoutLimits, contentArea geometry.Vec2) LayoutLimits {
	if min, ok := scene.Get(st, id, MinSizeAttr); ok {
		limits.MinSize = limits.MinSize.Max(min.Resolve(contentArea))
	}
	if max, ok := scene.Get(st, id, MaxSizeAttr); ok {
		limits.MaxSize = limits.MaxSize.Min(max.Resolve(contentArea))
	}
	return limits
}

// resolvePos resolves the offset and anchor attributes into a placement
// translation: offset relative to the parent size minus the anchor fraction
// of the node's own size.
func resolvePos(st *scene.Store, id scene.NodeID, parentSize, selfSize geometry.Vec2) geometry.Vec2 {
	offset := scene.GetOr(st, id, OffsetAttr, geometry.Unit2{}).Resolve(parentSize)
	anchor := scene.GetOr(st, id, AnchorAttr, geometry.Unit2{}).Resolve(selfSize)
	return offset.Sub(anchor)
}

func queryLeaf(st *scene.Store, id scene.NodeID, contentArea geometry.Vec2, limits LayoutLimits, squeeze Direction) (min, preferred geometry.Vec2) {
	preferred = scene.GetOr(st, id, SizeAttr, geometry.Unit2{}).Resolve(contentArea)
	min = limits.MinSize
	if resolver, ok := scene.Get(st, id, ResolverAttr); ok {
		rmin, rpref := resolver.QuerySize(st, id, contentArea, limits, squeeze)
		min = min.Max(rmin)
		preferred = preferred.Max(rpref)
	}
	min = min.Clamp(limits.MinSize, limits.MaxSize)
	preferred = preferred.Clamp(limits.MinSize, limits.MaxSize)
	return min, preferred
}

func applyLeaf(st *scene.Store, id scene.NodeID, contentArea geometry.Vec2, limits LayoutLimits) geometry.Vec2 {
	size := scene.GetOr(st, id, SizeAttr, geometry.Unit2{}).Resolve(contentArea)
	if resolver, ok := scene.Get(st, id, ResolverAttr); ok {
		size = size.Max(resolver.Apply(st, id, contentArea, limits))
	}
	return size.Clamp(limits.MinSize, limits.MaxSize)
}

func padRect(r geometry.Rect, padding geometry.Edges) geometry.Rect {
	return geometry.RectFromSize(r.Size().Add(padding.Size()))
}

func exceeds(size, max geometry.Vec2) bool {
	return size.X > max.X+Tolerance || size.Y > max.Y+Tolerance
}

// commit writes a child's final placement. Updates are deduplicated so a
// relayout that reproduces the previous result leaves the scene clean.
func commit(st *scene.Store, id scene.NodeID, block Block, pos geometry.Vec2) {
	scene.Update(st, id, RectAttr, block.Rect)
	scene.Update(st, id, LocalPositionAttr, pos)
}
