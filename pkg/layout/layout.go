// Package layout implements the constraint-based layout engine.
//
// Layout runs in two phases, always invoked top-down and recursively. The
// query phase (QuerySize) asks a node for its minimum and preferred sizing
// against a hypothetical content area without mutating anything; parents use
// it for intrinsic-size negotiation. The apply phase (Apply) hands a node a
// concrete content area and limits, computes final rectangles for the whole
// subtree, and writes them into the rect and local-position attributes via
// deduplicated updates.
//
// Three strategies are implemented as a closed tagged variant: Flow places
// children along a main axis, Stack overlays children with per-axis
// alignment, and Float lays children out without affecting the parent's own
// size. Open-ended sizing (text measurement and the like) goes through the
// SizeResolver escape hatch instead of a new strategy.
package layout

import (
	"github.com/go-lilac/lilac/pkg/geometry"
	"github.com/go-lilac/lilac/pkg/scene"
)

// Direction is the main axis of a flow layout and the optimization axis of
// a size query.
type Direction int

const (
	// Horizontal lays out along the x axis.
	Horizontal Direction = iota
	// Vertical lays out along the y axis.
	Vertical
)

func (d Direction) String() string {
	if d == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// Main returns the vector component along the main axis.
func (d Direction) Main(v geometry.Vec2) float64 {
	if d == Vertical {
		return v.Y
	}
	return v.X
}

// Cross returns the vector component along the cross axis.
func (d Direction) Cross(v geometry.Vec2) float64 {
	if d == Vertical {
		return v.X
	}
	return v.Y
}

// Vec builds a vector from main and cross axis components.
func (d Direction) Vec(main, cross float64) geometry.Vec2 {
	if d == Vertical {
		return geometry.Vec2{X: cross, Y: main}
	}
	return geometry.Vec2{X: main, Y: cross}
}

// MainEdges returns the leading and trailing spacing along the main axis.
func (d Direction) MainEdges(e geometry.Edges) (back, front float64) {
	if d == Vertical {
		return e.Top, e.Bottom
	}
	return e.Left, e.Right
}

// CrossEdges returns the leading and trailing spacing along the cross axis.
func (d Direction) CrossEdges(e geometry.Edges) (start, end float64) {
	if d == Vertical {
		return e.Left, e.Right
	}
	return e.Top, e.Bottom
}

// ToEdges builds an Edges value from main and cross axis spacing pairs.
func (d Direction) ToEdges(main, cross [2]float64) geometry.Edges {
	if d == Vertical {
		return geometry.Edges{Top: main[0], Bottom: main[1], Left: cross[0], Right: cross[1]}
	}
	return geometry.Edges{Left: main[0], Right: main[1], Top: cross[0], Bottom: cross[1]}
}

// Alignment positions a child inside available space along one axis as
// (available - child_size) * fraction.
type Alignment float64

const (
	// AlignStart places the child at the leading edge.
	AlignStart Alignment = 0
	// AlignCenter centers the child.
	AlignCenter Alignment = 0.5
	// AlignEnd places the child at the trailing edge.
	AlignEnd Alignment = 1
)

// Offset returns the placement offset for a child of the given size.
func (a Alignment) Offset(available, size float64) float64 {
	return (available - size) * float64(a)
}

// LayoutLimits bound what a node's computed size may be.
type LayoutLimits struct {
	MinSize geometry.Vec2
	MaxSize geometry.Vec2
}

// Sizing is a node's report during the query phase: the smallest rect it
// can be squeezed into, the rect it would prefer, and its outer margin.
type Sizing struct {
	Min       geometry.Rect
	Preferred geometry.Rect
	Margin    geometry.Edges
}

// Block is a node's committed rectangle plus merged margin after the apply
// phase.
type Block struct {
	Rect   geometry.Rect
	Margin geometry.Edges
}

// Kind selects a layout strategy.
type Kind int

const (
	// KindFlow places children sequentially along a main axis.
	KindFlow Kind = iota
	// KindStack overlays children, aligning each independently per axis.
	KindStack
	// KindFloat lays out children without contributing to the parent size.
	KindFloat
)

// FlowOptions configure a flow strategy.
type FlowOptions struct {
	Direction Direction
	// CrossAlign aligns children across the main axis.
	CrossAlign Alignment
	// Stretch fills children to the line's cross-axis extent.
	Stretch bool
	// ContainMargins includes child margins inside the container's own
	// bounds instead of letting them leak out as the container's margin.
	ContainMargins bool
}

// StackOptions configure a stack strategy.
type StackOptions struct {
	Horizontal Alignment
	Vertical   Alignment
}

// Strategy is the closed tagged variant stored in the layout attribute.
type Strategy struct {
	Kind  Kind
	Flow  FlowOptions
	Stack StackOptions
}

// Flow returns a flow strategy.
func Flow(opts FlowOptions) Strategy {
	return Strategy{Kind: KindFlow, Flow: opts}
}

// Stack returns a stack strategy.
func Stack(opts StackOptions) Strategy {
	return Strategy{Kind: KindStack, Stack: opts}
}

// Float returns a float strategy.
func Float() Strategy {
	return Strategy{Kind: KindFloat}
}

// SizeResolver resolves dynamically determined sizes, most commonly text
// whose extent depends on the current limits.
type SizeResolver interface {
	// QuerySize returns a minimum size optimized for the squeeze direction
	// and the preferred size.
	QuerySize(st *scene.Store, id scene.NodeID, contentArea geometry.Vec2, limits LayoutLimits, squeeze Direction) (min, preferred geometry.Vec2)
	// Apply uses the final limits to determine the committed size.
	Apply(st *scene.Store, id scene.NodeID, contentArea geometry.Vec2, limits LayoutLimits) geometry.Vec2
}

// Attribute slots read and written by the layout engine. Rect and
// LocalPosition are the committed outputs consumed by renderers and hit
// testing; the rest are inputs set by widgets.
var (
	// RectAttr is the committed bounds, relative to LocalPositionAttr.
	RectAttr = scene.NewAttr[geometry.Rect]("rect")
	// LocalPositionAttr is the placement offset within the parent's content
	// area.
	LocalPositionAttr = scene.NewAttr[geometry.Vec2]("local_position")
	// ClipAttr masks the node's subtree to its committed rect, for both
	// rendering and hit testing.
	ClipAttr = scene.NewAttr[bool]("clip")
	// MarginAttr is the node's minimum outer clearance.
	MarginAttr = scene.NewAttr[geometry.Edges]("margin")
	// PaddingAttr insets the node's content area.
	PaddingAttr = scene.NewAttr[geometry.Edges]("padding")
	// SizeAttr is the node's base size.
	SizeAttr = scene.NewAttr[geometry.Unit2]("size")
	// MinSizeAttr raises the lower size limit.
	MinSizeAttr = scene.NewAttr[geometry.Unit2]("min_size")
	// MaxSizeAttr lowers the upper size limit.
	MaxSizeAttr = scene.NewAttr[geometry.Unit2]("max_size")
	// OffsetAttr positions the node relative to its allocated slot.
	OffsetAttr = scene.NewAttr[geometry.Unit2]("offset")
	// AnchorAttr is the fraction of the node's own size subtracted from the
	// resolved offset.
	AnchorAttr = scene.NewAttr[geometry.Unit2]("anchor")
	// StrategyAttr selects the layout strategy for a container node.
	StrategyAttr = scene.NewAttr[Strategy]("layout")
	// ResolverAttr is the SizeResolver escape hatch for leaves.
	ResolverAttr = scene.NewAttr[SizeResolver]("size_resolver")

	cacheAttr    = scene.NewAttr[*Cache]("layout_cache")
	observerAttr = scene.NewAttr[func(UpdateKind)]("layout_observer")
)
