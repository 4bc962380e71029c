package layout

import (
	"math"

	"github.com/go-lilac/lilac/pkg/geometry"
	"github.com/go-lilac/lilac/pkg/scene"
)

// Row is a memoized flow measurement: each child's queried sizing plus the
// aggregated line extents for both the minimum and preferred cases. Both the
// query and apply phases consume it, so it is cached separately from either.
type Row struct {
	Min       geometry.Vec2
	Preferred geometry.Vec2
	Margin    geometry.Edges
	Children  []RowChild
}

// RowChild pairs a child with its queried sizing.
type RowChild struct {
	ID     scene.NodeID
	Sizing Sizing
}

// flowCursor advances along the main axis placing one child at a time.
// Adjacent margins merge by taking the larger of the two clearances, never
// their sum. Leading and trailing margins either stay inside the line
// (contain) or leak out as the container's own margin.
type flowCursor struct {
	dir     Direction
	contain bool

	main    float64
	pending float64
	started bool

	lead  float64
	trail float64

	cross      float64
	crossStart float64
	crossEnd   float64
}

// clearance previews the main-axis gap that would precede a child with the
// given leading margin, without committing it.
func (c *flowCursor) clearance(back float64) float64 {
	back = math.Max(back, 0)
	if !c.started {
		if c.contain {
			return back
		}
		return 0
	}
	return math.Max(c.pending, back)
}

// put places a child of the given size and margin, returning its main-axis
// position and cross-axis span within the line.
func (c *flowCursor) put(size geometry.Vec2, margin geometry.Edges) (mainPos, crossSpan float64) {
	back, front := c.dir.MainEdges(margin)
	back = math.Max(back, 0)
	front = math.Max(front, 0)

	if !c.started {
		c.started = true
		if c.contain {
			c.main += back
		} else {
			c.lead = math.Max(c.lead, back)
		}
	} else {
		c.main += math.Max(c.pending, back)
	}
	c.pending = front

	start, end := c.dir.CrossEdges(margin)
	start = math.Max(start, 0)
	end = math.Max(end, 0)
	crossSpan = c.dir.Cross(size)
	if c.contain {
		crossSpan += start + end
	} else {
		c.crossStart = math.Max(c.crossStart, start)
		c.crossEnd = math.Max(c.crossEnd, end)
	}
	c.cross = math.Max(c.cross, crossSpan)

	mainPos = c.main
	c.main += c.dir.Main(size)
	return mainPos, crossSpan
}

// finish closes the line and returns its extents.
func (c *flowCursor) finish() (main, cross float64) {
	if c.contain {
		c.main += c.pending
	} else {
		c.trail = math.Max(c.trail, c.pending)
	}
	c.pending = 0
	return c.main, c.cross
}

// margin returns the clearance that leaked out of a non-containing line.
func (c *flowCursor) margin() geometry.Edges {
	if c.contain {
		return geometry.Edges{}
	}
	return c.dir.ToEdges([2]float64{c.lead, c.trail}, [2]float64{c.crossStart, c.crossEnd})
}

// measureRow queries every child once and aggregates the minimum and
// preferred line extents. Children are queried against the full limits;
// distribution of a tighter budget happens in the apply phase.
func measureRow(st *scene.Store, id scene.NodeID, opts FlowOptions, children []scene.NodeID, args QueryArgs) Row {
	cache := ensureCache(st, id)
	key := NewQueryKey(args)
	if row, ok := cache.lookupRow(key, args.Limits, args.ContentArea); ok {
		return row
	}

	row := Row{Children: make([]RowChild, 0, len(children))}
	minLine := flowCursor{dir: opts.Direction, contain: opts.ContainMargins}
	prefLine := flowCursor{dir: opts.Direction, contain: opts.ContainMargins}

	childArgs := QueryArgs{
		Limits:      LayoutLimits{MaxSize: args.Limits.MaxSize},
		ContentArea: args.ContentArea,
		Direction:   opts.Direction,
	}
	for _, child := range children {
		sizing := QuerySize(st, child, childArgs)
		minLine.put(sizing.Min.Size(), sizing.Margin)
		prefLine.put(sizing.Preferred.Size(), sizing.Margin)
		row.Children = append(row.Children, RowChild{ID: child, Sizing: sizing})
	}

	minMain, minCross := minLine.finish()
	prefMain, prefCross := prefLine.finish()
	row.Min = opts.Direction.Vec(minMain, minCross)
	row.Preferred = opts.Direction.Vec(prefMain, prefCross)
	row.Margin = prefLine.margin()

	cache.insertRow(key, args.Limits, args.ContentArea, row)
	return row
}

func flowQuerySize(st *scene.Store, id scene.NodeID, opts FlowOptions, children []scene.NodeID, args QueryArgs) Sizing {
	row := measureRow(st, id, opts, children, args)
	min := row.Min.Max(args.Limits.MinSize)
	preferred := row.Preferred.Max(args.Limits.MinSize).Min(args.Limits.MaxSize)
	return Sizing{
		Min:       geometry.RectFromSize(min),
		Preferred: geometry.RectFromSize(preferred),
		Margin:    row.Margin,
	}
}

// flowApply distributes the main-axis budget greedily in attach order: each
// child receives its preferred extent clamped between its minimum and
// whatever budget remains after its predecessors, so earlier children are
// satisfied first and an oversized trailing child absorbs the shortfall.
func flowApply(st *scene.Store, id scene.NodeID, opts FlowOptions, children []scene.NodeID, contentRect geometry.Rect, limits LayoutLimits) Block {
	dir := opts.Direction
	contentArea := contentRect.Size()
	row := measureRow(st, id, opts, children, QueryArgs{
		Limits:      LayoutLimits{MaxSize: limits.MaxSize},
		ContentArea: contentArea,
		Direction:   dir,
	})

	mainMax := dir.Main(limits.MaxSize)
	crossMax := dir.Cross(limits.MaxSize)
	stretchCross := 0.0
	if opts.Stretch {
		stretchCross = math.Min(dir.Cross(row.Preferred), crossMax)
	}

	type placement struct {
		id        scene.NodeID
		block     Block
		mainPos   float64
		crossSpan float64
	}
	placements := make([]placement, 0, len(row.Children))
	cursor := flowCursor{dir: dir, contain: opts.ContainMargins}

	for _, rc := range row.Children {
		back, _ := dir.MainEdges(rc.Sizing.Margin)
		remaining := mainMax - cursor.main - cursor.clearance(back)
		childMin := dir.Main(rc.Sizing.Min.Size())
		childPref := dir.Main(rc.Sizing.Preferred.Size())
		given := math.Max(childMin, math.Min(childPref, math.Max(remaining, 0)))

		childLimits := LayoutLimits{MaxSize: dir.Vec(given, crossMax)}
		if opts.Stretch {
			childLimits.MinSize = dir.Vec(0, stretchCross)
		}
		block := Apply(st, rc.ID, contentArea, childLimits)
		mainPos, crossSpan := cursor.put(block.Rect.Size(), block.Margin)
		placements = append(placements, placement{id: rc.ID, block: block, mainPos: mainPos, crossSpan: crossSpan})
	}

	lineMain, lineCross := cursor.finish()
	lineCross = math.Max(lineCross, stretchCross)

	for _, p := range placements {
		crossPos := opts.CrossAlign.Offset(lineCross, p.crossSpan)
		if opts.ContainMargins {
			start, _ := dir.CrossEdges(p.block.Margin)
			crossPos += math.Max(start, 0)
		}
		pos := contentRect.Min.Add(dir.Vec(p.mainPos, crossPos))
		commit(st, p.id, p.block, pos)
	}

	size := dir.Vec(lineMain, lineCross).Max(limits.MinSize)
	return Block{
		Rect:   geometry.RectFromSizePos(size, contentRect.Min),
		Margin: cursor.margin(),
	}
}
