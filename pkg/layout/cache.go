package layout

import (
	"math"

	"github.com/go-lilac/lilac/pkg/geometry"
	"github.com/go-lilac/lilac/pkg/scene"
)

// Tolerance is the maximum per-component drift between a cached entry's
// inputs and the incoming inputs for the entry to be reused. Differences at
// or below this threshold are visually indistinguishable and not worth a
// relayout.
const Tolerance = 0.1

// UpdateKind describes why a cache observer fired.
type UpdateKind int

const (
	// SizeQueryUpdate fires when a query-phase result is computed and stored.
	SizeQueryUpdate UpdateKind = iota
	// LayoutUpdate fires when an apply-phase result is computed and stored.
	LayoutUpdate
	// ExplicitInvalidation fires when the cache is cleared from outside,
	// typically because an attribute write dirtied the node.
	ExplicitInvalidation
)

func (k UpdateKind) String() string {
	switch k {
	case SizeQueryUpdate:
		return "size_query"
	case LayoutUpdate:
		return "layout"
	case ExplicitInvalidation:
		return "invalidation"
	default:
		return "unknown"
	}
}

// QueryKey buckets query inputs onto an integer grid so float arithmetic
// noise maps to the same map slot. Exact validity within the slot is decided
// by the tolerance check on the stored entry.
type QueryKey struct {
	ContentX, ContentY int32
	MinX, MinY         int32
	MaxX, MaxY         int32
	Direction          Direction
}

func quantize(v float64) int32 {
	if math.IsInf(v, 1) || v > math.MaxInt32 {
		return math.MaxInt32
	}
	if math.IsInf(v, -1) || v < math.MinInt32 {
		return math.MinInt32
	}
	return int32(math.Round(v))
}

// NewQueryKey derives the cache key for a set of query inputs.
func NewQueryKey(args QueryArgs) QueryKey {
	return QueryKey{
		ContentX:  quantize(args.ContentArea.X),
		ContentY:  quantize(args.ContentArea.Y),
		MinX:      quantize(args.Limits.MinSize.X),
		MinY:      quantize(args.Limits.MinSize.Y),
		MaxX:      quantize(args.Limits.MaxSize.X),
		MaxY:      quantize(args.Limits.MaxSize.Y),
		Direction: args.Direction,
	}
}

// CachedValue pairs a cached result with the exact inputs it was computed
// for, so a key collision within the quantization grid can still be rejected
// when the exact inputs drifted past the tolerance.
type CachedValue[T any] struct {
	Limits      LayoutLimits
	ContentArea geometry.Vec2
	Value       T
}

func (c *CachedValue[T]) valid(limits LayoutLimits, contentArea geometry.Vec2) bool {
	return c.Limits.MinSize.AbsDiffEq(limits.MinSize, Tolerance) &&
		maxLimitsEq(c.Limits.MaxSize, limits.MaxSize) &&
		c.ContentArea.AbsDiffEq(contentArea, Tolerance)
}

// Unbounded axes compare equal to each other but never to a finite limit.
func maxLimitsEq(a, b geometry.Vec2) bool {
	return axisEq(a.X, b.X) && axisEq(a.Y, b.Y)
}

func axisEq(a, b float64) bool {
	if math.IsInf(a, 1) || math.IsInf(b, 1) {
		return math.IsInf(a, 1) && math.IsInf(b, 1)
	}
	return math.Abs(a-b) <= Tolerance
}

// Cache memoizes one node's layout results: query-phase sizings and flow row
// measurements keyed by quantized inputs, plus the single most recent
// apply-phase block. An optional observer is notified of every insertion and
// invalidation; the frame uses it to decide whether anything moved during a
// layout pass.
type Cache struct {
	queries  map[QueryKey]CachedValue[Sizing]
	rows     map[QueryKey]CachedValue[Row]
	block    *CachedValue[Block]
	observer func(UpdateKind)
}

// NewCache returns an empty cache reporting to observer, which may be nil.
func NewCache(observer func(UpdateKind)) *Cache {
	return &Cache{observer: observer}
}

// Invalidate clears all cached results and notifies the observer.
func (c *Cache) Invalidate() {
	c.queries = nil
	c.rows = nil
	c.block = nil
	c.notify(ExplicitInvalidation)
}

func (c *Cache) notify(kind UpdateKind) {
	if c.observer != nil {
		c.observer(kind)
	}
}

func (c *Cache) lookupQuery(key QueryKey, limits LayoutLimits, contentArea geometry.Vec2) (Sizing, bool) {
	if entry, ok := c.queries[key]; ok && entry.valid(limits, contentArea) {
		return entry.Value, true
	}
	return Sizing{}, false
}

func (c *Cache) insertQuery(key QueryKey, limits LayoutLimits, contentArea geometry.Vec2, sizing Sizing) {
	if c.queries == nil {
		c.queries = make(map[QueryKey]CachedValue[Sizing])
	}
	c.queries[key] = CachedValue[Sizing]{Limits: limits, ContentArea: contentArea, Value: sizing}
	c.notify(SizeQueryUpdate)
}

func (c *Cache) lookupRow(key QueryKey, limits LayoutLimits, contentArea geometry.Vec2) (Row, bool) {
	if entry, ok := c.rows[key]; ok && entry.valid(limits, contentArea) {
		return entry.Value, true
	}
	return Row{}, false
}

func (c *Cache) insertRow(key QueryKey, limits LayoutLimits, contentArea geometry.Vec2, row Row) {
	if c.rows == nil {
		c.rows = make(map[QueryKey]CachedValue[Row])
	}
	c.rows[key] = CachedValue[Row]{Limits: limits, ContentArea: contentArea, Value: row}
	c.notify(SizeQueryUpdate)
}

func (c *Cache) lookupBlock(limits LayoutLimits, contentArea geometry.Vec2) (Block, bool) {
	if c.block != nil && c.block.valid(limits, contentArea) {
		return c.block.Value, true
	}
	return Block{}, false
}

func (c *Cache) insertBlock(limits LayoutLimits, contentArea geometry.Vec2, block Block) {
	c.block = &CachedValue[Block]{Limits: limits, ContentArea: contentArea, Value: block}
	c.notify(LayoutUpdate)
}

// SetObserver installs the observer for a node's cache, creating the cache
// if the node has not been laid out yet.
func SetObserver(st *scene.Store, id scene.NodeID, observer func(UpdateKind)) {
	scene.Set(st, id, observerAttr, observer)
	if cache, ok := scene.Get(st, id, cacheAttr); ok {
		cache.observer = observer
	}
}

func ensureCache(st *scene.Store, id scene.NodeID) *Cache {
	if cache, ok := scene.Get(st, id, cacheAttr); ok {
		return cache
	}
	cache := NewCache(scene.GetOr(st, id, observerAttr, nil))
	scene.Set(st, id, cacheAttr, cache)
	return cache
}

// Invalidate clears the layout cache of id and every ancestor up to the
// root. Parents memoize results that depend on child sizings, so a dirty
// node dirties the whole ancestor chain; siblings and descendants keep
// their entries.
func Invalidate(st *scene.Store, id scene.NodeID) {
	for st.Alive(id) {
		if cache, ok := scene.Get(st, id, cacheAttr); ok {
			cache.Invalidate()
		}
		parent, ok := st.Parent(id)
		if !ok {
			return
		}
		id = parent
	}
}
