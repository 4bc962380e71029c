// Package frame drives the toolkit: it owns the scene store, runs the
// effect executor, schedules layout, and exposes the committed tree to
// renderers.
//
// Everything runs on one goroutine. A tick polls all effects first, then
// runs layout, so every attribute written by an effect is laid out in the
// same tick. Work from other goroutines enters through channels consumed by
// future and stream effects.
package frame

import (
	"github.com/go-lilac/lilac/pkg/effects"
	"github.com/go-lilac/lilac/pkg/geometry"
	"github.com/go-lilac/lilac/pkg/layout"
	"github.com/go-lilac/lilac/pkg/scene"
)

// LayoutStats counts cache observer events across the whole tree. Renderers
// use the layout count to decide whether anything moved; tests use all three
// to assert cache behavior.
type LayoutStats struct {
	SizeQueries   uint64
	Layouts       uint64
	Invalidations uint64
}

// Frame is the single-goroutine driver owning the scene and its effects.
type Frame struct {
	store    *scene.Store
	executor *effects.Executor[*Frame]
	root     scene.NodeID

	stats      LayoutStats
	generation uint64
}

// New returns a frame with an empty scene.
func New() *Frame {
	return &Frame{
		store:    scene.NewStore(),
		executor: effects.NewExecutor[*Frame](),
	}
}

// Store exposes the underlying scene store.
func (f *Frame) Store() *scene.Store {
	return f.store
}

// Root returns the root node, invalid before MountRoot.
func (f *Frame) Root() scene.NodeID {
	return f.root
}

// Stats returns the accumulated layout observer counts.
func (f *Frame) Stats() LayoutStats {
	return f.stats
}

// Generation increments whenever a layout pass commits new geometry.
// Renderers compare it between ticks to skip redraws.
func (f *Frame) Generation() uint64 {
	return f.generation
}

func (f *Frame) observeLayout(kind layout.UpdateKind) {
	switch kind {
	case layout.SizeQueryUpdate:
		f.stats.SizeQueries++
	case layout.LayoutUpdate:
		f.stats.Layouts++
	case layout.ExplicitInvalidation:
		f.stats.Invalidations++
	}
}

// MountRoot mounts w as the root widget, replacing and despawning any
// previous root.
func (f *Frame) MountRoot(w Widget) scene.NodeID {
	if f.store.Alive(f.root) {
		f.store.Despawn(f.root)
	}
	f.root = f.store.Spawn()
	layout.SetObserver(f.store, f.root, f.observeLayout)
	scope := &Scope{frame: f, id: f.root}
	safeMount(w, scope)
	scope.Flush()
	return f.root
}

// PollEffects runs one executor tick. Effects spawned during the tick are
// polled before it returns.
func (f *Frame) PollEffects() {
	f.executor.Tick(f)
}

// Spawn registers a frame-level effect not scoped to any node.
func (f *Frame) Spawn(effect effects.Effect[*Frame]) {
	f.executor.Spawn(effect)
}

// RunLayout lays the tree out against the viewport and reports whether any
// geometry changed. With warm caches and no intervening writes this is a
// single cache hit.
func (f *Frame) RunLayout(viewport geometry.Vec2) bool {
	if !f.store.Alive(f.root) {
		return false
	}
	before := f.stats.Layouts
	block := layout.Apply(f.store, f.root, viewport, layout.LayoutLimits{MaxSize: viewport})
	scene.Update(f.store, f.root, layout.RectAttr, block.Rect)
	scene.Update(f.store, f.root, layout.LocalPositionAttr, geometry.Vec2{})
	if f.stats.Layouts != before {
		f.generation++
		return true
	}
	return false
}

// Tick runs one full frame: effects, then layout. It reports whether
// geometry changed.
func (f *Frame) Tick(viewport geometry.Vec2) bool {
	f.PollEffects()
	return f.RunLayout(viewport)
}

// WalkDrawOrder visits the committed tree in draw order (parent before
// child, children in attach order) with each node's screen-space rect.
// Returning false from fn skips the node's subtree.
func (f *Frame) WalkDrawOrder(fn func(id scene.NodeID, screen geometry.Rect) bool) {
	if !f.store.Alive(f.root) {
		return
	}
	f.walk(f.root, geometry.Vec2{}, fn)
}

func (f *Frame) walk(id scene.NodeID, base geometry.Vec2, fn func(scene.NodeID, geometry.Rect) bool) {
	local := scene.GetOr(f.store, id, layout.LocalPositionAttr, geometry.Vec2{})
	rect := scene.GetOr(f.store, id, layout.RectAttr, geometry.Rect{})
	origin := base.Add(local)
	if !fn(id, rect.Translate(origin)) {
		return
	}
	// Children are placed relative to this node's own corner.
	childBase := origin.Add(rect.Min)
	for _, child := range f.store.Children(id) {
		f.walk(child, childBase, fn)
	}
}
