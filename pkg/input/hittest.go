// Package input resolves pointer positions against the committed layout
// tree. Event dispatch lives with the embedding application; this package
// only answers "what is under this point".
package input

import (
	"github.com/go-lilac/lilac/pkg/geometry"
	"github.com/go-lilac/lilac/pkg/layout"
	"github.com/go-lilac/lilac/pkg/scene"
)

// Marker attributes for hit-test consumers. The hit test itself returns
// every node under the point; these let an embedder filter to the nodes it
// dispatches to.
var (
	// InteractiveAttr marks a node as a pointer target.
	InteractiveAttr = scene.NewAttr[bool]("interactive")
	// FocusableAttr marks a node as a keyboard focus target.
	FocusableAttr = scene.NewAttr[bool]("focusable")
)

// HitTest returns every node whose committed screen rect contains point,
// topmost first: deeper nodes and later-attached siblings precede their
// parents and earlier siblings. Subtrees are not pruned by the parent rect,
// so floated content outside its parent is still hit, unless the parent
// carries layout.ClipAttr.
func HitTest(st *scene.Store, root scene.NodeID, point geometry.Vec2) []scene.NodeID {
	var hits []scene.NodeID
	collect(st, root, geometry.Vec2{}, point, &hits)
	// Draw order is bottom-up visually; reverse for topmost first.
	for i, j := 0, len(hits)-1; i < j; i, j = i+1, j-1 {
		hits[i], hits[j] = hits[j], hits[i]
	}
	return hits
}

func collect(st *scene.Store, id scene.NodeID, base, point geometry.Vec2, hits *[]scene.NodeID) {
	if !st.Alive(id) {
		return
	}
	local := scene.GetOr(st, id, layout.LocalPositionAttr, geometry.Vec2{})
	rect := scene.GetOr(st, id, layout.RectAttr, geometry.Rect{})
	origin := base.Add(local)
	contains := rect.Translate(origin).Contains(point)
	if contains {
		*hits = append(*hits, id)
	}
	if !contains && scene.GetOr(st, id, layout.ClipAttr, false) {
		return
	}
	childBase := origin.Add(rect.Min)
	for _, child := range st.Children(id) {
		collect(st, child, childBase, point, hits)
	}
}

// Interactive filters hits to nodes marked interactive, preserving order.
func Interactive(st *scene.Store, hits []scene.NodeID) []scene.NodeID {
	var out []scene.NodeID
	for _, id := range hits {
		if scene.GetOr(st, id, InteractiveAttr, false) {
			out = append(out, id)
		}
	}
	return out
}

// Focusable filters hits to nodes marked focusable, preserving order.
func Focusable(st *scene.Store, hits []scene.NodeID) []scene.NodeID {
	var out []scene.NodeID
	for _, id := range hits {
		if scene.GetOr(st, id, FocusableAttr, false) {
			out = append(out, id)
		}
	}
	return out
}
