// Package scene implements the retained scene graph: a sparse arena of nodes
// addressed by generation-checked handles, each holding a dynamically typed
// set of attribute slots and an ordered list of children.
//
// Children are referenced by handle from the parent, and each node keeps a
// single parent back-edge for upward walks. There is no reference counting
// and no ownership cycle: the store exclusively owns all nodes and attribute
// storage.
package scene

import (
	"errors"
	"fmt"
)

// ErrNotAlive is returned by operations that target a despawned or stale
// node handle.
var ErrNotAlive = errors.New("scene: node is not alive")

// NodeID is an opaque generation-checked handle into the arena. The zero
// value is never a valid node.
type NodeID struct {
	index uint32
	gen   uint32
}

// IsValid reports whether the handle could refer to a node. It does not
// check liveness; use Store.Alive for that.
func (id NodeID) IsValid() bool {
	return id.gen != 0
}

func (id NodeID) String() string {
	return fmt.Sprintf("node %d#%d", id.index, id.gen)
}

type nodeSlot struct {
	gen      uint32
	alive    bool
	attrs    map[uint64]any
	children []NodeID
	parent   NodeID
}

// Store is the arena that owns every node. It is not safe for concurrent
// use: single-threaded access from the frame goroutine is the enforced
// discipline, not a runtime guard.
type Store struct {
	slots []nodeSlot
	free  []uint32
	count int
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

// Len returns the number of live nodes.
func (s *Store) Len() int {
	return s.count
}

// Spawn creates a node with no attributes and no children.
func (s *Store) Spawn() NodeID {
	var index uint32
	if n := len(s.free); n > 0 {
		index = s.free[n-1]
		s.free = s.free[:n-1]
	} else {
		s.slots = append(s.slots, nodeSlot{})
		index = uint32(len(s.slots) - 1)
	}
	slot := &s.slots[index]
	slot.gen++
	slot.alive = true
	slot.attrs = nil
	slot.children = nil
	slot.parent = NodeID{}
	s.count++
	return NodeID{index: index, gen: slot.gen}
}

func (s *Store) slot(id NodeID) *nodeSlot {
	if !id.IsValid() || int(id.index) >= len(s.slots) {
		return nil
	}
	slot := &s.slots[id.index]
	if !slot.alive || slot.gen != id.gen {
		return nil
	}
	return slot
}

// Alive reports whether the handle refers to a live node.
func (s *Store) Alive(id NodeID) bool {
	return s.slot(id) != nil
}

// Attach appends child to parent's ordered child list and sets the child's
// back-edge. Child order is significant: it determines both layout placement
// and draw order.
func (s *Store) Attach(parent, child NodeID) error {
	parentSlot := s.slot(parent)
	if parentSlot == nil {
		return fmt.Errorf("scene: attach to %v: %w", parent, ErrNotAlive)
	}
	childSlot := s.slot(child)
	if childSlot == nil {
		return fmt.Errorf("scene: attach of %v: %w", child, ErrNotAlive)
	}
	if childSlot.parent.IsValid() {
		return fmt.Errorf("scene: %v is already attached to %v", child, childSlot.parent)
	}
	parentSlot.children = append(parentSlot.children, child)
	childSlot.parent = parent
	return nil
}

// Despawn removes the node and recursively despawns all descendants. The
// handle generation is bumped so stale handles held by effects or caches
// miss on their next liveness check. Despawning a dead handle is a no-op.
func (s *Store) Despawn(id NodeID) {
	slot := s.slot(id)
	if slot == nil {
		return
	}
	if parentSlot := s.slot(slot.parent); parentSlot != nil {
		parentSlot.children = removeChild(parentSlot.children, id)
	}
	s.despawnSubtree(id)
}

func (s *Store) despawnSubtree(id NodeID) {
	slot := s.slot(id)
	if slot == nil {
		return
	}
	children := slot.children
	slot.alive = false
	slot.attrs = nil
	slot.children = nil
	slot.parent = NodeID{}
	s.count--
	s.free = append(s.free, id.index)
	for _, child := range children {
		s.despawnSubtree(child)
	}
}

func removeChild(children []NodeID, id NodeID) []NodeID {
	for i, c := range children {
		if c == id {
			return append(children[:i], children[i+1:]...)
		}
	}
	return children
}

// Detach removes child from parent's child list and despawns it recursively.
// It returns an error if child is not currently a child of parent.
func (s *Store) Detach(parent, child NodeID) error {
	parentSlot := s.slot(parent)
	if parentSlot == nil {
		return fmt.Errorf("scene: detach from %v: %w", parent, ErrNotAlive)
	}
	childSlot := s.slot(child)
	if childSlot == nil || childSlot.parent != parent {
		return fmt.Errorf("scene: %v is not a child of %v", child, parent)
	}
	parentSlot.children = removeChild(parentSlot.children, child)
	childSlot.parent = NodeID{}
	s.despawnSubtree(child)
	return nil
}

// Parent returns the node's parent back-edge. Roots and dead handles return
// ok=false.
func (s *Store) Parent(id NodeID) (NodeID, bool) {
	slot := s.slot(id)
	if slot == nil || !slot.parent.IsValid() {
		return NodeID{}, false
	}
	return slot.parent, true
}

// Children returns the node's ordered child list. The returned slice is
// owned by the store and must not be mutated.
func (s *Store) Children(id NodeID) []NodeID {
	slot := s.slot(id)
	if slot == nil {
		return nil
	}
	return slot.children
}

// WalkDepthFirst visits the subtree rooted at id in draw order:
// parent before child, children in attach order. The visitor returns false
// to stop the walk.
func (s *Store) WalkDepthFirst(id NodeID, visit func(NodeID) bool) bool {
	slot := s.slot(id)
	if slot == nil {
		return true
	}
	if !visit(id) {
		return false
	}
	for _, child := range slot.children {
		if !s.WalkDepthFirst(child, visit) {
			return false
		}
	}
	return true
}
