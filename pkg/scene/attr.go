package scene

import "sync/atomic"

var nextAttrKey atomic.Uint64

// Attr is a typed attribute key. Each key declared with NewAttr addresses
// its own slot on every node; slots are independently settable with no
// ordering dependency between them.
//
// Keys are intended to be declared once as package-level variables by the
// package that owns the attribute's meaning, the way the layout package
// declares its rect and strategy attributes.
type Attr[T any] struct {
	key  uint64
	name string
}

// NewAttr declares a new attribute key. The name is used for diagnostics
// only.
func NewAttr[T any](name string) Attr[T] {
	return Attr[T]{key: nextAttrKey.Add(1), name: name}
}

// Name returns the diagnostic name of the attribute.
func (a Attr[T]) Name() string {
	return a.name
}

// Get reads an attribute slot. Absence is not an error: ok is false when the
// node is dead or the slot was never set.
func Get[T any](s *Store, id NodeID, attr Attr[T]) (T, bool) {
	var zero T
	slot := s.slot(id)
	if slot == nil {
		return zero, false
	}
	v, ok := slot.attrs[attr.key]
	if !ok {
		return zero, false
	}
	return v.(T), true
}

// GetOr reads an attribute slot, returning fallback when absent.
func GetOr[T any](s *Store, id NodeID, attr Attr[T], fallback T) T {
	if v, ok := Get(s, id, attr); ok {
		return v
	}
	return fallback
}

// Has reports whether the slot is set on a live node.
func Has[T any](s *Store, id NodeID, attr Attr[T]) bool {
	slot := s.slot(id)
	if slot == nil {
		return false
	}
	_, ok := slot.attrs[attr.key]
	return ok
}

// Set writes an attribute slot unconditionally. It reports whether the node
// was alive to receive the write.
func Set[T any](s *Store, id NodeID, attr Attr[T], value T) bool {
	slot := s.slot(id)
	if slot == nil {
		return false
	}
	if slot.attrs == nil {
		slot.attrs = make(map[uint64]any)
	}
	slot.attrs[attr.key] = value
	return true
}

// Update writes an attribute slot only if the new value differs from the
// stored one. The deduplicated write is what keeps the layout apply phase
// from cascading cache invalidation: a bit-identical write is a no-op.
// It reports whether the stored value changed.
func Update[T comparable](s *Store, id NodeID, attr Attr[T], value T) bool {
	slot := s.slot(id)
	if slot == nil {
		return false
	}
	if prev, ok := slot.attrs[attr.key]; ok && prev.(T) == value {
		return false
	}
	if slot.attrs == nil {
		slot.attrs = make(map[uint64]any)
	}
	slot.attrs[attr.key] = value
	return true
}

// Take reads and clears an attribute slot in one step.
func Take[T any](s *Store, id NodeID, attr Attr[T]) (T, bool) {
	v, ok := Get(s, id, attr)
	if ok {
		Remove(s, id, attr)
	}
	return v, ok
}

// Remove clears an attribute slot. Removing an absent slot is a no-op.
// It reports whether a value was removed.
func Remove[T any](s *Store, id NodeID, attr Attr[T]) bool {
	slot := s.slot(id)
	if slot == nil {
		return false
	}
	if _, ok := slot.attrs[attr.key]; !ok {
		return false
	}
	delete(slot.attrs, attr.key)
	return true
}
