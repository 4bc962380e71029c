package frame

import "github.com/go-lilac/lilac/pkg/scene"

// Context threads a typed value down the mount tree without a global
// singleton: a provider sets it on its node, and any descendant reads it by
// walking the parent chain. Lookups follow the tree as it is, so a subtree
// moved under a different provider sees the new value.
type Context[T any] struct {
	attr scene.Attr[T]
}

// NewContext declares a context key. Like attribute keys, contexts are
// package-level variables declared by the package that owns their meaning.
func NewContext[T any](name string) Context[T] {
	return Context[T]{attr: scene.NewAttr[T]("ctx:" + name)}
}

// Provide makes value visible to this node and its descendants.
func (c Context[T]) Provide(s *Scope, value T) {
	Set(s, c.attr, value)
}

// Get returns the nearest provided value at or above the scope's node.
func (c Context[T]) Get(s *Scope) (T, bool) {
	st := s.frame.store
	id := s.Node()
	for st.Alive(id) {
		if v, ok := scene.Get(st, id, c.attr); ok {
			return v, true
		}
		parent, ok := st.Parent(id)
		if !ok {
			break
		}
		id = parent
	}
	var zero T
	return zero, false
}

// GetOr returns the nearest provided value or fallback.
func (c Context[T]) GetOr(s *Scope, fallback T) T {
	if v, ok := c.Get(s); ok {
		return v
	}
	return fallback
}
