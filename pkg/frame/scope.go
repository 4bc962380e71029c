package frame

import (
	"fmt"
	"time"

	"github.com/go-lilac/lilac/pkg/errors"
	"github.com/go-lilac/lilac/pkg/layout"
	"github.com/go-lilac/lilac/pkg/scene"
)

// Widget builds a subtree onto the node a scope wraps. Mount runs to
// completion synchronously; attaching a child widget mounts it depth-first
// before Attach returns.
type Widget interface {
	Mount(s *Scope)
}

// WidgetFunc adapts a function to a Widget.
type WidgetFunc func(s *Scope)

// Mount calls the function.
func (f WidgetFunc) Mount(s *Scope) {
	f(s)
}

// Scope wraps one scene node with a buffered write protocol. Attribute
// writes accumulate in the scope and are applied atomically by Flush; any
// read forces a flush first, so a mount function always observes its own
// writes. A flush that changed anything invalidates the node's layout
// cache.
//
// Scopes are not retained across ticks: effects receive a fresh scope per
// application.
type Scope struct {
	frame   *Frame
	id      scene.NodeID
	pending []func(st *scene.Store, id scene.NodeID) bool
}

// Frame returns the owning frame.
func (s *Scope) Frame() *Frame {
	return s.frame
}

// Node flushes pending writes and returns the wrapped node.
func (s *Scope) Node() scene.NodeID {
	s.Flush()
	return s.id
}

// Alive reports whether the wrapped node still exists.
func (s *Scope) Alive() bool {
	return s.frame.store.Alive(s.id)
}

// Children flushes pending writes and returns the node's children in attach
// order.
func (s *Scope) Children() []scene.NodeID {
	s.Flush()
	return s.frame.store.Children(s.id)
}

// Flush applies all buffered writes. If any write changed an attribute the
// node's layout cache and its ancestors' are invalidated.
func (s *Scope) Flush() {
	if len(s.pending) == 0 {
		return
	}
	writes := s.pending
	s.pending = nil
	changed := false
	for _, apply := range writes {
		if apply(s.frame.store, s.id) {
			changed = true
		}
	}
	if changed {
		layout.Invalidate(s.frame.store, s.id)
	}
}

// Set buffers an attribute write on the scope's node. The write always
// counts as a change.
func Set[T any](s *Scope, attr scene.Attr[T], value T) {
	s.pending = append(s.pending, func(st *scene.Store, id scene.NodeID) bool {
		return scene.Set(st, id, attr, value)
	})
}

// Update buffers a deduplicated attribute write: writing the value already
// stored is not a change and does not invalidate layout.
func Update[T comparable](s *Scope, attr scene.Attr[T], value T) {
	s.pending = append(s.pending, func(st *scene.Store, id scene.NodeID) bool {
		return scene.Update(st, id, attr, value)
	})
}

// Remove buffers an attribute removal.
func Remove[T any](s *Scope, attr scene.Attr[T]) {
	s.pending = append(s.pending, func(st *scene.Store, id scene.NodeID) bool {
		return scene.Remove(st, id, attr)
	})
}

// Attach spawns a child node, mounts w onto it depth-first, and returns the
// child. A panic inside the mount is recovered and reported; the child stays
// attached with whatever state was flushed before the panic.
func (s *Scope) Attach(w Widget) scene.NodeID {
	s.Flush()
	st := s.frame.store
	child := st.Spawn()
	if err := st.Attach(s.id, child); err != nil {
		errors.Report(&errors.Error{
			Op: "frame.Scope.Attach", Kind: errors.KindScene,
			Err: err, Node: s.id.String(),
		})
		st.Despawn(child)
		return scene.NodeID{}
	}
	layout.SetObserver(st, child, s.frame.observeLayout)
	childScope := &Scope{frame: s.frame, id: child}
	safeMount(w, childScope)
	childScope.Flush()
	layout.Invalidate(st, s.id)
	return child
}

// Detach removes child from this scope's node and despawns its subtree.
// Detaching a node that is not a child is a caller bug: the violation is
// reported and the call panics.
func (s *Scope) Detach(child scene.NodeID) {
	s.Flush()
	st := s.frame.store
	if err := st.Detach(s.id, child); err != nil {
		rerr := &errors.Error{
			Op: "frame.Scope.Detach", Kind: errors.KindScene,
			Err: err, Node: s.id.String(),
			StackTrace: errors.CaptureStack(),
		}
		errors.Report(rerr)
		panic(rerr)
	}
	layout.Invalidate(st, s.id)
}

func safeMount(w Widget, s *Scope) {
	defer func() {
		if r := recover(); r != nil {
			errors.ReportMountError(&errors.MountError{
				Widget:     fmt.Sprintf("%T", w),
				Node:       s.id.String(),
				Recovered:  r,
				StackTrace: errors.CaptureStack(),
				Timestamp:  time.Now(),
			})
		}
	}()
	w.Mount(s)
}
