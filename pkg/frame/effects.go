package frame

import (
	"github.com/go-lilac/lilac/pkg/effects"
	"github.com/go-lilac/lilac/pkg/scene"
	"github.com/go-lilac/lilac/pkg/state"
)

// scopedEffect ties an effect's lifetime to a node: the first poll after the
// node is despawned reports Done without running the inner effect. There is
// no cancellation token; death of the owner is the cancellation. The stop
// hook runs exactly once when the effect completes, whichever way, so a
// stream effect releases its subscription even if its owner dies first.
type scopedEffect struct {
	node  scene.NodeID
	inner effects.Effect[*Frame]
	stop  func()
}

func (e *scopedEffect) Poll(f *Frame) effects.Status {
	if !f.store.Alive(e.node) {
		e.finish()
		return effects.StatusDone
	}
	// A panicking poll drops the task at the executor, so cleanup must run
	// before the panic propagates there.
	defer func() {
		if r := recover(); r != nil {
			e.finish()
			panic(r)
		}
	}()
	status := e.inner.Poll(f)
	if status == effects.StatusDone {
		e.finish()
	}
	return status
}

func (e *scopedEffect) finish() {
	if e.stop != nil {
		e.stop()
		e.stop = nil
	}
}

func (e *scopedEffect) Label() string {
	if l, ok := e.inner.(effects.Labeled); ok {
		return l.Label()
	}
	return ""
}

// SpawnEffect registers an effect scoped to this node's lifetime.
func (s *Scope) SpawnEffect(effect effects.Effect[*Frame]) {
	s.Flush()
	s.frame.executor.Spawn(&scopedEffect{node: s.id, inner: effect})
}

// SpawnScoped registers a node-scoped effect whose poll receives a fresh
// scope for the node; writes made through it are flushed after each poll.
func (s *Scope) SpawnScoped(poll func(s *Scope) effects.Status) {
	node := s.id
	s.SpawnEffect(effects.Func[*Frame](func(f *Frame) effects.Status {
		scope := &Scope{frame: f, id: node}
		status := poll(scope)
		scope.Flush()
		return status
	}))
}

// SpawnFuture registers a one-shot channel completion scoped to this node.
func SpawnFuture[T any](s *Scope, ch <-chan T, apply func(s *Scope, v T)) {
	node := s.Node()
	s.SpawnEffect(effects.NewFuture(ch, func(f *Frame, v T) {
		scope := &Scope{frame: f, id: node}
		apply(scope, v)
		scope.Flush()
	}))
}

// SpawnStream drives a state bridge subscription: the stream is drained once
// per tick and apply runs for every item, with writes flushed per tick. The
// effect ends when the node is despawned, and the subscription is closed so
// the source stops publishing to it.
func SpawnStream[T any](s *Scope, stream state.Stream[T], apply func(s *Scope, v T)) {
	node := s.Node()
	inner := effects.NewStream(effects.PollSource[T](stream.Next), func(f *Frame, v T) {
		scope := &Scope{frame: f, id: node}
		apply(scope, v)
		scope.Flush()
	})
	s.Flush()
	s.frame.executor.Spawn(&scopedEffect{
		node:  node,
		inner: inner,
		stop:  func() { state.Close(stream) },
	})
}

// SpawnChanStream is SpawnStream for a channel source; the effect also ends
// when the channel closes.
func SpawnChanStream[T any](s *Scope, ch <-chan T, apply func(s *Scope, v T)) {
	node := s.Node()
	s.SpawnEffect(effects.NewChanStream(ch, func(f *Frame, v T) {
		scope := &Scope{frame: f, id: node}
		apply(scope, v)
		scope.Flush()
	}))
}
