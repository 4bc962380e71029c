package effects

// StreamEffect applies a mutation for every item produced by a source,
// draining the source exhaustively before reporting not-ready. Two source
// shapes are supported: a poll function (for in-process state bridges) and a
// channel (for work completing on other goroutines).

// PollSource is a non-blocking pull source: it returns ok=false when no
// item is currently available. Poll sources never close; the effect runs
// for as long as its owner lives.
type PollSource[T any] func() (T, bool)

// StreamEffect drains a source each tick and applies a mutation per item.
type StreamEffect[Data, T any] struct {
	next   PollSource[T]
	ch     <-chan T
	apply  func(Data, T)
	closed bool
}

// NewStream wraps a poll source, such as a state bridge subscription.
func NewStream[Data, T any](source PollSource[T], apply func(Data, T)) *StreamEffect[Data, T] {
	return &StreamEffect[Data, T]{next: source, apply: apply}
}

// NewChanStream wraps a channel source. The effect completes when the
// channel is closed and drained.
func NewChanStream[Data, T any](ch <-chan T, apply func(Data, T)) *StreamEffect[Data, T] {
	return &StreamEffect[Data, T]{ch: ch, apply: apply}
}

// Poll drains every currently available item, then reports Pending (or Done
// for a closed channel source).
func (s *StreamEffect[Data, T]) Poll(data Data) Status {
	if s.closed {
		return StatusDone
	}
	applied := false
	for {
		v, ok, closed := s.pull()
		if closed {
			s.closed = true
			if applied {
				return StatusReady
			}
			return StatusDone
		}
		if !ok {
			if applied {
				return StatusReady
			}
			return StatusPending
		}
		if s.apply != nil {
			s.apply(data, v)
		}
		applied = true
	}
}

func (s *StreamEffect[Data, T]) pull() (v T, ok bool, closed bool) {
	if s.next != nil {
		v, ok = s.next()
		return v, ok, false
	}
	if s.ch == nil {
		return v, false, true
	}
	select {
	case item, open := <-s.ch:
		if !open {
			return v, false, true
		}
		return item, true, false
	default:
		return v, false, false
	}
}
