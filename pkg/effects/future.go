package effects

// FutureEffect resolves once: the first value received from the channel is
// applied through the completion function, after which the effect is done.
// A channel closed without ever producing a value also completes the effect,
// without invoking the completion function.
type FutureEffect[Data, T any] struct {
	ch    <-chan T
	apply func(Data, T)
	done  bool
}

// NewFuture wraps a one-shot channel and a completion function.
func NewFuture[Data, T any](ch <-chan T, apply func(Data, T)) *FutureEffect[Data, T] {
	return &FutureEffect[Data, T]{ch: ch, apply: apply}
}

// Poll performs a non-blocking receive.
func (f *FutureEffect[Data, T]) Poll(data Data) Status {
	if f.done || f.ch == nil {
		return StatusDone
	}
	select {
	case v, ok := <-f.ch:
		f.done = true
		if ok && f.apply != nil {
			f.apply(data, v)
		}
		return StatusDone
	default:
		return StatusPending
	}
}
