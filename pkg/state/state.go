// Package state bridges external application state into the scene graph.
//
// The bridge is pull-based: a Stream is a non-blocking iterator drained by a
// stream effect once per tick, and adapters are synchronous wrappers around
// it. Nothing here spawns a goroutine. A subscription that is no longer
// wanted is detached with Close, which unregisters its mailbox from the
// cell; the frame's scoped stream effects close their subscription when the
// owning node dies. Senders on other goroutines are safe: the cell's
// mailboxes are mutex-guarded latest-value slots.
package state

import "sync"

// Stream is a non-blocking pull iterator over state changes. Next returns
// ok=false when no new value is available; it never blocks and never
// terminates.
type Stream[T any] interface {
	Next() (item T, ok bool)
}

// Sink accepts values flowing from the UI back into application state.
type Sink[T any] interface {
	Send(v T)
}

// Owned provides synchronous access to the current value.
type Owned[T any] interface {
	Read() T
}

// Source hands out independent change subscriptions. Each Subscribe returns
// a fresh stream primed with the current value, so a late subscriber still
// observes the present state.
type Source[T any] interface {
	Subscribe() Stream[T]
}

// Value is the duplex capability: state that can be both observed and
// written. All adapters in this package consume and produce Values.
type Value[T any] interface {
	Source[T]
	Sink[T]
}

// Closer is implemented by streams that hold a registration on their
// source. Closing is idempotent; a closed stream's Next reports no value.
type Closer interface {
	Close()
}

// Close detaches a stream from its source when the stream supports it.
// Adapter streams forward Close to the subscription they wrap, so closing
// the outer end of a pipeline releases the cell mailbox at the bottom.
func Close[T any](s Stream[T]) {
	if c, ok := s.(Closer); ok {
		c.Close()
	}
}

// StreamFunc adapts a plain function to a Stream.
type StreamFunc[T any] func() (T, bool)

// Next calls the function.
func (f StreamFunc[T]) Next() (T, bool) {
	return f()
}

// mailbox is a capacity-1 latest-value slot registered with its cell. A
// write overwrites any unread value; intermediate states may be skipped but
// the final state is always delivered.
type mailbox[T any] struct {
	cell   *Cell[T]
	mu     sync.Mutex
	v      T
	full   bool
	closed bool
}

func (m *mailbox[T]) put(v T) {
	m.mu.Lock()
	if !m.closed {
		m.v, m.full = v, true
	}
	m.mu.Unlock()
}

func (m *mailbox[T]) Next() (T, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.full {
		var zero T
		return zero, false
	}
	v := m.v
	var zero T
	m.v, m.full = zero, false
	return v, true
}

// Close unregisters the mailbox from its cell. Further Sends no longer reach
// it and Next reports no value.
func (m *mailbox[T]) Close() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	var zero T
	m.v, m.full, m.closed = zero, false, true
	m.mu.Unlock()
	m.cell.unsubscribe(m)
}

// Cell is the root mutable state container. It holds the current value and
// fans every write out to all subscriber mailboxes.
type Cell[T any] struct {
	mu    sync.Mutex
	value T
	subs  []*mailbox[T]
}

// NewCell returns a cell holding initial.
func NewCell[T any](initial T) *Cell[T] {
	return &Cell[T]{value: initial}
}

// Read returns the current value.
func (c *Cell[T]) Read() T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}

// Send stores v and publishes it to every subscriber.
func (c *Cell[T]) Send(v T) {
	c.mu.Lock()
	c.value = v
	subs := c.subs
	c.mu.Unlock()
	for _, m := range subs {
		m.put(v)
	}
}

// Update applies f to the current value under the lock and publishes the
// result.
func (c *Cell[T]) Update(f func(T) T) {
	c.mu.Lock()
	c.value = f(c.value)
	v := c.value
	subs := c.subs
	c.mu.Unlock()
	for _, m := range subs {
		m.put(v)
	}
}

// Subscribe returns a fresh stream primed with the current value. The
// stream implements Closer; closing it removes its mailbox from the cell.
func (c *Cell[T]) Subscribe() Stream[T] {
	m := &mailbox[T]{cell: c}
	c.mu.Lock()
	m.v, m.full = c.value, true
	c.subs = append(c.subs, m)
	c.mu.Unlock()
	return m
}

// Len reports the number of registered subscriptions.
func (c *Cell[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.subs)
}

// unsubscribe rebuilds the subscriber list instead of shifting in place:
// Send iterates a snapshot of the old slice outside the lock.
func (c *Cell[T]) unsubscribe(m *mailbox[T]) {
	c.mu.Lock()
	defer c.mu.Unlock()
	subs := make([]*mailbox[T], 0, len(c.subs))
	for _, sub := range c.subs {
		if sub != m {
			subs = append(subs, sub)
		}
	}
	c.subs = subs
}

// Option carries a value that may be absent, used by LowerOption and the
// deduplicating adapters' last-seen tracking.
type Option[T any] struct {
	Value T
	OK    bool
}

// Some returns a present option.
func Some[T any](v T) Option[T] {
	return Option[T]{Value: v, OK: true}
}

// None returns an absent option.
func None[T any]() Option[T] {
	return Option[T]{}
}
