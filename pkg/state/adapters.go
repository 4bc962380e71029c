package state

import "sync"

// Adapters compose Values without goroutines or buffering beyond the
// underlying cell's mailboxes: each one wraps the inner subscription's Next
// and the inner sink's Send synchronously, so a chain of adapters costs a
// handful of function calls per item.

// derived is the stream shape shared by all adapters: a conversion over an
// inner subscription. Close forwards to the inner stream, so detaching the
// outer end of a pipeline releases the cell mailbox at the bottom.
type derived[A, B any] struct {
	inner Stream[A]
	next  func() (B, bool)
}

func (d *derived[A, B]) Next() (B, bool) {
	return d.next()
}

func (d *derived[A, B]) Close() {
	Close(d.inner)
}

type mapped[A, B any] struct {
	inner Value[A]
	to    func(A) B
	from  func(B) A
}

// Map converts a Value between two representations with a total conversion
// in each direction.
func Map[A, B any](inner Value[A], to func(A) B, from func(B) A) Value[B] {
	return &mapped[A, B]{inner: inner, to: to, from: from}
}

func (m *mapped[A, B]) Subscribe() Stream[B] {
	in := m.inner.Subscribe()
	return &derived[A, B]{inner: in, next: func() (B, bool) {
		v, ok := in.Next()
		if !ok {
			var zero B
			return zero, false
		}
		return m.to(v), true
	}}
}

func (m *mapped[A, B]) Send(v B) {
	m.inner.Send(m.from(v))
}

// OwnedValue is a Value whose current state can also be read synchronously,
// which Transform and Project need for read-modify-write sends.
type OwnedValue[T any] interface {
	Value[T]
	Owned[T]
}

type transformed[A, B any] struct {
	inner  OwnedValue[A]
	to     func(A) B
	mutate func(*A, B)
}

// Transform converts like Map but writes back through a mutator applied to
// the current inner value, for states too large or too entangled to
// reconstruct from the converted form alone.
func Transform[A, B any](inner OwnedValue[A], to func(A) B, mutate func(*A, B)) Value[B] {
	return &transformed[A, B]{inner: inner, to: to, mutate: mutate}
}

func (t *transformed[A, B]) Subscribe() Stream[B] {
	in := t.inner.Subscribe()
	return &derived[A, B]{inner: in, next: func() (B, bool) {
		v, ok := in.Next()
		if !ok {
			var zero B
			return zero, false
		}
		return t.to(v), true
	}}
}

func (t *transformed[A, B]) Send(v B) {
	a := t.inner.Read()
	t.mutate(&a, v)
	t.inner.Send(a)
}

type projected[S, F any] struct {
	inner OwnedValue[S]
	get   func(S) F
	set   func(S, F) S
}

// Project focuses a Value on one field of a larger state: observed states
// are narrowed through get, and sends read the current state, update the
// field through set, and write the whole state back.
func Project[S, F any](inner OwnedValue[S], get func(S) F, set func(S, F) S) Value[F] {
	return &projected[S, F]{inner: inner, get: get, set: set}
}

func (p *projected[S, F]) Subscribe() Stream[F] {
	in := p.inner.Subscribe()
	return &derived[S, F]{inner: in, next: func() (F, bool) {
		v, ok := in.Next()
		if !ok {
			var zero F
			return zero, false
		}
		return p.get(v), true
	}}
}

func (p *projected[S, F]) Send(v F) {
	p.inner.Send(p.set(p.inner.Read(), v))
}

type filterMapped[A, B any] struct {
	inner  Value[A]
	to     func(A) (B, bool)
	from   func(B) (A, bool)
	onDrop func()
}

// FilterMap converts a Value with fallible conversions: observed values the
// forward conversion rejects vanish from the stream, and sends the inverse
// conversion rejects are discarded without reaching the inner sink. Both
// paths are silent; pass a FilterMapOption to observe drops.
func FilterMap[A, B any](inner Value[A], to func(A) (B, bool), from func(B) (A, bool), opts ...FilterMapOption) Value[B] {
	f := &filterMapped[A, B]{inner: inner, to: to, from: from}
	for _, opt := range opts {
		opt(&f.onDrop)
	}
	return f
}

// FilterMapOption configures a FilterMap adapter.
type FilterMapOption func(onDrop *func())

// OnDrop installs a hook invoked whenever either conversion rejects a value.
func OnDrop(hook func()) FilterMapOption {
	return func(onDrop *func()) { *onDrop = hook }
}

func (f *filterMapped[A, B]) Subscribe() Stream[B] {
	in := f.inner.Subscribe()
	return &derived[A, B]{inner: in, next: func() (B, bool) {
		for {
			v, ok := in.Next()
			if !ok {
				var zero B
				return zero, false
			}
			if out, ok := f.to(v); ok {
				return out, true
			}
			if f.onDrop != nil {
				f.onDrop()
			}
		}
	}}
}

func (f *filterMapped[A, B]) Send(v B) {
	in, ok := f.from(v)
	if !ok {
		if f.onDrop != nil {
			f.onDrop()
		}
		return
	}
	f.inner.Send(in)
}

type lowered[T any] struct {
	inner Value[Option[T]]
}

// LowerOption narrows an optional Value to its present case: absent values
// are dropped from the stream and every send is wrapped as present.
func LowerOption[T any](inner Value[Option[T]]) Value[T] {
	return &lowered[T]{inner: inner}
}

func (l *lowered[T]) Subscribe() Stream[T] {
	in := l.inner.Subscribe()
	return &derived[Option[T], T]{inner: in, next: func() (T, bool) {
		for {
			v, ok := in.Next()
			if !ok {
				var zero T
				return zero, false
			}
			if v.OK {
				return v.Value, true
			}
		}
	}}
}

func (l *lowered[T]) Send(v T) {
	l.inner.Send(Some(v))
}

type deduped[T comparable] struct {
	inner Value[T]
	mu    sync.Mutex
	seen  Option[T]
}

// Dedup suppresses consecutive duplicates in both directions. A stream item
// equal to the previously observed or previously sent value is skipped, and
// a send equal to that same value never reaches the inner sink. Observation
// and sending share one last-seen slot, so echoing a value back does not
// re-trigger either path.
func Dedup[T comparable](inner Value[T]) Value[T] {
	return &deduped[T]{inner: inner}
}

func (d *deduped[T]) Subscribe() Stream[T] {
	in := d.inner.Subscribe()
	return &derived[T, T]{inner: in, next: func() (T, bool) {
		for {
			v, ok := in.Next()
			if !ok {
				var zero T
				return zero, false
			}
			if d.record(v) {
				return v, true
			}
		}
	}}
}

func (d *deduped[T]) Send(v T) {
	if d.record(v) {
		d.inner.Send(v)
	}
}

// record marks v as seen, reporting false when it was already the last seen
// value.
func (d *deduped[T]) record(v T) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.seen.OK && d.seen.Value == v {
		return false
	}
	d.seen = Some(v)
	return true
}

type feedbackGuard[T comparable] struct {
	inner    Value[T]
	mu       sync.Mutex
	lastSent Option[T]
}

// PreventFeedback breaks write-echo loops: a stream item exactly equal to
// the most recently sent value is suppressed, since it is this adapter's own
// write coming back around. Unlike Dedup, observing a value never updates
// the guard; only self-echoes are filtered, an external write of a new value
// always comes through.
func PreventFeedback[T comparable](inner Value[T]) Value[T] {
	return &feedbackGuard[T]{inner: inner}
}

func (g *feedbackGuard[T]) Subscribe() Stream[T] {
	in := g.inner.Subscribe()
	return &derived[T, T]{inner: in, next: func() (T, bool) {
		for {
			v, ok := in.Next()
			if !ok {
				var zero T
				return zero, false
			}
			g.mu.Lock()
			echo := g.lastSent.OK && g.lastSent.Value == v
			g.mu.Unlock()
			if !echo {
				return v, true
			}
		}
	}}
}

func (g *feedbackGuard[T]) Send(v T) {
	g.mu.Lock()
	repeat := g.lastSent.OK && g.lastSent.Value == v
	g.lastSent = Some(v)
	g.mu.Unlock()
	// A send identical to the previous one is dropped too: forwarding it
	// would republish the value to every other subscriber of the cell.
	if repeat {
		return
	}
	g.inner.Send(v)
}

// Memo caches the most recent value observed on its own subscription so the
// current state can be read synchronously without being the cell's owner.
type Memo[T any] struct {
	inner  Value[T]
	stream Stream[T]
	mu     sync.Mutex
	last   Option[T]
}

// NewMemo wraps inner with a synchronous-read cache.
func NewMemo[T any](inner Value[T]) *Memo[T] {
	return &Memo[T]{inner: inner, stream: inner.Subscribe()}
}

// Get drains the memo's subscription and returns the latest value observed
// so far. ok is false until the first value arrives.
func (m *Memo[T]) Get() (T, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for {
		v, ok := m.stream.Next()
		if !ok {
			return m.last.Value, m.last.OK
		}
		m.last = Some(v)
	}
}

// Subscribe subscribes to the underlying value.
func (m *Memo[T]) Subscribe() Stream[T] {
	return m.inner.Subscribe()
}

// Send forwards to the underlying value.
func (m *Memo[T]) Send(v T) {
	m.inner.Send(v)
}

// Close releases the memo's own subscription. Get keeps returning the last
// cached value.
func (m *Memo[T]) Close() {
	Close(m.stream)
}
