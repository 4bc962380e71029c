package state

import (
	"strconv"
	"sync"
	"testing"
)

func drain[T any](s Stream[T]) []T {
	var out []T
	for {
		v, ok := s.Next()
		if !ok {
			return out
		}
		out = append(out, v)
	}
}

func TestCellSubscribePrimedWithCurrent(t *testing.T) {
	c := NewCell(42)
	s := c.Subscribe()

	v, ok := s.Next()
	if !ok || v != 42 {
		t.Fatalf("Next = %d, %v; want 42, true", v, ok)
	}
	if _, ok := s.Next(); ok {
		t.Fatal("drained stream should report no value")
	}
}

func TestCellLatestValueWins(t *testing.T) {
	c := NewCell(0)
	s := c.Subscribe()
	drain(s)

	c.Send(1)
	c.Send(2)
	c.Send(3)

	got := drain(s)
	if len(got) != 1 || got[0] != 3 {
		t.Fatalf("drain = %v, want [3] (intermediate values are lossy)", got)
	}
}

func TestCellIndependentSubscribers(t *testing.T) {
	c := NewCell(0)
	a := c.Subscribe()
	drain(a)
	c.Send(7)
	b := c.Subscribe()

	if got := drain(a); len(got) != 1 || got[0] != 7 {
		t.Fatalf("a = %v, want [7]", got)
	}
	if got := drain(b); len(got) != 1 || got[0] != 7 {
		t.Fatalf("b = %v, want [7] (primed with current)", got)
	}
}

func TestCellUpdate(t *testing.T) {
	c := NewCell(10)
	s := c.Subscribe()
	drain(s)

	c.Update(func(v int) int { return v + 5 })
	if got := c.Read(); got != 15 {
		t.Fatalf("Read = %d, want 15", got)
	}
	if got := drain(s); len(got) != 1 || got[0] != 15 {
		t.Fatalf("drain = %v, want [15]", got)
	}
}

func TestCellConcurrentSenders(t *testing.T) {
	c := NewCell(0)
	s := c.Subscribe()
	drain(s)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(v int) {
			defer wg.Done()
			c.Send(v)
		}(i)
	}
	wg.Wait()

	if got := drain(s); len(got) != 1 {
		t.Fatalf("drain = %v, want exactly one (latest) value", got)
	}
}

func TestCellCloseUnsubscribes(t *testing.T) {
	c := NewCell(1)
	s := c.Subscribe()
	if c.Len() != 1 {
		t.Fatalf("Len = %d, want 1", c.Len())
	}

	Close(s)
	if c.Len() != 0 {
		t.Fatalf("Len after close = %d, want 0", c.Len())
	}

	c.Send(2)
	if _, ok := s.Next(); ok {
		t.Fatal("closed stream must not receive values")
	}

	// Closing twice is a no-op.
	Close(s)
	if c.Len() != 0 {
		t.Fatalf("Len after double close = %d", c.Len())
	}
}

func TestCellAbandonedSubscriptionsReclaimed(t *testing.T) {
	// A long-lived cell must not accumulate mailboxes for subscribers that
	// went away.
	c := NewCell(0)
	for i := 0; i < 1000; i++ {
		Close(c.Subscribe())
	}
	if c.Len() != 0 {
		t.Fatalf("cell retains %d mailboxes, want 0", c.Len())
	}
}

func TestAdapterCloseReachesCell(t *testing.T) {
	c := NewCell(1)
	pipeline := Dedup[string](Map(c, strconv.Itoa, func(s string) int {
		v, _ := strconv.Atoi(s)
		return v
	}))

	s := pipeline.Subscribe()
	if c.Len() != 1 {
		t.Fatalf("Len = %d, want 1", c.Len())
	}

	Close(s)
	if c.Len() != 0 {
		t.Fatalf("closing the outer stream left %d mailboxes on the cell", c.Len())
	}
}

func TestMapRoundTrip(t *testing.T) {
	c := NewCell(5)
	m := Map(c, strconv.Itoa, func(s string) int {
		v, _ := strconv.Atoi(s)
		return v
	})

	s := m.Subscribe()
	if v, ok := s.Next(); !ok || v != "5" {
		t.Fatalf("Next = %q, %v; want \"5\"", v, ok)
	}

	m.Send("12")
	if got := c.Read(); got != 12 {
		t.Fatalf("inner = %d, want 12", got)
	}
	if v, ok := s.Next(); !ok || v != "12" {
		t.Fatalf("Next after send = %q, %v", v, ok)
	}
}

type settings struct {
	Volume int
	Muted  bool
}

func TestProjectFocusesField(t *testing.T) {
	c := NewCell(settings{Volume: 3})
	vol := Project[settings, int](c,
		func(s settings) int { return s.Volume },
		func(s settings, v int) settings { s.Volume = v; return s },
	)

	s := vol.Subscribe()
	if v, ok := s.Next(); !ok || v != 3 {
		t.Fatalf("Next = %d, %v; want 3", v, ok)
	}

	c.Send(settings{Volume: 3, Muted: true})
	vol.Send(9)

	got := c.Read()
	if got.Volume != 9 || !got.Muted {
		t.Fatalf("inner = %+v, want Volume=9 Muted=true", got)
	}
}

func TestTransformMutatesInPlace(t *testing.T) {
	c := NewCell(settings{Volume: 2, Muted: true})
	vol := Transform(c,
		func(s settings) int { return s.Volume },
		func(s *settings, v int) { s.Volume = v },
	)

	s := vol.Subscribe()
	if v, ok := s.Next(); !ok || v != 2 {
		t.Fatalf("Next = %d, %v; want 2", v, ok)
	}

	vol.Send(7)
	got := c.Read()
	if got.Volume != 7 || !got.Muted {
		t.Fatalf("inner = %+v, want Volume=7 with Muted preserved", got)
	}
}

func TestFilterMapDropsBothWays(t *testing.T) {
	c := NewCell("10")
	drops := 0
	nums := FilterMap(c,
		func(s string) (int, bool) {
			v, err := strconv.Atoi(s)
			return v, err == nil
		},
		func(v int) (string, bool) {
			if v < 0 {
				return "", false
			}
			return strconv.Itoa(v), true
		},
		OnDrop(func() { drops++ }),
	)

	s := nums.Subscribe()
	if v, ok := s.Next(); !ok || v != 10 {
		t.Fatalf("Next = %d, %v; want 10", v, ok)
	}

	c.Send("not a number")
	if _, ok := s.Next(); ok {
		t.Fatal("unparseable value should be dropped from the stream")
	}
	if drops != 1 {
		t.Fatalf("drops = %d, want 1", drops)
	}

	nums.Send(-1)
	if got := c.Read(); got != "not a number" {
		t.Fatalf("rejected send reached inner: %q", got)
	}
	if drops != 2 {
		t.Fatalf("drops = %d, want 2", drops)
	}

	nums.Send(33)
	if got := c.Read(); got != "33" {
		t.Fatalf("inner = %q, want \"33\"", got)
	}
}

func TestLowerOption(t *testing.T) {
	c := NewCell(None[int]())
	lowered := LowerOption(c)

	s := lowered.Subscribe()
	if _, ok := s.Next(); ok {
		t.Fatal("absent initial value should be dropped")
	}

	c.Send(Some(4))
	if v, ok := s.Next(); !ok || v != 4 {
		t.Fatalf("Next = %d, %v; want 4", v, ok)
	}

	c.Send(None[int]())
	if _, ok := s.Next(); ok {
		t.Fatal("absent value should be dropped")
	}

	lowered.Send(8)
	if got := c.Read(); !got.OK || got.Value != 8 {
		t.Fatalf("inner = %+v, want Some(8)", got)
	}
}

func TestDedupSuppressesEcho(t *testing.T) {
	// The dedup law: a value observed from the stream and immediately
	// sent back does not re-enter the cell.
	c := NewCell(5)
	d := Dedup[int](c)
	raw := c.Subscribe()
	drain(raw)

	s := d.Subscribe()
	v, ok := s.Next()
	if !ok || v != 5 {
		t.Fatalf("Next = %d, %v; want 5", v, ok)
	}

	d.Send(v)
	if got := drain(raw); len(got) != 0 {
		t.Fatalf("echo reached the cell: %v", got)
	}

	d.Send(6)
	if got := drain(raw); len(got) != 1 || got[0] != 6 {
		t.Fatalf("new value lost: %v", got)
	}
}

func TestDedupSuppressesConsecutiveObserved(t *testing.T) {
	c := NewCell(1)
	d := Dedup[int](c)
	s := d.Subscribe()
	drain(s)

	// The cell is lossy per subscriber, so force distinct deliveries.
	c.Send(1)
	if got := drain(s); len(got) != 0 {
		t.Fatalf("repeated observed value delivered: %v", got)
	}
	c.Send(2)
	if got := drain(s); len(got) != 1 || got[0] != 2 {
		t.Fatalf("distinct observed value lost: %v", got)
	}
}

func TestPreventFeedbackLaw(t *testing.T) {
	// The feedback law: sending a value does not cause that same value
	// to come back around on this adapter's own stream.
	c := NewCell(0)
	pf := PreventFeedback[int](c)
	s := pf.Subscribe()
	drain(s)

	pf.Send(5)
	if got := c.Read(); got != 5 {
		t.Fatalf("send did not reach inner: %d", got)
	}
	if got := drain(s); len(got) != 0 {
		t.Fatalf("self-echo delivered: %v", got)
	}

	// An external write of a different value still flows.
	c.Send(9)
	if got := drain(s); len(got) != 1 || got[0] != 9 {
		t.Fatalf("external write lost: %v", got)
	}
}

// countingValue records how many sends reach the wrapped value.
type countingValue[T any] struct {
	Value[T]
	sends int
}

func (c *countingValue[T]) Send(v T) {
	c.sends++
	c.Value.Send(v)
}

func TestPreventFeedbackDropsRepeatedSend(t *testing.T) {
	inner := &countingValue[int]{Value: NewCell(0)}
	pf := PreventFeedback[int](inner)

	pf.Send(5)
	pf.Send(5)
	if inner.sends != 1 {
		t.Fatalf("inner received %d sends, want 1 (repeat suppressed)", inner.sends)
	}

	pf.Send(6)
	if inner.sends != 2 {
		t.Fatalf("inner received %d sends, want 2 (new value forwarded)", inner.sends)
	}
}

func TestMemoCachesLatest(t *testing.T) {
	c := NewCell(3)
	m := NewMemo[int](c)

	if v, ok := m.Get(); !ok || v != 3 {
		t.Fatalf("Get = %d, %v; want 3 (primed)", v, ok)
	}

	c.Send(11)
	if v, ok := m.Get(); !ok || v != 11 {
		t.Fatalf("Get = %d, %v; want 11", v, ok)
	}

	// Get without new values keeps returning the cached one.
	if v, ok := m.Get(); !ok || v != 11 {
		t.Fatalf("repeated Get = %d, %v; want 11", v, ok)
	}
}
