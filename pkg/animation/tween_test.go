package animation

import (
	"testing"
	"time"

	"github.com/tanema/gween/ease"

	"github.com/go-lilac/lilac/pkg/effects"
	"github.com/go-lilac/lilac/pkg/frame"
)

// fakeClock substitutes Now so polls advance by exactly what the test says.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) install(t *testing.T) {
	t.Helper()
	c.now = time.Unix(0, 0)
	Now = func() time.Time { return c.now }
	t.Cleanup(func() { Now = time.Now })
}

func (c *fakeClock) advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func TestTweenStepsByElapsedTime(t *testing.T) {
	var clock fakeClock
	clock.install(t)

	f := frame.New()
	var values []float64
	tw := Tween(0, 100, time.Second, ease.Linear, func(_ *frame.Frame, v float64) {
		values = append(values, v)
	})

	// First poll applies the initial value with zero elapsed time.
	if got := tw.Poll(f); got != effects.StatusReady {
		t.Fatalf("first poll = %v, want Ready", got)
	}
	if len(values) != 1 || values[0] != 0 {
		t.Fatalf("values = %v, want [0]", values)
	}

	clock.advance(500 * time.Millisecond)
	if got := tw.Poll(f); got != effects.StatusReady {
		t.Fatalf("mid poll = %v, want Ready", got)
	}
	if got := values[len(values)-1]; got < 49 || got > 51 {
		t.Fatalf("halfway value = %v, want ~50", got)
	}

	clock.advance(600 * time.Millisecond)
	if got := tw.Poll(f); got != effects.StatusDone {
		t.Fatalf("final poll = %v, want Done", got)
	}
	if got := values[len(values)-1]; got != 100 {
		t.Fatalf("final value = %v, want 100", got)
	}
}

func TestTweenUnaffectedByWallPauses(t *testing.T) {
	var clock fakeClock
	clock.install(t)

	f := frame.New()
	var last float64
	tw := Tween(0, 10, time.Second, ease.Linear, func(_ *frame.Frame, v float64) {
		last = v
	})

	tw.Poll(f)
	// Polling twice at the same instant must not advance the value.
	tw.Poll(f)
	if last != 0 {
		t.Fatalf("value advanced without elapsed time: %v", last)
	}
}

func TestTickerHonorsInterval(t *testing.T) {
	var clock fakeClock
	clock.install(t)

	f := frame.New()
	fired := 0
	var lastElapsed time.Duration
	tk := NewTicker(100*time.Millisecond, func(_ *frame.Frame, elapsed time.Duration) {
		fired++
		lastElapsed = elapsed
	})

	if got := tk.Poll(f); got != effects.StatusPending {
		t.Fatalf("first poll = %v, want Pending", got)
	}

	clock.advance(50 * time.Millisecond)
	if got := tk.Poll(f); got != effects.StatusPending || fired != 0 {
		t.Fatalf("early poll fired (status %v, fired %d)", got, fired)
	}

	clock.advance(70 * time.Millisecond)
	if got := tk.Poll(f); got != effects.StatusReady || fired != 1 {
		t.Fatalf("due poll: status %v, fired %d", got, fired)
	}
	if lastElapsed != 120*time.Millisecond {
		t.Fatalf("elapsed = %v, want 120ms", lastElapsed)
	}
}

func TestTickerStop(t *testing.T) {
	var clock fakeClock
	clock.install(t)

	f := frame.New()
	tk := NewTicker(time.Millisecond, func(*frame.Frame, time.Duration) {
		t.Fatal("stopped ticker must not fire")
	})
	tk.Poll(f)
	tk.Stop()

	clock.advance(time.Second)
	if got := tk.Poll(f); got != effects.StatusDone {
		t.Fatalf("poll after Stop = %v, want Done", got)
	}
}
