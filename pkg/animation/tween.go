// Package animation drives time-based attribute changes through the effect
// scheduler. A tween is an ordinary effect: polled once per tick, it steps
// its interpolation by the wall-clock delta since the last poll and applies
// the new value, completing when the interpolation does.
package animation

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/go-lilac/lilac/pkg/effects"
	"github.com/go-lilac/lilac/pkg/frame"
)

// Now is the clock used to step animations. Tests substitute it to drive
// tweens deterministically.
var Now = time.Now

// TweenEffect interpolates from one value to another over a duration,
// applying each step. Spawn it through a scope to bind its lifetime to a
// node.
type TweenEffect struct {
	tween   *gween.Tween
	apply   func(f *frame.Frame, value float64)
	last    time.Time
	started bool
}

// Tween returns an effect interpolating from begin to end over duration
// with the given easing.
func Tween(begin, end float64, duration time.Duration, easing ease.TweenFunc, apply func(f *frame.Frame, value float64)) *TweenEffect {
	return &TweenEffect{
		tween: gween.New(float32(begin), float32(end), float32(duration.Seconds()), easing),
		apply: apply,
	}
}

// Poll advances the tween by the elapsed wall-clock time and applies the
// resulting value. The first poll applies the initial value with zero
// elapsed time.
func (t *TweenEffect) Poll(f *frame.Frame) effects.Status {
	now := Now()
	if !t.started {
		t.started = true
		t.last = now
	}
	dt := float32(now.Sub(t.last).Seconds())
	t.last = now

	value, finished := t.tween.Update(dt)
	if t.apply != nil {
		t.apply(f, float64(value))
	}
	if finished {
		return effects.StatusDone
	}
	return effects.StatusReady
}

// Ticker invokes fn with the elapsed time since the previous invocation,
// at most once per tick and no more often than interval. It never
// completes on its own; scope it to a node or keep a handle and Stop it.
type Ticker struct {
	interval time.Duration
	fn       func(f *frame.Frame, elapsed time.Duration)
	last     time.Time
	started  bool
	stopped  bool
}

// NewTicker returns a ticker invoking fn at most every interval.
func NewTicker(interval time.Duration, fn func(f *frame.Frame, elapsed time.Duration)) *Ticker {
	return &Ticker{interval: interval, fn: fn}
}

// Stop makes the next poll report Done.
func (t *Ticker) Stop() {
	t.stopped = true
}

// Poll fires the callback when at least interval has elapsed.
func (t *Ticker) Poll(f *frame.Frame) effects.Status {
	if t.stopped {
		return effects.StatusDone
	}
	now := Now()
	if !t.started {
		t.started = true
		t.last = now
		return effects.StatusPending
	}
	elapsed := now.Sub(t.last)
	if elapsed < t.interval {
		return effects.StatusPending
	}
	t.last = now
	if t.fn != nil {
		t.fn(f, elapsed)
	}
	return effects.StatusReady
}
