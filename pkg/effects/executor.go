package effects

import (
	"github.com/charmbracelet/log"

	"github.com/go-lilac/lilac/pkg/errors"
)

// Executor is the cooperative task pool. Tasks are registered through Spawn
// and polled exactly once per Tick; a task returning StatusDone is dropped.
//
// The executor is single-threaded by design: Spawn and Tick must be called
// from the frame goroutine. Work arriving from other goroutines reaches the
// executor through channels consumed by stream and future effects, never by
// spawning from another goroutine.
type Executor[Data any] struct {
	tasks    []Effect[Data]
	incoming []Effect[Data]
	ticking  bool
}

// Spawner is the registration half of an executor, for callers that may
// spawn effects but not drive ticks.
type Spawner[Data any] interface {
	Spawn(effect Effect[Data])
}

// NewExecutor returns an empty executor.
func NewExecutor[Data any]() *Executor[Data] {
	return &Executor[Data]{}
}

// Spawn registers an effect. Effects spawned while a tick is in progress
// (for example from a widget mounted by another effect) are picked up and
// polled before that same tick returns.
func (e *Executor[Data]) Spawn(effect Effect[Data]) {
	if effect == nil {
		return
	}
	if e.ticking {
		e.incoming = append(e.incoming, effect)
		return
	}
	e.tasks = append(e.tasks, effect)
}

// Len returns the number of registered tasks, counting tasks spawned during
// an in-progress tick.
func (e *Executor[Data]) Len() int {
	return len(e.tasks) + len(e.incoming)
}

// Tick polls every registered effect exactly once, accumulating still
// pending tasks for the next tick. Tick never blocks; suspension happens
// only inside the polled effects at their own non-blocking receive points.
func (e *Executor[Data]) Tick(data Data) {
	e.ticking = true
	defer func() { e.ticking = false }()

	queue := e.tasks
	e.tasks = nil

	retained := make([]Effect[Data], 0, len(queue))
	for {
		if len(queue) == 0 {
			if len(e.incoming) == 0 {
				break
			}
			queue = e.incoming
			e.incoming = nil
		}
		task := queue[0]
		queue = queue[1:]

		status := e.safePoll(task, data)
		if status == StatusDone {
			if l, ok := task.(Labeled); ok {
				log.Debug("effect finished", "label", l.Label())
			}
			continue
		}
		retained = append(retained, task)
	}
	e.tasks = retained
}

// safePoll polls one task with panic isolation: a panicking effect is
// reported through the global handler and dropped, and the tick carries on
// with the remaining tasks. A frame must always complete.
func (e *Executor[Data]) safePoll(task Effect[Data], data Data) (status Status) {
	status = StatusDone
	op := "effects.Executor.Tick"
	if l, ok := task.(Labeled); ok && l.Label() != "" {
		op = op + " [" + l.Label() + "]"
	}
	defer errors.Recover(op)
	status = task.Poll(data)
	return status
}
