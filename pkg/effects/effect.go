// Package effects implements the cooperative task scheduler that drives
// per-node asynchronous work: timers, streams, and one-shot futures that
// mutate the scene graph over time.
//
// The scheduler is an explicit task queue polled once per tick on a single
// goroutine. It never blocks: a poll either applies ready work or reports
// pending. There is no preemption and no cancellation token; callers that
// need lifetime-scoped cancellation wrap their effect so a poll against a
// dead owner reports Done (see the frame package's scoped effects).
package effects

// Status is the three-state result of polling an effect.
type Status int

const (
	// StatusPending means nothing was ready this tick; poll again next tick.
	StatusPending Status = iota
	// StatusReady means one or more items were applied this tick and the
	// effect wants to be polled again.
	StatusReady
	// StatusDone means the effect is finished and must not be polled again.
	StatusDone
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusReady:
		return "ready"
	case StatusDone:
		return "done"
	default:
		return "unknown"
	}
}

// Effect is a unit of deferred work polled once per scheduler tick with
// mutable access to shared data (typically the frame).
//
// The scheduler is agnostic to what "ready" means; it only interprets the
// three-state Status.
type Effect[Data any] interface {
	Poll(data Data) Status
}

// Labeled is implemented by effects that carry a diagnostic label.
type Labeled interface {
	Label() string
}

// Func adapts a plain function to an Effect.
type Func[Data any] func(data Data) Status

// Poll calls the function.
func (f Func[Data]) Poll(data Data) Status {
	return f(data)
}

// WithLabel attaches a diagnostic label to an effect.
func WithLabel[Data any](effect Effect[Data], label string) Effect[Data] {
	return &labeledEffect[Data]{effect: effect, label: label}
}

type labeledEffect[Data any] struct {
	effect Effect[Data]
	label  string
}

func (l *labeledEffect[Data]) Poll(data Data) Status {
	return l.effect.Poll(data)
}

func (l *labeledEffect[Data]) Label() string {
	return l.label
}
