// Package dispatch sequences state reducers for a per-frame game loop.
//
// A Scheduler owns one state value and a FIFO queue of pending reducers.
// Every cycle it measures elapsed time, fires due timers into the queue,
// runs a pre-cycle hook, drains the queue and hands the result to a render
// callback. Reducers never block: anything they want to happen later is
// dispatched onto the queue or armed as a timer through Effects.
package dispatch

import "time"

// DefaultMaxDrain bounds the reducers run in a single cycle.
const DefaultMaxDrain = 1024

// TimerID identifies an armed timer. The zero value means "no timer".
type TimerID uint64

// Reducer produces the next state from the current one.
// It must not mutate s in place.
type Reducer[S any] func(s S, fx Effects[S]) S

// Effects lets a running reducer schedule further work.
type Effects[S any] interface {
	// Dispatch enqueues r to run later in the current drain.
	Dispatch(r Reducer[S])
	// After arms a timer that enqueues r once d has elapsed.
	After(d time.Duration, r Reducer[S]) TimerID
	// Cancel disarms a timer. Unknown or zero ids are ignored.
	Cancel(id TimerID)
}

// Options configure a Scheduler.
type Options[S any] struct {
	// Hook runs before the queue is drained, with the elapsed seconds of
	// this cycle. Reducers passed to dispatch join the queue.
	Hook func(s S, elapsed float64, dispatch func(Reducer[S]))

	// Render receives the state after each drained cycle.
	Render func(s S)

	// Running reports whether the session clock should advance.
	// Nil means always.
	Running func(s S) bool

	// Clock selects logical or wall-clock timers.
	Clock ClockMode

	// MaxDrain bounds reducers per cycle; the rest wait for the next cycle.
	MaxDrain int

	// MaxElapsed caps the elapsed time of one cycle. Zero means no cap.
	MaxElapsed time.Duration

	// MailboxSize is the buffer of the wall-clock timer mailbox.
	MailboxSize int
}

// Stats reports scheduler activity.
type Stats struct {
	Cycles      uint64
	Reducers    uint64
	TimersFired uint64
	// Overflows counts cycles that hit MaxDrain with work left over.
	Overflows uint64
}

type job[S any] struct {
	fn   Reducer[S]
	then []Reducer[S]
}

// Scheduler drives reducers over a single state value.
// It is not safe for concurrent use; wall-clock timers only communicate
// with it through their mailbox.
type Scheduler[S any] struct {
	state   S
	queue   []job[S]
	opts    Options[S]
	timers  timerSource[S]
	last    time.Time
	session time.Duration
	paused  bool
	closed  bool
	nextID  TimerID
	stats   Stats
}

// New creates a scheduler holding the initial state.
func New[S any](initial S, opts Options[S]) *Scheduler[S] {
	if opts.MaxDrain <= 0 {
		opts.MaxDrain = DefaultMaxDrain
	}
	if opts.Clock == "" {
		opts.Clock = ClockLogical
	}

	var timers timerSource[S]
	if opts.Clock == ClockWall {
		timers = newWallTimers[S](opts.MailboxSize)
	} else {
		timers = &logicalTimers[S]{}
	}

	return &Scheduler[S]{
		state:  initial,
		opts:   opts,
		timers: timers,
	}
}

// State returns the current state.
func (s *Scheduler[S]) State() S {
	return s.state
}

// Clock returns the timer mode in use.
func (s *Scheduler[S]) Clock() ClockMode {
	return s.opts.Clock
}

// Session returns the session clock used by logical timers.
func (s *Scheduler[S]) Session() time.Duration {
	return s.session
}

// Pending returns the number of queued reducers.
func (s *Scheduler[S]) Pending() int {
	return len(s.queue)
}

// ArmedTimers returns the number of timers that have not fired yet.
func (s *Scheduler[S]) ArmedTimers() int {
	return s.timers.pending()
}

// Stats returns scheduler counters.
func (s *Scheduler[S]) Stats() Stats {
	return s.stats
}

// Paused reports whether cycling is suspended.
func (s *Scheduler[S]) Paused() bool {
	return s.paused
}

// Schedule enqueues fn. The follow-ups in then are enqueued as soon as fn
// has run.
func (s *Scheduler[S]) Schedule(fn Reducer[S], then ...Reducer[S]) {
	if fn == nil {
		return
	}
	s.queue = append(s.queue, job[S]{fn: fn, then: then})
}

// Dispatch implements Effects.
func (s *Scheduler[S]) Dispatch(r Reducer[S]) {
	s.Schedule(r)
}

// After implements Effects.
func (s *Scheduler[S]) After(d time.Duration, r Reducer[S]) TimerID {
	if r == nil || s.closed {
		return 0
	}
	if d < 0 {
		d = 0
	}
	s.nextID++
	id := s.nextID
	s.timers.arm(id, s.session+d, d, r)
	return id
}

// Cancel implements Effects.
func (s *Scheduler[S]) Cancel(id TimerID) {
	if id == 0 {
		return
	}
	s.timers.cancel(id)
}

// Pause suspends cycling until Resume. Logical timers stop with it.
func (s *Scheduler[S]) Pause() {
	s.paused = true
	s.last = time.Time{}
}

// Resume restarts cycling. The next cycle reports zero elapsed time, so
// the pause is never replayed as a time jump.
func (s *Scheduler[S]) Resume() {
	s.paused = false
	s.last = time.Time{}
}

// Cycle runs one frame at the given refresh time. It returns false when
// the scheduler is paused or closed and nothing ran.
func (s *Scheduler[S]) Cycle(now time.Time) bool {
	if s.paused || s.closed {
		return false
	}

	var elapsed time.Duration
	if !s.last.IsZero() {
		elapsed = now.Sub(s.last)
		if elapsed < 0 {
			elapsed = 0
		}
		if s.opts.MaxElapsed > 0 && elapsed > s.opts.MaxElapsed {
			elapsed = s.opts.MaxElapsed
		}
	}
	s.last = now

	if s.opts.Running == nil || s.opts.Running(s.state) {
		s.session += elapsed
	}

	for _, fn := range s.timers.due(s.session) {
		s.stats.TimersFired++
		s.Schedule(fn)
	}

	if s.opts.Hook != nil {
		s.opts.Hook(s.state, elapsed.Seconds(), s.Dispatch)
	}

	s.Drain()
	s.stats.Cycles++

	if s.opts.Render != nil {
		s.opts.Render(s.state)
	}
	return true
}

// Drain runs queued reducers in order until the queue is empty or the
// per-cycle bound is reached. It returns the number of reducers run.
func (s *Scheduler[S]) Drain() int {
	n := 0
	for len(s.queue) > 0 {
		if n >= s.opts.MaxDrain {
			s.stats.Overflows++
			break
		}
		j := s.queue[0]
		s.queue[0] = job[S]{}
		s.queue = s.queue[1:]

		s.state = j.fn(s.state, s)
		for _, f := range j.then {
			s.Schedule(f)
		}
		n++
	}
	if len(s.queue) == 0 {
		s.queue = nil
	}
	s.stats.Reducers += uint64(n)
	return n
}

// Close stops all timers and drops queued work. Later cycles are no-ops.
func (s *Scheduler[S]) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.timers.stop()
	s.queue = nil
}
