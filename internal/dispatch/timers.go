package dispatch

import (
	"sort"
	"sync"
	"time"
)

// ClockMode selects how armed timers measure time.
type ClockMode string

const (
	// ClockLogical measures timers on the scheduler's session clock, which
	// stops whenever the running predicate is false or the scheduler is paused.
	ClockLogical ClockMode = "logical"
	// ClockWall measures timers in real time. They keep counting while paused.
	ClockWall ClockMode = "wall"
)

// ParseClockMode converts a config string to a ClockMode.
// Unknown values fall back to ClockLogical.
func ParseClockMode(s string) ClockMode {
	if ClockMode(s) == ClockWall {
		return ClockWall
	}
	return ClockLogical
}

// timerSource holds armed timers until they are due.
type timerSource[S any] interface {
	arm(id TimerID, deadline, delay time.Duration, fn Reducer[S])
	cancel(id TimerID)
	due(session time.Duration) []Reducer[S]
	pending() int
	stop()
}

// logicalTimer is a timer on the session clock.
type logicalTimer[S any] struct {
	id       TimerID
	deadline time.Duration
	fn       Reducer[S]
}

type logicalTimers[S any] struct {
	armed []logicalTimer[S]
}

func (l *logicalTimers[S]) arm(id TimerID, deadline, _ time.Duration, fn Reducer[S]) {
	l.armed = append(l.armed, logicalTimer[S]{id: id, deadline: deadline, fn: fn})
}

func (l *logicalTimers[S]) cancel(id TimerID) {
	for i, t := range l.armed {
		if t.id == id {
			l.armed = append(l.armed[:i], l.armed[i+1:]...)
			return
		}
	}
}

func (l *logicalTimers[S]) due(session time.Duration) []Reducer[S] {
	var fired []logicalTimer[S]
	keep := l.armed[:0]
	for _, t := range l.armed {
		if t.deadline <= session {
			fired = append(fired, t)
		} else {
			keep = append(keep, t)
		}
	}
	l.armed = keep
	if len(fired) == 0 {
		return nil
	}

	sort.Slice(fired, func(i, j int) bool {
		if fired[i].deadline != fired[j].deadline {
			return fired[i].deadline < fired[j].deadline
		}
		return fired[i].id < fired[j].id
	})
	fns := make([]Reducer[S], len(fired))
	for i, t := range fired {
		fns[i] = t.fn
	}
	return fns
}

func (l *logicalTimers[S]) pending() int {
	return len(l.armed)
}

func (l *logicalTimers[S]) stop() {
	l.armed = nil
}

// wallTimer is a real-time timer whose callback posts into the mailbox.
type wallTimer[S any] struct {
	timer *time.Timer
	fn    Reducer[S]
}

// wallTimers fires timers on time.AfterFunc goroutines. Callbacks only post
// the timer id to the mailbox; the reducer runs on the scheduler's goroutine
// the next time due is called.
type wallTimers[S any] struct {
	mu       sync.Mutex
	armed    map[TimerID]wallTimer[S]
	mailbox  chan TimerID
	done     chan struct{}
	doneOnce sync.Once
}

func newWallTimers[S any](mailboxSize int) *wallTimers[S] {
	if mailboxSize < 1 {
		mailboxSize = 16
	}
	return &wallTimers[S]{
		armed:   make(map[TimerID]wallTimer[S]),
		mailbox: make(chan TimerID, mailboxSize),
		done:    make(chan struct{}),
	}
}

func (w *wallTimers[S]) arm(id TimerID, _, delay time.Duration, fn Reducer[S]) {
	w.mu.Lock()
	defer w.mu.Unlock()

	t := time.AfterFunc(delay, func() {
		select {
		case w.mailbox <- id:
		case <-w.done:
		}
	})
	w.armed[id] = wallTimer[S]{timer: t, fn: fn}
}

func (w *wallTimers[S]) cancel(id TimerID) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if t, ok := w.armed[id]; ok {
		t.timer.Stop()
		delete(w.armed, id)
	}
}

func (w *wallTimers[S]) due(time.Duration) []Reducer[S] {
	var fns []Reducer[S]
	for {
		select {
		case id := <-w.mailbox:
			w.mu.Lock()
			t, ok := w.armed[id]
			delete(w.armed, id)
			w.mu.Unlock()
			// a cancelled timer may still have posted its id
			if ok {
				fns = append(fns, t.fn)
			}
		default:
			return fns
		}
	}
}

func (w *wallTimers[S]) pending() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.armed)
}

func (w *wallTimers[S]) stop() {
	w.doneOnce.Do(func() {
		close(w.done)
	})
	w.mu.Lock()
	defer w.mu.Unlock()
	for id, t := range w.armed {
		t.timer.Stop()
		delete(w.armed, id)
	}
}
