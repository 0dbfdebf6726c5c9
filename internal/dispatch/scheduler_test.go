package dispatch

import (
	"testing"
	"time"
)

type counter struct {
	Value   int
	Log     []string
	Running bool
}

func appendLog(name string) Reducer[counter] {
	return func(c counter, _ Effects[counter]) counter {
		log := make([]string, len(c.Log), len(c.Log)+1)
		copy(log, c.Log)
		c.Log = append(log, name)
		return c
	}
}

func add(n int) Reducer[counter] {
	return func(c counter, _ Effects[counter]) counter {
		c.Value += n
		return c
	}
}

var t0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestElapsedFirstCycleIsZero(t *testing.T) {
	var got []float64
	s := New(counter{}, Options[counter]{
		Hook: func(_ counter, elapsed float64, _ func(Reducer[counter])) {
			got = append(got, elapsed)
		},
	})

	s.Cycle(t0)
	s.Cycle(t0.Add(16 * time.Millisecond))

	if got[0] != 0 {
		t.Errorf("first elapsed = %v, expected 0", got[0])
	}
	if got[1] != 0.016 {
		t.Errorf("second elapsed = %v, expected 0.016", got[1])
	}
}

func TestDrainOrderAndFollowUps(t *testing.T) {
	s := New(counter{}, Options[counter]{})

	s.Schedule(appendLog("a"), appendLog("a-then-1"), appendLog("a-then-2"))
	s.Schedule(appendLog("b"))
	s.Schedule(func(c counter, fx Effects[counter]) counter {
		fx.Dispatch(appendLog("c-dispatched"))
		return appendLog("c")(c, fx)
	})

	s.Cycle(t0)

	expected := []string{"a", "b", "c", "a-then-1", "a-then-2", "c-dispatched"}
	got := s.State().Log
	if len(got) != len(expected) {
		t.Fatalf("log = %v, expected %v", got, expected)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("log[%d] = %q, expected %q", i, got[i], expected[i])
		}
	}
	if s.Pending() != 0 {
		t.Errorf("Pending() = %d, expected 0", s.Pending())
	}
}

func TestHookReducersRunSameCycle(t *testing.T) {
	rendered := -1
	s := New(counter{}, Options[counter]{
		Hook: func(_ counter, _ float64, dispatch func(Reducer[counter])) {
			dispatch(add(1))
		},
		Render: func(c counter) {
			rendered = c.Value
		},
	})

	s.Cycle(t0)
	if rendered != 1 {
		t.Errorf("rendered value = %d, expected 1", rendered)
	}
}

func TestPauseSuspendsCycling(t *testing.T) {
	var elapsed []float64
	s := New(counter{}, Options[counter]{
		Hook: func(_ counter, e float64, dispatch func(Reducer[counter])) {
			elapsed = append(elapsed, e)
			dispatch(add(1))
		},
	})

	s.Cycle(t0)
	s.Pause()
	s.Schedule(add(100))
	if s.Cycle(t0.Add(time.Second)) {
		t.Error("Cycle() while paused should report false")
	}
	if s.State().Value != 1 {
		t.Errorf("Value = %d while paused, expected 1 (no draining)", s.State().Value)
	}

	s.Resume()
	s.Cycle(t0.Add(10 * time.Second))
	if elapsed[len(elapsed)-1] != 0 {
		t.Errorf("elapsed after resume = %v, expected 0", elapsed[len(elapsed)-1])
	}
	if s.State().Value != 102 {
		t.Errorf("Value = %d after resume, expected 102", s.State().Value)
	}
}

func TestLogicalTimerFiresOnce(t *testing.T) {
	s := New(counter{}, Options[counter]{})

	s.Schedule(func(c counter, fx Effects[counter]) counter {
		fx.After(3*time.Second, add(10))
		return c
	})

	s.Cycle(t0)
	s.Cycle(t0.Add(2 * time.Second))
	if s.State().Value != 0 {
		t.Fatalf("timer fired early: Value = %d", s.State().Value)
	}

	s.Cycle(t0.Add(3 * time.Second))
	if s.State().Value != 10 {
		t.Errorf("Value = %d after deadline, expected 10", s.State().Value)
	}

	s.Cycle(t0.Add(10 * time.Second))
	if s.State().Value != 10 {
		t.Errorf("Value = %d, timer should fire exactly once", s.State().Value)
	}
	if s.ArmedTimers() != 0 {
		t.Errorf("ArmedTimers() = %d, expected 0", s.ArmedTimers())
	}
}

func TestLogicalTimerFreezesWhileNotRunning(t *testing.T) {
	s := New(counter{Running: true}, Options[counter]{
		Running: func(c counter) bool { return c.Running },
	})

	var id TimerID
	s.Schedule(func(c counter, fx Effects[counter]) counter {
		id = fx.After(time.Second, add(1))
		return c
	})
	s.Cycle(t0)
	if id == 0 {
		t.Fatal("After() returned the zero TimerID")
	}

	s.Schedule(func(c counter, _ Effects[counter]) counter {
		c.Running = false
		return c
	})
	s.Cycle(t0.Add(500 * time.Millisecond))
	s.Cycle(t0.Add(5 * time.Second))
	if s.State().Value != 0 {
		t.Fatalf("timer fired while the session clock was stopped")
	}

	s.Schedule(func(c counter, _ Effects[counter]) counter {
		c.Running = true
		return c
	})
	s.Cycle(t0.Add(5*time.Second + 100*time.Millisecond))
	s.Cycle(t0.Add(5*time.Second + 600*time.Millisecond))
	if s.State().Value != 1 {
		t.Errorf("Value = %d, expected timer to fire after 1s of running time", s.State().Value)
	}
}

func TestCancelTimer(t *testing.T) {
	s := New(counter{}, Options[counter]{})

	var id TimerID
	s.Schedule(func(c counter, fx Effects[counter]) counter {
		id = fx.After(time.Second, add(1))
		return c
	})
	s.Cycle(t0)
	s.Cancel(id)
	s.Cancel(0)
	s.Cycle(t0.Add(2 * time.Second))

	if s.State().Value != 0 {
		t.Errorf("cancelled timer fired: Value = %d", s.State().Value)
	}
}

func TestMaxDrainDefersRemainder(t *testing.T) {
	s := New(counter{}, Options[counter]{MaxDrain: 2})

	var loop Reducer[counter]
	loop = func(c counter, fx Effects[counter]) counter {
		fx.Dispatch(loop)
		c.Value++
		return c
	}
	s.Schedule(loop)

	s.Cycle(t0)
	if s.State().Value != 2 {
		t.Errorf("Value = %d, expected 2 reducers in one cycle", s.State().Value)
	}
	if s.Pending() != 1 {
		t.Errorf("Pending() = %d, expected 1 deferred reducer", s.Pending())
	}
	if s.Stats().Overflows != 1 {
		t.Errorf("Overflows = %d, expected 1", s.Stats().Overflows)
	}
}

func TestMaxElapsedCapsCycle(t *testing.T) {
	var got float64
	s := New(counter{}, Options[counter]{
		MaxElapsed: 100 * time.Millisecond,
		Hook: func(_ counter, e float64, _ func(Reducer[counter])) {
			got = e
		},
	})

	s.Cycle(t0)
	s.Cycle(t0.Add(5 * time.Second))
	if got != 0.1 {
		t.Errorf("elapsed = %v, expected 0.1", got)
	}
}

func TestWallTimerFires(t *testing.T) {
	s := New(counter{}, Options[counter]{Clock: ClockWall})
	defer s.Close()

	s.Schedule(func(c counter, fx Effects[counter]) counter {
		fx.After(time.Millisecond, add(7))
		return c
	})
	s.Cycle(time.Now())

	deadline := time.Now().Add(2 * time.Second)
	for s.State().Value == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
		s.Cycle(time.Now())
	}
	if s.State().Value != 7 {
		t.Errorf("Value = %d, expected wall timer to fire", s.State().Value)
	}
}

func TestWallTimerKeepsCountingWhilePaused(t *testing.T) {
	s := New(counter{}, Options[counter]{Clock: ClockWall})
	defer s.Close()

	s.Schedule(func(c counter, fx Effects[counter]) counter {
		fx.After(time.Millisecond, add(1))
		return c
	})
	s.Cycle(time.Now())
	s.Pause()
	time.Sleep(50 * time.Millisecond)
	s.Resume()

	s.Cycle(time.Now())
	if s.State().Value != 1 {
		t.Errorf("Value = %d, expected the timer to have fired during the pause", s.State().Value)
	}
}

func TestCloseStopsCycling(t *testing.T) {
	s := New(counter{}, Options[counter]{})
	s.Schedule(add(1))
	s.Close()

	if s.Cycle(t0) {
		t.Error("Cycle() after Close should report false")
	}
	if id := s.After(time.Second, add(1)); id != 0 {
		t.Errorf("After() on closed scheduler = %d, expected 0", id)
	}
}

func TestParseClockMode(t *testing.T) {
	tests := []struct {
		in       string
		expected ClockMode
	}{
		{"wall", ClockWall},
		{"logical", ClockLogical},
		{"", ClockLogical},
		{"bogus", ClockLogical},
	}
	for _, tc := range tests {
		if got := ParseClockMode(tc.in); got != tc.expected {
			t.Errorf("ParseClockMode(%q) = %q, expected %q", tc.in, got, tc.expected)
		}
	}
}
