package highlight

import (
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func waitClosed(t *testing.T, ch <-chan struct{}, d time.Duration) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(d):
		t.Fatalf("channel not closed after %s", d)
	}
}

func TestSchedulerCoalescesTriggers(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	s := settings(nil)
	s.HighlightDelay = 50
	e := newEngine(t, newFakeHost(), s, zap.New(core))
	sched := NewScheduler(e)
	defer sched.Stop()

	ed := newFakeEditor("file:///a.go", "// TODO one")
	var done []<-chan struct{}
	for i := 0; i < 5; i++ {
		done = append(done, sched.Trigger(ed))
	}
	for _, ch := range done {
		waitClosed(t, ch, 2*time.Second)
	}
	if n := logs.FilterMessage("highlight").Len(); n != 1 {
		t.Fatalf("passes=%d want 1", n)
	}
	if sched.Pending() != 0 {
		t.Fatalf("pending=%d want 0", sched.Pending())
	}
}

func TestSchedulerEditorsAreIndependent(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	s := settings(nil)
	s.HighlightDelay = 10
	e := newEngine(t, newFakeHost(), s, zap.New(core))
	sched := NewScheduler(e)
	defer sched.Stop()

	a := sched.Trigger(newFakeEditor("file:///a.go", "// TODO a"))
	b := sched.Trigger(newFakeEditor("file:///b.go", "// TODO b"))
	waitClosed(t, a, 2*time.Second)
	waitClosed(t, b, 2*time.Second)
	if n := logs.FilterMessage("highlight").Len(); n != 2 {
		t.Fatalf("passes=%d want 2", n)
	}
}

func TestSchedulerSkipsForeignSchemes(t *testing.T) {
	e := newEngine(t, newFakeHost(), settings(nil), nil)
	sched := NewScheduler(e)
	defer sched.Stop()
	ch := sched.Trigger(newFakeEditor("git:/a.go", "// TODO"))
	waitClosed(t, ch, 10*time.Millisecond)
	if sched.Pending() != 0 {
		t.Fatalf("foreign scheme should not be scheduled")
	}
}

func TestSchedulerStopReleasesWaiters(t *testing.T) {
	s := settings(nil)
	s.HighlightDelay = 60_000
	e := newEngine(t, newFakeHost(), s, nil)
	sched := NewScheduler(e)
	ed := newFakeEditor("file:///a.go", "// TODO")
	ch := sched.Trigger(ed)
	sched.Stop()
	waitClosed(t, ch, time.Second)
	if len(ed.current) != 0 {
		t.Fatalf("stopped scheduler highlighted the editor")
	}
	waitClosed(t, sched.Trigger(ed), 10*time.Millisecond)
}

func TestSchedulerReconfigure(t *testing.T) {
	e := newEngine(t, newFakeHost(), settings(nil), nil)
	sched := NewScheduler(e)
	defer sched.Stop()
	s := settings(nil)
	s.Schemes = []string{"git"}
	s.HighlightDelay = 1
	if err := sched.Reconfigure(s); err != nil {
		t.Fatalf("Reconfigure error: %v", err)
	}
	ed := newFakeEditor("git:/a.go", "// TODO")
	waitClosed(t, sched.Trigger(ed), 2*time.Second)
	if len(ed.current) == 0 {
		t.Fatalf("git documents should be highlighted after reconfigure")
	}
}
