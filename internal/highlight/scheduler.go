package highlight

import (
	"sync"
	"time"

	"github.com/phyten/taglight/internal/config"
)

// Scheduler debounces highlight requests per editor and serializes every
// call into the engine.
type Scheduler struct {
	engine *Engine

	run sync.Mutex // held around engine calls

	mu       sync.Mutex
	settings config.HighlightSettings
	pending  map[string]*pending
	stopped  bool
}

type pending struct {
	gen     uint64
	timer   *time.Timer
	waiters []chan struct{}
}

func NewScheduler(engine *Engine) *Scheduler {
	return &Scheduler{
		engine:   engine,
		settings: engine.Settings(),
		pending:  make(map[string]*pending),
	}
}

func (s *Scheduler) delay() time.Duration {
	if s.settings.HighlightDelay <= 0 {
		return 0
	}
	return time.Duration(s.settings.HighlightDelay) * time.Millisecond
}

// Trigger schedules a pass for ed after the highlight delay, superseding any
// pass still waiting for the same editor. The returned channel is closed once
// a pass covering this request has finished, or immediately when the
// document's URI scheme is not highlighted.
func (s *Scheduler) Trigger(ed Editor) <-chan struct{} {
	done := make(chan struct{})
	if ed == nil {
		close(done)
		return done
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped || !s.settings.AcceptsURI(ed.Document().URI()) {
		close(done)
		return done
	}
	id := EditorID(ed)
	p := s.pending[id]
	if p == nil {
		p = &pending{}
		s.pending[id] = p
	}
	if p.timer != nil {
		p.timer.Stop()
	}
	p.gen++
	gen := p.gen
	p.waiters = append(p.waiters, done)
	p.timer = time.AfterFunc(s.delay(), func() { s.fire(id, gen, ed) })
	return done
}

func (s *Scheduler) fire(id string, gen uint64, ed Editor) {
	s.mu.Lock()
	p := s.pending[id]
	if p == nil || p.gen != gen {
		// superseded; the newer timer closes our waiters
		s.mu.Unlock()
		return
	}
	delete(s.pending, id)
	waiters := p.waiters
	s.mu.Unlock()

	s.Do(func(e *Engine) { e.Highlight(ed) })
	for _, w := range waiters {
		close(w)
	}
}

// Do runs fn with exclusive access to the engine.
func (s *Scheduler) Do(fn func(*Engine)) {
	s.run.Lock()
	defer s.run.Unlock()
	fn(s.engine)
}

// Reconfigure applies new settings to the engine and adopts their delay and
// URI schemes for later triggers.
func (s *Scheduler) Reconfigure(settings config.HighlightSettings) error {
	var (
		err     error
		current config.HighlightSettings
	)
	s.Do(func(e *Engine) {
		err = e.Reconfigure(settings)
		current = e.Settings()
	})
	s.mu.Lock()
	s.settings = current
	s.mu.Unlock()
	return err
}

// Pending reports how many editors are waiting for a pass.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Stop cancels every waiting pass and releases its waiters. Later triggers
// complete immediately without highlighting.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
	for id, p := range s.pending {
		if p.timer != nil {
			p.timer.Stop()
		}
		for _, w := range p.waiters {
			close(w)
		}
		delete(s.pending, id)
	}
}
