package notify

import (
	"sync"
	"time"
)

// scheduler runs deferred deliveries for bridges whose notification center
// has no scheduling of its own.
type scheduler struct {
	mu     sync.Mutex
	timers map[*time.Timer]func()
	closed bool
}

// schedule runs fire after d. If the scheduler stops first, cancel runs
// instead.
func (s *scheduler) schedule(d time.Duration, fire, cancel func()) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return errBridgeClosed
	}
	if s.timers == nil {
		s.timers = make(map[*time.Timer]func())
	}
	var t *time.Timer
	t = time.AfterFunc(d, func() {
		s.mu.Lock()
		_, ok := s.timers[t]
		delete(s.timers, t)
		s.mu.Unlock()
		if ok {
			fire()
		}
	})
	s.timers[t] = cancel
	return nil
}

// pending returns the number of deliveries not yet fired.
func (s *scheduler) pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// stop cancels every delivery that has not fired.
func (s *scheduler) stop() {
	s.mu.Lock()
	s.closed = true
	var cancels []func()
	for t, cancel := range s.timers {
		if t.Stop() {
			cancels = append(cancels, cancel)
		}
	}
	s.timers = nil
	s.mu.Unlock()

	for _, cancel := range cancels {
		cancel()
	}
}
