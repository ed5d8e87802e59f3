package assistant

import (
	"sync"
	"time"
)

// Scheduler runs delayed callbacks with cancellation. Closing a session's
// scheduler cancels everything still pending, so no timer fires into a
// discarded conversation.
type Scheduler struct {
	mu     sync.Mutex
	nextID int
	timers map[int]*time.Timer
	closed bool
}

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{timers: make(map[int]*time.Timer)}
}

// Schedule runs fn after d. The returned cancel function is idempotent.
// Scheduling on a closed scheduler is a no-op.
func (s *Scheduler) Schedule(d time.Duration, fn func()) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return func() {}
	}

	id := s.nextID
	s.nextID++

	timer := time.AfterFunc(d, func() {
		s.mu.Lock()
		delete(s.timers, id)
		s.mu.Unlock()
		fn()
	})
	s.timers[id] = timer

	return func() {
		s.mu.Lock()
		if t, ok := s.timers[id]; ok {
			t.Stop()
			delete(s.timers, id)
		}
		s.mu.Unlock()
	}
}

// CancelAll stops every pending timer.
func (s *Scheduler) CancelAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}
}

// Close cancels pending timers and rejects future scheduling.
func (s *Scheduler) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}
}
