package assistant

import (
	"sync"

	"github.com/bramliclinic/clinic-platform/internal/observability/metrics"
	"github.com/bramliclinic/clinic-platform/pkg/logging"
)

// Sink receives session output: new messages, typing indicator changes and
// the navigate-to-booking signal. The WebSocket handler implements it.
type Sink interface {
	MessageAdded(msg Message)
	TypingChanged(typing bool)
	Navigate()
}

// Session owns one conversation: it serializes events, applies the machine
// and runs the scheduled assistant replies. All transitions for a session
// happen under one mutex; user messages are surfaced immediately while
// assistant replies arrive on timer callbacks.
type Session struct {
	ID      string
	machine *Machine
	sink    Sink
	logger  *logging.Logger
	metrics *metrics.AssistantMetrics

	mu       sync.Mutex
	state    State
	sched    *Scheduler
	pending   int
	epoch     int
	closed    bool
	escalated bool
}

// NewSession creates a session around the shared machine.
func NewSession(id string, machine *Machine, sink Sink, logger *logging.Logger, m *metrics.AssistantMetrics) *Session {
	if logger == nil {
		logger = logging.Default()
	}
	return &Session{
		ID:      id,
		machine: machine,
		sink:    sink,
		logger:  logger,
		metrics: m,
		state:   NewState(),
		sched:   NewScheduler(),
	}
}

// State returns a snapshot of the conversation state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := s.state
	snapshot.Messages = append([]Message(nil), s.state.Messages...)
	return snapshot
}

// Handle applies one user event. Restart cancels any pending assistant
// replies before replaying the welcome sequence.
func (s *Session) Handle(event Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	if _, isRestart := event.(Restart); isRestart {
		s.sched.CancelAll()
		s.pending = 0
		s.epoch++
		s.escalated = false
	}

	before := len(s.state.Messages)
	outcome := s.machine.Apply(s.state, event)
	s.state = outcome.State
	if before > len(s.state.Messages) {
		// Restart wipes the log.
		before = len(s.state.Messages)
	}

	// Surface user messages appended by the transition right away.
	for _, msg := range s.state.Messages[before:] {
		if msg.Role == RoleUser {
			s.sink.MessageAdded(msg)
		}
	}

	if s.state.Phase == PhaseEmergency && !s.escalated {
		s.escalated = true
		s.metrics.ObserveEscalation()
		s.logger.Warn("assistant: conversation escalated to emergency", "session_id", s.ID)
	}

	if outcome.Navigate {
		s.metrics.ObserveSession("book")
		s.sink.Navigate()
	}

	s.scheduleEmitsLocked(outcome.Emits)
}

// scheduleEmitsLocked chains the outcome's emits: each delay starts when
// the previous message was delivered, and the typing indicator stays on
// until the chain drains.
func (s *Session) scheduleEmitsLocked(emits []Emit) {
	if len(emits) == 0 {
		return
	}
	if s.pending == 0 {
		s.state.Typing = true
		s.sink.TypingChanged(true)
	}
	s.pending += len(emits)
	s.scheduleNextLocked(emits)
}

func (s *Session) scheduleNextLocked(emits []Emit) {
	emit := emits[0]
	rest := emits[1:]
	epoch := s.epoch
	s.sched.Schedule(emit.After, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		// A timer that fired in the window before a restart cancelled it
		// must not deliver into the new conversation.
		if s.closed || epoch != s.epoch {
			return
		}
		s.state = Deliver(s.state, emit.Message)
		s.pending--
		s.sink.MessageAdded(emit.Message)
		if len(rest) > 0 {
			s.scheduleNextLocked(rest)
			return
		}
		if s.pending == 0 {
			s.state.Typing = false
			s.sink.TypingChanged(false)
		}
	})
}

// Close cancels pending replies and makes the session inert.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.sched.Close()
	switch s.state.Phase {
	case PhaseEmergency:
		s.metrics.ObserveSession("emergency")
	case PhaseClosed:
		s.metrics.ObserveSession("completed")
	default:
		s.metrics.ObserveSession("abandoned")
	}
}
