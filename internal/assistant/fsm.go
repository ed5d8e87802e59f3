// Package assistant drives the site's guided chat widget: a turn-based
// state machine over a fixed question script, with an emergency early exit
// and a booking call-to-action.
package assistant

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Phase is the conversation's position in the script.
type Phase string

const (
	PhaseIdle           Phase = "idle"
	PhaseAsking         Phase = "asking"
	PhaseEmergency      Phase = "emergency"
	PhaseRecommendation Phase = "recommendation"
	PhaseCTA            Phase = "cta"
	PhaseClosed         Phase = "closed"
)

// Role identifies the author of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one chat bubble. Options, when present, render as preset
// reply buttons.
type Message struct {
	ID      string   `json:"id"`
	Role    Role     `json:"role"`
	Content string   `json:"content"`
	Options []string `json:"options,omitempty"`
}

// State is the full conversation state for one session. Messages is
// append-only; restart replaces the whole state rather than editing it.
type State struct {
	Phase    Phase
	Step     int
	Typing   bool
	Messages []Message
}

// NewState returns the pre-open state.
func NewState() State {
	return State{Phase: PhaseIdle}
}

// Event is a user-driven input to the state machine.
type Event interface{ isEvent() }

// Start opens the conversation (widget opened with an empty log).
type Start struct{}

// OptionSelected answers the current scripted question.
type OptionSelected struct{ Option string }

// CTASelected answers the closing call-to-action.
type CTASelected struct{ Option string }

// FreeText is typed input, available from any phase.
type FreeText struct{ Text string }

// Restart clears the log and replays the welcome sequence.
type Restart struct{}

func (Start) isEvent()          {}
func (OptionSelected) isEvent() {}
func (CTASelected) isEvent()    {}
func (FreeText) isEvent()       {}
func (Restart) isEvent()        {}

// Emit is an assistant message that becomes visible After its delay. The
// typing indicator is shown while an emit is pending. Delays are relative
// to the previous emit in the same outcome.
type Emit struct {
	After   time.Duration
	Message Message
}

// Outcome is the result of applying one event: the next state, the
// scheduled assistant replies, and whether the UI should navigate to the
// booking section.
type Outcome struct {
	State    State
	Emits    []Emit
	Navigate bool
}

// Config tunes the machine's simulated-latency delays and the free-text
// responder.
type Config struct {
	WelcomeDelay time.Duration
	TypingDelay  time.Duration
	// FreeTextResponder produces the reply for typed input. Nil means the
	// single generic fallback, which is the widget's historical behavior.
	FreeTextResponder func(text string) string
}

// Machine applies events to conversation state. It is stateless and safe
// to share across sessions.
type Machine struct {
	cfg Config
}

// NewMachine creates a machine with the given config, applying defaults
// for zero delays.
func NewMachine(cfg Config) *Machine {
	if cfg.WelcomeDelay <= 0 {
		cfg.WelcomeDelay = 500 * time.Millisecond
	}
	if cfg.TypingDelay <= 0 {
		cfg.TypingDelay = 800 * time.Millisecond
	}
	return &Machine{cfg: cfg}
}

// Questions returns the scripted question count.
func (m *Machine) Questions() int { return len(scriptedQuestions) }

// Apply is a pure transition: (state, event) -> outcome. User messages are
// appended immediately; assistant messages arrive as emits.
func (m *Machine) Apply(state State, event Event) Outcome {
	switch ev := event.(type) {
	case Start:
		return m.start()
	case Restart:
		return m.start()
	case OptionSelected:
		return m.selectOption(state, ev.Option)
	case CTASelected:
		return m.selectCTA(state, ev.Option)
	case FreeText:
		return m.freeText(state, ev.Text)
	default:
		return Outcome{State: state}
	}
}

func (m *Machine) start() Outcome {
	state := State{Phase: PhaseAsking, Step: 0}
	return Outcome{
		State: state,
		Emits: []Emit{
			{After: m.cfg.WelcomeDelay, Message: Message{ID: "welcome", Role: RoleAssistant, Content: welcomeText}},
			m.questionEmit(0),
		},
	}
}

func (m *Machine) selectOption(state State, option string) Outcome {
	if state.Phase != PhaseAsking {
		return Outcome{State: state}
	}
	state.Messages = append(state.Messages, userMessage(option))

	if isEmergencyTrigger(option) {
		state.Phase = PhaseEmergency
		return Outcome{
			State: state,
			Emits: []Emit{{
				After:   m.cfg.TypingDelay,
				Message: Message{ID: "emergency", Role: RoleAssistant, Content: emergencyText},
			}},
		}
	}

	state.Step++
	if state.Step < len(scriptedQuestions) {
		return Outcome{State: state, Emits: []Emit{m.questionEmit(state.Step)}}
	}

	state.Phase = PhaseCTA
	return Outcome{
		State: state,
		Emits: []Emit{
			{After: m.cfg.TypingDelay, Message: Message{ID: "recommendation", Role: RoleAssistant, Content: recommendationText}},
			{After: m.cfg.TypingDelay, Message: Message{ID: "cta", Role: RoleAssistant, Content: ctaText, Options: ctaOptions}},
		},
	}
}

func (m *Machine) selectCTA(state State, option string) Outcome {
	if state.Phase != PhaseCTA {
		return Outcome{State: state}
	}
	state.Messages = append(state.Messages, userMessage(option))
	state.Phase = PhaseClosed

	if strings.Contains(option, "כן") {
		return Outcome{State: state, Navigate: true}
	}
	return Outcome{
		State: state,
		Emits: []Emit{{
			After:   m.cfg.TypingDelay,
			Message: Message{ID: "thankyou", Role: RoleAssistant, Content: thankYouText},
		}},
	}
}

func (m *Machine) freeText(state State, text string) Outcome {
	text = strings.TrimSpace(text)
	if text == "" {
		// The widget disables send on empty input.
		return Outcome{State: state}
	}
	state.Messages = append(state.Messages, userMessage(text))

	reply := fallbackText
	if m.cfg.FreeTextResponder != nil {
		reply = m.cfg.FreeTextResponder(text)
	}
	return Outcome{
		State: state,
		Emits: []Emit{{
			After:   m.cfg.TypingDelay,
			Message: Message{ID: fmt.Sprintf("r-%s", uuid.NewString()), Role: RoleAssistant, Content: reply},
		}},
	}
}

func (m *Machine) questionEmit(step int) Emit {
	q := scriptedQuestions[step]
	return Emit{
		After: m.cfg.TypingDelay,
		Message: Message{
			ID:      fmt.Sprintf("q-%d", step),
			Role:    RoleAssistant,
			Content: q.Text,
			Options: q.Options,
		},
	}
}

func userMessage(content string) Message {
	return Message{ID: fmt.Sprintf("u-%s", uuid.NewString()), Role: RoleUser, Content: content}
}

func isEmergencyTrigger(option string) bool {
	for _, trigger := range emergencyTriggers {
		if strings.Contains(option, trigger) {
			return true
		}
	}
	return false
}

// Deliver appends a scheduled assistant message to the state. The session
// calls it when an emit's delay elapses.
func Deliver(state State, msg Message) State {
	state.Messages = append(state.Messages, msg)
	return state
}
