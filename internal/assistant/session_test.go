package assistant

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingSink captures session output and signals each delivery.
type recordingSink struct {
	messages  chan Message
	typing    chan bool
	navigated chan struct{}
}

func newRecordingSink() *recordingSink {
	return &recordingSink{
		messages:  make(chan Message, 32),
		typing:    make(chan bool, 32),
		navigated: make(chan struct{}, 1),
	}
}

func (s *recordingSink) MessageAdded(msg Message) { s.messages <- msg }
func (s *recordingSink) TypingChanged(t bool)     { s.typing <- t }
func (s *recordingSink) Navigate()                { s.navigated <- struct{}{} }

func (s *recordingSink) await(t *testing.T) Message {
	t.Helper()
	select {
	case msg := <-s.messages:
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for message")
		return Message{}
	}
}

func newTestSession(t *testing.T) (*Session, *recordingSink) {
	t.Helper()
	sink := newRecordingSink()
	session := NewSession("test", testMachine(), sink, nil, nil)
	t.Cleanup(session.Close)
	return session, sink
}

func TestSessionStartDeliversWelcomeThenQuestion(t *testing.T) {
	session, sink := newTestSession(t)
	session.Handle(Start{})

	assert.Equal(t, welcomeText, sink.await(t).Content)
	first := sink.await(t)
	assert.Equal(t, scriptedQuestions[0].Text, first.Content)

	state := session.State()
	assert.Equal(t, PhaseAsking, state.Phase)
	require.Len(t, state.Messages, 2)
}

func TestSessionTypingIndicatorWrapsEmitChain(t *testing.T) {
	session, sink := newTestSession(t)
	session.Handle(Start{})

	assert.True(t, <-sink.typing)
	sink.await(t)
	sink.await(t)

	select {
	case typing := <-sink.typing:
		assert.False(t, typing)
	case <-time.After(2 * time.Second):
		t.Fatal("typing indicator never cleared")
	}
	assert.False(t, session.State().Typing)
}

func TestSessionUserMessageSurfacesImmediately(t *testing.T) {
	session, sink := newTestSession(t)
	session.Handle(Start{})
	sink.await(t)
	sink.await(t)
	<-sink.typing
	<-sink.typing

	session.Handle(OptionSelected{Option: "תסמיני אלרגיה"})

	echo := sink.await(t)
	assert.Equal(t, RoleUser, echo.Role)
	assert.Equal(t, "תסמיני אלרגיה", echo.Content)

	next := sink.await(t)
	assert.Equal(t, RoleAssistant, next.Role)
	assert.Equal(t, scriptedQuestions[1].Text, next.Content)
}

func TestSessionRestartDropsPendingReplies(t *testing.T) {
	sink := newRecordingSink()
	machine := NewMachine(Config{WelcomeDelay: time.Hour, TypingDelay: time.Hour})
	session := NewSession("test", machine, sink, nil, nil)
	t.Cleanup(session.Close)

	session.Handle(Start{})
	session.Handle(Restart{})

	// The pre-restart welcome, an hour out, must never land; only the
	// replayed sequence may arrive.
	select {
	case <-sink.messages:
		t.Fatal("pending reply survived restart")
	case <-time.After(50 * time.Millisecond):
	}

	state := session.State()
	assert.Equal(t, PhaseAsking, state.Phase)
	assert.Empty(t, state.Messages)
}

func TestSessionNavigateOnBookingCTA(t *testing.T) {
	session, sink := newTestSession(t)
	session.Handle(Start{})
	sink.await(t) // welcome
	sink.await(t) // first question

	// Walk the script to the CTA.
	for _, opt := range []string{"תסמיני אלרגיה", "אף אחד מאלה", "מספר ימים"} {
		session.Handle(OptionSelected{Option: opt})
		sink.await(t) // user echo
		sink.await(t) // next assistant message
	}
	sink.await(t) // cta follows the recommendation

	session.Handle(CTASelected{Option: ctaOptionBook})
	sink.await(t) // user echo

	select {
	case <-sink.navigated:
	case <-time.After(2 * time.Second):
		t.Fatal("expected navigation signal")
	}
	assert.Equal(t, PhaseClosed, session.State().Phase)
}

func TestSessionClosedIgnoresEvents(t *testing.T) {
	sink := newRecordingSink()
	session := NewSession("test", testMachine(), sink, nil, nil)
	session.Close()

	session.Handle(Start{})
	select {
	case <-sink.messages:
		t.Fatal("closed session produced output")
	case <-time.After(50 * time.Millisecond):
	}
}
