package assistant

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMachine() *Machine {
	return NewMachine(Config{WelcomeDelay: time.Millisecond, TypingDelay: time.Millisecond})
}

// applyAll runs an event and delivers every emitted assistant message, so
// tests can follow the conversation without a scheduler.
func applyAll(m *Machine, state State, event Event) (State, Outcome) {
	outcome := m.Apply(state, event)
	state = outcome.State
	for _, emit := range outcome.Emits {
		state = Deliver(state, emit.Message)
	}
	return state, outcome
}

func TestStartReplaysWelcomeAndFirstQuestion(t *testing.T) {
	m := testMachine()
	state, outcome := applyAll(m, NewState(), Start{})

	assert.Equal(t, PhaseAsking, state.Phase)
	assert.Equal(t, 0, state.Step)
	require.Len(t, outcome.Emits, 2)
	assert.Equal(t, welcomeText, outcome.Emits[0].Message.Content)
	assert.Equal(t, scriptedQuestions[0].Text, outcome.Emits[1].Message.Content)
	assert.Equal(t, scriptedQuestions[0].Options, outcome.Emits[1].Message.Options)
}

func TestEmergencyOptionShortCircuitsAtAnyStep(t *testing.T) {
	m := testMachine()
	for step := 0; step < m.Questions(); step++ {
		state, _ := applyAll(m, NewState(), Start{})
		for i := 0; i < step; i++ {
			state, _ = applyAll(m, state, OptionSelected{Option: "אף אחד מאלה"})
		}

		state, outcome := applyAll(m, state, OptionSelected{Option: "נפיחות בלשון או בשפתיים"})

		assert.Equalf(t, PhaseEmergency, state.Phase, "step %d", step)
		require.Lenf(t, outcome.Emits, 1, "step %d", step)
		assert.Equal(t, emergencyText, outcome.Emits[0].Message.Content)

		// Further option selections are ignored in the terminal phase.
		next := m.Apply(state, OptionSelected{Option: "אף אחד מאלה"})
		assert.Equal(t, state.Phase, next.State.Phase)
		assert.Empty(t, next.Emits)
	}
}

func TestAllEmergencyTriggersFire(t *testing.T) {
	m := testMachine()
	for _, opt := range scriptedQuestions[1].Options[:3] {
		state, _ := applyAll(m, NewState(), Start{})
		state, _ = applyAll(m, state, OptionSelected{Option: "תסמיני אלרגיה"})
		state, _ = applyAll(m, state, OptionSelected{Option: opt})
		assert.Equalf(t, PhaseEmergency, state.Phase, "option %q", opt)
	}
}

func TestCompletingScriptReachesCTA(t *testing.T) {
	m := testMachine()
	state, _ := applyAll(m, NewState(), Start{})
	state, _ = applyAll(m, state, OptionSelected{Option: "תסמיני אלרגיה"})
	state, _ = applyAll(m, state, OptionSelected{Option: "אף אחד מאלה"})
	state, outcome := applyAll(m, state, OptionSelected{Option: "מספר ימים"})

	assert.Equal(t, PhaseCTA, state.Phase)
	require.Len(t, outcome.Emits, 2)
	assert.Equal(t, recommendationText, outcome.Emits[0].Message.Content)

	cta := outcome.Emits[1].Message
	assert.Equal(t, ctaText, cta.Content)
	require.Len(t, cta.Options, 2)
	assert.Equal(t, ctaOptionBook, cta.Options[0])
	assert.Equal(t, ctaOptionLater, cta.Options[1])
}

func TestCTABookNavigatesWithoutReply(t *testing.T) {
	m := testMachine()
	state := State{Phase: PhaseCTA, Step: 3}

	outcome := m.Apply(state, CTASelected{Option: ctaOptionBook})
	assert.True(t, outcome.Navigate)
	assert.Equal(t, PhaseClosed, outcome.State.Phase)
	assert.Empty(t, outcome.Emits)
}

func TestCTADeclineThanksWithoutNavigation(t *testing.T) {
	m := testMachine()
	state := State{Phase: PhaseCTA, Step: 3}

	outcome := m.Apply(state, CTASelected{Option: ctaOptionLater})
	assert.False(t, outcome.Navigate)
	assert.Equal(t, PhaseClosed, outcome.State.Phase)
	require.Len(t, outcome.Emits, 1)
	assert.Equal(t, thankYouText, outcome.Emits[0].Message.Content)
}

func TestRestartResetsDeterministically(t *testing.T) {
	m := testMachine()

	// Build two different mid-conversation states.
	deep, _ := applyAll(m, NewState(), Start{})
	deep, _ = applyAll(m, deep, OptionSelected{Option: "תסמיני אלרגיה"})
	deep, _ = applyAll(m, deep, FreeText{Text: "יש לי שאלה"})

	emergency, _ := applyAll(m, NewState(), Start{})
	emergency, _ = applyAll(m, emergency, OptionSelected{Option: "עילפון או סחרחורת חזקה"})
	require.Equal(t, PhaseEmergency, emergency.Phase)

	for _, state := range []State{deep, emergency} {
		outcome := m.Apply(state, Restart{})
		assert.Equal(t, PhaseAsking, outcome.State.Phase)
		assert.Equal(t, 0, outcome.State.Step)
		assert.Empty(t, outcome.State.Messages)
		require.Len(t, outcome.Emits, 2)
		assert.Equal(t, welcomeText, outcome.Emits[0].Message.Content)
		assert.Equal(t, "q-0", outcome.Emits[1].Message.ID)
	}
}

func TestFreeTextFallsBackToGenericReply(t *testing.T) {
	m := testMachine()
	state, _ := applyAll(m, NewState(), Start{})

	outcome := m.Apply(state, FreeText{Text: "מה שעות הפעילות?"})
	require.Len(t, outcome.Emits, 1)
	assert.Equal(t, fallbackText, outcome.Emits[0].Message.Content)

	// The script position is untouched.
	assert.Equal(t, PhaseAsking, outcome.State.Phase)
	assert.Equal(t, 0, outcome.State.Step)
}

func TestFreeTextUsesConfiguredResponder(t *testing.T) {
	m := NewMachine(Config{
		WelcomeDelay: time.Millisecond,
		TypingDelay:  time.Millisecond,
		FreeTextResponder: func(text string) string {
			return "triage: " + text
		},
	})
	state, _ := applyAll(m, NewState(), Start{})

	outcome := m.Apply(state, FreeText{Text: "יש לי פריחה"})
	require.Len(t, outcome.Emits, 1)
	assert.Equal(t, "triage: יש לי פריחה", outcome.Emits[0].Message.Content)
}

func TestFreeTextIgnoresEmptyInput(t *testing.T) {
	m := testMachine()
	state, _ := applyAll(m, NewState(), Start{})

	outcome := m.Apply(state, FreeText{Text: "   "})
	assert.Empty(t, outcome.Emits)
	assert.Equal(t, len(state.Messages), len(outcome.State.Messages))
}

func TestUserMessagesRecordedInOrder(t *testing.T) {
	m := testMachine()
	state, _ := applyAll(m, NewState(), Start{})
	state, _ = applyAll(m, state, OptionSelected{Option: "תסמיני אלרגיה"})
	state, _ = applyAll(m, state, OptionSelected{Option: "אף אחד מאלה"})

	var userContents []string
	for _, msg := range state.Messages {
		if msg.Role == RoleUser {
			userContents = append(userContents, msg.Content)
		}
	}
	assert.Equal(t, []string{"תסמיני אלרגיה", "אף אחד מאלה"}, userContents)
}
