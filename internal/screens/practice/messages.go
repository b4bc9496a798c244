package practice

import (
	"time"

	tea "charm.land/bubbletea/v2"
)

// timerTickMsg is sent every second to advance the countdown. It
// carries the question index it was scheduled for so a tick that was
// already in flight when the question resolved is discarded instead of
// draining the next question's budget.
type timerTickMsg struct {
	Index int
}

// practiceDoneMsg is sent when the last question resolves.
type practiceDoneMsg struct{}

// tickCmd returns a 1-second tick command bound to a question index.
func tickCmd(index int) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return timerTickMsg{Index: index}
	})
}
