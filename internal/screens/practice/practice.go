// Package practice hosts the timed run through a session's questions.
// The countdown logic lives in internal/session; this screen only
// translates key presses and ticks into state machine calls and draws
// the result.
package practice

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/jatin/qlock/internal/router"
	"github.com/jatin/qlock/internal/screen"
	"github.com/jatin/qlock/internal/screens/review"
	"github.com/jatin/qlock/internal/session"
	"github.com/jatin/qlock/internal/sessionlist"
	"github.com/jatin/qlock/internal/sound"
	"github.com/jatin/qlock/internal/ui/components"
	"github.com/jatin/qlock/internal/ui/layout"
)

// Deps carries the shared dependencies every practice run needs.
type Deps struct {
	List *sessionlist.List
	Sink sound.Sink
}

// PracticeScreen runs one timed attempt.
type PracticeScreen struct {
	deps Deps
	run  *session.Practice

	picker      components.OptionPicker
	input       components.TextInput
	quitConfirm bool
}

var _ screen.Screen = (*PracticeScreen)(nil)
var _ screen.KeyHintProvider = (*PracticeScreen)(nil)
var _ screen.EscHandler = (*PracticeScreen)(nil)

// New starts a practice run over the given session. The session must
// have passed Validate.
func New(s session.Session, deps Deps) *PracticeScreen {
	p := &PracticeScreen{
		deps: deps,
		run:  session.StartPractice(s),
	}
	p.setupQuestionInput()
	return p
}

func (p *PracticeScreen) Init() tea.Cmd {
	return tea.Batch(tickCmd(p.run.Index), p.input.Init())
}

func (p *PracticeScreen) Title() string {
	return "Practice"
}

// HandlesEsc keeps the app from popping the screen; esc opens the quit
// confirmation instead.
func (p *PracticeScreen) HandlesEsc() bool {
	return true
}

func (p *PracticeScreen) KeyHints() []layout.KeyHint {
	if p.quitConfirm {
		return []layout.KeyHint{
			{Key: "Y", Description: "Abandon run"},
			{Key: "N", Description: "Keep going"},
		}
	}
	if p.run.Countdown().Paused {
		return []layout.KeyHint{
			{Key: "P", Description: "Resume"},
			{Key: "Esc", Description: "Quit"},
		}
	}
	hints := []layout.KeyHint{
		{Key: "Enter", Description: "Done"},
		{Key: "S", Description: "Skip"},
		{Key: "P", Description: "Pause"},
	}
	if p.run.Current().Type != session.TypeNumerical {
		hints = append([]layout.KeyHint{{Key: "Space", Description: "Select"}}, hints...)
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Quit"})
}

func (p *PracticeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case timerTickMsg:
		return p.handleTick(msg)
	case practiceDoneMsg:
		return p.handleDone()
	case tea.KeyMsg:
		return p.handleKey(msg)
	}
	return p, nil
}

func (p *PracticeScreen) handleTick(msg timerTickMsg) (screen.Screen, tea.Cmd) {
	// Stale tick from a question that already resolved.
	if p.run.Completed() || msg.Index != p.run.Index {
		return p, nil
	}

	switch p.run.Countdown().Tick() {
	case session.TickWarning:
		p.deps.Sink.Play(sound.CueWarning)
	case session.TickTimeout:
		p.deps.Sink.Play(sound.CueTimeout)
		if p.run.Resolve(session.RawTimeout) {
			return p, func() tea.Msg { return practiceDoneMsg{} }
		}
		p.setupQuestionInput()
		return p, tea.Batch(tickCmd(p.run.Index), p.input.Init())
	}

	return p, tickCmd(p.run.Index)
}

func (p *PracticeScreen) handleDone() (screen.Screen, tea.Cmd) {
	p.deps.Sink.Play(sound.CueComplete)

	sess := p.run.Session
	deps := p.deps
	retry := func() screen.Screen { return New(sess, deps) }

	return p, func() tea.Msg {
		return router.ReplaceScreenMsg{
			Screen: review.New(sess, p.run.Results, deps.List, retry),
		}
	}
}

func (p *PracticeScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if p.quitConfirm {
		switch key {
		case "y", "Y":
			return p, func() tea.Msg { return router.PopScreenMsg{} }
		case "n", "N", "esc":
			p.quitConfirm = false
		}
		return p, nil
	}

	switch key {
	case "esc":
		p.quitConfirm = true
		return p, nil
	case "p":
		p.run.Countdown().TogglePause()
		return p, nil
	}

	// Pause gates every answer action, not just the timer.
	if p.run.Countdown().Paused {
		return p, nil
	}

	switch key {
	case "enter":
		return p.resolve(session.RawDone)
	case "s":
		if p.run.Current().Type != session.TypeNumerical {
			return p.resolve(session.RawSkipped)
		}
	case "ctrl+s":
		return p.resolve(session.RawSkipped)
	}

	if p.run.Current().Type == session.TypeNumerical {
		var cmd tea.Cmd
		p.input, cmd = p.input.Update(msg)
		p.run.SetText(p.input.Value())
		return p, cmd
	}

	if key == "space" || key == " " {
		p.run.Select(p.picker.Current())
		return p, nil
	}
	// Option labels toggle directly, A through G on the defaults.
	if opt, ok := p.matchOption(key); ok {
		p.run.Select(opt)
		return p, nil
	}
	var cmd tea.Cmd
	p.picker, cmd = p.picker.Update(msg)
	return p, cmd
}

func (p *PracticeScreen) matchOption(key string) (string, bool) {
	if len(key) != 1 {
		return "", false
	}
	for _, opt := range p.run.Current().OptionsFor() {
		if strings.EqualFold(opt, key) {
			return opt, true
		}
	}
	return "", false
}

func (p *PracticeScreen) resolve(status session.RawStatus) (screen.Screen, tea.Cmd) {
	if p.run.Resolve(status) {
		return p, func() tea.Msg { return practiceDoneMsg{} }
	}
	p.setupQuestionInput()
	return p, tea.Batch(tickCmd(p.run.Index), p.input.Init())
}

// setupQuestionInput resets the input widgets for the current question.
func (p *PracticeScreen) setupQuestionInput() {
	q := p.run.Current()
	p.picker = components.NewOptionPicker(q.OptionsFor(), q.Type == session.TypeMultiChoice)
	p.input = components.NewTextInput("Type your answer...", true, 20)
}
