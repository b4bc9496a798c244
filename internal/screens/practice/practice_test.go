package practice

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/jatin/qlock/internal/router"
	"github.com/jatin/qlock/internal/screen"
	"github.com/jatin/qlock/internal/session"
	"github.com/jatin/qlock/internal/sessionlist"
	"github.com/jatin/qlock/internal/sound"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func testSession(n int) session.Session {
	s := session.New()
	s.Topic = "Thermodynamics"
	s.TimePerQuestion = 30
	for len(s.Questions) < n {
		s.Questions = append(s.Questions, session.NewQuestion(len(s.Questions)+1, 0))
	}
	return s
}

func testScreen(n int) *PracticeScreen {
	list := sessionlist.New(nil, nil)
	return New(testSession(n), Deps{List: list, Sink: sound.Nop{}})
}

func TestPracticeScreen_Title(t *testing.T) {
	p := testScreen(1)
	if p.Title() != "Practice" {
		t.Errorf("Title = %q, want %q", p.Title(), "Practice")
	}
}

func TestPracticeScreen_QuitConfirm(t *testing.T) {
	p := testScreen(2)

	var scr screen.Screen = p
	scr, _ = scr.Update(specialKey(tea.KeyEscape))
	ps := scr.(*PracticeScreen)
	if !ps.quitConfirm {
		t.Error("expected quit confirmation after esc")
	}

	scr, _ = ps.Update(keyPress('n'))
	ps = scr.(*PracticeScreen)
	if ps.quitConfirm {
		t.Error("expected quit confirmation to be dismissed")
	}
}

func TestPracticeScreen_QuitConfirm_Yes(t *testing.T) {
	p := testScreen(2)

	var scr screen.Screen = p
	scr, _ = scr.Update(specialKey(tea.KeyEscape))
	_, cmd := scr.Update(keyPress('y'))
	if cmd == nil {
		t.Fatal("expected a command after quit confirmation")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg after abandoning the run")
	}
}

func TestPracticeScreen_PauseGatesInput(t *testing.T) {
	p := testScreen(2)

	var scr screen.Screen = p
	scr, _ = scr.Update(keyPress('p'))
	ps := scr.(*PracticeScreen)
	if !ps.run.Countdown().Paused {
		t.Fatal("expected countdown to be paused")
	}

	// Enter must not resolve the question while paused.
	scr, _ = ps.Update(specialKey(tea.KeyEnter))
	ps = scr.(*PracticeScreen)
	if ps.run.Index != 0 {
		t.Errorf("Index = %d, want 0 while paused", ps.run.Index)
	}

	scr, _ = ps.Update(keyPress('p'))
	ps = scr.(*PracticeScreen)
	if ps.run.Countdown().Paused {
		t.Error("expected countdown to resume")
	}
}

func TestPracticeScreen_SelectAndResolve(t *testing.T) {
	p := testScreen(2)

	var scr screen.Screen = p
	scr, _ = scr.Update(keyPress(' '))
	ps := scr.(*PracticeScreen)
	if !ps.run.HasAnswer() {
		t.Fatal("expected an answer after space")
	}

	scr, _ = ps.Update(specialKey(tea.KeyEnter))
	ps = scr.(*PracticeScreen)
	if ps.run.Index != 1 {
		t.Errorf("Index = %d, want 1 after resolving", ps.run.Index)
	}
	if got := ps.run.Results[0].Status; got != session.RawDone {
		t.Errorf("Results[0].Status = %q, want %q", got, session.RawDone)
	}
}

func TestPracticeScreen_SkipLastQuestionFinishes(t *testing.T) {
	p := testScreen(1)

	var scr screen.Screen = p
	_, cmd := scr.Update(keyPress('s'))
	if cmd == nil {
		t.Fatal("expected a command after resolving the last question")
	}
	if _, ok := cmd().(practiceDoneMsg); !ok {
		t.Error("expected practiceDoneMsg after the last question")
	}
}

func TestPracticeScreen_DoneReplacesWithReview(t *testing.T) {
	p := testScreen(1)

	var scr screen.Screen = p
	scr, _ = scr.Update(keyPress('s'))
	_, cmd := scr.Update(practiceDoneMsg{})
	if cmd == nil {
		t.Fatal("expected a command after practiceDoneMsg")
	}
	if _, ok := cmd().(router.ReplaceScreenMsg); !ok {
		t.Error("expected ReplaceScreenMsg to the review screen")
	}
}

func TestPracticeScreen_StaleTickIgnored(t *testing.T) {
	p := testScreen(2)

	var scr screen.Screen = p
	scr, _ = scr.Update(keyPress(' '))
	scr, _ = scr.Update(specialKey(tea.KeyEnter))

	before := scr.(*PracticeScreen).run.Countdown().Elapsed()
	scr, cmd := scr.Update(timerTickMsg{Index: 0})
	after := scr.(*PracticeScreen).run.Countdown().Elapsed()

	if cmd != nil {
		t.Error("expected no follow-up command for a stale tick")
	}
	if before != after {
		t.Errorf("Elapsed changed from %d to %d on a stale tick", before, after)
	}
}

func TestPracticeScreen_TimeoutAdvances(t *testing.T) {
	p := testScreen(2)
	p.run.Countdown().TimeLeft = 1

	var scr screen.Screen = p
	scr, _ = scr.Update(timerTickMsg{Index: 0})
	ps := scr.(*PracticeScreen)

	if ps.run.Index != 1 {
		t.Errorf("Index = %d, want 1 after timeout", ps.run.Index)
	}
	if got := ps.run.Results[0].Status; got != session.RawTimeout {
		t.Errorf("Results[0].Status = %q, want %q", got, session.RawTimeout)
	}
}

func TestPracticeScreen_NumericalInput(t *testing.T) {
	s := testSession(1)
	s.Questions[0].Type = session.TypeNumerical
	list := sessionlist.New(nil, nil)
	p := New(s, Deps{List: list, Sink: sound.Nop{}})

	var scr screen.Screen = p
	scr, _ = scr.Update(keyPress('4'))
	scr, _ = scr.Update(keyPress('2'))
	ps := scr.(*PracticeScreen)
	if !ps.run.HasAnswer() {
		t.Error("expected an answer after typing digits")
	}
}
