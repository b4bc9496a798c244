package session

import (
	"reflect"
	"testing"
)

func practiceSession(types ...QuestionType) Session {
	s := New()
	s.Topic = "Signals"
	s.TimerMode = ModeUniform
	s.TimePerQuestion = 10
	s.Questions = nil
	for i, qt := range types {
		q := NewQuestion(i+1, 10)
		q.Type = qt
		s.Questions = append(s.Questions, q)
	}
	return s
}

func TestPractice_LinearAdvance(t *testing.T) {
	p := StartPractice(practiceSession(TypeSingleChoice, TypeSingleChoice, TypeSingleChoice))

	if done := p.Resolve(RawDone); done {
		t.Fatal("run completed after first of three questions")
	}
	if p.Index != 1 {
		t.Errorf("Index = %d, want 1", p.Index)
	}
	p.Resolve(RawSkipped)
	if done := p.Resolve(RawDone); !done {
		t.Error("run not completed after last question")
	}
	if !p.Completed() {
		t.Error("Completed() = false after final resolve")
	}
	if len(p.Results) != 3 {
		t.Errorf("len(Results) = %d, want 3", len(p.Results))
	}
}

func TestPractice_DoneCapturesSingleChoice(t *testing.T) {
	p := StartPractice(practiceSession(TypeSingleChoice))
	p.Select("B")
	p.Select("C") // re-selection overwrites
	p.Resolve(RawDone)

	r := p.Results[0]
	if r.Status != RawDone {
		t.Errorf("Status = %s, want done", r.Status)
	}
	if r.UserAnswer.Choice != "C" {
		t.Errorf("answer = %q, want C", r.UserAnswer.Choice)
	}
}

func TestPractice_DoneWithoutSelectionIsNullAnswer(t *testing.T) {
	p := StartPractice(practiceSession(TypeSingleChoice))
	p.Resolve(RawDone)

	if !p.Results[0].UserAnswer.IsEmpty() {
		t.Errorf("answer = %+v, want empty", p.Results[0].UserAnswer)
	}
}

func TestPractice_MultiChoiceToggleAndSort(t *testing.T) {
	p := StartPractice(practiceSession(TypeMultiChoice))
	p.Select("D")
	p.Select("A")
	p.Select("B")
	p.Select("B") // toggle off
	p.Resolve(RawDone)

	got := p.Results[0].UserAnswer.Choices
	if !reflect.DeepEqual(got, []string{"A", "D"}) {
		t.Errorf("answer = %v, want [A D]", got)
	}
}

func TestPractice_NumericalTrimsInput(t *testing.T) {
	p := StartPractice(practiceSession(TypeNumerical))
	p.SetText("  42.5  ")
	p.Resolve(RawDone)

	if got := p.Results[0].UserAnswer.Text; got != "42.5" {
		t.Errorf("answer = %q, want 42.5", got)
	}
}

func TestPractice_SkipDiscardsPartialInput(t *testing.T) {
	p := StartPractice(practiceSession(TypeSingleChoice))
	p.Select("A")
	p.Resolve(RawSkipped)

	r := p.Results[0]
	if r.Status != RawSkipped {
		t.Errorf("Status = %s, want skipped", r.Status)
	}
	if !r.UserAnswer.IsEmpty() {
		t.Errorf("skip kept answer %+v", r.UserAnswer)
	}
}

func TestPractice_TimeoutDiscardsPartialSelection(t *testing.T) {
	p := StartPractice(practiceSession(TypeMultiChoice))
	p.Select("A")
	p.Select("B")

	c := p.Countdown()
	for !c.Stopped() {
		c.Tick()
	}
	p.Resolve(RawTimeout)

	r := p.Results[0]
	if r.Status != RawTimeout {
		t.Errorf("Status = %s, want timeout", r.Status)
	}
	if !r.UserAnswer.IsEmpty() {
		t.Errorf("timeout kept answer %+v", r.UserAnswer)
	}
	if r.TimeTaken != r.TotalTime {
		t.Errorf("TimeTaken = %d, want full budget %d", r.TimeTaken, r.TotalTime)
	}
}

func TestPractice_TimeTakenFromCountdown(t *testing.T) {
	p := StartPractice(practiceSession(TypeSingleChoice, TypeSingleChoice))
	for i := 0; i < 3; i++ {
		p.Countdown().Tick()
	}
	p.Select("A")
	p.Resolve(RawDone)

	r := p.Results[0]
	if r.TimeTaken != 3 {
		t.Errorf("TimeTaken = %d, want 3", r.TimeTaken)
	}
	if r.TotalTime != 10 {
		t.Errorf("TotalTime = %d, want 10", r.TotalTime)
	}

	// New question gets a fresh countdown and empty capture.
	if p.Countdown().TimeLeft != 10 {
		t.Errorf("next TimeLeft = %d, want 10", p.Countdown().TimeLeft)
	}
	if p.HasAnswer() {
		t.Error("answer capture not reset on advance")
	}
}

func TestPractice_InputIgnoredWhilePaused(t *testing.T) {
	p := StartPractice(practiceSession(TypeSingleChoice))
	p.Countdown().TogglePause()
	p.Select("A")
	p.SetText("7")

	if p.HasAnswer() {
		t.Error("capture accepted input while paused")
	}
}

func TestPractice_RejectsUnknownOption(t *testing.T) {
	p := StartPractice(practiceSession(TypeSingleChoice))
	p.Select("Z")
	if p.HasAnswer() {
		t.Error("capture accepted an option the question does not offer")
	}
}

func TestPractice_IndividualBudgetsPerQuestion(t *testing.T) {
	s := practiceSession(TypeSingleChoice, TypeSingleChoice)
	s.TimerMode = ModeIndividual
	s.Questions[0].Time = 30
	s.Questions[1].Time = 0 // falls back to TimePerQuestion

	p := StartPractice(s)
	if p.Countdown().Budget != 30 {
		t.Errorf("first budget = %d, want 30", p.Countdown().Budget)
	}
	p.Resolve(RawSkipped)
	if p.Countdown().Budget != 10 {
		t.Errorf("second budget = %d, want fallback 10", p.Countdown().Budget)
	}
}
