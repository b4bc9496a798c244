package session

import "testing"

// Full practice + review cycle: two single-choice questions under a
// uniform 10s budget, one answered early, one timed out.
func TestPracticeReviewCycle(t *testing.T) {
	s := practiceSession(TypeSingleChoice, TypeSingleChoice)

	p := StartPractice(s)

	// Q1: answer "A" after 3 seconds.
	for i := 0; i < 3; i++ {
		p.Countdown().Tick()
	}
	p.Select("A")
	if done := p.Resolve(RawDone); done {
		t.Fatal("completed after first question")
	}

	// Q2: let the countdown run out.
	ticks := 0
	for {
		ev := p.Countdown().Tick()
		ticks++
		if ev == TickTimeout {
			break
		}
		if ticks > 100 {
			t.Fatal("countdown never timed out")
		}
	}
	if ticks != 10 {
		t.Errorf("timeout after %d ticks, want 10", ticks)
	}
	if done := p.Resolve(RawTimeout); !done {
		t.Fatal("run not complete after last question")
	}

	r := NewReview(p.Results)
	if err := r.Mark(0, true); err != nil {
		t.Fatalf("Mark: %v", err)
	}
	if r.PendingCount() != 0 {
		t.Errorf("PendingCount() = %d, want 0", r.PendingCount())
	}

	attempt := NewAttempt(r.Finalize())
	if len(attempt.Results) != 2 {
		t.Fatalf("len(Results) = %d, want 2", len(attempt.Results))
	}

	q1 := attempt.Results[0]
	if q1.Status != StatusCorrect || q1.TimeTaken != 3 || q1.UserAnswer.Choice != "A" {
		t.Errorf("Q1 = %+v", q1)
	}

	q2 := attempt.Results[1]
	if q2.Status != StatusTimeout || q2.TimeTaken != 10 || !q2.UserAnswer.IsEmpty() {
		t.Errorf("Q2 = %+v", q2)
	}
}
