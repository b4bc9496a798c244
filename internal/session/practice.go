package session

// Practice is the timed run through a session's questions: a linear
// state machine whose only transition is "current question resolved" →
// next index, or completion after the last question. It owns the
// per-question answer capture and the countdown engine for the current
// question.
type Practice struct {
	Session Session
	Times   []int // frozen per-question budgets, aligned by index
	Index   int
	Results []RawResult

	countdown *Countdown

	// Per-question answer capture, reset on every advance.
	choice  string
	choices map[string]bool
	text    string

	completed bool
}

// StartPractice freezes the question budgets and positions the run at
// the first question. The session must have validated with at least one
// question.
func StartPractice(s Session) *Practice {
	times := ResolveQuestionTimes(s)
	return &Practice{
		Session:   s,
		Times:     times,
		Results:   make([]RawResult, 0, len(s.Questions)),
		countdown: NewCountdown(times[0]),
		choices:   make(map[string]bool),
	}
}

// Current returns the active question.
func (p *Practice) Current() Question {
	return p.Session.Questions[p.Index]
}

// Countdown exposes the engine for the current question.
func (p *Practice) Countdown() *Countdown {
	return p.countdown
}

// Completed reports whether every question has resolved.
func (p *Practice) Completed() bool {
	return p.completed
}

// Select records an option choice for the current question. Single
// choice overwrites; multi choice toggles (selecting an already-selected
// option removes it). Input is ignored while paused, as is any option
// not offered by the question.
func (p *Practice) Select(option string) {
	if p.completed || p.countdown.Paused {
		return
	}
	q := p.Current()
	if q.Type == TypeNumerical {
		return
	}
	valid := false
	for _, o := range q.OptionsFor() {
		if o == option {
			valid = true
			break
		}
	}
	if !valid {
		return
	}
	if q.Type == TypeMultiChoice {
		if p.choices[option] {
			delete(p.choices, option)
		} else {
			p.choices[option] = true
		}
		return
	}
	p.choice = option
}

// SetText records the raw numerical input. No validation happens at
// capture time.
func (p *Practice) SetText(text string) {
	if p.completed || p.countdown.Paused {
		return
	}
	p.text = text
}

// Selected reports whether the given option is currently chosen.
func (p *Practice) Selected(option string) bool {
	if p.Current().Type == TypeMultiChoice {
		return p.choices[option]
	}
	return p.choice == option
}

// HasAnswer reports whether any answer is captured for the current
// question.
func (p *Practice) HasAnswer() bool {
	switch p.Current().Type {
	case TypeMultiChoice:
		return len(p.choices) > 0
	case TypeNumerical:
		return p.text != ""
	default:
		return p.choice != ""
	}
}

// Resolve records the current question's outcome and advances. Done
// captures the answer; skip and timeout discard any partial input, so an
// unsubmitted answer at timeout does not count. Returns true once the
// run is complete and the raw results are ready for review.
//
// The countdown is stopped before any state changes, so a tick that was
// already scheduled cannot fire against the next question.
func (p *Practice) Resolve(status RawStatus) bool {
	if p.completed {
		return true
	}
	p.countdown.Stop()

	q := p.Current()
	var answer Answer
	if status == RawDone {
		switch q.Type {
		case TypeMultiChoice:
			selected := make([]string, 0, len(p.choices))
			for o := range p.choices {
				selected = append(selected, o)
			}
			answer = MultiAnswer(selected)
		case TypeNumerical:
			answer = NumericalAnswer(p.text)
		default:
			answer = SingleAnswer(p.choice)
		}
	}

	p.Results = append(p.Results, RawResult{
		QuestionID:   q.ID,
		Identifier:   q.Identifier,
		Status:       status,
		TimeTaken:    p.countdown.Elapsed(),
		TotalTime:    p.countdown.Budget,
		UserAnswer:   answer,
		QuestionType: q.Type,
	})

	if p.Index+1 >= len(p.Session.Questions) {
		p.completed = true
		return true
	}

	p.Index++
	p.countdown = NewCountdown(p.Times[p.Index])
	p.choice = ""
	p.choices = make(map[string]bool)
	p.text = ""
	return false
}
