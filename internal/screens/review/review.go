// Package review is the answer-key pass after a timed run: the user
// checks each answered question against their source material and
// marks it correct or incorrect before the attempt is recorded.
package review

import (
	tea "charm.land/bubbletea/v2"

	"github.com/rs/zerolog/log"

	"github.com/jatin/qlock/internal/router"
	"github.com/jatin/qlock/internal/screen"
	"github.com/jatin/qlock/internal/screens/results"
	"github.com/jatin/qlock/internal/session"
	"github.com/jatin/qlock/internal/sessionlist"
	"github.com/jatin/qlock/internal/ui/layout"
)

// ReviewScreen reconciles raw practice outcomes with the answer key.
type ReviewScreen struct {
	sess  session.Session
	rev   *session.Review
	list  *sessionlist.List
	retry func() screen.Screen

	selected      int
	submitConfirm bool
	errMsg        string
}

var _ screen.Screen = (*ReviewScreen)(nil)
var _ screen.KeyHintProvider = (*ReviewScreen)(nil)
var _ screen.EscHandler = (*ReviewScreen)(nil)

// New creates the review pass over a finished run's raw results.
func New(sess session.Session, raw []session.RawResult, list *sessionlist.List, retry func() screen.Screen) *ReviewScreen {
	return &ReviewScreen{
		sess:  sess,
		rev:   session.NewReview(raw),
		list:  list,
		retry: retry,
	}
}

func (r *ReviewScreen) Init() tea.Cmd {
	return nil
}

func (r *ReviewScreen) Title() string {
	return "Review"
}

// HandlesEsc prevents the app from popping mid-review; esc only
// dismisses the submit confirmation.
func (r *ReviewScreen) HandlesEsc() bool {
	return true
}

func (r *ReviewScreen) KeyHints() []layout.KeyHint {
	if r.submitConfirm {
		return []layout.KeyHint{
			{Key: "Y", Description: "Submit anyway"},
			{Key: "N", Description: "Keep reviewing"},
		}
	}
	return []layout.KeyHint{
		{Key: "C", Description: "Correct"},
		{Key: "X", Description: "Incorrect"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Submit"},
	}
}

func (r *ReviewScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return r, nil
	}
	key := kmsg.String()

	if r.submitConfirm {
		switch key {
		case "y", "Y":
			return r.finalize()
		case "n", "N", "esc":
			r.submitConfirm = false
		}
		return r, nil
	}

	switch key {
	case "up", "k":
		if r.selected > 0 {
			r.selected--
		}
	case "down", "j":
		if r.selected < len(r.rev.Items)-1 {
			r.selected++
		}
	case "c":
		r.mark(true)
	case "x":
		r.mark(false)
	case "enter":
		if r.rev.PendingCount() > 0 {
			r.submitConfirm = true
			return r, nil
		}
		return r.finalize()
	}
	return r, nil
}

func (r *ReviewScreen) mark(correct bool) {
	if !r.rev.Markable(r.selected) {
		return
	}
	if err := r.rev.Mark(r.selected, correct); err != nil {
		r.errMsg = err.Error()
	}
}

// finalize coerces remaining pending items to skipped, records the
// attempt, and moves on to the results screen.
func (r *ReviewScreen) finalize() (screen.Screen, tea.Cmd) {
	final := r.rev.Finalize()
	attempt := session.NewAttempt(final)

	if err := r.list.AppendAttempt(r.sess.ID, attempt); err != nil {
		log.Error().Err(err).Str("session", r.sess.ID).Msg("record attempt")
		r.errMsg = "Could not save this attempt: " + err.Error()
		r.submitConfirm = false
		return r, nil
	}

	return r, func() tea.Msg {
		return router.ReplaceScreenMsg{
			Screen: results.New(r.sess, final, r.retry),
		}
	}
}
