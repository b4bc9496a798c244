// Package results shows the scored outcome of a finished attempt.
package results

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/jatin/qlock/internal/router"
	"github.com/jatin/qlock/internal/screen"
	"github.com/jatin/qlock/internal/session"
	"github.com/jatin/qlock/internal/ui/components"
	"github.com/jatin/qlock/internal/ui/layout"
	"github.com/jatin/qlock/internal/ui/theme"
)

// ResultsScreen displays the final scores for one attempt. The retry
// factory restarts the same session without the results screen needing
// to know how a practice run is constructed.
type ResultsScreen struct {
	sess    session.Session
	results []session.Result
	retry   func() screen.Screen
}

var _ screen.Screen = (*ResultsScreen)(nil)
var _ screen.KeyHintProvider = (*ResultsScreen)(nil)

// New creates the results screen for a recorded attempt.
func New(sess session.Session, results []session.Result, retry func() screen.Screen) *ResultsScreen {
	return &ResultsScreen{sess: sess, results: results, retry: retry}
}

func (r *ResultsScreen) Init() tea.Cmd {
	return nil
}

func (r *ResultsScreen) Title() string {
	return "Results"
}

func (r *ResultsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "R", Description: "Retry"},
		{Key: "Esc", Description: "Home"},
	}
}

func (r *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return r, nil
	}

	switch kmsg.String() {
	case "r":
		if r.retry != nil {
			return r, func() tea.Msg {
				return router.ReplaceScreenMsg{Screen: r.retry()}
			}
		}
	case "enter":
		return r, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return r, nil
}

func (r *ResultsScreen) View(width, height int) string {
	var correct, incorrect, skipped, timeout, timeSpent int
	for _, res := range r.results {
		timeSpent += res.TimeTaken
		switch res.Status {
		case session.StatusCorrect:
			correct++
		case session.StatusIncorrect:
			incorrect++
		case session.StatusTimeout:
			timeout++
		default:
			skipped++
		}
	}

	total := len(r.results)
	accuracy := 0
	if total > 0 {
		accuracy = int(float64(correct)/float64(total)*100 + 0.5)
	}

	var b strings.Builder
	b.WriteString("\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render(r.sess.Topic))
	b.WriteString("\n\n")

	score := fmt.Sprintf("%d / %d correct  (%d%%)", correct, total, accuracy)
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render(score))
	b.WriteString("\n")

	barWidth := 40
	if barWidth > width-4 {
		barWidth = width - 4
	}
	bar := components.NewProgressBar("", float64(accuracy)/100, false, barWidth)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
	b.WriteString("\n")

	breakdown := fmt.Sprintf("incorrect %d   skipped %d   timeout %d   time %s",
		incorrect, skipped, timeout, layout.FormatClock(timeSpent))
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(breakdown))
	b.WriteString("\n\n")

	for _, res := range r.results {
		answer := res.UserAnswer.Display()
		if answer == "" {
			answer = "—"
		}
		line := fmt.Sprintf("%-6s %-18s %7s  %s",
			res.Identifier,
			"answer: "+answer,
			layout.FormatClock(res.TimeTaken),
			finalBadge(res.Status),
		)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Text).Render(line)))
		b.WriteString("\n")
	}

	return b.String()
}

func finalBadge(s session.FinalStatus) string {
	switch s {
	case session.StatusCorrect:
		return lipgloss.NewStyle().Foreground(theme.Success).Bold(true).Render("correct")
	case session.StatusIncorrect:
		return lipgloss.NewStyle().Foreground(theme.Error).Bold(true).Render("incorrect")
	case session.StatusTimeout:
		return lipgloss.NewStyle().Foreground(theme.Accent).Render("timeout")
	default:
		return lipgloss.NewStyle().Foreground(theme.TextDim).Render("skipped")
	}
}
