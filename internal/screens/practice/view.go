package practice

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/jatin/qlock/internal/session"
	"github.com/jatin/qlock/internal/ui/layout"
	"github.com/jatin/qlock/internal/ui/theme"
)

func (p *PracticeScreen) View(width, height int) string {
	if p.quitConfirm {
		return renderQuitConfirm(width)
	}
	return p.renderQuestion(width)
}

func (p *PracticeScreen) renderQuestion(width int) string {
	run := p.run
	q := run.Current()
	cd := run.Countdown()

	var b strings.Builder

	// Info line: topic on the left, progress and timer on the right.
	topic := run.Session.Topic
	if run.Session.Subtopic != "" {
		topic += " / " + run.Session.Subtopic
	}
	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render("  " + topic)

	// Color shifts at 30% of the budget remaining, red at 10%.
	timerStyle := lipgloss.NewStyle().Foreground(theme.Text)
	if cd.Budget > 0 {
		switch {
		case cd.TimeLeft*10 <= cd.Budget:
			timerStyle = theme.TimerExpired
		case cd.TimeLeft*10 <= cd.Budget*3:
			timerStyle = theme.TimerWarning
		}
	}
	infoRight := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Q %d/%d  ", run.Index+1, len(run.Session.Questions))) +
		timerStyle.Render(layout.FormatClock(cd.TimeLeft))

	infoLine := infoLeft
	rightPad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4
	if rightPad > 0 {
		infoLine += strings.Repeat(" ", rightPad) + infoRight
	}
	b.WriteString(infoLine)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	if cd.Paused {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Accent).
			Bold(true).
			Render("PAUSED"))
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("Press P to resume"))
		b.WriteString("\n\n")
	}

	// Question identifier, centered.
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render(q.Identifier))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(questionTypeLabel(q.Type)))
	b.WriteString("\n\n")

	// Answer area.
	if q.Type == session.TypeNumerical {
		answerLine := lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Render("Answer: " + p.input.View())
		b.WriteString(answerLine)
	} else {
		options := p.picker.View(run.Selected)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, options))
	}

	return b.String()
}

func questionTypeLabel(t session.QuestionType) string {
	switch t {
	case session.TypeMultiChoice:
		return "multiple answers"
	case session.TypeNumerical:
		return "numerical answer"
	default:
		return "single answer"
	}
}

func renderQuitConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render("Abandon this run?"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Nothing will be recorded."))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render("[Y] Yes, abandon"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Render("[N] No, keep going"))

	return b.String()
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
