package review

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/jatin/qlock/internal/session"
	"github.com/jatin/qlock/internal/ui/layout"
	"github.com/jatin/qlock/internal/ui/theme"
)

func (r *ReviewScreen) View(width, height int) string {
	if r.submitConfirm {
		return r.renderSubmitConfirm(width)
	}

	var b strings.Builder
	b.WriteString("\n")

	counts := r.rev.Counts()
	statsLine := fmt.Sprintf("%s %d   %s %d   %s %d   %s %d   %s %d",
		lipgloss.NewStyle().Foreground(theme.Success).Render("correct"), counts.Correct,
		lipgloss.NewStyle().Foreground(theme.Error).Render("incorrect"), counts.Incorrect,
		lipgloss.NewStyle().Foreground(theme.Pending).Render("pending"), counts.Pending,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("skipped"), counts.Skipped,
		lipgloss.NewStyle().Foreground(theme.Accent).Render("timeout"), counts.Timeout,
	)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, statsLine))
	b.WriteString("\n\n")

	for i, item := range r.rev.Items {
		prefix := "  "
		if i == r.selected {
			prefix = "> "
		}

		answer := item.Raw.UserAnswer.Display()
		if answer == "" {
			answer = "—"
		}

		line := fmt.Sprintf("%s%-6s %-18s %7s  %s",
			prefix,
			item.Raw.Identifier,
			"answer: "+answer,
			layout.FormatClock(item.Raw.TimeTaken),
			statusBadge(item.Status),
		)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == r.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")
	}

	if r.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render(r.errMsg))
	}

	return b.String()
}

func statusBadge(s session.ReviewStatus) string {
	switch s {
	case session.ReviewCorrect:
		return lipgloss.NewStyle().Foreground(theme.Success).Bold(true).Render("correct")
	case session.ReviewIncorrect:
		return lipgloss.NewStyle().Foreground(theme.Error).Bold(true).Render("incorrect")
	case session.ReviewPending:
		return lipgloss.NewStyle().Foreground(theme.Pending).Render("pending")
	case session.ReviewTimeout:
		return lipgloss.NewStyle().Foreground(theme.Accent).Render("timeout")
	default:
		return lipgloss.NewStyle().Foreground(theme.TextDim).Render("skipped")
	}
}

func (r *ReviewScreen) renderSubmitConfirm(width int) string {
	pending := r.rev.PendingCount()

	var b strings.Builder
	b.WriteString("\n\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render(fmt.Sprintf("%d answer(s) still pending", pending)))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Unmarked answers will be counted as skipped."))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Success).
		Render("[Y] Submit anyway"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Render("[N] Keep reviewing"))

	return b.String()
}
