package home

import (
	"fmt"
	"math"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/jatin/qlock/internal/session"
	"github.com/jatin/qlock/internal/ui/theme"
)

func (h *HomeScreen) View(width, height int) string {
	items := h.deps.List.All()

	if len(items) == 0 && !h.importing {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No sessions yet. Press N to create one, or I to import a backup.")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, sess := range items {
		prefix := "  "
		if i == h.selected {
			prefix = "> "
		}

		name := sess.Topic
		if name == "" {
			name = "Untitled"
		}
		if sess.Subtopic != "" {
			name += " / " + sess.Subtopic
		}

		line := fmt.Sprintf("%s%-32s %3d question(s)  %-10s  %s",
			prefix, name, len(sess.Questions), string(sess.TimerMode), attemptSummary(sess))

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == h.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")
	}

	if h.deleteConfirm {
		if sess, ok := h.current(); ok {
			b.WriteString("\n")
			b.WriteString(lipgloss.NewStyle().
				Width(width).Align(lipgloss.Center).Foreground(theme.Error).Bold(true).
				Render(fmt.Sprintf("Delete %q and its history? (y/n)", sess.Topic)))
			b.WriteString("\n")
		}
	}

	if h.importing {
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			"Import from: "+h.importPath.View()))
		b.WriteString("\n")
	}

	if h.statusMsg != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Secondary).
			Render(h.statusMsg))
		b.WriteString("\n")
	}

	if h.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(h.errMsg))
		b.WriteString("\n")
	}

	return b.String()
}

// attemptSummary reports attempt count and the most recent accuracy.
func attemptSummary(s session.Session) string {
	if len(s.Attempts) == 0 {
		return "no attempts"
	}
	last := s.Attempts[len(s.Attempts)-1]
	correct, total := 0, 0
	for _, r := range last.Results {
		total++
		if r.Status == session.StatusCorrect {
			correct++
		}
	}
	acc := 0
	if total > 0 {
		acc = int(math.Round(float64(correct) / float64(total) * 100))
	}
	return fmt.Sprintf("%d attempt(s), last %d%%", len(s.Attempts), acc)
}
