package editor

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/jatin/qlock/internal/session"
	"github.com/jatin/qlock/internal/ui/components"
	"github.com/jatin/qlock/internal/ui/theme"
)

func (e *EditorScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")

	rows := []string{
		e.renderField(fieldTopic, "Topic", e.topic.View()),
		e.renderField(fieldSubtopic, "Subtopic", e.subtopic.View()),
		e.renderField(fieldTimerMode, "Timer mode", e.renderTimerMode()),
		e.renderField(fieldTime, e.timeLabel(), e.timeStr.View()),
		e.renderField(fieldCount, "Questions", fmt.Sprintf("< %d >", len(e.sess.Questions))),
	}

	for _, row := range rows {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, row))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for i, q := range e.sess.Questions {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			e.renderQuestionRow(i, q)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	save := components.NewButton("Save", e.onSaveRow(), nil)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, save.View()))
	b.WriteString("\n")

	if e.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render(e.errMsg))
	}

	return b.String()
}

func (e *EditorScreen) renderField(idx int, label, value string) string {
	prefix := "  "
	labelStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	if e.field == idx {
		prefix = "> "
		labelStyle = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	}
	return fmt.Sprintf("%s%s  %s", prefix, labelStyle.Render(fmt.Sprintf("%-18s", label)), value)
}

func (e *EditorScreen) timeLabel() string {
	if e.sess.TimerMode == session.ModeTotal {
		return "Total time (s)"
	}
	return "Time/question (s)"
}

func (e *EditorScreen) renderTimerMode() string {
	return fmt.Sprintf("< %s >", e.sess.TimerMode)
}

func (e *EditorScreen) renderQuestionRow(i int, q session.Question) string {
	prefix := "  "
	style := lipgloss.NewStyle().Foreground(theme.Text)
	if e.onQuestionRow() && e.questionIndex() == i {
		prefix = "> "
		style = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	}

	timeStr := ""
	if e.sess.TimerMode == session.ModeIndividual {
		secs := q.Time
		if secs == 0 {
			secs = e.timeValue()
		}
		timeStr = fmt.Sprintf("  %ds", secs)
	}

	if e.editingIdent && e.onQuestionRow() && e.questionIndex() == i {
		return style.Render(prefix) + e.ident.View()
	}

	return style.Render(fmt.Sprintf("%s%-6s < %-10s >%s", prefix, q.Identifier, q.Type, timeStr))
}
