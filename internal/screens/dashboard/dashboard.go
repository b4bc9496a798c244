// Package dashboard renders the practice analytics report.
package dashboard

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/jatin/qlock/internal/analytics"
	"github.com/jatin/qlock/internal/screen"
	"github.com/jatin/qlock/internal/sessionlist"
	"github.com/jatin/qlock/internal/ui/components"
	"github.com/jatin/qlock/internal/ui/layout"
	"github.com/jatin/qlock/internal/ui/theme"
)

// DashboardScreen shows aggregate stats across all sessions.
type DashboardScreen struct {
	report analytics.Report
	scroll int
}

var _ screen.Screen = (*DashboardScreen)(nil)
var _ screen.KeyHintProvider = (*DashboardScreen)(nil)

// New computes the report from the current session list.
func New(list *sessionlist.List) *DashboardScreen {
	return &DashboardScreen{
		report: analytics.Calculate(list.All(), time.Now()),
	}
}

func (d *DashboardScreen) Init() tea.Cmd {
	return nil
}

func (d *DashboardScreen) Title() string {
	return "Dashboard"
}

func (d *DashboardScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (d *DashboardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return d, nil
	}
	switch kmsg.String() {
	case "up", "k":
		if d.scroll > 0 {
			d.scroll--
		}
	case "down", "j":
		if d.scroll < len(d.report.Topics) {
			d.scroll++
		}
	}
	return d, nil
}

func (d *DashboardScreen) View(width, height int) string {
	r := d.report

	if r.TotalAttempts == 0 {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Italic(true).
			Render("\n\n  No attempts yet. Finish a practice run first.")
	}

	var b strings.Builder
	b.WriteString("\n")

	overall := fmt.Sprintf("%d sessions   %d attempts   %d questions   %d%% accuracy",
		r.TotalSessions, r.TotalAttempts, r.TotalQuestions, r.Accuracy)
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render(overall))
	b.WriteString("\n")

	detail := fmt.Sprintf("avg %s/question   total %s   streak %d day(s)   best %d",
		layout.FormatClock(r.AvgTime), layout.FormatClock(r.TotalTimeSpent),
		r.CurrentStreak, r.MaxStreak)
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(detail))
	b.WriteString("\n")

	recent := fmt.Sprintf("last 7 days: %d attempt(s), %d%% accuracy",
		r.RecentAttempts, r.RecentAccuracy)
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Secondary).
		Render(recent))
	b.WriteString("\n\n")

	if len(r.WeakTopics) > 0 {
		weak := "needs work: " + strings.Join(r.WeakTopics, ", ")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render(weak))
		b.WriteString("\n\n")
	}

	for i, topic := range r.Topics {
		if i < d.scroll {
			continue
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, renderTopic(topic)))
		b.WriteString("\n")
	}

	return b.String()
}

func renderTopic(t analytics.TopicStats) string {
	trend := ""
	switch {
	case t.Trend > 0:
		trend = lipgloss.NewStyle().Foreground(theme.Success).Render(fmt.Sprintf(" ↑%d", t.Trend))
	case t.Trend < 0:
		trend = lipgloss.NewStyle().Foreground(theme.Error).Render(fmt.Sprintf(" ↓%d", -t.Trend))
	}

	plain := t.Topic
	if t.Weak {
		plain += " !"
	}
	nameStyle := lipgloss.NewStyle().Foreground(theme.Text)
	if t.Weak {
		nameStyle = nameStyle.Foreground(theme.Error)
	}
	name := nameStyle.Render(fmt.Sprintf("%-24s", plain))

	bar := components.NewProgressBar("", float64(t.Accuracy)/100, false, 16)
	line := fmt.Sprintf("%s %s %3d%%  %3d questions  avg %5s%s",
		name, bar.View(), t.Accuracy, t.TotalQuestions, layout.FormatClock(t.AvgTime), trend)

	if len(t.Subtopics) > 0 {
		var subs []string
		for _, s := range t.Subtopics {
			subs = append(subs, fmt.Sprintf("%s %d%%", s.Subtopic, s.Accuracy))
		}
		line += "\n" + lipgloss.NewStyle().Foreground(theme.TextDim).
			Render("        "+strings.Join(subs, "   "))
	}
	return line
}
