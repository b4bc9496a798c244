package account

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/jatin/qlock/internal/ui/components"
	"github.com/jatin/qlock/internal/ui/theme"
)

func (s *AccountScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")

	if s.mode == modeProfile {
		s.renderProfile(&b, width)
	} else {
		s.renderForm(&b, width)
	}

	if s.status != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Secondary).
			Render(s.status))
		b.WriteString("\n")
	}
	if s.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(s.errMsg))
		b.WriteString("\n")
	}

	return b.String()
}

func (s *AccountScreen) renderProfile(b *strings.Builder, width int) {
	name := s.user.Name
	if name == "" {
		name = "(loading)"
	}
	b.WriteString(lipgloss.NewStyle().
		Width(width).Align(lipgloss.Center).Foreground(theme.Text).Bold(true).
		Render(name))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
		Render(s.user.Email))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).Align(lipgloss.Center).Foreground(theme.Text).
		Render(fmt.Sprintf("%d session(s) on this device", s.list.Len())))
	b.WriteString("\n")
}

func (s *AccountScreen) renderForm(b *strings.Builder, width int) {
	title := "Log in"
	if s.mode == modeRegister {
		title = "Create account"
	}
	b.WriteString(lipgloss.NewStyle().
		Width(width).Align(lipgloss.Center).Foreground(theme.Primary).Bold(true).
		Render(title))
	b.WriteString("\n\n")

	if s.mode == modeRegister {
		b.WriteString(s.renderRow(width, fieldName, "Name", s.name.View()))
	}
	b.WriteString(s.renderRow(width, fieldEmail, "Email", s.email.View()))
	b.WriteString(s.renderRow(width, fieldPassword, "Password", s.password.View()))

	label := "Log in"
	if s.mode == modeRegister {
		label = "Register"
	}
	button := components.NewButton(label, s.field == fieldSubmit, nil)
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, button.View()))
	b.WriteString("\n")
}

func (s *AccountScreen) renderRow(width int, f field, label, input string) string {
	prefix := "  "
	if s.field == f {
		prefix = "> "
	}
	row := fmt.Sprintf("%s%-10s %s", prefix, label, input)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, row) + "\n"
}
