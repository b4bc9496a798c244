package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/jatin/qlock/internal/ui/theme"
)

// OptionPicker navigates a vertical list of answer options. Selection
// state lives with the caller; the picker only tracks the cursor so
// the same component serves single-choice and multi-choice questions.
type OptionPicker struct {
	Options []string
	Cursor  int
	Multi   bool
}

// NewOptionPicker creates a picker over the given option labels.
func NewOptionPicker(options []string, multi bool) OptionPicker {
	return OptionPicker{Options: options, Multi: multi}
}

// Current returns the option label under the cursor.
func (p OptionPicker) Current() string {
	if p.Cursor < 0 || p.Cursor >= len(p.Options) {
		return ""
	}
	return p.Options[p.Cursor]
}

// Update handles cursor movement.
func (p OptionPicker) Update(msg tea.Msg) (OptionPicker, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if p.Cursor > 0 {
			p.Cursor--
		}
	case "down", "j":
		if p.Cursor < len(p.Options)-1 {
			p.Cursor++
		}
	}
	return p, nil
}

// View renders the options. chosen reports whether an option label is
// currently selected.
func (p OptionPicker) View(chosen func(string) bool) string {
	var s string
	for i, opt := range p.Options {
		prefix := "  "
		if i == p.Cursor {
			prefix = "> "
		}

		marker := "( )"
		if p.Multi {
			marker = "[ ]"
		}
		if chosen != nil && chosen(opt) {
			if p.Multi {
				marker = "[x]"
			} else {
				marker = "(x)"
			}
		}

		line := fmt.Sprintf("%s%s %s", prefix, marker, opt)

		switch {
		case i == p.Cursor:
			s += lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(line) + "\n"
		case chosen != nil && chosen(opt):
			s += lipgloss.NewStyle().Foreground(theme.Secondary).Render(line) + "\n"
		default:
			s += lipgloss.NewStyle().Foreground(theme.Text).Render(line) + "\n"
		}
	}
	return s
}
