// Package app wires the screens into the root Bubble Tea model.
package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/jatin/qlock/internal/account"
	"github.com/jatin/qlock/internal/router"
	"github.com/jatin/qlock/internal/screen"
	"github.com/jatin/qlock/internal/screens/home"
	"github.com/jatin/qlock/internal/sessionlist"
	"github.com/jatin/qlock/internal/sound"
	"github.com/jatin/qlock/internal/store"
	"github.com/jatin/qlock/internal/ui/layout"
)

// Options carries the wired dependencies into the TUI.
type Options struct {
	List   *sessionlist.List
	Store  *store.Store
	Client *account.Client
	Sink   sound.Sink
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	opts   Options
	width  int
	height int
}

// newAppModel creates a new AppModel with the home screen.
func newAppModel(opts Options) AppModel {
	if opts.Sink == nil {
		opts.Sink = sound.Nop{}
	}
	homeScreen := home.New(home.Deps{
		List:   opts.List,
		Store:  opts.Store,
		Client: opts.Client,
		Sink:   opts.Sink,
	})
	return AppModel{
		router: router.New(homeScreen),
		opts:   opts,
	}
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			// Screens mid-flow own esc themselves.
			if h, ok := m.router.Active().(screen.EscHandler); ok && h.HandlesEsc() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.headerStatus(), m.width)

	footerHints := []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
	if provider, ok := active.(screen.KeyHintProvider); ok {
		footerHints = append(provider.KeyHints(), layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// headerStatus is the right side of the header: the signed-in state or
// the local session count.
func (m AppModel) headerStatus() string {
	if m.opts.Client != nil && m.opts.Client.Authenticated() {
		return "signed in"
	}
	if m.opts.List != nil {
		n := m.opts.List.Len()
		if n == 1 {
			return "1 session"
		}
		return fmt.Sprintf("%d sessions", n)
	}
	return ""
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
