// Package home lists the saved sessions and is the entry point to every
// other screen.
package home

import (
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/jatin/qlock/internal/account"
	"github.com/jatin/qlock/internal/backup"
	"github.com/jatin/qlock/internal/router"
	"github.com/jatin/qlock/internal/screen"
	accountscreen "github.com/jatin/qlock/internal/screens/account"
	"github.com/jatin/qlock/internal/screens/dashboard"
	"github.com/jatin/qlock/internal/screens/editor"
	"github.com/jatin/qlock/internal/screens/practice"
	"github.com/jatin/qlock/internal/session"
	"github.com/jatin/qlock/internal/sessionlist"
	"github.com/jatin/qlock/internal/sound"
	"github.com/jatin/qlock/internal/store"
	"github.com/jatin/qlock/internal/ui/components"
	"github.com/jatin/qlock/internal/ui/layout"
)

// Deps carries everything the home screen and its children need.
type Deps struct {
	List   *sessionlist.List
	Store  *store.Store
	Client *account.Client
	Sink   sound.Sink
}

// HomeScreen shows the session list with per-session actions.
type HomeScreen struct {
	deps     Deps
	selected int

	deleteConfirm bool
	errMsg        string
	statusMsg     string

	// Path prompt for importing a backup file.
	importing  bool
	importPath components.TextInput
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)
var _ screen.EscHandler = (*HomeScreen)(nil)

// New creates the home screen.
func New(deps Deps) *HomeScreen {
	return &HomeScreen{deps: deps}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Title() string {
	return "Sessions"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	if h.deleteConfirm {
		return []layout.KeyHint{
			{Key: "Y", Description: "Delete"},
			{Key: "N", Description: "Keep"},
		}
	}
	if h.importing {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Import"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Start"},
		{Key: "N", Description: "New"},
		{Key: "E", Description: "Edit"},
		{Key: "D", Description: "Delete"},
		{Key: "S", Description: "Stats"},
		{Key: "X", Description: "Export"},
		{Key: "I", Description: "Import"},
		{Key: "A", Description: "Account"},
		{Key: "Q", Description: "Quit"},
	}
}

// HandlesEsc keeps esc on this screen while a prompt is open.
func (h *HomeScreen) HandlesEsc() bool {
	return h.importing || h.deleteConfirm
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return h, nil
	}
	h.errMsg = ""
	h.statusMsg = ""

	if h.deleteConfirm {
		switch kmsg.String() {
		case "y", "Y":
			h.deleteConfirm = false
			return h, h.deleteSelected()
		case "n", "N", "esc":
			h.deleteConfirm = false
		}
		return h, nil
	}

	if h.importing {
		switch kmsg.String() {
		case "enter":
			h.importing = false
			h.runImport(h.importPath.Value())
			return h, nil
		case "esc":
			h.importing = false
			return h, nil
		}
		var cmd tea.Cmd
		h.importPath, cmd = h.importPath.Update(msg)
		return h, cmd
	}

	switch kmsg.String() {
	case "up", "k":
		if h.selected > 0 {
			h.selected--
		}
	case "down", "j":
		if h.selected < h.deps.List.Len()-1 {
			h.selected++
		}
	case "enter":
		return h, h.startSelected()
	case "n":
		return h, func() tea.Msg {
			return router.PushScreenMsg{Screen: editor.New(session.New(), h.deps.List)}
		}
	case "e":
		if sess, ok := h.current(); ok {
			return h, func() tea.Msg {
				return router.PushScreenMsg{Screen: editor.New(sess, h.deps.List)}
			}
		}
	case "d":
		if _, ok := h.current(); ok {
			h.deleteConfirm = true
		}
	case "s":
		return h, func() tea.Msg {
			return router.PushScreenMsg{Screen: dashboard.New(h.deps.List)}
		}
	case "x":
		path := backup.Filename(time.Now())
		if err := backup.Export(path, h.deps.List.All()); err != nil {
			h.errMsg = err.Error()
			return h, nil
		}
		h.statusMsg = "Exported to " + path
	case "i":
		h.importPath = components.NewTextInput("path to backup JSON", false, 120)
		h.importing = true
		return h, h.importPath.Init()
	case "a":
		return h, func() tea.Msg {
			return router.PushScreenMsg{
				Screen: accountscreen.New(h.deps.Client, h.deps.Store, h.deps.List),
			}
		}
	case "q":
		return h, tea.Quit
	}
	return h, nil
}

func (h *HomeScreen) current() (session.Session, bool) {
	items := h.deps.List.All()
	if h.selected < 0 || h.selected >= len(items) {
		return session.Session{}, false
	}
	return items[h.selected], true
}

func (h *HomeScreen) startSelected() tea.Cmd {
	sess, ok := h.current()
	if !ok {
		return nil
	}
	if err := sess.Validate(); err != nil {
		h.errMsg = err.Error()
		return nil
	}
	return func() tea.Msg {
		return router.PushScreenMsg{
			Screen: practice.New(sess, practice.Deps{List: h.deps.List, Sink: h.deps.Sink}),
		}
	}
}

// runImport merges sessions from a backup file, reporting via the
// status and error lines.
func (h *HomeScreen) runImport(path string) {
	sessions, err := backup.Import(path)
	if err != nil {
		h.errMsg = err.Error()
		return
	}
	added, err := h.deps.List.Merge(sessions)
	if err != nil {
		h.errMsg = err.Error()
		return
	}
	h.statusMsg = fmt.Sprintf("Imported %d new session(s), %d already present.",
		added, len(sessions)-added)
}

func (h *HomeScreen) deleteSelected() tea.Cmd {
	sess, ok := h.current()
	if !ok {
		return nil
	}
	if err := h.deps.List.Delete(sess.ID); err != nil {
		h.errMsg = err.Error()
		return nil
	}
	if h.selected >= h.deps.List.Len() && h.selected > 0 {
		h.selected--
	}
	return nil
}
