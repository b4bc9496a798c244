// Package account is the login, register and sync screen.
package account

import (
	"context"
	"time"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog/log"

	"github.com/jatin/qlock/internal/account"
	"github.com/jatin/qlock/internal/screen"
	"github.com/jatin/qlock/internal/session"
	"github.com/jatin/qlock/internal/sessionlist"
	"github.com/jatin/qlock/internal/store"
	"github.com/jatin/qlock/internal/ui/components"
	"github.com/jatin/qlock/internal/ui/layout"
)

const requestTimeout = 20 * time.Second

type mode int

const (
	modeLogin mode = iota
	modeRegister
	modeProfile
)

type field int

const (
	fieldName field = iota
	fieldEmail
	fieldPassword
	fieldSubmit
)

type authResultMsg struct {
	creds account.Credentials
	err   error
}

type syncResultMsg struct {
	sessions []session.Session
	fetched  bool
	err      error
}

type logoutMsg struct{}

// AccountScreen handles authentication and cloud sync.
type AccountScreen struct {
	client *account.Client
	store  *store.Store
	list   *sessionlist.List

	mode  mode
	field field
	user  account.User

	name     components.TextInput
	email    components.TextInput
	password components.TextInput

	busy   bool
	status string
	errMsg string
}

var _ screen.Screen = (*AccountScreen)(nil)
var _ screen.KeyHintProvider = (*AccountScreen)(nil)

// New creates the account screen. An authenticated client opens on the
// profile view, otherwise on the login form.
func New(client *account.Client, st *store.Store, list *sessionlist.List) *AccountScreen {
	s := &AccountScreen{
		client:   client,
		store:    st,
		list:     list,
		mode:     modeLogin,
		field:    fieldEmail,
		name:     components.NewTextInput("Name", false, 60),
		email:    components.NewTextInput("Email", false, 80),
		password: components.NewTextInput("Password", false, 80),
	}
	s.password.Model.EchoMode = textinput.EchoPassword
	if client.Authenticated() {
		s.mode = modeProfile
	}
	return s
}

func (s *AccountScreen) Init() tea.Cmd {
	if s.mode == modeProfile {
		s.busy = true
		s.status = "Loading profile..."
		return s.loadProfile()
	}
	return s.focusCmd()
}

func (s *AccountScreen) Title() string {
	return "Account"
}

func (s *AccountScreen) KeyHints() []layout.KeyHint {
	if s.mode == modeProfile {
		return []layout.KeyHint{
			{Key: "S", Description: "Sync now"},
			{Key: "F", Description: "Fetch remote"},
			{Key: "L", Description: "Log out"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Submit"},
		{Key: "Ctrl+R", Description: "Login/Register"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *AccountScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case authResultMsg:
		return s.handleAuthResult(msg)
	case syncResultMsg:
		return s.handleSyncResult(msg)
	case logoutMsg:
		s.busy = false
		s.mode = modeLogin
		s.field = fieldEmail
		s.user = account.User{}
		s.status = "Logged out."
		return s, s.focusCmd()
	case tea.KeyMsg:
		if s.busy {
			return s, nil
		}
		if s.mode == modeProfile {
			return s.handleProfileKey(msg)
		}
		return s.handleFormKey(msg)
	}
	return s, nil
}

func (s *AccountScreen) handleAuthResult(msg authResultMsg) (screen.Screen, tea.Cmd) {
	s.busy = false
	if msg.err != nil {
		s.errMsg = msg.err.Error()
		s.status = ""
		if s.mode == modeProfile {
			// Stored token no longer works; fall back to the form.
			s.mode = modeLogin
			s.field = fieldEmail
			return s, s.focusCmd()
		}
		return s, nil
	}
	if msg.creds.Token != "" {
		s.client.SetToken(msg.creds.Token)
		if err := s.store.SetSetting(store.KeyAuthToken, msg.creds.Token); err != nil {
			log.Error().Err(err).Msg("persist auth token")
		}
	}
	s.user = msg.creds.User
	s.mode = modeProfile
	s.errMsg = ""
	s.status = "Signed in as " + msg.creds.User.Email
	s.password.Model.SetValue("")
	return s, nil
}

func (s *AccountScreen) handleSyncResult(msg syncResultMsg) (screen.Screen, tea.Cmd) {
	s.busy = false
	if msg.err != nil {
		s.errMsg = msg.err.Error()
		s.status = ""
		return s, nil
	}
	if err := s.list.ReplaceAll(msg.sessions); err != nil {
		s.errMsg = err.Error()
		s.status = ""
		return s, nil
	}
	if err := s.store.SetSetting(store.KeySynced, "true"); err != nil {
		log.Error().Err(err).Msg("persist sync flag")
	}
	s.errMsg = ""
	if msg.fetched {
		s.status = "Fetched remote sessions."
	} else {
		s.status = "Synced."
	}
	return s, nil
}

func (s *AccountScreen) handleProfileKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "s":
		s.busy = true
		s.errMsg = ""
		s.status = "Syncing..."
		return s, s.syncNow()
	case "f":
		s.busy = true
		s.errMsg = ""
		s.status = "Fetching..."
		return s, s.fetchRemote()
	case "l":
		s.busy = true
		s.errMsg = ""
		return s, s.logout()
	}
	return s, nil
}

func (s *AccountScreen) handleFormKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "ctrl+r":
		if s.mode == modeLogin {
			s.mode = modeRegister
			s.field = fieldName
		} else {
			s.mode = modeLogin
			s.field = fieldEmail
		}
		s.errMsg = ""
		return s, s.focusCmd()
	case "tab", "down":
		s.field = s.nextField(1)
		return s, s.focusCmd()
	case "shift+tab", "up":
		s.field = s.nextField(-1)
		return s, s.focusCmd()
	case "enter":
		if s.field != fieldSubmit {
			s.field = s.nextField(1)
			return s, s.focusCmd()
		}
		return s.submit()
	}

	var cmd tea.Cmd
	switch s.field {
	case fieldName:
		s.name, cmd = s.name.Update(msg)
	case fieldEmail:
		s.email, cmd = s.email.Update(msg)
	case fieldPassword:
		s.password, cmd = s.password.Update(msg)
	}
	return s, cmd
}

// nextField steps through the visible form fields, skipping the name
// field on the login form.
func (s *AccountScreen) nextField(dir int) field {
	first := fieldEmail
	if s.mode == modeRegister {
		first = fieldName
	}
	f := s.field + field(dir)
	if f < first {
		return fieldSubmit
	}
	if f > fieldSubmit {
		return first
	}
	return f
}

func (s *AccountScreen) focusCmd() tea.Cmd {
	s.name.Model.Blur()
	s.email.Model.Blur()
	s.password.Model.Blur()
	switch s.field {
	case fieldName:
		return s.name.Init()
	case fieldEmail:
		return s.email.Init()
	case fieldPassword:
		return s.password.Init()
	}
	return nil
}

func (s *AccountScreen) submit() (screen.Screen, tea.Cmd) {
	email, password := s.email.Value(), s.password.Value()
	if email == "" || password == "" {
		s.errMsg = "email and password are required"
		return s, nil
	}
	name := s.name.Value()
	if s.mode == modeRegister && name == "" {
		s.errMsg = "name is required"
		return s, nil
	}

	s.busy = true
	s.errMsg = ""
	s.status = "Signing in..."
	register := s.mode == modeRegister
	client := s.client
	return s, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		var creds account.Credentials
		var err error
		if register {
			creds, err = client.Register(ctx, name, email, password)
		} else {
			creds, err = client.Login(ctx, email, password)
		}
		return authResultMsg{creds: creds, err: err}
	}
}

func (s *AccountScreen) loadProfile() tea.Cmd {
	client := s.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		user, err := client.Me(ctx)
		if err != nil {
			return authResultMsg{err: err}
		}
		return authResultMsg{creds: account.Credentials{User: user}}
	}
}

func (s *AccountScreen) syncNow() tea.Cmd {
	client := s.client
	local := s.list.All()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		merged, err := client.SyncLocal(ctx, local)
		return syncResultMsg{sessions: merged, err: err}
	}
}

func (s *AccountScreen) fetchRemote() tea.Cmd {
	client := s.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		remote, err := client.FetchRemote(ctx)
		return syncResultMsg{sessions: remote, fetched: true, err: err}
	}
}

func (s *AccountScreen) logout() tea.Cmd {
	client := s.client
	st := s.store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		if err := client.Logout(ctx); err != nil {
			log.Warn().Err(err).Msg("remote logout")
		}
		client.SetToken("")
		if err := st.DeleteSetting(store.KeyAuthToken); err != nil {
			log.Error().Err(err).Msg("clear auth token")
		}
		if err := st.DeleteSetting(store.KeySynced); err != nil {
			log.Error().Err(err).Msg("clear sync flag")
		}
		return logoutMsg{}
	}
}
