// Package editor creates and edits practice sessions: topic, timer
// configuration, and the question list.
package editor

import (
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/jatin/qlock/internal/router"
	"github.com/jatin/qlock/internal/screen"
	"github.com/jatin/qlock/internal/session"
	"github.com/jatin/qlock/internal/sessionlist"
	"github.com/jatin/qlock/internal/ui/components"
	"github.com/jatin/qlock/internal/ui/layout"
)

// Fixed field rows before the question list starts.
const (
	fieldTopic = iota
	fieldSubtopic
	fieldTimerMode
	fieldTime
	fieldCount
	fixedFields
)

const (
	maxQuestions     = 50
	questionTimeStep = 5
	bulkAddCount     = 5
)

// EditorScreen edits one session. Changes are only persisted on save.
type EditorScreen struct {
	sess session.Session
	list *sessionlist.List

	topic    components.TextInput
	subtopic components.TextInput
	timeStr  components.TextInput

	// Inline identifier rename on the current question row.
	ident        components.TextInput
	editingIdent bool

	field  int
	errMsg string
}

var _ screen.Screen = (*EditorScreen)(nil)
var _ screen.KeyHintProvider = (*EditorScreen)(nil)
var _ screen.EscHandler = (*EditorScreen)(nil)

// New edits the given session. Pass session.New() to create one.
func New(s session.Session, list *sessionlist.List) *EditorScreen {
	e := &EditorScreen{
		sess: s,
		list: list,
	}
	e.topic = components.NewTextInput("Topic (required)", false, 60)
	e.topic.Model.SetValue(s.Topic)
	e.subtopic = components.NewTextInput("Subtopic (optional)", false, 60)
	e.subtopic.Model.SetValue(s.Subtopic)
	e.timeStr = components.NewTextInput("seconds", true, 6)
	e.timeStr.Model.SetValue(strconv.Itoa(e.timeValue()))
	return e
}

func (e *EditorScreen) Init() tea.Cmd {
	return e.topic.Init()
}

func (e *EditorScreen) Title() string {
	if e.sess.Topic == "" {
		return "New Session"
	}
	return "Edit Session"
}

func (e *EditorScreen) KeyHints() []layout.KeyHint {
	if e.editingIdent {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Rename"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	if e.onQuestionRow() {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Rename"},
			{Key: "←→", Description: "Type"},
			{Key: "+/-", Description: "Time"},
			{Key: "Ctrl+↑↓", Description: "Move"},
			{Key: "Ctrl+D", Description: "Delete"},
			{Key: "Ctrl+S", Description: "Save"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Field"},
		{Key: "←→", Description: "Adjust"},
		{Key: "Ctrl+S", Description: "Save"},
		{Key: "Esc", Description: "Cancel"},
	}
}

// rowCount includes fixed fields, one row per question, and save.
func (e *EditorScreen) rowCount() int {
	return fixedFields + len(e.sess.Questions) + 1
}

func (e *EditorScreen) onQuestionRow() bool {
	return e.field >= fixedFields && e.field < fixedFields+len(e.sess.Questions)
}

func (e *EditorScreen) questionIndex() int {
	return e.field - fixedFields
}

func (e *EditorScreen) onSaveRow() bool {
	return e.field == e.rowCount()-1
}

func (e *EditorScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return e, nil
	}
	key := kmsg.String()

	if e.editingIdent {
		switch key {
		case "enter":
			e.commitIdentifier()
			return e, nil
		case "esc":
			e.editingIdent = false
			return e, nil
		}
		var cmd tea.Cmd
		e.ident, cmd = e.ident.Update(msg)
		return e, cmd
	}

	switch key {
	case "up":
		if e.field > 0 {
			e.field--
		}
		return e, e.focusCmd()
	case "down", "tab":
		if e.field < e.rowCount()-1 {
			e.field++
		}
		return e, e.focusCmd()
	case "ctrl+s":
		return e.save()
	case "ctrl+b":
		e.bulkAdd(bulkAddCount)
		return e, nil
	case "ctrl+d":
		if e.onQuestionRow() {
			e.deleteQuestion(e.questionIndex())
		}
		return e, nil
	case "ctrl+up":
		if e.onQuestionRow() {
			e.moveQuestion(e.questionIndex(), -1)
		}
		return e, nil
	case "ctrl+down":
		if e.onQuestionRow() {
			e.moveQuestion(e.questionIndex(), 1)
		}
		return e, nil
	}

	switch {
	case e.field == fieldTopic:
		var cmd tea.Cmd
		e.topic, cmd = e.topic.Update(msg)
		return e, cmd
	case e.field == fieldSubtopic:
		var cmd tea.Cmd
		e.subtopic, cmd = e.subtopic.Update(msg)
		return e, cmd
	case e.field == fieldTimerMode:
		e.handleTimerModeKey(key)
	case e.field == fieldTime:
		var cmd tea.Cmd
		e.timeStr, cmd = e.timeStr.Update(msg)
		return e, cmd
	case e.field == fieldCount:
		e.handleCountKey(key)
	case e.onQuestionRow():
		if key == "enter" {
			return e, e.startIdentifierEdit()
		}
		e.handleQuestionKey(key)
	case e.onSaveRow():
		if key == "enter" {
			return e.save()
		}
	}
	return e, nil
}

func (e *EditorScreen) handleTimerModeKey(key string) {
	modes := []session.TimerMode{session.ModeUniform, session.ModeIndividual, session.ModeTotal}
	i := 0
	for j, m := range modes {
		if m == e.sess.TimerMode {
			i = j
		}
	}
	switch key {
	case "left", "h":
		i = (i + len(modes) - 1) % len(modes)
	case "right", "l", "enter", "space":
		i = (i + 1) % len(modes)
	default:
		return
	}
	// Time field means different things per mode; re-seed it.
	e.commitTimeField()
	e.sess.TimerMode = modes[i]
	e.timeStr.Model.SetValue(strconv.Itoa(e.timeValue()))
}

func (e *EditorScreen) handleCountKey(key string) {
	n := len(e.sess.Questions)
	switch key {
	case "left", "h", "-":
		if n > 1 {
			e.sess.Questions = e.sess.Questions[:n-1]
		}
	case "right", "l", "+", "=":
		if n < maxQuestions {
			e.sess.Questions = append(e.sess.Questions, session.NewQuestion(n+1, 0))
		}
	}
}

func (e *EditorScreen) handleQuestionKey(key string) {
	q := &e.sess.Questions[e.questionIndex()]
	types := []session.QuestionType{session.TypeSingleChoice, session.TypeMultiChoice, session.TypeNumerical}
	i := 0
	for j, t := range types {
		if t == q.Type {
			i = j
		}
	}
	switch key {
	case "left", "h":
		q.Type = types[(i+len(types)-1)%len(types)]
	case "right", "l", "space":
		q.Type = types[(i+1)%len(types)]
	case "+", "=":
		if q.Time == 0 {
			q.Time = e.timeValue()
		}
		q.Time += questionTimeStep
	case "-":
		if q.Time == 0 {
			q.Time = e.timeValue()
		}
		if q.Time-questionTimeStep >= session.MinQuestionTime {
			q.Time -= questionTimeStep
		}
	}
}

func (e *EditorScreen) bulkAdd(n int) {
	for i := 0; i < n && len(e.sess.Questions) < maxQuestions; i++ {
		e.sess.Questions = append(e.sess.Questions,
			session.NewQuestion(len(e.sess.Questions)+1, 0))
	}
}

// deleteQuestion removes one question and renumbers the default
// identifiers so the sequence stays dense.
func (e *EditorScreen) deleteQuestion(i int) {
	if len(e.sess.Questions) <= 1 {
		return
	}
	e.sess.Questions = append(e.sess.Questions[:i], e.sess.Questions[i+1:]...)
	e.renumber()
	if e.field >= fixedFields+len(e.sess.Questions) {
		e.field--
	}
}

// renumber keeps the default identifiers dense and positional.
// Custom labels are left alone.
func (e *EditorScreen) renumber() {
	for j := range e.sess.Questions {
		if isDefaultIdentifier(e.sess.Questions[j].Identifier) {
			e.sess.Questions[j].Identifier = "Q" + strconv.Itoa(j+1)
		}
	}
}

// isDefaultIdentifier reports whether id looks like a generated Q<n>
// label rather than one the user typed.
func isDefaultIdentifier(id string) bool {
	if len(id) < 2 || id[0] != 'Q' {
		return false
	}
	for _, r := range id[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// HandlesEsc keeps esc on this screen while a rename is in progress.
func (e *EditorScreen) HandlesEsc() bool {
	return e.editingIdent
}

func (e *EditorScreen) startIdentifierEdit() tea.Cmd {
	q := e.sess.Questions[e.questionIndex()]
	e.ident = components.NewTextInput("identifier", false, 24)
	e.ident.Model.SetValue(q.Identifier)
	e.editingIdent = true
	return e.ident.Init()
}

// commitIdentifier writes the rename back. An emptied input falls back
// to the positional default.
func (e *EditorScreen) commitIdentifier() {
	i := e.questionIndex()
	if v := strings.TrimSpace(e.ident.Value()); v != "" {
		e.sess.Questions[i].Identifier = v
	} else {
		e.sess.Questions[i].Identifier = "Q" + strconv.Itoa(i+1)
	}
	e.editingIdent = false
}

// moveQuestion swaps a question with its neighbor, keeping the cursor
// on the moved question.
func (e *EditorScreen) moveQuestion(i, dir int) {
	j := i + dir
	if j < 0 || j >= len(e.sess.Questions) {
		return
	}
	qs := e.sess.Questions
	qs[i], qs[j] = qs[j], qs[i]
	e.renumber()
	e.field = fixedFields + j
}

// timeValue returns the current meaning of the time field.
func (e *EditorScreen) timeValue() int {
	if e.sess.TimerMode == session.ModeTotal {
		return e.sess.TotalTime
	}
	return e.sess.TimePerQuestion
}

// commitTimeField writes the time input back into the session.
func (e *EditorScreen) commitTimeField() {
	v, err := e.timeStr.NumericValue()
	if err != nil || v <= 0 {
		return
	}
	if e.sess.TimerMode == session.ModeTotal {
		e.sess.TotalTime = v
	} else {
		e.sess.TimePerQuestion = v
	}
}

func (e *EditorScreen) save() (screen.Screen, tea.Cmd) {
	e.sess.Topic = e.topic.Value()
	e.sess.Subtopic = e.subtopic.Value()
	e.commitTimeField()

	if err := e.sess.Validate(); err != nil {
		e.errMsg = err.Error()
		return e, nil
	}

	if err := e.list.Upsert(e.sess); err != nil {
		e.errMsg = err.Error()
		return e, nil
	}
	return e, func() tea.Msg { return router.PopScreenMsg{} }
}

func (e *EditorScreen) focusCmd() tea.Cmd {
	switch e.field {
	case fieldTopic:
		return e.topic.Init()
	case fieldSubtopic:
		return e.subtopic.Init()
	case fieldTime:
		return e.timeStr.Init()
	}
	return nil
}
