package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TimerMode controls how per-question time budgets are derived.
type TimerMode string

const (
	ModeUniform    TimerMode = "uniform"    // every question gets TimePerQuestion
	ModeIndividual TimerMode = "individual" // each question carries its own time
	ModeTotal      TimerMode = "total"      // TotalTime split evenly across questions
)

// QuestionType determines the answer input shape.
type QuestionType string

const (
	TypeSingleChoice QuestionType = "mcq-single"
	TypeMultiChoice  QuestionType = "mcq-multi"
	TypeNumerical    QuestionType = "numerical"
)

// RawStatus is the outcome recorded during the timed phase. It is never
// persisted; review resolves every raw result into a FinalStatus.
type RawStatus string

const (
	RawDone    RawStatus = "done"
	RawSkipped RawStatus = "skipped"
	RawTimeout RawStatus = "timeout"
)

// FinalStatus is the outcome after answer-key review. "done" is not
// representable here: a done result must be marked correct or incorrect,
// or it is coerced to skipped at submit.
type FinalStatus string

const (
	StatusCorrect   FinalStatus = "correct"
	StatusIncorrect FinalStatus = "incorrect"
	StatusSkipped   FinalStatus = "skipped"
	StatusTimeout   FinalStatus = "timeout"
)

// DefaultOptions are the choice labels offered to new questions.
var DefaultOptions = []string{"A", "B", "C", "D", "E", "F", "G"}

const (
	DefaultTimePerQuestion = 60
	DefaultTotalTime       = 3600
	MinQuestionTime        = 10
)

var (
	ErrEmptyTopic  = errors.New("session topic must not be empty")
	ErrNoQuestions = errors.New("session must have at least one question")
)

// Session is a named set of practice questions with timer configuration
// and historical attempts. ID is the stable local identity; RemoteID is
// an external reference set once the session has been synced and is
// never used for equality.
type Session struct {
	ID              string     `json:"id"`
	RemoteID        string     `json:"_id,omitempty"`
	Topic           string     `json:"topic"`
	Subtopic        string     `json:"subtopic"`
	TimerMode       TimerMode  `json:"timerMode"`
	TimePerQuestion int        `json:"timePerQuestion"`
	TotalTime       int        `json:"totalTime"`
	Questions       []Question `json:"questions"`
	Attempts        []Attempt  `json:"attempts"`
	CreatedAt       time.Time  `json:"createdAt"`
}

// Question is one practice slot. Order within the session's question
// list defines the practice sequence. Time is only consulted in
// individual timer mode.
type Question struct {
	ID         string       `json:"id"`
	Identifier string       `json:"identifier"`
	Time       int          `json:"time"`
	Type       QuestionType `json:"type"`
	Options    []string     `json:"options"`
}

// Attempt is one completed timed run through a session's questions,
// finalized after review. Append-only; never mutated after creation.
type Attempt struct {
	ID      string    `json:"id"`
	Date    time.Time `json:"date"`
	Results []Result  `json:"results"`
}

// Result is the per-question outcome within an attempt, in terminal
// phase. Invariant: 0 <= TimeTaken <= TotalTime.
type Result struct {
	QuestionID   string       `json:"questionId"`
	Identifier   string       `json:"identifier"`
	Status       FinalStatus  `json:"status"`
	TimeTaken    int          `json:"timeTaken"`
	TotalTime    int          `json:"totalTime"`
	UserAnswer   Answer       `json:"userAnswer"`
	QuestionType QuestionType `json:"questionType"`
}

// RawResult is the per-question outcome produced by the timed phase,
// before review. UserAnswer is empty unless Status is RawDone.
type RawResult struct {
	QuestionID   string
	Identifier   string
	Status       RawStatus
	TimeTaken    int
	TotalTime    int
	UserAnswer   Answer
	QuestionType QuestionType
}

// New creates a session with one blank single-choice question, matching
// the editor's starting point.
func New() Session {
	now := time.Now()
	return Session{
		ID:              uuid.New().String(),
		TimerMode:       ModeUniform,
		TimePerQuestion: DefaultTimePerQuestion,
		TotalTime:       DefaultTotalTime,
		Questions:       []Question{NewQuestion(1, DefaultTimePerQuestion)},
		Attempts:        []Attempt{},
		CreatedAt:       now,
	}
}

// NewQuestion creates question number n with the given time budget.
func NewQuestion(n, seconds int) Question {
	return Question{
		ID:         uuid.New().String(),
		Identifier: fmt.Sprintf("Q%d", n),
		Time:       seconds,
		Type:       TypeSingleChoice,
		Options:    append([]string(nil), DefaultOptions...),
	}
}

// NewAttempt wraps finalized review results into an attempt record.
func NewAttempt(results []Result) Attempt {
	return Attempt{
		ID:      uuid.New().String(),
		Date:    time.Now(),
		Results: results,
	}
}

// Validate checks the editor's save/start preconditions.
func (s Session) Validate() error {
	if strings.TrimSpace(s.Topic) == "" {
		return ErrEmptyTopic
	}
	if len(s.Questions) == 0 {
		return ErrNoQuestions
	}
	return nil
}

// OptionsFor returns the question's choice labels, falling back to the
// defaults when the question carries none.
func (q Question) OptionsFor() []string {
	if len(q.Options) > 0 {
		return q.Options
	}
	return DefaultOptions
}

// Answer is the captured user answer, a tagged variant keyed by question
// type: exactly one branch is populated. The zero value means "no
// answer" and marshals as JSON null.
type Answer struct {
	Kind    QuestionType
	Choice  string   // single choice
	Choices []string // multi choice, kept sorted
	Text    string   // numerical, trimmed
}

// IsEmpty reports whether no answer was captured.
func (a Answer) IsEmpty() bool {
	return a.Choice == "" && len(a.Choices) == 0 && a.Text == ""
}

// Display renders the answer for UI display.
func (a Answer) Display() string {
	switch {
	case len(a.Choices) > 0:
		return strings.Join(a.Choices, ", ")
	case a.Choice != "":
		return a.Choice
	default:
		return a.Text
	}
}

// SingleAnswer returns a single-choice answer, empty if no option was
// chosen.
func SingleAnswer(choice string) Answer {
	if choice == "" {
		return Answer{}
	}
	return Answer{Kind: TypeSingleChoice, Choice: choice}
}

// MultiAnswer returns a multi-choice answer with the chosen options
// sorted. An empty set maps to the empty answer.
func MultiAnswer(choices []string) Answer {
	if len(choices) == 0 {
		return Answer{}
	}
	sorted := append([]string(nil), choices...)
	sort.Strings(sorted)
	return Answer{Kind: TypeMultiChoice, Choices: sorted}
}

// NumericalAnswer returns a numerical answer with surrounding whitespace
// trimmed, empty if nothing remains.
func NumericalAnswer(text string) Answer {
	text = strings.TrimSpace(text)
	if text == "" {
		return Answer{}
	}
	return Answer{Kind: TypeNumerical, Text: text}
}

// MarshalJSON emits the wire shape the web client used: a string for
// single-choice and numerical answers, an array for multi-choice, and
// null when empty.
func (a Answer) MarshalJSON() ([]byte, error) {
	switch a.Kind {
	case TypeMultiChoice:
		if len(a.Choices) == 0 {
			return []byte("null"), nil
		}
		return json.Marshal(a.Choices)
	case TypeNumerical:
		if a.Text == "" {
			return []byte("null"), nil
		}
		return json.Marshal(a.Text)
	default:
		if a.Choice == "" {
			return []byte("null"), nil
		}
		return json.Marshal(a.Choice)
	}
}

// UnmarshalJSON accepts null, a string, or an array of strings. Single
// choice and numerical share the string shape on the wire, so string
// input populates both branches; they display identically.
func (a *Answer) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*a = Answer{}
		return nil
	}
	if strings.HasPrefix(trimmed, "[") {
		var choices []string
		if err := json.Unmarshal(data, &choices); err != nil {
			return err
		}
		*a = MultiAnswer(choices)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*a = Answer{Kind: TypeSingleChoice, Choice: s, Text: s}
	return nil
}
