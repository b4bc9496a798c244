package session

import (
	"encoding/json"
	"testing"
)

func TestAnswer_MarshalShapes(t *testing.T) {
	tests := []struct {
		name   string
		answer Answer
		want   string
	}{
		{"empty is null", Answer{}, `null`},
		{"single choice is a string", SingleAnswer("B"), `"B"`},
		{"multi choice is a sorted array", MultiAnswer([]string{"C", "A"}), `["A","C"]`},
		{"numerical is a string", NumericalAnswer(" 3.14 "), `"3.14"`},
		{"empty multi is null", MultiAnswer(nil), `null`},
		{"blank numerical is null", NumericalAnswer("   "), `null`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := json.Marshal(tt.answer)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("marshal = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestAnswer_UnmarshalRoundTrip(t *testing.T) {
	for _, raw := range []string{`null`, `"A"`, `["A","C"]`} {
		var a Answer
		if err := json.Unmarshal([]byte(raw), &a); err != nil {
			t.Fatalf("unmarshal %s: %v", raw, err)
		}
		got, err := json.Marshal(a)
		if err != nil {
			t.Fatalf("re-marshal: %v", err)
		}
		if string(got) != raw {
			t.Errorf("round trip %s -> %s", raw, got)
		}
	}
}

func TestResult_JSONWireShape(t *testing.T) {
	r := Result{
		QuestionID:   "abc",
		Identifier:   "Q1",
		Status:       StatusCorrect,
		TimeTaken:    3,
		TotalTime:    10,
		UserAnswer:   SingleAnswer("A"),
		QuestionType: TypeSingleChoice,
	}

	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded["status"] != "correct" {
		t.Errorf("status = %v", decoded["status"])
	}
	if decoded["userAnswer"] != "A" {
		t.Errorf("userAnswer = %v, want flat string", decoded["userAnswer"])
	}
	if decoded["questionType"] != "mcq-single" {
		t.Errorf("questionType = %v", decoded["questionType"])
	}
}

func TestSession_Validate(t *testing.T) {
	s := New()
	if err := s.Validate(); err != ErrEmptyTopic {
		t.Errorf("Validate() = %v, want ErrEmptyTopic", err)
	}

	s.Topic = "  "
	if err := s.Validate(); err != ErrEmptyTopic {
		t.Errorf("Validate() with blank topic = %v, want ErrEmptyTopic", err)
	}

	s.Topic = "Networks"
	s.Questions = nil
	if err := s.Validate(); err != ErrNoQuestions {
		t.Errorf("Validate() = %v, want ErrNoQuestions", err)
	}

	s.Questions = []Question{NewQuestion(1, 60)}
	if err := s.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestNew_Defaults(t *testing.T) {
	s := New()
	if s.TimerMode != ModeUniform {
		t.Errorf("TimerMode = %s", s.TimerMode)
	}
	if s.TimePerQuestion != DefaultTimePerQuestion {
		t.Errorf("TimePerQuestion = %d", s.TimePerQuestion)
	}
	if len(s.Questions) != 1 || s.Questions[0].Identifier != "Q1" {
		t.Errorf("Questions = %+v", s.Questions)
	}
	if s.ID == "" || s.Questions[0].ID == "" {
		t.Error("ids not generated")
	}
}
