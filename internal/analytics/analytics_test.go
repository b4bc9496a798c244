package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jatin/qlock/internal/session"
)

var testNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func result(status session.FinalStatus, taken int) session.Result {
	return session.Result{
		Status:       status,
		TimeTaken:    taken,
		TotalTime:    60,
		QuestionType: session.TypeSingleChoice,
	}
}

func attemptAt(date time.Time, results ...session.Result) session.Attempt {
	return session.Attempt{ID: "a", Date: date, Results: results}
}

func topicSession(topic, subtopic string, attempts ...session.Attempt) session.Session {
	return session.Session{
		ID:       topic + "-" + subtopic,
		Topic:    topic,
		Subtopic: subtopic,
		Attempts: attempts,
	}
}

func TestCalculate_Empty(t *testing.T) {
	r := Calculate(nil, testNow)

	assert.Equal(t, 0, r.Accuracy, "no division by zero on empty input")
	assert.Equal(t, 0, r.TotalQuestions)
	assert.Empty(t, r.Topics)
	assert.Empty(t, r.WeakTopics)
}

func TestCalculate_OverallRollup(t *testing.T) {
	sessions := []session.Session{
		topicSession("Networks", "", attemptAt(testNow,
			result(session.StatusCorrect, 3),
			result(session.StatusTimeout, 10),
		)),
	}

	r := Calculate(sessions, testNow)

	assert.Equal(t, 1, r.TotalSessions)
	assert.Equal(t, 1, r.TotalAttempts)
	assert.Equal(t, 2, r.TotalQuestions)
	assert.Equal(t, 1, r.Correct)
	assert.Equal(t, 1, r.Timeout)
	assert.Equal(t, 50, r.Accuracy, "round(1/2*100)")
	assert.Equal(t, 13, r.TotalTimeSpent)
	assert.Equal(t, 7, r.AvgTime, "round(13/2)")
}

func TestCalculate_AccuracyBounds(t *testing.T) {
	sessions := []session.Session{
		topicSession("A", "", attemptAt(testNow, result(session.StatusCorrect, 1))),
		topicSession("B", "", attemptAt(testNow, result(session.StatusIncorrect, 1))),
	}

	r := Calculate(sessions, testNow)
	for _, ts := range r.Topics {
		assert.GreaterOrEqual(t, ts.Accuracy, 0)
		assert.LessOrEqual(t, ts.Accuracy, 100)
	}
}

func TestCalculate_WeakTopics(t *testing.T) {
	lowAccuracy := make([]session.Result, 0, 5)
	for i := 0; i < 5; i++ {
		lowAccuracy = append(lowAccuracy, result(session.StatusIncorrect, 5))
	}

	sessions := []session.Session{
		// 0% over 5 questions: weak.
		topicSession("Thermo", "", attemptAt(testNow, lowAccuracy...)),
		// 0% but only 2 questions: too little data to flag.
		topicSession("Optics", "", attemptAt(testNow,
			result(session.StatusIncorrect, 5),
			result(session.StatusSkipped, 0),
		)),
		// 100%: not weak.
		topicSession("Algebra", "", attemptAt(testNow,
			result(session.StatusCorrect, 5),
			result(session.StatusCorrect, 5),
			result(session.StatusCorrect, 5),
			result(session.StatusCorrect, 5),
			result(session.StatusCorrect, 5),
		)),
	}

	r := Calculate(sessions, testNow)
	assert.Equal(t, []string{"Thermo"}, r.WeakTopics)
}

func TestCalculate_TrendWindows(t *testing.T) {
	// 6 attempts: first at 0% accuracy, the following five at 100%.
	// Recent window = last 5 (mean 100), previous window = first 1
	// (mean 0) → trend +100.
	attempts := []session.Attempt{
		attemptAt(testNow.AddDate(0, 0, -6), result(session.StatusIncorrect, 1)),
	}
	for i := 5; i >= 1; i-- {
		attempts = append(attempts, attemptAt(testNow.AddDate(0, 0, -i), result(session.StatusCorrect, 1)))
	}

	r := Calculate([]session.Session{topicSession("Signals", "", attempts...)}, testNow)
	require.Len(t, r.Topics, 1)
	assert.Equal(t, 100, r.Topics[0].Trend)
}

func TestCalculate_TrendZeroWhenWindowEmpty(t *testing.T) {
	// Fewer attempts than one window: no preceding window, trend 0.
	attempts := []session.Attempt{
		attemptAt(testNow.AddDate(0, 0, -2), result(session.StatusCorrect, 1)),
		attemptAt(testNow.AddDate(0, 0, -1), result(session.StatusIncorrect, 1)),
	}

	r := Calculate([]session.Session{topicSession("Signals", "", attempts...)}, testNow)
	require.Len(t, r.Topics, 1)
	assert.Equal(t, 0, r.Topics[0].Trend)
}

func TestCalculate_TrendIsAttemptLevel(t *testing.T) {
	// One big 0% attempt followed by five one-question 100% attempts.
	// Attempt-level means are compared, so the big attempt counts once,
	// not per question.
	big := make([]session.Result, 0, 10)
	for i := 0; i < 10; i++ {
		big = append(big, result(session.StatusIncorrect, 1))
	}
	attempts := []session.Attempt{attemptAt(testNow.AddDate(0, 0, -7), big...)}
	for i := 5; i >= 1; i-- {
		attempts = append(attempts, attemptAt(testNow.AddDate(0, 0, -i), result(session.StatusCorrect, 1)))
	}

	r := Calculate([]session.Session{topicSession("Signals", "", attempts...)}, testNow)
	require.Len(t, r.Topics, 1)
	assert.Equal(t, 100, r.Topics[0].Trend)
}

func TestCalculate_SubtopicBreakdown(t *testing.T) {
	sessions := []session.Session{
		topicSession("Math", "Calculus", attemptAt(testNow, result(session.StatusCorrect, 1))),
		topicSession("Math", "Matrices", attemptAt(testNow,
			result(session.StatusIncorrect, 1),
			result(session.StatusCorrect, 1),
		)),
	}

	r := Calculate(sessions, testNow)
	require.Len(t, r.Topics, 1)
	subs := r.Topics[0].Subtopics
	require.Len(t, subs, 2)
	assert.Equal(t, "Calculus", subs[0].Subtopic)
	assert.Equal(t, 100, subs[0].Accuracy)
	assert.Equal(t, "Matrices", subs[1].Subtopic)
	assert.Equal(t, 50, subs[1].Accuracy)
}

func TestCalculate_RecentWindow(t *testing.T) {
	sessions := []session.Session{
		topicSession("Old", "", attemptAt(testNow.AddDate(0, 0, -10), result(session.StatusIncorrect, 1))),
		topicSession("New", "", attemptAt(testNow.AddDate(0, 0, -1), result(session.StatusCorrect, 1))),
	}

	r := Calculate(sessions, testNow)
	assert.Equal(t, 1, r.RecentAttempts)
	assert.Equal(t, 100, r.RecentAccuracy)
}

func TestCalculate_Streaks(t *testing.T) {
	var attempts []session.Attempt
	// Three consecutive days ending yesterday, gap, then two more days.
	for _, daysAgo := range []int{1, 2, 3, 7, 8} {
		attempts = append(attempts, attemptAt(testNow.AddDate(0, 0, -daysAgo), result(session.StatusCorrect, 1)))
	}

	r := Calculate([]session.Session{topicSession("S", "", attempts...)}, testNow)
	assert.Equal(t, 3, r.CurrentStreak, "today missing does not break the run")
	assert.Equal(t, 3, r.MaxStreak)
}

func TestCalculate_Idempotent(t *testing.T) {
	sessions := []session.Session{
		topicSession("Networks", "TCP", attemptAt(testNow,
			result(session.StatusCorrect, 3),
			result(session.StatusSkipped, 0),
		)),
	}

	first := Calculate(sessions, testNow)
	second := Calculate(sessions, testNow)
	assert.Equal(t, first, second)
}
