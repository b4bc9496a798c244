package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jatin/qlock/internal/session"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func testSession(topic string) session.Session {
	s := session.New()
	s.Topic = topic
	s.Questions = []session.Question{session.NewQuestion(1, 0)}
	s.CreatedAt = time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	return s
}

func TestLoadEmpty(t *testing.T) {
	s := newTestStore(t)

	got, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestReplaceAllRoundTrip(t *testing.T) {
	s := newTestStore(t)

	a := testSession("Kinematics")
	b := testSession("Optics")
	b.Attempts = []session.Attempt{
		session.NewAttempt([]session.Result{{
			QuestionID:   b.Questions[0].ID,
			Identifier:   "Q1",
			Status:       session.StatusCorrect,
			TimeTaken:    12,
			TotalTime:    60,
			QuestionType: session.TypeSingleChoice,
		}}),
	}

	require.NoError(t, s.ReplaceAll([]session.Session{a, b}))

	got, err := s.Load()
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, a.ID, got[0].ID)
	assert.Equal(t, "Kinematics", got[0].Topic)
	assert.Equal(t, b.ID, got[1].ID)
	require.Len(t, got[1].Attempts, 1)
	assert.Equal(t, session.StatusCorrect, got[1].Attempts[0].Results[0].Status)
}

func TestReplaceAllOverwrites(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.ReplaceAll([]session.Session{testSession("A"), testSession("B")}))

	keep := testSession("C")
	require.NoError(t, s.ReplaceAll([]session.Session{keep}))

	got, err := s.Load()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, keep.ID, got[0].ID)
}

func TestLoadPreservesOrder(t *testing.T) {
	s := newTestStore(t)

	var want []session.Session
	for _, topic := range []string{"Z", "M", "A"} {
		want = append(want, testSession(topic))
	}
	require.NoError(t, s.ReplaceAll(want))

	got, err := s.Load()
	require.NoError(t, err)
	require.Len(t, got, 3)
	for i := range want {
		assert.Equal(t, want[i].Topic, got[i].Topic)
	}
}

func TestLoadSkipsCorruptRows(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.ReplaceAll([]session.Session{testSession("Good")}))
	_, err := s.db.Exec(
		`INSERT INTO sessions (id, position, data) VALUES (?, ?, ?)`,
		"bad", 99, "{not json")
	require.NoError(t, err)

	got, err := s.Load()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Good", got[0].Topic)
}

func TestSettings(t *testing.T) {
	s := newTestStore(t)

	got, err := s.GetSetting(KeyAuthToken)
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, s.SetSetting(KeyAuthToken, "tok-1"))
	require.NoError(t, s.SetSetting(KeyAuthToken, "tok-2"))

	got, err = s.GetSetting(KeyAuthToken)
	require.NoError(t, err)
	assert.Equal(t, "tok-2", got)

	require.NoError(t, s.DeleteSetting(KeyAuthToken))
	require.NoError(t, s.DeleteSetting(KeyAuthToken))

	got, err = s.GetSetting(KeyAuthToken)
	require.NoError(t, err)
	assert.Empty(t, got)
}
