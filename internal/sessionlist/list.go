// Package sessionlist holds the authoritative in-memory session list
// shared by every screen. All mutations go through List, which writes
// the whole list back to the store after each change, so the database
// and the UI can never disagree.
package sessionlist

import (
	"fmt"

	"github.com/jatin/qlock/internal/backup"
	"github.com/jatin/qlock/internal/session"
)

// Persister stores a full session list. *store.Store satisfies it.
type Persister interface {
	ReplaceAll([]session.Session) error
}

// List is the in-memory session list with write-through persistence.
// It is not safe for concurrent use; the Bubble Tea update loop is the
// only caller.
type List struct {
	persister Persister
	items     []session.Session
}

// New wraps items loaded from the store.
func New(p Persister, items []session.Session) *List {
	return &List{persister: p, items: items}
}

// Len returns the number of sessions.
func (l *List) Len() int {
	return len(l.items)
}

// All returns a copy of the list in display order.
func (l *List) All() []session.Session {
	out := make([]session.Session, len(l.items))
	copy(out, l.items)
	return out
}

// Get returns the session with the given id.
func (l *List) Get(id string) (session.Session, bool) {
	for _, s := range l.items {
		if s.ID == id {
			return s, true
		}
	}
	return session.Session{}, false
}

// Upsert replaces the session with a matching id, or appends it.
func (l *List) Upsert(s session.Session) error {
	next := make([]session.Session, len(l.items))
	copy(next, l.items)

	replaced := false
	for i := range next {
		if next[i].ID == s.ID {
			next[i] = s
			replaced = true
			break
		}
	}
	if !replaced {
		next = append(next, s)
	}
	return l.commit(next)
}

// Delete removes the session with the given id. Deleting a missing id
// is a no-op.
func (l *List) Delete(id string) error {
	next := make([]session.Session, 0, len(l.items))
	for _, s := range l.items {
		if s.ID != id {
			next = append(next, s)
		}
	}
	return l.commit(next)
}

// AppendAttempt records a finished practice run on the session with
// the given id.
func (l *List) AppendAttempt(id string, attempt session.Attempt) error {
	next := make([]session.Session, len(l.items))
	copy(next, l.items)

	for i := range next {
		if next[i].ID == id {
			attempts := make([]session.Attempt, len(next[i].Attempts), len(next[i].Attempts)+1)
			copy(attempts, next[i].Attempts)
			next[i].Attempts = append(attempts, attempt)
			return l.commit(next)
		}
	}
	return fmt.Errorf("session %s not found", id)
}

// Merge adds imported sessions, skipping ids already present, and
// returns how many were added.
func (l *List) Merge(imported []session.Session) (int, error) {
	next := backup.Merge(l.items, imported)
	added := len(next) - len(l.items)
	if err := l.commit(next); err != nil {
		return 0, err
	}
	return added, nil
}

// ReplaceAll swaps in a new list wholesale, used after cloud sync.
func (l *List) ReplaceAll(items []session.Session) error {
	next := make([]session.Session, len(items))
	copy(next, items)
	return l.commit(next)
}

func (l *List) commit(next []session.Session) error {
	if err := l.persister.ReplaceAll(next); err != nil {
		return fmt.Errorf("persist sessions: %w", err)
	}
	l.items = next
	return nil
}
