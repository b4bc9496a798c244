package store

import (
	"encoding/json"
	"fmt"

	"github.com/jatin/qlock/internal/session"
)

// Load returns all stored sessions in list order. Rows whose JSON no
// longer decodes are skipped rather than failing the whole load.
func (s *Store) Load() ([]session.Session, error) {
	rows, err := s.db.Query(`SELECT data FROM sessions ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var out []session.Session
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scan session row: %w", err)
		}
		var sess session.Session
		if err := json.Unmarshal([]byte(data), &sess); err != nil {
			continue
		}
		out = append(out, sess)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return out, nil
}

// ReplaceAll atomically replaces the stored list with sessions,
// preserving their slice order.
func (s *Store) ReplaceAll(sessions []session.Session) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM sessions`); err != nil {
		return fmt.Errorf("clear sessions: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO sessions (id, position, data) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, sess := range sessions {
		data, err := json.Marshal(sess)
		if err != nil {
			return fmt.Errorf("encode session %s: %w", sess.ID, err)
		}
		if _, err := stmt.Exec(sess.ID, i, string(data)); err != nil {
			return fmt.Errorf("insert session %s: %w", sess.ID, err)
		}
	}

	return tx.Commit()
}
