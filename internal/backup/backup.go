// Package backup reads and writes JSON backup files of the session
// list. The file format is a plain array of sessions, so backups from
// the web app import cleanly and vice versa.
package backup

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/jatin/qlock/internal/session"
)

// Filename returns the default backup file name for the given day,
// e.g. mcq-timer-backup-2024-06-15.json.
func Filename(now time.Time) string {
	return fmt.Sprintf("mcq-timer-backup-%s.json", now.Format("2006-01-02"))
}

// Export writes sessions to path as indented JSON.
func Export(path string, sessions []session.Session) error {
	if sessions == nil {
		sessions = []session.Session{}
	}
	data, err := json.MarshalIndent(sessions, "", "  ")
	if err != nil {
		return fmt.Errorf("encode sessions: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write backup: %w", err)
	}
	return nil
}

// Import reads and validates a backup file. The top-level value must
// be an array; anything else is rejected before decoding.
func Import(path string) ([]session.Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read backup: %w", err)
	}

	var parsed any
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("parse backup: %w", err)
	}

	compiled, err := compiledSchema()
	if err != nil {
		return nil, err
	}
	if err := compiled.Validate(parsed); err != nil {
		return nil, fmt.Errorf("invalid backup format: %w", err)
	}

	var sessions []session.Session
	if err := json.Unmarshal(data, &sessions); err != nil {
		return nil, fmt.Errorf("decode sessions: %w", err)
	}
	return sessions, nil
}

// Merge appends imported sessions to existing, dropping any whose id
// is already present. Existing sessions are never modified.
func Merge(existing, imported []session.Session) []session.Session {
	seen := make(map[string]bool, len(existing))
	for _, s := range existing {
		seen[s.ID] = true
	}

	out := append([]session.Session(nil), existing...)
	for _, s := range imported {
		if s.ID == "" || seen[s.ID] {
			continue
		}
		seen[s.ID] = true
		out = append(out, s)
	}
	return out
}

// backupSchema constrains the file just enough to fail fast on wrong
// files: a top-level array of objects with string ids. Unknown fields
// pass through so newer backups still import.
const backupSchema = `{
	"type": "array",
	"items": {
		"type": "object",
		"required": ["id"],
		"properties": {
			"id": {"type": "string", "minLength": 1},
			"topic": {"type": "string"},
			"timerMode": {"enum": ["uniform", "individual", "total"]},
			"questions": {"type": "array"},
			"attempts": {"type": "array"}
		}
	}
}`

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		var def any
		if err := json.Unmarshal([]byte(backupSchema), &def); err != nil {
			schemaErr = fmt.Errorf("parse backup schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource("schema://backup.json", def); err != nil {
			schemaErr = fmt.Errorf("add schema resource: %w", err)
			return
		}
		schema, schemaErr = c.Compile("schema://backup.json")
	})
	return schema, schemaErr
}
