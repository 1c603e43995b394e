package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/watersort/internal/games/watersort/session"
)

// SavedSession is a persisted session snapshot.
type SavedSession struct {
	ID         string
	Difficulty string
	Seed       int64
	Won        bool
	Snapshot   session.Snapshot
	UpdatedAt  time.Time
}

// SaveSession stores a snapshot. An empty id creates a new row with a fresh
// UUID; an existing id is overwritten. Returns the id used.
func (s *Store) SaveSession(id string, snap session.Snapshot) (string, error) {
	if id == "" {
		id = uuid.NewString()
	}

	payload, err := json.Marshal(snap)
	if err != nil {
		return "", fmt.Errorf("storage: cannot encode session: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO saved_sessions (id, difficulty, seed, won, payload, updated_ns)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			difficulty = excluded.difficulty,
			seed = excluded.seed,
			won = excluded.won,
			payload = excluded.payload,
			updated_ns = excluded.updated_ns`,
		id, string(snap.Config.Difficulty), snap.Config.Seed, boolToInt(snap.Won),
		string(payload), s.now().UnixNano(),
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save session: %w", err)
	}
	return id, nil
}

// LoadSession returns the session with the given id.
func (s *Store) LoadSession(id string) (SavedSession, error) {
	row := s.db.QueryRow(
		`SELECT id, difficulty, seed, won, payload, updated_ns
		 FROM saved_sessions
		 WHERE id = ?`,
		id,
	)
	return scanSession(row)
}

// LatestSession returns the most recently saved unfinished session for a difficulty.
func (s *Store) LatestSession(difficulty string) (SavedSession, error) {
	row := s.db.QueryRow(
		`SELECT id, difficulty, seed, won, payload, updated_ns
		 FROM saved_sessions
		 WHERE difficulty = ? AND won = 0
		 ORDER BY updated_ns DESC
		 LIMIT 1`,
		difficulty,
	)
	return scanSession(row)
}

// DeleteSession removes a saved session. Deleting a missing id is not an error.
func (s *Store) DeleteSession(id string) error {
	if _, err := s.db.Exec("DELETE FROM saved_sessions WHERE id = ?", id); err != nil {
		return fmt.Errorf("storage: cannot delete session: %w", err)
	}
	return nil
}

func scanSession(row *sql.Row) (SavedSession, error) {
	var ss SavedSession
	var won int
	var payload string
	var updated int64
	err := row.Scan(&ss.ID, &ss.Difficulty, &ss.Seed, &won, &payload, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return SavedSession{}, ErrNotFound
	}
	if err != nil {
		return SavedSession{}, fmt.Errorf("storage: cannot query session: %w", err)
	}

	if err := json.Unmarshal([]byte(payload), &ss.Snapshot); err != nil {
		return SavedSession{}, fmt.Errorf("storage: cannot decode session %s: %w", ss.ID, err)
	}
	ss.Won = won != 0
	ss.UpdatedAt = time.Unix(0, updated)
	return ss, nil
}
