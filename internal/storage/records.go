package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/watersort/internal/games/watersort/session"
)

// BestRecord is the best result for one level.
type BestRecord struct {
	Difficulty string
	Seed       int64
	Solved     bool // Moves and Time are set
	Moves      int
	Time       time.Duration
	Completed  bool // The player advanced past the level
	UpdatedAt  time.Time
}

// Streak holds consecutive wins for a difficulty.
type Streak struct {
	Current int
	Best    int
}

// Stats contains aggregated progress for a difficulty.
type Stats struct {
	Difficulty  string
	Solved      int
	Completed   int
	FewestMoves int
	Streak      Streak
}

// RecordBest stores a result if it beats the existing one: no previous
// result, fewer moves, or equal moves in less time.
func (s *Store) RecordBest(difficulty string, seed int64, moves int, elapsed time.Duration) error {
	_, err := s.db.Exec(
		`INSERT INTO best_records (difficulty, seed, moves, time_ms, updated_at)
		 VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(difficulty, seed) DO UPDATE SET
			moves = excluded.moves,
			time_ms = excluded.time_ms,
			updated_at = excluded.updated_at
		 WHERE best_records.moves IS NULL
			OR excluded.moves < best_records.moves
			OR (excluded.moves = best_records.moves AND excluded.time_ms < best_records.time_ms)`,
		difficulty, seed, moves, elapsed.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot record best: %w", err)
	}
	return nil
}

// MarkLevelCompleted flags a level as completed without touching its result.
func (s *Store) MarkLevelCompleted(difficulty string, seed int64) error {
	_, err := s.db.Exec(
		`INSERT INTO best_records (difficulty, seed, completed, updated_at)
		 VALUES (?, ?, 1, CURRENT_TIMESTAMP)
		 ON CONFLICT(difficulty, seed) DO UPDATE SET completed = 1`,
		difficulty, seed,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot mark level completed: %w", err)
	}
	return nil
}

// BestRecord returns the record for one level.
// Returns ErrNotFound if the level has never been won or completed.
func (s *Store) BestRecord(difficulty string, seed int64) (BestRecord, error) {
	row := s.db.QueryRow(
		`SELECT difficulty, seed, moves, time_ms, completed, updated_at
		 FROM best_records
		 WHERE difficulty = ? AND seed = ?`,
		difficulty, seed,
	)
	r, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return BestRecord{}, ErrNotFound
	}
	if err != nil {
		return BestRecord{}, fmt.Errorf("storage: cannot query record: %w", err)
	}
	return r, nil
}

// BestRecords returns the most recently updated records for a difficulty.
func (s *Store) BestRecords(difficulty string, limit int) ([]BestRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT difficulty, seed, moves, time_ms, completed, updated_at
		 FROM best_records
		 WHERE difficulty = ?
		 ORDER BY updated_at DESC, seed DESC
		 LIMIT ?`,
		difficulty, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query records: %w", err)
	}
	defer rows.Close()

	var records []BestRecord
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(sc scanner) (BestRecord, error) {
	var r BestRecord
	var moves, timeMS sql.NullInt64
	var completed int
	var updatedAt any
	if err := sc.Scan(&r.Difficulty, &r.Seed, &moves, &timeMS, &completed, &updatedAt); err != nil {
		return BestRecord{}, err
	}
	r.Solved = moves.Valid
	r.Moves = int(moves.Int64)
	r.Time = time.Duration(timeMS.Int64) * time.Millisecond
	r.Completed = completed != 0
	r.UpdatedAt = parseTime(updatedAt)
	return r, nil
}

// IncrementStreak adds one win to the current streak.
func (s *Store) IncrementStreak(difficulty string) error {
	_, err := s.db.Exec(
		`INSERT INTO streaks (difficulty, current, best) VALUES (?, 1, 1)
		 ON CONFLICT(difficulty) DO UPDATE SET
			current = current + 1,
			best = MAX(best, current + 1)`,
		difficulty,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot increment streak: %w", err)
	}
	return nil
}

// ResetStreak sets the current streak to zero. The best streak is kept.
func (s *Store) ResetStreak(difficulty string) error {
	_, err := s.db.Exec(
		`INSERT INTO streaks (difficulty, current, best) VALUES (?, 0, 0)
		 ON CONFLICT(difficulty) DO UPDATE SET current = 0`,
		difficulty,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot reset streak: %w", err)
	}
	return nil
}

// Streak returns the streak for a difficulty. Missing rows read as zero.
func (s *Store) Streak(difficulty string) (Streak, error) {
	var st Streak
	err := s.db.QueryRow(
		"SELECT current, best FROM streaks WHERE difficulty = ?",
		difficulty,
	).Scan(&st.Current, &st.Best)
	if errors.Is(err, sql.ErrNoRows) {
		return Streak{}, nil
	}
	if err != nil {
		return Streak{}, fmt.Errorf("storage: cannot query streak: %w", err)
	}
	return st, nil
}

// GetStats retrieves aggregated progress for a difficulty.
func (s *Store) GetStats(difficulty string) (*Stats, error) {
	stats := &Stats{Difficulty: difficulty}
	var fewest sql.NullInt64
	err := s.db.QueryRow(
		`SELECT
			COUNT(moves),
			COALESCE(SUM(completed), 0),
			MIN(moves)
		 FROM best_records
		 WHERE difficulty = ?`,
		difficulty,
	).Scan(&stats.Solved, &stats.Completed, &fewest)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query stats: %w", err)
	}
	stats.FewestMoves = int(fewest.Int64)

	stats.Streak, err = s.Streak(difficulty)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// ClearRecords deletes records and the streak for a difficulty.
func (s *Store) ClearRecords(difficulty string) error {
	if _, err := s.db.Exec("DELETE FROM best_records WHERE difficulty = ?", difficulty); err != nil {
		return fmt.Errorf("storage: cannot clear records: %w", err)
	}
	if _, err := s.db.Exec("DELETE FROM streaks WHERE difficulty = ?", difficulty); err != nil {
		return fmt.Errorf("storage: cannot clear streak: %w", err)
	}
	return nil
}

// Recorder adapts the store to a session for one difficulty.
type Recorder struct {
	store      *Store
	difficulty string
}

// Ensure Recorder implements session.Recorder
var _ session.Recorder = (*Recorder)(nil)

// Recorder returns a session recorder writing under difficulty.
func (s *Store) Recorder(difficulty string) *Recorder {
	return &Recorder{store: s, difficulty: difficulty}
}

// RecordBest implements session.Recorder.
func (r *Recorder) RecordBest(seed int64, moves int, elapsed time.Duration) error {
	return r.store.RecordBest(r.difficulty, seed, moves, elapsed)
}

// IncrementStreak implements session.Recorder.
func (r *Recorder) IncrementStreak() error {
	return r.store.IncrementStreak(r.difficulty)
}

// ResetStreak implements session.Recorder.
func (r *Recorder) ResetStreak() error {
	return r.store.ResetStreak(r.difficulty)
}

// MarkLevelCompleted implements session.Recorder.
func (r *Recorder) MarkLevelCompleted(seed int64) error {
	return r.store.MarkLevelCompleted(r.difficulty, seed)
}
