// Package storage keeps the results of the current arcade session.
// Uses the pure-Go modernc.org/sqlite driver on an in-memory database:
// nothing is written to disk and everything is gone when the process exits.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrUnknownRun is returned when a run ID was never started in this store.
var ErrUnknownRun = errors.New("storage: unknown run")

// Store manages the SQLite connection holding session results.
type Store struct {
	db *sql.DB
}

// Run is one play-through of a game.
type Run struct {
	ID         string
	GameID     string
	Score      int
	Finished   bool
	StartedAt  time.Time
	FinishedAt time.Time
}

// Result is the latest outcome of one keyed item within a run, such as a
// checked pixel art level or a completed orientation stage.
type Result struct {
	RunID     string
	Key       string
	Label     string
	Score     int
	Detail    string
	UpdatedAt time.Time
}

// GameStats contains aggregated statistics over the finished runs of a game.
type GameStats struct {
	GameID     string
	RunsCount  int
	BestScore  int
	AvgScore   float64
	LastPlayed time.Time
}

// Open creates a fresh in-memory database and runs migrations.
func Open() (*Store, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Every connection to ":memory:" is a separate database, so the pool
	// must never hold more than one.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			game_id TEXT NOT NULL,
			score INTEGER NOT NULL DEFAULT 0,
			finished INTEGER NOT NULL DEFAULT 0,
			started_at DATETIME NOT NULL,
			finished_at DATETIME
		);
		CREATE INDEX IF NOT EXISTS idx_runs_game_id ON runs(game_id);

		CREATE TABLE IF NOT EXISTS results (
			run_id TEXT NOT NULL REFERENCES runs(id),
			key TEXT NOT NULL,
			label TEXT NOT NULL,
			score INTEGER NOT NULL,
			detail TEXT NOT NULL DEFAULT '',
			updated_at DATETIME NOT NULL,
			PRIMARY KEY (run_id, key)
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// StartRun registers a new run for gameID and returns it.
func (s *Store) StartRun(gameID string) (Run, error) {
	run := Run{
		ID:        uuid.NewString(),
		GameID:    gameID,
		StartedAt: time.Now().UTC(),
	}

	_, err := s.db.Exec(
		"INSERT INTO runs (id, game_id, started_at) VALUES (?, ?, ?)",
		run.ID, run.GameID, run.StartedAt,
	)
	if err != nil {
		return Run{}, fmt.Errorf("storage: cannot start run: %w", err)
	}
	return run, nil
}

// FinishRun stores the final score of a run. Finishing twice keeps the
// latest score.
func (s *Store) FinishRun(runID string, score int) error {
	res, err := s.db.Exec(
		"UPDATE runs SET score = ?, finished = 1, finished_at = ? WHERE id = ?",
		score, time.Now().UTC(), runID,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot finish run: %w", err)
	}
	return requireRow(res, runID)
}

// RecordResult upserts a result by (run, key). A later result for the same
// key replaces label, score and detail but keeps its original position in
// Results.
func (s *Store) RecordResult(r Result) error {
	if r.Key == "" {
		return fmt.Errorf("storage: result for run %s has empty key", r.RunID)
	}

	var exists int
	err := s.db.QueryRow("SELECT COUNT(*) FROM runs WHERE id = ?", r.RunID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("storage: cannot look up run: %w", err)
	}
	if exists == 0 {
		return fmt.Errorf("%w: %s", ErrUnknownRun, r.RunID)
	}

	_, err = s.db.Exec(
		`INSERT INTO results (run_id, key, label, score, detail, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (run_id, key) DO UPDATE SET
		   label = excluded.label,
		   score = excluded.score,
		   detail = excluded.detail,
		   updated_at = excluded.updated_at`,
		r.RunID, r.Key, r.Label, r.Score, r.Detail, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot record result: %w", err)
	}
	return nil
}

// Results returns the results of a run in the order their keys were first
// recorded.
func (s *Store) Results(runID string) ([]Result, error) {
	rows, err := s.db.Query(
		`SELECT run_id, key, label, score, detail, updated_at
		 FROM results
		 WHERE run_id = ?
		 ORDER BY rowid`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query results: %w", err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var r Result
		var updatedAt any
		if err := rows.Scan(&r.RunID, &r.Key, &r.Label, &r.Score, &r.Detail, &updatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.UpdatedAt = parseTime(updatedAt)
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return results, nil
}

// Run returns the run with the given ID.
func (s *Store) Run(runID string) (Run, error) {
	var r Run
	var startedAt, finishedAt any
	err := s.db.QueryRow(
		`SELECT id, game_id, score, finished, started_at, finished_at
		 FROM runs WHERE id = ?`,
		runID,
	).Scan(&r.ID, &r.GameID, &r.Score, &r.Finished, &startedAt, &finishedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %s", ErrUnknownRun, runID)
	}
	if err != nil {
		return Run{}, fmt.Errorf("storage: cannot query run: %w", err)
	}
	r.StartedAt = parseTime(startedAt)
	r.FinishedAt = parseTime(finishedAt)
	return r, nil
}

// Runs returns the runs of a game, newest first. An empty gameID returns
// runs of every game.
func (s *Store) Runs(gameID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, score, finished, started_at, finished_at
		 FROM runs
		 WHERE ? = '' OR game_id = ?
		 ORDER BY rowid DESC
		 LIMIT ?`,
		gameID, gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var startedAt, finishedAt any
		if err := rows.Scan(&r.ID, &r.GameID, &r.Score, &r.Finished, &startedAt, &finishedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.StartedAt = parseTime(startedAt)
		r.FinishedAt = parseTime(finishedAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// BestScore returns the highest final score for the given game.
// Returns 0 if no run has finished.
func (s *Store) BestScore(gameID string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM runs WHERE game_id = ? AND finished = 1",
		gameID,
	).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// GameStats retrieves aggregated statistics for a specific game.
func (s *Store) GameStats(gameID string) (GameStats, error) {
	stats := GameStats{GameID: gameID}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0), MAX(finished_at)
		 FROM runs WHERE game_id = ? AND finished = 1`,
		gameID,
	).Scan(&stats.RunsCount, &stats.BestScore, &stats.AvgScore, &lastPlayed)
	if err != nil {
		return stats, fmt.Errorf("storage: cannot get game stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

func requireRow(res sql.Result, runID string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrUnknownRun, runID)
	}
	return nil
}

// parseTime accepts the representations the driver hands back for
// DATETIME columns.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		for _, layout := range []string{time.RFC3339Nano, "2006-01-02 15:04:05.999999999-07:00", "2006-01-02 15:04:05"} {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed
			}
		}
	}
	return time.Time{}
}
