// Package storage provides SQLite-based persistence for run history.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for run history.
type Store struct {
	db *sql.DB
}

// RunRecord is one finished (or revived and re-finished) run.
type RunRecord struct {
	RunID        string
	WorldID      string
	Level        int
	Experience   int
	Kills        int
	RoomsVisited int
	Duration     time.Duration
	Outcome      string
	Cause        string
	StartedAt    time.Time
	EndedAt      time.Time
}

// WorldStats contains aggregated statistics for a world.
type WorldStats struct {
	WorldID    string
	Runs       int
	BestLevel  int
	TotalKills int64
	AvgRooms   float64
	LastPlayed time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

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
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL UNIQUE,
			world_id TEXT NOT NULL,
			level INTEGER NOT NULL DEFAULT 1,
			experience INTEGER NOT NULL DEFAULT 0,
			kills INTEGER NOT NULL DEFAULT 0,
			rooms_visited INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			outcome TEXT NOT NULL,
			cause TEXT,
			started_at INTEGER NOT NULL,
			ended_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_runs_world_id ON runs(world_id);
		CREATE INDEX IF NOT EXISTS idx_runs_best ON runs(world_id, level DESC, kills DESC);
		CREATE INDEX IF NOT EXISTS idx_runs_ended ON runs(ended_at DESC);
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

// SaveRun records a run. Saving the same run id again replaces the record,
// so a revived run that ends later keeps a single row.
func (s *Store) SaveRun(r RunRecord) error {
	if r.RunID == "" {
		return errors.New("storage: run has no id")
	}
	_, err := s.db.Exec(
		`INSERT INTO runs
		 (run_id, world_id, level, experience, kills, rooms_visited, duration_ms, outcome, cause, started_at, ended_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(run_id) DO UPDATE SET
		   level = excluded.level,
		   experience = excluded.experience,
		   kills = excluded.kills,
		   rooms_visited = excluded.rooms_visited,
		   duration_ms = excluded.duration_ms,
		   outcome = excluded.outcome,
		   cause = excluded.cause,
		   ended_at = excluded.ended_at`,
		r.RunID,
		r.WorldID,
		r.Level,
		r.Experience,
		r.Kills,
		r.RoomsVisited,
		r.Duration.Milliseconds(),
		r.Outcome,
		r.Cause,
		r.StartedAt.UnixMilli(),
		r.EndedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save run: %w", err)
	}
	return nil
}

const runColumns = `run_id, world_id, level, experience, kills, rooms_visited, duration_ms, outcome, cause, started_at, ended_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (RunRecord, error) {
	var (
		r                  RunRecord
		cause              sql.NullString
		durationMS         int64
		startedMS, endedMS int64
	)
	if err := row.Scan(
		&r.RunID,
		&r.WorldID,
		&r.Level,
		&r.Experience,
		&r.Kills,
		&r.RoomsVisited,
		&durationMS,
		&r.Outcome,
		&cause,
		&startedMS,
		&endedMS,
	); err != nil {
		return RunRecord{}, err
	}
	if cause.Valid {
		r.Cause = cause.String
	}
	r.Duration = time.Duration(durationMS) * time.Millisecond
	r.StartedAt = time.UnixMilli(startedMS)
	r.EndedAt = time.UnixMilli(endedMS)
	return r, nil
}

// RecentRuns retrieves the most recent runs, newest first. An empty worldID
// matches every world.
func (s *Store) RecentRuns(worldID string, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE ? = '' OR world_id = ?
		 ORDER BY ended_at DESC, id DESC
		 LIMIT ?`,
		worldID, worldID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// BestRun returns the deepest run of a world: highest level, then most
// kills, then shortest. Returns nil if no run exists. An empty worldID
// matches every world.
func (s *Store) BestRun(worldID string) (*RunRecord, error) {
	r, err := scanRun(s.db.QueryRow(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE ? = '' OR world_id = ?
		 ORDER BY level DESC, kills DESC, duration_ms ASC
		 LIMIT 1`,
		worldID, worldID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query best run: %w", err)
	}
	return &r, nil
}

// Stats retrieves aggregated statistics for a world, or for every world
// when worldID is empty.
func (s *Store) Stats(worldID string) (*WorldStats, error) {
	stats := &WorldStats{WorldID: worldID}

	var lastMS int64
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(level), 0), COALESCE(SUM(kills), 0),
		        COALESCE(AVG(rooms_visited), 0), COALESCE(MAX(ended_at), 0)
		 FROM runs WHERE ? = '' OR world_id = ?`,
		worldID, worldID,
	).Scan(&stats.Runs, &stats.BestLevel, &stats.TotalKills, &stats.AvgRooms, &lastMS)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get world stats: %w", err)
	}
	if lastMS > 0 {
		stats.LastPlayed = time.UnixMilli(lastMS)
	}
	return stats, nil
}

// ClearRuns deletes all runs of a world, or every run when worldID is empty.
func (s *Store) ClearRuns(worldID string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE ? = '' OR world_id = ?", worldID, worldID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}
