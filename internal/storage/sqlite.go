// Package storage provides SQLite-based persistence for finished runs.
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

	"github.com/vovakirdan/star-collider/internal/games/starcollider"
)

// DefaultPath is where the CLI keeps its database.
const DefaultPath = "~/.starcollider/scores.db"

const sqliteTime = "2006-01-02 15:04:05"

// Store manages the SQLite database connection for run persistence.
type Store struct {
	db *sql.DB
}

// Run is one finished session.
type Run struct {
	ID            int64
	Frontend      string // "terminal", "window", "ssh", "sim"
	Player        string // SSH user or local user; may be empty
	Outcome       starcollider.Outcome
	Score         int
	ElapsedMillis int64
	Stage         int // furthest stage reached, 1..3
	LoseReason    string
	Seed          int64
	Frames        int64
	CreatedAt     time.Time
}

// NewRun builds the record for a session result.
func NewRun(frontend, player string, res starcollider.Result) Run {
	return Run{
		Frontend:      frontend,
		Player:        player,
		Outcome:       res.Outcome,
		Score:         res.Score,
		ElapsedMillis: res.ElapsedMillis,
		Stage:         res.StageReached,
		LoseReason:    res.LoseReason,
		Seed:          res.Seed,
		Frames:        res.Frames,
	}
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

	// Create parent directories
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
			frontend TEXT NOT NULL,
			player TEXT NOT NULL DEFAULT '',
			outcome TEXT NOT NULL,
			score INTEGER NOT NULL DEFAULT 0,
			elapsed_ms INTEGER NOT NULL DEFAULT 0,
			stage INTEGER NOT NULL DEFAULT 0,
			lose_reason TEXT NOT NULL DEFAULT '',
			seed INTEGER NOT NULL DEFAULT 0,
			frames INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(outcome, score DESC, elapsed_ms ASC);
		CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);
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

// SaveRun records a finished run and returns its ID.
func (s *Store) SaveRun(r Run) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO runs (frontend, player, outcome, score, elapsed_ms, stage, lose_reason, seed, frames)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Frontend, r.Player, string(r.Outcome), r.Score, r.ElapsedMillis, r.Stage, r.LoseReason, r.Seed, r.Frames,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const runColumns = `id, frontend, player, outcome, score, elapsed_ms, stage, lose_reason, seed, frames, created_at`

// TopScores retrieves the best N winning runs: highest score first, ties
// broken by the faster run.
func (s *Store) TopScores(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryRuns(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE outcome = ?
		 ORDER BY score DESC, elapsed_ms ASC, id ASC
		 LIMIT ?`,
		string(starcollider.OutcomeWin), limit,
	)
}

// RecentRuns retrieves the latest N runs of any outcome.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryRuns(
		`SELECT `+runColumns+`
		 FROM runs
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
}

func (s *Store) queryRuns(query string, args ...any) ([]Run, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var outcome string
		var createdAt any
		if err := rows.Scan(&r.ID, &r.Frontend, &r.Player, &outcome, &r.Score, &r.ElapsedMillis,
			&r.Stage, &r.LoseReason, &r.Seed, &r.Frames, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Outcome = starcollider.Outcome(outcome)
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// HighScore returns the best winning score, or 0 if nobody has won yet.
func (s *Store) HighScore() (int, error) {
	var high sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM runs WHERE outcome = ?",
		string(starcollider.OutcomeWin),
	).Scan(&high)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get high score: %w", err)
	}
	if !high.Valid {
		return 0, nil
	}
	return int(high.Int64), nil
}

// ClearRuns deletes every stored run.
func (s *Store) ClearRuns() error {
	if _, err := s.db.Exec("DELETE FROM runs"); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// Stats contains aggregated statistics over all runs.
type Stats struct {
	Runs        int
	Wins        int
	Losses      int
	Quits       int
	HighScore   int
	AvgScore    float64 // over wins
	FastestWin  time.Duration
	StageCounts [4]int // runs by furthest stage reached, index 0 = never launched
	LastPlayed  time.Time
}

// Stats aggregates every stored run.
func (s *Store) Stats() (*Stats, error) {
	stats := &Stats{}
	win := string(starcollider.OutcomeWin)

	var fastest sql.NullInt64
	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN outcome = ? THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN outcome = ? THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN outcome = ? THEN 1 ELSE 0 END), 0),
		        COALESCE(MAX(CASE WHEN outcome = ? THEN score END), 0),
		        COALESCE(AVG(CASE WHEN outcome = ? THEN score END), 0),
		        MIN(CASE WHEN outcome = ? THEN elapsed_ms END)
		 FROM runs`,
		win, string(starcollider.OutcomeLose), string(starcollider.OutcomeQuit), win, win, win,
	).Scan(&stats.Runs, &stats.Wins, &stats.Losses, &stats.Quits, &stats.HighScore, &stats.AvgScore, &fastest)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	if fastest.Valid {
		stats.FastestWin = time.Duration(fastest.Int64) * time.Millisecond
	}

	rows, err := s.db.Query(`SELECT stage, COUNT(*) FROM runs GROUP BY stage`)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stage counts: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var stage, n int
		if err := rows.Scan(&stage, &n); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		if stage >= 0 && stage < len(stats.StageCounts) {
			stats.StageCounts[stage] = n
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(`SELECT created_at FROM runs ORDER BY id DESC LIMIT 1`).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(sqliteTime, t); err == nil {
			return parsed
		}
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
