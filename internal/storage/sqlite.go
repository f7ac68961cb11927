// Package storage persists run memories locally and forwards them to the remote archive.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/road-remembers/internal/road"
)

// timeLayout is fixed-width so created_at sorts as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// Store manages the SQLite database connection for the run archive.
type Store struct {
	db *sql.DB

	mu      sync.Mutex
	entropy *rand.Rand
}

// RunEntry is one archived run, holding its latest memory snapshot.
type RunEntry struct {
	ID         string
	Carrying   int
	Discipline int
	Hunger     int
	Distance   float64
	Speed      float64
	Mood       string
	CreatedAt  time.Time
}

// RunStats aggregates the whole archive.
type RunStats struct {
	Runs          int
	BestDistance  float64
	TotalDistance float64
	Carrying      int
	Discipline    int
	Hunger        int
	LastPlayed    time.Time
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

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{
		db:      db,
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
	}

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
			carrying INTEGER NOT NULL DEFAULT 0,
			discipline INTEGER NOT NULL DEFAULT 0,
			hunger INTEGER NOT NULL DEFAULT 0,
			distance REAL NOT NULL DEFAULT 0,
			speed REAL NOT NULL DEFAULT 0,
			mood TEXT NOT NULL,
			created_at TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_runs_distance ON runs(distance DESC);
		CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// newID returns a time-ordered identifier for records that arrive without a run ID.
func (s *Store) newID(now time.Time) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(now), s.entropy).String()
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Name implements Syncer.
func (s *Store) Name() string {
	return "sqlite"
}

// Push implements Syncer by archiving the record under its run.
func (s *Store) Push(ctx context.Context, rec road.SyncRecord) error {
	_, err := s.SaveRun(ctx, rec.RunID, rec.Memory)
	return err
}

// SaveRun archives a memory snapshot as the run's latest state and returns the run ID.
// A run keeps one row: later snapshots replace it unless they are behind the stored distance.
// An empty runID archives the snapshot as a run of its own.
func (s *Store) SaveRun(ctx context.Context, runID string, m road.MemoryState) (string, error) {
	now := time.Now().UTC()
	id := runID
	if id == "" {
		id = s.newID(now)
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, carrying, discipline, hunger, distance, speed, mood, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			carrying = excluded.carrying,
			discipline = excluded.discipline,
			hunger = excluded.hunger,
			distance = excluded.distance,
			speed = excluded.speed,
			mood = excluded.mood
		 WHERE excluded.distance >= runs.distance`,
		id,
		m.CarryingCount,
		m.DisciplineCount,
		m.HungerCount,
		m.DistanceTraveled,
		m.CurrentSpeed,
		road.MoodFor(m).String(),
		now.Format(timeLayout),
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save run: %w", err)
	}
	return id, nil
}

// RecentRuns retrieves the newest runs first.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]RunEntry, error) {
	return s.queryRuns(ctx, "created_at DESC", limit)
}

// BestRuns retrieves the longest runs first.
func (s *Store) BestRuns(ctx context.Context, limit int) ([]RunEntry, error) {
	return s.queryRuns(ctx, "distance DESC", limit)
}

// queryRuns lists runs in the given fixed order.
func (s *Store) queryRuns(ctx context.Context, order string, limit int) ([]RunEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, carrying, discipline, hunger, distance, speed, mood, created_at
		 FROM runs
		 ORDER BY `+order+`, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var entries []RunEntry
	for rows.Next() {
		var e RunEntry
		var createdAt string
		if err := rows.Scan(&e.ID, &e.Carrying, &e.Discipline, &e.Hunger,
			&e.Distance, &e.Speed, &e.Mood, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// Stats retrieves aggregated statistics over every archived run.
func (s *Store) Stats(ctx context.Context) (*RunStats, error) {
	stats := &RunStats{}
	var last sql.NullString

	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(MAX(distance), 0), COALESCE(SUM(distance), 0),
		        COALESCE(SUM(carrying), 0), COALESCE(SUM(discipline), 0), COALESCE(SUM(hunger), 0),
		        MAX(created_at)
		 FROM runs`,
	).Scan(&stats.Runs, &stats.BestDistance, &stats.TotalDistance,
		&stats.Carrying, &stats.Discipline, &stats.Hunger, &last)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get run stats: %w", err)
	}

	if last.Valid {
		stats.LastPlayed = parseTime(last.String)
	}
	return stats, nil
}

// ClearRuns deletes the whole archive.
func (s *Store) ClearRuns(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM runs"); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// parseTime handles the stored form and SQLite's default datetime form.
func parseTime(v string) time.Time {
	if t, err := time.Parse(timeLayout, v); err == nil {
		return t
	}
	if t, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
		return t
	}
	return time.Time{}
}
