// Package storage provides SQLite-based persistence for generated
// levels, generation reports, and the calibrated difficulty curve.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/pourlab/liquidsort/internal/engine"
	"github.com/pourlab/liquidsort/internal/levels"
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// StoredLevel is a persisted level row. Definition holds the full YAML
// level document, so a stored level round-trips through the same codec
// as level files on disk.
type StoredLevel struct {
	ID            int64
	LevelID       string
	LevelIndex    int
	Seed          uint64
	Band          string
	OptimalMoves  int
	MovesAllowed  int
	ScrambleMoves int
	Definition    string
	CreatedAt     time.Time
}

// Parse decodes the stored YAML definition.
func (sl *StoredLevel) Parse() (levels.Level, error) {
	return levels.ParseYAML([]byte(sl.Definition))
}

// ReportEntry is a persisted generation report row.
type ReportEntry struct {
	ID            int64
	LevelIndex    int
	Seed          uint64
	Attempts      int
	ScrambleMoves int
	OptimalMoves  int
	RawComplexity float64
	Accepted      bool
	Rejections    []string
	ElapsedMillis int64
	CreatedAt     time.Time
}

// GenerationStats contains aggregated generation statistics.
type GenerationStats struct {
	Reports     int
	Accepted    int
	AvgAttempts float64
	LastRun     time.Time
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
		CREATE TABLE IF NOT EXISTS levels (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			level_id TEXT NOT NULL UNIQUE,
			level_index INTEGER NOT NULL,
			seed INTEGER NOT NULL,
			band TEXT NOT NULL,
			optimal_moves INTEGER NOT NULL,
			moves_allowed INTEGER NOT NULL,
			scramble_moves INTEGER NOT NULL DEFAULT 0,
			definition TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_levels_index ON levels(level_index);
		CREATE INDEX IF NOT EXISTS idx_levels_band ON levels(band);

		CREATE TABLE IF NOT EXISTS reports (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			level_index INTEGER NOT NULL,
			seed INTEGER NOT NULL,
			attempts INTEGER NOT NULL,
			scramble_moves INTEGER NOT NULL DEFAULT 0,
			optimal_moves INTEGER NOT NULL DEFAULT 0,
			raw_complexity REAL NOT NULL DEFAULT 0,
			accepted INTEGER NOT NULL DEFAULT 0,
			rejections TEXT,
			elapsed_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_reports_level ON reports(level_index);

		CREATE TABLE IF NOT EXISTS ratings (
			level_index INTEGER PRIMARY KEY,
			raw_complexity REAL NOT NULL,
			rating INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
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

// SaveLevel persists a generated level, replacing any previous level
// with the same level ID. Returns the ID of the inserted record.
func (s *Store) SaveLevel(lvl levels.Level, band engine.Band) (int64, error) {
	if lvl.State == nil {
		return 0, fmt.Errorf("storage: level %s has no state", lvl.ID)
	}
	definition, err := levels.MarshalYAML(lvl.ID, lvl.Name, lvl.State, lvl.Solution)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot serialize level %s: %w", lvl.ID, err)
	}

	result, err := s.db.Exec(
		`INSERT OR REPLACE INTO levels
		 (level_id, level_index, seed, band, optimal_moves, moves_allowed, scramble_moves, definition)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		lvl.ID,
		lvl.State.LevelIndex,
		int64(lvl.State.Seed),
		band.String(),
		lvl.State.OptimalMoves,
		lvl.State.MovesAllowed,
		lvl.State.ScrambleMoves,
		string(definition),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save level: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// LevelByIndex retrieves a stored level by its level index.
// Returns nil when no level is stored for the index.
func (s *Store) LevelByIndex(levelIndex int) (*StoredLevel, error) {
	var sl StoredLevel
	var seed int64
	var createdAt any

	err := s.db.QueryRow(
		`SELECT id, level_id, level_index, seed, band, optimal_moves, moves_allowed,
		        scramble_moves, definition, created_at
		 FROM levels
		 WHERE level_index = ?`,
		levelIndex,
	).Scan(
		&sl.ID, &sl.LevelID, &sl.LevelIndex, &seed, &sl.Band,
		&sl.OptimalMoves, &sl.MovesAllowed, &sl.ScrambleMoves,
		&sl.Definition, &createdAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query level: %w", err)
	}

	sl.Seed = uint64(seed)
	sl.CreatedAt = parseTimestamp(createdAt)
	return &sl, nil
}

// LevelsByBand retrieves all stored levels in a band, ordered by level
// index.
func (s *Store) LevelsByBand(band engine.Band) ([]StoredLevel, error) {
	rows, err := s.db.Query(
		`SELECT id, level_id, level_index, seed, band, optimal_moves, moves_allowed,
		        scramble_moves, definition, created_at
		 FROM levels
		 WHERE band = ?
		 ORDER BY level_index`,
		band.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query levels: %w", err)
	}
	defer rows.Close()

	var out []StoredLevel
	for rows.Next() {
		var sl StoredLevel
		var seed int64
		var createdAt any
		if err := rows.Scan(
			&sl.ID, &sl.LevelID, &sl.LevelIndex, &seed, &sl.Band,
			&sl.OptimalMoves, &sl.MovesAllowed, &sl.ScrambleMoves,
			&sl.Definition, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		sl.Seed = uint64(seed)
		sl.CreatedAt = parseTimestamp(createdAt)
		out = append(out, sl)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// ClearLevels deletes all stored levels.
func (s *Store) ClearLevels() error {
	if _, err := s.db.Exec("DELETE FROM levels"); err != nil {
		return fmt.Errorf("storage: cannot clear levels: %w", err)
	}
	return nil
}

// SaveReport records a generation report.
// Returns the ID of the inserted record.
func (s *Store) SaveReport(report engine.LevelGenerationReport) (int64, error) {
	accepted := 0
	if report.Accepted {
		accepted = 1
	}
	result, err := s.db.Exec(
		`INSERT INTO reports
		 (level_index, seed, attempts, scramble_moves, optimal_moves, raw_complexity, accepted, rejections, elapsed_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		report.LevelIndex,
		int64(report.Seed),
		report.Attempts,
		report.ScrambleMoves,
		report.OptimalMoves,
		report.RawComplexity,
		accepted,
		strings.Join(report.Rejections, "\n"),
		report.Elapsed.Milliseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save report: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// ReportsForLevel retrieves all reports for a level index, newest first.
func (s *Store) ReportsForLevel(levelIndex int) ([]ReportEntry, error) {
	rows, err := s.db.Query(
		`SELECT id, level_index, seed, attempts, scramble_moves, optimal_moves,
		        raw_complexity, accepted, rejections, elapsed_ms, created_at
		 FROM reports
		 WHERE level_index = ?
		 ORDER BY id DESC`,
		levelIndex,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query reports: %w", err)
	}
	defer rows.Close()

	var out []ReportEntry
	for rows.Next() {
		var e ReportEntry
		var seed int64
		var accepted int
		var rejections sql.NullString
		var createdAt any
		if err := rows.Scan(
			&e.ID, &e.LevelIndex, &seed, &e.Attempts, &e.ScrambleMoves,
			&e.OptimalMoves, &e.RawComplexity, &accepted, &rejections,
			&e.ElapsedMillis, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Seed = uint64(seed)
		e.Accepted = accepted != 0
		if rejections.Valid && rejections.String != "" {
			e.Rejections = strings.Split(rejections.String, "\n")
		}
		e.CreatedAt = parseTimestamp(createdAt)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// GetGenerationStats retrieves aggregated statistics over all reports.
func (s *Store) GetGenerationStats() (*GenerationStats, error) {
	stats := &GenerationStats{}
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(accepted), 0), COALESCE(AVG(attempts), 0)
		 FROM reports`,
	).Scan(&stats.Reports, &stats.Accepted, &stats.AvgAttempts)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get generation stats: %w", err)
	}

	var lastRun any
	err = s.db.QueryRow(
		`SELECT created_at FROM reports ORDER BY id DESC LIMIT 1`,
	).Scan(&lastRun)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("storage: cannot get last run: %w", err)
	}
	if err == nil {
		stats.LastRun = parseTimestamp(lastRun)
	}

	return stats, nil
}

// SaveRatings replaces the calibrated difficulty curve.
func (s *Store) SaveRatings(curve []engine.LevelComplexity, rated []engine.RatedLevel) error {
	if len(curve) != len(rated) {
		return fmt.Errorf("storage: curve has %d levels but %d ratings", len(curve), len(rated))
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM ratings"); err != nil {
		return fmt.Errorf("storage: cannot clear ratings: %w", err)
	}
	for i, r := range rated {
		if _, err := tx.Exec(
			"INSERT INTO ratings (level_index, raw_complexity, rating) VALUES (?, ?, ?)",
			r.LevelIndex, curve[i].RawComplexity, r.Rating,
		); err != nil {
			return fmt.Errorf("storage: cannot save rating for level %d: %w", r.LevelIndex, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit ratings: %w", err)
	}
	return nil
}

// Ratings retrieves the calibrated difficulty curve ordered by level
// index.
func (s *Store) Ratings() ([]engine.RatedLevel, error) {
	rows, err := s.db.Query(
		"SELECT level_index, rating FROM ratings ORDER BY level_index",
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query ratings: %w", err)
	}
	defer rows.Close()

	var out []engine.RatedLevel
	for rows.Next() {
		var r engine.RatedLevel
		if err := rows.Scan(&r.LevelIndex, &r.Rating); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// parseTimestamp handles both time.Time and string datetime columns.
func parseTimestamp(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
