// Package storage provides SQLite-based persistence for match history.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/blindfour/internal/core"
)

// defaultDBFile is the history database location under the XDG data directory.
const defaultDBFile = "blindfour/history.db"

// Store manages the SQLite database connection for match history.
type Store struct {
	db *sql.DB
}

// MatchRecord is one stored match result.
type MatchRecord struct {
	ID         int64
	MatchID    string
	GameID     string
	Rules      string
	Winner     core.PlayerID // PlayerNone for a draw
	Reason     string
	Moves      int
	Inversions int
	Duration   time.Duration
	CreatedAt  time.Time
}

// Stats aggregates stored matches.
type Stats struct {
	Matches  int
	P1Wins   int
	P2Wins   int
	Draws    int
	ByReason map[string]int
	AvgMoves float64
}

// DefaultPath returns the history database path under the XDG data directory,
// creating its parent directory.
func DefaultPath() (string, error) {
	path, err := xdg.DataFile(defaultDBFile)
	if err != nil {
		return "", fmt.Errorf("storage: cannot resolve data path: %w", err)
	}
	return path, nil
}

// Open creates or opens a SQLite database at the given path.
// An empty path uses DefaultPath. It creates the parent directories if
// needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	if dbPath == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		dbPath = p
	}

	// Expand ~ to home directory
	if dbPath[0] == '~' {
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

	// Open database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	// Run migrations
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS match_results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			match_id TEXT NOT NULL UNIQUE,
			game_id TEXT NOT NULL,
			rules TEXT NOT NULL DEFAULT '',
			winner INTEGER NOT NULL DEFAULT 0,
			end_reason TEXT NOT NULL,
			moves INTEGER NOT NULL DEFAULT 0,
			inversions INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_match_results_game_id ON match_results(game_id);
		CREATE INDEX IF NOT EXISTS idx_match_results_created ON match_results(created_at DESC);
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

// SaveMatchResult records a finished match.
// Returns the ID of the inserted record.
func (s *Store) SaveMatchResult(r core.MatchResult) (int64, error) {
	if r.MatchID == "" {
		return 0, errors.New("storage: match result without match id")
	}

	res, err := s.db.Exec(
		`INSERT INTO match_results
		 (match_id, game_id, rules, winner, end_reason, moves, inversions, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.MatchID,
		r.GameID,
		r.Rules,
		int(r.Winner),
		r.Reason,
		r.Moves,
		r.Inversions,
		r.Duration.Milliseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save match result: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const selectRecord = `SELECT id, match_id, game_id, rules, winner, end_reason,
		        moves, inversions, duration_ms, created_at
		 FROM match_results`

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (MatchRecord, error) {
	var rec MatchRecord
	var winner int
	var durationMS int64
	var createdAt any

	if err := row.Scan(
		&rec.ID,
		&rec.MatchID,
		&rec.GameID,
		&rec.Rules,
		&winner,
		&rec.Reason,
		&rec.Moves,
		&rec.Inversions,
		&durationMS,
		&createdAt,
	); err != nil {
		return rec, err
	}

	rec.Winner = core.PlayerID(winner)
	rec.Duration = time.Duration(durationMS) * time.Millisecond

	// Parse the datetime - handle both time.Time and string
	switch v := createdAt.(type) {
	case time.Time:
		rec.CreatedAt = v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			rec.CreatedAt = parsed
		}
	}
	return rec, nil
}

// ResultByID retrieves a match by its match ID. Returns nil if not found.
func (s *Store) ResultByID(matchID string) (*MatchRecord, error) {
	rec, err := scanRecord(s.db.QueryRow(selectRecord+` WHERE match_id = ?`, matchID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query match result: %w", err)
	}
	return &rec, nil
}

// RecentResults retrieves the most recent matches, newest first.
// An empty gameID returns matches of every game.
func (s *Store) RecentResults(gameID string, limit int) ([]MatchRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	query := selectRecord + ` WHERE (? = '' OR game_id = ?) ORDER BY created_at DESC, id DESC LIMIT ?`
	rows, err := s.db.Query(query, gameID, gameID, limit)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query match results: %w", err)
	}
	defer rows.Close()

	var records []MatchRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// Stats aggregates wins, draws and end reasons.
// An empty gameID aggregates every game.
func (s *Store) Stats(gameID string) (Stats, error) {
	st := Stats{ByReason: make(map[string]int)}

	var avg sql.NullFloat64
	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN winner = 1 THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN winner = 2 THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN winner = 0 THEN 1 ELSE 0 END), 0),
		        AVG(moves)
		 FROM match_results
		 WHERE (? = '' OR game_id = ?)`,
		gameID, gameID,
	).Scan(&st.Matches, &st.P1Wins, &st.P2Wins, &st.Draws, &avg)
	if err != nil {
		return st, fmt.Errorf("storage: cannot query stats: %w", err)
	}
	if avg.Valid {
		st.AvgMoves = avg.Float64
	}

	rows, err := s.db.Query(
		`SELECT end_reason, COUNT(*)
		 FROM match_results
		 WHERE (? = '' OR game_id = ?)
		 GROUP BY end_reason`,
		gameID, gameID,
	)
	if err != nil {
		return st, fmt.Errorf("storage: cannot query reasons: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var reason string
		var n int
		if err := rows.Scan(&reason, &n); err != nil {
			return st, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		st.ByReason[reason] = n
	}
	if err := rows.Err(); err != nil {
		return st, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return st, nil
}

// ClearResults deletes stored matches. An empty gameID deletes everything.
func (s *Store) ClearResults(gameID string) error {
	_, err := s.db.Exec("DELETE FROM match_results WHERE (? = '' OR game_id = ?)", gameID, gameID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear match results: %w", err)
	}
	return nil
}
