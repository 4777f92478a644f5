// Package store persists completed evaluations in SQLite and serves the
// history and ranking queries.
package store

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// DB wraps the SQLite handle with pooling configured for a single-node
// service.
type DB struct {
	*sql.DB
}

// NewDB opens (creating if needed) the evaluations database under dataDir
// and runs migrations.
func NewDB(dataDir string) (*DB, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "screener.db")
	connStr := fmt.Sprintf("%s?_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=foreign_keys(ON)&_pragma=busy_timeout(5000)", dbPath)

	db, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	store := &DB{DB: db}
	if err := store.migrate(); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	slog.Info("database initialized", "path", dbPath)
	return store, nil
}

func (db *DB) migrate() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS evaluations (
			id TEXT PRIMARY KEY,
			candidate_name TEXT NOT NULL,
			video_path TEXT,
			overall_score REAL NOT NULL,
			visual_score REAL NOT NULL,
			audio_score REAL NOT NULL,
			content_score REAL NOT NULL,
			overall_rating INTEGER NOT NULL,
			result TEXT NOT NULL, -- full result JSON
			created_at DATETIME NOT NULL
		)`,

		`CREATE INDEX IF NOT EXISTS idx_evaluations_candidate ON evaluations(candidate_name)`,
		`CREATE INDEX IF NOT EXISTS idx_evaluations_score ON evaluations(overall_score DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_evaluations_created ON evaluations(created_at DESC)`,
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("execute migration: %w", err)
		}
	}
	return nil
}
