// Package database sets up/opens the download history database.
package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"mdload/internal/domain/consts"
	"mdload/internal/utils/logging"

	_ "github.com/mattn/go-sqlite3"
)

const (
	dbDriver = "sqlite3"
)

// Database wraps the history database handle.
type Database struct {
	DB *sql.DB
}

// DefaultPath returns ~/.mdload/history.db.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, consts.HomeProgDir, consts.HistoryDBFile), nil
}

// InitDB opens (creating if needed) the database at path.
func InitDB(path string) (d *Database, err error) {
	if err := os.MkdirAll(filepath.Dir(path), consts.PermsHomeProgDir); err != nil {
		return nil, fmt.Errorf("failed to make directories: %w", err)
	}

	d = new(Database)
	d.DB, err = sql.Open(dbDriver, path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database at path %q: %w", path, err)
	}

	if err := d.initTables(); err != nil {
		d.Close()
		return nil, fmt.Errorf("failed to initialize tables: %w", err)
	}

	if err := os.Chmod(path, consts.PermsHistoryFile); err != nil {
		logging.D(1, "Could not restrict history file permissions: %v", err)
	}
	return d, nil
}

// Close closes the database handle.
func (d *Database) Close() {
	if d == nil || d.DB == nil {
		return
	}
	if err := d.DB.Close(); err != nil {
		logging.E("failed to close database: %v", err)
	}
}

// initTables initializes the SQL tables.
func (d *Database) initTables() (err error) {
	tx, err := d.DB.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil {
				logging.E("transaction rollback failed: %v", rollbackErr)
			}
		}
	}()

	if _, err = tx.Exec(downloadsTable); err != nil {
		return fmt.Errorf("failed to create downloads table: %w", err)
	}

	return tx.Commit()
}

const downloadsTable = `
    CREATE TABLE IF NOT EXISTS downloads (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        run_id TEXT NOT NULL,
        entry_id TEXT,
        url TEXT NOT NULL,
        title TEXT,
        kind TEXT,
        file_path TEXT,
        file_size INTEGER,
        status TEXT NOT NULL CHECK(status IN ('completed', 'failed')),
        error_message TEXT,
        created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
    );
    CREATE INDEX IF NOT EXISTS idx_downloads_url ON downloads(url);
    CREATE INDEX IF NOT EXISTS idx_downloads_entry ON downloads(entry_id);
    CREATE INDEX IF NOT EXISTS idx_downloads_status ON downloads(status);
    `
