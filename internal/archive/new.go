package archive

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS records (
	id         INTEGER PRIMARY KEY,
	kind       TEXT NOT NULL,
	filename   TEXT NOT NULL,
	timestamp  TEXT NOT NULL,
	duration   INTEGER NOT NULL DEFAULT 0,
	topics     TEXT NOT NULL DEFAULT '',
	summary    TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS speakers (
	record_id       INTEGER NOT NULL REFERENCES records(id) ON DELETE CASCADE,
	position        INTEGER NOT NULL,
	name            TEXT NOT NULL,
	affiliation     TEXT NOT NULL,
	affiliation_raw TEXT NOT NULL DEFAULT '',
	speech_time     INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (record_id, name)
);
CREATE INDEX IF NOT EXISTS idx_speakers_name ON speakers(name);
CREATE INDEX IF NOT EXISTS idx_records_kind ON records(kind);
`

type implArchive struct {
	db *sql.DB
}

// Open opens (creating if needed) the SQLite archive at path. ":memory:"
// gives a private in-memory database.
func Open(path string) (Archive, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("create archive directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	if path == ":memory:" {
		// each connection would get its own empty database
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping archive: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("set pragma %q: %w", p, err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate archive: %w", err)
	}

	return &implArchive{db: db}, nil
}

func (a *implArchive) Close() error {
	return a.db.Close()
}
