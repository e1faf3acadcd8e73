package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // driver: pgx
	_ "modernc.org/sqlite"             // driver: sqlite
)

type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
)

// Open opens a DB and ensures schema exists.
func Open(ctx context.Context, driver Driver, dsn string) (*sql.DB, error) {
	var drvName string
	switch driver {
	case DriverSQLite:
		drvName = "sqlite" // modernc driver
		if dsn == "" {
			dsn = "file:kumitate.db?cache=shared&mode=rwc&_pragma=busy_timeout(5000)"
		}
	case DriverPostgres:
		drvName = "pgx" // pgx stdlib driver
		if dsn == "" {
			dsn = "postgres://localhost:5432/kumitate?sslmode=disable"
		}
	default:
		return nil, fmt.Errorf("unsupported driver: %s", driver)
	}

	db, err := sql.Open(drvName, dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	if err := ensureSchema(ctx, db, driver); err != nil {
		return nil, err
	}
	return db, nil
}

func ensureSchema(ctx context.Context, db *sql.DB, driver Driver) error {
	var schema string
	switch driver {
	case DriverSQLite:
		schema = schemaSQLite
	case DriverPostgres:
		schema = schemaPostgres
	}
	_, err := db.ExecContext(ctx, schema)
	return err
}

const schemaSQLite = `
PRAGMA foreign_keys=ON;

CREATE TABLE IF NOT EXISTS sentences (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  source_text TEXT NOT NULL,
  target_text TEXT NOT NULL,
  target_norm TEXT NOT NULL,
  created_at INTEGER NOT NULL,
  UNIQUE(source_text, target_norm)
);

CREATE INDEX IF NOT EXISTS idx_sentences_target_norm ON sentences(target_norm);

CREATE TABLE IF NOT EXISTS tokens (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  surface TEXT NOT NULL,
  lemma TEXT,
  pos_major TEXT NOT NULL DEFAULT '',
  pos_minor TEXT,
  inflection_type TEXT,
  inflection_form TEXT NOT NULL DEFAULT '',
  reading TEXT,
  frequency INTEGER NOT NULL DEFAULT 1,
  UNIQUE(surface, pos_major, inflection_form)
);

CREATE INDEX IF NOT EXISTS idx_tokens_pos_major ON tokens(pos_major);
CREATE INDEX IF NOT EXISTS idx_tokens_inflection_form ON tokens(inflection_form);
CREATE INDEX IF NOT EXISTS idx_tokens_frequency ON tokens(frequency DESC);

CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY,
  username TEXT NOT NULL,
  role TEXT NOT NULL,
  created_at INTEGER NOT NULL
);
`

const schemaPostgres = `
CREATE TABLE IF NOT EXISTS sentences (
  id BIGSERIAL PRIMARY KEY,
  source_text TEXT NOT NULL,
  target_text TEXT NOT NULL,
  target_norm TEXT NOT NULL,
  created_at BIGINT NOT NULL,
  UNIQUE(source_text, target_norm)
);

CREATE INDEX IF NOT EXISTS idx_sentences_target_norm ON sentences(target_norm);

CREATE TABLE IF NOT EXISTS tokens (
  id BIGSERIAL PRIMARY KEY,
  surface TEXT NOT NULL,
  lemma TEXT,
  pos_major TEXT NOT NULL DEFAULT '',
  pos_minor TEXT,
  inflection_type TEXT,
  inflection_form TEXT NOT NULL DEFAULT '',
  reading TEXT,
  frequency BIGINT NOT NULL DEFAULT 1,
  UNIQUE(surface, pos_major, inflection_form)
);

CREATE INDEX IF NOT EXISTS idx_tokens_pos_major ON tokens(pos_major);
CREATE INDEX IF NOT EXISTS idx_tokens_inflection_form ON tokens(inflection_form);
CREATE INDEX IF NOT EXISTS idx_tokens_frequency ON tokens(frequency DESC);

CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY,
  username TEXT NOT NULL,
  role TEXT NOT NULL,
  created_at BIGINT NOT NULL
);
`
