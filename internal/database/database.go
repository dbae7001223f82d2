// Package database persists registry snapshots and the dungeon clear log in
// SQLite or PostgreSQL.
package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/lawnchairsociety/undercroft/internal/logger"
)

// Database wraps a SQL connection and its dialect.
type Database struct {
	db      *sql.DB
	dialect Dialect
	qb      *QueryBuilder
}

// Open opens or creates the SQLite database at path.
func Open(path string) (*Database, error) {
	return OpenWithConfig(DefaultConfig(path))
}

// OpenWithConfig opens the database described by cfg and runs migrations.
func OpenWithConfig(cfg Config) (*Database, error) {
	dialect := NewDialect(DialectType(cfg.Driver))

	var dsn string
	switch cfg.Driver {
	case "postgres":
		dsn = cfg.Postgres.DSN()
	case "sqlite", "":
		if cfg.SQLitePath == "" {
			return nil, fmt.Errorf("sqlite path is empty")
		}
		if err := os.MkdirAll(filepath.Dir(cfg.SQLitePath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		dsn = cfg.SQLitePath
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}

	db, err := sql.Open(dialect.DriverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if cfg.Driver == "postgres" {
		db.SetMaxOpenConns(cfg.Postgres.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Postgres.MaxIdleConns)
		db.SetConnMaxLifetime(cfg.Postgres.ConnMaxLifetime)
		if err := db.Ping(); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
	}

	for _, stmt := range dialect.InitStatements() {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("init statement %q failed: %w", stmt, err)
		}
	}

	d := &Database{db: db, dialect: dialect, qb: NewQueryBuilder(dialect)}
	if err := d.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Debug("database opened", "driver", dialect.DriverName())
	return d, nil
}

// Close closes the database connection.
func (d *Database) Close() error {
	return d.db.Close()
}

// DB returns the underlying sql.DB.
func (d *Database) DB() *sql.DB {
	return d.db
}

// Dialect returns the database dialect.
func (d *Database) Dialect() Dialect {
	return d.dialect
}

// migrate creates the schema if it doesn't exist.
func (d *Database) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS registry_snapshots (
			slot TEXT PRIMARY KEY,
			version INTEGER NOT NULL,
			data TEXT NOT NULL,
			saved_at TIMESTAMP NOT NULL
		)`,

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS dungeon_clears (
			%s,
			dungeon_type TEXT NOT NULL,
			dungeon_id TEXT NOT NULL,
			cleared_at TIMESTAMP NOT NULL,
			is_first_clear %s NOT NULL,
			UNIQUE(dungeon_id)
		)`, d.dialect.IDColumn(), d.dialect.BoolType()),

		`CREATE INDEX IF NOT EXISTS idx_dungeon_clears_type ON dungeon_clears(dungeon_type)`,
	}

	for _, m := range migrations {
		if _, err := d.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}
	return nil
}
