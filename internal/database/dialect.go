package database

import (
	"fmt"
	"strings"
)

// Dialect covers the SQL differences between SQLite and PostgreSQL.
type Dialect interface {
	// DriverName is the database/sql driver name.
	DriverName() string

	// Placeholder returns the bind parameter for a 1-indexed position.
	Placeholder(position int) string

	// InitStatements run once after the connection opens.
	InitStatements() []string

	// IDColumn is the column definition for an auto-incrementing primary key.
	IDColumn() string

	// BoolType is the column type used for flags.
	BoolType() string

	// IsDuplicateKeyError reports a unique constraint violation.
	IsDuplicateKeyError(err error) bool
}

// DialectType identifies the database dialect.
type DialectType string

const (
	DialectSQLite   DialectType = "sqlite"
	DialectPostgres DialectType = "postgres"
)

// NewDialect returns the Dialect for dialectType. Unknown types get SQLite.
func NewDialect(dialectType DialectType) Dialect {
	if dialectType == DialectPostgres {
		return &PostgresDialect{}
	}
	return &SQLiteDialect{}
}

// SQLiteDialect is the modernc.org/sqlite dialect.
type SQLiteDialect struct{}

func (d *SQLiteDialect) DriverName() string              { return "sqlite" }
func (d *SQLiteDialect) Placeholder(position int) string { return "?" }
func (d *SQLiteDialect) IDColumn() string                { return "id INTEGER PRIMARY KEY AUTOINCREMENT" }
func (d *SQLiteDialect) BoolType() string                { return "INTEGER" }

func (d *SQLiteDialect) InitStatements() []string {
	return []string{
		"PRAGMA journal_mode = WAL",
		// Wait for locks instead of failing immediately
		"PRAGMA busy_timeout = 5000",
	}
}

func (d *SQLiteDialect) IsDuplicateKeyError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// PostgresDialect is the lib/pq dialect.
type PostgresDialect struct{}

func (d *PostgresDialect) DriverName() string { return "postgres" }
func (d *PostgresDialect) IDColumn() string   { return "id BIGSERIAL PRIMARY KEY" }
func (d *PostgresDialect) BoolType() string   { return "BOOLEAN" }

func (d *PostgresDialect) Placeholder(position int) string {
	return fmt.Sprintf("$%d", position)
}

func (d *PostgresDialect) InitStatements() []string {
	return nil
}

func (d *PostgresDialect) IsDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	// 23505 is unique_violation
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "23505")
}
