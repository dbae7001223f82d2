package database

import (
	"fmt"
	"time"

	"github.com/lawnchairsociety/undercroft/internal/config"
)

// Config holds database connection configuration.
type Config struct {
	// Driver is "sqlite" or "postgres".
	Driver string

	SQLitePath string

	Postgres PostgresConfig
}

// PostgresConfig holds PostgreSQL connection and pool settings.
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DefaultConfig returns a SQLite Config for path.
func DefaultConfig(sqlitePath string) Config {
	return Config{
		Driver:     "sqlite",
		SQLitePath: sqlitePath,
	}
}

// DefaultPostgresConfig returns PostgresConfig with recommended pool settings.
func DefaultPostgresConfig() PostgresConfig {
	return PostgresConfig{
		Host:            "localhost",
		Port:            5432,
		SSLMode:         "disable",
		MaxOpenConns:    10,
		MaxIdleConns:    2,
		ConnMaxLifetime: 5 * time.Minute,
	}
}

// FromStorage builds a Config from the storage section of the game config.
// Pool settings keep their defaults.
func FromStorage(s config.StorageConfig) Config {
	pg := DefaultPostgresConfig()
	if s.Postgres.Host != "" {
		pg.Host = s.Postgres.Host
	}
	if s.Postgres.Port != 0 {
		pg.Port = s.Postgres.Port
	}
	if s.Postgres.SSLMode != "" {
		pg.SSLMode = s.Postgres.SSLMode
	}
	pg.User = s.Postgres.User
	pg.Password = s.Postgres.Password
	pg.Database = s.Postgres.Database

	driver := "sqlite"
	if s.Driver == "postgres" {
		driver = "postgres"
	}
	return Config{
		Driver:     driver,
		SQLitePath: s.SQLitePath,
		Postgres:   pg,
	}
}

// DSN returns the lib/pq connection string.
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode)
}
