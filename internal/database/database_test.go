package database

import (
	"os"
	"path/filepath"
	"testing"
)

func openTestDB(t *testing.T) *Database {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestOpen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	db, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}

	for _, table := range []string{"registry_snapshots", "dungeon_clears"} {
		var count int
		if err := db.db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&count); err != nil {
			t.Errorf("Failed to query %s table: %v", table, err)
		}
	}
}

func TestOpenCreatesDirectory(t *testing.T) {
	nestedPath := filepath.Join(t.TempDir(), "nested", "dir", "test.db")

	db, err := Open(nestedPath)
	if err != nil {
		t.Fatalf("Failed to open database with nested path: %v", err)
	}
	defer db.Close()

	if _, err := os.Stat(nestedPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestOpenTwiceKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	db, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	if err := db.SaveSnapshot("default", 1, []byte(`{"version":1}`)); err != nil {
		t.Fatalf("SaveSnapshot() error: %v", err)
	}
	db.Close()

	db, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen error: %v", err)
	}
	defer db.Close()

	if _, err := db.LoadSnapshot("default"); err != nil {
		t.Errorf("LoadSnapshot() after reopen error: %v", err)
	}
}

func TestOpenWithConfigErrors(t *testing.T) {
	if _, err := OpenWithConfig(Config{Driver: "oracle"}); err == nil {
		t.Error("unknown driver should fail")
	}
	if _, err := OpenWithConfig(Config{Driver: "sqlite"}); err == nil {
		t.Error("empty sqlite path should fail")
	}
}

func TestDialectAccessor(t *testing.T) {
	db := openTestDB(t)
	if _, ok := db.Dialect().(*SQLiteDialect); !ok {
		t.Errorf("Dialect() = %T, want *SQLiteDialect", db.Dialect())
	}
	if db.DB() == nil {
		t.Error("DB() returned nil")
	}
}
