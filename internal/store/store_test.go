package store

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/alicebob/miniredis/v2"

	"github.com/lawnchairsociety/undercroft/internal/config"
	"github.com/lawnchairsociety/undercroft/internal/dungeon"
	"github.com/lawnchairsociety/undercroft/internal/portal"
)

func newRuntime(t *testing.T) *portal.Runtime {
	t.Helper()
	rt, err := portal.New(config.DefaultConfig().Runtime, config.DefaultGameData(), portal.Collaborators{})
	if err != nil {
		t.Fatalf("portal.New() error: %v", err)
	}
	return rt
}

// testSnapshot opens two portals and enters one.
func testSnapshot(t *testing.T) *portal.Snapshot {
	t.Helper()
	rt := newRuntime(t)
	rt.CreatePortal(12, -8, "mine")
	p, _ := rt.CreatePortal(100, 200, "crypt")
	if _, ok := rt.EnterPortal(p.ID, dungeon.Vec3{X: 95, Y: 195, Z: 3}); !ok {
		t.Fatal("EnterPortal failed")
	}
	return rt.Serialize()
}

// assertSameRegistry loads got into a fresh runtime and compares what it
// serializes back to with want.
func assertSameRegistry(t *testing.T, got, want *portal.Snapshot) {
	t.Helper()
	rt := newRuntime(t)
	if err := rt.Deserialize(got); err != nil {
		t.Fatalf("Deserialize() error: %v", err)
	}
	if !reflect.DeepEqual(rt.Serialize(), want) {
		t.Error("loaded snapshot does not match the saved one")
	}
}

// storeContract runs the behavior every Store must share.
func storeContract(t *testing.T, s Store) {
	ctx := context.Background()
	snap := testSnapshot(t)

	if _, err := s.Load(ctx, "default"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Load(empty) error = %v, want ErrNotFound", err)
	}

	if err := s.Save(ctx, "default", snap); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	got, err := s.Load(ctx, "default")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	assertSameRegistry(t, got, snap)

	// Slots are independent
	if _, err := s.Load(ctx, "other"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load(other) error = %v, want ErrNotFound", err)
	}

	// Saving again replaces the slot
	empty := newRuntime(t).Serialize()
	if err := s.Save(ctx, "default", empty); err != nil {
		t.Fatalf("second Save() error: %v", err)
	}
	got, err = s.Load(ctx, "default")
	if err != nil {
		t.Fatalf("Load() after overwrite error: %v", err)
	}
	if len(got.Portals) != 0 || len(got.Dungeons) != 0 {
		t.Errorf("overwritten slot still has %d portals", len(got.Portals))
	}
}

func TestOpenDrivers(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	mr := miniredis.RunT(t)

	tests := []struct {
		driver string
		want   string
	}{
		{"file", "*store.FileStore"},
		{"", "*store.FileStore"},
		{"sqlite", "*store.SQLStore"},
		{"redis", "*store.RedisStore"},
	}
	for _, tt := range tests {
		cfg := config.DefaultConfig().Storage
		cfg.Driver = tt.driver
		cfg.FilePath = filepath.Join(dir, "dungeons.yaml")
		cfg.SQLitePath = filepath.Join(dir, "undercroft.db")
		cfg.Redis.Addr = mr.Addr()

		s, err := Open(ctx, cfg)
		if err != nil {
			t.Fatalf("Open(%q) error: %v", tt.driver, err)
		}
		if got := reflect.TypeOf(s).String(); got != tt.want {
			t.Errorf("Open(%q) = %s, want %s", tt.driver, got, tt.want)
		}
		if err := s.Close(); err != nil {
			t.Errorf("Close(%q) error: %v", tt.driver, err)
		}
	}

	cfg := config.DefaultConfig().Storage
	cfg.Driver = "floppy"
	if _, err := Open(ctx, cfg); err == nil {
		t.Error("Open(unknown driver) should fail")
	}
}

func TestRuntimeHelpers(t *testing.T) {
	ctx := context.Background()
	s := NewFile(filepath.Join(t.TempDir(), "dungeons.yaml"))

	rt := newRuntime(t)
	ok, err := LoadRuntime(ctx, s, "default", rt)
	if err != nil || ok {
		t.Fatalf("LoadRuntime(empty) = %v, %v; want false, nil", ok, err)
	}

	p, _ := rt.CreatePortal(1, 1, "cave")
	if err := SaveRuntime(ctx, s, "default", rt); err != nil {
		t.Fatalf("SaveRuntime() error: %v", err)
	}

	loaded := newRuntime(t)
	ok, err = LoadRuntime(ctx, s, "default", loaded)
	if err != nil || !ok {
		t.Fatalf("LoadRuntime() = %v, %v; want true, nil", ok, err)
	}
	if _, found := loaded.Portal(p.ID); !found {
		t.Errorf("portal %q not restored", p.ID)
	}
}

func TestLoadRuntimeRejectsBadSnapshot(t *testing.T) {
	ctx := context.Background()
	s := NewFile(filepath.Join(t.TempDir(), "dungeons.yaml"))

	bad := testSnapshot(t)
	bad.Version = 99
	if err := s.Save(ctx, "default", bad); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if _, err := LoadRuntime(ctx, s, "default", newRuntime(t)); err == nil {
		t.Error("LoadRuntime should fail on an unsupported version")
	}
}
