package store

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFileStore(t *testing.T) {
	storeContract(t, NewFile(filepath.Join(t.TempDir(), "saves", "dungeons.yaml")))
}

func TestFileStorePathFor(t *testing.T) {
	s := NewFile("data/dungeons.yaml")
	tests := []struct {
		slot string
		want string
	}{
		{"", "data/dungeons.yaml"},
		{"default", "data/dungeons.yaml"},
		{"hardcore", "data/dungeons.hardcore.yaml"},
	}
	for _, tt := range tests {
		if got := s.PathFor(tt.slot); got != tt.want {
			t.Errorf("PathFor(%q) = %q, want %q", tt.slot, got, tt.want)
		}
	}
}

func TestFileStoreWritesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dungeons.yaml")
	s := NewFile(path)

	if err := s.Save(context.Background(), "default", testSnapshot(t)); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	for _, want := range []string{"saved_at:", "version: 1", "edges:", "dungeon_type: crypt"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("snapshot file missing %q", want)
		}
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temporary file left behind")
	}
}

func TestFileStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dungeons.yaml")
	if err := os.WriteFile(path, []byte("version: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewFile(path).Load(context.Background(), "default"); err == nil {
		t.Error("Load() should fail on a corrupt file")
	}
}

func TestFileStoreCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := NewFile(filepath.Join(t.TempDir(), "dungeons.yaml"))
	if err := s.Save(ctx, "default", testSnapshot(t)); err == nil {
		t.Error("Save() with canceled context should fail")
	}
	if _, err := s.Load(ctx, "default"); err == nil {
		t.Error("Load() with canceled context should fail")
	}
}
