package store

import (
	"context"
	"reflect"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/lawnchairsociety/undercroft/internal/config"
)

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	s, err := NewRedis(&RedisConfig{Client: client, KeyPrefix: "test:"})
	if err != nil {
		t.Fatalf("NewRedis() error: %v", err)
	}
	return s, mr
}

func TestNewRedisValidates(t *testing.T) {
	tests := []struct {
		name string
		cfg  *RedisConfig
	}{
		{"nil config", nil},
		{"nil client", &RedisConfig{KeyPrefix: "x:"}},
	}
	for _, tt := range tests {
		if _, err := NewRedis(tt.cfg); err == nil {
			t.Errorf("%s: NewRedis() should fail", tt.name)
		}
	}
}

func TestRedisStore(t *testing.T) {
	s, _ := newRedisStore(t)
	storeContract(t, s)
}

func TestRedisStoreKeys(t *testing.T) {
	ctx := context.Background()
	s, mr := newRedisStore(t)

	if err := s.Save(ctx, "alpha", testSnapshot(t)); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if err := s.Save(ctx, "beta", testSnapshot(t)); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	if !mr.Exists("test:snapshot:alpha") {
		t.Error("snapshot key not written under the prefix")
	}

	slots, err := s.Slots(ctx)
	if err != nil {
		t.Fatalf("Slots() error: %v", err)
	}
	if want := []string{"alpha", "beta"}; !reflect.DeepEqual(slots, want) {
		t.Errorf("Slots() = %v, want %v", slots, want)
	}

	if err := s.Delete(ctx, "alpha"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if mr.Exists("test:snapshot:alpha") {
		t.Error("Delete() left the snapshot key")
	}
	slots, _ = s.Slots(ctx)
	if want := []string{"beta"}; !reflect.DeepEqual(slots, want) {
		t.Errorf("Slots() after delete = %v, want %v", slots, want)
	}
}

func TestRedisStoreCorruptValue(t *testing.T) {
	s, mr := newRedisStore(t)
	mr.Set("test:snapshot:default", "{not json")

	if _, err := s.Load(context.Background(), "default"); err == nil {
		t.Error("Load() should fail on a corrupt value")
	}
}

func TestRedisStoreRecordClear(t *testing.T) {
	s, _ := newRedisStore(t)

	tests := []struct {
		dungeonType string
		dungeonID   string
		want        bool
	}{
		{"cave", "dungeon_1", true},
		{"cave", "dungeon_2", false},
		{"cave", "dungeon_1", false},
		{"temple", "dungeon_3", true},
	}
	for _, tt := range tests {
		got, err := s.RecordClear(tt.dungeonType, tt.dungeonID)
		if err != nil {
			t.Fatalf("RecordClear(%q, %q) error: %v", tt.dungeonType, tt.dungeonID, err)
		}
		if got != tt.want {
			t.Errorf("RecordClear(%q, %q) = %v, want %v", tt.dungeonType, tt.dungeonID, got, tt.want)
		}
	}
}

func TestDialRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	s, err := DialRedis(ctx, config.RedisConfig{Addr: mr.Addr(), KeyPrefix: "undercroft:"})
	if err != nil {
		t.Fatalf("DialRedis() error: %v", err)
	}
	if err := s.Save(ctx, "default", testSnapshot(t)); err != nil {
		t.Errorf("Save() error: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("Close() error: %v", err)
	}

	if _, err := DialRedis(ctx, config.RedisConfig{Addr: "127.0.0.1:1"}); err == nil {
		t.Error("DialRedis() with nothing listening should fail")
	}
}
