package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"

	"github.com/lawnchairsociety/undercroft/internal/config"
	"github.com/lawnchairsociety/undercroft/internal/portal"
)

// Key patterns under the prefix:
//
//	snapshot:{slot}   JSON snapshot
//	slots             set of saved slots
//	clears:{type}     set of cleared dungeon ids
const (
	snapshotKey = "snapshot:"
	slotsKey    = "slots"
	clearsKey   = "clears:"
)

// RedisConfig holds the dependencies of a RedisStore.
type RedisConfig struct {
	Client    redis.Cmdable
	KeyPrefix string

	// closer is set when the store dialed its own client.
	closer func() error
}

// Validate ensures all required dependencies are provided.
func (c *RedisConfig) Validate() error {
	if c == nil {
		return errors.New("config cannot be nil")
	}
	if c.Client == nil {
		return errors.New("redis client is required")
	}
	return nil
}

// RedisStore keeps snapshots as JSON strings in Redis.
type RedisStore struct {
	client redis.Cmdable
	prefix string
	closer func() error
}

var _ portal.ClearRecorder = (*RedisStore)(nil)

// NewRedis creates a RedisStore over an existing client.
func NewRedis(cfg *RedisConfig) (*RedisStore, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &RedisStore{client: cfg.Client, prefix: cfg.KeyPrefix, closer: cfg.closer}, nil
}

// DialRedis connects to the server in cfg and checks it answers.
func DialRedis(ctx context.Context, cfg config.RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}
	return NewRedis(&RedisConfig{Client: client, KeyPrefix: cfg.KeyPrefix, closer: client.Close})
}

func (s *RedisStore) key(parts ...string) string {
	k := s.prefix
	for _, p := range parts {
		k += p
	}
	return k
}

// Save stores snap in slot and adds the slot to the slot index.
func (s *RedisStore) Save(ctx context.Context, slot string, snap *portal.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.key(snapshotKey, slot), data, 0)
		pipe.SAdd(ctx, s.key(slotsKey), slot)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to store slot %q in redis: %w", slot, err)
	}
	return nil
}

// Load reads slot.
func (s *RedisStore) Load(ctx context.Context, slot string) (*portal.Snapshot, error) {
	data, err := s.client.Get(ctx, s.key(snapshotKey, slot)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get slot %q from redis: %w", slot, err)
	}

	var snap portal.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal slot %q: %w", slot, err)
	}
	return &snap, nil
}

// Delete removes slot.
func (s *RedisStore) Delete(ctx context.Context, slot string) error {
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, s.key(snapshotKey, slot))
		pipe.SRem(ctx, s.key(slotsKey), slot)
		return nil
	})
	return err
}

// Slots lists every saved slot in order.
func (s *RedisStore) Slots(ctx context.Context) ([]string, error) {
	slots, err := s.client.SMembers(ctx, s.key(slotsKey)).Result()
	if err != nil {
		return nil, err
	}
	sort.Strings(slots)
	return slots, nil
}

// RecordClear adds a dungeon to its type's clear set. The first dungeon
// added to an empty set is the type's first clear.
func (s *RedisStore) RecordClear(dungeonType, dungeonID string) (bool, error) {
	ctx := context.Background()
	key := s.key(clearsKey, dungeonType)

	var added *redis.IntCmd
	var size *redis.IntCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		added = pipe.SAdd(ctx, key, dungeonID)
		size = pipe.SCard(ctx, key)
		return nil
	})
	if err != nil {
		return false, err
	}
	return added.Val() == 1 && size.Val() == 1, nil
}

// Close closes the client if the store dialed it.
func (s *RedisStore) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer()
}
