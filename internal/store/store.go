// Package store saves and loads portal registry snapshots in a file, a SQL
// database or Redis.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/lawnchairsociety/undercroft/internal/config"
	"github.com/lawnchairsociety/undercroft/internal/database"
	"github.com/lawnchairsociety/undercroft/internal/portal"
)

// ErrNotFound is returned by Load when a slot has never been saved.
var ErrNotFound = errors.New("snapshot not found")

// Store persists registry snapshots under named slots.
type Store interface {
	Save(ctx context.Context, slot string, snap *portal.Snapshot) error
	Load(ctx context.Context, slot string) (*portal.Snapshot, error)
	Close() error
}

// Open returns the store selected by cfg.Driver.
func Open(ctx context.Context, cfg config.StorageConfig) (Store, error) {
	switch cfg.Driver {
	case "file", "":
		return NewFile(cfg.FilePath), nil

	case "sqlite", "postgres":
		db, err := database.OpenWithConfig(database.FromStorage(cfg))
		if err != nil {
			return nil, fmt.Errorf("failed to open %s store: %w", cfg.Driver, err)
		}
		return &SQLStore{db: db, owned: true}, nil

	case "redis":
		s, err := DialRedis(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		return s, nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// SaveRuntime serializes rt into slot.
func SaveRuntime(ctx context.Context, s Store, slot string, rt *portal.Runtime) error {
	return s.Save(ctx, slot, rt.Serialize())
}

// LoadRuntime restores rt from slot. A slot that was never saved leaves rt
// as it is and reports false.
func LoadRuntime(ctx context.Context, s Store, slot string, rt *portal.Runtime) (bool, error) {
	snap, err := s.Load(ctx, slot)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := rt.Deserialize(snap); err != nil {
		return false, fmt.Errorf("failed to restore slot %q: %w", slot, err)
	}
	return true, nil
}
