package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lawnchairsociety/undercroft/internal/database"
	"github.com/lawnchairsociety/undercroft/internal/portal"
)

// SQLStore keeps snapshots as JSON rows and doubles as the clear log.
type SQLStore struct {
	db    *database.Database
	owned bool
}

// NewSQL wraps an open database. Closing the store leaves db open.
func NewSQL(db *database.Database) *SQLStore {
	return &SQLStore{db: db}
}

var _ portal.ClearRecorder = (*SQLStore)(nil)

// Save stores snap in slot.
func (s *SQLStore) Save(ctx context.Context, slot string, snap *portal.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	if err := s.db.SaveSnapshot(slot, snap.Version, data); err != nil {
		return fmt.Errorf("failed to save slot %q: %w", slot, err)
	}
	return nil
}

// Load reads slot.
func (s *SQLStore) Load(ctx context.Context, slot string) (*portal.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rec, err := s.db.LoadSnapshot(slot)
	if errors.Is(err, database.ErrNoSnapshot) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load slot %q: %w", slot, err)
	}

	var snap portal.Snapshot
	if err := json.Unmarshal(rec.Data, &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal slot %q: %w", slot, err)
	}
	return &snap, nil
}

// RecordClear logs a dungeon clear in the database.
func (s *SQLStore) RecordClear(dungeonType, dungeonID string) (bool, error) {
	return s.db.RecordClear(dungeonType, dungeonID)
}

// Database returns the wrapped database.
func (s *SQLStore) Database() *database.Database {
	return s.db
}

// Close closes the database if the store opened it.
func (s *SQLStore) Close() error {
	if !s.owned {
		return nil
	}
	return s.db.Close()
}
