package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lawnchairsociety/undercroft/internal/portal"
)

// fileData is the YAML document written for one slot.
type fileData struct {
	SavedAt  time.Time       `yaml:"saved_at"`
	Snapshot portal.Snapshot `yaml:",inline"`
}

// FileStore keeps each slot in its own YAML file. The "default" slot uses
// path itself; other slots add their name before the extension.
type FileStore struct {
	path string
}

// NewFile creates a FileStore rooted at path.
func NewFile(path string) *FileStore {
	return &FileStore{path: path}
}

// PathFor returns the file that holds slot.
func (s *FileStore) PathFor(slot string) string {
	if slot == "" || slot == "default" {
		return s.path
	}
	ext := filepath.Ext(s.path)
	return strings.TrimSuffix(s.path, ext) + "." + slot + ext
}

// Save writes snap to the slot's file, replacing it atomically.
func (s *FileStore) Save(ctx context.Context, slot string, snap *portal.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	yamlData, err := yaml.Marshal(&fileData{SavedAt: time.Now().UTC(), Snapshot: *snap})
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	path := s.PathFor(slot)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, yamlData, 0644); err != nil {
		return fmt.Errorf("failed to write snapshot file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace snapshot file: %w", err)
	}
	return nil
}

// Load reads the slot's file. A missing file is ErrNotFound.
func (s *FileStore) Load(ctx context.Context, slot string) (*portal.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	yamlData, err := os.ReadFile(s.PathFor(slot))
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot file: %w", err)
	}

	var data fileData
	if err := yaml.Unmarshal(yamlData, &data); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot file: %w", err)
	}
	return &data.Snapshot, nil
}

// Close is a no-op.
func (s *FileStore) Close() error {
	return nil
}
