package database

import (
	"database/sql"
	"errors"
	"time"
)

// ErrNoSnapshot is returned when a slot has never been saved.
var ErrNoSnapshot = errors.New("no snapshot saved in slot")

// SnapshotRecord is one saved registry snapshot.
type SnapshotRecord struct {
	Slot    string
	Version int
	Data    []byte
	SavedAt time.Time
}

// SaveSnapshot stores data in slot, replacing whatever was there.
func (d *Database) SaveSnapshot(slot string, version int, data []byte) error {
	return d.saveSnapshotAt(slot, version, data, time.Now().UTC())
}

func (d *Database) saveSnapshotAt(slot string, version int, data []byte, savedAt time.Time) error {
	_, err := d.db.Exec(d.qb.Build(`
		INSERT INTO registry_snapshots (slot, version, data, saved_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (slot) DO UPDATE SET
			version = excluded.version,
			data = excluded.data,
			saved_at = excluded.saved_at
	`), slot, version, string(data), savedAt)
	return err
}

// LoadSnapshot returns the snapshot in slot, or ErrNoSnapshot.
func (d *Database) LoadSnapshot(slot string) (*SnapshotRecord, error) {
	row := d.db.QueryRow(d.qb.Build(`
		SELECT slot, version, data, saved_at
		FROM registry_snapshots
		WHERE slot = ?
	`), slot)

	rec := &SnapshotRecord{}
	var data string
	err := row.Scan(&rec.Slot, &rec.Version, &data, &rec.SavedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, err
	}
	rec.Data = []byte(data)
	return rec, nil
}

// DeleteSnapshot removes slot. Deleting a missing slot is not an error.
func (d *Database) DeleteSnapshot(slot string) error {
	_, err := d.db.Exec(d.qb.Build(`DELETE FROM registry_snapshots WHERE slot = ?`), slot)
	return err
}

// ListSnapshotSlots returns every saved slot name in order.
func (d *Database) ListSnapshotSlots() ([]string, error) {
	rows, err := d.db.Query(`SELECT slot FROM registry_snapshots ORDER BY slot`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var slots []string
	for rows.Next() {
		var slot string
		if err := rows.Scan(&slot); err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}
	return slots, rows.Err()
}
