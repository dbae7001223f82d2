package database

import (
	"fmt"
)

// CopyStats counts the rows Copy moved.
type CopyStats struct {
	Snapshots int64
	Clears    int64
}

// Copy moves every snapshot and clear from d into dst, typically from a
// local SQLite file into PostgreSQL. Snapshots overwrite the same slot in
// dst; clears dst already holds are skipped. With dryRun nothing is written
// and the stats count what would have been copied.
func (d *Database) Copy(dst *Database, dryRun bool) (CopyStats, error) {
	var stats CopyStats

	slots, err := d.ListSnapshotSlots()
	if err != nil {
		return stats, fmt.Errorf("failed to list snapshots: %w", err)
	}
	for _, slot := range slots {
		rec, err := d.LoadSnapshot(slot)
		if err != nil {
			return stats, fmt.Errorf("failed to read snapshot %q: %w", slot, err)
		}
		if !dryRun {
			if err := dst.saveSnapshotAt(rec.Slot, rec.Version, rec.Data, rec.SavedAt.UTC()); err != nil {
				return stats, fmt.Errorf("failed to write snapshot %q: %w", slot, err)
			}
		}
		stats.Snapshots++
	}

	clears, err := d.allClears()
	if err != nil {
		return stats, fmt.Errorf("failed to list clears: %w", err)
	}
	for _, c := range clears {
		if dryRun {
			stats.Clears++
			continue
		}
		added, err := dst.importClear(c)
		if err != nil {
			return stats, fmt.Errorf("failed to write clear of %s: %w", c.DungeonID, err)
		}
		if added {
			stats.Clears++
		}
	}
	return stats, nil
}

func (d *Database) allClears() ([]DungeonClear, error) {
	rows, err := d.db.Query(`
		SELECT id, dungeon_type, dungeon_id, cleared_at, is_first_clear
		FROM dungeon_clears
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clears []DungeonClear
	for rows.Next() {
		var c DungeonClear
		if err := rows.Scan(&c.ID, &c.DungeonType, &c.DungeonID, &c.ClearedAt, &c.IsFirstClear); err != nil {
			return nil, err
		}
		clears = append(clears, c)
	}
	return clears, rows.Err()
}

// importClear inserts c as recorded elsewhere, keeping its timestamp and
// first-clear flag. A dungeon already logged is skipped.
func (d *Database) importClear(c DungeonClear) (bool, error) {
	_, err := d.db.Exec(d.qb.Build(`
		INSERT INTO dungeon_clears (dungeon_type, dungeon_id, cleared_at, is_first_clear)
		VALUES (?, ?, ?, ?)
	`), c.DungeonType, c.DungeonID, c.ClearedAt.UTC(), c.IsFirstClear)
	if err != nil {
		if d.dialect.IsDuplicateKeyError(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
