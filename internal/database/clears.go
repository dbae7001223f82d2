package database

import (
	"database/sql"
	"errors"
	"time"
)

// DungeonClear is one recorded dungeon clear.
type DungeonClear struct {
	ID           int64
	DungeonType  string
	DungeonID    string
	ClearedAt    time.Time
	IsFirstClear bool
}

// RecordClear logs that a dungeon was cleared. Returns whether this was the
// first clear of any dungeon of that type. A dungeon is only logged once;
// recording it again reports false.
func (d *Database) RecordClear(dungeonType, dungeonID string) (bool, error) {
	tx, err := d.db.Begin()
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	var count int
	err = tx.QueryRow(d.qb.Build(`SELECT COUNT(*) FROM dungeon_clears WHERE dungeon_type = ?`), dungeonType).Scan(&count)
	if err != nil {
		return false, err
	}
	isFirst := count == 0

	_, err = tx.Exec(d.qb.Build(`
		INSERT INTO dungeon_clears (dungeon_type, dungeon_id, cleared_at, is_first_clear)
		VALUES (?, ?, ?, ?)
	`), dungeonType, dungeonID, time.Now().UTC(), isFirst)
	if err != nil {
		if d.dialect.IsDuplicateKeyError(err) {
			return false, nil
		}
		return false, err
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}
	return isFirst, nil
}

// GetFirstClear returns the first clear of a dungeon type, or nil if none of
// its dungeons have been cleared.
func (d *Database) GetFirstClear(dungeonType string) (*DungeonClear, error) {
	row := d.db.QueryRow(d.qb.Build(`
		SELECT id, dungeon_type, dungeon_id, cleared_at, is_first_clear
		FROM dungeon_clears
		WHERE dungeon_type = ? AND is_first_clear = ?
		LIMIT 1
	`), dungeonType, true)

	c := &DungeonClear{}
	err := row.Scan(&c.ID, &c.DungeonType, &c.DungeonID, &c.ClearedAt, &c.IsFirstClear)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// GetClears returns every clear of a dungeon type, oldest first.
func (d *Database) GetClears(dungeonType string) ([]DungeonClear, error) {
	rows, err := d.db.Query(d.qb.Build(`
		SELECT id, dungeon_type, dungeon_id, cleared_at, is_first_clear
		FROM dungeon_clears
		WHERE dungeon_type = ?
		ORDER BY id ASC
	`), dungeonType)
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

// HasDungeonBeenCleared reports whether a specific dungeon was ever cleared.
func (d *Database) HasDungeonBeenCleared(dungeonID string) (bool, error) {
	var count int
	err := d.db.QueryRow(d.qb.Build(`SELECT COUNT(*) FROM dungeon_clears WHERE dungeon_id = ?`), dungeonID).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ClearCounts returns the number of clears per dungeon type.
func (d *Database) ClearCounts() (map[string]int, error) {
	rows, err := d.db.Query(`
		SELECT dungeon_type, COUNT(*)
		FROM dungeon_clears
		GROUP BY dungeon_type
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var dungeonType string
		var n int
		if err := rows.Scan(&dungeonType, &n); err != nil {
			return nil, err
		}
		counts[dungeonType] = n
	}
	return counts, rows.Err()
}
