package portal

import (
	"fmt"
	"strings"

	"github.com/lawnchairsociety/undercroft/internal/dungeon"
	"github.com/lawnchairsociety/undercroft/internal/logger"
)

// ReportEnemyDefeated marks enemy spawnIndex of a dungeon defeated. Only a
// spawned enemy can be defeated. Clearing its room may clear the dungeon.
func (r *Runtime) ReportEnemyDefeated(dungeonID string, spawnIndex int) bool {
	d, ok := r.dungeons[dungeonID]
	if !ok || spawnIndex < 0 || spawnIndex >= len(d.Enemies) {
		return false
	}
	e := d.Enemies[spawnIndex]
	if !e.MarkDefeated() {
		return false
	}

	if room, ok := d.Room(e.Room); ok && !room.Cleared && d.RoomCleared(e.Room) {
		room.Cleared = true
		logger.Debug("room cleared", "dungeon", d.ID, "room", e.Room)
	}
	r.checkCleared(d)
	return true
}

// ReportBossDefeated marks the dungeon's boss defeated, which clears the
// dungeon.
func (r *Runtime) ReportBossDefeated(dungeonID string) bool {
	d, ok := r.dungeons[dungeonID]
	if !ok || d.Boss == nil || !d.Boss.MarkDefeated() {
		return false
	}

	if room, ok := d.Room(d.Boss.Room); ok {
		room.Cleared = true
	}
	r.notify(NotifyBossDefeated, d, fmt.Sprintf("The %s has been defeated!", displayName(d.Boss.Archetype)))
	r.checkCleared(d)
	return true
}

// OpenChest opens a chest and returns its loot. A chest opens only once.
func (r *Runtime) OpenChest(dungeonID string, chestIndex int) ([]dungeon.LootItem, bool) {
	d, ok := r.dungeons[dungeonID]
	if !ok || chestIndex < 0 || chestIndex >= len(d.Chests) {
		return nil, false
	}
	c := d.Chests[chestIndex]
	if c.Opened {
		return nil, false
	}
	return c.Open(), true
}

// TriggerTrap springs a trap in a room, revealing it. Returns the trap
// archetype.
func (r *Runtime) TriggerTrap(dungeonID string, roomIndex, trapIndex int) (string, bool) {
	d, ok := r.dungeons[dungeonID]
	if !ok {
		return "", false
	}
	room, ok := d.Room(roomIndex)
	if !ok || trapIndex < 0 || trapIndex >= len(room.Traps) {
		return "", false
	}
	trap := room.Traps[trapIndex]
	if !trap.Trigger() {
		return "", false
	}

	r.notify(NotifyTrapTriggered, d, fmt.Sprintf("You triggered a %s!", displayName(trap.Archetype)))
	return trap.Archetype, true
}

// checkCleared marks the dungeon cleared once its boss is defeated, or, with
// no boss, once every room is cleared. The clear is announced once.
func (r *Runtime) checkCleared(d *dungeon.Dungeon) {
	if d.Cleared {
		return
	}
	if d.Boss != nil {
		if !d.Boss.Defeated {
			return
		}
	} else if !d.AllRoomsCleared() {
		return
	}
	d.Cleared = true

	first := false
	if r.clears != nil {
		var err error
		if first, err = r.clears.RecordClear(d.Type, d.ID); err != nil {
			logger.Error("failed to record dungeon clear", "dungeon", d.ID, "error", err)
		}
	}

	logger.Always("dungeon cleared", "dungeon", d.ID, "type", d.Type, "first_clear", first)

	msg := fmt.Sprintf("The %s has been cleared!", r.dungeonName(d))
	if first {
		msg = fmt.Sprintf("The %s has been cleared for the first time!", r.dungeonName(d))
	}
	r.notifier.Notify(Notification{
		Kind:        NotifyCleared,
		DungeonID:   d.ID,
		DungeonType: d.Type,
		Message:     msg,
		FirstClear:  first,
	})
}

// displayName turns an archetype id like "cave_troll" into "cave troll".
func displayName(id string) string {
	return strings.ReplaceAll(id, "_", " ")
}
