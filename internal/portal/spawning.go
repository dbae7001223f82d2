package portal

import (
	"fmt"
	"reflect"

	"github.com/lawnchairsociety/undercroft/internal/dungeon"
	"github.com/lawnchairsociety/undercroft/internal/logger"
)

// spawnRoom materializes every unspawned enemy of room i and, in the boss
// room, the boss. A nil handle from the spawner leaves the descriptor
// unspawned so the next qualifying frame retries it.
func (r *Runtime) spawnRoom(d *dungeon.Dungeon, i int) (int, bool) {
	spawned := 0
	for _, e := range d.Enemies {
		if e.Room != i || e.Spawned {
			continue
		}
		pos := dungeon.CellToWorld(dungeon.Point{X: e.X, Y: e.Y}, d.Origin, r.cfg.CellSize)
		h := r.spawner.Spawn(e.Archetype, pos.X, pos.Y, pos.Z)
		if isNilHandle(h) {
			logger.Debug("enemy spawn failed, will retry", "dungeon", d.ID, "room", i, "archetype", e.Archetype)
			continue
		}
		e.MarkSpawned(h)
		spawned++
	}

	boss := d.Boss
	if boss == nil || boss.Room != i || boss.Spawned {
		return spawned, false
	}

	room := d.Rooms[i]
	pos := dungeon.CellToWorld(room.Center(), d.Origin, r.cfg.CellSize)
	h := r.spawner.Spawn(boss.Archetype, pos.X, pos.Y, pos.Z)
	if isNilHandle(h) {
		logger.Debug("boss spawn failed, will retry", "dungeon", d.ID, "archetype", boss.Archetype)
		return spawned, false
	}
	boss.MarkSpawned(h)

	logger.Info("boss spawned", "dungeon", d.ID, "boss", boss.Archetype)
	r.notify(NotifyBossAppears, d, fmt.Sprintf("The %s appears!", displayName(boss.Archetype)))
	return spawned, true
}

// visitRoom clears a room that never had enemies the first time the player
// walks in. The boss room clears when the boss falls.
func (r *Runtime) visitRoom(d *dungeon.Dungeon, i int) {
	room := d.Rooms[i]
	if room.Cleared || i == d.BossRoom() || len(d.EnemiesIn(i)) > 0 {
		return
	}
	room.Cleared = true
	r.checkCleared(d)
}

// isNilHandle reports a failed spawn. A typed nil pointer wrapped in the
// handle interface counts as failure too.
func isNilHandle(h dungeon.EntityHandle) bool {
	if h == nil {
		return true
	}
	v := reflect.ValueOf(h)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return v.IsNil()
	}
	return false
}
