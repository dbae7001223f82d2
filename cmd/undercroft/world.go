package main

import (
	"math"
	"slices"

	"github.com/lawnchairsociety/undercroft/internal/config"
	"github.com/lawnchairsociety/undercroft/internal/dungeon"
	"github.com/lawnchairsociety/undercroft/internal/portal"
	"github.com/lawnchairsociety/undercroft/internal/rng"
)

// simWorld is a stand-in overworld: rolling hills split into biome sectors
// around the origin.
type simWorld struct {
	biomes []string
	offset float64
}

func newSimWorld(data *config.GameData, seed int64) *simWorld {
	var biomes []string
	for _, id := range data.DungeonTypeIDs() {
		for _, b := range data.DungeonTypes[id].Biomes {
			if !slices.Contains(biomes, b) {
				biomes = append(biomes, b)
			}
		}
	}
	slices.Sort(biomes)
	return &simWorld{
		biomes: biomes,
		offset: rng.New(seed).Next() * 2 * math.Pi,
	}
}

func (w *simWorld) HeightAt(x, y float64) float64 {
	return 8 * math.Sin(x/40+w.offset) * math.Cos(y/40)
}

func (w *simWorld) BiomeAt(x, y float64) string {
	if len(w.biomes) == 0 {
		return ""
	}
	angle := math.Atan2(y, x) + math.Pi + w.offset
	sector := int(angle/(2*math.Pi)*float64(len(w.biomes))) % len(w.biomes)
	return w.biomes[sector]
}

// simEntity is the handle simSpawner hands out.
type simEntity struct {
	ID        int
	Archetype string
	Pos       dungeon.Vec3
}

// simSpawner creates numbered entities.
type simSpawner struct {
	next int
}

func (s *simSpawner) Spawn(archetype string, x, y, z float64) dungeon.EntityHandle {
	s.next++
	return &simEntity{ID: s.next, Archetype: archetype, Pos: dungeon.Vec3{X: x, Y: y, Z: z}}
}

// simInventory holds a fixed stack of portal stones.
type simInventory struct {
	items map[string]int
}

func (inv *simInventory) HasItem(id string) bool {
	return inv.items[id] > 0
}

func (inv *simInventory) RemoveItem(id string, count int) {
	inv.items[id] = max(0, inv.items[id]-count)
}

// playResult summarizes one dungeon run.
type playResult struct {
	DungeonID string
	Type      string
	Rooms     int
	Enemies   int
	Boss      bool
	Loot      []dungeon.LootItem
	Cleared   bool
}

// playThrough enters a portal, walks every room defeating what spawns,
// loots every chest, then walks back to the entrance and leaves.
func playThrough(rt *portal.Runtime, portalID string, from dungeon.Vec3) (playResult, bool) {
	if _, ok := rt.EnterPortal(portalID, from); !ok {
		return playResult{}, false
	}
	d, ok := rt.CurrentDungeon()
	if !ok {
		return playResult{}, false
	}
	res := playResult{DungeonID: d.ID, Type: d.Type, Rooms: len(d.Rooms)}
	cell := rt.Config().CellSize

	for i := range d.Rooms {
		wr, _ := d.RoomWorldRect(i, cell)
		x, y := wr.Center()
		rt.Update(1.0/60, dungeon.Vec3{X: x, Y: y, Z: d.Origin.Z})

		for idx, e := range d.Enemies {
			if e.Room == i && rt.ReportEnemyDefeated(d.ID, idx) {
				res.Enemies++
			}
		}
		if d.BossRoom() == i && rt.ReportBossDefeated(d.ID) {
			res.Boss = true
		}
		for idx, c := range d.Chests {
			if c.Room != i {
				continue
			}
			if items, ok := rt.OpenChest(d.ID, idx); ok {
				res.Loot = append(res.Loot, items...)
			}
		}
	}

	entrance, _ := d.EntranceCenter(cell)
	if frame := rt.Update(1.0/60, entrance); !frame.NearExit {
		return res, false
	}
	if _, ok := rt.ExitDungeon(); !ok {
		return res, false
	}
	res.Cleared = d.Cleared
	return res, true
}
