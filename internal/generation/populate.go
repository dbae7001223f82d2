package generation

import (
	"github.com/lawnchairsociety/undercroft/internal/config"
	"github.com/lawnchairsociety/undercroft/internal/dungeon"
	"github.com/lawnchairsociety/undercroft/internal/rng"
)

const (
	enemyInset     = 2
	trapInset      = 1
	extraTrapRate  = 0.2
	trapsPerRoomLo = 1
	trapsPerRoomHi = 3
	tombRate       = 0.25
)

// Populate fills d with enemy spawn descriptors, loot chests, traps and
// structural features. Run it after the boss, if any, has been placed.
func (g *Generator) Populate(d *dungeon.Dungeon, dtype *config.DungeonType, src rng.Source) {
	table, _ := g.data.LootTable(dtype.LootTable)
	bossRoom := d.BossRoom()

	for i, room := range d.Rooms {
		if room.IsEntrance {
			continue
		}
		if i == bossRoom {
			if table != nil {
				d.Chests = append(d.Chests, newChest(room, i, dungeon.TierBoss, RollChest(table, bossDraws, src)))
			}
			continue
		}

		populateEnemies(d, room, i, dtype, src)

		if table == nil {
			continue
		}
		switch {
		case room.HasTreasure:
			d.Chests = append(d.Chests, newChest(room, i, dungeon.TierTreasure, RollChest(table, treasureDraws, src)))
		case rng.Chance(src, normalChestRate):
			draws := rng.Range(src, normalDrawsMin, normalDrawsMax)
			d.Chests = append(d.Chests, newChest(room, i, dungeon.TierNormal, RollChest(table, draws, src)))
		}
	}

	if dtype.HasTraps && len(dtype.Traps) > 0 {
		placeTraps(d, dtype, src)
	}
	addFeatures(d, dtype, src)
}

func populateEnemies(d *dungeon.Dungeon, room *dungeon.Room, idx int, dtype *config.DungeonType, src rng.Source) {
	if len(dtype.Enemies) == 0 {
		return
	}
	area := room.Interior(enemyInset)
	for range room.SpawnerSlots {
		archetype := dtype.Enemies[rng.Intn(src, len(dtype.Enemies))]
		p := randomCell(area, src)
		d.Enemies = append(d.Enemies, &dungeon.EnemySpawn{
			Archetype: archetype,
			X:         p.X,
			Y:         p.Y,
			Room:      idx,
		})
	}
}

func newChest(room *dungeon.Room, idx int, tier dungeon.ChestTier, items []dungeon.LootItem) *dungeon.LootChest {
	c := room.Center()
	return &dungeon.LootChest{
		X:     c.X,
		Y:     c.Y,
		Room:  idx,
		Tier:  tier,
		Items: items,
	}
}

// placeTraps gives trap-flagged rooms, and a random share of the others,
// 1-3 hidden traps of a single archetype.
func placeTraps(d *dungeon.Dungeon, dtype *config.DungeonType, src rng.Source) {
	for _, room := range d.Rooms {
		if room.IsEntrance {
			continue
		}
		if !room.HasTraps && !rng.Chance(src, extraTrapRate) {
			continue
		}

		archetype := dtype.Traps[rng.Intn(src, len(dtype.Traps))]
		count := rng.Range(src, trapsPerRoomLo, trapsPerRoomHi)
		area := room.Interior(trapInset)
		for range count {
			p := randomCell(area, src)
			room.Traps = append(room.Traps, &dungeon.Trap{
				Archetype: archetype,
				X:         p.X,
				Y:         p.Y,
			})
		}
	}
}

// addFeatures decorates rooms according to the dungeon type's structural
// flags.
func addFeatures(d *dungeon.Dungeon, dtype *config.DungeonType, src rng.Source) {
	bossRoom := d.BossRoom()
	for i, room := range d.Rooms {
		if room.IsEntrance {
			continue
		}
		if dtype.HasRails && room.Archetype == config.CorridorArchetype {
			room.AddFeature(dungeon.FeatureRails)
		}
		if dtype.HasTombs && !room.HasTreasure && i != bossRoom && rng.Chance(src, tombRate) {
			room.AddFeature(dungeon.FeatureTomb)
		}
		if dtype.HasPuzzles && room.HasPuzzle {
			room.AddFeature(dungeon.FeaturePuzzle)
		}
	}
}

func randomCell(area dungeon.Rect, src rng.Source) dungeon.Point {
	return dungeon.Point{
		X: area.X + rng.Intn(src, area.W),
		Y: area.Y + rng.Intn(src, area.H),
	}
}
