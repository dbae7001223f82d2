package generation

import (
	"github.com/lawnchairsociety/undercroft/internal/config"
	"github.com/lawnchairsociety/undercroft/internal/dungeon"
	"github.com/lawnchairsociety/undercroft/internal/logger"
	"github.com/lawnchairsociety/undercroft/internal/rng"
)

// PlaceBoss attaches a boss room to the room farthest from the entrance and
// picks the boss from the dungeon type's candidates. The boss probability
// roll belongs to the caller. Only one set of four directions is tried; if
// all are blocked the dungeon has no boss.
func (g *Generator) PlaceBoss(d *dungeon.Dungeon, dtype *config.DungeonType, src rng.Source) bool {
	if len(dtype.Bosses) == 0 || d.Boss != nil {
		return false
	}

	parent := FarthestRoom(d)
	if parent < 0 {
		return false
	}

	room, ok := g.MakeRoom(config.BossArchetype, 0, 0, src)
	if !ok {
		return false
	}

	idx, ok := g.attach(d, room, parent, src)
	if !ok {
		logger.Debug("boss room blocked", "dungeon", d.ID, "parent", parent)
		return false
	}

	d.Boss = &dungeon.Boss{
		Room:      idx,
		Archetype: dtype.Bosses[rng.Intn(src, len(dtype.Bosses))],
	}
	return true
}

// FarthestRoom returns the room whose grid position has the largest
// Manhattan distance from the entrance's. Ties go to the lowest index.
// Path length through the graph is not considered.
func FarthestRoom(d *dungeon.Dungeon) int {
	entrance := d.Entrance()
	if entrance == nil {
		return -1
	}
	origin := dungeon.Point{X: entrance.X, Y: entrance.Y}

	best, bestDist := -1, -1
	for i, r := range d.Rooms {
		dist := dungeon.Manhattan(origin, dungeon.Point{X: r.X, Y: r.Y})
		if dist > bestDist {
			best, bestDist = i, dist
		}
	}
	return best
}
